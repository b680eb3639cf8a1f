package config

import (
	"strings"

	"git.home.luguber.info/inful/apitoc/internal/foundation/errors"
)

// normalize canonicalizes enum spellings and trims free-form values before defaults apply.
func normalize(cfg *Config) error {
	level, err := logLevelNormalizer.Parse(string(cfg.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.level").Fatal().Build()
	}
	cfg.Logging.Level = level

	format, err := logFormatNormalizer.Parse(string(cfg.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.format").Fatal().Build()
	}
	cfg.Logging.Format = format

	cfg.Site.Root = strings.TrimSpace(cfg.Site.Root)
	cfg.Site.Include = trimAll(cfg.Site.Include)
	cfg.Site.Exclude = trimAll(cfg.Site.Exclude)
	cfg.TOC.ContainerTag = strings.ToLower(strings.TrimSpace(cfg.TOC.ContainerTag))
	cfg.TOC.PrimaryTag = strings.ToLower(strings.TrimSpace(cfg.TOC.PrimaryTag))
	cfg.TOC.SecondaryTag = strings.ToLower(strings.TrimSpace(cfg.TOC.SecondaryTag))
	cfg.TOC.TermTag = strings.ToLower(strings.TrimSpace(cfg.TOC.TermTag))
	cfg.TOC.MemberClasses = trimAll(cfg.TOC.MemberClasses)
	return nil
}

// trimAll drops blank entries. An explicitly empty list stays non-nil so defaults do not
// replace it.
func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
