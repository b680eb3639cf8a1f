package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/apitoc/internal/foundation/errors"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	for _, p := range append(append([]string(nil), cfg.Site.Include...), cfg.Site.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return errors.ConfigError(fmt.Sprintf("invalid glob pattern %q", p)).Build()
		}
	}
	if cfg.Site.Concurrency > 256 {
		return errors.ConfigError("site.concurrency must be at most 256").WithContext("concurrency", cfg.Site.Concurrency).Build()
	}
	for name, v := range map[string]string{
		"toc.marker_class":    cfg.TOC.MarkerClass,
		"toc.container_class": cfg.TOC.ContainerClass,
	} {
		if strings.ContainsAny(v, " \t\n") {
			return errors.ConfigError(name + " must be a single class name").WithContext("value", v).Build()
		}
	}
	if cfg.TOC.PrimaryTag == cfg.TOC.SecondaryTag || cfg.TOC.PrimaryTag == cfg.TOC.TermTag || cfg.TOC.SecondaryTag == cfg.TOC.TermTag {
		return errors.ConfigError("toc.primary_tag, toc.secondary_tag and toc.term_tag must differ").Build()
	}
	d, err := time.ParseDuration(cfg.Watch.Debounce)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid watch.debounce").Fatal().Build()
	}
	if d <= 0 {
		return errors.ConfigError("watch.debounce must be positive").WithContext("debounce", cfg.Watch.Debounce).Build()
	}
	return nil
}
