package config

import (
	"git.home.luguber.info/inful/apitoc/internal/apitoc"
	"git.home.luguber.info/inful/apitoc/internal/site"
	"git.home.luguber.info/inful/apitoc/internal/watch"
)

// DefaultExclude skips the theme assets and page sources Sphinx copies into its output.
var DefaultExclude = []string{"_static/**", "_sources/**"}

func applyDefaults(cfg *Config) {
	if cfg.Site.Root == "" {
		cfg.Site.Root = "."
	}
	if len(cfg.Site.Include) == 0 {
		cfg.Site.Include = append([]string(nil), site.DefaultInclude...)
	}
	if cfg.Site.Exclude == nil {
		cfg.Site.Exclude = append([]string(nil), DefaultExclude...)
	}
	if cfg.Site.Concurrency <= 0 {
		cfg.Site.Concurrency = site.DefaultConcurrency
	}

	toc := apitoc.DefaultOptions()
	setDefault(&cfg.TOC.MarkerClass, toc.MarkerClass)
	setDefault(&cfg.TOC.ContainerTag, toc.ContainerTag)
	setDefault(&cfg.TOC.ContainerClass, toc.ContainerClass)
	setDefault(&cfg.TOC.PrimaryTag, toc.PrimaryTag)
	setDefault(&cfg.TOC.SecondaryTag, toc.SecondaryTag)
	setDefault(&cfg.TOC.TermTag, toc.TermTag)
	if len(cfg.TOC.MemberClasses) == 0 {
		cfg.TOC.MemberClasses = append([]string(nil), toc.MemberClasses...)
	}

	setDefault(&cfg.Watch.Debounce, watch.DefaultDebounce.String())
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
