package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apitoc/internal/apitoc"
	"git.home.luguber.info/inful/apitoc/internal/foundation/errors"
	"git.home.luguber.info/inful/apitoc/internal/page"
	"git.home.luguber.info/inful/apitoc/internal/site"
)

// CurrentVersion is the only configuration schema version understood.
const CurrentVersion = "1.0"

// DefaultFile is picked up from the working directory when no --config is given.
const DefaultFile = "apitoc.yaml"

// Config is the apitoc configuration file.
type Config struct {
	Version string        `yaml:"version"`
	Site    SiteConfig    `yaml:"site"`
	TOC     TOCConfig     `yaml:"toc"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SiteConfig selects and processes the pages of a generated site.
type SiteConfig struct {
	Root        string   `yaml:"root"`
	Include     []string `yaml:"include,omitempty"`
	Exclude     []string `yaml:"exclude,omitempty"`
	Concurrency int      `yaml:"concurrency"`
	FailFast    bool     `yaml:"fail_fast"`
	// ResetContainer drops previously generated entries before building; defaults to true.
	// Watch mode resets regardless.
	ResetContainer *bool `yaml:"reset_container,omitempty"`
}

// TOCConfig mirrors the markup conventions of the documentation theme.
type TOCConfig struct {
	MarkerClass    string   `yaml:"marker_class"`
	ContainerTag   string   `yaml:"container_tag"`
	ContainerClass string   `yaml:"container_class"`
	PrimaryTag     string   `yaml:"primary_tag"`
	SecondaryTag   string   `yaml:"secondary_tag"`
	TermTag        string   `yaml:"term_tag"`
	MemberClasses  []string `yaml:"member_classes,omitempty"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig configures metric output.
type MetricsConfig struct {
	// Textfile, when set, receives the run's metrics in Prometheus text format.
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	applyDefaults(cfg)
	return cfg
}

// Resolve loads path, or DefaultFile when path is empty and that file exists, or returns
// the defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	loadEnvFiles()
	return Default(), nil
}

// Load reads, normalizes, defaults and validates a configuration file. ${VAR} references
// are expanded from the environment after .env files are loaded.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").WithContext("path", path).Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").WithContext("path", path).Fatal().Build()
	}
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Version != CurrentVersion {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)).WithContext("path", path).Build()
	}

	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFiles loads .env and .env.local when present. Existing variables win.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			fmt.Fprintf(os.Stderr, "Note: %s could not be loaded: %v\n", name, err)
		}
	}
}

// ShouldReset reports whether generated entries are dropped before building.
func (s SiteConfig) ShouldReset() bool {
	return s.ResetContainer == nil || *s.ResetContainer
}

// TOCOptions converts the TOC section into builder options.
func (c *Config) TOCOptions() apitoc.Options {
	return apitoc.Options{
		MarkerClass:    c.TOC.MarkerClass,
		ContainerTag:   c.TOC.ContainerTag,
		ContainerClass: c.TOC.ContainerClass,
		PrimaryTag:     c.TOC.PrimaryTag,
		SecondaryTag:   c.TOC.SecondaryTag,
		TermTag:        c.TOC.TermTag,
		MemberClasses:  c.TOC.MemberClasses,
	}
}

// PageOptions converts the configuration into page processing options.
func (c *Config) PageOptions(dryRun bool) page.Options {
	return page.Options{TOC: c.TOCOptions(), Reset: c.Site.ShouldReset(), DryRun: dryRun}
}

// SiteConfig converts the configuration into a site processor configuration.
func (c *Config) SiteConfig(dryRun bool) site.Config {
	return site.Config{
		Root:        c.Site.Root,
		Include:     c.Site.Include,
		Exclude:     c.Site.Exclude,
		Concurrency: c.Site.Concurrency,
		FailFast:    c.Site.FailFast,
		Page:        c.PageOptions(dryRun),
	}
}

// DebounceDuration returns the parsed watch debounce. Validate guarantees it parses.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0
	}
	return d
}
