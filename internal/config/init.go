package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apitoc/internal/foundation/errors"
)

const exampleHeader = `# apitoc configuration
# Values may reference environment variables as ${VAR}; .env and .env.local are loaded first.
`

// Init writes an example configuration file with every default spelled out.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").WithContext("path", path).Build()
	}

	cfg := Default()
	cfg.Site.Root = "./_build/html"
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}
	if err := os.WriteFile(path, append([]byte(exampleHeader), data...), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").WithContext("path", path).Build()
	}
	return nil
}
