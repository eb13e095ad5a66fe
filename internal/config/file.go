package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile overlays the settings in path onto cfg. The format is chosen by
// extension: .yaml/.yml via yaml.v3, .toml via BurntSushi/toml. Keys missing
// from the file leave the corresponding cfg fields untouched.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrapf(err, "parsing config file %s", path)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return errors.Wrapf(err, "parsing config file %s", path)
		}
	default:
		return errors.Errorf("unsupported config file type %q (use .yaml, .yml or .toml)", filepath.Ext(path))
	}
	cfg.ConfigFile = path
	return nil
}
