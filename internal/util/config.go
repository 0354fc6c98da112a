package util

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

type Configuration struct {
	Version  string `toml:"-"`
	LogLevel string `toml:"log_level"`
	NoColor  bool   `toml:"no_color"`
}

// DefaultConfiguration is what a missing config file resolves to.
func DefaultConfiguration() Configuration {
	return Configuration{
		LogLevel: "error",
	}
}

// Load reads a TOML configuration file. A missing file is not an error;
// the defaults apply.
func Load(path string) (Configuration, error) {
	cfg := DefaultConfiguration()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfiguration(), nil
		}
		return Configuration{}, err
	}
	return cfg, nil
}
