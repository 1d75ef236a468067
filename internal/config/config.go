// Package config loads optional user defaults from
// $XDG_CONFIG_HOME/fzgrep/config.yaml. Everything in the file can be
// overridden on the command line; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

const appDir = "fzgrep"

// Config carries the defaults a user can persist instead of passing
// flags on every run.
type Config struct {
	// Color is the default --color mode: always, auto or never.
	Color string `yaml:"color"`

	// ColorOverrides is a grep-style capability list applied on top of
	// the default styles, same syntax as --color-overrides.
	ColorOverrides string `yaml:"color_overrides"`

	// Top is the default result-count limit; zero means unlimited.
	Top int `yaml:"top"`
}

// Load reads the defaults file. A missing file yields the zero
// Config; a malformed file is an error so a typo does not silently
// drop the user's settings.
func Load() (Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Config{}, nil
	}
	return LoadFile(filepath.Join(configDir, appDir, "config.yaml"))
}

// LoadFile reads a specific defaults file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
