// Package config loads postmortem settings from YAML.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultSubDir is created under the per-user local data directory.
const DefaultSubDir = "postmortem"

// Config holds the settings shared by the crash handler and the CLI.
type Config struct {
	// Dir overrides the per-user output directory when set.
	Dir string `yaml:"dir,omitempty"`
	// SubDir is the folder created under the per-user local data directory.
	SubDir string `yaml:"subdir"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
	// Compression is used when packing artifacts: zstd or none.
	Compression string `yaml:"compression"`
	// HardenPolicy clears the exception-swallowing policy on install.
	HardenPolicy bool `yaml:"harden_policy"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SubDir:       DefaultSubDir,
		LogLevel:     "info",
		Compression:  "zstd",
		HardenPolicy: true,
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if c.Dir == "" && c.SubDir == "" {
		return errors.New("either dir or subdir must be set")
	}
	return nil
}

// Save writes the configuration to path.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}
