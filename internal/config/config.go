// Package config loads the dsiunit YAML configuration.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Neumenon/dsiunit/table"
)

// Config selects the label set and rounding used for result tables.
//
//	language: id
//	labels:
//	  uncertainty: Ketidakpastian
//	  coverage_factor: Faktor Cakupan
//	decimals: 5
type Config struct {
	Language string       `yaml:"language"`
	Labels   table.Labels `yaml:"labels"`
	Decimals *int         `yaml:"decimals"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config yaml")
	}

	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = table.DefaultLanguage
	}
	if c.Decimals == nil {
		d := table.DefaultDecimals
		c.Decimals = &d
	}
}

// Validate checks that the language is known and decimals are in range.
func (c *Config) Validate() error {
	if !table.HasLanguage(c.Language) {
		return errors.Errorf("language %q has no built-in labels", c.Language)
	}
	if c.Decimals != nil && (*c.Decimals < 0 || *c.Decimals > 18) {
		return errors.Errorf("decimals must be between 0 and 18, got %d", *c.Decimals)
	}
	return nil
}

// BuildOptions turns the config into table build options. Labels set in
// the file override the language defaults.
func (c *Config) BuildOptions() table.BuildOptions {
	opts := table.DefaultBuildOptions(c.Language)
	opts.Labels = opts.Labels.Merge(c.Labels)
	if c.Decimals != nil {
		d := *c.Decimals
		opts.Decimals = &d
	}
	return opts
}
