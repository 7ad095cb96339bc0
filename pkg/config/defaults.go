package config

import (
	"fmt"
	"os"
)

// Default values for configuration.
const (
	DefaultSeparator  = "->"
	DefaultFormat     = FormatText
	DefaultSampleSize = 100

	// SeparatorAuto asks for the separator to be detected from the input.
	SeparatorAuto = "auto"
)

// Environment variable names.
const (
	EnvSeparator = "WPLOGIN_SEPARATOR"
	EnvFormat    = "WPLOGIN_FORMAT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Separator:  DefaultSeparator,
		Inputs:     []string{},
		Format:     DefaultFormat,
		SampleSize: DefaultSampleSize,
	}
}

// FromEnvironment returns the default configuration with environment
// overrides applied. It is used when no configuration file is given.
func FromEnvironment() (*Config, error) {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating environment: %w", err)
	}
	return cfg, nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if sep := os.Getenv(EnvSeparator); sep != "" {
		c.Separator = sep
	}
	if format := os.Getenv(EnvFormat); format != "" {
		c.Format = Format(format)
	}
}
