package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults for
// optional fields left empty.
func Validate(cfg *Config) error {
	if err := ValidateSeparator(cfg.Separator); err != nil {
		return fmt.Errorf("separator: %w", err)
	}

	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if !cfg.Format.Valid() {
		return fmt.Errorf("format: invalid format %q (must be text or json)", cfg.Format)
	}

	if cfg.SampleSize < 0 {
		return fmt.Errorf("sample_size: must be >= 0, got %d", cfg.SampleSize)
	}
	if cfg.SampleSize == 0 {
		cfg.SampleSize = DefaultSampleSize
	}

	for i, input := range cfg.Inputs {
		input = expandEnvVar(input)
		if strings.TrimSpace(input) == "" {
			return fmt.Errorf("inputs[%d]: path is empty", i)
		}
		cfg.Inputs[i] = input
	}

	cfg.Output = expandEnvVar(cfg.Output)

	return nil
}

// ValidateSeparator checks that a separator can split a single line.
func ValidateSeparator(sep string) error {
	if sep == "" {
		return errors.New("separator is required")
	}
	if strings.ContainsAny(sep, "\r\n") {
		return fmt.Errorf("separator %q must not contain a line break", sep)
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	// Handle ${VAR} format
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}

	// Handle $VAR format (no braces)
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		varName := s[1:]
		return os.Getenv(varName)
	}

	return s
}
