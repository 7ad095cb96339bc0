// Package config provides configuration loading and validation for wplogin.
package config

// Format selects how converted lines are written.
type Format string

const (
	// FormatText writes site/wp-login.php#user@pass, one per line.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON}
}

// Valid reports whether f is a supported output format.
func (f Format) Valid() bool {
	for _, known := range Formats() {
		if f == known {
			return true
		}
	}
	return false
}

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Separator splits the site field from the credentials field.
	// The value "auto" detects it from the input.
	Separator string `yaml:"separator"`

	// Inputs are file paths or glob patterns. "-" is standard input.
	// Empty means standard input.
	Inputs []string `yaml:"inputs,omitempty"`

	// Output is the destination file. Empty means standard output.
	Output string `yaml:"output,omitempty"`

	// Format is the output format (text or json).
	Format Format `yaml:"format,omitempty"`

	// SampleSize is how many lines separator detection looks at.
	SampleSize int `yaml:"sample_size,omitempty"`
}

// AutoSeparator reports whether the separator should be detected.
func (c *Config) AutoSeparator() bool {
	return c.Separator == SeparatorAuto
}
