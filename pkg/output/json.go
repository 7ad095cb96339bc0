package output

import (
	"context"
	"encoding/json"
	"io"

	"github.com/ccollicutt/wplogin/pkg/converter"
)

// JSONFormatter writes converted lines as JSON Lines, one object per line.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the record as a single-line JSON object.
func (f *JSONFormatter) Format(ctx context.Context, res *converter.Result, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(res)
}

// Summarize renders the run report as indented JSON.
func (f *JSONFormatter) Summarize(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if f.opts.Quiet {
		// Quiet mode: just summary
		return encoder.Encode(report.Summary)
	}

	return encoder.Encode(report)
}
