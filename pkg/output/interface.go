package output

import (
	"context"
	"io"

	"github.com/ccollicutt/wplogin/pkg/converter"
)

// Formatter renders converted lines in a specific format.
type Formatter interface {
	// Format renders a single converted line to the given writer.
	Format(ctx context.Context, res *converter.Result, w io.Writer) error

	// Summarize renders the end-of-run report to the given writer.
	Summarize(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds run metadata to the summary.
	Verbose bool

	// Quiet reduces the summary to a single line.
	Quiet bool
}
