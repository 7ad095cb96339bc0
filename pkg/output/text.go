package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ccollicutt/wplogin/pkg/converter"
)

// TextFormatter writes one converted line per output line.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format writes the converted line followed by a newline.
func (f *TextFormatter) Format(ctx context.Context, res *converter.Result, w io.Writer) error {
	_, err := io.WriteString(w, res.Text+"\n")
	return err
}

// Summarize renders the run report as text.
func (f *TextFormatter) Summarize(ctx context.Context, report *Report, w io.Writer) error {
	s := report.Summary
	if f.opts.Quiet {
		_, err := fmt.Fprintf(w, "wplogin: %d converted, %d skipped\n", s.Converted, s.Skipped())
		return err
	}

	fmt.Fprintf(w, "Summary: %d lines read, %d converted, %d skipped (%d blank, %d comment, %d malformed)\n",
		s.Read, s.Converted, s.Skipped(), s.Blank, s.Comment, s.Malformed)

	if f.opts.Verbose {
		meta := report.Metadata
		fmt.Fprintf(w, "Run: %s\n", meta.RunID)
		fmt.Fprintf(w, "Sources: %s\n", strings.Join(meta.Sources, ", "))
		fmt.Fprintf(w, "Separator: %q\n", meta.Separator)
		if meta.Output != "" {
			fmt.Fprintf(w, "Output: %s\n", meta.Output)
		}
		fmt.Fprintf(w, "Duration: %s\n", meta.Duration.Round(1e6))
	}

	return nil
}
