package converter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ccollicutt/wplogin/pkg/source"
)

// Process converts every line in order and drops the ones Convert rejects.
func Process(lines []string, separator string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if converted, ok := Convert(line, separator); ok {
			out = append(out, converted)
		}
	}
	return out
}

// EmitFunc receives each converted line. Returning an error stops the stream.
type EmitFunc func(res *Result) error

// Stream reads lines from src one at a time and passes every converted line
// to emit before reading the next. It returns the per-line counts gathered
// so far together with the first read or emit error.
func Stream(ctx context.Context, src source.LineSource, separator string, emit EmitFunc) (Stats, error) {
	var stats Stats

	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}

		rec, skip := Parse(line.Text, separator)
		stats.count(skip)
		if skip != SkipNone {
			continue
		}

		res := &Result{
			Record:  rec,
			Text:    rec.URL(),
			Source:  line.Source,
			LineNum: line.LineNum,
		}
		if err := emit(res); err != nil {
			return stats, fmt.Errorf("writing %s:%d: %w", line.Source, line.LineNum, err)
		}
	}
}
