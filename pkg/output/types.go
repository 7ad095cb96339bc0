// Package output provides the line sinks and summary formats for converted lines.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/wplogin/pkg/converter"
)

// Report describes a finished conversion run.
type Report struct {
	// Summary holds the per-line counts.
	Summary converter.Stats `json:"summary"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about the conversion run.
type Metadata struct {
	// RunID identifies the run in summaries and logs.
	RunID string `json:"run_id,omitempty"`

	// Sources lists the inputs that were read, "-" for standard input.
	Sources []string `json:"sources"`

	// Separator is the separator the lines were split with.
	Separator string `json:"separator"`

	// Output is the destination path, empty for standard output.
	Output string `json:"output,omitempty"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from stream statistics. A run ID is assigned
// when meta does not carry one.
func NewReport(stats converter.Stats, meta Metadata) *Report {
	if meta.RunID == "" {
		meta.RunID = uuid.New().String()
	}
	return &Report{
		Summary:  stats,
		Metadata: meta,
	}
}

// HasOutput returns true if at least one line was converted.
func (r *Report) HasOutput() bool {
	return r.Summary.Converted > 0
}
