package source

import "context"

// LineSource provides an iterator over raw input lines.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// Next returns the next line.
	// Returns io.EOF when no more lines are available.
	Next(ctx context.Context) (*Line, error)

	// Close releases any resources held by the source.
	Close() error
}
