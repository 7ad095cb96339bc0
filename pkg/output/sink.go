package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink is a buffered destination for converted lines.
//
// A file sink writes to a temporary file next to the destination. Close
// renames it into place; Discard removes it and leaves any existing file
// untouched.
type Sink struct {
	*bufio.Writer

	path string
	tmp  *os.File
}

// OpenSink opens the output destination. An empty path or "-" writes to
// stdout; any other path is replaced when the sink is closed.
func OpenSink(path string, stdout io.Writer) (*Sink, error) {
	if path == "" || path == "-" {
		return &Sink{Writer: bufio.NewWriter(stdout)}, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("opening output file %s: %w", path, err)
	}

	return &Sink{Writer: bufio.NewWriter(tmp), path: path, tmp: tmp}, nil
}

// Path returns the output file path, empty for stdout.
func (s *Sink) Path() string {
	return s.path
}

// Close flushes buffered lines and moves the output file into place.
// Stdout is flushed but left open.
func (s *Sink) Close() error {
	flushErr := s.Flush()
	if s.tmp == nil {
		return flushErr
	}
	if flushErr != nil {
		_ = s.Discard()
		return fmt.Errorf("writing output file %s: %w", s.path, flushErr)
	}

	tmp := s.tmp
	s.tmp = nil

	// #nosec G302 -- output is a plain text file
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing output file %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing output file %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing output file %s: %w", s.path, err)
	}
	return nil
}

// Discard drops a file sink's output. Stdout cannot be taken back, so a
// stdout sink is flushed instead.
func (s *Sink) Discard() error {
	if s.tmp == nil {
		return s.Flush()
	}

	tmp := s.tmp
	s.tmp = nil
	s.Reset(io.Discard)
	_ = tmp.Close()
	return os.Remove(tmp.Name())
}
