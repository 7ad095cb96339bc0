package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxLineSize is the longest line a source will read.
const MaxLineSize = 1024 * 1024

// FileSource implements LineSource for reading files one after another.
// The path "-" reads standard input.
type FileSource struct {
	files     []string
	stdin     io.Reader
	stdinName string

	currentFile    io.Closer
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// Option configures a FileSource.
type Option func(*FileSource)

// WithStdin replaces os.Stdin as the reader behind "-".
func WithStdin(r io.Reader) Option {
	return func(s *FileSource) {
		s.stdin = r
	}
}

// WithStdinName sets the Source reported for lines read from "-".
func WithStdinName(name string) Option {
	return func(s *FileSource) {
		s.stdinName = name
	}
}

// NewFileSource creates a LineSource that reads the given files in order.
func NewFileSource(files []string, opts ...Option) *FileSource {
	s := &FileSource{
		files:     files,
		stdin:     os.Stdin,
		stdinName: StdinName,
		fileIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewReaderSource creates a LineSource over a single reader.
// The reader is not closed by the source.
func NewReaderSource(r io.Reader, name string) *FileSource {
	return NewFileSource([]string{StdinName}, WithStdin(r), WithStdinName(name))
}

// Next returns the next raw line.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Line, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			return &Line{
				Text:    strings.TrimSuffix(s.currentScanner.Text(), "\r"),
				Source:  s.currentSource,
				LineNum: s.currentLine,
			}, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
		s.currentScanner = nil
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	s.fileIndex = len(s.files)
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	if path == StdinName {
		s.openReader(s.stdin, s.stdinName)
		return nil
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening input file %s: %w", path, err)
	}

	s.openReader(f, path)
	s.currentFile = f
	return nil
}

func (s *FileSource) openReader(r io.Reader, name string) {
	s.currentScanner = bufio.NewScanner(r)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	s.currentSource = name
	s.currentLine = 0
}

func (s *FileSource) closeCurrentFile() error {
	s.currentScanner = nil
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		return err
	}
	return nil
}
