package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readAll(t *testing.T, src LineSource) []*Line {
	t.Helper()
	ctx := context.Background()
	var lines []*Line

	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		lines = append(lines, line)
	}
	return lines
}

func TestFileSource_Next(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "creds.txt")
	content := `https://site.com -> admin:secret
# comment

site.com user:pass
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{file})
	defer source.Close()

	lines := readAll(t, source)

	// Blank and comment lines are passed through, filtering is the converter's job
	if len(lines) != 4 {
		t.Fatalf("Got %d lines, want 4", len(lines))
	}

	if lines[0].LineNum != 1 {
		t.Errorf("LineNum = %d, want 1", lines[0].LineNum)
	}
	if lines[0].Source != file {
		t.Errorf("Source = %q, want %q", lines[0].Source, file)
	}
	if lines[0].Text != "https://site.com -> admin:secret" {
		t.Errorf("Text = %q", lines[0].Text)
	}
	if lines[3].LineNum != 4 {
		t.Errorf("LineNum = %d, want 4", lines[3].LineNum)
	}
}

func TestFileSource_StripsCarriageReturn(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "crlf.txt")
	if err := os.WriteFile(file, []byte("a.com -> u:p\r\nb.com -> u\r\n"), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{file})
	defer source.Close()

	lines := readAll(t, source)
	if len(lines) != 2 {
		t.Fatalf("Got %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if strings.HasSuffix(line.Text, "\r") {
			t.Errorf("Line %d still ends with \\r: %q", line.LineNum, line.Text)
		}
	}
}

func TestFileSource_NoTrailingNewline(t *testing.T) {
	source := NewReaderSource(strings.NewReader("a.com -> u:p"), "in")
	defer source.Close()

	lines := readAll(t, source)
	if len(lines) != 1 || lines[0].Text != "a.com -> u:p" {
		t.Errorf("Got %v, want single line", lines)
	}
}

func TestFileSource_MultipleFiles(t *testing.T) {
	dir := t.TempDir()

	files := []struct {
		name    string
		content string
	}{
		{"b.txt", "b.com -> one:1\nb.com -> two:2\n"},
		{"a.txt", "a.com -> three:3\n"},
	}

	var paths []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	source := NewFileSource(paths)
	defer source.Close()

	lines := readAll(t, source)
	if len(lines) != 3 {
		t.Fatalf("Got %d lines, want 3", len(lines))
	}

	// Files are read in the given order and line numbers restart per file
	if lines[0].Source != paths[0] || lines[2].Source != paths[1] {
		t.Errorf("Unexpected source order: %s, %s", lines[0].Source, lines[2].Source)
	}
	if lines[2].LineNum != 1 {
		t.Errorf("LineNum = %d, want 1 for first line of second file", lines[2].LineNum)
	}
}

func TestFileSource_Stdin(t *testing.T) {
	stdin := strings.NewReader("x.com -> u:p\ny.com -> v:q\n")

	source := NewFileSource([]string{StdinName}, WithStdin(stdin))
	defer source.Close()

	lines := readAll(t, source)
	if len(lines) != 2 {
		t.Fatalf("Got %d lines, want 2", len(lines))
	}
	if lines[1].Source != StdinName {
		t.Errorf("Source = %q, want %q", lines[1].Source, StdinName)
	}
}

func TestFileSource_StdinBetweenFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("a.com -> u:p\n"), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{StdinName, file}, WithStdin(strings.NewReader("s.com -> u:p\n")))
	defer source.Close()

	lines := readAll(t, source)
	if len(lines) != 2 {
		t.Fatalf("Got %d lines, want 2", len(lines))
	}
	if lines[0].Text != "s.com -> u:p" || lines[1].Text != "a.com -> u:p" {
		t.Errorf("Unexpected order: %q, %q", lines[0].Text, lines[1].Text)
	}
}

func TestNewReaderSource(t *testing.T) {
	source := NewReaderSource(strings.NewReader("a\nb\n"), "buffered")
	defer source.Close()

	lines := readAll(t, source)
	if len(lines) != 2 {
		t.Fatalf("Got %d lines, want 2", len(lines))
	}
	if lines[0].Source != "buffered" {
		t.Errorf("Source = %q, want %q", lines[0].Source, "buffered")
	}
}

func TestFileSource_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(file, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{file})
	defer source.Close()

	_, err := source.Next(context.Background())
	if err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}

func TestFileSource_NoFiles(t *testing.T) {
	source := NewFileSource(nil)
	defer source.Close()

	_, err := source.Next(context.Background())
	if err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}

func TestFileSource_FileNotFound(t *testing.T) {
	source := NewFileSource([]string{"/nonexistent/creds.txt"})
	defer source.Close()

	_, err := source.Next(context.Background())
	if err == nil {
		t.Error("Next() expected error for missing file")
	}
}

func TestFileSource_LineTooLong(t *testing.T) {
	long := strings.Repeat("x", MaxLineSize+1)
	source := NewReaderSource(strings.NewReader(long+"\n"), "long")
	defer source.Close()

	_, err := source.Next(context.Background())
	if err == nil || err == io.EOF {
		t.Errorf("Next() error = %v, want scanner error", err)
	}
}

func TestFileSource_ContextCancellation(t *testing.T) {
	source := NewReaderSource(strings.NewReader("a.com -> u:p\n"), "in")
	defer source.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := source.Next(ctx)
	if err != context.Canceled {
		t.Errorf("Next() error = %v, want context.Canceled", err)
	}
}

func TestFileSource_Close(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "creds.txt")
	if err := os.WriteFile(file, []byte("a.com -> u:p\nb.com -> u:p\n"), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{file})

	// Read one line to open the file
	ctx := context.Background()
	if _, err := source.Next(ctx); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if err := source.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// A closed source is exhausted
	if _, err := source.Next(ctx); err != io.EOF {
		t.Errorf("Next() after Close() error = %v, want io.EOF", err)
	}
}
