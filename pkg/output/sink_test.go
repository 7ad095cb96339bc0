package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSink_Stdout(t *testing.T) {
	for _, path := range []string{"", "-"} {
		var stdout bytes.Buffer
		sink, err := OpenSink(path, &stdout)
		if err != nil {
			t.Fatalf("OpenSink(%q) error = %v", path, err)
		}
		if sink.Path() != "" {
			t.Errorf("Path() = %q, want empty for stdout", sink.Path())
		}

		if _, err := sink.WriteString("line\n"); err != nil {
			t.Fatal(err)
		}
		// Buffered until Close
		if stdout.Len() != 0 {
			t.Error("Sink wrote before flush")
		}
		if err := sink.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if stdout.String() != "line\n" {
			t.Errorf("stdout = %q, want %q", stdout.String(), "line\n")
		}
	}
}

func TestOpenSink_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(path, []byte("stale content that is longer\n"), 0644); err != nil {
		t.Fatal(err)
	}

	sink, err := OpenSink(path, nil)
	if err != nil {
		t.Fatalf("OpenSink() error = %v", err)
	}
	if sink.Path() != path {
		t.Errorf("Path() = %q, want %q", sink.Path(), path)
	}
	if _, err := sink.WriteString("fresh\n"); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Existing content is truncated
	if string(data) != "fresh\n" {
		t.Errorf("file = %q, want %q", string(data), "fresh\n")
	}
}

func TestOpenSink_BadPath(t *testing.T) {
	_, err := OpenSink(filepath.Join(t.TempDir(), "missing", "out.txt"), nil)
	if err == nil {
		t.Error("OpenSink() expected error for missing directory")
	}
}

func TestOpenSink_FileNotReplacedBeforeClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(path, []byte("previous\n"), 0644); err != nil {
		t.Fatal(err)
	}

	sink, err := OpenSink(path, nil)
	if err != nil {
		t.Fatalf("OpenSink() error = %v", err)
	}
	if _, err := sink.WriteString("fresh\n"); err != nil {
		t.Fatal(err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "previous\n" {
		t.Errorf("file = %q before Close, want it untouched", string(data))
	}

	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o044 == 0 {
		t.Errorf("file mode = %v, want group/other readable", info.Mode().Perm())
	}
}

func TestSink_Discard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(path, []byte("previous\n"), 0644); err != nil {
		t.Fatal(err)
	}

	sink, err := OpenSink(path, nil)
	if err != nil {
		t.Fatalf("OpenSink() error = %v", err)
	}
	if _, err := sink.WriteString("partial\n"); err != nil {
		t.Fatal(err)
	}
	if err := sink.Discard(); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "previous\n" {
		t.Errorf("file = %q, want %q", string(data), "previous\n")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Temporary file left behind: %d entries in %s", len(entries), dir)
	}

	// A second call is harmless
	if err := sink.Close(); err != nil {
		t.Errorf("Close() after Discard error = %v", err)
	}
}

func TestSink_DiscardStdout(t *testing.T) {
	var stdout bytes.Buffer
	sink, err := OpenSink("-", &stdout)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sink.WriteString("line\n"); err != nil {
		t.Fatal(err)
	}
	if err := sink.Discard(); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if stdout.String() != "line\n" {
		t.Errorf("stdout = %q, want flushed %q", stdout.String(), "line\n")
	}
}
