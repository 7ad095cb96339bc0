// Package source provides the line sources the converter reads from:
// files, glob patterns and standard input.
package source

// StdinName is the path that selects standard input.
const StdinName = "-"

// Line is a single raw input line.
type Line struct {
	// Text is the line content without its line terminator.
	Text string

	// Source is the file path this line came from, or "-" for stdin.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}
