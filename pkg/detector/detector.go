// Package detector provides automatic separator detection for credential lists.
package detector

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ccollicutt/wplogin/pkg/converter"
)

// DetectionResult holds the result of analyzing an input.
type DetectionResult struct {
	Matches      []Match // Candidates that matched, sorted by confidence descending
	SampledLines int     // Number of non-blank, non-comment lines sampled
}

// Match represents a candidate separator with its confidence score.
type Match struct {
	Candidate  *Candidate
	Confidence float64 // 0.0 to 1.0 (share of sampled lines that split)
	MatchCount int     // Number of lines that split
	SampleLine string  // Example line that split
	Converted  string  // SampleLine converted with Separator()
}

// Separator returns the separator to pass to the converter. The whitespace
// fallback needs no separator of its own, so it maps to the default one.
func (m *Match) Separator() string {
	if m.Candidate.Whitespace() {
		return converter.DefaultSeparator
	}
	return m.Candidate.Separator
}

// Detector samples input lines to identify the separator in use.
type Detector struct {
	candidates []*Candidate
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithCandidates replaces the built-in candidate list.
func WithCandidates(candidates []*Candidate) Option {
	return func(d *Detector) {
		if len(candidates) > 0 {
			d.candidates = candidates
		}
	}
}

// New creates a new Detector with the default candidates.
func New(opts ...Option) *Detector {
	d := &Detector{
		candidates: DefaultCandidates(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes an input file and returns the detected separators.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of input lines. Blank and comment lines
// are ignored and at most the sample size is considered.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	sample := make([]string, 0, d.sampleSize)
	for _, line := range lines {
		if len(sample) >= d.sampleSize {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sample = append(sample, line)
	}

	result := &DetectionResult{
		SampledLines: len(sample),
	}

	if len(sample) == 0 {
		return result
	}

	for _, candidate := range d.candidates {
		m := Match{Candidate: candidate}
		for _, line := range sample {
			if !candidate.matches(line) {
				continue
			}
			// Whitespace only counts where no literal separator would split the line.
			if candidate.Whitespace() && d.hasLiteralMatch(line) {
				continue
			}
			if m.MatchCount == 0 {
				m.SampleLine = line
			}
			m.MatchCount++
		}
		if m.MatchCount == 0 {
			continue
		}

		m.Confidence = float64(m.MatchCount) / float64(len(sample))
		m.Converted, _ = converter.Convert(m.SampleLine, m.Separator())
		result.Matches = append(result.Matches, m)
	}

	// Candidates are already in preference order, so a stable sort keeps
	// the preferred one first among equals.
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Confidence > result.Matches[j].Confidence
	})

	return result
}

func (d *Detector) hasLiteralMatch(line string) bool {
	for _, c := range d.candidates {
		if !c.Whitespace() && c.matches(line) {
			return true
		}
	}
	return false
}

// sampleFile reads up to sampleSize non-blank, non-comment lines from a file.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() && len(lines) < d.sampleSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *Match {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one candidate matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
