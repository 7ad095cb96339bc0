package detector

import "strings"

// Candidate is a separator the detector knows how to recognise.
type Candidate struct {
	Name      string   // Human-readable name
	Separator string   // Literal separator, empty for the whitespace fallback
	Examples  []string // Example input lines
}

// Whitespace reports whether the candidate is the whitespace fallback.
func (c *Candidate) Whitespace() bool {
	return c.Separator == ""
}

// matches reports whether a trimmed line splits into a non-empty site and
// non-empty credentials with this candidate.
func (c *Candidate) matches(line string) bool {
	if c.Whitespace() {
		return len(strings.Fields(line)) >= 2
	}
	left, right, found := strings.Cut(line, c.Separator)
	return found && strings.TrimSpace(left) != "" && strings.TrimSpace(right) != ""
}

// DefaultCandidates returns the built-in separators to detect.
// Candidates are ordered by preference; on equal confidence the earlier one wins.
func DefaultCandidates() []*Candidate {
	return []*Candidate{
		{
			Name:      "Arrow",
			Separator: "->",
			Examples:  []string{"https://site.com -> admin:secret"},
		},
		{
			Name:      "Fat arrow",
			Separator: "=>",
			Examples:  []string{"https://site.com => admin:secret"},
		},
		{
			Name:      "Pipe",
			Separator: "|",
			Examples:  []string{"https://site.com|admin:secret", "site.com | admin:secret"},
		},
		{
			Name:      "Tab",
			Separator: "\t",
			Examples:  []string{"site.com\tadmin:secret"},
		},
		{
			Name:      "Semicolon",
			Separator: ";",
			Examples:  []string{"site.com;admin:secret"},
		},
		{
			Name:      "Comma",
			Separator: ",",
			Examples:  []string{"site.com,admin:secret"},
		},
		{
			Name:     "Whitespace",
			Examples: []string{"site.com admin:secret"},
		},
	}
}
