// Package converter rewrites "site -> user:pass" lines into WordPress login
// fragments of the form site/wp-login.php#user@pass.
package converter

const (
	// DefaultSeparator splits the site field from the credentials field.
	DefaultSeparator = "->"

	// LoginPath is appended to every normalized site.
	LoginPath = "/wp-login.php"
)

// Skip explains why a line produced no output.
// The zero value means the line converted.
type Skip string

const (
	SkipNone      Skip = ""
	SkipBlank     Skip = "blank"
	SkipComment   Skip = "comment"
	SkipMalformed Skip = "malformed"
)

// Credentials is the user/password decomposition of the right-hand field.
type Credentials struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// String renders the credentials as user@password. The @ is always
// present, so a user without a password renders as "user@".
func (c Credentials) String() string {
	return c.User + "@" + c.Password
}

// Record is a parsed input line.
type Record struct {
	// Site is the left-hand field, trimmed, with trailing slashes removed.
	Site string `json:"site"`

	Credentials
}

// URL returns the converted output line.
func (r Record) URL() string {
	return r.Site + LoginPath + "#" + r.Credentials.String()
}

// Result is a converted line together with where it came from.
type Result struct {
	Record

	// Text is the converted line, identical to Record.URL().
	Text string `json:"url"`

	// Source is the input the line was read from.
	Source string `json:"source,omitempty"`

	// LineNum is the 1-based line number within Source.
	LineNum int `json:"line,omitempty"`
}

// Stats counts what happened to each line of a stream.
type Stats struct {
	Read      int `json:"read"`
	Converted int `json:"converted"`
	Blank     int `json:"blank"`
	Comment   int `json:"comment"`
	Malformed int `json:"malformed"`
}

// Skipped returns the number of lines that produced no output.
func (s Stats) Skipped() int {
	return s.Blank + s.Comment + s.Malformed
}

func (s *Stats) count(skip Skip) {
	s.Read++
	switch skip {
	case SkipNone:
		s.Converted++
	case SkipBlank:
		s.Blank++
	case SkipComment:
		s.Comment++
	case SkipMalformed:
		s.Malformed++
	}
}
