package converter

import (
	"strings"
	"unicode"
)

// Convert rewrites a single line. It returns false when the line is blank,
// a comment, or has fewer than two fields; such lines are dropped, never
// reported as errors. An empty separator means DefaultSeparator.
func Convert(line, separator string) (string, bool) {
	rec, skip := Parse(line, separator)
	if skip != SkipNone {
		return "", false
	}
	return rec.URL(), true
}

// Parse decomposes a line into a Record. A non-empty Skip is returned for
// lines that Convert drops.
func Parse(line, separator string) (Record, Skip) {
	if separator == "" {
		separator = DefaultSeparator
	}

	raw := strings.TrimFunc(line, isSpace)
	if raw == "" {
		return Record{}, SkipBlank
	}
	if strings.HasPrefix(raw, "#") {
		return Record{}, SkipComment
	}

	left, right, ok := splitFields(raw, separator)
	if !ok {
		return Record{}, SkipMalformed
	}

	return Record{
		Site:        NormalizeSite(left),
		Credentials: ParseCredentials(strings.TrimFunc(right, isSpace)),
	}, SkipNone
}

// splitFields cuts at the first separator. Without a separator the last
// whitespace-delimited token is the credentials and the rest is the site.
func splitFields(raw, separator string) (left, right string, ok bool) {
	if left, right, found := strings.Cut(raw, separator); found {
		return left, right, true
	}

	parts := strings.FieldsFunc(raw, isSpace)
	if len(parts) < 2 {
		return "", "", false
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1], true
}

// NormalizeSite trims whitespace and removes every trailing slash.
// Scheme and case are left alone.
func NormalizeSite(site string) string {
	return strings.TrimRight(strings.TrimFunc(site, isSpace), "/")
}

// ParseCredentials splits user and password at the first ':' or, when there
// is no ':', at the first '@'. A bare value is a user with no password.
func ParseCredentials(creds string) Credentials {
	for _, sep := range []string{":", "@"} {
		if user, password, found := strings.Cut(creds, sep); found {
			return Credentials{User: user, Password: password}
		}
	}
	return Credentials{User: creds}
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// (file, group, record and unit separator, U+001C to U+001F), which list
// exports use as field breaks.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
