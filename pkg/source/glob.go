package source

import (
	"fmt"
	"path/filepath"
)

// ExpandGlobs expands a list of file paths and glob patterns into a deduplicated
// list of matching file paths. Patterns keep their command-line order; matches
// of a single pattern come back sorted from filepath.Glob. Patterns that don't
// match any files are returned as-is (the caller should handle file-not-found
// errors). Standard input ("-") is passed through unchanged.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}

	for _, pattern := range patterns {
		if pattern == StdinName {
			add(pattern)
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			// Literal path, so that opening it later gives a clear error
			add(pattern)
			continue
		}

		for _, match := range matches {
			add(match)
		}
	}

	return result, nil
}
