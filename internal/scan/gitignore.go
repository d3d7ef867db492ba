package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// gitignoreExcludes reads the root .gitignore, if any, and converts its
// entries into doublestar patterns relative to the root. Nested .gitignore
// files and negations are not supported; the root file covers the common
// build-artifact cases without a full gitignore engine.
func gitignoreExcludes(root string) []string {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		if pat := gitignoreToGlob(line); pat != "" {
			patterns = append(patterns, pat)
		}
	}
	return patterns
}

// gitignoreToGlob translates one .gitignore entry into a doublestar pattern
// matched against slash-separated root-relative paths.
func gitignoreToGlob(line string) string {
	// Trailing slash restricts the entry to directories; the glob form
	// below already matches the directory and its contents, so it only
	// needs stripping.
	line = strings.TrimSuffix(line, "/")
	if line == "" {
		return ""
	}

	anchored := strings.HasPrefix(line, "/")
	if anchored {
		line = strings.TrimPrefix(line, "/")
	}

	// Entries without a slash match at any depth; entries with one are
	// relative to the .gitignore location, which for us is the root.
	if !anchored && !strings.Contains(line, "/") {
		line = "**/" + line
	}

	// doublestar's `**` matches zero segments, so `x/**` covers both x
	// itself and everything under it.
	return line + "/**"
}
