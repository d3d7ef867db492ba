// Package providers gathers candidate name pools for typo checking: the
// workspace member vocabulary, per-file export lists, and replacement path
// specifiers. Each provider reduces to "a finite list of strings for a query
// context". Gathering can fail (a file unreadable, a directory gone), and
// those failures are typed so callers can log them and downgrade to an empty
// pool; the ranking layer itself never sees an error.
//
// Everything here is syntactic. No type inference, no module graph: member
// pools come from extraction facts, export lists from parsing one resolved
// file, path candidates from directory listings and manifest declarations.
package providers

import (
	"os"
	"sort"
)

func setToSorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
