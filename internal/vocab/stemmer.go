package vocab

import (
	"strings"

	"github.com/surgebase/porter2"
)

// Stemmer normalizes identifier tokens to word stems so morphological
// variants (authenticate, authentication, authenticating) land in one cluster.
type Stemmer struct {
	enabled    bool
	minLength  int
	exclusions map[string]bool // Words to never stem
}

// NewStemmer creates a stemmer. Words shorter than minLength pass through
// unchanged, as do words on the exclusion list. Exclusions are matched
// case-insensitively.
func NewStemmer(enabled bool, minLength int, exclusions []string) *Stemmer {
	if minLength <= 0 {
		minLength = 3
	}

	set := make(map[string]bool, len(exclusions))
	for _, word := range exclusions {
		set[strings.ToLower(word)] = true
	}

	return &Stemmer{
		enabled:    enabled,
		minLength:  minLength,
		exclusions: set,
	}
}

// DefaultStemmer returns a stemmer tuned for identifier tokens. Common
// protocol and domain acronyms pass through unchanged so "http" does not
// collide with "https" after stemming.
func DefaultStemmer() *Stemmer {
	return NewStemmer(true, 3, []string{
		"api", "css", "db", "dom", "http", "https", "id", "json",
		"jsx", "sql", "ui", "uri", "url", "uuid", "xml",
	})
}

// IsEnabled checks if stemming is enabled
func (s *Stemmer) IsEnabled() bool {
	return s.enabled
}

// IsExcluded checks if a word is in the exclusion list
func (s *Stemmer) IsExcluded(word string) bool {
	return s.exclusions[strings.ToLower(word)]
}

// Stem returns the porter2 stem of a word. Input is lowercased first since
// identifier tokens arrive in mixed case. Returns the lowercased word itself
// when stemming is disabled, the word is excluded, or it is too short.
func (s *Stemmer) Stem(word string) string {
	lower := strings.ToLower(word)

	if !s.enabled {
		return lower
	}
	if s.exclusions[lower] {
		return lower
	}
	if len(lower) < s.minLength {
		return lower
	}

	return porter2.Stem(lower)
}

// StemAll applies stemming to multiple words
func (s *Stemmer) StemAll(words []string) []string {
	result := make([]string, 0, len(words))
	for _, word := range words {
		result = append(result, s.Stem(word))
	}
	return result
}
