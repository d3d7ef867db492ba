package suggest

import (
	"strings"
	"unicode"
)

// isSeparator reports whether r is one of the characters treated as noise
// when comparing identifiers: underscore, whitespace, dot, slash, hyphen.
// These cover member chains, module paths, and the common naming styles.
func isSeparator(r rune) bool {
	return r == '_' || r == '.' || r == '/' || r == '-' || unicode.IsSpace(r)
}

// Normalize lowercases s and strips separator characters. The result is a
// metric-internal canonical form and is never shown to the user.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isSeparator(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Tokenize splits an identifier into lowercase words. Split points are
// camel-case boundaries (an uppercase letter following a non-uppercase
// character), digits, underscores, and whitespace; the delimiter characters
// themselves are dropped. Empty pieces are dropped, so every returned token
// has length > 0. Order reflects position in the source string; scoring
// treats the result as an unordered set.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	runes := []rune(s)
	word := make([]rune, 0, 16)
	var tokens []string

	flush := func() {
		if len(word) > 0 {
			tokens = append(tokens, strings.ToLower(string(word)))
			word = word[:0]
		}
	}

	for i, r := range runes {
		if unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]) {
			flush()
		}
		word = append(word, r)
	}
	flush()

	return tokens
}

// tokenSet folds the token sequence into a set for overlap scoring.
func tokenSet(s string) map[string]bool {
	tokens := Tokenize(s)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// commonPrefixLen counts the leading runes a and b share.
func commonPrefixLen(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}
	for i := 0; i < n; i++ {
		if ra[i] != rb[i] {
			return i
		}
	}
	return n
}
