package suggest

import (
	"strings"
	"unicode/utf8"
)

// Signal weights for CompositeScore. Jaro-Winkler dominates because
// character-level slips are the common typo; token overlap rewards shared
// whole words when letters diverge; containment and prefix are small
// tie-breakers; the length penalty discourages much longer candidates for
// short queries.
const (
	weightJaroWinkler  = 0.5
	weightTokenOverlap = 0.3
	weightContainment  = 0.1
	weightPrefix       = 0.1

	lengthPenaltyPerRune = 0.01
	lengthPenaltyCap     = 0.15

	prefixBonusCap = 4
)

// CompositeScore scores how plausible candidate is as the intended spelling
// of query. The function is deterministic and intentionally asymmetric: the
// length penalty applies only when the candidate is longer than the query,
// so CompositeScore(a, b) and CompositeScore(b, a) may differ. Callers must
// keep the (query, candidate) argument order.
func CompositeScore(query, candidate string) Score {
	a := Normalize(query)
	b := Normalize(candidate)

	jw := JaroWinkler(a, b)
	jacc := tokenJaccard(query, candidate)

	contain := 0.0
	if a != "" && b != "" && (strings.Contains(b, a) || strings.Contains(a, b)) {
		contain = 1
	}

	p := commonPrefixLen(a, b)
	if p > prefixBonusCap {
		p = prefixBonusCap
	}
	prefix := float64(p) / prefixBonusCap

	penalty := float64(utf8.RuneCountInString(candidate)-utf8.RuneCountInString(query)) * lengthPenaltyPerRune
	if penalty < 0 {
		penalty = 0
	}
	if penalty > lengthPenaltyCap {
		penalty = lengthPenaltyCap
	}

	raw := weightJaroWinkler*jw +
		weightTokenOverlap*jacc +
		weightContainment*contain +
		weightPrefix*prefix -
		penalty

	return NewScore(raw)
}

// tokenJaccard is the word-level overlap of the two identifiers: the size of
// the token set intersection over the size of the union. Two empty token
// sets count as identical (1); exactly one empty counts as disjoint (0).
func tokenJaccard(query, candidate string) float64 {
	qs := tokenSet(query)
	cs := tokenSet(candidate)

	if len(qs) == 0 && len(cs) == 0 {
		return 1
	}
	if len(qs) == 0 || len(cs) == 0 {
		return 0
	}

	inter := 0
	for t := range qs {
		if cs[t] {
			inter++
		}
	}
	union := len(qs) + len(cs) - inter
	return float64(inter) / float64(union)
}
