package suggest

import (
	"sort"
	"unicode/utf8"
)

// Rank scores candidates against query and returns the plausible corrections
// in presentation order:
//
//  1. candidates failing IsAdmissible (ModeStandard) are discarded;
//  2. survivors are scored with CompositeScore;
//  3. scores below minScore are discarded;
//  4. the rest sort by score descending, ties broken by name ascending so
//     output is reproducible across runs;
//  5. the list is truncated to MaxSuggestions entries.
//
// Export pools should be pre-filtered with IsAdmissible(..., ModeExport)
// before calling Rank. A minScore <= 0 falls back to DefaultMinScore.
func Rank(query string, candidates []string, minScore float64) []Suggestion {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}

	ranked := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		if !IsAdmissible(c, query, ModeStandard) {
			continue
		}
		score := CompositeScore(query, c)
		if float64(score) < minScore {
			continue
		}
		ranked = append(ranked, Suggestion{Name: c, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}
	return ranked
}

// Path-threshold parameters. Short path queries need a stricter bar: a one
// or two character slip moves the score of a short string much further than
// the same slip in a long one.
const (
	pathMinScoreLong    = 0.33
	pathMinScoreShort   = 0.35
	pathLongQueryLength = 10
)

// PathMinScore returns the adaptive ranking threshold used for module-path
// queries: pathMinScoreLong for queries of pathLongQueryLength runes or
// more, pathMinScoreShort otherwise.
func PathMinScore(query string) float64 {
	if utf8.RuneCountInString(query) >= pathLongQueryLength {
		return pathMinScoreLong
	}
	return pathMinScoreShort
}
