// Package suggest implements the similarity scoring and ranking engine that
// turns a mistyped identifier plus a pool of known names into a short,
// ordered list of plausible corrections.
//
// Every function in the package is a total, deterministic mapping from
// inputs to outputs: no I/O, no shared state, no error channel. Degenerate
// input (empty query, empty pool, separator-only strings) produces a
// well-defined result rather than a failure, so the package is safe to call
// concurrently and trivially memoizable by callers.
//
// # Scoring
//
// CompositeScore blends four signals into one bounded score:
//
//  1. Jaro-Winkler similarity of the normalized strings - catches
//     character-level slips (transpositions, dropped letters) and rewards
//     shared prefixes, the most common keyboard mistakes;
//  2. token overlap (Jaccard) - rewards identifiers sharing whole words even
//     when letter-level similarity is poor (fetchUserData vs userData);
//  3. containment - a small bonus when one normalized form contains the
//     other;
//  4. prefix ratio - a small bonus for up to four shared leading characters;
//
// minus a capped penalty that grows with how much longer the candidate is
// than the query. The penalty direction makes the score asymmetric on
// purpose; see CompositeScore.
//
// # Ranking
//
// Rank filters the pool with IsAdmissible, scores the survivors, drops
// everything under the threshold, sorts by score with a deterministic
// name tie-break, and truncates to MaxSuggestions. An empty result means
// "say nothing": ToOutcome maps it to Valid and FormatMessage to "".
//
// # Consumers
//
// Three lookups share this engine: object members, imported/exported names,
// and module paths. They differ only in the admissibility mode they
// pre-filter with (ModeStandard vs ModeExport) and the threshold they pass
// to Rank (DefaultMinScore vs the adaptive PathMinScore).
package suggest
