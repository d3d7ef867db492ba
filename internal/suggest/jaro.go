package suggest

// Jaro computes the Jaro similarity of a and b in [0, 1]. Identical strings
// score 1; if exactly one string is empty the score is 0. Characters match
// when equal and within a window of floor(max(|a|,|b|)/2)-1 positions;
// matching is greedy left to right, taking the first unmatched position.
// Transpositions are matched characters whose relative order differs between
// the two strings.
func Jaro(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	la := len(ra)
	lb := len(rb)

	window := la
	if lb > window {
		window = lb
	}
	window = window/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, la)
	matchedB := make([]bool, lb)
	matches := 0

	for i := 0; i < la; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > lb {
			hi = lb
		}
		for j := lo; j < hi; j++ {
			if matchedB[j] || ra[i] != rb[j] {
				continue
			}
			matchedA[i] = true
			matchedB[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	// Count positions where the k-th matched rune of a differs from the
	// k-th matched rune of b.
	transpositions := 0
	k := 0
	for i := 0; i < la; i++ {
		if !matchedA[i] {
			continue
		}
		for !matchedB[k] {
			k++
		}
		if ra[i] != rb[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	return (m/float64(la) + m/float64(lb) + (m-float64(transpositions)/2)/m) / 3
}

// Winkler prefix bonus parameters: at most four leading runes contribute,
// each moving the score 10% of the way toward 1.
const (
	winklerPrefixCap = 4
	winklerScale     = 0.1
)

// JaroWinkler computes Jaro similarity boosted by the length of the common
// prefix. The boost is applied unconditionally, not gated on a base-score
// threshold, so JaroWinkler(a, b) >= Jaro(a, b) always holds and the result
// stays in [0, 1].
func JaroWinkler(a, b string) float64 {
	j := Jaro(a, b)
	p := commonPrefixLen(a, b)
	if p > winklerPrefixCap {
		p = winklerPrefixCap
	}
	return j + float64(p)*winklerScale*(1-j)
}
