package suggest

// Score is a similarity value constrained to the closed interval [0, 1].
// Construct values with NewScore so the bound is enforced in exactly one
// place; everywhere else a Score behaves as a plain bounded number.
type Score float64

// NewScore clamps v into [0, 1] and returns it as a Score.
func NewScore(v float64) Score {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return Score(v)
}

// Percent returns the score as a whole percentage for display (0.874 -> 87).
func (s Score) Percent() int {
	return int(float64(s)*100 + 0.5)
}

// Bounds applied to every ranking result.
const (
	// MaxSuggestions caps how many corrections a ranking returns.
	MaxSuggestions = 5

	// DefaultMinScore is the threshold below which a candidate is not worth
	// proposing. Path-shaped queries use PathMinScore instead.
	DefaultMinScore = 0.3
)

// Suggestion is one proposed correction. Signature is optional display
// metadata supplied by a collaborator after ranking; the engine never
// computes or inspects it.
type Suggestion struct {
	Name      string `json:"name"`
	Score     Score  `json:"score"`
	Signature string `json:"signature,omitempty"`
}

// WithSignature returns a copy of the suggestion carrying display metadata.
// The score and rank position are unaffected.
func (s Suggestion) WithSignature(sig string) Suggestion {
	s.Signature = sig
	return s
}
