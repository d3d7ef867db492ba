package suggest

import (
	"fmt"
	"strings"
)

// Outcome is the closed result of validating one identifier: either Valid,
// meaning no diagnostic should be produced at all, or Invalid carrying the
// ranked corrections. The two variants are exhaustive; FormatMessage handles
// both explicitly.
type Outcome interface {
	isOutcome()
}

// Valid means the name passed validation or no plausible correction cleared
// the threshold. Policy: suppress the diagnostic entirely rather than emit a
// possibly-wrong report.
type Valid struct{}

// Invalid carries the mistyped name and its ranked corrections. Context is
// opaque caller data (for example a syntax-node handle) echoed back
// untouched so the reporting layer can anchor the diagnostic.
type Invalid struct {
	Target      string
	Suggestions []Suggestion
	Context     any
}

func (Valid) isOutcome()   {}
func (Invalid) isOutcome() {}

// ToOutcome wraps a ranking result. An empty suggestion list yields Valid;
// anything else yields Invalid for the given target with the caller's
// context handle attached.
func ToOutcome(target string, suggestions []Suggestion, context any) Outcome {
	if len(suggestions) == 0 {
		return Valid{}
	}
	return Invalid{Target: target, Suggestions: suggestions, Context: context}
}

// FormatMessage renders an outcome for display: the empty string for Valid,
// otherwise one line per suggestion in ranked order. A suggestion with a
// signature renders as "name: signature", otherwise as "name (NN%)".
// No filtering or re-ranking happens here.
func FormatMessage(o Outcome) string {
	switch v := o.(type) {
	case Valid:
		return ""
	case Invalid:
		lines := make([]string, 0, len(v.Suggestions))
		for _, s := range v.Suggestions {
			if s.Signature != "" {
				lines = append(lines, fmt.Sprintf("%s: %s", s.Name, s.Signature))
			} else {
				lines = append(lines, fmt.Sprintf("%s (%d%%)", s.Name, s.Score.Percent()))
			}
		}
		return strings.Join(lines, "\n")
	}
	return ""
}
