package suggest

import (
	"strings"
	"testing"
)

func TestToOutcomeSuppressesEmptyResults(t *testing.T) {
	outcome := ToOutcome("xyz123", nil, "ctx")

	if _, ok := outcome.(Valid); !ok {
		t.Fatalf("empty suggestions should yield Valid, got %T", outcome)
	}
	if msg := FormatMessage(outcome); msg != "" {
		t.Errorf("Valid outcome should format to empty string, got %q", msg)
	}
}

func TestToOutcomeInvalid(t *testing.T) {
	suggestions := []Suggestion{
		{Name: "readFile", Score: NewScore(0.9)},
		{Name: "readFileSync", Score: NewScore(0.7)},
	}
	ctxRef := &struct{ node int }{node: 42}

	outcome := ToOutcome("readFil", suggestions, ctxRef)

	inv, ok := outcome.(Invalid)
	if !ok {
		t.Fatalf("expected Invalid, got %T", outcome)
	}
	if inv.Target != "readFil" {
		t.Errorf("target = %q, expected readFil", inv.Target)
	}
	if len(inv.Suggestions) != 2 {
		t.Errorf("suggestion count = %d, expected 2", len(inv.Suggestions))
	}
	if inv.Context != ctxRef {
		t.Error("context handle was not echoed back unchanged")
	}
}

func TestFormatMessageRankedLines(t *testing.T) {
	outcome := ToOutcome("readFil", []Suggestion{
		{Name: "readFile", Score: NewScore(0.9)},
		{Name: "readFileSync", Score: NewScore(0.68)},
	}, nil)

	got := FormatMessage(outcome)
	lines := strings.Split(got, "\n")

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "readFile (90%)" {
		t.Errorf("line 1 = %q, expected \"readFile (90%%)\"", lines[0])
	}
	if lines[1] != "readFileSync (68%)" {
		t.Errorf("line 2 = %q, expected \"readFileSync (68%%)\"", lines[1])
	}
}

func TestFormatMessagePrefersSignature(t *testing.T) {
	outcome := ToOutcome("substr", []Suggestion{
		{Name: "substring", Score: NewScore(0.9), Signature: "substring(start, end)"},
		{Name: "substr", Score: NewScore(0.8)},
	}, nil)

	got := FormatMessage(outcome)
	lines := strings.Split(got, "\n")

	if lines[0] != "substring: substring(start, end)" {
		t.Errorf("line 1 = %q, expected signature form", lines[0])
	}
	if lines[1] != "substr (80%)" {
		t.Errorf("line 2 = %q, expected percent form", lines[1])
	}
}

func TestFormatMessageNoReordering(t *testing.T) {
	// Formatting must preserve the order it is handed, even if a caller
	// passes an unsorted list.
	outcome := ToOutcome("q", []Suggestion{
		{Name: "zeta", Score: NewScore(0.4)},
		{Name: "alpha", Score: NewScore(0.9)},
	}, nil)

	got := FormatMessage(outcome)
	if !strings.HasPrefix(got, "zeta") {
		t.Errorf("formatting reordered suggestions: %q", got)
	}
}

func TestWithSignature(t *testing.T) {
	s := Suggestion{Name: "map", Score: NewScore(0.5)}
	withSig := s.WithSignature("map(fn)")

	if withSig.Signature != "map(fn)" {
		t.Errorf("signature = %q, expected map(fn)", withSig.Signature)
	}
	if withSig.Score != s.Score || withSig.Name != s.Name {
		t.Error("WithSignature must not change name or score")
	}
	if s.Signature != "" {
		t.Error("WithSignature must not mutate the receiver")
	}
}
