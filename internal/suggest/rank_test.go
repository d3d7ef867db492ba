package suggest

import (
	"reflect"
	"testing"
)

func TestRankDroppedLetter(t *testing.T) {
	got := Rank("readFil", []string{"readFile", "readFileSync", "writeFile"}, DefaultMinScore)

	if len(got) == 0 {
		t.Fatal("expected suggestions for readFil")
	}
	if got[0].Name != "readFile" {
		t.Errorf("top suggestion = %q, expected readFile", got[0].Name)
	}

	var writeFileScore Score
	found := false
	for _, s := range got {
		if s.Name == "writeFile" {
			writeFileScore = s.Score
			found = true
		}
	}
	if found && got[0].Score <= writeFileScore {
		t.Errorf("readFile score %.4f not above writeFile score %.4f",
			float64(got[0].Score), float64(writeFileScore))
	}
}

func TestRankMethodTypo(t *testing.T) {
	got := Rank("toUpperCas", []string{"toUpperCase", "toLowerCase", "trim"}, DefaultMinScore)

	if len(got) == 0 {
		t.Fatal("expected suggestions for toUpperCas")
	}
	if got[0].Name != "toUpperCase" {
		t.Errorf("top suggestion = %q, expected toUpperCase", got[0].Name)
	}
}

func TestRankNothingClearsThreshold(t *testing.T) {
	got := Rank("xyz123", []string{"apple", "banana"}, DefaultMinScore)

	if len(got) != 0 {
		t.Errorf("expected empty result, got %d suggestions (first: %+v)", len(got), got[0])
	}
}

func TestRankExcludesPrivateNames(t *testing.T) {
	got := Rank("useStae", []string{"useState", "useRef", "_internalHook"}, DefaultMinScore)

	if len(got) == 0 {
		t.Fatal("expected suggestions for useStae")
	}
	if got[0].Name != "useState" {
		t.Errorf("top suggestion = %q, expected useState", got[0].Name)
	}
	for _, s := range got {
		if s.Name == "_internalHook" {
			t.Error("_internalHook must be excluded regardless of score")
		}
	}
}

func TestRankInvariants(t *testing.T) {
	candidates := []string{
		"handleRequest", "handleRequests", "handlerRequest", "handleReqest",
		"handleRequested", "hanldeRequest", "handleQuest", "handelRequest",
	}

	got := Rank("handleRequst", candidates, DefaultMinScore)

	if len(got) > MaxSuggestions {
		t.Errorf("got %d suggestions, cap is %d", len(got), MaxSuggestions)
	}
	for i := 0; i < len(got)-1; i++ {
		if got[i].Score < got[i+1].Score {
			t.Errorf("scores increase at position %d: %.4f < %.4f",
				i, float64(got[i].Score), float64(got[i+1].Score))
		}
	}
	for _, s := range got {
		if float64(s.Score) < DefaultMinScore {
			t.Errorf("suggestion %q score %.4f below threshold %.2f",
				s.Name, float64(s.Score), DefaultMinScore)
		}
	}
}

func TestRankTruncatesToCap(t *testing.T) {
	// Ten near-identical candidates all clear the threshold; only five come
	// back.
	candidates := []string{
		"counter1x", "counter2x", "counter3x", "counter4x", "counter5x",
		"counter6x", "counter7x", "counter8x", "counter9x", "counterAx",
	}

	got := Rank("counter", candidates, DefaultMinScore)

	if len(got) != MaxSuggestions {
		t.Errorf("got %d suggestions, expected exactly %d", len(got), MaxSuggestions)
	}
}

func TestRankTieBreakAlphabetical(t *testing.T) {
	// "abc" and "abd" differ from "ab" by the same appended letter and score
	// identically through the same float operations, so the name decides.
	got := Rank("ab", []string{"abd", "abc"}, DefaultMinScore)

	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if got[0].Score != got[1].Score {
		t.Fatalf("test premise broken: scores differ (%.6f vs %.6f)",
			float64(got[0].Score), float64(got[1].Score))
	}
	if got[0].Name != "abc" || got[1].Name != "abd" {
		t.Errorf("tie not broken alphabetically: got [%s, %s]", got[0].Name, got[1].Name)
	}
}

func TestRankDeterministic(t *testing.T) {
	candidates := []string{"readFile", "readFileSync", "writeFile", "readLine", "realFile"}

	first := Rank("readFil", candidates, DefaultMinScore)
	second := Rank("readFil", candidates, DefaultMinScore)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical calls disagree:\n  first:  %+v\n  second: %+v", first, second)
	}
}

func TestRankZeroThresholdUsesDefault(t *testing.T) {
	// Passing 0 means "use the default", not "accept everything".
	got := Rank("xyz123", []string{"apple"}, 0)

	if len(got) != 0 {
		t.Errorf("zero threshold should fall back to default, got %d suggestions", len(got))
	}
}

func TestRankEmptyInputs(t *testing.T) {
	if got := Rank("query", nil, DefaultMinScore); len(got) != 0 {
		t.Errorf("nil candidates should produce no suggestions, got %d", len(got))
	}
	if got := Rank("", []string{"name"}, DefaultMinScore); len(got) > MaxSuggestions {
		t.Errorf("empty query still bounded, got %d", len(got))
	}
}

func TestPathMinScore(t *testing.T) {
	tests := []struct {
		query    string
		expected float64
	}{
		{"./utils", pathMinScoreShort},
		{"short", pathMinScoreShort},
		{"exactlyten", pathMinScoreLong},
		{"./components/Button", pathMinScoreLong},
		{"", pathMinScoreShort},
	}

	for _, test := range tests {
		if got := PathMinScore(test.query); got != test.expected {
			t.Errorf("PathMinScore(%q) = %.2f, expected %.2f", test.query, got, test.expected)
		}
	}
}

func BenchmarkRank(b *testing.B) {
	candidates := []string{
		"readFile", "readFileSync", "writeFile", "writeFileSync", "appendFile",
		"readdir", "realpath", "readlink", "createReadStream", "createWriteStream",
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Rank("readFil", candidates, DefaultMinScore)
	}
}
