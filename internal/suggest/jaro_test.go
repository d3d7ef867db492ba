package suggest

import (
	"math"
	"testing"
)

func TestJaroKnownValues(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
		message  string
	}{
		{"martha", "marhta", 0.944444, "classic transposition pair"},
		{"dixon", "dicksonx", 0.766667, "classic insertion pair"},
		{"readfil", "readfile", 0.958333, "dropped final letter"},
		{"abc", "abc", 1.0, "identical"},
		{"", "", 1.0, "both empty are identical"},
		{"", "abc", 0.0, "left empty"},
		{"abc", "", 0.0, "right empty"},
		{"xyz", "abc", 0.0, "no common characters"},
	}

	for _, test := range tests {
		got := Jaro(test.a, test.b)
		if math.Abs(got-test.expected) > 1e-5 {
			t.Errorf("%s: Jaro(%q, %q) = %.6f, expected %.6f",
				test.message, test.a, test.b, got, test.expected)
		}
	}
}

func TestJaroReflexive(t *testing.T) {
	inputs := []string{"a", "readFile", "toUpperCase", "useState", "x_y_z", "HTTPServer"}

	for _, s := range inputs {
		if got := Jaro(s, s); got != 1.0 {
			t.Errorf("Jaro(%q, %q) = %.6f, expected 1.0", s, s, got)
		}
	}
}

func TestJaroSymmetric(t *testing.T) {
	pairs := []struct{ a, b string }{
		{"readfil", "readfile"},
		{"usestae", "usestate"},
		{"martha", "marhta"},
		{"dixon", "dicksonx"},
		{"short", "averylongidentifiername"},
		{"", "nonempty"},
	}

	for _, p := range pairs {
		ab := Jaro(p.a, p.b)
		ba := Jaro(p.b, p.a)
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("Jaro not symmetric: (%q,%q)=%.9f vs (%q,%q)=%.9f",
				p.a, p.b, ab, p.b, p.a, ba)
		}
	}
}

func TestJaroBounds(t *testing.T) {
	inputs := []string{"", "a", "ab", "readfile", "writefile", "touppercase", "xyz123", "aaaaaaaaaaaaaaaa"}

	for _, a := range inputs {
		for _, b := range inputs {
			got := Jaro(a, b)
			if got < 0 || got > 1 {
				t.Errorf("Jaro(%q, %q) = %.6f, out of bounds [0,1]", a, b, got)
			}
		}
	}
}

func TestJaroMatchingWindow(t *testing.T) {
	// Window is floor(max/2)-1, so equal characters further apart than that
	// never match.
	if got := Jaro("ab", "ba"); got != 0 {
		t.Errorf("Jaro(\"ab\", \"ba\") = %.6f, expected 0 (window excludes both)", got)
	}

	// A shared character at the same position always matches.
	got := Jaro("ab", "ac")
	if math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("Jaro(\"ab\", \"ac\") = %.6f, expected %.6f", got, 2.0/3.0)
	}
}

func TestJaroWinklerPrefixBoost(t *testing.T) {
	// Low base similarity with a shared prefix: the boost applies
	// unconditionally, with no minimum-score gate.
	base := Jaro("abcdefgh", "abzzzzzz")
	boosted := JaroWinkler("abcdefgh", "abzzzzzz")

	if base >= 0.7 {
		t.Fatalf("test premise broken: base similarity %.4f not below 0.7", base)
	}
	if boosted <= base {
		t.Errorf("JaroWinkler %.6f should exceed Jaro %.6f for prefixed pair", boosted, base)
	}

	expected := base + 2*winklerScale*(1-base)
	if math.Abs(boosted-expected) > 1e-9 {
		t.Errorf("JaroWinkler boost = %.6f, expected %.6f", boosted, expected)
	}
}

func TestJaroWinklerPrefixCap(t *testing.T) {
	// Prefixes longer than four runes contribute no extra boost.
	j := Jaro("readfil", "readfile")
	got := JaroWinkler("readfil", "readfile")
	expected := j + 4*winklerScale*(1-j)

	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("JaroWinkler(\"readfil\", \"readfile\") = %.6f, expected %.6f (prefix capped at 4)",
			got, expected)
	}
}

func TestJaroWinklerNeverBelowJaro(t *testing.T) {
	inputs := []string{"", "a", "ab", "readfile", "readfil", "writefile", "usestate", "usestae", "martha", "marhta"}

	for _, a := range inputs {
		for _, b := range inputs {
			j := Jaro(a, b)
			jw := JaroWinkler(a, b)
			if jw < j {
				t.Errorf("JaroWinkler(%q, %q) = %.6f below Jaro %.6f", a, b, jw, j)
			}
			if jw < 0 || jw > 1 {
				t.Errorf("JaroWinkler(%q, %q) = %.6f, out of bounds [0,1]", a, b, jw)
			}
		}
	}
}

func TestJaroWinklerKnownValues(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		{"martha", "marhta", 0.961111},
		{"dixon", "dicksonx", 0.813333},
	}

	for _, test := range tests {
		got := JaroWinkler(test.a, test.b)
		if math.Abs(got-test.expected) > 1e-5 {
			t.Errorf("JaroWinkler(%q, %q) = %.6f, expected %.6f",
				test.a, test.b, got, test.expected)
		}
	}
}

func BenchmarkJaro(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Jaro("abstractfactorypatternbuilder", "abstactfactrypaternbuilder")
	}
}

func BenchmarkJaroWinkler(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = JaroWinkler("getusername", "getusernme")
	}
}
