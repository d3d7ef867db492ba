package suggest

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		message  string
	}{
		{"readFile", "readfile", "camelCase lowercased"},
		{"read_file", "readfile", "underscore stripped"},
		{"read-file", "readfile", "hyphen stripped"},
		{"read.file", "readfile", "dot stripped"},
		{"src/utils/read", "srcutilsread", "slashes stripped"},
		{"read file", "readfile", "space stripped"},
		{"HTTPServer", "httpserver", "acronym lowercased"},
		{"useState2", "usestate2", "digits kept"},
		{"", "", "empty stays empty"},
		{"___", "", "separator-only collapses to empty"},
	}

	for _, test := range tests {
		got := Normalize(test.input)
		if got != test.expected {
			t.Errorf("%s: Normalize(%q) = %q, expected %q",
				test.message, test.input, got, test.expected)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
		message  string
	}{
		{"readFile", []string{"read", "file"}, "camelCase split"},
		{"toUpperCase", []string{"to", "upper", "case"}, "two camel boundaries"},
		{"read_file", []string{"read", "file"}, "underscore split"},
		{"read file", []string{"read", "file"}, "whitespace split"},
		{"useState2", []string{"use", "state"}, "trailing digit dropped"},
		{"xyz123", []string{"xyz"}, "digit run dropped"},
		{"fetch2me", []string{"fetch", "me"}, "inner digit splits"},
		{"HTTPServer", []string{"httpserver"}, "all-upper run stays joined"},
		{"PascalCase", []string{"pascal", "case"}, "leading uppercase is not a boundary"},
		{"", nil, "empty input"},
		{"_", nil, "separator-only input"},
		{"a", []string{"a"}, "single letter"},
	}

	for _, test := range tests {
		got := Tokenize(test.input)
		if !reflect.DeepEqual(got, test.expected) {
			t.Errorf("%s: Tokenize(%q) = %v, expected %v",
				test.message, test.input, got, test.expected)
		}
	}
}

func TestTokenizeTokensNonEmpty(t *testing.T) {
	inputs := []string{"readFile", "__private__", "a1b2c3", "snake_case_name", "  spaced  out  "}

	for _, input := range inputs {
		for _, tok := range Tokenize(input) {
			if tok == "" {
				t.Errorf("Tokenize(%q) produced an empty token", input)
			}
		}
	}
}

func TestCommonPrefixLen(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"readfile", "readfilesync", 8},
		{"readfil", "readfile", 7},
		{"abc", "xbc", 0},
		{"", "abc", 0},
		{"same", "same", 4},
	}

	for _, test := range tests {
		got := commonPrefixLen(test.a, test.b)
		if got != test.expected {
			t.Errorf("commonPrefixLen(%q, %q) = %d, expected %d",
				test.a, test.b, got, test.expected)
		}
	}
}
