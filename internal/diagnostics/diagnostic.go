// Package diagnostics defines the report model shared by the CLI and MCP
// surfaces. Checkers emit Diagnostics; renderers turn them into text or JSON
// without re-ranking or re-filtering the suggestions they carry.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/standardbeagle/typofix/internal/suggest"
)

// Kind identifies which resolution surface produced a diagnostic.
type Kind string

const (
	KindMember Kind = "member"
	KindImport Kind = "import"
	KindPath   Kind = "path"
)

// Diagnostic is one unresolved reference with its ranked corrections.
// Suggestions preserve the order the ranker produced; Fix is the top-ranked
// name, or empty when nothing cleared the score threshold.
type Diagnostic struct {
	File        string               `json:"file"`
	Line        int                  `json:"line"`
	Column      int                  `json:"column"`
	Kind        Kind                 `json:"kind"`
	Target      string               `json:"target"`
	Fix         string               `json:"fix,omitempty"`
	Suggestions []suggest.Suggestion `json:"suggestions,omitempty"`
}

// New builds a diagnostic from a ranked suggestion list. The first
// suggestion, when present, becomes the proposed fix.
func New(file string, line, column int, kind Kind, target string, suggestions []suggest.Suggestion) Diagnostic {
	d := Diagnostic{
		File:        file,
		Line:        line,
		Column:      column,
		Kind:        kind,
		Target:      target,
		Suggestions: suggestions,
	}
	if len(suggestions) > 0 {
		d.Fix = suggestions[0].Name
	}
	return d
}

// Headline is the one-line problem statement without suggestions.
func (d Diagnostic) Headline() string {
	switch d.Kind {
	case KindImport:
		return fmt.Sprintf("unknown export %q", d.Target)
	case KindPath:
		return fmt.Sprintf("unresolved import %q", d.Target)
	default:
		return fmt.Sprintf("unknown member %q", d.Target)
	}
}

// Sort orders diagnostics by file, line, column, and target so output is
// stable across runs regardless of scan order.
func Sort(ds []Diagnostic) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].File != ds[j].File {
			return ds[i].File < ds[j].File
		}
		if ds[i].Line != ds[j].Line {
			return ds[i].Line < ds[j].Line
		}
		if ds[i].Column != ds[j].Column {
			return ds[i].Column < ds[j].Column
		}
		return ds[i].Target < ds[j].Target
	})
}

// Report aggregates the diagnostics from one checker run.
type Report struct {
	Root         string       `json:"root,omitempty"`
	FilesScanned int          `json:"files_scanned"`
	DurationMS   int64        `json:"duration_ms"`
	Diagnostics  []Diagnostic `json:"diagnostics"`
}

// HasProblems reports whether the run found anything to fix.
func (r *Report) HasProblems() bool {
	return r != nil && len(r.Diagnostics) > 0
}
