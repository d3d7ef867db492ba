package suggest

import "strings"

// Mode selects the admissibility rules for a candidate pool. Member and
// import lookups use ModeStandard; export lookups use ModeExport, which
// additionally hides double-underscore internals and the "default" binding.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeExport   Mode = "export"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeStandard || m == ModeExport
}

// IsAdmissible reports whether candidate may be proposed as a correction for
// query. The rules compose by conjunction; any one violation disqualifies:
//
//   - empty candidates are never proposed;
//   - a candidate identical to the query is not a correction;
//   - a leading underscore marks a private name, which is never volunteered;
//   - in ModeExport, a double-underscore prefix marks an internal/reserved
//     name and the literal "default" is a syntactic binding, not a name a
//     user mistyped.
//
// The predicate is pure; collaborators may pre-filter candidate pools with
// it before an expensive gathering step.
func IsAdmissible(candidate, query string, mode Mode) bool {
	if candidate == "" {
		return false
	}
	if candidate == query {
		return false
	}
	if strings.HasPrefix(candidate, "_") {
		return false
	}
	if mode == ModeExport {
		if strings.HasPrefix(candidate, "__") {
			return false
		}
		if candidate == "default" {
			return false
		}
	}
	return true
}
