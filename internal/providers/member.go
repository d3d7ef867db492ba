package providers

import (
	"github.com/standardbeagle/typofix/internal/extract"
)

// minRefCount is how many occurrences an undeclared member name needs before
// it counts as workspace vocabulary. A typo is almost always unique; a name
// the codebase uses twice is a convention, not a slip.
const minRefCount = 2

// MemberProvider answers member-access questions from the workspace's
// extraction facts. Without type inference there is no per-receiver member
// set, so both knownness and candidates come from the workspace-wide pool:
// declared member names plus access names seen often enough to trust.
type MemberProvider struct {
	declared map[string]bool
	refs     map[string]int
	pool     []string
}

// NewMemberProvider indexes the given facts. Nil entries are skipped so a
// partially failed extraction pass can still feed the provider.
func NewMemberProvider(facts []*extract.FileFacts) *MemberProvider {
	p := &MemberProvider{
		declared: make(map[string]bool),
		refs:     make(map[string]int),
	}

	members := make(map[string]bool)
	for _, f := range facts {
		if f == nil {
			continue
		}
		for _, d := range f.Decls {
			if d.Name != "" {
				p.declared[d.Name] = true
			}
		}
		for _, name := range f.MemberDeclNames() {
			members[name] = true
		}
		for _, m := range f.Members {
			if m.Name != "" {
				p.refs[m.Name]++
			}
		}
	}

	pool := make(map[string]bool, len(members))
	for name := range members {
		pool[name] = true
	}
	for name, count := range p.refs {
		if count >= minRefCount {
			pool[name] = true
		}
	}
	p.pool = setToSorted(pool)
	return p
}

// Known reports whether a member name needs no diagnostic: declared anywhere
// in the workspace, or accessed at least minRefCount times. Library members
// the workspace never declares (res.json, list.append) clear the second bar
// as soon as they are used consistently.
func (p *MemberProvider) Known(name string) bool {
	return p.declared[name] || p.refs[name] >= minRefCount
}

// Candidates returns the member candidate pool, sorted. Callers must not
// mutate the returned slice.
func (p *MemberProvider) Candidates() []string {
	return p.pool
}
