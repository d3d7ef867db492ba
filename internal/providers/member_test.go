package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/typofix/internal/extract"
)

func workspaceFacts() []*extract.FileFacts {
	return []*extract.FileFacts{
		{
			Path: "src/user.js",
			Decls: []extract.Decl{
				{Name: "User", Kind: extract.KindClass},
				{Name: "saveUser", Kind: extract.KindMethod},
				{Name: "name", Kind: extract.KindField},
				{Name: "helper", Kind: extract.KindFunction},
			},
			Members: []extract.MemberRef{
				{Name: "fetchData", Line: 3},
				{Name: "fetchData", Line: 9},
				{Name: "fetcData", Line: 14},
			},
		},
		nil, // a file whose extraction failed
		{
			Path: "src/api.js",
			Decls: []extract.Decl{
				{Name: "saveUser", Kind: extract.KindMethod},
			},
		},
	}
}

func TestMemberProviderCandidates(t *testing.T) {
	p := NewMemberProvider(workspaceFacts())

	// Declared members plus names referenced at least twice, sorted and
	// distinct. Plain functions and classes are not member candidates, and
	// the one-off fetcData never enters the pool.
	assert.Equal(t, []string{"fetchData", "name", "saveUser"}, p.Candidates())
}

func TestMemberProviderKnown(t *testing.T) {
	p := NewMemberProvider(workspaceFacts())

	tests := []struct {
		name string
		want bool
	}{
		{"saveUser", true},  // declared member
		{"User", true},      // declared, any kind counts as known
		{"helper", true},    // declared function
		{"fetchData", true}, // referenced twice, workspace vocabulary
		{"fetcData", false}, // referenced once, likely the typo itself
		{"missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Known(tt.name))
		})
	}
}

func TestMemberProviderEmptyWorkspace(t *testing.T) {
	p := NewMemberProvider(nil)

	assert.Empty(t, p.Candidates())
	assert.False(t, p.Known("anything"))
}
