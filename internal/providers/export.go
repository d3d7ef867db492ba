package providers

import (
	"os"
	"path/filepath"
	"strings"

	xerrors "github.com/standardbeagle/typofix/internal/errors"
	"github.com/standardbeagle/typofix/internal/extract"
)

// ExportProvider resolves relative import specifiers to workspace files and
// lists their exported names. Resolution is probing only: try the path, then
// each supported extension, then the directory index conventions. Never a
// module graph.
type ExportProvider struct {
	extractor *extract.Extractor
	exts      []string
	indexes   []string
}

// NewExportProvider builds a provider probing with the extractor's supported
// extensions.
func NewExportProvider(extractor *extract.Extractor) *ExportProvider {
	exts := extractor.SupportedExtensions()
	indexes := make([]string, 0, len(exts)+2)
	for _, ext := range exts {
		indexes = append(indexes, "index"+ext)
	}
	// Per-language directory entry points beyond the index.* convention.
	indexes = append(indexes, "__init__.py", "mod.rs")

	return &ExportProvider{extractor: extractor, exts: exts, indexes: indexes}
}

// Resolve maps a relative specifier to the file it names, probing extensions
// and directory indexes. Bare specifiers (package imports) report false:
// without a module graph they are out of reach, and guessing would produce
// wrong diagnostics.
func (p *ExportProvider) Resolve(fromFile, specifier string) (string, bool) {
	if specifier == "" || !strings.HasPrefix(specifier, ".") {
		return "", false
	}

	base := filepath.Dir(fromFile)
	target := filepath.Join(base, filepath.FromSlash(specifier))

	if isFile(target) {
		return target, true
	}
	for _, ext := range p.exts {
		if probe := target + ext; isFile(probe) {
			return probe, true
		}
	}
	if isDir(target) {
		for _, index := range p.indexes {
			if probe := filepath.Join(target, index); isFile(probe) {
				return probe, true
			}
		}
	}
	return "", false
}

// Exports reads and parses one file, returning its exported names sorted and
// distinct. The caller decides the admissibility mode; this is the raw list.
func (p *ExportProvider) Exports(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.NewProviderError("export", path, err)
	}
	facts, err := p.extractor.Extract(path, content)
	if err != nil {
		return nil, xerrors.NewProviderError("export", path, err)
	}
	return facts.Exports, nil
}
