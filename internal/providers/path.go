package providers

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	xerrors "github.com/standardbeagle/typofix/internal/errors"
	"github.com/standardbeagle/typofix/internal/extract"
)

// PathProvider proposes replacement specifiers for a relative import that
// resolved to nothing. Candidates keep the shape of the query (the same
// directory prefix with each plausible final segment) so a suggestion can be
// pasted straight over the broken specifier.
type PathProvider struct {
	root string
	exts map[string]bool
}

// NewPathProvider builds a provider for the workspace root. Recognized
// source extensions come from the extractor so specifier and scan semantics
// agree on what a source file is.
func NewPathProvider(root string, extractor *extract.Extractor) *PathProvider {
	exts := make(map[string]bool)
	for _, ext := range extractor.SupportedExtensions() {
		exts[ext] = true
	}
	return &PathProvider{root: root, exts: exts}
}

// Candidates lists the entries of the deepest directory the specifier's
// parent still reaches (a bad final segment lists its intended parent, a bad
// middle segment falls back one level at a time), plus path roots declared
// in manifests between the importing file and the workspace root.
// Source files drop their extension unless the query carried one;
// directories and unrecognized files keep their names.
func (p *PathProvider) Candidates(fromFile, specifier string) ([]string, error) {
	if specifier == "" {
		return nil, nil
	}

	baseDir := filepath.Dir(fromFile)

	dirText := ""
	if idx := strings.LastIndex(specifier, "/"); idx >= 0 {
		dirText = specifier[:idx+1]
	}
	keepExt := p.exts[strings.ToLower(path.Ext(specifier))]

	listDir := filepath.Join(baseDir, filepath.FromSlash(dirText))
	for !isDir(listDir) {
		parent := parentPrefix(dirText)
		if parent == dirText {
			return nil, xerrors.NewProviderError("path", specifier, fs.ErrNotExist)
		}
		dirText = parent
		listDir = filepath.Join(baseDir, filepath.FromSlash(dirText))
	}

	entries, err := os.ReadDir(listDir)
	if err != nil {
		return nil, xerrors.NewProviderError("path", specifier, err)
	}

	set := make(map[string]bool, len(entries))
	self := filepath.Base(fromFile)
	sameDir := listDir == baseDir
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			set[dirText+name] = true
			continue
		}
		if sameDir && name == self {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if p.exts[ext] && !keepExt {
			set[dirText+name[:len(name)-len(ext)]] = true
		} else {
			set[dirText+name] = true
		}
	}

	for _, name := range manifestCandidates(p.root, baseDir) {
		set[name] = true
	}

	return setToSorted(set), nil
}

// parentPrefix drops the last segment of a specifier directory prefix:
// "../models/" becomes "../", "./" and "a/" become "" (the importing file's
// own directory). Returns its input unchanged only when there is nothing
// left to drop.
func parentPrefix(dirText string) string {
	trimmed := strings.TrimSuffix(dirText, "/")
	if trimmed == "" {
		return ""
	}
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ""
	}
	return trimmed[:idx+1]
}
