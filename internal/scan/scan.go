// Package scan finds the checkable source files of a workspace. The scanner
// walks the root once, applies the config's include/exclude globs plus the
// workspace .gitignore, classifies files by language, and reads content with
// a bounded worker pool. The watcher keeps a scan fresh by translating
// filesystem events into debounced change batches.
package scan

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/typofix/internal/config"
	"github.com/standardbeagle/typofix/internal/debug"
	xerrors "github.com/standardbeagle/typofix/internal/errors"
	"github.com/standardbeagle/typofix/internal/extract"
)

// maxFileBytes caps how large a source file the scanner will read. Anything
// bigger is generated or vendored output, not hand-typed code.
const maxFileBytes = 10 << 20

// File is one scanned source file with its content.
type File struct {
	Path     string // absolute
	RelPath  string // slash-separated, relative to the scan root
	Language string
	Size     int64
	Hash     uint64 // xxhash64 of Content
	Content  []byte
}

// Scanner walks a workspace per the configured filters.
type Scanner struct {
	root      string
	include   []string
	exclude   []string
	languages map[string]bool
	extractor *extract.Extractor
	workers   int
}

// NewScanner builds a scanner for the config's root. The extractor supplies
// language classification so scan and extraction can never disagree about
// what a .tsx file is.
func NewScanner(cfg *config.Config, ex *extract.Extractor) *Scanner {
	var languages map[string]bool
	if len(cfg.Languages) > 0 {
		languages = make(map[string]bool, len(cfg.Languages))
		for _, lang := range cfg.Languages {
			languages[lang] = true
		}
	}

	exclude := append([]string{}, cfg.Exclude...)
	exclude = append(exclude, gitignoreExcludes(cfg.Root)...)

	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}

	return &Scanner{
		root:      cfg.Root,
		include:   cfg.Include,
		exclude:   exclude,
		languages: languages,
		extractor: ex,
		workers:   workers,
	}
}

// Root returns the absolute scan root.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the whole root and returns its checkable files, sorted by
// relative path. Unreadable files are logged and skipped; only a failed walk
// aborts the scan.
func (s *Scanner) Scan(ctx context.Context) ([]File, error) {
	return s.ScanPaths(ctx, []string{s.root})
}

// ScanPaths scans the given files or directories. Directories are walked
// with the scanner's filters; explicit file arguments bypass include globs
// but still need a supported language.
func (s *Scanner) ScanPaths(ctx context.Context, paths []string) ([]File, error) {
	var candidates []string
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(s.root, p)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, xerrors.NewScanError("stat", err).WithPath(p)
		}
		if !info.IsDir() {
			if _, ok := s.languageOf(abs); ok {
				candidates = append(candidates, abs)
			}
			continue
		}
		found, err := s.collect(ctx, abs)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}

	return s.readAll(ctx, candidates)
}

// Admits reports whether path is a file this scanner would check: supported
// language, matching the include globs, not excluded. The watcher uses it to
// drop events for files outside the scan scope.
func (s *Scanner) Admits(path string) bool {
	if _, ok := s.languageOf(path); !ok {
		return false
	}
	rel := s.rel(path)
	return !s.excluded(rel) && s.included(rel)
}

// collect walks one directory and returns the absolute paths that pass the
// scanner's filters.
func (s *Scanner) collect(ctx context.Context, dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.LogScan("skipping %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := s.rel(path)
		if d.IsDir() {
			if rel != "." && s.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.excluded(rel) || !s.included(rel) {
			return nil
		}
		if _, ok := s.languageOf(path); !ok {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, xerrors.NewScanError("walk", err).WithPath(dir)
	}
	return out, nil
}

// readAll reads candidate files in parallel and assembles the sorted result.
func (s *Scanner) readAll(ctx context.Context, paths []string) ([]File, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	var mu sync.Mutex
	files := make([]File, 0, len(paths))

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := s.read(path)
			if err != nil {
				debug.LogScan("read failed for %s: %v\n", path, err)
				return nil
			}
			if f == nil {
				return nil
			}
			mu.Lock()
			files = append(files, *f)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

// read loads one file. It returns (nil, nil) for files that turn out to be
// oversized or binary once opened.
func (s *Scanner) read(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, xerrors.NewScanError("stat", err).WithPath(path).WithRecoverable(true)
	}
	if info.Size() > maxFileBytes {
		debug.LogScan("skipping oversized file %s (%d bytes)\n", path, info.Size())
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.NewScanError("read", err).WithPath(path).WithRecoverable(true)
	}
	if looksBinary(content) {
		debug.LogScan("skipping binary file %s\n", path)
		return nil, nil
	}

	language, _ := s.languageOf(path)
	return &File{
		Path:     path,
		RelPath:  s.rel(path),
		Language: language,
		Size:     int64(len(content)),
		Hash:     xxhash.Sum64(content),
		Content:  content,
	}, nil
}

// languageOf classifies a path, honoring the config's language restriction.
func (s *Scanner) languageOf(path string) (string, bool) {
	language, ok := s.extractor.LanguageForPath(path)
	if !ok {
		return "", false
	}
	if s.languages != nil && !s.languages[language] {
		return "", false
	}
	return language, true
}

// rel converts an absolute path to the slash-separated root-relative form
// the glob patterns match against.
func (s *Scanner) rel(path string) string {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.exclude {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

func (s *Scanner) included(rel string) bool {
	if len(s.include) == 0 {
		return true
	}
	for _, pattern := range s.include {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// looksBinary sniffs for NUL bytes in the leading chunk, the same heuristic
// git uses to refuse a diff.
func looksBinary(content []byte) bool {
	probe := content
	if len(probe) > 8192 {
		probe = probe[:8192]
	}
	return bytes.IndexByte(probe, 0) >= 0
}
