// Package checker runs the diagnosis pipeline: scan the workspace, extract
// identifier facts, build candidate pools, and rank corrections for every
// name nothing in the workspace accounts for.
package checker

import (
	"context"
	"path/filepath"
	"runtime"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/typofix/internal/config"
	"github.com/standardbeagle/typofix/internal/debug"
	"github.com/standardbeagle/typofix/internal/diagnostics"
	"github.com/standardbeagle/typofix/internal/extract"
	"github.com/standardbeagle/typofix/internal/providers"
	"github.com/standardbeagle/typofix/internal/scan"
	"github.com/standardbeagle/typofix/internal/suggest"
	"github.com/standardbeagle/typofix/internal/vocab"
)

// rankCacheSize bounds the memoized rank results. Pools repeat heavily
// within a run (every unknown member ranks against the same workspace
// pool), so even a modest cache absorbs most of the scoring work.
const rankCacheSize = 4096

// minTargetLength is the shortest name the checker will diagnose. One- and
// two-rune names are too ambiguous to correct with any confidence.
const minTargetLength = 3

// Checker orchestrates scanning, extraction, and suggestion ranking for one
// workspace.
type Checker struct {
	cfg       *config.Config
	extractor *extract.Extractor
	scanner   *scan.Scanner
	exports   *providers.ExportProvider
	paths     *providers.PathProvider
	ignore    map[string]bool
	cache     *rankCache
	workers   int
}

// runPools carries the per-run candidate state: the workspace member pool
// and the extraction results keyed by absolute path, so import checks can
// reuse facts instead of re-parsing resolved files.
type runPools struct {
	members *providers.MemberProvider
	facts   map[string]*extract.FileFacts
}

// New builds a Checker for the configured workspace root.
func New(cfg *config.Config) *Checker {
	ex := extract.New()
	scanner := scan.NewScanner(cfg, ex)

	ignore := make(map[string]bool, len(builtinIgnore)+len(cfg.Ignore))
	for name := range builtinIgnore {
		ignore[name] = true
	}
	for _, name := range cfg.Ignore {
		ignore[name] = true
	}

	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}

	return &Checker{
		cfg:       cfg,
		extractor: ex,
		scanner:   scanner,
		exports:   providers.NewExportProvider(ex),
		paths:     providers.NewPathProvider(scanner.Root(), ex),
		ignore:    ignore,
		cache:     newRankCache(rankCacheSize),
		workers:   workers,
	}
}

// Scanner exposes the checker's scanner so callers can watch the workspace
// with the same include/exclude scope the checks use.
func (c *Checker) Scanner() *scan.Scanner {
	return c.scanner
}

// Check scans the whole workspace and reports every diagnosis.
func (c *Checker) Check(ctx context.Context) (*diagnostics.Report, error) {
	return c.CheckPaths(ctx, nil)
}

// CheckPaths diagnoses the named files or directories; nil means the whole
// workspace. The candidate pools always come from the full workspace scan —
// a single file rarely declares the vocabulary its references are checked
// against.
func (c *Checker) CheckPaths(ctx context.Context, paths []string) (*diagnostics.Report, error) {
	start := time.Now()

	files, err := c.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	targets := files
	if len(paths) > 0 {
		if targets, err = c.scanner.ScanPaths(ctx, paths); err != nil {
			return nil, err
		}
	}

	workspaceFacts, err := c.extractAll(ctx, files)
	if err != nil {
		return nil, err
	}

	pools := &runPools{
		members: providers.NewMemberProvider(workspaceFacts),
		facts:   make(map[string]*extract.FileFacts, len(workspaceFacts)),
	}
	for _, f := range workspaceFacts {
		if f != nil {
			pools.facts[f.Path] = f
		}
	}

	targetFacts := workspaceFacts
	if len(paths) > 0 {
		if targetFacts, err = c.factsFor(ctx, targets, pools); err != nil {
			return nil, err
		}
	}

	results := make([][]diagnostics.Diagnostic, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range targets {
		if targetFacts[i] == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkFile(targets[i], targetFacts[i], pools)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []diagnostics.Diagnostic
	for _, r := range results {
		all = append(all, r...)
	}
	diagnostics.Sort(all)

	return &diagnostics.Report{
		Root:         c.scanner.Root(),
		FilesScanned: len(targets),
		DurationMS:   time.Since(start).Milliseconds(),
		Diagnostics:  all,
	}, nil
}

// ListExports returns the exported names of one file, filtered to the names
// worth suggesting.
func (c *Checker) ListExports(path string) ([]string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.scanner.Root(), path)
	}
	names, err := c.exports.Exports(path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if suggest.IsAdmissible(n, "", suggest.ModeExport) {
			out = append(out, n)
		}
	}
	return out, nil
}

// Vocabulary collects the declared-identifier corpus for the vocab report,
// from the whole workspace or the named paths. Only declarations contribute:
// a reference can be the very typo the report is meant to expose, while a
// declaration anchors an intended spelling.
func (c *Checker) Vocabulary(ctx context.Context, paths []string) (*vocab.Vocabulary, error) {
	var files []scan.File
	var err error
	if len(paths) > 0 {
		files, err = c.scanner.ScanPaths(ctx, paths)
	} else {
		files, err = c.scanner.Scan(ctx)
	}
	if err != nil {
		return nil, err
	}

	facts, err := c.extractAll(ctx, files)
	if err != nil {
		return nil, err
	}

	v := vocab.New()
	for _, f := range facts {
		if f == nil {
			continue
		}
		v.AddAll(f.DeclNames())
	}
	return v, nil
}

// SuggestPaths ranks candidate specifiers for a broken relative import,
// phrased in the importing file's own syntax.
func (c *Checker) SuggestPaths(fromFile, specifier string) ([]suggest.Suggestion, error) {
	if !filepath.IsAbs(fromFile) {
		fromFile = filepath.Join(c.scanner.Root(), fromFile)
	}
	language, _ := c.extractor.LanguageForPath(fromFile)
	spec := pathSpecifier(language, specifier)
	if spec == "" {
		spec = specifier
	}
	candidates, err := c.paths.Candidates(fromFile, spec)
	if err != nil {
		return nil, err
	}
	ranked := c.rank(suggest.ModeStandard, spec, candidates, suggest.PathMinScore(spec))
	return displaySuggestions(language, ranked), nil
}

// extractAll parses every scanned file. Extraction failures drop the file
// from the pools rather than failing the run.
func (c *Checker) extractAll(ctx context.Context, files []scan.File) ([]*extract.FileFacts, error) {
	facts := make([]*extract.FileFacts, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := c.extractor.Extract(files[i].Path, files[i].Content)
			if err != nil {
				debug.LogCheck("extract %s: %v\n", files[i].RelPath, err)
				return nil
			}
			facts[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return facts, nil
}

// factsFor returns facts for explicit targets, reusing the workspace
// extraction when a target was already scanned.
func (c *Checker) factsFor(ctx context.Context, targets []scan.File, pools *runPools) ([]*extract.FileFacts, error) {
	facts := make([]*extract.FileFacts, len(targets))
	var missingIdx []int
	var missing []scan.File
	for i, t := range targets {
		if f, ok := pools.facts[t.Path]; ok {
			facts[i] = f
			continue
		}
		missingIdx = append(missingIdx, i)
		missing = append(missing, t)
	}
	if len(missing) > 0 {
		extracted, err := c.extractAll(ctx, missing)
		if err != nil {
			return nil, err
		}
		for j, idx := range missingIdx {
			facts[idx] = extracted[j]
		}
	}
	return facts, nil
}

// checkFile diagnoses one file's member accesses and imports.
func (c *Checker) checkFile(file scan.File, facts *extract.FileFacts, pools *runPools) []diagnostics.Diagnostic {
	out := c.checkMembers(file, facts, pools)
	return append(out, c.checkImports(file, facts, pools)...)
}

// checkMembers flags member accesses whose name the workspace pool does not
// know and that score a plausible correction.
func (c *Checker) checkMembers(file scan.File, facts *extract.FileFacts, pools *runPools) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, ref := range facts.Members {
		if c.skipTarget(ref.Name) || pools.members.Known(ref.Name) {
			continue
		}
		sugs := c.rank(suggest.ModeStandard, ref.Name, pools.members.Candidates(), c.cfg.MinScore)
		if len(sugs) == 0 {
			continue
		}
		out = append(out, diagnostics.New(file.Path, ref.Line, ref.Column, diagnostics.KindMember, ref.Name, sugs))
	}
	return out
}

// checkImports routes each relative import to the export check when the
// specifier resolves and to the path check when it does not. Bare module
// specifiers belong to package managers and are skipped.
func (c *Checker) checkImports(file scan.File, facts *extract.FileFacts, pools *runPools) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, imp := range facts.Imports {
		spec := pathSpecifier(facts.Language, imp.Specifier)
		if spec == "" {
			continue
		}
		if resolved, ok := c.exports.Resolve(file.Path, spec); ok {
			out = append(out, c.checkNamedImports(file, imp, resolved, pools)...)
			continue
		}
		out = append(out, c.checkPathSpecifier(file, facts.Language, imp, spec)...)
	}
	return out
}

// checkNamedImports verifies each named binding against the resolved file's
// export list.
func (c *Checker) checkNamedImports(file scan.File, imp extract.Import, resolved string, pools *runPools) []diagnostics.Diagnostic {
	if len(imp.Names) == 0 {
		return nil
	}
	names, err := c.exportsOf(pools, resolved)
	if err != nil {
		debug.LogCheck("exports of %s: %v\n", resolved, err)
		return nil
	}

	exported := make(map[string]bool, len(names))
	pool := make([]string, 0, len(names))
	for _, n := range names {
		exported[n] = true
		if suggest.IsAdmissible(n, "", suggest.ModeExport) {
			pool = append(pool, n)
		}
	}

	var out []diagnostics.Diagnostic
	for _, name := range imp.Names {
		if exported[name] || c.skipTarget(name) {
			continue
		}
		sugs := c.rank(suggest.ModeExport, name, pool, c.cfg.MinScore)
		if len(sugs) == 0 {
			continue
		}
		out = append(out, diagnostics.New(file.Path, imp.Line, imp.Column, diagnostics.KindImport, name, sugs))
	}
	return out
}

// checkPathSpecifier suggests corrections for a relative import that
// resolves to nothing.
func (c *Checker) checkPathSpecifier(file scan.File, language string, imp extract.Import, spec string) []diagnostics.Diagnostic {
	candidates, err := c.paths.Candidates(file.Path, spec)
	if err != nil {
		debug.LogCheck("path candidates for %q: %v\n", imp.Specifier, err)
		return nil
	}
	sugs := c.rank(suggest.ModeStandard, spec, candidates, suggest.PathMinScore(spec))
	if len(sugs) == 0 {
		return nil
	}
	return []diagnostics.Diagnostic{
		diagnostics.New(file.Path, imp.Line, imp.Column, diagnostics.KindPath, imp.Specifier, displaySuggestions(language, sugs)),
	}
}

// exportsOf returns the export list of a resolved file, reusing the
// workspace extraction when the file was part of the scan.
func (c *Checker) exportsOf(pools *runPools, path string) ([]string, error) {
	if f, ok := pools.facts[path]; ok {
		return f.Exports, nil
	}
	return c.exports.Exports(path)
}

// rank memoizes suggest.Rank. The returned slice is shared with the cache;
// callers must not mutate it.
func (c *Checker) rank(mode suggest.Mode, query string, pool []string, minScore float64) []suggest.Suggestion {
	key := rankKey(mode, query, pool)
	if cached, ok := c.cache.get(key); ok {
		return cached
	}
	ranked := suggest.Rank(query, pool, minScore)
	c.cache.set(key, ranked)
	return ranked
}

// skipTarget reports whether a name is exempt from diagnosis: too short to
// correct, ignored by config, or runtime vocabulary.
func (c *Checker) skipTarget(name string) bool {
	if utf8.RuneCountInString(name) < minTargetLength {
		return true
	}
	return c.ignore[name]
}

// displaySuggestions re-dresses ranked path suggestions in the importing
// language's own syntax. The ranked slice is shared with the cache, so this
// always copies.
func displaySuggestions(language string, sugs []suggest.Suggestion) []suggest.Suggestion {
	out := make([]suggest.Suggestion, len(sugs))
	for i, s := range sugs {
		s.Name = displaySpecifier(language, s.Name)
		out[i] = s
	}
	return out
}
