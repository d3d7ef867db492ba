// Package extract turns source files into name inventories: declared
// symbols, member accesses, imports, and exports. The checker compares
// referenced names against these inventories to spot likely typos.
//
// Extraction is syntactic. Tree-sitter grammars provide the structure;
// there is no type inference and no build-system awareness. Plain
// JavaScript additionally has a pure-Go fast path that skips the CGO
// round trip entirely.
package extract

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/typofix/internal/debug"
	xerrors "github.com/standardbeagle/typofix/internal/errors"
)

// Decl kinds, shared with the query capture names in languages.go.
const (
	KindFunction    = "function"
	KindMethod      = "method"
	KindClass       = "class"
	KindStruct      = "struct"
	KindEnum        = "enum"
	KindInterface   = "interface"
	KindType        = "type"
	KindVariable    = "variable"
	KindConstant    = "constant"
	KindField       = "field"
	KindProperty    = "property"
	KindConstructor = "constructor"
	KindModule      = "module"
	KindNamespace   = "namespace"
	KindTrait       = "trait"
	KindRecord      = "record"
	KindDelegate    = "delegate"
	KindEvent       = "event"
	KindAnnotation  = "annotation"
)

// declKinds is the dispatch order for declaration captures. Member-like
// kinds come first so they win position ties in dedupeDecls.
var declKinds = []string{
	KindMethod, KindField, KindProperty, KindConstructor, KindEvent,
	KindFunction, KindClass, KindStruct, KindEnum, KindInterface,
	KindType, KindConstant, KindModule, KindNamespace, KindTrait,
	KindRecord, KindDelegate, KindAnnotation, KindVariable,
}

// memberKinds are the Decl kinds that name members of a container. They
// feed the pool that member accesses are checked against.
var memberKinds = map[string]bool{
	KindMethod:      true,
	KindField:       true,
	KindProperty:    true,
	KindConstructor: true,
	KindEvent:       true,
}

// Decl is a named declaration found in a file.
type Decl struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Signature string `json:"signature,omitempty"`
	Exported  bool   `json:"exported,omitempty"`
}

// MemberRef is a name used in member-access position (the `bar` of
// `foo.bar`). Receiver types are not resolved; only the accessed name
// matters for typo checking.
type MemberRef struct {
	Name   string `json:"name"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Import is an import statement. Names holds named bindings for
// languages that have them (`import {a, b} from './x'`).
type Import struct {
	Specifier string   `json:"specifier"`
	Names     []string `json:"names,omitempty"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
}

// FileFacts is everything extraction learned about one file.
type FileFacts struct {
	Path     string      `json:"path"`
	Language string      `json:"language"`
	Decls    []Decl      `json:"decls,omitempty"`
	Members  []MemberRef `json:"members,omitempty"`
	Imports  []Import    `json:"imports,omitempty"`
	Exports  []string    `json:"exports,omitempty"`
}

// DeclNames returns the distinct declared names, sorted.
func (f *FileFacts) DeclNames() []string {
	return distinctNames(f.Decls, func(d Decl) bool { return true })
}

// MemberDeclNames returns the distinct names of member-like declarations
// (methods, fields, properties), sorted.
func (f *FileFacts) MemberDeclNames() []string {
	return distinctNames(f.Decls, func(d Decl) bool { return memberKinds[d.Kind] })
}

func distinctNames(decls []Decl, keep func(Decl) bool) []string {
	seen := make(map[string]bool, len(decls))
	var names []string
	for _, d := range decls {
		if !keep(d) || d.Name == "" || seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// languageRuntime holds the lazily built per-language parsing state: the
// compiled query and a pool of parsers bound to the grammar.
type languageRuntime struct {
	language *tree_sitter.Language
	query    *tree_sitter.Query
	pool     sync.Pool
}

// Extractor parses source files and produces FileFacts. It is safe for
// concurrent use; language runtimes initialize lazily on first touch so
// a JavaScript-only tree never pays for the other grammars.
type Extractor struct {
	mu       sync.RWMutex
	runtimes map[string]*languageRuntime
	byExt    map[string]*languageSpec
}

// New returns an Extractor covering every built-in language.
func New() *Extractor {
	e := &Extractor{
		runtimes: make(map[string]*languageRuntime),
		byExt:    make(map[string]*languageSpec, 24),
	}
	for i := range languageSpecs {
		spec := &languageSpecs[i]
		for _, ext := range spec.extensions {
			e.byExt[ext] = spec
		}
	}
	return e
}

// SupportedExtensions returns the file extensions extraction understands,
// sorted, each with its leading dot.
func (e *Extractor) SupportedExtensions() []string {
	exts := make([]string, 0, len(e.byExt))
	for ext := range e.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// LanguageForPath reports the language a path would be parsed as.
func (e *Extractor) LanguageForPath(path string) (string, bool) {
	spec, ok := e.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", false
	}
	return spec.name, true
}

// Extract parses content and returns its FileFacts. Unsupported
// extensions return ErrUnsupportedLanguage. Parse-level failures degrade
// to empty facts rather than errors: a file the grammar chokes on simply
// contributes nothing to the pools.
func (e *Extractor) Extract(path string, content []byte) (*FileFacts, error) {
	spec, ok := e.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, xerrors.ErrUnsupportedLanguage
	}

	if spec.name == LangJavaScript && fastEligible(path) {
		if facts, err := extractJavaScriptFast(path, content); err == nil {
			return facts, nil
		}
		// go-fast rejects ES modules and newer syntax; tree-sitter
		// picks those files up below.
	}

	facts := &FileFacts{Path: path, Language: spec.name}
	rt := e.runtime(spec)
	if rt == nil {
		return facts, nil
	}
	e.parse(rt, spec, facts, path, content)
	return facts, nil
}

// runtime returns the language runtime, building it on first use. A nil
// runtime is cached for languages whose grammar or query failed so the
// cost is paid once.
func (e *Extractor) runtime(spec *languageSpec) *languageRuntime {
	e.mu.RLock()
	rt, ok := e.runtimes[spec.name]
	e.mu.RUnlock()
	if ok {
		return rt
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if rt, ok := e.runtimes[spec.name]; ok {
		return rt
	}
	rt = newLanguageRuntime(spec)
	e.runtimes[spec.name] = rt
	return rt
}

func newLanguageRuntime(spec *languageSpec) *languageRuntime {
	language := tree_sitter.NewLanguage(spec.grammar())

	probe := tree_sitter.NewParser()
	if err := probe.SetLanguage(language); err != nil {
		debug.LogExtract("grammar rejected for %s: %v", spec.name, err)
		return nil
	}

	query, err := tree_sitter.NewQuery(language, spec.query)
	// The binding can return a typed nil error, so the query pointer is
	// the only reliable failure signal.
	if query == nil {
		debug.LogExtract("query compile failed for %s: %v", spec.name, err)
		return nil
	}

	rt := &languageRuntime{language: language, query: query}
	rt.pool.New = func() any {
		parser := tree_sitter.NewParser()
		if err := parser.SetLanguage(language); err != nil {
			return nil
		}
		return parser
	}
	rt.pool.Put(probe)
	return rt
}

func (e *Extractor) parse(rt *languageRuntime, spec *languageSpec, facts *FileFacts, path string, content []byte) {
	parser, ok := rt.pool.Get().(*tree_sitter.Parser)
	if !ok || parser == nil {
		return
	}
	defer rt.pool.Put(parser)

	defer func() {
		if r := recover(); r != nil {
			debug.LogExtract("tree-sitter panic in %s: %v", path, r)
		}
	}()

	// The tree-sitter C library mutates input buffers via CGO, so parse
	// a copy and read node text back out of the copy.
	buf := make([]byte, len(content))
	copy(buf, content)

	tree := parser.Parse(buf, nil)
	if tree == nil {
		debug.LogExtract("parse returned no tree for %s", path)
		return
	}
	defer tree.Close()

	collect(rt.query, spec, facts, tree, buf)
}

func collect(query *tree_sitter.Query, spec *languageSpec, facts *FileFacts, tree *tree_sitter.Tree, content []byte) {
	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()

	matches := qc.Matches(query, tree.RootNode(), content)
	captureNames := query.CaptureNames()

	exports := make(map[string]bool)
	importsAt := make(map[uint]*Import)

	// Reused across matches; a match carries a handful of captures.
	caps := make(map[string]tree_sitter.Node, 4)
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for k := range caps {
			delete(caps, k)
		}
		for _, c := range match.Captures {
			caps[captureNames[c.Index]] = c.Node
		}
		dispatch(spec, facts, caps, content, exports, importsAt)
	}

	finishFacts(spec, facts, exports, importsAt)
}

// dispatch routes one match's captures into facts.
func dispatch(spec *languageSpec, facts *FileFacts, caps map[string]tree_sitter.Node, content []byte, exports map[string]bool, importsAt map[uint]*Import) {
	for _, kind := range declKinds {
		outer, ok := caps[kind]
		if !ok {
			continue
		}
		nameNode, ok := caps[kind+".name"]
		if !ok {
			continue
		}
		name := nodeText(&nameNode, content)
		if name == "" {
			continue
		}
		facts.Decls = append(facts.Decls, Decl{
			Name:      name,
			Kind:      kind,
			Line:      int(nameNode.StartPosition().Row) + 1,
			Column:    int(nameNode.StartPosition().Column) + 1,
			Signature: buildSignature(&outer, name, content),
			Exported:  declExported(spec.name, name, &outer, content),
		})
	}

	if nameNode, ok := caps["member.name"]; ok {
		if name := nodeText(&nameNode, content); name != "" {
			facts.Members = append(facts.Members, MemberRef{
				Name:   name,
				Line:   int(nameNode.StartPosition().Row) + 1,
				Column: int(nameNode.StartPosition().Column) + 1,
			})
		}
	}

	if outer, ok := caps["import"]; ok {
		recordImport(&outer, caps, content, importsAt)
	}

	if decl, ok := caps["export"]; ok {
		for _, name := range exportDeclNames(&decl, content) {
			exports[name] = true
		}
	}
	if nameNode, ok := caps["export.name"]; ok {
		if name := nodeText(&nameNode, content); name != "" {
			exports[name] = true
		}
	}
}

// recordImport creates or augments the Import for the statement node.
// Several query patterns capture the same statement (plain form plus one
// per named binding), so imports merge by the statement's start byte.
func recordImport(outer *tree_sitter.Node, caps map[string]tree_sitter.Node, content []byte, importsAt map[uint]*Import) {
	// The require() pattern matches any single-string-argument call; keep
	// only actual require calls.
	if fn, ok := caps["require.fn"]; ok {
		if nodeText(&fn, content) != "require" {
			return
		}
	}

	start := outer.StartByte()
	imp, ok := importsAt[start]
	if !ok {
		var spec string
		if node, ok := caps["import.source"]; ok {
			spec = stripQuotes(nodeText(&node, content))
		} else if node, ok := caps["import.path"]; ok {
			spec = stripQuotes(nodeText(&node, content))
		} else {
			spec = collapseWhitespace(nodeText(outer, content))
		}
		if spec == "" {
			return
		}
		imp = &Import{
			Specifier: spec,
			Line:      int(outer.StartPosition().Row) + 1,
			Column:    int(outer.StartPosition().Column) + 1,
		}
		importsAt[start] = imp
	}

	if node, ok := caps["import.binding"]; ok {
		if name := nodeText(&node, content); name != "" {
			imp.Names = appendUnique(imp.Names, name)
		}
	}
}

// exportDeclNames pulls the declared names out of an exported
// declaration node: the name field when there is one, otherwise each
// variable declarator of `export const a = 1, b = 2`.
func exportDeclNames(decl *tree_sitter.Node, content []byte) []string {
	if name := decl.ChildByFieldName("name"); name != nil {
		if text := nodeText(name, content); text != "" {
			return []string{text}
		}
		return nil
	}
	var names []string
	count := decl.ChildCount()
	for i := uint(0); i < count; i++ {
		child := decl.Child(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil || name.Kind() != "identifier" {
			continue
		}
		if text := nodeText(name, content); text != "" {
			names = append(names, text)
		}
	}
	return names
}

func finishFacts(spec *languageSpec, facts *FileFacts, exports map[string]bool, importsAt map[uint]*Import) {
	facts.Decls = dedupeDecls(facts.Decls)

	switch spec.name {
	case LangJavaScript, LangTypeScript, LangTSX:
		// Export statements are the source of truth; flag the decls
		// they name.
		for i := range facts.Decls {
			if exports[facts.Decls[i].Name] {
				facts.Decls[i].Exported = true
			}
		}
	default:
		for _, d := range facts.Decls {
			if d.Exported {
				exports[d.Name] = true
			}
		}
	}

	facts.Exports = make([]string, 0, len(exports))
	for name := range exports {
		facts.Exports = append(facts.Exports, name)
	}
	sort.Strings(facts.Exports)
	if len(facts.Exports) == 0 {
		facts.Exports = nil
	}

	for _, imp := range importsAt {
		sort.Strings(imp.Names)
		facts.Imports = append(facts.Imports, *imp)
	}

	sortFacts(facts)
}

// sortFacts orders everything by position so output is deterministic no
// matter which parse path produced it.
func sortFacts(facts *FileFacts) {
	sort.Slice(facts.Decls, func(i, j int) bool {
		a, b := facts.Decls[i], facts.Decls[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Name < b.Name
	})
	sort.Slice(facts.Members, func(i, j int) bool {
		a, b := facts.Members[i], facts.Members[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Name < b.Name
	})
	sort.Slice(facts.Imports, func(i, j int) bool {
		a, b := facts.Imports[i], facts.Imports[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Specifier < b.Specifier
	})
}

// dedupeDecls collapses decls matched by more than one pattern at the
// same position (python methods also match the function pattern, JS
// function-valued declarators also match the variable pattern). The more
// specific kind wins.
func dedupeDecls(decls []Decl) []Decl {
	if len(decls) < 2 {
		return decls
	}
	type posKey struct {
		name string
		line int
		col  int
	}
	seen := make(map[posKey]int, len(decls))
	out := decls[:0]
	for i := range decls {
		d := decls[i]
		k := posKey{d.Name, d.Line, d.Column}
		if at, ok := seen[k]; ok {
			if declKindRank(d.Kind) > declKindRank(out[at].Kind) {
				out[at] = d
			}
			continue
		}
		seen[k] = len(out)
		out = append(out, d)
	}
	return out
}

func declKindRank(kind string) int {
	switch {
	case memberKinds[kind]:
		return 2
	case kind == KindVariable:
		return 0
	default:
		return 1
	}
}

const maxSignatureRunes = 80

// buildSignature renders "name(params)" when the node exposes a
// parameter list, empty otherwise. Signatures are display sugar for
// suggestion output, so missing ones are fine.
func buildSignature(outer *tree_sitter.Node, name string, content []byte) string {
	params := outer.ChildByFieldName("parameters")
	if params == nil {
		if value := outer.ChildByFieldName("value"); value != nil {
			params = value.ChildByFieldName("parameters")
		}
	}
	if params == nil {
		if decl := outer.ChildByFieldName("declarator"); decl != nil {
			params = decl.ChildByFieldName("parameters")
		}
	}
	if params == nil {
		return ""
	}
	sig := name + collapseWhitespace(nodeText(params, content))
	if utf8.RuneCountInString(sig) > maxSignatureRunes {
		runes := []rune(sig)
		sig = string(runes[:maxSignatureRunes-3]) + "..."
	}
	return sig
}

func declExported(language, name string, outer *tree_sitter.Node, content []byte) bool {
	switch language {
	case LangGo:
		r, _ := utf8.DecodeRuneInString(name)
		return unicode.IsUpper(r)
	case LangJavaScript, LangTypeScript, LangTSX:
		// Resolved from export statements in finishFacts.
		return false
	case LangRust:
		return hasChildOfKind(outer, "visibility_modifier")
	case LangJava, LangCSharp:
		return hasModifier(outer, content, "public")
	default:
		return !strings.HasPrefix(name, "_")
	}
}

func hasChildOfKind(node *tree_sitter.Node, kind string) bool {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}

func hasModifier(node *tree_sitter.Node, content []byte, want string) bool {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "modifiers", "modifier":
			if strings.Contains(nodeText(child, content), want) {
				return true
			}
		}
	}
	return false
}

func nodeText(node *tree_sitter.Node, content []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if start >= end || int(end) > len(content) {
		return ""
	}
	return string(content[start:end])
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		switch {
		case s[0] == '"' && s[len(s)-1] == '"',
			s[0] == '\'' && s[len(s)-1] == '\'',
			s[0] == '`' && s[len(s)-1] == '`':
			return s[1 : len(s)-1]
		}
	}
	return s
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}
