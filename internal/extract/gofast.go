package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/t14raptor/go-fast/ast"
	"github.com/t14raptor/go-fast/parser"

	"github.com/standardbeagle/typofix/internal/debug"
)

// fastEligible reports whether the fast path should even be attempted.
// go-fast cannot parse ES modules, so .mjs and JSX files go straight to
// tree-sitter instead of paying for a doomed parse.
func fastEligible(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs":
		return true
	}
	return false
}

// extractJavaScriptFast parses plain JavaScript with go-fast, skipping
// the CGO round trip for the common case. Any parse error (ES module
// syntax, TypeScript constructs) sends the caller to tree-sitter.
//
// require() calls with a literal argument are recorded as imports so
// CommonJS files still get path checking. Destructured require bindings
// are not resolved, and member positions are anchored to the nearest
// enclosing declaration or call rather than the exact token.
func extractJavaScriptFast(path string, content []byte) (facts *FileFacts, err error) {
	defer func() {
		if r := recover(); r != nil {
			debug.LogExtract("go-fast panic in %s: %v", path, r)
			facts, err = nil, fmt.Errorf("go-fast panic: %v", r)
		}
	}()

	program, err := parser.ParseFile(string(content))
	if err != nil {
		return nil, err
	}

	w := &fastWalker{
		source: string(content),
		facts:  &FileFacts{Path: path, Language: LangJavaScript},
	}
	for _, stmt := range program.Body {
		w.visitStatement(stmt.Stmt, 0)
	}
	w.facts.Decls = dedupeDecls(w.facts.Decls)
	sortFacts(w.facts)
	return w.facts, nil
}

type fastWalker struct {
	source string
	facts  *FileFacts
}

// anchor is the byte index of the nearest enclosing construct with a
// known position; it positions anything found below it.
func (w *fastWalker) visitStatement(stmt ast.Stmt, anchor int) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		if s.Function != nil && s.Function.Name != nil {
			at := int(s.Function.Function)
			w.addDecl(s.Function.Name.Name, KindFunction, at)
			w.visitFunctionBody(s.Function, at)
		}

	case *ast.ClassDeclaration:
		if s.Class != nil && s.Class.Name != nil {
			at := int(s.Class.Class)
			w.addDecl(s.Class.Name.Name, KindClass, at)
			for _, element := range s.Class.Body {
				w.visitClassElement(element.Element, at)
			}
		}

	case *ast.VariableDeclaration:
		at := int(s.Idx)
		for _, decl := range s.List {
			if decl.Target == nil || decl.Target.Target == nil {
				continue
			}
			ident, ok := decl.Target.Target.(*ast.Identifier)
			if !ok {
				// Destructuring targets still carry initializers
				// worth walking for requires and member refs.
				if decl.Initializer != nil && decl.Initializer.Expr != nil {
					w.visitExpression(decl.Initializer.Expr, at)
				}
				continue
			}
			kind := KindVariable
			if decl.Initializer != nil && decl.Initializer.Expr != nil {
				switch decl.Initializer.Expr.(type) {
				case *ast.FunctionLiteral, *ast.ArrowFunctionLiteral:
					kind = KindFunction
				}
				w.visitExpression(decl.Initializer.Expr, at)
			}
			w.addDecl(ident.Name, kind, at)
		}

	case *ast.ExpressionStatement:
		if s.Expression != nil && s.Expression.Expr != nil {
			w.visitExpression(s.Expression.Expr, anchor)
		}

	case *ast.ReturnStatement:
		if s.Argument != nil && s.Argument.Expr != nil {
			w.visitExpression(s.Argument.Expr, anchor)
		}

	case *ast.IfStatement:
		if s.Test != nil && s.Test.Expr != nil {
			w.visitExpression(s.Test.Expr, anchor)
		}
		if s.Consequent.Stmt != nil {
			w.visitStatement(s.Consequent.Stmt, anchor)
		}
		if s.Alternate.Stmt != nil {
			w.visitStatement(s.Alternate.Stmt, anchor)
		}

	case *ast.BlockStatement:
		for _, inner := range s.List {
			w.visitStatement(inner.Stmt, anchor)
		}
	}
}

func (w *fastWalker) visitClassElement(element ast.Element, anchor int) {
	if element == nil {
		return
	}
	switch e := element.(type) {
	case *ast.MethodDefinition:
		if e.Key != nil && e.Key.Expr != nil && e.Body != nil {
			at := int(e.Idx)
			if name := keyName(e.Key.Expr); name != "" {
				w.addDecl(name, KindMethod, at)
			}
			w.visitFunctionBody(e.Body, at)
		}

	case *ast.FieldDefinition:
		if e.Key != nil && e.Key.Expr != nil {
			if name := keyName(e.Key.Expr); name != "" {
				w.addDecl(name, KindField, int(e.Idx))
			}
		}
	}
}

// visitExpression walks the expression shapes that carry member accesses
// and require() calls. Object chains are not descended, so `a.b.c` only
// yields the outermost property; files where that matters tend to be ES
// modules and land on tree-sitter anyway.
func (w *fastWalker) visitExpression(expr ast.Expr, anchor int) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.CallExpression:
		at := int(e.LeftParenthesis)
		w.recordRequire(e, at)
		if e.Callee != nil && e.Callee.Expr != nil {
			w.visitExpression(e.Callee.Expr, at)
		}
		for _, arg := range e.ArgumentList {
			if arg.Expr != nil {
				w.visitExpression(arg.Expr, at)
			}
		}

	case *ast.AwaitExpression:
		if e.Argument != nil && e.Argument.Expr != nil {
			w.visitExpression(e.Argument.Expr, anchor)
		}

	case *ast.MemberExpression:
		if e.Property != nil && e.Property.Prop != nil {
			if ident, ok := e.Property.Prop.(*ast.Identifier); ok {
				w.addMember(ident.Name, anchor)
			}
		}

	case *ast.FunctionLiteral:
		w.visitFunctionBody(e, anchor)
	}
}

func (w *fastWalker) visitFunctionBody(fn *ast.FunctionLiteral, anchor int) {
	if fn == nil || fn.Body == nil {
		return
	}
	for _, inner := range fn.Body.List {
		w.visitStatement(inner.Stmt, anchor)
	}
}

// recordRequire turns require("./x") into an Import.
func (w *fastWalker) recordRequire(call *ast.CallExpression, at int) {
	if call.Callee == nil || call.Callee.Expr == nil || len(call.ArgumentList) != 1 {
		return
	}
	callee, ok := call.Callee.Expr.(*ast.Identifier)
	if !ok || callee.Name != "require" {
		return
	}
	arg, ok := call.ArgumentList[0].Expr.(*ast.StringLiteral)
	if !ok || arg.Value == "" {
		return
	}
	w.facts.Imports = append(w.facts.Imports, Import{
		Specifier: arg.Value,
		Line:      w.lineAt(at),
		Column:    1,
	})
}

func keyName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.StringLiteral:
		return e.Value
	}
	// Private identifiers and computed keys are not member pool
	// material.
	return ""
}

func (w *fastWalker) addDecl(name, kind string, idx int) {
	if name == "" {
		return
	}
	w.facts.Decls = append(w.facts.Decls, Decl{
		Name:   name,
		Kind:   kind,
		Line:   w.lineAt(idx),
		Column: 1,
	})
}

func (w *fastWalker) addMember(name string, idx int) {
	if name == "" {
		return
	}
	w.facts.Members = append(w.facts.Members, MemberRef{
		Name:   name,
		Line:   w.lineAt(idx),
		Column: 1,
	})
}

func (w *fastWalker) lineAt(idx int) int {
	line := 1
	for i := 0; i < idx && i < len(w.source); i++ {
		if w.source[i] == '\n' {
			line++
		}
	}
	return line
}
