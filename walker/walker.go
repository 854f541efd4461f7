// Package walker provides a traversal provider over go/ast trees: it visits
// every node in document order, brackets function scopes, and feeds each
// node's syntax-table entry to the engine's visitor.
package walker

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/TFMV/surrealmetrics/core"
	"github.com/TFMV/surrealmetrics/expr"
	"github.com/TFMV/surrealmetrics/types"
)

// File is the tree form this walker traverses: a parsed Go file plus the
// file set that maps its positions back to line numbers.
type File struct {
	File *ast.File
	Fset *token.FileSet
}

// Span reports the file's source line span.
func (f *File) Span() types.Location {
	return types.Location{
		Line:    f.Fset.Position(f.File.Pos()).Line,
		EndLine: f.Fset.Position(f.File.End()).Line,
	}
}

// Load parses the Go source file at path into a walkable tree.
func Load(path string) (*File, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, path, nil, parser.AllErrors)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &File{File: parsed, Fset: fset}, nil
}

// LoadSource parses Go source text, for callers that already hold the code
// in memory.
func LoadSource(name, src string) (*File, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, name, src, parser.AllErrors)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return &File{File: parsed, Fset: fset}, nil
}

// Walker implements core.Walker over go/ast trees. It is stateless between
// walks apart from the shared expression-rendering cache, so one Walker may
// serve concurrent analyses.
type Walker struct {
	cache *expr.Cache
}

// New creates a Walker that renders composite operand identifiers through
// cache.
func New(cache *expr.Cache) *Walker {
	return &Walker{cache: cache}
}

// Walk visits every node of tree in document order, invoking v's hooks.
// tree must be a *File produced by Load or LoadSource.
func (w *Walker) Walk(tree any, opts types.Options, v core.Visitor) error {
	f, ok := tree.(*File)
	if !ok || f == nil || f.File == nil || f.Fset == nil {
		return fmt.Errorf("walker: tree must be a *walker.File, got %T", tree)
	}

	table := GoTable(opts, w.cache, f.Fset)

	// ast.Inspect signals the end of a node's children with a nil call, so
	// a parallel stack of open nodes tells us which pop closes a scope.
	var open []ast.Node
	ast.Inspect(f.File, func(n ast.Node) bool {
		if n == nil {
			top := open[len(open)-1]
			open = open[:len(open)-1]
			switch top.(type) {
			case *ast.FuncDecl, *ast.FuncLit:
				v.ExitScope()
			}
			return true
		}

		if entry, ok := table.Lookup(kind(n)); ok {
			v.VisitNode(n, entry)
		}

		switch fn := n.(type) {
		case *ast.FuncDecl:
			v.EnterScope(fn.Name.Name, span(f.Fset, fn), countParams(fn.Type))
		case *ast.FuncLit:
			v.EnterScope("<anonymous>", span(f.Fset, fn), countParams(fn.Type))
		}

		open = append(open, n)
		return true
	})

	return nil
}

// kind names a node the way the syntax table keys it, e.g. "IfStmt".
func kind(n ast.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

func span(fset *token.FileSet, n ast.Node) *types.Location {
	return &types.Location{
		Line:    fset.Position(n.Pos()).Line,
		EndLine: fset.Position(n.End()).Line,
	}
}

// countParams counts declared parameters; an unnamed parameter still
// declares one.
func countParams(ft *ast.FuncType) int {
	if ft == nil || ft.Params == nil {
		return 0
	}
	count := 0
	for _, field := range ft.Params.List {
		if len(field.Names) == 0 {
			count++
			continue
		}
		count += len(field.Names)
	}
	return count
}

// FindFunction locates a named function declaration, mainly for tests.
func FindFunction(f *File, name string) *ast.FuncDecl {
	for _, decl := range f.File.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Name.Name == name {
			return fn
		}
	}
	return nil
}
