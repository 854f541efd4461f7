package walker

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/TFMV/surrealmetrics/expr"
	"github.com/TFMV/surrealmetrics/syntax"
	"github.com/TFMV/surrealmetrics/types"
)

// GoTable builds the syntax table for Go source. Option wiring: LogicalOr
// gates the complexity of short-circuit disjunctions, SwitchCase gates
// non-default case and comm clauses, ForIn gates range statements. TryCatch
// has no Go syntax to bind to and is accepted for table compatibility.
func GoTable(opts types.Options, cache *expr.Cache, fset *token.FileSet) syntax.Table {
	t := syntax.Table{
		"GenDecl": {
			LogicalLines: syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{From: genDeclToken}},
		},
		"ImportSpec": {
			Dependencies: func(node any, _ bool) []types.Dependency {
				spec := node.(*ast.ImportSpec)
				return []types.Dependency{{
					Line: fset.Position(spec.Pos()).Line,
					Type: "import",
					Path: strings.Trim(spec.Path.Value, `"`),
				}}
			},
		},
		"FuncDecl": {
			LogicalLines: syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{Identifier: "func"}},
		},
		"FuncLit": {
			LogicalLines: syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{Identifier: "func"}},
		},
		"IfStmt": {
			LogicalLines: syntax.Fixed(1),
			Cyclomatic:   syntax.Fixed(1),
			Operators: []syntax.Descriptor{
				{Identifier: "if"},
				{Identifier: "else", Filter: func(node any) bool {
					return node.(*ast.IfStmt).Else != nil
				}},
			},
		},
		"ForStmt": {
			LogicalLines: syntax.Fixed(1),
			Cyclomatic:   syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{Identifier: "for"}},
		},
		"SwitchStmt": {
			LogicalLines: syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{Identifier: "switch"}},
		},
		"TypeSwitchStmt": {
			LogicalLines: syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{Identifier: "switch"}},
		},
		"SelectStmt": {
			LogicalLines: syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{Identifier: "select"}},
		},
		"ReturnStmt": {
			LogicalLines: syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{Identifier: "return"}},
		},
		"BranchStmt": {
			LogicalLines: syntax.Fixed(1),
			Operators: []syntax.Descriptor{{From: func(node any) string {
				return node.(*ast.BranchStmt).Tok.String()
			}}},
		},
		"DeferStmt": {
			LogicalLines: syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{Identifier: "defer"}},
		},
		"GoStmt": {
			LogicalLines: syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{Identifier: "go"}},
		},
		"SendStmt": {
			LogicalLines: syntax.Fixed(1),
			Operators:    []syntax.Descriptor{{Identifier: "<-"}},
		},
		"ExprStmt": {
			LogicalLines: syntax.Fixed(1),
		},
		"AssignStmt": {
			LogicalLines: syntax.Fixed(1),
			Operators: []syntax.Descriptor{{From: func(node any) string {
				return node.(*ast.AssignStmt).Tok.String()
			}}},
		},
		"IncDecStmt": {
			LogicalLines: syntax.Fixed(1),
			Operators: []syntax.Descriptor{{From: func(node any) string {
				return node.(*ast.IncDecStmt).Tok.String()
			}}},
		},
		"UnaryExpr": {
			Operators: []syntax.Descriptor{{From: func(node any) string {
				return node.(*ast.UnaryExpr).Op.String()
			}}},
		},
		"StarExpr": {
			Operators: []syntax.Descriptor{{Identifier: "*"}},
		},
		"CallExpr": {
			Operators: []syntax.Descriptor{{Identifier: "()"}},
		},
		"IndexExpr": {
			Operators: []syntax.Descriptor{{Identifier: "[]"}},
		},
		"SelectorExpr": {
			Operators: []syntax.Descriptor{{Identifier: "."}},
		},
		"KeyValueExpr": {
			Operators: []syntax.Descriptor{{Identifier: ":"}},
		},
		"Ident": {
			Operands: []syntax.Descriptor{{From: func(node any) string {
				return node.(*ast.Ident).Name
			}}},
		},
		"BasicLit": {
			Operands: []syntax.Descriptor{{From: func(node any) string {
				return node.(*ast.BasicLit).Value
			}}},
		},
		"CompositeLit": {
			Operands: []syntax.Descriptor{{
				From: func(node any) string {
					return cache.Render(node.(*ast.CompositeLit).Type)
				},
				Filter: func(node any) bool {
					return node.(*ast.CompositeLit).Type != nil
				},
			}},
		},
		"TypeAssertExpr": {
			Operators: []syntax.Descriptor{{Identifier: ".(type)"}},
			Operands: []syntax.Descriptor{{
				From: func(node any) string {
					return cache.Render(node.(*ast.TypeAssertExpr).Type)
				},
				Filter: func(node any) bool {
					// x.(type) inside a type switch carries no type expr.
					return node.(*ast.TypeAssertExpr).Type != nil
				},
			}},
		},
	}

	t["BinaryExpr"] = syntax.Entry{
		Cyclomatic: syntax.FromNode(func(node any) int {
			if opts.LogicalOr && node.(*ast.BinaryExpr).Op == token.LOR {
				return 1
			}
			return 0
		}),
		Operators: []syntax.Descriptor{{From: func(node any) string {
			return node.(*ast.BinaryExpr).Op.String()
		}}},
	}

	t["RangeStmt"] = syntax.Entry{
		LogicalLines: syntax.Fixed(1),
		Cyclomatic:   rangeCyclomatic(opts),
		Operators:    []syntax.Descriptor{{Identifier: "range"}},
	}

	t["CaseClause"] = syntax.Entry{
		LogicalLines: syntax.Fixed(1),
		Cyclomatic:   clauseCyclomatic(opts, isDefaultCase),
		Operators:    []syntax.Descriptor{{From: caseOperator}},
	}
	t["CommClause"] = syntax.Entry{
		LogicalLines: syntax.Fixed(1),
		Cyclomatic:   clauseCyclomatic(opts, isDefaultComm),
		Operators:    []syntax.Descriptor{{Identifier: "case"}},
	}

	return t
}

func genDeclToken(node any) string {
	return node.(*ast.GenDecl).Tok.String()
}

func rangeCyclomatic(opts types.Options) *syntax.Amount {
	if !opts.ForIn {
		return nil
	}
	return syntax.Fixed(1)
}

// clauseCyclomatic counts a clause as a decision point unless it is the
// default branch, gated on the SwitchCase option.
func clauseCyclomatic(opts types.Options, isDefault func(node any) bool) *syntax.Amount {
	if !opts.SwitchCase {
		return nil
	}
	return syntax.FromNode(func(node any) int {
		if isDefault(node) {
			return 0
		}
		return 1
	})
}

func isDefaultCase(node any) bool {
	return node.(*ast.CaseClause).List == nil
}

func isDefaultComm(node any) bool {
	return node.(*ast.CommClause).Comm == nil
}

func caseOperator(node any) string {
	if isDefaultCase(node) {
		return "default"
	}
	return "case"
}
