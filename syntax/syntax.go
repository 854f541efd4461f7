// Package syntax defines the vocabulary a syntax table uses to declare how
// each node kind contributes to the computed metrics. Tables are external
// to the engine: partial entries are expected, and every field of an Entry
// may be left unset for no contribution.
package syntax

import "github.com/TFMV/surrealmetrics/types"

// Amount is a metric contribution: either a fixed value or one computed
// from the visited node. A nil *Amount contributes nothing.
type Amount struct {
	fixed int
	fn    func(node any) int
}

// Fixed declares a constant contribution.
func Fixed(n int) *Amount {
	return &Amount{fixed: n}
}

// FromNode declares a contribution computed per node instance.
func FromNode(fn func(node any) int) *Amount {
	return &Amount{fn: fn}
}

// Eval resolves the contribution for node. Nil amounts and nil computed
// declarations evaluate to zero.
func (a *Amount) Eval(node any) int {
	if a == nil {
		return 0
	}
	if a.fn != nil {
		return a.fn(node)
	}
	return a.fixed
}

// Descriptor declares one Halstead operator or operand produced by a node.
// Identifier names it literally; From, when set, takes precedence and
// derives it from the node. Filter, when set, gates whether a given node
// instance counts at all.
type Descriptor struct {
	Identifier string
	From       func(node any) string
	Filter     func(node any) bool
}

// Resolve returns the identifier this node instance contributes, or false
// when the filter rejects the node or the identifier is empty.
func (d Descriptor) Resolve(node any) (string, bool) {
	if d.Filter != nil && !d.Filter(node) {
		return "", false
	}
	id := d.Identifier
	if d.From != nil {
		id = d.From(node)
	}
	return id, id != ""
}

// DependencyFunc extracts dependencies from a node. clear reports that no
// prior node in the same analysis has produced dependencies yet: it is true
// on every invocation up to and including the first producing node, then
// false for the rest of the traversal.
type DependencyFunc func(node any, clear bool) []types.Dependency

// Entry declares how one node kind contributes to each metric. Any field
// may be zero for no contribution.
type Entry struct {
	LogicalLines *Amount
	Cyclomatic   *Amount
	Operators    []Descriptor
	Operands     []Descriptor
	Dependencies DependencyFunc
}

// Table maps node kinds to their metric declarations.
type Table map[string]Entry

// Lookup returns the entry for kind, if declared.
func (t Table) Lookup(kind string) (Entry, bool) {
	e, ok := t[kind]
	return e, ok
}
