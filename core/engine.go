// Package core implements the metrics accumulation engine: an externally
// driven traversal feeds per-node syntax-table declarations into a
// scope-stack-based report, and a finalization pass derives the aggregate
// statistics once traversal completes.
package core

import (
	"errors"
	"fmt"

	"github.com/TFMV/surrealmetrics/syntax"
	"github.com/TFMV/surrealmetrics/types"
)

var (
	// ErrNilTree is returned when no syntax tree is supplied.
	ErrNilTree = errors.New("core: tree must be non-nil")
	// ErrNilWalker is returned when no traversal provider is supplied.
	ErrNilWalker = errors.New("core: walker must be non-nil")
)

// Visitor receives traversal events from a Walker. VisitNode is invoked for
// every node in document order with that node's syntax-table entry.
// EnterScope and ExitScope must be properly nested and bracket exactly the
// nodes belonging to the function they announce.
type Visitor interface {
	VisitNode(node any, entry syntax.Entry)
	EnterScope(name string, loc *types.Location, params int)
	ExitScope()
}

// Walker drives traversal of a syntax tree, invoking the visitor for every
// node it encounters.
type Walker interface {
	Walk(tree any, opts types.Options, v Visitor) error
}

// Located is implemented by trees that carry source span metadata, used to
// populate the aggregate's line and physical SLOC.
type Located interface {
	Span() types.Location
}

// state holds all mutable accumulation for a single analysis invocation.
// Nothing here is shared between invocations, so analyses may run
// back-to-back or concurrently without observing each other's counters.
type state struct {
	report *types.Report
	stack  []*types.FunctionReport

	// clearDependencies is passed to dependency extractors; it flips false
	// after the first node that produces dependencies and never resets,
	// not even on scope exit.
	clearDependencies bool
}

func newState(tree any) *state {
	var loc *types.Location
	if lt, ok := tree.(Located); ok {
		span := lt.Span()
		loc = &span
	}
	return &state{
		report:            types.NewReport(loc),
		clearDependencies: true,
	}
}

// current returns the innermost open function scope, or nil at top level.
func (s *state) current() *types.FunctionReport {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// EnterScope creates a report for a newly entered function scope and makes
// it current. The new report lands at the end of Functions, so list order
// is scope-creation order.
func (s *state) EnterScope(name string, loc *types.Location, params int) {
	fr := types.NewFunctionReport(name, loc, params)
	s.report.Functions = append(s.report.Functions, fr)
	s.report.Aggregate.Params += params
	s.stack = append(s.stack, fr)
}

// ExitScope closes the current scope; the enclosing scope, if any, becomes
// current again. Exiting with an empty stack is a no-op: top-level nodes
// simply contribute to the aggregate alone.
func (s *state) ExitScope() {
	if len(s.stack) == 0 {
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// VisitNode applies a node's syntax-table declarations. The four updates
// are independent and each tolerates an absent declaration.
func (s *state) VisitNode(node any, entry syntax.Entry) {
	s.addLogicalLines(entry.LogicalLines.Eval(node))
	s.addCyclomatic(entry.Cyclomatic.Eval(node))
	s.recordHalstead(node, entry.Operators, operatorBucket)
	s.recordHalstead(node, entry.Operands, operandBucket)
	s.collectDependencies(node, entry.Dependencies)
}

func (s *state) addLogicalLines(n int) {
	s.report.Aggregate.LogicalSloc += n
	if cur := s.current(); cur != nil {
		cur.LogicalSloc += n
	}
}

func (s *state) addCyclomatic(n int) {
	s.report.Aggregate.Cyclomatic += n
	if cur := s.current(); cur != nil {
		cur.Cyclomatic += n
	}
}

func operatorBucket(fr *types.FunctionReport) *types.HalsteadBucket {
	return &fr.Halstead.Operators
}

func operandBucket(fr *types.FunctionReport) *types.HalsteadBucket {
	return &fr.Halstead.Operands
}

// recordHalstead records each passing descriptor into the aggregate's
// bucket and, independently, the current scope's. The two identifier sets
// are deliberately decoupled: a globally repeated identifier is still new
// the first time it appears inside a given function.
func (s *state) recordHalstead(node any, descs []syntax.Descriptor, bucket func(*types.FunctionReport) *types.HalsteadBucket) {
	for _, d := range descs {
		id, ok := d.Resolve(node)
		if !ok {
			continue
		}
		bucket(s.report.Aggregate).Record(id)
		if cur := s.current(); cur != nil {
			bucket(cur).Record(id)
		}
	}
}

func (s *state) collectDependencies(node any, fn syntax.DependencyFunc) {
	if fn == nil {
		return
	}
	deps := fn(node, s.clearDependencies)
	if len(deps) == 0 {
		return
	}
	s.report.Dependencies = append(s.report.Dependencies, deps...)
	s.clearDependencies = false
}

// Analyze runs one complete analysis: it validates the inputs, lets the
// walker drive traversal through the engine's hooks, finalizes the report,
// and returns it. opts may be nil for the defaults. A fatal finalization
// invariant violation discards the report and returns the error.
func Analyze(tree any, w Walker, opts *types.Options) (*types.Report, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	if w == nil {
		return nil, ErrNilWalker
	}

	o := types.DefaultOptions()
	if opts != nil {
		o = *opts
	}

	s := newState(tree)
	if err := w.Walk(tree, o, s); err != nil {
		return nil, fmt.Errorf("walk tree: %w", err)
	}
	if err := s.finalize(o.NewMI); err != nil {
		return nil, err
	}
	return s.report, nil
}
