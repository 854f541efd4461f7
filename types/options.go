package types

// Options controls analysis behavior. The engine itself consumes only
// NewMI; the remaining flags are passed through to the traversal provider
// and its syntax table.
type Options struct {
	// LogicalOr counts short-circuit disjunctions as decision points.
	LogicalOr bool
	// SwitchCase counts non-default case clauses as decision points.
	SwitchCase bool
	// ForIn counts collection-iteration loops as decision points.
	ForIn bool
	// TryCatch counts exception handlers as decision points, for syntax
	// tables over languages that have them.
	TryCatch bool
	// NewMI rescales the maintainability index onto a 0-100 scale.
	NewMI bool
}

// DefaultOptions returns the options used when a caller supplies none.
func DefaultOptions() Options {
	return Options{
		LogicalOr:  true,
		SwitchCase: true,
	}
}
