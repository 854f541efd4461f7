package types

// Location identifies the source span of a function or tree, when the
// traversal provider supplies line metadata.
type Location struct {
	Line    int `json:"line"`
	EndLine int `json:"end_line"`
}

// Dependency is an opaque value produced by a syntax table's dependency
// extractor. The engine collects them on the report without interpreting
// the contents.
type Dependency struct {
	Line int    `json:"line"`
	Type string `json:"type"`
	Path string `json:"path"`
}

// HalsteadBucket counts occurrences of one metric class (operators or
// operands). Distinct counts each identifier once; Total counts every
// occurrence including repeats.
type HalsteadBucket struct {
	Distinct int `json:"distinct"`
	Total    int `json:"total"`

	seen map[string]struct{}
}

// Record registers one occurrence of identifier in the bucket. Total always
// increments; Distinct increments only the first time an identifier is seen
// in this bucket.
func (b *HalsteadBucket) Record(identifier string) {
	b.Total++
	if b.seen == nil {
		b.seen = make(map[string]struct{})
	}
	if _, ok := b.seen[identifier]; ok {
		return
	}
	b.seen[identifier] = struct{}{}
	b.Distinct++
}

// Halstead holds raw operator/operand counts plus the metrics derived from
// them during finalization.
type Halstead struct {
	Operators  HalsteadBucket `json:"operators"`
	Operands   HalsteadBucket `json:"operands"`
	Length     int            `json:"length"`
	Vocabulary int            `json:"vocabulary"`
	Difficulty float64        `json:"difficulty"`
	Volume     float64        `json:"volume"`
	Effort     float64        `json:"effort"`
	Bugs       float64        `json:"bugs"`
	Time       float64        `json:"time"`
}

// FunctionReport accumulates metrics for one function scope, or for the
// whole tree when used as the report aggregate.
type FunctionReport struct {
	Name              string   `json:"name,omitempty"`
	Line              int      `json:"line,omitempty"`
	PhysicalSloc      int      `json:"sloc_physical,omitempty"`
	LogicalSloc       int      `json:"sloc_logical"`
	Cyclomatic        int      `json:"cyclomatic"`
	CyclomaticDensity float64  `json:"cyclomatic_density"`
	Params            int      `json:"params"`
	Halstead          Halstead `json:"halstead"`
}

// NewFunctionReport creates a report seeded with the baseline cyclomatic
// complexity of 1 (the single straight-line path). loc may be nil when no
// location metadata is available.
func NewFunctionReport(name string, loc *Location, params int) *FunctionReport {
	fr := &FunctionReport{
		Name:       name,
		Cyclomatic: 1,
		Params:     params,
	}
	if loc != nil {
		fr.Line = loc.Line
		fr.PhysicalSloc = loc.EndLine - loc.Line + 1
	}
	return fr
}

// Report is the root container for one analysis. Functions preserves
// scope-creation order. Maintainability and Params are populated by the
// finalizer after traversal completes.
type Report struct {
	Aggregate       *FunctionReport   `json:"aggregate"`
	Functions       []*FunctionReport `json:"functions"`
	Dependencies    []Dependency      `json:"dependencies"`
	Maintainability float64           `json:"maintainability"`
	Params          float64           `json:"params"`
}

// NewReport creates an empty report whose aggregate spans the given tree
// location, if any.
func NewReport(loc *Location) *Report {
	return &Report{
		Aggregate: NewFunctionReport("", loc, 0),
		Functions: []*FunctionReport{},
	}
}
