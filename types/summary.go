package types

import (
	"encoding/json"
	"fmt"
)

// FileReport pairs a completed report with the file it was computed from.
type FileReport struct {
	Path   string  `json:"path"`
	Report *Report `json:"report"`
}

// Summary is a high-level view across a set of analyzed files.
type Summary struct {
	TotalFiles     int     `json:"total_files"`
	TotalFunctions int     `json:"total_functions"`
	TotalLogical   int     `json:"total_logical_sloc"`
	TotalDeps      int     `json:"total_dependencies"`
	AvgComplexity  float64 `json:"avg_complexity"`
	AvgMaintain    float64 `json:"avg_maintainability"`

	// Hotspots lists the functions with the highest cyclomatic complexity.
	Hotspots []Hotspot `json:"hotspots"`
}

// Hotspot is one high-complexity function surfaced in a Summary.
type Hotspot struct {
	Name       string `json:"name"`
	File       string `json:"file"`
	Line       int    `json:"line,omitempty"`
	Cyclomatic int    `json:"cyclomatic"`
}

// Summarize folds per-file reports into a Summary. Hotspots are the
// functions whose cyclomatic complexity meets or exceeds threshold.
func Summarize(files []FileReport, threshold int) Summary {
	s := Summary{TotalFiles: len(files)}

	var cyclomaticSum int
	var maintainSum float64
	for _, f := range files {
		r := f.Report
		s.TotalFunctions += len(r.Functions)
		s.TotalLogical += r.Aggregate.LogicalSloc
		s.TotalDeps += len(r.Dependencies)
		maintainSum += r.Maintainability
		for _, fn := range r.Functions {
			cyclomaticSum += fn.Cyclomatic
			if fn.Cyclomatic >= threshold {
				s.Hotspots = append(s.Hotspots, Hotspot{
					Name:       fn.Name,
					File:       f.Path,
					Line:       fn.Line,
					Cyclomatic: fn.Cyclomatic,
				})
			}
		}
	}

	if s.TotalFunctions > 0 {
		s.AvgComplexity = float64(cyclomaticSum) / float64(s.TotalFunctions)
	}
	if len(files) > 0 {
		s.AvgMaintain = maintainSum / float64(len(files))
	}
	return s
}

// PrettyPrint returns the summary as indented JSON.
func (s Summary) PrettyPrint() string {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Sprintf("error generating summary: %v", err)
	}
	return string(out)
}
