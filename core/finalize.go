package core

import (
	"errors"
	"math"

	"github.com/TFMV/surrealmetrics/types"
)

// ErrZeroCyclomatic reports an average cyclomatic complexity of exactly
// zero during finalization. Baseline accounting seeds every report at 1, so
// this signals a broken syntax table or an accounting bug, never a normal
// analysis outcome.
var ErrZeroCyclomatic = errors.New("core: average cyclomatic complexity is zero")

// finalize derives the per-function and aggregate statistics from the raw
// counts, then computes the report-level averages and maintainability
// index. It runs exactly once per analysis.
func (s *state) finalize(newMI bool) error {
	var sumLoc, sumCyclomatic, sumParams int
	var sumEffort float64

	for _, fr := range s.report.Functions {
		finalizeFunction(fr)
		sumLoc += fr.LogicalSloc
		sumCyclomatic += fr.Cyclomatic
		sumEffort += fr.Halstead.Effort
		sumParams += fr.Params
	}
	finalizeFunction(s.report.Aggregate)

	// With no function scopes the aggregate stands in as the lone sample,
	// so averaging never divides by an empty list.
	count := len(s.report.Functions)
	if count == 0 {
		count = 1
		agg := s.report.Aggregate
		sumLoc = agg.LogicalSloc
		sumCyclomatic = agg.Cyclomatic
		sumEffort = agg.Halstead.Effort
		sumParams = agg.Params
	}

	avgLoc := float64(sumLoc) / float64(count)
	avgCyclomatic := float64(sumCyclomatic) / float64(count)
	avgEffort := sumEffort / float64(count)

	mi, err := maintainability(avgEffort, avgCyclomatic, avgLoc, newMI)
	if err != nil {
		return err
	}
	s.report.Maintainability = mi
	s.report.Params = float64(sumParams) / float64(count)
	return nil
}

// finalizeFunction computes cyclomatic density and the derived Halstead
// metrics for one report. Density over zero logical lines follows the raw
// float division through to +Inf rather than being guarded.
func finalizeFunction(fr *types.FunctionReport) {
	fr.CyclomaticDensity = float64(fr.Cyclomatic) / float64(fr.LogicalSloc) * 100

	h := &fr.Halstead
	h.Length = h.Operators.Total + h.Operands.Total
	if h.Length == 0 {
		h.Vocabulary = 0
		h.Difficulty = 0
		h.Volume = 0
		h.Effort = 0
		h.Bugs = 0
		h.Time = 0
		return
	}

	h.Vocabulary = h.Operators.Distinct + h.Operands.Distinct
	operandRatio := 1.0
	if h.Operands.Distinct > 0 {
		operandRatio = float64(h.Operands.Total) / float64(h.Operands.Distinct)
	}
	h.Difficulty = float64(h.Operators.Distinct) / 2 * operandRatio
	h.Volume = float64(h.Length) * math.Log2(float64(h.Vocabulary))
	h.Effort = h.Difficulty * h.Volume
	h.Bugs = h.Volume / 3000
	h.Time = h.Effort / 18
}

// maintainability computes the maintainability index from the averaged
// metrics. A zero average effort or logical-line count marks a trivial
// module and yields the ceiling value 171.
func maintainability(avgEffort, avgCyclomatic, avgLoc float64, newMI bool) (float64, error) {
	if avgCyclomatic == 0 {
		return 0, ErrZeroCyclomatic
	}

	mi := 171.0
	if avgEffort != 0 && avgLoc != 0 {
		mi = 171 - 3.42*math.Log(avgEffort) - 0.23*math.Log(avgCyclomatic) - 16.2*math.Log(avgLoc)
	}
	if newMI {
		mi = math.Max(0, mi*100/171)
	}
	return mi, nil
}
