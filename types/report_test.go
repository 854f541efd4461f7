package types_test

import (
	"testing"

	"github.com/TFMV/surrealmetrics/types"
	"github.com/stretchr/testify/assert"
)

func TestHalsteadBucketRecord(t *testing.T) {
	var b types.HalsteadBucket

	b.Record("x")
	b.Record("x")
	b.Record("y")
	assert.Equal(t, 2, b.Distinct)
	assert.Equal(t, 3, b.Total)

	b.Record("x")
	assert.Equal(t, 2, b.Distinct)
	assert.Equal(t, 4, b.Total)
}

func TestNewFunctionReport(t *testing.T) {
	fr := types.NewFunctionReport("f", &types.Location{Line: 10, EndLine: 14}, 3)
	assert.Equal(t, "f", fr.Name)
	assert.Equal(t, 1, fr.Cyclomatic)
	assert.Equal(t, 3, fr.Params)
	assert.Equal(t, 10, fr.Line)
	assert.Equal(t, 5, fr.PhysicalSloc)

	noLoc := types.NewFunctionReport("g", nil, 0)
	assert.Equal(t, 0, noLoc.Line)
	assert.Equal(t, 0, noLoc.PhysicalSloc)
	assert.Equal(t, 1, noLoc.Cyclomatic)
}

func TestDefaultOptions(t *testing.T) {
	opts := types.DefaultOptions()
	assert.True(t, opts.LogicalOr)
	assert.True(t, opts.SwitchCase)
	assert.False(t, opts.ForIn)
	assert.False(t, opts.TryCatch)
	assert.False(t, opts.NewMI)
}

func TestSummarize(t *testing.T) {
	files := []types.FileReport{
		{
			Path: "a.go",
			Report: &types.Report{
				Aggregate:       &types.FunctionReport{LogicalSloc: 10},
				Functions:       []*types.FunctionReport{{Name: "f", Cyclomatic: 12, Line: 3}},
				Dependencies:    []types.Dependency{{Path: "fmt"}},
				Maintainability: 120,
			},
		},
		{
			Path: "b.go",
			Report: &types.Report{
				Aggregate:       &types.FunctionReport{LogicalSloc: 4},
				Functions:       []*types.FunctionReport{{Name: "g", Cyclomatic: 2}},
				Maintainability: 160,
			},
		},
	}

	s := types.Summarize(files, 10)
	assert.Equal(t, 2, s.TotalFiles)
	assert.Equal(t, 2, s.TotalFunctions)
	assert.Equal(t, 14, s.TotalLogical)
	assert.Equal(t, 1, s.TotalDeps)
	assert.InDelta(t, 7.0, s.AvgComplexity, 1e-9)
	assert.InDelta(t, 140.0, s.AvgMaintain, 1e-9)

	assert.Len(t, s.Hotspots, 1)
	assert.Equal(t, "f", s.Hotspots[0].Name)
	assert.Equal(t, "a.go", s.Hotspots[0].File)

	assert.Contains(t, s.PrettyPrint(), "avg_maintainability")
}

func TestSummarizeEmpty(t *testing.T) {
	s := types.Summarize(nil, 10)
	assert.Equal(t, 0, s.TotalFiles)
	assert.Equal(t, 0.0, s.AvgComplexity)
	assert.Empty(t, s.Hotspots)
}
