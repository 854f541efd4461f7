package core_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/TFMV/surrealmetrics/core"
	"github.com/TFMV/surrealmetrics/syntax"
	"github.com/TFMV/surrealmetrics/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLogicalLinesDensity(t *testing.T) {
	w := &scriptedWalker{script: func(v core.Visitor) {
		v.EnterScope("f", nil, 0)
		v.ExitScope()
	}}

	report, err := core.Analyze(struct{}{}, w, nil)
	require.NoError(t, err)
	require.Len(t, report.Functions, 1)

	// Division by zero logical lines is deliberately unguarded.
	assert.True(t, math.IsInf(report.Functions[0].CyclomaticDensity, 1))
	// Zero average loc marks a trivial module.
	assert.Equal(t, 171.0, report.Maintainability)
}

func TestEmptyHalsteadDerivedMetricsAreZero(t *testing.T) {
	w := &scriptedWalker{script: func(v core.Visitor) {
		v.EnterScope("f", nil, 0)
		v.VisitNode(struct{}{}, llocEntry(1))
		v.ExitScope()
	}}

	report, err := core.Analyze(struct{}{}, w, nil)
	require.NoError(t, err)

	h := report.Functions[0].Halstead
	assert.Equal(t, 0, h.Length)
	assert.Equal(t, 0, h.Vocabulary)
	assert.Equal(t, 0.0, h.Volume)
	assert.Equal(t, 0.0, h.Difficulty)
	assert.Equal(t, 0.0, h.Effort)
	assert.Equal(t, 0.0, h.Bugs)
	assert.Equal(t, 0.0, h.Time)
}

func TestDifficultyWithZeroDistinctOperands(t *testing.T) {
	w := &scriptedWalker{script: func(v core.Visitor) {
		v.EnterScope("f", nil, 0)
		v.VisitNode(struct{}{}, operatorEntry("+"))
		v.VisitNode(struct{}{}, operatorEntry("-"))
		v.ExitScope()
	}}

	report, err := core.Analyze(struct{}{}, w, nil)
	require.NoError(t, err)

	// No operands: the operand ratio defaults to 1, so difficulty is n1/2.
	h := report.Functions[0].Halstead
	assert.InDelta(t, 1.0, h.Difficulty, 1e-9)
}

func TestMaintainabilityRescaling(t *testing.T) {
	// A large module: raw maintainability goes negative, rescaled clamps
	// to zero.
	script := func(v core.Visitor) {
		v.EnterScope("huge", nil, 0)
		v.VisitNode(struct{}{}, llocEntry(100000))
		for i := 0; i < 500; i++ {
			v.VisitNode(struct{}{}, operatorEntry("+"))
			v.VisitNode(struct{}{}, operandEntry(fmt.Sprintf("v%d", i)))
		}
		v.ExitScope()
	}

	report, err := core.Analyze(struct{}{}, &scriptedWalker{script: script}, nil)
	require.NoError(t, err)
	assert.Less(t, report.Maintainability, 0.0)

	opts := types.DefaultOptions()
	opts.NewMI = true
	report, err = core.Analyze(struct{}{}, &scriptedWalker{script: script}, &opts)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Maintainability)
}

func TestMaintainabilityBounds(t *testing.T) {
	script := func(v core.Visitor) {
		v.EnterScope("f", nil, 1)
		v.VisitNode(struct{}{}, llocEntry(5))
		v.VisitNode(struct{}{}, operatorEntry("+"))
		v.VisitNode(struct{}{}, operandEntry("a"))
		v.VisitNode(struct{}{}, operandEntry("b"))
		v.ExitScope()
	}

	report, err := core.Analyze(struct{}{}, &scriptedWalker{script: script}, nil)
	require.NoError(t, err)
	assert.Less(t, report.Maintainability, 171.0)
	assert.Greater(t, report.Maintainability, 0.0)

	opts := types.DefaultOptions()
	opts.NewMI = true
	report, err = core.Analyze(struct{}{}, &scriptedWalker{script: script}, &opts)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.Maintainability, 0.0)
	assert.LessOrEqual(t, report.Maintainability, 100.0)
}

func TestZeroAverageCyclomaticIsFatal(t *testing.T) {
	// A table declaring a negative complexity contribution can drive a
	// report to zero, which finalization treats as a broken table.
	w := &scriptedWalker{script: func(v core.Visitor) {
		v.EnterScope("f", nil, 0)
		v.VisitNode(struct{}{}, llocEntry(1))
		v.VisitNode(struct{}{}, cyclomaticEntry(-1))
		v.ExitScope()
	}}

	report, err := core.Analyze(struct{}{}, w, nil)
	assert.ErrorIs(t, err, core.ErrZeroCyclomatic)
	assert.Nil(t, report)
}

func TestAverageParams(t *testing.T) {
	w := &scriptedWalker{script: func(v core.Visitor) {
		v.EnterScope("a", nil, 3)
		v.VisitNode(struct{}{}, llocEntry(1))
		v.ExitScope()
		v.EnterScope("b", nil, 1)
		v.VisitNode(struct{}{}, llocEntry(1))
		v.ExitScope()
	}}

	report, err := core.Analyze(struct{}{}, w, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Aggregate.Params)
	assert.InDelta(t, 2.0, report.Params, 1e-9)
}

func TestAddsSyntaxDeclaredCyclomaticFunction(t *testing.T) {
	// Node-computed contributions are evaluated per instance.
	entry := syntax.Entry{Cyclomatic: syntax.FromNode(func(node any) int {
		if node.(int)%2 == 0 {
			return 1
		}
		return 0
	})}

	w := &scriptedWalker{script: func(v core.Visitor) {
		v.EnterScope("f", nil, 0)
		v.VisitNode(1, entry)
		v.VisitNode(2, entry)
		v.VisitNode(4, entry)
		v.ExitScope()
	}}

	report, err := core.Analyze(struct{}{}, w, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Functions[0].Cyclomatic)
}
