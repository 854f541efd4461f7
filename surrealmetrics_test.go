package surrealmetrics_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/TFMV/surrealmetrics"
	"github.com/TFMV/surrealmetrics/db"
	"github.com/TFMV/surrealmetrics/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", `package main

import "fmt"

func main() {
	if len(fmt.Sprint(1)) > 0 {
		fmt.Println("hello")
	}
}
`)

	analyzer := surrealmetrics.New(types.DefaultOptions())
	report, err := analyzer.AnalyzeFile(path)
	require.NoError(t, err)

	require.Len(t, report.Functions, 1)
	assert.Equal(t, "main", report.Functions[0].Name)
	assert.Equal(t, 2, report.Functions[0].Cyclomatic)
	require.Len(t, report.Dependencies, 1)
	assert.Equal(t, "fmt", report.Dependencies[0].Path)
}

func TestAnalyzeFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.go", "package main func")

	analyzer := surrealmetrics.New(types.DefaultOptions())
	_, err := analyzer.AnalyzeFile(path)
	assert.Error(t, err)
}

func TestAnalyzeDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.go", `package sample

func B() int { return 2 }
`)
	writeFile(t, dir, "a.go", `package sample

func A(x int) int {
	if x > 0 {
		return x
	}
	return -x
}
`)

	analyzer := surrealmetrics.New(types.DefaultOptions())
	reports, err := analyzer.AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	// Results are sorted by path, with independent per-file counters.
	assert.Equal(t, filepath.Join(dir, "a.go"), reports[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.go"), reports[1].Path)
	assert.Equal(t, 2, reports[0].Report.Functions[0].Cyclomatic)
	assert.Equal(t, 1, reports[1].Report.Functions[0].Cyclomatic)

	summary := analyzer.Summarize(reports)
	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 2, summary.TotalFunctions)
	assert.InDelta(t, 1.5, summary.AvgComplexity, 1e-9)
}

func TestStoreReports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", `package sample

func A() {}
`)

	analyzer := surrealmetrics.New(types.DefaultOptions())
	reports, err := analyzer.AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)

	var stored []string
	mock := db.NewMockStore()
	mock.SaveReportFunc = func(_ context.Context, path string, report *types.Report) error {
		require.NotNil(t, report)
		stored = append(stored, path)
		return nil
	}
	analyzer.Store = mock

	require.NoError(t, analyzer.Initialize(context.Background()))
	require.NoError(t, analyzer.StoreReports(context.Background(), reports))
	assert.Len(t, stored, 1)
}

func TestStoreWithoutBackend(t *testing.T) {
	analyzer := surrealmetrics.New(types.DefaultOptions())
	assert.Error(t, analyzer.Initialize(context.Background()))
	assert.Error(t, analyzer.StoreReports(context.Background(), nil))
}
