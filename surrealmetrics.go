// Package surrealmetrics computes software-complexity metrics (logical
// SLOC, cyclomatic complexity, Halstead statistics, maintainability index)
// for Go source trees and optionally persists the reports to SurrealDB.
package surrealmetrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/TFMV/surrealmetrics/core"
	"github.com/TFMV/surrealmetrics/db"
	"github.com/TFMV/surrealmetrics/expr"
	"github.com/TFMV/surrealmetrics/types"
	"github.com/TFMV/surrealmetrics/walker"
	"golang.org/x/sync/errgroup"
)

// HotspotThreshold is the cyclomatic complexity at which a function is
// surfaced in the summary.
const HotspotThreshold = 10

// Analyzer is the high-level entry point: it walks directories, runs one
// engine invocation per file, and optionally stores the results.
type Analyzer struct {
	Store   db.Store
	Cache   *expr.Cache
	Walker  *walker.Walker
	Options types.Options
}

// New creates an Analyzer with no storage backend; reports can still be
// computed and summarized, just not persisted.
func New(opts types.Options) *Analyzer {
	cache := expr.NewCache(10000)
	return &Analyzer{
		Cache:   cache,
		Walker:  walker.New(cache),
		Options: opts,
	}
}

// NewAnalyzer creates an Analyzer backed by SurrealDB.
func NewAnalyzer(config db.Config, opts types.Options) (*Analyzer, error) {
	store, err := db.NewSurrealStore(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	a := New(opts)
	a.Store = store
	return a, nil
}

// Initialize sets up the storage connection.
func (a *Analyzer) Initialize(ctx context.Context) error {
	if a.Store == nil {
		return fmt.Errorf("no storage backend configured")
	}
	return a.Store.Initialize(ctx)
}

// AnalyzeFile runs one analysis over a single Go source file.
func (a *Analyzer) AnalyzeFile(path string) (*types.Report, error) {
	tree, err := walker.Load(path)
	if err != nil {
		return nil, err
	}
	report, err := core.Analyze(tree, a.Walker, &a.Options)
	if err != nil {
		return nil, fmt.Errorf("error analyzing %s: %w", path, err)
	}
	return report, nil
}

// AnalyzeDirectory analyzes every .go file under dir concurrently, one
// engine invocation per file. Results come back sorted by path.
func (a *Analyzer) AnalyzeDirectory(ctx context.Context, dir string) ([]types.FileReport, error) {
	var filePaths []string
	if err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk directory: %w", err)
		}
		if !d.IsDir() && strings.HasSuffix(path, ".go") {
			filePaths = append(filePaths, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	resultCh := make(chan types.FileReport, len(filePaths))

	for _, path := range filePaths {
		path := path
		g.Go(func() error {
			report, err := a.AnalyzeFile(path)
			if err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case resultCh <- types.FileReport{Path: path, Report: report}:
				return nil
			}
		})
	}

	go func() {
		g.Wait()
		close(resultCh)
	}()

	var results []types.FileReport
	for res := range resultCh {
		results = append(results, res)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// StoreReports persists the given file reports.
func (a *Analyzer) StoreReports(ctx context.Context, reports []types.FileReport) error {
	if a.Store == nil {
		return fmt.Errorf("no storage backend configured")
	}
	for _, fr := range reports {
		if err := a.Store.SaveReport(ctx, fr.Path, fr.Report); err != nil {
			return fmt.Errorf("failed to store report for %s: %w", fr.Path, err)
		}
	}
	return nil
}

// Summarize folds file reports into a directory-level summary.
func (a *Analyzer) Summarize(reports []types.FileReport) types.Summary {
	return types.Summarize(reports, HotspotThreshold)
}
