package db

import (
	"context"
	"fmt"

	"github.com/TFMV/surrealmetrics/schema"
	"github.com/TFMV/surrealmetrics/types"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// Config holds SurrealDB connection settings.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// ReportRecord is the stored form of a file-level report.
type ReportRecord struct {
	ID              *models.RecordID `json:"id,omitempty"`
	Path            string           `json:"path"`
	LogicalSloc     int              `json:"sloc_logical"`
	PhysicalSloc    int              `json:"sloc_physical"`
	Cyclomatic      int              `json:"cyclomatic"`
	Maintainability float64          `json:"maintainability"`
	Params          float64          `json:"params"`
	FunctionCount   int              `json:"function_count"`
	Effort          float64          `json:"effort"`
	Volume          float64          `json:"volume"`
}

// FunctionRecord is the stored form of one function's metrics.
type FunctionRecord struct {
	ID                *models.RecordID `json:"id,omitempty"`
	Path              string           `json:"path"`
	Name              string           `json:"name"`
	Line              int              `json:"line"`
	LogicalSloc       int              `json:"sloc_logical"`
	PhysicalSloc      int              `json:"sloc_physical"`
	Cyclomatic        int              `json:"cyclomatic"`
	CyclomaticDensity float64          `json:"cyclomatic_density"`
	Params            int              `json:"params"`
	Volume            float64          `json:"volume"`
	Difficulty        float64          `json:"difficulty"`
	Effort            float64          `json:"effort"`
	Bugs              float64          `json:"bugs"`
}

// DependencyRecord is the stored form of one extracted dependency.
type DependencyRecord struct {
	ID   *models.RecordID `json:"id,omitempty"`
	File string           `json:"file"`
	Line int              `json:"line"`
	Type string           `json:"type"`
	Path string           `json:"path"`
}

// SurrealStore persists reports to SurrealDB.
type SurrealStore struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealStore connects to the database described by config.
func NewSurrealStore(config Config) (*SurrealStore, error) {
	sdb, err := surrealdb.New(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &SurrealStore{db: sdb, config: config}, nil
}

// Initialize authenticates and selects the namespace and database.
func (s *SurrealStore) Initialize(ctx context.Context) error {
	if err := s.db.Use(s.config.Namespace, s.config.Database); err != nil {
		return fmt.Errorf("failed to set namespace/database: %w", err)
	}

	authData := &surrealdb.Auth{
		Username: s.config.Username,
		Password: s.config.Password,
	}
	token, err := s.db.SignIn(authData)
	if err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}
	if err := s.db.Authenticate(token); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	return schema.InitializeSchema(s.db)
}

// SaveReport stores the report, its functions, and its dependencies.
func (s *SurrealStore) SaveReport(ctx context.Context, path string, report *types.Report) error {
	agg := report.Aggregate
	rec := ReportRecord{
		Path:            path,
		LogicalSloc:     agg.LogicalSloc,
		PhysicalSloc:    agg.PhysicalSloc,
		Cyclomatic:      agg.Cyclomatic,
		Maintainability: report.Maintainability,
		Params:          report.Params,
		FunctionCount:   len(report.Functions),
		Effort:          agg.Halstead.Effort,
		Volume:          agg.Halstead.Volume,
	}
	if _, err := surrealdb.Create[ReportRecord](s.db, models.Table("reports"), rec); err != nil {
		return fmt.Errorf("error storing report for %s: %w", path, err)
	}

	for _, fn := range report.Functions {
		fr := FunctionRecord{
			Path:              path,
			Name:              fn.Name,
			Line:              fn.Line,
			LogicalSloc:       fn.LogicalSloc,
			PhysicalSloc:      fn.PhysicalSloc,
			Cyclomatic:        fn.Cyclomatic,
			CyclomaticDensity: fn.CyclomaticDensity,
			Params:            fn.Params,
			Volume:            fn.Halstead.Volume,
			Difficulty:        fn.Halstead.Difficulty,
			Effort:            fn.Halstead.Effort,
			Bugs:              fn.Halstead.Bugs,
		}
		if _, err := surrealdb.Create[FunctionRecord](s.db, models.Table("functions"), fr); err != nil {
			return fmt.Errorf("error storing function %s: %w", fn.Name, err)
		}
	}

	for _, dep := range report.Dependencies {
		dr := DependencyRecord{
			File: path,
			Line: dep.Line,
			Type: dep.Type,
			Path: dep.Path,
		}
		if _, err := surrealdb.Create[DependencyRecord](s.db, models.Table("dependencies"), dr); err != nil {
			return fmt.Errorf("error storing dependency %s: %w", dep.Path, err)
		}
	}

	return nil
}
