package db

import (
	"context"

	"github.com/TFMV/surrealmetrics/types"
)

// Store persists completed complexity reports.
type Store interface {
	Initialize(ctx context.Context) error
	SaveReport(ctx context.Context, path string, report *types.Report) error
}
