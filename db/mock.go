package db

import (
	"context"

	"github.com/TFMV/surrealmetrics/types"
)

// MockStore is a Store whose behavior tests can swap per call.
type MockStore struct {
	InitializeFunc func(ctx context.Context) error
	SaveReportFunc func(ctx context.Context, path string, report *types.Report) error
}

func NewMockStore() *MockStore {
	return &MockStore{
		InitializeFunc: func(ctx context.Context) error {
			return nil
		},
	}
}

func (m *MockStore) Initialize(ctx context.Context) error {
	return m.InitializeFunc(ctx)
}

func (m *MockStore) SaveReport(ctx context.Context, path string, report *types.Report) error {
	if m.SaveReportFunc != nil {
		return m.SaveReportFunc(ctx, path, report)
	}
	return nil
}
