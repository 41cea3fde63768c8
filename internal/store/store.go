// Package store persists the query-run audit trail.
package store

import (
	"context"

	"github.com/sells-group/marketdata-cli/internal/model"
)

// RunFilter specifies criteria for listing query runs.
type RunFilter struct {
	Operation string `json:"operation,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for the query audit trail.
type Store interface {
	// RecordRun writes one audit record after a query executes.
	RecordRun(ctx context.Context, run model.QueryRun) error
	// ListRuns returns audit records, newest first.
	ListRuns(ctx context.Context, filter RunFilter) ([]model.QueryRun, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
