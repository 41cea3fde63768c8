package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/marketdata-cli/internal/model"
	"github.com/sells-group/marketdata-cli/internal/provider"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testRun(operation, providerName string, createdAt time.Time) model.QueryRun {
	return model.QueryRun{
		ID:        uuid.New().String(),
		Operation: operation,
		Model:     "PriceTarget",
		Provider:  providerName,
		Params:    provider.Params{"symbol": "AAPL"},
		RowCount:  3,
		Duration:  250 * time.Millisecond,
		CreatedAt: createdAt,
	}
}

func TestSQLiteStore_RecordAndList(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordRun(ctx, testRun("equity.estimates.price_target", "benzinga", base)))
	require.NoError(t, s.RecordRun(ctx, testRun("index.constituents", "fmp", base.Add(time.Minute))))

	runs, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// newest first
	assert.Equal(t, "index.constituents", runs[0].Operation)
	assert.Equal(t, "equity.estimates.price_target", runs[1].Operation)

	assert.Equal(t, "AAPL", runs[1].Params["symbol"])
	assert.Equal(t, 3, runs[1].RowCount)
	assert.Equal(t, 250*time.Millisecond, runs[1].Duration)
	assert.Empty(t, runs[1].Error)
}

func TestSQLiteStore_RecordsError(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	run := testRun("equity.estimates.price_target", "benzinga", time.Now().UTC())
	run.Error = "no results found; try adjusting the query parameters"
	require.NoError(t, s.RecordRun(ctx, run))

	runs, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.Error, runs[0].Error)
}

func TestSQLiteStore_ListFilters(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordRun(ctx, testRun("equity.estimates.price_target", "benzinga", base)))
	require.NoError(t, s.RecordRun(ctx, testRun("equity.estimates.price_target", "fmp", base.Add(time.Second))))
	require.NoError(t, s.RecordRun(ctx, testRun("index.constituents", "fmp", base.Add(2*time.Second))))

	runs, err := s.ListRuns(ctx, RunFilter{Operation: "equity.estimates.price_target"})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = s.ListRuns(ctx, RunFilter{Provider: "fmp"})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = s.ListRuns(ctx, RunFilter{Operation: "index.constituents", Provider: "benzinga"})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLiteStore_LimitAndOffset(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordRun(ctx, testRun("op", "benzinga", base.Add(time.Duration(i)*time.Second))))
	}

	runs, err := s.ListRuns(ctx, RunFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = s.ListRuns(ctx, RunFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
