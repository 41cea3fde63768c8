package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/marketdata-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, extracted so tests
// can substitute pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool (used by tests with pgxmock).
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS query_runs (
	id          TEXT PRIMARY KEY,
	operation   TEXT NOT NULL,
	model       TEXT NOT NULL,
	provider    TEXT NOT NULL,
	params      JSONB,
	row_count   INTEGER NOT NULL DEFAULT 0,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	error       TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_query_runs_operation ON query_runs(operation);
CREATE INDEX IF NOT EXISTS idx_query_runs_provider ON query_runs(provider);
CREATE INDEX IF NOT EXISTS idx_query_runs_created_at ON query_runs(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) RecordRun(ctx context.Context, run model.QueryRun) error {
	paramsJSON, err := json.Marshal(run.Params)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal params")
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO query_runs (id, operation, model, provider, params, row_count, duration_ms, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.Operation, run.Model, run.Provider, string(paramsJSON),
		run.RowCount, run.Duration.Milliseconds(), run.Error, createdAt,
	)
	return eris.Wrap(err, "postgres: insert query run")
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.QueryRun, error) {
	query := `SELECT id, operation, model, provider, params, row_count, duration_ms, error, created_at FROM query_runs`
	var conds []string
	var args []any

	if filter.Operation != "" {
		args = append(args, filter.Operation)
		conds = append(conds, fmt.Sprintf("operation = $%d", len(args)))
	}
	if filter.Provider != "" {
		args = append(args, filter.Provider)
		conds = append(conds, fmt.Sprintf("provider = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" LIMIT %d", limit)
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list query runs")
	}
	defer rows.Close()

	var runs []model.QueryRun
	for rows.Next() {
		var run model.QueryRun
		var paramsJSON *string
		var errMsg *string
		var durationMs int64

		if err := rows.Scan(&run.ID, &run.Operation, &run.Model, &run.Provider,
			&paramsJSON, &run.RowCount, &durationMs, &errMsg, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan query run")
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		if errMsg != nil {
			run.Error = *errMsg
		}
		if paramsJSON != nil && *paramsJSON != "" && *paramsJSON != "null" {
			if err := json.Unmarshal([]byte(*paramsJSON), &run.Params); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal params")
			}
		}
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate query runs")
}
