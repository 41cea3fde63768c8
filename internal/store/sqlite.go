package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/marketdata-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS query_runs (
	id          TEXT PRIMARY KEY,
	operation   TEXT NOT NULL,
	model       TEXT NOT NULL,
	provider    TEXT NOT NULL,
	params      TEXT,
	row_count   INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	error       TEXT,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_query_runs_operation ON query_runs(operation);
CREATE INDEX IF NOT EXISTS idx_query_runs_provider ON query_runs(provider);
CREATE INDEX IF NOT EXISTS idx_query_runs_created_at ON query_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordRun(ctx context.Context, run model.QueryRun) error {
	paramsJSON, err := json.Marshal(run.Params)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal params")
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO query_runs (id, operation, model, provider, params, row_count, duration_ms, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Operation, run.Model, run.Provider, string(paramsJSON),
		run.RowCount, run.Duration.Milliseconds(), run.Error, createdAt,
	)
	return eris.Wrap(err, "sqlite: insert query run")
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.QueryRun, error) {
	query := `SELECT id, operation, model, provider, params, row_count, duration_ms, error, created_at FROM query_runs`
	var conds []string
	var args []any

	if filter.Operation != "" {
		conds = append(conds, "operation = ?")
		args = append(args, filter.Operation)
	}
	if filter.Provider != "" {
		conds = append(conds, "provider = ?")
		args = append(args, filter.Provider)
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

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list query runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.QueryRun
	for rows.Next() {
		var run model.QueryRun
		var paramsJSON sql.NullString
		var errMsg sql.NullString
		var durationMs int64

		if err := rows.Scan(&run.ID, &run.Operation, &run.Model, &run.Provider,
			&paramsJSON, &run.RowCount, &durationMs, &errMsg, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan query run")
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		run.Error = errMsg.String
		if paramsJSON.Valid && paramsJSON.String != "" && paramsJSON.String != "null" {
			if err := json.Unmarshal([]byte(paramsJSON.String), &run.Params); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal params")
			}
		}
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate query runs")
}
