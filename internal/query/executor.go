// Package query executes registered fetchers and wraps their output in a
// uniform result envelope.
package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/marketdata-cli/internal/model"
	"github.com/sells-group/marketdata-cli/internal/provider"
	"github.com/sells-group/marketdata-cli/internal/store"
)

// Result is the envelope returned for every executed query.
type Result struct {
	ID        string        `json:"id"`
	Model     string        `json:"model"`
	Provider  string        `json:"provider"`
	Results   any           `json:"results"`
	RowCount  int           `json:"row_count"`
	Warnings  []string      `json:"warnings,omitempty"`
	Duration  time.Duration `json:"duration"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// Executor resolves a (model, provider) pair from the registry, runs the
// fetcher pipeline, and records an audit row per execution.
type Executor struct {
	registry *provider.Registry
	creds    provider.Credentials
	store    store.Store // nil disables auditing
}

// NewExecutor creates an executor. st may be nil to disable the audit trail.
func NewExecutor(registry *provider.Registry, creds provider.Credentials, st store.Store) *Executor {
	return &Executor{registry: registry, creds: creds, store: st}
}

// Registry exposes the underlying registry for introspection commands.
func (e *Executor) Registry() *provider.Registry {
	return e.registry
}

// Execute runs the fetcher for modelName on providerName. An empty
// providerName selects the model's default provider. The operation label
// is recorded in the audit trail only.
func (e *Executor) Execute(ctx context.Context, operation, modelName, providerName string, params provider.Params) (*Result, error) {
	if providerName == "" {
		def, ok := e.registry.DefaultProvider(modelName)
		if !ok {
			return nil, provider.NewValidationError("provider", "no providers registered for model %q", modelName)
		}
		providerName = def
	}

	run, ok := e.registry.Get(modelName, providerName)
	if !ok {
		return nil, provider.NewValidationError("provider",
			"provider %q does not support model %q", providerName, modelName)
	}

	start := time.Now()
	rows, count, err := run(ctx, params, e.creds)
	duration := time.Since(start)

	e.audit(ctx, operation, modelName, providerName, params, count, duration, err)

	if err != nil {
		return nil, err
	}

	zap.L().Debug("query executed",
		zap.String("model", modelName),
		zap.String("provider", providerName),
		zap.Int("rows", count),
		zap.Duration("duration", duration),
	)

	return &Result{
		ID:        uuid.New().String(),
		Model:     modelName,
		Provider:  providerName,
		Results:   rows,
		RowCount:  count,
		Duration:  duration,
		FetchedAt: start.UTC(),
	}, nil
}

// audit records the run; failures are logged, never surfaced to the caller.
func (e *Executor) audit(ctx context.Context, operation, modelName, providerName string, params provider.Params, count int, duration time.Duration, execErr error) {
	if e.store == nil {
		return
	}

	run := model.QueryRun{
		ID:        uuid.New().String(),
		Operation: operation,
		Model:     modelName,
		Provider:  providerName,
		Params:    params,
		RowCount:  count,
		Duration:  duration,
		CreatedAt: time.Now().UTC(),
	}
	if execErr != nil {
		run.Error = eris.ToString(execErr, false)
	}

	if err := e.store.RecordRun(ctx, run); err != nil {
		zap.L().Warn("audit record failed",
			zap.String("model", modelName),
			zap.String("provider", providerName),
			zap.Error(err),
		)
	}
}
