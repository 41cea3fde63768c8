package provider

import (
	"context"
	"sort"
	"sync"
)

// Runner executes a fetcher with its query and record types erased, so the
// registry can hold fetchers for heterogeneous models.
type Runner func(ctx context.Context, params Params, creds Credentials) (any, int, error)

// Erase wraps a typed Fetcher into a Runner. The int result is the row
// count of the normalized slice.
func Erase[Q any, T any](f Fetcher[Q, T]) Runner {
	return func(ctx context.Context, params Params, creds Credentials) (any, int, error) {
		rows, err := Fetch(ctx, f, params, creds)
		if err != nil {
			return nil, 0, err
		}
		return rows, len(rows), nil
	}
}

// Registry maps (model, provider) pairs to runnable fetchers. The first
// provider registered for a model is its default.
type Registry struct {
	mu      sync.RWMutex
	runners map[string]map[string]Runner // model -> provider -> runner
	order   map[string][]string          // model -> providers in registration order
}

// NewRegistry creates an empty fetcher registry.
func NewRegistry() *Registry {
	return &Registry{
		runners: make(map[string]map[string]Runner),
		order:   make(map[string][]string),
	}
}

// Register adds a fetcher for a (model, provider) pair.
func (r *Registry) Register(model, providerName string, run Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runners[model] == nil {
		r.runners[model] = make(map[string]Runner)
	}
	if _, exists := r.runners[model][providerName]; !exists {
		r.order[model] = append(r.order[model], providerName)
	}
	r.runners[model][providerName] = run
}

// Get returns the runner for a (model, provider) pair.
func (r *Registry) Get(model, providerName string) (Runner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runners[model][providerName]
	return run, ok
}

// DefaultProvider returns the first provider registered for a model.
func (r *Registry) DefaultProvider(model string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	providers := r.order[model]
	if len(providers) == 0 {
		return "", false
	}
	return providers[0], true
}

// Providers returns the providers registered for a model, default first.
func (r *Registry) Providers(model string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order[model]...)
}

// Models returns all registered model names, sorted.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	models := make([]string, 0, len(r.runners))
	for m := range r.runners {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}
