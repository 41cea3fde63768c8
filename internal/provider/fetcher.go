// Package provider defines the fetcher abstraction shared by all upstream
// data vendors: a query transform, an HTTP extraction step, and a data
// transform, run in fixed order per request.
package provider

import "context"

// Credentials maps credential names (e.g. "fmp_api_key") to secret values.
// It is supplied by the caller; fetchers never store keys themselves.
type Credentials map[string]string

// Get returns the named credential or "" when absent.
func (c Credentials) Get(name string) string {
	if c == nil {
		return ""
	}
	return c[name]
}

// Params is the raw, user-supplied parameter bag for one request.
type Params map[string]any

// Fetcher is the stateless (query transform, extract, data transform)
// triple for one (provider, model) pair. Q is the validated query type,
// T the normalized record type.
type Fetcher[Q any, T any] interface {
	// TransformQuery builds and validates the query object. It fails when
	// required fields are absent or a value fails validation.
	TransformQuery(params Params) (Q, error)
	// ExtractData issues the HTTP request(s) and returns raw vendor rows.
	// A payload with no usable records returns ErrEmptyData.
	ExtractData(ctx context.Context, query Q, creds Credentials) ([]map[string]any, error)
	// TransformData maps each raw row into the normalized record.
	TransformData(query Q, raw []map[string]any) ([]T, error)
}

// Fetch runs the three fetcher steps in order.
func Fetch[Q any, T any](ctx context.Context, f Fetcher[Q, T], params Params, creds Credentials) ([]T, error) {
	query, err := f.TransformQuery(params)
	if err != nil {
		return nil, err
	}
	raw, err := f.ExtractData(ctx, query, creds)
	if err != nil {
		return nil, err
	}
	return f.TransformData(query, raw)
}
