package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/marketdata-cli/internal/provider"
	"github.com/sells-group/marketdata-cli/internal/query"
)

func init() {
	// Replace global logger with a no-op to avoid nil pointer panics in tests.
	zap.ReplaceGlobals(zap.NewNop())
}

// testHandler builds a handler whose every model is served by run.
func testHandler(t *testing.T, run provider.Runner, opts ServerOptions) http.Handler {
	t.Helper()

	reg := provider.NewRegistry()
	for _, op := range Operations {
		reg.Register(op.Model, "benzinga", run)
	}
	return NewHandler(query.NewExecutor(reg, nil, nil), opts)
}

func echoRunner(t *testing.T, wantParams provider.Params) provider.Runner {
	return func(_ context.Context, params provider.Params, _ provider.Credentials) (any, int, error) {
		if wantParams != nil {
			assert.Equal(t, wantParams, params)
		}
		return []map[string]string{{"symbol": "AAPL"}}, 1, nil
	}
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	h := testHandler(t, echoRunner(t, nil), ServerOptions{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandler_OperationEnvelope(t *testing.T) {
	t.Parallel()

	h := testHandler(t, echoRunner(t, provider.Params{"symbol": "AAPL"}), ServerOptions{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/v1/equity/estimates/price-target?symbol=AAPL&provider=benzinga", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res query.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "PriceTarget", res.Model)
	assert.Equal(t, "benzinga", res.Provider)
	assert.Equal(t, 1, res.RowCount)
	assert.NotEmpty(t, res.ID)
	assert.Empty(t, res.Warnings)
}

func TestHandler_RepeatedParamBecomesList(t *testing.T) {
	t.Parallel()

	h := testHandler(t, echoRunner(t, provider.Params{"symbol": []string{"AAPL", "MSFT"}}), ServerOptions{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/v1/equity/estimates/price-target?symbol=AAPL&symbol=MSFT", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_ValidationErrorIs400(t *testing.T) {
	t.Parallel()

	run := func(_ context.Context, _ provider.Params, _ provider.Credentials) (any, int, error) {
		return nil, 0, provider.NewValidationError("symbol", "required")
	}
	h := testHandler(t, run, ServerOptions{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/index/constituents", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_params", body["code"])
	assert.Contains(t, body["error"], "symbol")
}

func TestHandler_EmptyDataIs404(t *testing.T) {
	t.Parallel()

	run := func(_ context.Context, _ provider.Params, _ provider.Credentials) (any, int, error) {
		return nil, 0, provider.ErrEmptyData
	}
	h := testHandler(t, run, ServerOptions{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/index/available", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "empty_data", body["code"])
}

func TestHandler_UpstreamErrorIs502(t *testing.T) {
	t.Parallel()

	run := func(_ context.Context, _ provider.Params, _ provider.Credentials) (any, int, error) {
		return nil, 0, &provider.APIError{Provider: "benzinga", StatusCode: 500, Body: []byte("boom")}
	}
	h := testHandler(t, run, ServerOptions{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/index/available", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "upstream_error", body["code"])
}

func TestHandler_DeprecatedOperationWarns(t *testing.T) {
	t.Parallel()

	h := testHandler(t, echoRunner(t, nil), ServerOptions{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/index/market?symbol=%5EGSPC", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res query.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "/index/price/historical")

	// the replacement route serves the same model without the warning
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/index/price/historical?symbol=%5EGSPC", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Empty(t, res.Warnings)
}

func TestHandler_Throttle(t *testing.T) {
	t.Parallel()

	h := testHandler(t, echoRunner(t, nil), ServerOptions{RequestsPerSecond: 1, Burst: 1})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rate_limited", body["code"])
}

func TestLookup(t *testing.T) {
	t.Parallel()

	op, ok := Lookup("equity.estimates.price_target")
	require.True(t, ok)
	assert.Equal(t, ModelPriceTarget, op.Model)

	_, ok = Lookup("no.such.operation")
	assert.False(t, ok)
}
