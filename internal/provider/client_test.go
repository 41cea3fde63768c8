package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"symbol":"AAPL"}`))
	}))
	defer srv.Close()

	var out map[string]string
	err := NewClient("test").GetJSON(context.Background(), srv.URL, &out)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", out["symbol"])
}

func TestGetJSON_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	var out any
	err := NewClient("fmp").GetJSON(context.Background(), srv.URL, &out)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "fmp", apiErr.Provider)
}

func TestGetJSON_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	var out any
	err := NewClient("test").GetJSON(context.Background(), srv.URL, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestGetAllRows_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbol")
		fmt.Fprintf(w, `[{"symbol":%q,"n":1},{"symbol":%q,"n":2}]`, symbol, symbol)
	}))
	defer srv.Close()

	urls := []string{
		srv.URL + "?symbol=AAPL",
		srv.URL + "?symbol=MSFT",
		srv.URL + "?symbol=GOOG",
	}

	rows, err := NewClient("test").GetAllRows(context.Background(), urls)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "AAPL", rows[0]["symbol"])
	assert.Equal(t, "AAPL", rows[1]["symbol"])
	assert.Equal(t, "MSFT", rows[2]["symbol"])
	assert.Equal(t, "GOOG", rows[5]["symbol"])
}

func TestGetAllRows_OneFailureFailsAll(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") == "MSFT" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient("test").GetAllRows(context.Background(), []string{
		srv.URL + "?symbol=AAPL",
		srv.URL + "?symbol=MSFT",
	})
	require.Error(t, err)

	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
}
