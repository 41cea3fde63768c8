package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/marketdata-cli/internal/provider"
)

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"symbol=AAPL", "limit=5"})
	require.NoError(t, err)
	assert.Equal(t, provider.Params{"symbol": "AAPL", "limit": "5"}, params)
}

func TestParseParams_ValueMayContainEquals(t *testing.T) {
	params, err := parseParams([]string{"query=a=b"})
	require.NoError(t, err)
	assert.Equal(t, "a=b", params["query"])
}

func TestParseParams_Empty(t *testing.T) {
	params, err := parseParams(nil)
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestParseParams_MissingSeparator(t *testing.T) {
	_, err := parseParams([]string{"symbol"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed --param")
}

func TestParseParams_EmptyKey(t *testing.T) {
	_, err := parseParams([]string{"=AAPL"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed --param")
}
