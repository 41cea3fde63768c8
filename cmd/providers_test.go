package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/marketdata-cli/internal/provider"
	"github.com/sells-group/marketdata-cli/internal/router"
)

func noopRunner(context.Context, provider.Params, provider.Credentials) (any, int, error) {
	return nil, 0, nil
}

func TestFormatOperations(t *testing.T) {
	reg := provider.NewRegistry()
	reg.Register(router.ModelPriceTarget, "benzinga", noopRunner)
	reg.Register(router.ModelPriceTarget, "fmp", noopRunner)
	reg.Register(router.ModelMarketIndices, "fmp", noopRunner)

	var buf bytes.Buffer
	require.NoError(t, formatOperations(&buf, reg))

	out := buf.String()
	assert.Contains(t, out, "OPERATION")
	assert.Contains(t, out, "equity.estimates.price_target")
	assert.Contains(t, out, "benzinga,fmp")
	assert.Contains(t, out, "index.market")
	assert.Contains(t, out, "deprecated")
}
