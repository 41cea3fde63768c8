package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/marketdata-cli/internal/provider"
	"github.com/sells-group/marketdata-cli/internal/provider/benzinga"
	"github.com/sells-group/marketdata-cli/internal/provider/fmp"
	"github.com/sells-group/marketdata-cli/internal/query"
	"github.com/sells-group/marketdata-cli/internal/router"
	"github.com/sells-group/marketdata-cli/internal/store"
)

// buildRegistry wires every provider fetcher under its model id. The first
// registration per model is the default provider.
func buildRegistry() *provider.Registry {
	benzingaClient := provider.NewClient("benzinga")
	fmpClient := provider.NewClient("fmp")

	reg := provider.NewRegistry()
	reg.Register(router.ModelPriceTarget, "benzinga",
		provider.Erase(benzinga.NewPriceTargetFetcher(benzingaClient, cfg.Benzinga.BaseURL)))
	reg.Register(router.ModelPriceTarget, "fmp",
		provider.Erase(fmp.NewPriceTargetFetcher(fmpClient, cfg.FMP.BaseURL)))
	reg.Register(router.ModelIndexConstituents, "fmp",
		provider.Erase(fmp.NewConstituentsFetcher(fmpClient, cfg.FMP.BaseURL)))
	reg.Register(router.ModelAvailableIndices, "fmp",
		provider.Erase(fmp.NewAvailableFetcher(fmpClient, cfg.FMP.BaseURL)))
	reg.Register(router.ModelIndexSearch, "fmp",
		provider.Erase(fmp.NewSearchFetcher(fmpClient, cfg.FMP.BaseURL)))
	reg.Register(router.ModelMarketIndices, "fmp",
		provider.Erase(fmp.NewHistoricalFetcher(fmpClient, cfg.FMP.BaseURL)))
	return reg
}

// initStore opens the configured audit-trail backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &cfg.Store.Pool)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// initExecutor builds the query executor. withStore false skips the audit
// trail for commands that don't need it.
func initExecutor(ctx context.Context, withStore bool) (*query.Executor, store.Store, error) {
	var st store.Store
	if withStore {
		s, err := initStore(ctx)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close() //nolint:errcheck
			return nil, nil, err
		}
		st = s
	}
	return query.NewExecutor(buildRegistry(), cfg.Credentials(), st), st, nil
}
