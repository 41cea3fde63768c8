package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sells-group/marketdata-cli/internal/model"
	"github.com/sells-group/marketdata-cli/internal/provider"
)

// constituentIndexes are the index families FMP publishes membership for.
var constituentIndexes = map[string]bool{
	"dowjones": true,
	"sp500":    true,
	"nasdaq":   true,
}

// ConstituentsQuery selects one index family for membership listing.
type ConstituentsQuery struct {
	Index string
}

// ConstituentsFetcher lists the members of a market index.
type ConstituentsFetcher struct {
	client  *provider.Client
	baseURL string
}

// NewConstituentsFetcher creates the fetcher. baseURL "" uses production.
func NewConstituentsFetcher(client *provider.Client, baseURL string) *ConstituentsFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ConstituentsFetcher{client: client, baseURL: baseURL}
}

// TransformQuery validates the index family enum.
func (f *ConstituentsFetcher) TransformQuery(params provider.Params) (ConstituentsQuery, error) {
	symbol, err := params.RequireString("symbol")
	if err != nil {
		return ConstituentsQuery{}, err
	}
	symbol = strings.ToLower(symbol)
	if !constituentIndexes[symbol] {
		return ConstituentsQuery{}, provider.NewValidationError(
			"symbol", "unknown index %q; supported: dowjones, nasdaq, sp500", symbol)
	}
	return ConstituentsQuery{Index: symbol}, nil
}

// ExtractData calls the per-index constituent endpoint.
func (f *ConstituentsFetcher) ExtractData(ctx context.Context, query ConstituentsQuery, creds provider.Credentials) ([]map[string]any, error) {
	vals := url.Values{}
	vals.Set("apikey", creds.Get(CredentialKey))

	var rows []map[string]any
	u := fmt.Sprintf("%s/v3/%s_constituent?%s", f.baseURL, query.Index, vals.Encode())
	if err := f.client.GetJSON(ctx, u, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, provider.ErrEmptyData
	}
	return rows, nil
}

// TransformData maps each membership row into the normalized record.
func (f *ConstituentsFetcher) TransformData(query ConstituentsQuery, raw []map[string]any) ([]model.IndexConstituent, error) {
	out := make([]model.IndexConstituent, 0, len(raw))
	for _, row := range raw {
		c := model.IndexConstituent{
			Name:        provider.RowString(row, "name"),
			Sector:      provider.RowString(row, "sector"),
			SubSector:   provider.RowString(row, "subSector"),
			Headquarter: provider.RowString(row, "headQuarter"),
			CIK:         provider.RowString(row, "cik"),
			Founded:     provider.RowString(row, "founded"),
		}
		if s := provider.RowString(row, "symbol"); s != nil {
			c.Symbol = *s
		}
		// dateFirstAdded is sometimes a bare year; keep only real dates.
		if d := provider.RowString(row, "dateFirstAdded"); d != nil {
			if parsed, err := model.ParseDate(*d); err == nil {
				c.DateFirstAdded = &parsed
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// AvailableQuery has no parameters; the endpoint lists everything.
type AvailableQuery struct{}

// AvailableFetcher lists all indexes FMP serves.
type AvailableFetcher struct {
	client  *provider.Client
	baseURL string
}

// NewAvailableFetcher creates the fetcher. baseURL "" uses production.
func NewAvailableFetcher(client *provider.Client, baseURL string) *AvailableFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &AvailableFetcher{client: client, baseURL: baseURL}
}

// TransformQuery accepts an empty parameter bag.
func (f *AvailableFetcher) TransformQuery(params provider.Params) (AvailableQuery, error) {
	return AvailableQuery{}, nil
}

// ExtractData lists the available indexes.
func (f *AvailableFetcher) ExtractData(ctx context.Context, query AvailableQuery, creds provider.Credentials) ([]map[string]any, error) {
	return fetchAvailable(ctx, f.client, f.baseURL, creds)
}

// TransformData maps each index row into the normalized record.
func (f *AvailableFetcher) TransformData(query AvailableQuery, raw []map[string]any) ([]model.AvailableIndex, error) {
	return transformAvailable(raw), nil
}

// SearchQuery filters the available indexes for rows containing the query.
type SearchQuery struct {
	Query string
}

// SearchFetcher implements index search as a filter over the available
// indexes; FMP has no dedicated search endpoint.
type SearchFetcher struct {
	client  *provider.Client
	baseURL string
}

// NewSearchFetcher creates the fetcher. baseURL "" uses production.
func NewSearchFetcher(client *provider.Client, baseURL string) *SearchFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &SearchFetcher{client: client, baseURL: baseURL}
}

// TransformQuery reads the optional search term. An empty term returns
// every index.
func (f *SearchFetcher) TransformQuery(params provider.Params) (SearchQuery, error) {
	q, err := params.String("query")
	if err != nil {
		return SearchQuery{}, err
	}
	return SearchQuery{Query: strings.TrimSpace(q)}, nil
}

// ExtractData lists the available indexes.
func (f *SearchFetcher) ExtractData(ctx context.Context, query SearchQuery, creds provider.Credentials) ([]map[string]any, error) {
	return fetchAvailable(ctx, f.client, f.baseURL, creds)
}

// TransformData keeps rows whose symbol or name contains the query,
// case-insensitively.
func (f *SearchFetcher) TransformData(query SearchQuery, raw []map[string]any) ([]model.AvailableIndex, error) {
	all := transformAvailable(raw)
	if query.Query == "" {
		return all, nil
	}
	needle := strings.ToLower(query.Query)
	out := make([]model.AvailableIndex, 0, len(all))
	for _, idx := range all {
		if strings.Contains(strings.ToLower(idx.Symbol), needle) {
			out = append(out, idx)
			continue
		}
		if idx.Name != nil && strings.Contains(strings.ToLower(*idx.Name), needle) {
			out = append(out, idx)
		}
	}
	return out, nil
}

func fetchAvailable(ctx context.Context, client *provider.Client, baseURL string, creds provider.Credentials) ([]map[string]any, error) {
	vals := url.Values{}
	vals.Set("apikey", creds.Get(CredentialKey))

	var rows []map[string]any
	u := fmt.Sprintf("%s/v3/symbol/available-indexes?%s", baseURL, vals.Encode())
	if err := client.GetJSON(ctx, u, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, provider.ErrEmptyData
	}
	return rows, nil
}

func transformAvailable(raw []map[string]any) []model.AvailableIndex {
	out := make([]model.AvailableIndex, 0, len(raw))
	for _, row := range raw {
		idx := model.AvailableIndex{
			Name:              provider.RowString(row, "name"),
			Currency:          provider.RowString(row, "currency"),
			StockExchange:     provider.RowString(row, "stockExchange"),
			ExchangeShortName: provider.RowString(row, "exchangeShortName"),
		}
		if s := provider.RowString(row, "symbol"); s != nil {
			idx.Symbol = *s
		}
		out = append(out, idx)
	}
	return out
}

// HistoricalQuery is the validated query for historical index prices.
type HistoricalQuery struct {
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
}

// HistoricalFetcher returns historical price bars for one index symbol.
type HistoricalFetcher struct {
	client  *provider.Client
	baseURL string
}

// NewHistoricalFetcher creates the fetcher. baseURL "" uses production.
func NewHistoricalFetcher(client *provider.Client, baseURL string) *HistoricalFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HistoricalFetcher{client: client, baseURL: baseURL}
}

// TransformQuery reads the required symbol and the optional date window.
func (f *HistoricalFetcher) TransformQuery(params provider.Params) (HistoricalQuery, error) {
	var q HistoricalQuery
	var err error

	if q.Symbol, err = params.RequireString("symbol"); err != nil {
		return q, err
	}
	if q.StartDate, _, err = params.Date("start_date"); err != nil {
		return q, err
	}
	if q.EndDate, _, err = params.Date("end_date"); err != nil {
		return q, err
	}
	return q, nil
}

// historicalEnvelope is the top-level shape of the historical response.
type historicalEnvelope struct {
	Symbol     string           `json:"symbol"`
	Historical []map[string]any `json:"historical"`
}

// ExtractData calls the historical-price-full endpoint for the index.
func (f *HistoricalFetcher) ExtractData(ctx context.Context, query HistoricalQuery, creds provider.Credentials) ([]map[string]any, error) {
	vals := url.Values{}
	vals.Set("apikey", creds.Get(CredentialKey))
	if !query.StartDate.IsZero() {
		vals.Set("from", query.StartDate.Format("2006-01-02"))
	}
	if !query.EndDate.IsZero() {
		vals.Set("to", query.EndDate.Format("2006-01-02"))
	}

	var envelope historicalEnvelope
	u := fmt.Sprintf("%s/v3/historical-price-full/index/%s?%s",
		f.baseURL, url.PathEscape(query.Symbol), vals.Encode())
	if err := f.client.GetJSON(ctx, u, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Historical) == 0 {
		return nil, provider.ErrEmptyData
	}
	return envelope.Historical, nil
}

// TransformData maps each bar into the normalized record, oldest first.
func (f *HistoricalFetcher) TransformData(query HistoricalQuery, raw []map[string]any) ([]model.IndexBar, error) {
	out := make([]model.IndexBar, 0, len(raw))
	// FMP returns newest first; reverse to chronological order.
	for i := len(raw) - 1; i >= 0; i-- {
		row := raw[i]
		bar := model.IndexBar{
			Open:   provider.RowFloat(row, "open"),
			High:   provider.RowFloat(row, "high"),
			Low:    provider.RowFloat(row, "low"),
			Close:  provider.RowFloat(row, "close"),
			Volume: provider.RowFloat(row, "volume"),
			Change: provider.RowFloat(row, "change"),
		}
		if d := provider.RowString(row, "date"); d != nil {
			parsed, err := model.ParseDate(*d)
			if err != nil {
				return nil, provider.NewValidationError("date", "unparseable date %q", *d)
			}
			bar.Date = parsed
		}
		out = append(out, bar)
	}
	return out, nil
}
