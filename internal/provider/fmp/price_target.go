// Package fmp adapts Financial Modeling Prep endpoints to the normalized
// models.
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

const (
	// DefaultBaseURL is the production FMP API root.
	DefaultBaseURL = "https://financialmodelingprep.com/api"

	// CredentialKey names the API key in the credential store.
	CredentialKey = "fmp_api_key"

	// publishedDateLayout is FMP's price-target timestamp format.
	publishedDateLayout = "2006-01-02T15:04:05.000Z"
)

// PriceTargetQuery is the validated query for FMP price targets.
// WithGrade switches the endpoint to upgrades-downgrades.
type PriceTargetQuery struct {
	Symbols   []string
	WithGrade bool
}

// PriceTargetFetcher is the (query, extract, transform) triple for FMP
// price targets.
type PriceTargetFetcher struct {
	client  *provider.Client
	baseURL string
}

// NewPriceTargetFetcher creates the fetcher. baseURL "" uses production.
func NewPriceTargetFetcher(client *provider.Client, baseURL string) *PriceTargetFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PriceTargetFetcher{client: client, baseURL: baseURL}
}

// TransformQuery builds and validates the query object. symbol is
// required; multiple symbols are accepted.
func (f *PriceTargetFetcher) TransformQuery(params provider.Params) (PriceTargetQuery, error) {
	var q PriceTargetQuery
	var err error

	if q.Symbols, err = params.List("symbol"); err != nil {
		return q, err
	}
	if len(q.Symbols) == 0 {
		return q, provider.NewValidationError("symbol", "required")
	}
	if q.WithGrade, err = params.Bool("with_grade"); err != nil {
		return q, err
	}
	return q, nil
}

// ExtractData fans out one request per symbol (FMP has no batch form) and
// concatenates the raw rows in input symbol order.
func (f *PriceTargetFetcher) ExtractData(ctx context.Context, query PriceTargetQuery, creds provider.Credentials) ([]map[string]any, error) {
	endpoint := "price-target"
	if query.WithGrade {
		endpoint = "upgrades-downgrades"
	}

	urls := make([]string, 0, len(query.Symbols))
	for _, symbol := range query.Symbols {
		vals := url.Values{}
		vals.Set("symbol", symbol)
		vals.Set("apikey", creds.Get(CredentialKey))
		urls = append(urls, fmt.Sprintf("%s/v4/%s?%s", f.baseURL, endpoint, vals.Encode()))
	}

	rows, err := f.client.GetAllRows(ctx, urls)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, provider.ErrEmptyData
	}
	return rows, nil
}

// TransformData maps each raw row into the normalized record. The two
// endpoints name the analyst firm differently (analystCompany vs
// gradingCompany); both land on the canonical field.
func (f *PriceTargetFetcher) TransformData(query PriceTargetQuery, raw []map[string]any) ([]model.PriceTarget, error) {
	out := make([]model.PriceTarget, 0, len(raw))
	for _, row := range raw {
		pt := model.PriceTarget{
			AnalystName:     provider.RowString(row, "analystName"),
			AnalystFirm:     provider.RowString(row, "analystCompany"),
			PriceTarget:     provider.RowFloat(row, "priceTarget"),
			AdjPriceTarget:  provider.RowFloat(row, "adjPriceTarget"),
			PriceWhenPosted: provider.RowFloat(row, "priceWhenPosted"),
			RatingCurrent:   provider.RowString(row, "newGrade"),
			RatingPrevious:  provider.RowString(row, "previousGrade"),
			NewsTitle:       provider.RowString(row, "newsTitle"),
			NewsPublisher:   provider.RowString(row, "newsPublisher"),
			NewsURL:         provider.RowString(row, "newsURL"),
			NewsBaseURL:     provider.RowString(row, "newsBaseURL"),
		}
		if pt.AnalystFirm == nil {
			pt.AnalystFirm = provider.RowString(row, "gradingCompany")
		}
		if s := provider.RowString(row, "symbol"); s != nil {
			pt.Symbol = *s
		}
		if d := provider.RowString(row, "publishedDate"); d != nil {
			parsed, err := parsePublishedDate(*d)
			if err != nil {
				return nil, err
			}
			pt.PublishedDate = parsed
		}
		out = append(out, pt)
	}
	return out, nil
}

// parsePublishedDate parses FMP's timestamp after stripping the stray
// newlines the feed occasionally embeds.
func parsePublishedDate(s string) (model.Timestamp, error) {
	s = strings.ReplaceAll(s, "\n", "")
	t, err := time.Parse(publishedDateLayout, s)
	if err != nil {
		return model.Timestamp{}, provider.NewValidationError("published_date", "unparseable timestamp %q", s)
	}
	return model.NewTime(t), nil
}
