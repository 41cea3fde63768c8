// Package benzinga adapts the Benzinga calendar/ratings API to the
// normalized price-target model.
package benzinga

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/sells-group/marketdata-cli/internal/model"
	"github.com/sells-group/marketdata-cli/internal/provider"
)

const (
	// DefaultBaseURL is the production Benzinga API root.
	DefaultBaseURL = "https://api.benzinga.com/api/v2.1"

	// CredentialKey names the API token in the credential store.
	CredentialKey = "benzinga_api_key"
)

// actionWire maps public action codes to Benzinga's exact wire strings.
// The ratings endpoint filters on the wire form, not the code.
var actionWire = map[string]string{
	"downgrades":     "Downgrades",
	"maintains":      "Maintains",
	"reinstates":     "Reinstates",
	"reiterates":     "Reiterates",
	"upgrades":       "Upgrades",
	"assumes":        "Assumes",
	"initiates":      "Initiates Coverage On",
	"terminates":     "Terminates Coverage On",
	"removes":        "Removes",
	"suspends":       "Suspends",
	"firm_dissolved": "Firm Dissolved",
}

// ActionCodes returns the supported public action codes.
func ActionCodes() []string {
	codes := make([]string, 0, len(actionWire))
	for c := range actionWire {
		codes = append(codes, c)
	}
	return codes
}

// ActionFromWire translates a Benzinga wire string back to its public code.
func ActionFromWire(wire string) (string, bool) {
	for code, w := range actionWire {
		if w == wire {
			return code, true
		}
	}
	return "", false
}

// queryAliases maps canonical parameter names to Benzinga wire names.
// Parameters absent here go out under their canonical name.
var queryAliases = map[string]string{
	"symbol":      "parameters[tickers]",
	"limit":       "pagesize",
	"date":        "parameters[date]",
	"start_date":  "parameters[date_from]",
	"end_date":    "parameters[date_to]",
	"updated":     "parameters[updated]",
	"importance":  "parameters[importance]",
	"action":      "parameters[action]",
	"analyst_ids": "parameters[analyst_id]",
	"firm_ids":    "parameters[firm_id]",
}

func wireName(canonical string) string {
	if w, ok := queryAliases[canonical]; ok {
		return w
	}
	return canonical
}

// PriceTargetQuery is the validated query for the calendar/ratings
// endpoint. Zero values mean "not set" and are omitted from the wire form.
type PriceTargetQuery struct {
	Symbols    []string
	Page       int
	Limit      int
	Date       time.Time
	StartDate  time.Time
	EndDate    time.Time
	Updated    int64 // epoch seconds, UTC
	Importance *int
	Action     string // wire form, already translated
	AnalystIDs []string
	FirmIDs    []string
	Fields     []string
}

// Values renders the query under Benzinga's wire parameter names.
func (q PriceTargetQuery) Values() url.Values {
	vals := url.Values{}
	if len(q.Symbols) > 0 {
		vals.Set(wireName("symbol"), provider.CommaJoin(q.Symbols))
	}
	if q.Page > 0 {
		vals.Set(wireName("page"), strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		vals.Set(wireName("limit"), strconv.Itoa(q.Limit))
	}
	if !q.Date.IsZero() {
		vals.Set(wireName("date"), q.Date.Format("2006-01-02"))
	}
	if !q.StartDate.IsZero() {
		vals.Set(wireName("start_date"), q.StartDate.Format("2006-01-02"))
	}
	if !q.EndDate.IsZero() {
		vals.Set(wireName("end_date"), q.EndDate.Format("2006-01-02"))
	}
	if q.Updated > 0 {
		vals.Set(wireName("updated"), strconv.FormatInt(q.Updated, 10))
	}
	if q.Importance != nil {
		vals.Set(wireName("importance"), strconv.Itoa(*q.Importance))
	}
	if q.Action != "" {
		vals.Set(wireName("action"), q.Action)
	}
	if len(q.AnalystIDs) > 0 {
		vals.Set(wireName("analyst_ids"), provider.CommaJoin(q.AnalystIDs))
	}
	if len(q.FirmIDs) > 0 {
		vals.Set(wireName("firm_ids"), provider.CommaJoin(q.FirmIDs))
	}
	if len(q.Fields) > 0 {
		vals.Set(wireName("fields"), provider.CommaJoin(q.Fields))
	}
	return vals
}

// PriceTargetFetcher is the (query, extract, transform) triple for
// Benzinga analyst ratings.
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

// TransformQuery builds and validates the query object.
func (f *PriceTargetFetcher) TransformQuery(params provider.Params) (PriceTargetQuery, error) {
	var q PriceTargetQuery
	var err error

	if q.Symbols, err = params.List("symbol"); err != nil {
		return q, err
	}
	if q.AnalystIDs, err = params.List("analyst_ids"); err != nil {
		return q, err
	}
	if q.FirmIDs, err = params.List("firm_ids"); err != nil {
		return q, err
	}
	if q.Fields, err = params.List("fields"); err != nil {
		return q, err
	}

	if q.Page, _, err = params.Int("page"); err != nil {
		return q, err
	}
	if q.Limit, _, err = params.Int("limit"); err != nil {
		return q, err
	}
	if imp, ok, err := params.Int("importance"); err != nil {
		return q, err
	} else if ok {
		if imp < 0 || imp > 5 {
			return q, provider.NewValidationError("importance", "must be between 0 and 5, got %d", imp)
		}
		q.Importance = &imp
	}

	if q.Date, _, err = params.Date("date"); err != nil {
		return q, err
	}
	if q.StartDate, _, err = params.Date("start_date"); err != nil {
		return q, err
	}
	if q.EndDate, _, err = params.Date("end_date"); err != nil {
		return q, err
	}
	if updated, ok, err := params.Epoch("updated"); err != nil {
		return q, err
	} else if ok {
		q.Updated = updated
	}

	if action, err := params.String("action"); err != nil {
		return q, err
	} else if action != "" {
		wire, ok := actionWire[action]
		if !ok {
			return q, provider.NewValidationError("action", "unknown action code %q", action)
		}
		q.Action = wire
	}

	return q, nil
}

// ratingsEnvelope is the top-level shape of the ratings response.
type ratingsEnvelope struct {
	Ratings []map[string]any `json:"ratings"`
}

// ExtractData calls the ratings endpoint once and returns the raw rows.
func (f *PriceTargetFetcher) ExtractData(ctx context.Context, query PriceTargetQuery, creds provider.Credentials) ([]map[string]any, error) {
	vals := query.Values()
	vals.Set("token", creds.Get(CredentialKey))

	var envelope ratingsEnvelope
	if err := f.client.GetJSON(ctx, f.baseURL+"/calendar/ratings?"+vals.Encode(), &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Ratings) == 0 {
		return nil, provider.ErrEmptyData
	}
	return envelope.Ratings, nil
}

// dataAliases maps canonical record fields to Benzinga response keys.
var dataAliases = map[string]string{
	"symbol":                    "ticker",
	"published_date":            "date",
	"published_time":            "time",
	"company_name":              "name",
	"analyst_firm":              "analyst",
	"adj_price_target":          "adjusted_pt_current",
	"price_target":              "pt_current",
	"price_target_previous":     "pt_prior",
	"previous_adj_price_target": "adjusted_pt_prior",
	"rating_previous":           "rating_prior",
	"url_analyst":               "url",
	"action":                    "action_company",
	"action_change":             "action_pt",
	"last_updated":              "updated",
}

// TransformData maps each raw rating into the normalized record.
// url_calendar duplicates url and is dropped.
func (f *PriceTargetFetcher) TransformData(query PriceTargetQuery, raw []map[string]any) ([]model.PriceTarget, error) {
	out := make([]model.PriceTarget, 0, len(raw))
	for _, row := range raw {
		delete(row, "url_calendar")

		pt := model.PriceTarget{
			PublishedTime:          provider.RowString(row, dataAliases["published_time"]),
			CompanyName:            provider.RowString(row, dataAliases["company_name"]),
			AnalystName:            provider.RowString(row, "analyst_name"),
			AnalystFirm:            provider.RowString(row, dataAliases["analyst_firm"]),
			Currency:               provider.RowString(row, "currency"),
			PriceTarget:            provider.RowFloat(row, dataAliases["price_target"]),
			PriceTargetPrevious:    provider.RowFloat(row, dataAliases["price_target_previous"]),
			AdjPriceTarget:         provider.RowFloat(row, dataAliases["adj_price_target"]),
			PreviousAdjPriceTarget: provider.RowFloat(row, dataAliases["previous_adj_price_target"]),
			RatingCurrent:          provider.RowString(row, "rating_current"),
			RatingPrevious:         provider.RowString(row, dataAliases["rating_previous"]),
			Action:                 provider.RowString(row, dataAliases["action"]),
			ActionChange:           provider.RowString(row, dataAliases["action_change"]),
			Importance:             provider.RowInt(row, "importance"),
			Notes:                  provider.RowString(row, "notes"),
			AnalystID:              provider.RowString(row, "analyst_id"),
			URLNews:                provider.RowString(row, "url_news"),
			URLAnalyst:             provider.RowString(row, dataAliases["url_analyst"]),
			ID:                     provider.RowString(row, "id"),
		}

		if s := provider.RowString(row, dataAliases["symbol"]); s != nil {
			pt.Symbol = *s
		}
		if d := provider.RowString(row, dataAliases["published_date"]); d != nil {
			parsed, err := model.ParseDate(*d)
			if err != nil {
				return nil, provider.NewValidationError("published_date", "unparseable date %q", *d)
			}
			pt.PublishedDate = parsed
		}
		if sec, ok := provider.RowEpoch(row, dataAliases["last_updated"]); ok {
			ts := model.FromUnix(sec)
			pt.LastUpdated = &ts
		}

		out = append(out, pt)
	}
	return out, nil
}
