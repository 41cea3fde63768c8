package model

// PriceTarget is the normalized analyst price-target record shared by all
// providers. Optional fields are pointers so that a missing or empty wire
// value surfaces as null rather than a zero value.
type PriceTarget struct {
	Symbol        string    `json:"symbol"`
	PublishedDate Timestamp `json:"published_date"`

	PublishedTime *string `json:"published_time,omitempty"`
	CompanyName   *string `json:"company_name,omitempty"`
	AnalystName   *string `json:"analyst_name,omitempty"`
	AnalystFirm   *string `json:"analyst_firm,omitempty"`
	Currency      *string `json:"currency,omitempty"`

	PriceTarget            *float64 `json:"price_target,omitempty"`
	PriceTargetPrevious    *float64 `json:"price_target_previous,omitempty"`
	AdjPriceTarget         *float64 `json:"adj_price_target,omitempty"`
	PreviousAdjPriceTarget *float64 `json:"previous_adj_price_target,omitempty"`
	PriceWhenPosted        *float64 `json:"price_when_posted,omitempty"`

	RatingCurrent  *string `json:"rating_current,omitempty"`
	RatingPrevious *string `json:"rating_previous,omitempty"`

	// Action is the change in rating relative to the firm's last rating,
	// in the provider's defined vocabulary (e.g. "Initiates Coverage On").
	Action *string `json:"action,omitempty"`
	// ActionChange is the change in price target relative to the firm's
	// last price target (e.g. "Raises", "Lowers").
	ActionChange *string `json:"action_change,omitempty"`

	Importance *int    `json:"importance,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	AnalystID  *string `json:"analyst_id,omitempty"`

	NewsTitle     *string `json:"news_title,omitempty"`
	NewsPublisher *string `json:"news_publisher,omitempty"`
	NewsURL       *string `json:"news_url,omitempty"`
	NewsBaseURL   *string `json:"news_base_url,omitempty"`
	URLNews       *string `json:"url_news,omitempty"`
	URLAnalyst    *string `json:"url_analyst,omitempty"`

	ID          *string    `json:"id,omitempty"`
	LastUpdated *Timestamp `json:"last_updated,omitempty"`
}
