package model

// IndexConstituent is one member of a market index.
type IndexConstituent struct {
	Symbol         string     `json:"symbol"`
	Name           *string    `json:"name,omitempty"`
	Sector         *string    `json:"sector,omitempty"`
	SubSector      *string    `json:"sub_sector,omitempty"`
	Headquarter    *string    `json:"headquarter,omitempty"`
	DateFirstAdded *Timestamp `json:"date_first_added,omitempty"`
	CIK            *string    `json:"cik,omitempty"`
	Founded        *string    `json:"founded,omitempty"`
}

// AvailableIndex describes one index offered by a provider. Search results
// share the same shape.
type AvailableIndex struct {
	Symbol            string  `json:"symbol"`
	Name              *string `json:"name,omitempty"`
	Currency          *string `json:"currency,omitempty"`
	StockExchange     *string `json:"stock_exchange,omitempty"`
	ExchangeShortName *string `json:"exchange_short_name,omitempty"`
}

// IndexBar is one historical price bar for a market index.
type IndexBar struct {
	Date   Timestamp `json:"date"`
	Open   *float64  `json:"open,omitempty"`
	High   *float64  `json:"high,omitempty"`
	Low    *float64  `json:"low,omitempty"`
	Close  *float64  `json:"close,omitempty"`
	Volume *float64  `json:"volume,omitempty"`
	Change *float64  `json:"change,omitempty"`
}
