// Package router declares the named operations of the REST surface and
// serves them over HTTP. Each operation binds a path to a model id; the
// query executor does the rest.
package router

// Operation binds a route to a model identifier.
type Operation struct {
	// Name is the logical operation id used in audit records and the CLI.
	Name string
	// Path is the HTTP route, relative to the API root.
	Path string
	// Model is the model identifier resolved through the fetcher registry.
	Model string
	// Description is shown in listings.
	Description string

	Deprecated      bool
	DeprecationNote string
}

// Model identifiers. Providers register fetchers under these names.
const (
	ModelPriceTarget       = "PriceTarget"
	ModelIndexConstituents = "IndexConstituents"
	ModelAvailableIndices  = "AvailableIndices"
	ModelIndexSearch       = "IndexSearch"
	ModelMarketIndices     = "MarketIndices"
)

// Operations is the full operation table, in display order.
var Operations = []Operation{
	{
		Name:        "equity.estimates.price_target",
		Path:        "/equity/estimates/price-target",
		Model:       ModelPriceTarget,
		Description: "Analyst price targets and rating changes.",
	},
	{
		Name:        "index.constituents",
		Path:        "/index/constituents",
		Model:       ModelIndexConstituents,
		Description: "Current members of a market index.",
	},
	{
		Name:        "index.available",
		Path:        "/index/available",
		Model:       ModelAvailableIndices,
		Description: "All indices available from a provider.",
	},
	{
		Name:        "index.search",
		Path:        "/index/search",
		Model:       ModelIndexSearch,
		Description: "Filters indices for rows containing the query.",
	},
	{
		Name:            "index.market",
		Path:            "/index/market",
		Model:           ModelMarketIndices,
		Description:     "Historical market index levels.",
		Deprecated:      true,
		DeprecationNote: "this endpoint is deprecated; use /index/price/historical instead",
	},
	{
		Name:        "index.price.historical",
		Path:        "/index/price/historical",
		Model:       ModelMarketIndices,
		Description: "Historical market index levels.",
	},
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, bool) {
	for _, op := range Operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}
