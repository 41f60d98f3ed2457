package schemas

import "github.com/shopspring/decimal"

// ValuationSource tags where a valuation result came from, so demo data is
// never mistaken for live holdings.
type ValuationSource string

const (
	// SourceLoaded means the rows were derived from real holdings.
	SourceLoaded ValuationSource = "loaded"
	// SourceEmpty means the user holds nothing and demo substitution is off.
	SourceEmpty ValuationSource = "empty"
	// SourceFallback means the fixed demo holding set was substituted.
	SourceFallback ValuationSource = "fallback"
)

// ValuationRow is the derived view of one holding at the latest prices.
// Rows are rebuilt on every recomputation, never mutated in place.
type ValuationRow struct {
	AssetID        int64           `json:"id"`
	Name           string          `json:"name"`
	Symbol         string          `json:"symbol"`
	Quantity       decimal.Decimal `json:"quantity"`
	EffectivePrice decimal.Decimal `json:"price"`
	CurrentValue   decimal.Decimal `json:"currentValue"`
	ProfitRate     decimal.Decimal `json:"profitRate"`
	// Allocation is this row's share of the total, in percent.
	Allocation decimal.Decimal `json:"value"`
	// Amount is the current value in the ten-thousand display unit.
	Amount   decimal.Decimal `json:"amount"`
	RateText string          `json:"rateText"`
	// LivePrice is false when the snapshot had no quote for the symbol and
	// the cost basis was used instead.
	LivePrice bool `json:"livePrice"`
}

type ValuationResult struct {
	Rows       []ValuationRow  `json:"rows"`
	TotalValue decimal.Decimal `json:"totalValue"`
	Source     ValuationSource `json:"source"`
}
