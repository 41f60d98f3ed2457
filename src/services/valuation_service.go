package services

import (
	"cryptodash/src/models"
	"cryptodash/src/pricefeed"
	"cryptodash/src/schemas"

	"github.com/shopspring/decimal"
)

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
)

// legacyWeights is the fixed per-symbol allocation table the dashboard used
// before allocation was computed from market value. It is only consulted
// when the portfolio total is zero, where a computed share is undefined.
var legacyWeights = map[string]decimal.Decimal{
	"BTC":  decimal.NewFromInt(40),
	"ETH":  decimal.NewFromInt(30),
	"SOL":  decimal.NewFromInt(20),
	"USDT": decimal.NewFromInt(10),
}

// demoHoldings is the fixed four-asset set substituted when a user holds
// nothing, so the portfolio view never renders blank. Results built from it
// are tagged SourceFallback.
var demoHoldings = []models.Asset{
	{Name: "Bitcoin", AssetType: "crypto", CryptoType: "BTC",
		Quantity: decimal.RequireFromString("6.6"), CostPrice: decimal.RequireFromString("580000")},
	{Name: "Ethereum", AssetType: "crypto", CryptoType: "ETH",
		Quantity: decimal.RequireFromString("144"), CostPrice: decimal.RequireFromString("19500")},
	{Name: "Solana", AssetType: "crypto", CryptoType: "SOL",
		Quantity: decimal.RequireFromString("2234"), CostPrice: decimal.RequireFromString("870")},
	{Name: "Tether", AssetType: "crypto", CryptoType: "USDT",
		Quantity: decimal.RequireFromString("142045"), CostPrice: decimal.RequireFromString("7.04")},
}

// ValuationService derives per-asset current value and allocation from a
// holding list and a price snapshot. It performs no I/O.
type ValuationService struct {
	// DemoFallback substitutes the demo holding set for an empty portfolio.
	DemoFallback bool
}

func NewValuationService(demoFallback bool) *ValuationService {
	return &ValuationService{DemoFallback: demoFallback}
}

// Revalue recomputes every holding against the snapshot. A symbol missing
// from the snapshot falls back to its cost basis so the row never shows a
// zero price.
func (s *ValuationService) Revalue(holdings []models.Asset, snapshot pricefeed.Snapshot) schemas.ValuationResult {
	source := schemas.SourceLoaded
	if len(holdings) == 0 {
		if !s.DemoFallback {
			return schemas.ValuationResult{Source: schemas.SourceEmpty, TotalValue: decimal.Zero}
		}
		holdings = demoHoldings
		source = schemas.SourceFallback
	}

	rows := make([]schemas.ValuationRow, 0, len(holdings))
	total := decimal.Zero

	for _, h := range holdings {
		price, live := snapshot[h.CryptoType]
		if !live {
			price = h.CostPrice
		}
		value := h.Quantity.Mul(price)
		total = total.Add(value)

		rows = append(rows, schemas.ValuationRow{
			AssetID:        h.ID,
			Name:           h.Name,
			Symbol:         h.CryptoType,
			Quantity:       h.Quantity,
			EffectivePrice: price,
			CurrentValue:   value,
			ProfitRate:     profitRate(h.Quantity, h.CostPrice, value),
			LivePrice:      live,
		})
	}

	for i := range rows {
		rows[i].Allocation = allocation(rows[i], total)
		rows[i].Amount = rows[i].CurrentValue.DivRound(tenThousand, 2)
		rows[i].RateText = rows[i].Allocation.StringFixed(2) + "%"
	}

	return schemas.ValuationResult{Rows: rows, TotalValue: total, Source: source}
}

func allocation(row schemas.ValuationRow, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		if w, ok := legacyWeights[row.Symbol]; ok {
			return w
		}
		return decimal.Zero
	}
	return row.CurrentValue.Div(total).Mul(hundred).Round(2)
}

// profitRate is (value - cost) / cost in percent, where cost is the cost
// basis times the held quantity. Zero cost yields a zero rate.
func profitRate(quantity, costPrice, currentValue decimal.Decimal) decimal.Decimal {
	cost := costPrice.Mul(quantity)
	if cost.IsZero() {
		return decimal.Zero
	}
	return currentValue.Sub(cost).Div(cost).Mul(hundred).Round(2)
}
