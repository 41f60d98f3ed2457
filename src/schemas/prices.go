package schemas

import "github.com/shopspring/decimal"

// PriceRanking is one row of the crypto price ranking list.
type PriceRanking struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change24h"`
	Volume24h decimal.Decimal `json:"volume24h"`
	MarketCap decimal.Decimal `json:"marketCap"`
}
