package marketdata

import "github.com/shopspring/decimal"

// Quote is one instrument row from the provider's ranking endpoint.
type Quote struct {
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	PriceCurrency string          `json:"price_currency"`
	MarketCap     decimal.Decimal `json:"market_cap"`
	Change24h     decimal.Decimal `json:"change_24h"`
	Volume24h     decimal.Decimal `json:"volume_24h"`
}

type GetRankingResponse struct {
	Status  int     `json:"status"`
	Results []Quote `json:"results"`
}
