package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cryptocurrency struct {
	ID            int64           `db:"id"`
	Symbol        string          `db:"symbol"`
	Name          string          `db:"name"`
	Price         decimal.Decimal `db:"price"`
	PriceCurrency string          `db:"price_currency"`
	MarketCap     decimal.Decimal `db:"market_cap"`
	Change24h     decimal.Decimal `db:"change_24h"`
	Volume24h     decimal.Decimal `db:"volume_24h"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
