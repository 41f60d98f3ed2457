package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is one user's holding of a single instrument: quantity plus cost
// basis, with the latest price and derived current value written back by the
// valuation pipeline.
type Asset struct {
	ID           int64           `db:"id"`
	UserID       int64           `db:"user_id"`
	Name         string          `db:"name"`
	AssetType    string          `db:"asset_type"`
	CryptoType   string          `db:"crypto_type"`
	Quantity     decimal.Decimal `db:"quantity"`
	Price        decimal.Decimal `db:"price"`
	CurrentValue decimal.Decimal `db:"current_value"`
	CostPrice    decimal.Decimal `db:"cost_price"`
	ProfitRate   decimal.Decimal `db:"profit_rate"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
