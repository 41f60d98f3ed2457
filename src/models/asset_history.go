package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetHistory is a daily snapshot of one asset's valuation. One row per
// asset per date, upserted by the snapshot task.
type AssetHistory struct {
	ID         int64           `db:"id"`
	AssetID    int64           `db:"asset_id"`
	Date       time.Time       `db:"date"`
	Price      decimal.Decimal `db:"price"`
	Value      decimal.Decimal `db:"value"`
	Percentage decimal.Decimal `db:"percentage"`
	CreatedAt  time.Time       `db:"created_at"`
}
