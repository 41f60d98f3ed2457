package schemas

import "github.com/shopspring/decimal"

// AssetUpdateRequest carries a partial asset update. Nil fields are left
// untouched. The valuation write-back uses only Price and CurrentValue.
type AssetUpdateRequest struct {
	Name         *string          `json:"name"`
	AssetType    *string          `json:"type"`
	CryptoType   *string          `json:"cryptoType"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Price        *decimal.Decimal `json:"price"`
	CurrentValue *decimal.Decimal `json:"current_value"`
	CostPrice    *decimal.Decimal `json:"costPrice"`
}

type AssetCreateRequest struct {
	UserID     int64           `json:"userId"`
	Name       string          `json:"name"`
	AssetType  string          `json:"type"`
	CryptoType string          `json:"cryptoType"`
	Quantity   decimal.Decimal `json:"quantity"`
	CostPrice  decimal.Decimal `json:"costPrice"`
}

// HistoryPoint is one asset's share on one day, used by the line chart.
type HistoryPoint struct {
	Date       string          `json:"date"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Value      decimal.Decimal `json:"value"`
}
