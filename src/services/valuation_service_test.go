package services_test

import (
	"testing"

	"cryptodash/src/models"
	"cryptodash/src/pricefeed"
	"cryptodash/src/schemas"
	"cryptodash/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holding(id int64, symbol string, quantity, costPrice string) models.Asset {
	return models.Asset{
		ID:         id,
		Name:       symbol,
		AssetType:  "crypto",
		CryptoType: symbol,
		Quantity:   decimal.RequireFromString(quantity),
		CostPrice:  decimal.RequireFromString(costPrice),
	}
}

func TestRevalueUsesSnapshotPrice(t *testing.T) {
	service := services.NewValuationService(false)
	snapshot := pricefeed.Snapshot{"BTC": decimal.RequireFromString("65000")}

	result := service.Revalue([]models.Asset{holding(1, "BTC", "1", "60000")}, snapshot)

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Equal(t, schemas.SourceLoaded, result.Source)
	assert.True(t, row.LivePrice)
	assert.True(t, row.EffectivePrice.Equal(decimal.RequireFromString("65000")))
	assert.True(t, row.CurrentValue.Equal(decimal.RequireFromString("65000")))
	// (65000 - 60000) / 60000 * 100 = 8.33
	assert.Equal(t, "8.33", row.ProfitRate.StringFixed(2))
	assert.True(t, result.TotalValue.Equal(decimal.RequireFromString("65000")))
}

func TestRevalueFallsBackToCostPrice(t *testing.T) {
	service := services.NewValuationService(false)

	result := service.Revalue([]models.Asset{holding(1, "BTC", "2", "60000")}, pricefeed.Snapshot{})

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.False(t, row.LivePrice)
	assert.True(t, row.EffectivePrice.Equal(decimal.RequireFromString("60000")))
	assert.True(t, row.CurrentValue.Equal(decimal.RequireFromString("120000")))
	assert.True(t, row.ProfitRate.IsZero())
}

func TestRevalueAllocationSumsToHundred(t *testing.T) {
	service := services.NewValuationService(false)
	snapshot := pricefeed.Snapshot{
		"BTC": decimal.RequireFromString("65000"),
		"ETH": decimal.RequireFromString("3500"),
	}
	holdings := []models.Asset{
		holding(1, "BTC", "1", "60000"),
		holding(2, "ETH", "10", "3000"),
	}

	result := service.Revalue(holdings, snapshot)

	require.Len(t, result.Rows, 2)
	sum := decimal.Zero
	for _, row := range result.Rows {
		sum = sum.Add(row.Allocation)
		assert.Equal(t, row.Allocation.StringFixed(2)+"%", row.RateText)
	}
	// Rounding keeps the shares within a cent of 100.
	diff := sum.Sub(decimal.NewFromInt(100)).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.02")), "allocations sum to %s", sum)
}

func TestRevalueAmountIsTenThousandDenominated(t *testing.T) {
	service := services.NewValuationService(false)
	snapshot := pricefeed.Snapshot{"BTC": decimal.RequireFromString("65000")}

	result := service.Revalue([]models.Asset{holding(1, "BTC", "1", "60000")}, snapshot)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "6.50", result.Rows[0].Amount.StringFixed(2))
}

func TestRevalueEmptyPortfolioWithoutFallback(t *testing.T) {
	service := services.NewValuationService(false)

	result := service.Revalue(nil, pricefeed.Snapshot{})

	assert.Equal(t, schemas.SourceEmpty, result.Source)
	assert.Empty(t, result.Rows)
	assert.True(t, result.TotalValue.IsZero())
}

func TestRevalueEmptyPortfolioWithDemoFallback(t *testing.T) {
	service := services.NewValuationService(true)

	result := service.Revalue(nil, pricefeed.Snapshot{})

	assert.Equal(t, schemas.SourceFallback, result.Source)
	require.Len(t, result.Rows, 4)
	for _, row := range result.Rows {
		// Demo rows carry no asset id so they can never be written back.
		assert.Zero(t, row.AssetID)
	}
	assert.True(t, result.TotalValue.GreaterThan(decimal.Zero))
}

func TestRevalueZeroTotalUsesLegacyWeights(t *testing.T) {
	service := services.NewValuationService(false)
	holdings := []models.Asset{
		holding(1, "BTC", "0", "0"),
		holding(2, "XRP", "0", "0"),
	}

	result := service.Revalue(holdings, pricefeed.Snapshot{})

	require.Len(t, result.Rows, 2)
	assert.True(t, result.Rows[0].Allocation.Equal(decimal.NewFromInt(40)))
	assert.True(t, result.Rows[1].Allocation.IsZero())
}

func TestRevalueTotalIsSumOfRowValues(t *testing.T) {
	service := services.NewValuationService(false)
	snapshot := pricefeed.Snapshot{
		"BTC": decimal.RequireFromString("65000"),
	}
	holdings := []models.Asset{
		holding(1, "BTC", "0.5", "60000"),
		holding(2, "DOGE", "1000", "0.5"),
	}

	result := service.Revalue(holdings, snapshot)

	sum := decimal.Zero
	for _, row := range result.Rows {
		sum = sum.Add(row.CurrentValue)
	}
	assert.True(t, result.TotalValue.Equal(sum))
}
