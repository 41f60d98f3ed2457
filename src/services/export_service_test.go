package services_test

import (
	"testing"
	"time"

	"cryptodash/src/schemas"
	"cryptodash/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorkbook(t *testing.T) {
	service := services.NewExportService()

	result := schemas.ValuationResult{
		Rows: []schemas.ValuationRow{
			{
				Symbol:       "BTC",
				Name:         "Bitcoin",
				CurrentValue: decimal.RequireFromString("465000"),
				Amount:       decimal.RequireFromString("46.50"),
				Allocation:   decimal.RequireFromString("100"),
				RateText:     "100.00%",
				ProfitRate:   decimal.RequireFromString("8.33"),
			},
		},
		TotalValue: decimal.RequireFromString("465000"),
		Source:     schemas.SourceLoaded,
	}
	history := []schemas.HistoryPoint{
		{Date: "08/31", Name: "Bitcoin", Percentage: decimal.RequireFromString("100"), Value: decimal.RequireFromString("460000")},
	}

	file, err := service.BuildWorkbook(result, history, 7)
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Current Holdings")
	assert.Contains(t, sheets, "History (7d)")
	assert.NotContains(t, sheets, "Sheet1")

	symbol, err := file.GetCellValue("Current Holdings", "A2")
	require.NoError(t, err)
	assert.Equal(t, "BTC", symbol)

	date, err := file.GetCellValue("History (7d)", "A2")
	require.NoError(t, err)
	assert.Equal(t, "08/31", date)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "crypto_holdings_2026-09-01.xlsx", services.ExportFilename(now))
}
