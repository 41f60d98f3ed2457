package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cryptodash/src/schemas"
	"cryptodash/src/services"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValuationWriter struct {
	mu      sync.Mutex
	writes  map[int64]decimal.Decimal
	failIDs map[int64]bool
}

func newFakeValuationWriter() *fakeValuationWriter {
	return &fakeValuationWriter{
		writes:  map[int64]decimal.Decimal{},
		failIDs: map[int64]bool{},
	}
}

func (f *fakeValuationWriter) UpdateValuation(_ context.Context, id int64, _, currentValue, _ decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return errors.New("write failed")
	}
	f.writes[id] = currentValue
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func loadedResult(rows ...schemas.ValuationRow) schemas.ValuationResult {
	return schemas.ValuationResult{Rows: rows, Source: schemas.SourceLoaded}
}

func TestSyncBatchWritesEveryRow(t *testing.T) {
	writer := newFakeValuationWriter()
	service := services.NewSyncService(writer, testLogger())

	result := loadedResult(
		schemas.ValuationRow{AssetID: 1, CurrentValue: decimal.NewFromInt(100)},
		schemas.ValuationRow{AssetID: 2, CurrentValue: decimal.NewFromInt(200)},
	)

	succeeded, failed := service.SyncBatch(context.Background(), result)

	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 0, failed)
	require.Len(t, writer.writes, 2)
	assert.True(t, writer.writes[1].Equal(decimal.NewFromInt(100)))
	assert.True(t, writer.writes[2].Equal(decimal.NewFromInt(200)))
}

func TestSyncBatchFailureDoesNotBlockOthers(t *testing.T) {
	writer := newFakeValuationWriter()
	writer.failIDs[2] = true
	service := services.NewSyncService(writer, testLogger())

	result := loadedResult(
		schemas.ValuationRow{AssetID: 1, CurrentValue: decimal.NewFromInt(100)},
		schemas.ValuationRow{AssetID: 2, CurrentValue: decimal.NewFromInt(200)},
		schemas.ValuationRow{AssetID: 3, CurrentValue: decimal.NewFromInt(300)},
	)

	succeeded, failed := service.SyncBatch(context.Background(), result)

	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, failed)
	assert.Contains(t, writer.writes, int64(1))
	assert.Contains(t, writer.writes, int64(3))
	assert.NotContains(t, writer.writes, int64(2))
}

func TestSyncBatchIsIdempotent(t *testing.T) {
	writer := newFakeValuationWriter()
	service := services.NewSyncService(writer, testLogger())

	result := loadedResult(schemas.ValuationRow{AssetID: 1, CurrentValue: decimal.NewFromInt(100)})

	service.SyncBatch(context.Background(), result)
	service.SyncBatch(context.Background(), result)

	require.Len(t, writer.writes, 1)
	assert.True(t, writer.writes[1].Equal(decimal.NewFromInt(100)))
}

func TestSyncBatchSkipsFallbackResults(t *testing.T) {
	writer := newFakeValuationWriter()
	service := services.NewSyncService(writer, testLogger())

	result := schemas.ValuationResult{
		Rows:   []schemas.ValuationRow{{AssetID: 1, CurrentValue: decimal.NewFromInt(100)}},
		Source: schemas.SourceFallback,
	}

	succeeded, failed := service.SyncBatch(context.Background(), result)

	assert.Equal(t, 0, succeeded)
	assert.Equal(t, 0, failed)
	assert.Empty(t, writer.writes)
}

func TestSyncBatchSkipsRowsWithoutAssetID(t *testing.T) {
	writer := newFakeValuationWriter()
	service := services.NewSyncService(writer, testLogger())

	result := loadedResult(
		schemas.ValuationRow{AssetID: 0, CurrentValue: decimal.NewFromInt(100)},
		schemas.ValuationRow{AssetID: 5, CurrentValue: decimal.NewFromInt(500)},
	)

	succeeded, _ := service.SyncBatch(context.Background(), result)

	assert.Equal(t, 1, succeeded)
	assert.NotContains(t, writer.writes, int64(0))
	assert.Contains(t, writer.writes, int64(5))
}
