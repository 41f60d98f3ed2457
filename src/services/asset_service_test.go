package services_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"cryptodash/src/models"
	"cryptodash/src/schemas"
	"cryptodash/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssetRepo struct {
	byID   map[int64]*models.Asset
	nextID int64
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{byID: map[int64]*models.Asset{}, nextID: 1}
}

func (f *fakeAssetRepo) GetByUserID(_ context.Context, userID int64) ([]models.Asset, error) {
	var assets []models.Asset
	for _, a := range f.byID {
		if a.UserID == userID {
			assets = append(assets, *a)
		}
	}
	return assets, nil
}

func (f *fakeAssetRepo) GetByID(_ context.Context, id int64) (*models.Asset, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAssetRepo) Create(_ context.Context, asset *models.Asset) error {
	asset.ID = f.nextID
	f.nextID++
	copied := *asset
	f.byID[asset.ID] = &copied
	return nil
}

func (f *fakeAssetRepo) Update(_ context.Context, asset *models.Asset) error {
	copied := *asset
	f.byID[asset.ID] = &copied
	return nil
}

func (f *fakeAssetRepo) UpdateValuation(_ context.Context, id int64, price, currentValue, profitRate decimal.Decimal) error {
	a := f.byID[id]
	a.Price = price
	a.CurrentValue = currentValue
	a.ProfitRate = profitRate
	return nil
}

func (f *fakeAssetRepo) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeAssetRepo) ListUserIDs(_ context.Context) ([]int64, error) {
	seen := map[int64]bool{}
	var ids []int64
	for _, a := range f.byID {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			ids = append(ids, a.UserID)
		}
	}
	return ids, nil
}

type fakeHistoryRepo struct {
	rows map[string]*models.AssetHistory
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{rows: map[string]*models.AssetHistory{}}
}

func historyKey(assetID int64, date time.Time) string {
	return date.Format("2006-01-02") + "/" + strconv.FormatInt(assetID, 10)
}

func (f *fakeHistoryRepo) Upsert(_ context.Context, h *models.AssetHistory) error {
	copied := *h
	f.rows[historyKey(h.AssetID, h.Date)] = &copied
	return nil
}

func (f *fakeHistoryRepo) GetByUserID(_ context.Context, _ int64, _, _ time.Time) ([]models.AssetHistory, error) {
	var history []models.AssetHistory
	for _, h := range f.rows {
		history = append(history, *h)
	}
	return history, nil
}

func TestCreateAssetValuesAtCostBasis(t *testing.T) {
	repo := newFakeAssetRepo()
	service := services.NewAssetService(repo, newFakeHistoryRepo())

	asset, err := service.Create(context.Background(), &schemas.AssetCreateRequest{
		UserID:     1,
		Name:       "Bitcoin",
		AssetType:  "crypto",
		CryptoType: "BTC",
		Quantity:   decimal.RequireFromString("2"),
		CostPrice:  decimal.RequireFromString("60000"),
	})

	require.NoError(t, err)
	assert.NotZero(t, asset.ID)
	assert.True(t, asset.Price.Equal(decimal.RequireFromString("60000")))
	assert.True(t, asset.CurrentValue.Equal(decimal.RequireFromString("120000")))
	assert.True(t, asset.ProfitRate.IsZero())
}

func TestUpdateAssetRecomputesProfitRate(t *testing.T) {
	repo := newFakeAssetRepo()
	service := services.NewAssetService(repo, newFakeHistoryRepo())

	created, err := service.Create(context.Background(), &schemas.AssetCreateRequest{
		UserID:    1,
		Name:      "Bitcoin",
		Quantity:  decimal.RequireFromString("1"),
		CostPrice: decimal.RequireFromString("60000"),
	})
	require.NoError(t, err)

	newValue := decimal.RequireFromString("65000")
	updated, err := service.Update(context.Background(), created.ID, &schemas.AssetUpdateRequest{
		CurrentValue: &newValue,
	})

	require.NoError(t, err)
	assert.Equal(t, "8.33", updated.ProfitRate.StringFixed(2))
	// Untouched fields survive a partial update.
	assert.Equal(t, "Bitcoin", updated.Name)
	assert.True(t, updated.Quantity.Equal(decimal.RequireFromString("1")))
}

func TestUpdateUnknownAssetReturnsNotFound(t *testing.T) {
	service := services.NewAssetService(newFakeAssetRepo(), newFakeHistoryRepo())

	name := "Renamed"
	_, err := service.Update(context.Background(), 99, &schemas.AssetUpdateRequest{Name: &name})
	assert.Error(t, err)
}

func TestSnapshotValuationsSkipsFallback(t *testing.T) {
	history := newFakeHistoryRepo()
	service := services.NewAssetService(newFakeAssetRepo(), history)

	result := schemas.ValuationResult{
		Rows:   []schemas.ValuationRow{{AssetID: 1, CurrentValue: decimal.NewFromInt(100)}},
		Source: schemas.SourceFallback,
	}

	require.NoError(t, service.SnapshotValuations(context.Background(), result, time.Now()))
	assert.Empty(t, history.rows)
}

func TestSnapshotValuationsOverwritesSameDay(t *testing.T) {
	history := newFakeHistoryRepo()
	service := services.NewAssetService(newFakeAssetRepo(), history)

	day := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	result := schemas.ValuationResult{
		Rows:   []schemas.ValuationRow{{AssetID: 1, CurrentValue: decimal.NewFromInt(100)}},
		Source: schemas.SourceLoaded,
	}

	require.NoError(t, service.SnapshotValuations(context.Background(), result, day))

	result.Rows[0].CurrentValue = decimal.NewFromInt(150)
	require.NoError(t, service.SnapshotValuations(context.Background(), result, day))

	require.Len(t, history.rows, 1)
	for _, h := range history.rows {
		assert.True(t, h.Value.Equal(decimal.NewFromInt(150)))
	}
}
