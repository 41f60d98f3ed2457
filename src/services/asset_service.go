package services

import (
	"context"
	"time"

	"cryptodash/src/models"
	"cryptodash/src/repositories"
	"cryptodash/src/schemas"
	"cryptodash/src/utils"

	"github.com/shopspring/decimal"
)

type AssetServiceI interface {
	GetHoldings(ctx context.Context, userID int64) ([]models.Asset, error)
	Create(ctx context.Context, req *schemas.AssetCreateRequest) (*models.Asset, error)
	Update(ctx context.Context, id int64, req *schemas.AssetUpdateRequest) (*models.Asset, error)
	Delete(ctx context.Context, id int64) error
	History(ctx context.Context, userID int64, days int) ([]schemas.HistoryPoint, error)
	SnapshotValuations(ctx context.Context, result schemas.ValuationResult, date time.Time) error
}

type AssetService struct {
	assets  repositories.AssetRepository
	history repositories.AssetHistoryRepository
}

func NewAssetService(assets repositories.AssetRepository, history repositories.AssetHistoryRepository) *AssetService {
	return &AssetService{assets: assets, history: history}
}

func (s *AssetService) GetHoldings(ctx context.Context, userID int64) ([]models.Asset, error) {
	return s.assets.GetByUserID(ctx, userID)
}

func (s *AssetService) Create(ctx context.Context, req *schemas.AssetCreateRequest) (*models.Asset, error) {
	asset := &models.Asset{
		UserID:       req.UserID,
		Name:         req.Name,
		AssetType:    req.AssetType,
		CryptoType:   req.CryptoType,
		Quantity:     req.Quantity,
		Price:        req.CostPrice,
		CurrentValue: req.Quantity.Mul(req.CostPrice),
		CostPrice:    req.CostPrice,
		ProfitRate:   decimal.Zero,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Update applies a partial update, leaving nil fields untouched, then
// recomputes the profit rate. This is also the valuation write-back path:
// replaying the same {price, current_value} payload is idempotent.
func (s *AssetService) Update(ctx context.Context, id int64, req *schemas.AssetUpdateRequest) (*models.Asset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, utils.NotFound("asset not found")
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.AssetType != nil {
		asset.AssetType = *req.AssetType
	}
	if req.CryptoType != nil {
		asset.CryptoType = *req.CryptoType
	}
	if req.Quantity != nil {
		asset.Quantity = *req.Quantity
	}
	if req.Price != nil {
		asset.Price = *req.Price
	}
	if req.CurrentValue != nil {
		asset.CurrentValue = *req.CurrentValue
	}
	if req.CostPrice != nil {
		asset.CostPrice = *req.CostPrice
	}
	asset.ProfitRate = profitRate(asset.Quantity, asset.CostPrice, asset.CurrentValue)

	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) Delete(ctx context.Context, id int64) error {
	return s.assets.Delete(ctx, id)
}

// History returns the per-day allocation series for the line chart, joined
// back to asset names.
func (s *AssetService) History(ctx context.Context, userID int64, days int) ([]schemas.HistoryPoint, error) {
	if days != 7 && days != 30 {
		days = 7
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	rows, err := s.history.GetByUserID(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	assets, err := s.assets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(assets))
	for _, a := range assets {
		names[a.ID] = a.Name
	}

	points := make([]schemas.HistoryPoint, 0, len(rows))
	for _, h := range rows {
		points = append(points, schemas.HistoryPoint{
			Date:       h.Date.Format("01/02"),
			Name:       names[h.AssetID],
			Percentage: h.Percentage,
			Value:      h.Value,
		})
	}
	return points, nil
}

// SnapshotValuations records one asset_history row per valuation row for the
// given date. Fallback results are not persisted.
func (s *AssetService) SnapshotValuations(ctx context.Context, result schemas.ValuationResult, date time.Time) error {
	if result.Source != schemas.SourceLoaded {
		return nil
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	for _, row := range result.Rows {
		h := &models.AssetHistory{
			AssetID:    row.AssetID,
			Date:       day,
			Price:      row.EffectivePrice,
			Value:      row.CurrentValue,
			Percentage: row.Allocation,
		}
		if err := s.history.Upsert(ctx, h); err != nil {
			return err
		}
	}
	return nil
}
