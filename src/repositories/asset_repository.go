package repositories

import (
	"context"
	"errors"

	"cryptodash/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type AssetRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]models.Asset, error)
	GetByID(ctx context.Context, id int64) (*models.Asset, error)
	Create(ctx context.Context, asset *models.Asset) error
	Update(ctx context.Context, asset *models.Asset) error
	// UpdateValuation overwrites price, current_value and profit_rate for one
	// asset. It is a full overwrite, so replaying the same write-back is safe.
	UpdateValuation(ctx context.Context, id int64, price, currentValue, profitRate decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
	// ListUserIDs returns every user that currently holds at least one asset.
	ListUserIDs(ctx context.Context) ([]int64, error)
}

type assetRepo struct {
	db *pgxpool.Pool
}

func NewAssetRepository(db *pgxpool.Pool) AssetRepository {
	return &assetRepo{db: db}
}

const assetColumns = `id, user_id, name, asset_type, crypto_type, quantity, price, current_value, cost_price, profit_rate, created_at, updated_at`

func (r *assetRepo) GetByUserID(ctx context.Context, userID int64) ([]models.Asset, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.AssetType, &a.CryptoType,
			&a.Quantity, &a.Price, &a.CurrentValue, &a.CostPrice, &a.ProfitRate,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *assetRepo) GetByID(ctx context.Context, id int64) (*models.Asset, error) {
	var a models.Asset
	err := r.db.QueryRow(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id).
		Scan(&a.ID, &a.UserID, &a.Name, &a.AssetType, &a.CryptoType,
			&a.Quantity, &a.Price, &a.CurrentValue, &a.CostPrice, &a.ProfitRate,
			&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepo) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO assets (user_id, name, asset_type, crypto_type, quantity, price, current_value, cost_price, profit_rate)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		asset.UserID, asset.Name, asset.AssetType, asset.CryptoType,
		asset.Quantity, asset.Price, asset.CurrentValue, asset.CostPrice, asset.ProfitRate,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
}

func (r *assetRepo) Update(ctx context.Context, asset *models.Asset) error {
	_, err := r.db.Exec(ctx,
		`UPDATE assets SET name = $2, asset_type = $3, crypto_type = $4, quantity = $5,
			price = $6, current_value = $7, cost_price = $8, profit_rate = $9, updated_at = NOW()
		 WHERE id = $1`,
		asset.ID, asset.Name, asset.AssetType, asset.CryptoType, asset.Quantity,
		asset.Price, asset.CurrentValue, asset.CostPrice, asset.ProfitRate)
	return err
}

func (r *assetRepo) UpdateValuation(ctx context.Context, id int64, price, currentValue, profitRate decimal.Decimal) error {
	_, err := r.db.Exec(ctx,
		`UPDATE assets SET price = $2, current_value = $3, profit_rate = $4, updated_at = NOW()
		 WHERE id = $1`,
		id, price, currentValue, profitRate)
	return err
}

func (r *assetRepo) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT user_id FROM assets ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *assetRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	return err
}
