package repositories

import (
	"context"
	"time"

	"cryptodash/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AssetHistoryRepository interface {
	// Upsert writes one snapshot row per asset per date, overwriting any
	// earlier snapshot for the same day.
	Upsert(ctx context.Context, h *models.AssetHistory) error
	GetByUserID(ctx context.Context, userID int64, startDate, endDate time.Time) ([]models.AssetHistory, error)
}

type assetHistoryRepo struct {
	db *pgxpool.Pool
}

func NewAssetHistoryRepository(db *pgxpool.Pool) AssetHistoryRepository {
	return &assetHistoryRepo{db: db}
}

func (r *assetHistoryRepo) Upsert(ctx context.Context, h *models.AssetHistory) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO asset_history (asset_id, date, price, value, percentage)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (asset_id, date) DO UPDATE SET
			price = EXCLUDED.price,
			value = EXCLUDED.value,
			percentage = EXCLUDED.percentage
		 RETURNING id`,
		h.AssetID, h.Date, h.Price, h.Value, h.Percentage,
	).Scan(&h.ID)
}

func (r *assetHistoryRepo) GetByUserID(ctx context.Context, userID int64, startDate, endDate time.Time) ([]models.AssetHistory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT h.id, h.asset_id, h.date, h.price, h.value, h.percentage, h.created_at
		 FROM asset_history h
		 JOIN assets a ON a.id = h.asset_id
		 WHERE a.user_id = $1 AND h.date BETWEEN $2 AND $3
		 ORDER BY h.date, h.asset_id`,
		userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.AssetHistory
	for rows.Next() {
		var h models.AssetHistory
		if err := rows.Scan(&h.ID, &h.AssetID, &h.Date, &h.Price, &h.Value, &h.Percentage, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
