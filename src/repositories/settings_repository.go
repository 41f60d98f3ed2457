package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository interface {
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, document []byte) error
}

type settingsRepo struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) SettingsRepository {
	return &settingsRepo{db: db}
}

// Get returns the settings JSONB document, or nil when none has been saved.
func (r *settingsRepo) Get(ctx context.Context) ([]byte, error) {
	var document []byte
	err := r.db.QueryRow(ctx,
		`SELECT document FROM system_settings WHERE id = 1`).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return document, nil
}

func (r *settingsRepo) Put(ctx context.Context, document []byte) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO system_settings (id, document)
		 VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`,
		document)
	return err
}
