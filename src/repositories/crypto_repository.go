package repositories

import (
	"context"
	"errors"

	"cryptodash/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CryptoRepository interface {
	GetTop(ctx context.Context, limit int) ([]models.Cryptocurrency, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.Cryptocurrency, error)
	// UpsertAll replaces each symbol's row with the latest quote in a single
	// transaction; symbols absent from the batch keep their previous quote.
	UpsertAll(ctx context.Context, cryptos []models.Cryptocurrency) error
}

type cryptoRepo struct {
	db *pgxpool.Pool
}

func NewCryptoRepository(db *pgxpool.Pool) CryptoRepository {
	return &cryptoRepo{db: db}
}

const cryptoColumns = `id, symbol, name, price, price_currency, market_cap, change_24h, volume_24h, created_at, updated_at`

func (r *cryptoRepo) GetTop(ctx context.Context, limit int) ([]models.Cryptocurrency, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+cryptoColumns+` FROM cryptocurrencies ORDER BY market_cap DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cryptos []models.Cryptocurrency
	for rows.Next() {
		var c models.Cryptocurrency
		if err := rows.Scan(&c.ID, &c.Symbol, &c.Name, &c.Price, &c.PriceCurrency,
			&c.MarketCap, &c.Change24h, &c.Volume24h, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cryptos = append(cryptos, c)
	}
	return cryptos, rows.Err()
}

func (r *cryptoRepo) GetBySymbol(ctx context.Context, symbol string) (*models.Cryptocurrency, error) {
	var c models.Cryptocurrency
	err := r.db.QueryRow(ctx,
		`SELECT `+cryptoColumns+` FROM cryptocurrencies WHERE symbol = $1`, symbol).
		Scan(&c.ID, &c.Symbol, &c.Name, &c.Price, &c.PriceCurrency,
			&c.MarketCap, &c.Change24h, &c.Volume24h, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cryptoRepo) UpsertAll(ctx context.Context, cryptos []models.Cryptocurrency) error {
	if len(cryptos) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, c := range cryptos {
		_, err = tx.Exec(ctx,
			`INSERT INTO cryptocurrencies (symbol, name, price, price_currency, market_cap, change_24h, volume_24h)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (symbol) DO UPDATE SET
				name = EXCLUDED.name,
				price = EXCLUDED.price,
				price_currency = EXCLUDED.price_currency,
				market_cap = EXCLUDED.market_cap,
				change_24h = EXCLUDED.change_24h,
				volume_24h = EXCLUDED.volume_24h,
				updated_at = NOW()`,
			c.Symbol, c.Name, c.Price, c.PriceCurrency, c.MarketCap, c.Change24h, c.Volume24h)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
