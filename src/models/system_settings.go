package models

import "time"

// SystemSettings is a single-row table; the document itself is stored as
// JSONB so the settings surface can evolve without migrations.
type SystemSettings struct {
	ID        int64     `db:"id"`
	Document  []byte    `db:"document"`
	UpdatedAt time.Time `db:"updated_at"`
}
