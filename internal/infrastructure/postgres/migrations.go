package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS reservations (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	room TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	status TEXT NOT NULL DEFAULT 'hopeful',
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (end_date > start_date)
);

CREATE INDEX IF NOT EXISTS idx_reservations_room ON reservations(room);
CREATE INDEX IF NOT EXISTS idx_reservations_start_date ON reservations(start_date);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
