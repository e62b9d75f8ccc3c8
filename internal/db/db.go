// Package db provides PostgreSQL storage for generation history and
// tracking events. The store is optional: a nil *DB is valid and every
// method on it is a no-op, so callers never branch on configuration.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// ConnectOptional connects when databaseURL is set and returns a nil
// store otherwise. History recording is skipped silently without a
// database.
func ConnectOptional(ctx context.Context, databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, nil
	}
	return Connect(ctx, databaseURL)
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db == nil || db.pool == nil {
		return
	}
	db.pool.Close()
}

// Migrate creates the history tables when they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if db == nil {
		return nil
	}

	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS generations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			prospect_name TEXT NOT NULL,
			company_name TEXT NOT NULL,
			mode TEXT NOT NULL,
			style TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL,
			provider TEXT NOT NULL,
			status TEXT NOT NULL,
			subject TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS tracking_events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			message_id TEXT NOT NULL,
			event TEXT NOT NULL,
			user_agent TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS tracking_events_message_id_idx
			ON tracking_events (message_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate history tables: %w", err)
	}
	return nil
}
