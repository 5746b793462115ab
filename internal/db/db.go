// Package db provides PostgreSQL storage for articles and aggregation runs.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
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

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables if they do not exist. The UNIQUE
// constraint on articles.link is the safety net against duplicate insertion
// from overlapping aggregation runs.
func (db *DB) EnsureSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS articles (
		id                  BIGSERIAL PRIMARY KEY,
		title               TEXT NOT NULL,
		link                TEXT NOT NULL UNIQUE,
		publish_date        TIMESTAMPTZ NOT NULL,
		source              TEXT NOT NULL,
		bank_code           TEXT NOT NULL,
		summary             TEXT NOT NULL DEFAULT '',
		ai_relevance_score  REAL NOT NULL DEFAULT 0,
		ai_relevance_reason TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS aggregation_runs (
		id           UUID PRIMARY KEY,
		status       TEXT NOT NULL,
		inserted     INT NOT NULL DEFAULT 0,
		started_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ
	);`

	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
