package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses recorded in aggregation_runs.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusError     = "error"
)

// Run is one aggregation run's audit record.
type Run struct {
	ID          uuid.UUID
	Status      string
	Inserted    int
	StartedAt   time.Time
	CompletedAt *time.Time
}

// CreateRun records the start of an aggregation run and returns its ID.
func (db *DB) CreateRun(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO aggregation_runs (id, status, inserted, started_at)
		VALUES ($1, $2, 0, now())`,
		id, RunStatusRunning,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun finalizes a run with its terminal status and insert count.
func (db *DB) CompleteRun(ctx context.Context, id uuid.UUID, status string, inserted int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE aggregation_runs
		SET status = $2, inserted = $3, completed_at = now()
		WHERE id = $1`,
		id, status, inserted,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run %s: %w", id, err)
	}
	return nil
}
