package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists plan_generations rows.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// RecordGeneration inserts one audit row for a finished planning request.
func (s *Store) RecordGeneration(ctx context.Context, destination string, days, attempts int, succeeded bool) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO plan_generations (destination, days, attempts, succeeded, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, destination, days, attempts, succeeded, time.Now())
	return err
}
