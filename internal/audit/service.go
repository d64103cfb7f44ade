package audit

import (
	"context"
	"log"
)

// Service records generation outcomes for later inspection of prompt/model
// drift. It is deliberately write-only and best-effort: planning must not
// fail because the audit database is down.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// RecordGeneration logs one planning outcome. Safe to call on a nil Service,
// which makes auditing optional for callers without a database.
func (s *Service) RecordGeneration(ctx context.Context, destination string, days, attempts int, succeeded bool) {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.RecordGeneration(ctx, destination, days, attempts, succeeded); err != nil {
		log.Printf("audit: record generation: %v", err)
	}
}
