package memory

import (
	"context"
	"sync"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/storage"
)

// EvaluationEventStore is an in-memory implementation of
// storage.EvaluationEventStore.
type EvaluationEventStore struct {
	mu   sync.RWMutex
	data []*domain.EvaluationEvent
}

// NewEvaluationEventStore creates a new in-memory evaluation event store.
func NewEvaluationEventStore() *EvaluationEventStore {
	return &EvaluationEventStore{}
}

var _ storage.EvaluationEventStore = (*EvaluationEventStore)(nil)

// Insert adds one event.
func (s *EvaluationEventStore) Insert(_ context.Context, e *domain.EvaluationEvent) error {
	if e == nil || e.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *e
	s.data = append(s.data, &copy)
	return nil
}

// InsertBulk adds multiple events. The whole batch is validated first so a
// bad entry does not leave a partial write.
func (s *EvaluationEventStore) InsertBulk(_ context.Context, events []*domain.EvaluationEvent) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		if e == nil || e.Address == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		copy := *e
		s.data = append(s.data, &copy)
	}
	return nil
}

// CountByLevel returns event counts per risk level.
func (s *EvaluationEventStore) CountByLevel(_ context.Context) (map[domain.RiskLevel]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.RiskLevel]int64)
	for _, e := range s.data {
		counts[e.Level]++
	}
	return counts, nil
}
