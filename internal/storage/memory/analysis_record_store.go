// Package memory holds in-memory store implementations for development and
// tests. Behavior mirrors the database-backed stores, including error
// semantics and ordering.
package memory

import (
	"context"
	"sort"
	"sync"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/storage"
)

// AnalysisRecordStore is an in-memory implementation of
// storage.AnalysisRecordStore.
type AnalysisRecordStore struct {
	mu     sync.RWMutex
	nextID int64
	data   []*domain.AnalysisRecord
}

// NewAnalysisRecordStore creates a new in-memory analysis record store.
func NewAnalysisRecordStore() *AnalysisRecordStore {
	return &AnalysisRecordStore{nextID: 1}
}

var _ storage.AnalysisRecordStore = (*AnalysisRecordStore)(nil)

// Insert adds a new record and assigns its ID.
func (s *AnalysisRecordStore) Insert(_ context.Context, r *domain.AnalysisRecord) error {
	if r == nil || r.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *r
	copy.ID = s.nextID
	s.nextID++
	s.data = append(s.data, &copy)

	r.ID = copy.ID
	return nil
}

// GetByAddress retrieves records for a mint address, newest first.
func (s *AnalysisRecordStore) GetByAddress(_ context.Context, address string, limit int) ([]*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.AnalysisRecord
	for _, r := range s.data {
		if r.Address == address {
			copy := *r
			result = append(result, &copy)
		}
	}
	return sortAndClamp(result, limit), nil
}

// GetRecent retrieves the most recent records across all addresses.
func (s *AnalysisRecordStore) GetRecent(_ context.Context, limit int) ([]*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.AnalysisRecord, 0, len(s.data))
	for _, r := range s.data {
		copy := *r
		result = append(result, &copy)
	}
	return sortAndClamp(result, limit), nil
}

// sortAndClamp orders newest first (ID as tie-break) and applies the limit.
func sortAndClamp(records []*domain.AnalysisRecord, limit int) []*domain.AnalysisRecord {
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt > records[j].CreatedAt
		}
		return records[i].ID > records[j].ID
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}
