package storage

import (
	"context"

	"tokenbrain/internal/domain"
)

// AnalysisRecordStore provides access to analysis_records storage, the
// per-request audit trail.
type AnalysisRecordStore interface {
	// Insert adds a new record and assigns its ID.
	Insert(ctx context.Context, r *domain.AnalysisRecord) error

	// GetByAddress retrieves records for a mint address, newest first.
	GetByAddress(ctx context.Context, address string, limit int) ([]*domain.AnalysisRecord, error)

	// GetRecent retrieves the most recent records across all addresses,
	// newest first.
	GetRecent(ctx context.Context, limit int) ([]*domain.AnalysisRecord, error)
}

// EvaluationEventStore provides access to evaluation_events storage, the
// analytics event stream.
type EvaluationEventStore interface {
	// Insert adds one event.
	Insert(ctx context.Context, e *domain.EvaluationEvent) error

	// InsertBulk adds multiple events in one batch.
	InsertBulk(ctx context.Context, events []*domain.EvaluationEvent) error

	// CountByLevel returns event counts per risk level.
	CountByLevel(ctx context.Context) (map[domain.RiskLevel]int64, error)
}
