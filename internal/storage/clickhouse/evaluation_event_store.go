package clickhouse

import (
	"context"
	"fmt"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/storage"
)

// EvaluationEventStore implements storage.EvaluationEventStore using
// ClickHouse. The table is MergeTree: appends only, no uniqueness.
type EvaluationEventStore struct {
	conn *Conn
}

// NewEvaluationEventStore creates a new EvaluationEventStore.
func NewEvaluationEventStore(conn *Conn) *EvaluationEventStore {
	return &EvaluationEventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.EvaluationEventStore = (*EvaluationEventStore)(nil)

// Insert adds one event.
func (s *EvaluationEventStore) Insert(ctx context.Context, e *domain.EvaluationEvent) error {
	if e == nil || e.Address == "" {
		return storage.ErrInvalidInput
	}
	return s.InsertBulk(ctx, []*domain.EvaluationEvent{e})
}

// InsertBulk adds multiple events in one native batch.
func (s *EvaluationEventStore) InsertBulk(ctx context.Context, events []*domain.EvaluationEvent) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		if e == nil || e.Address == "" {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO evaluation_events (
			address, level, safety_completeness, context_completeness,
			factor_count, safelisted, duration_ms, created_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, e := range events {
		safelisted := uint8(0)
		if e.Safelisted {
			safelisted = 1
		}
		err = batch.Append(
			e.Address, string(e.Level),
			e.SafetyCompleteness, e.ContextCompleteness,
			uint32(e.FactorCount), safelisted,
			e.DurationMs, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// CountByLevel returns event counts per risk level.
func (s *EvaluationEventStore) CountByLevel(ctx context.Context) (map[domain.RiskLevel]int64, error) {
	query := `
		SELECT level, count(*) AS cnt
		FROM evaluation_events
		GROUP BY level
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count events by level: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.RiskLevel]int64)
	for rows.Next() {
		var level string
		var cnt uint64
		if err := rows.Scan(&level, &cnt); err != nil {
			return nil, fmt.Errorf("scan level count row: %w", err)
		}
		counts[domain.RiskLevel(level)] = int64(cnt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate level count rows: %w", err)
	}

	return counts, nil
}
