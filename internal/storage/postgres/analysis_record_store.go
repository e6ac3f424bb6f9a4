package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/storage"
)

// defaultQueryLimit caps list queries when the caller passes no limit.
const defaultQueryLimit = 100

// AnalysisRecordStore implements storage.AnalysisRecordStore using
// PostgreSQL.
type AnalysisRecordStore struct {
	pool *Pool
}

// NewAnalysisRecordStore creates a new AnalysisRecordStore.
func NewAnalysisRecordStore(pool *Pool) *AnalysisRecordStore {
	return &AnalysisRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AnalysisRecordStore = (*AnalysisRecordStore)(nil)

// Insert adds a new record and fills in the database-assigned ID.
func (s *AnalysisRecordStore) Insert(ctx context.Context, r *domain.AnalysisRecord) error {
	if r == nil || r.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO analysis_records (
			address, symbol, level, recommendation,
			safety_completeness, context_completeness,
			factors, summary, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6,
			$7, $8, $9
		)
		RETURNING id
	`

	err := s.pool.QueryRow(ctx, query,
		r.Address, r.Symbol, r.Level, r.Recommendation,
		r.SafetyCompleteness, r.ContextCompleteness,
		r.Factors, r.Summary, r.CreatedAt,
	).Scan(&r.ID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert analysis record: %w", err)
	}
	return nil
}

// GetByAddress retrieves records for a mint address, newest first.
func (s *AnalysisRecordStore) GetByAddress(ctx context.Context, address string, limit int) ([]*domain.AnalysisRecord, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	query := `
		SELECT
			id, address, symbol, level, recommendation,
			safety_completeness, context_completeness,
			factors, summary, created_at
		FROM analysis_records
		WHERE address = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, address, limit)
	if err != nil {
		return nil, fmt.Errorf("get analysis records by address: %w", err)
	}
	defer rows.Close()

	return scanAnalysisRecords(rows)
}

// GetRecent retrieves the most recent records across all addresses.
func (s *AnalysisRecordStore) GetRecent(ctx context.Context, limit int) ([]*domain.AnalysisRecord, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	query := `
		SELECT
			id, address, symbol, level, recommendation,
			safety_completeness, context_completeness,
			factors, summary, created_at
		FROM analysis_records
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent analysis records: %w", err)
	}
	defer rows.Close()

	return scanAnalysisRecords(rows)
}

// scanAnalysisRecords scans multiple rows into a slice of AnalysisRecord.
func scanAnalysisRecords(rows pgx.Rows) ([]*domain.AnalysisRecord, error) {
	var records []*domain.AnalysisRecord

	for rows.Next() {
		var r domain.AnalysisRecord

		err := rows.Scan(
			&r.ID, &r.Address, &r.Symbol, &r.Level, &r.Recommendation,
			&r.SafetyCompleteness, &r.ContextCompleteness,
			&r.Factors, &r.Summary, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan analysis record row: %w", err)
		}

		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis record rows: %w", err)
	}

	return records, nil
}
