package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/storage"
	pgstore "tokenbrain/internal/storage/postgres"
)

func testRecord(address string, createdAt int64) *domain.AnalysisRecord {
	return &domain.AnalysisRecord{
		Address:             address,
		Symbol:              ptr("TEST"),
		Level:               domain.RiskMedium,
		Recommendation:      domain.RecommendCaution,
		SafetyCompleteness:  0.83,
		ContextCompleteness: 0.5,
		Factors:             []string{"Liquidity unknown", "Token age unknown"},
		Summary:             "TEST: medium risk.",
		CreatedAt:           createdAt,
	}
}

func TestAnalysisRecordStore_InsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewAnalysisRecordStore(pool)
	ctx := context.Background()

	record := testRecord("addr1", 1000)
	require.NoError(t, store.Insert(ctx, record))
	require.NotZero(t, record.ID, "Insert must assign the ID")

	got, err := store.GetByAddress(ctx, "addr1", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.Equal(t, record.ID, got[0].ID)
	require.Equal(t, "addr1", got[0].Address)
	require.Equal(t, "TEST", *got[0].Symbol)
	require.Equal(t, domain.RiskMedium, got[0].Level)
	require.Equal(t, domain.RecommendCaution, got[0].Recommendation)
	require.InDelta(t, 0.83, got[0].SafetyCompleteness, 1e-9)
	require.Equal(t, []string{"Liquidity unknown", "Token age unknown"}, got[0].Factors)
	require.Equal(t, "TEST: medium risk.", got[0].Summary)
	require.Equal(t, int64(1000), got[0].CreatedAt)
}

func TestAnalysisRecordStore_NullSymbol(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewAnalysisRecordStore(pool)
	ctx := context.Background()

	record := testRecord("addr1", 1000)
	record.Symbol = nil
	require.NoError(t, store.Insert(ctx, record))

	got, err := store.GetByAddress(ctx, "addr1", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Nil(t, got[0].Symbol)
}

func TestAnalysisRecordStore_GetByAddressOrderAndLimit(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewAnalysisRecordStore(pool)
	ctx := context.Background()

	for i := int64(1); i <= 4; i++ {
		require.NoError(t, store.Insert(ctx, testRecord("addr1", i*1000)))
	}
	require.NoError(t, store.Insert(ctx, testRecord("other", 9000)))

	got, err := store.GetByAddress(ctx, "addr1", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, int64(4000), got[0].CreatedAt, "newest first")
	require.Equal(t, int64(2000), got[2].CreatedAt)
}

func TestAnalysisRecordStore_GetRecent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewAnalysisRecordStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testRecord("a1", 1000)))
	require.NoError(t, store.Insert(ctx, testRecord("a2", 3000)))
	require.NoError(t, store.Insert(ctx, testRecord("a3", 2000)))

	got, err := store.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a2", got[0].Address)
	require.Equal(t, "a3", got[1].Address)
}

func TestAnalysisRecordStore_InvalidInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewAnalysisRecordStore(pool)
	ctx := context.Background()

	require.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	require.ErrorIs(t, store.Insert(ctx, testRecord("", 1)), storage.ErrInvalidInput)
}

func TestAnalysisRecordStore_EmptyResult(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewAnalysisRecordStore(pool)

	got, err := store.GetByAddress(context.Background(), "missing", 10)
	require.NoError(t, err)
	require.Empty(t, got)
}
