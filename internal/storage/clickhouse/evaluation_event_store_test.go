package clickhouse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/storage"
	chstore "tokenbrain/internal/storage/clickhouse"
)

func testEvent(address string, level domain.RiskLevel) *domain.EvaluationEvent {
	return &domain.EvaluationEvent{
		Address:             address,
		Level:               level,
		SafetyCompleteness:  1.0,
		ContextCompleteness: 0.75,
		FactorCount:         2,
		Safelisted:          false,
		DurationMs:          37,
		CreatedAt:           1700000000000,
	}
}

func TestEvaluationEventStore_InsertAndCount(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewEvaluationEventStore(conn)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testEvent("a1", domain.RiskHigh)))
	require.NoError(t, store.Insert(ctx, testEvent("a2", domain.RiskHigh)))
	require.NoError(t, store.Insert(ctx, testEvent("a3", domain.RiskLow)))

	counts, err := store.CountByLevel(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), counts[domain.RiskHigh])
	require.Equal(t, int64(1), counts[domain.RiskLow])
	require.Zero(t, counts[domain.RiskMedium])
}

func TestEvaluationEventStore_InsertBulk(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewEvaluationEventStore(conn)
	ctx := context.Background()

	events := make([]*domain.EvaluationEvent, 0, 50)
	for i := 0; i < 50; i++ {
		level := domain.RiskMedium
		if i%2 == 0 {
			level = domain.RiskLow
		}
		events = append(events, testEvent("bulk", level))
	}
	require.NoError(t, store.InsertBulk(ctx, events))

	counts, err := store.CountByLevel(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(25), counts[domain.RiskMedium])
	require.Equal(t, int64(25), counts[domain.RiskLow])
}

func TestEvaluationEventStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewEvaluationEventStore(conn)
	ctx := context.Background()

	require.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	require.ErrorIs(t, store.Insert(ctx, testEvent("", domain.RiskLow)), storage.ErrInvalidInput)
	require.ErrorIs(t, store.InsertBulk(ctx, []*domain.EvaluationEvent{
		testEvent("ok", domain.RiskLow),
		nil,
	}), storage.ErrInvalidInput)
}

func TestEvaluationEventStore_EmptyBulk(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewEvaluationEventStore(conn)
	require.NoError(t, store.InsertBulk(context.Background(), nil))
}
