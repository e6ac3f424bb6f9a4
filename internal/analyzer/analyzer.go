// Package analyzer coordinates one token analysis end to end.
// Flow: address validation → token data fetch → risk evaluation → narration,
// with best-effort persistence of the audit record and analytics event.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/explain"
	"tokenbrain/internal/observability"
	"tokenbrain/internal/risk"
	"tokenbrain/internal/storage"
	"tokenbrain/internal/tokendata"
	"tokenbrain/internal/validate"
)

// ErrInvalidAddress indicates the requested address is not a valid
// Solana mint address.
var ErrInvalidAddress = errors.New("invalid token address")

// Report is the complete outcome of one analysis request.
type Report struct {
	Token    *domain.Token    `json:"token"`
	Result   *risk.Result     `json:"result"`
	Analysis *domain.Analysis `json:"analysis"`

	// DurationMs is the end-to-end analysis time.
	DurationMs int64 `json:"duration_ms"`
}

// Service runs analyses and records their outcomes.
type Service struct {
	provider tokendata.Provider
	engine   *risk.Engine
	narrator explain.Narrator

	// Optional stores; persistence is skipped when nil and never fails
	// the analysis.
	recordStore storage.AnalysisRecordStore
	eventStore  storage.EvaluationEventStore

	now func() time.Time
}

// Options for creating a Service.
type Options struct {
	// Required
	Provider tokendata.Provider
	Engine   *risk.Engine
	Narrator explain.Narrator

	// Optional persistence
	RecordStore storage.AnalysisRecordStore
	EventStore  storage.EvaluationEventStore
}

// New creates a new Service.
func New(opts Options) *Service {
	engine := opts.Engine
	if engine == nil {
		engine = risk.NewDefaultEngine()
	}
	narrator := opts.Narrator
	if narrator == nil {
		narrator = explain.NewFallbackNarrator()
	}
	return &Service{
		provider:    opts.Provider,
		engine:      engine,
		narrator:    narrator,
		recordStore: opts.RecordStore,
		eventStore:  opts.EventStore,
		now:         time.Now,
	}
}

// Analyze runs the full analysis for one mint address.
// Data-source failures surface as tokendata.ErrUnavailable or
// tokendata.ErrNotFound; narration failures never fail the request.
func (s *Service) Analyze(ctx context.Context, address string) (*Report, error) {
	start := s.now()

	if err := validate.SolanaAddress(address); err != nil {
		observability.RecordAnalysisError("validate")
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	token, err := s.provider.TokenData(ctx, address)
	if err != nil {
		observability.RecordAnalysisError("tokendata")
		return nil, fmt.Errorf("fetch token data for %s: %w", address, err)
	}

	result := s.engine.Evaluate(token)
	if _, ok := result.Signals["safelist"]; ok {
		observability.RecordSafelistHit()
	}

	analysis, err := s.narrator.Explain(ctx, token, result)
	if err != nil {
		// Narrators degrade internally; this path is a safety net.
		log.Printf("[analyzer] narrator failed for %s: %v", address, err)
		analysis = explain.FallbackAnalysis(token, result)
	}

	durationMs := s.now().Sub(start).Milliseconds()
	s.persist(ctx, token, result, analysis, durationMs)

	observability.RecordAnalysis(string(result.Level), float64(durationMs)/1000.0)

	return &Report{
		Token:      token,
		Result:     result,
		Analysis:   analysis,
		DurationMs: durationMs,
	}, nil
}

// History returns past analyses for one address, newest first.
func (s *Service) History(ctx context.Context, address string, limit int) ([]*domain.AnalysisRecord, error) {
	if s.recordStore == nil {
		return nil, nil
	}
	if err := validate.SolanaAddress(address); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return s.recordStore.GetByAddress(ctx, address, limit)
}

// Recent returns the most recent analyses across all addresses.
func (s *Service) Recent(ctx context.Context, limit int) ([]*domain.AnalysisRecord, error) {
	if s.recordStore == nil {
		return nil, nil
	}
	return s.recordStore.GetRecent(ctx, limit)
}

// LevelCounts returns analytics event counts per risk level.
func (s *Service) LevelCounts(ctx context.Context) (map[domain.RiskLevel]int64, error) {
	if s.eventStore == nil {
		return map[domain.RiskLevel]int64{}, nil
	}
	return s.eventStore.CountByLevel(ctx)
}

// persist writes the audit record and analytics event. Failures are
// logged, never returned: storage must not break the user-facing path.
func (s *Service) persist(ctx context.Context, token *domain.Token, result *risk.Result, analysis *domain.Analysis, durationMs int64) {
	createdAt := s.now().UnixMilli()

	if s.recordStore != nil {
		var symbol *string
		if token.Symbol != nil && *token.Symbol != "" {
			sym := *token.Symbol
			symbol = &sym
		}
		record := &domain.AnalysisRecord{
			Address:             token.Address,
			Symbol:              symbol,
			Level:               result.Level,
			Recommendation:      analysis.Recommendation,
			SafetyCompleteness:  result.SafetyCompleteness,
			ContextCompleteness: result.ContextCompleteness,
			Factors:             result.Factors,
			Summary:             analysis.Summary,
			CreatedAt:           createdAt,
		}
		dbStart := s.now()
		err := s.recordStore.Insert(ctx, record)
		observability.RecordDBQuery("postgres", "insert_analysis_record", s.now().Sub(dbStart).Seconds(), err)
		if err != nil {
			log.Printf("[analyzer] failed to persist analysis record for %s: %v", token.Address, err)
		}
	}

	if s.eventStore != nil {
		_, safelisted := result.Signals["safelist"]
		event := &domain.EvaluationEvent{
			Address:             token.Address,
			Level:               result.Level,
			SafetyCompleteness:  result.SafetyCompleteness,
			ContextCompleteness: result.ContextCompleteness,
			FactorCount:         len(result.Factors),
			Safelisted:          safelisted,
			DurationMs:          durationMs,
			CreatedAt:           createdAt,
		}
		dbStart := s.now()
		err := s.eventStore.Insert(ctx, event)
		observability.RecordDBQuery("clickhouse", "insert_evaluation_event", s.now().Sub(dbStart).Seconds(), err)
		if err != nil {
			log.Printf("[analyzer] failed to persist evaluation event for %s: %v", token.Address, err)
		}
	}
}
