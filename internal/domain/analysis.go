package domain

// RiskLevel is the engine's tier classification.
// Values match the narration output format exactly.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// Valid reports whether the level is one of the three known tiers.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

// Recommendation is the action suggestion derived from the risk level.
type Recommendation string

const (
	RecommendAvoid   Recommendation = "avoid"
	RecommendCaution Recommendation = "caution"
	RecommendOK      Recommendation = "ok"
)

// Valid reports whether the recommendation is one of the known actions.
func (r Recommendation) Valid() bool {
	switch r {
	case RecommendAvoid, RecommendCaution, RecommendOK:
		return true
	}
	return false
}

// RecommendationFor maps a risk level to its default recommendation.
func RecommendationFor(level RiskLevel) Recommendation {
	switch level {
	case RiskHigh:
		return RecommendAvoid
	case RiskLow:
		return RecommendOK
	default:
		return RecommendCaution
	}
}

// Analysis is the final user-facing result of one token analysis.
// The narration layer fills Summary and Why; Why may rephrase but never
// extend the engine's factor list.
type Analysis struct {
	Risk           RiskLevel      `json:"risk"`
	Summary        string         `json:"summary"`
	Why            []string       `json:"why"`
	Recommendation Recommendation `json:"recommendation"`
}

// AnalysisRecord is the audit row persisted per analysis request.
// Corresponds to the analysis_records table in PostgreSQL.
type AnalysisRecord struct {
	ID                  int64     // assigned by the store
	Address             string    // token mint address
	Symbol              *string   // token symbol (nullable)
	Level               RiskLevel // high | medium | low
	Recommendation      Recommendation
	SafetyCompleteness  float64
	ContextCompleteness float64
	Factors             []string // engine factors, verbatim
	Summary             string   // narration summary
	CreatedAt           int64    // Unix timestamp in milliseconds
}

// EvaluationEvent is one row of the analytics event stream.
// Corresponds to the evaluation_events table in ClickHouse.
type EvaluationEvent struct {
	Address             string
	Level               RiskLevel
	SafetyCompleteness  float64
	ContextCompleteness float64
	FactorCount         int
	Safelisted          bool
	DurationMs          int64 // end-to-end analysis duration
	CreatedAt           int64 // Unix timestamp in milliseconds
}
