package risk

// Thresholds holds every numeric cutoff used by the classifier and the
// factor explainer. The value is immutable once passed to NewEngine;
// callers that need different cutoffs (e.g. boundary tests) construct
// their own value instead of mutating a shared default.
type Thresholds struct {
	// Liquidity thresholds (USD).
	LiquidityHighRisk float64 // known liquidity below this is an immediate HIGH
	LiquidityLowRisk  float64 // LOW requires known liquidity at or above this

	// Age thresholds (days).
	AgeHighRisk int // known age below this is an immediate HIGH
	AgeLowRisk  int // LOW requires known age at or above this

	// Holder concentration, HIGH triggers (percent of supply).
	Top1HighRisk     float64 // single wallet above this = HIGH
	Top5HighRisk     float64 // top 5 above this = HIGH, standalone
	Top10HighRisk    float64 // top 10 above this = HIGH
	Top1Top2HighRisk float64 // top1 + top2 above this = HIGH ("two whales")

	// Holder concentration, LOW requirements (strictly tighter than the
	// HIGH triggers, leaving a deliberate MEDIUM band between them).
	Top1LowRisk  float64
	Top5LowRisk  float64
	Top10LowRisk float64

	// Holder count, LOW requirement.
	HoldersLowRisk int
}

// DefaultThresholds returns the production rule set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LiquidityHighRisk: 20_000,
		LiquidityLowRisk:  80_000,

		AgeHighRisk: 7,
		AgeLowRisk:  30,

		Top1HighRisk:     50.0,
		Top5HighRisk:     50.0,
		Top10HighRisk:    65.0,
		Top1Top2HighRisk: 40.0,

		Top1LowRisk:  25.0,
		Top5LowRisk:  40.0,
		Top10LowRisk: 55.0,

		HoldersLowRisk: 100,
	}
}
