package explain

import (
	"context"
	"fmt"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/risk"
)

// Fallback reasons used when the engine produced no factors at all.
var fallbackWhy = map[domain.RiskLevel]string{
	domain.RiskHigh:   "Critical issues detected",
	domain.RiskMedium: "Insufficient data for a full analysis",
	domain.RiskLow:    "Key indicators look normal",
}

var fallbackRiskWord = map[domain.RiskLevel]string{
	domain.RiskHigh:   "high",
	domain.RiskMedium: "medium",
	domain.RiskLow:    "low",
}

// FallbackNarrator renders analyses from templates, no LLM involved. It is
// both the standalone offline narrator and the safety net behind the real
// one, so it must never fail.
type FallbackNarrator struct{}

var _ Narrator = (*FallbackNarrator)(nil)

// NewFallbackNarrator creates the template narrator.
func NewFallbackNarrator() *FallbackNarrator {
	return &FallbackNarrator{}
}

// Explain builds a deterministic analysis straight from the engine result.
func (FallbackNarrator) Explain(_ context.Context, t *domain.Token, result *risk.Result) (*domain.Analysis, error) {
	return FallbackAnalysis(t, result), nil
}

// FallbackAnalysis is the template rendering shared with the LLM narrator's
// error path. The why list is the engine's factors verbatim, capped.
func FallbackAnalysis(t *domain.Token, result *risk.Result) *domain.Analysis {
	why := result.Factors
	if len(why) > maxWhyItems {
		why = why[:maxWhyItems]
	}
	if len(why) == 0 {
		why = []string{fallbackWhy[result.Level]}
	}

	note := ""
	if result.SafetyCompleteness < 1.0 {
		note = " Some data is unavailable."
	}
	summary := fmt.Sprintf("%s: %s risk.%s", t.DisplaySymbol(), fallbackRiskWord[result.Level], note)

	return &domain.Analysis{
		Risk:           result.Level,
		Summary:        summary,
		Why:            why,
		Recommendation: domain.RecommendationFor(result.Level),
	}
}
