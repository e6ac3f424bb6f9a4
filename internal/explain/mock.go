package explain

import (
	"context"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/risk"
)

// mockTemplate is one canned narration per risk level, with a few summary
// variants so development output does not look frozen.
type mockTemplate struct {
	summaries [3]string
}

var mockTemplates = map[domain.RiskLevel]mockTemplate{
	domain.RiskHigh: {
		summaries: [3]string{
			"The token looks very risky: low liquidity, young contract, concentrated holders.",
			"This token carries high risk. Main problems: insufficient liquidity and centralized ownership.",
			"Extremely risky token. Multiple red flags point to a possible scam.",
		},
	},
	domain.RiskMedium: {
		summaries: [3]string{
			"Several open questions: moderate liquidity and mixed holder distribution. Proceed with care.",
			"The token has mixed indicators. Some metrics raise questions, but nothing critical was found.",
			"Medium risk. The token is not perfect, but it does not look like an outright scam either.",
		},
	},
	domain.RiskLow: {
		summaries: [3]string{
			"The token looks healthy: solid liquidity, established history, dispersed holders.",
			"Key indicators are within normal ranges. No significant risk markers found.",
			"Low risk profile. The fundamentals of this token check out.",
		},
	},
}

// MockNarrator produces canned analyses shaped exactly like real LLM
// output, for development without an API key. The same address always gets
// the same variant.
type MockNarrator struct{}

var _ Narrator = (*MockNarrator)(nil)

// NewMockNarrator creates the mock narrator.
func NewMockNarrator() *MockNarrator {
	return &MockNarrator{}
}

// Explain returns a template analysis. The why list is the engine's
// factors, same as a contract-abiding model would produce.
func (MockNarrator) Explain(_ context.Context, t *domain.Token, result *risk.Result) (*domain.Analysis, error) {
	variant := 0
	for _, b := range []byte(t.Address) {
		variant += int(b)
	}
	variant %= len(mockTemplates[result.Level].summaries)

	why := result.Factors
	if len(why) > maxWhyItems {
		why = why[:maxWhyItems]
	}
	if len(why) == 0 {
		why = []string{fallbackWhy[result.Level]}
	}

	return &domain.Analysis{
		Risk:           result.Level,
		Summary:        mockTemplates[result.Level].summaries[variant],
		Why:            why,
		Recommendation: domain.RecommendationFor(result.Level),
	}, nil
}
