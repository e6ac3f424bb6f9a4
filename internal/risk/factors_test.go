package risk

import (
	"testing"

	"tokenbrain/internal/domain"
)

func TestFactorsSafeBaselineDefault(t *testing.T) {
	engine := NewDefaultEngine()

	result := engine.Evaluate(safeToken())
	if len(result.Factors) != 1 || result.Factors[0] != "No major issues detected" {
		t.Errorf("expected single default low factor, got %v", result.Factors)
	}
}

func TestFactorsFewHolders(t *testing.T) {
	engine := NewDefaultEngine()

	tok := safeToken()
	tok.Holders = 99

	result := engine.Evaluate(tok)
	if result.Level != domain.RiskMedium {
		t.Fatalf("expected medium, got %s", result.Level)
	}
	if !contains(result.Factors, "Few holders (99)") {
		t.Errorf("expected few-holders factor, got %v", result.Factors)
	}

	// An unobserved count (0) is a data gap, not a small community.
	tok = safeToken()
	tok.Holders = 0
	result = engine.Evaluate(tok)
	if containsSubstring(result.Factors, "Few holders") {
		t.Errorf("zero holders must not be reported as few: %v", result.Factors)
	}
}

func TestFactorsMediumFallback(t *testing.T) {
	engine := NewDefaultEngine()

	// MetadataMutable unknown fails nothing in the factor rules but does not
	// block LOW either, so force MEDIUM via an unknown top5 which has no
	// dedicated transparency line.
	tok := safeToken()
	tok.Top5HoldersPct = nil

	result := engine.Evaluate(tok)
	if result.Level != domain.RiskMedium {
		t.Fatalf("expected medium, got %s", result.Level)
	}
	if len(result.Factors) != 1 || result.Factors[0] != "Insufficient data for a full analysis" {
		t.Errorf("expected medium default factor, got %v", result.Factors)
	}
}

func TestFactorsOrdering(t *testing.T) {
	engine := NewDefaultEngine()

	tok := safeToken()
	tok.MintAuthority = domain.FlagTrue
	tok.FreezeAuthority = domain.FlagTrue
	tok.Top1HolderPct = ptr(55.0)

	result := engine.Evaluate(tok)

	mintIdx, freezeIdx, top1Idx := -1, -1, -1
	for i, f := range result.Factors {
		switch {
		case f == factorMintActive:
			mintIdx = i
		case f == factorFreezeActive:
			freezeIdx = i
		case f == "A single wallet controls 55% of the supply":
			top1Idx = i
		}
	}
	if mintIdx < 0 || freezeIdx < 0 || top1Idx < 0 {
		t.Fatalf("missing expected factors: %v", result.Factors)
	}
	if !(mintIdx < freezeIdx && freezeIdx < top1Idx) {
		t.Errorf("factor order wrong: mint=%d freeze=%d top1=%d", mintIdx, freezeIdx, top1Idx)
	}
}

func TestFactorsUnknownCriticalNotes(t *testing.T) {
	engine := NewDefaultEngine()

	tok := safeToken()
	tok.MintAuthority = domain.FlagUnknown
	tok.Top2HolderPct = nil

	result := engine.Evaluate(tok)

	if !contains(result.Factors, factorMintUnknown) {
		t.Errorf("expected mint-unknown note, got %v", result.Factors)
	}
	if !contains(result.Factors, factorTop2Unknown) {
		t.Errorf("expected top2-unknown note, got %v", result.Factors)
	}
	if contains(result.Factors, factorFreezeUnknown) {
		t.Errorf("freeze authority is known, note must not appear: %v", result.Factors)
	}
}

func TestFactorsOpacitySuppressesSingleNotes(t *testing.T) {
	engine := NewDefaultEngine()

	tok := safeToken()
	tok.AgeDays = nil
	tok.LiquidityUSD = nil

	result := engine.Evaluate(tok)

	if !contains(result.Factors, factorFullOpacity) {
		t.Fatalf("expected full-opacity factor, got %v", result.Factors)
	}
	// The individual unknown notes would duplicate the opacity line.
	if contains(result.Factors, factorLiquidityUnk) {
		t.Errorf("liquidity-unknown must be suppressed by opacity: %v", result.Factors)
	}
	if contains(result.Factors, factorAgeUnknown) {
		t.Errorf("age-unknown must be suppressed by opacity: %v", result.Factors)
	}
}

func TestFactorsSingleUnknownContextNote(t *testing.T) {
	engine := NewDefaultEngine()

	tok := safeToken()
	tok.LiquidityUSD = nil

	result := engine.Evaluate(tok)

	if contains(result.Factors, factorFullOpacity) {
		t.Errorf("no opacity with age known: %v", result.Factors)
	}
	if !contains(result.Factors, factorLiquidityUnk) {
		t.Errorf("expected liquidity-unknown note, got %v", result.Factors)
	}
}

func TestFactorsConfidenceGate(t *testing.T) {
	engine := NewDefaultEngine()

	// Four of six criticals unknown plus age and liquidity unknown pushes
	// total completeness well below the gate.
	tok := safeToken()
	tok.MintAuthority = domain.FlagUnknown
	tok.FreezeAuthority = domain.FlagUnknown
	tok.Top1HolderPct = nil
	tok.Top2HolderPct = nil
	tok.AgeDays = nil
	tok.LiquidityUSD = nil

	result := engine.Evaluate(tok)

	if len(result.Factors) == 0 || result.Factors[0] != factorLowConfidence {
		t.Errorf("low-confidence warning must come first, got %v", result.Factors)
	}
}

func TestFactorsConcentrationLines(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tok *domain.Token)
		want   string
	}{
		{
			"top1 majority",
			func(tok *domain.Token) { tok.Top1HolderPct = ptr(60.0) },
			"A single wallet controls 60% of the supply",
		},
		{
			"two whales",
			func(tok *domain.Token) {
				tok.Top1HolderPct = ptr(22.0)
				tok.Top2HolderPct = ptr(20.0)
			},
			"The two largest wallets control 42% of the supply",
		},
		{
			"top5 dangerous",
			func(tok *domain.Token) { tok.Top5HoldersPct = ptr(55.0) },
			"Top 5 holders control 55% of the supply",
		},
		{
			"top5 moderate band",
			func(tok *domain.Token) { tok.Top5HoldersPct = ptr(45.0) },
			"Moderate top-5 concentration (45%)",
		},
		{
			"top10 high",
			func(tok *domain.Token) { tok.Top10HoldersPct = ptr(70.0) },
			"High holder concentration (top 10 = 70%)",
		},
	}

	engine := NewDefaultEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := safeToken()
			tt.mutate(tok)

			result := engine.Evaluate(tok)
			if !contains(result.Factors, tt.want) {
				t.Errorf("expected %q in %v", tt.want, result.Factors)
			}
		})
	}
}

func TestFactorsModerateBands(t *testing.T) {
	engine := NewDefaultEngine()

	tok := safeToken()
	tok.LiquidityUSD = ptr(50_000.0)
	tok.AgeDays = ptr(14)

	result := engine.Evaluate(tok)

	if !contains(result.Factors, "Moderate liquidity ($50000)") {
		t.Errorf("expected moderate liquidity line, got %v", result.Factors)
	}
	if !contains(result.Factors, "Relatively new token (14 days)") {
		t.Errorf("expected relatively-new line, got %v", result.Factors)
	}
}

func TestFactorsDangerBands(t *testing.T) {
	engine := NewDefaultEngine()

	tok := safeToken()
	tok.LiquidityUSD = ptr(5_000.0)
	tok.AgeDays = ptr(2)

	result := engine.Evaluate(tok)

	if !contains(result.Factors, "Very low liquidity ($5000)") {
		t.Errorf("expected very-low liquidity line, got %v", result.Factors)
	}
	if !contains(result.Factors, "Very new token (2 days)") {
		t.Errorf("expected very-new line, got %v", result.Factors)
	}
}

func TestFactorsAdvisories(t *testing.T) {
	engine := NewDefaultEngine()

	tok := safeToken()
	tok.MetadataMutable = domain.FlagTrue
	tok.Rugpull.DeveloperWalletMoves = true

	result := engine.Evaluate(tok)

	if !contains(result.Factors, factorMutableMeta) {
		t.Errorf("expected mutable-metadata advisory, got %v", result.Factors)
	}
	if !contains(result.Factors, factorDevWalletMoves) {
		t.Errorf("expected dev-wallet advisory, got %v", result.Factors)
	}
}

func TestFactorsSocialPresence(t *testing.T) {
	engine := NewDefaultEngine()

	// One missing channel alone is not reported.
	tok := safeToken()
	tok.Social.TwitterExists = false
	result := engine.Evaluate(tok)
	if containsSubstring(result.Factors, "Missing:") {
		t.Errorf("one missing channel must not be reported: %v", result.Factors)
	}

	tok = safeToken()
	tok.Social.TwitterExists = false
	tok.Social.WebsiteValid = false
	result = engine.Evaluate(tok)
	if !contains(result.Factors, "Missing: Twitter, website") {
		t.Errorf("expected missing-channels line, got %v", result.Factors)
	}

	tok = safeToken()
	tok.Social = domain.SocialLinks{}
	result = engine.Evaluate(tok)
	if !contains(result.Factors, "Missing: Twitter, Telegram, website") {
		t.Errorf("expected all-missing line, got %v", result.Factors)
	}
}
