package risk

import (
	"fmt"

	"tokenbrain/internal/domain"
)

// Factor lines with no numeric component.
const (
	factorLowConfidence  = "Insufficient data for a confident assessment"
	factorFullOpacity    = "Full opacity: token age and liquidity are both unknown"
	factorMintUnknown    = "Mint authority data unavailable"
	factorFreezeUnknown  = "Freeze authority data unavailable"
	factorTop1Unknown    = "Largest holder data unavailable"
	factorTop2Unknown    = "Second-largest holder data unavailable"
	factorTop10Unknown   = "Holder distribution data unavailable"
	factorMintActive     = "Mint authority is active (new tokens can be minted)"
	factorFreezeActive   = "Freeze authority is active (transfers can be frozen)"
	factorLiquidityUnk   = "Liquidity unknown"
	factorAgeUnknown     = "Token age unknown"
	factorMutableMeta    = "Token metadata can be changed"
	factorDevWalletMoves = "Suspicious developer wallet activity"
)

// Tier-keyed defaults substituted when no factor rule fires.
var defaultFactors = map[domain.RiskLevel]string{
	domain.RiskHigh:   "Critical issues detected",
	domain.RiskMedium: "Insufficient data for a full analysis",
	domain.RiskLow:    "No major issues detected",
}

// factors derives the ordered justification list for a token. Each line is
// gated by its own condition, independent of which classifier rule actually
// decided the tier. This list is the exhaustive and exclusive source of
// justification for any downstream narration.
func (e *Engine) factors(t *domain.Token, level domain.RiskLevel) []string {
	th := e.thresholds
	var factors []string

	// Confidence gate: warn once when overall completeness is poor.
	signals := ExtractSignals(t)
	total := TotalCompleteness(SafetyCompleteness(signals), ContextCompleteness(signals))
	if total < confidenceGate {
		factors = append(factors, factorLowConfidence)
	}

	// Full opacity: both basic facts missing at once.
	if t.AgeDays == nil && t.LiquidityUSD == nil {
		factors = append(factors, factorFullOpacity)
	}

	// One transparency note per unknown critical signal, fixed field order.
	if !t.MintAuthority.Known() {
		factors = append(factors, factorMintUnknown)
	}
	if !t.FreezeAuthority.Known() {
		factors = append(factors, factorFreezeUnknown)
	}
	if t.Top1HolderPct == nil {
		factors = append(factors, factorTop1Unknown)
	}
	if t.Top2HolderPct == nil {
		factors = append(factors, factorTop2Unknown)
	}
	if t.Top10HoldersPct == nil {
		factors = append(factors, factorTop10Unknown)
	}

	// Active authorities.
	if t.MintAuthority.True() {
		factors = append(factors, factorMintActive)
	}
	if t.FreezeAuthority.True() {
		factors = append(factors, factorFreezeActive)
	}

	// Top-1 concentration.
	if t.Top1HolderPct != nil && *t.Top1HolderPct > th.Top1HighRisk {
		factors = append(factors,
			fmt.Sprintf("A single wallet controls %.0f%% of the supply", *t.Top1HolderPct))
	}

	// Two whales.
	if t.Top1HolderPct != nil && t.Top2HolderPct != nil {
		if sum := *t.Top1HolderPct + *t.Top2HolderPct; sum > th.Top1Top2HighRisk {
			factors = append(factors,
				fmt.Sprintf("The two largest wallets control %.0f%% of the supply", sum))
		}
	}

	// Top-5 concentration: dangerous line, else a softer moderate line for
	// the band between the LOW ceiling and the HIGH trigger.
	if t.Top5HoldersPct != nil {
		switch pct := *t.Top5HoldersPct; {
		case pct > th.Top5HighRisk:
			factors = append(factors,
				fmt.Sprintf("Top 5 holders control %.0f%% of the supply", pct))
		case pct > th.Top5LowRisk:
			factors = append(factors,
				fmt.Sprintf("Moderate top-5 concentration (%.0f%%)", pct))
		}
	}

	// Top-10 concentration.
	if t.Top10HoldersPct != nil && *t.Top10HoldersPct > th.Top10HighRisk {
		factors = append(factors,
			fmt.Sprintf("High holder concentration (top 10 = %.0f%%)", *t.Top10HoldersPct))
	}

	// Liquidity. The unknown note is skipped when the opacity line above
	// already covers it (i.e. age is also unknown).
	switch {
	case t.LiquidityUSD == nil:
		if t.AgeDays != nil {
			factors = append(factors, factorLiquidityUnk)
		}
	case *t.LiquidityUSD < th.LiquidityHighRisk:
		factors = append(factors,
			fmt.Sprintf("Very low liquidity ($%.0f)", *t.LiquidityUSD))
	case *t.LiquidityUSD < th.LiquidityLowRisk:
		factors = append(factors,
			fmt.Sprintf("Moderate liquidity ($%.0f)", *t.LiquidityUSD))
	}

	// Age, with the same skip-if-covered-by-opacity rule.
	switch {
	case t.AgeDays == nil:
		if t.LiquidityUSD != nil {
			factors = append(factors, factorAgeUnknown)
		}
	case *t.AgeDays < th.AgeHighRisk:
		factors = append(factors,
			fmt.Sprintf("Very new token (%d days)", *t.AgeDays))
	case *t.AgeDays < th.AgeLowRisk:
		factors = append(factors,
			fmt.Sprintf("Relatively new token (%d days)", *t.AgeDays))
	}

	// Holder count, only when observed.
	if t.Holders > 0 && t.Holders < th.HoldersLowRisk {
		factors = append(factors, fmt.Sprintf("Few holders (%d)", t.Holders))
	}

	// Mutable metadata advisory.
	if t.MetadataMutable.True() {
		factors = append(factors, factorMutableMeta)
	}

	// Developer wallet advisory, from the precomputed rugpull flag.
	if t.Rugpull.DeveloperWalletMoves {
		factors = append(factors, factorDevWalletMoves)
	}

	// Social presence: two or more missing channels is a risk.
	var missing []string
	if !t.Social.TwitterExists {
		missing = append(missing, "Twitter")
	}
	if !t.Social.TelegramExists {
		missing = append(missing, "Telegram")
	}
	if !t.Social.WebsiteValid {
		missing = append(missing, "website")
	}
	if len(missing) >= 2 {
		line := "Missing: " + missing[0]
		for _, m := range missing[1:] {
			line += ", " + m
		}
		factors = append(factors, line)
	}

	if len(factors) == 0 {
		factors = append(factors, defaultFactors[level])
	}

	return factors
}
