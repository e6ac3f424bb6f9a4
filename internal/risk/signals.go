package risk

import "tokenbrain/internal/domain"

// Signal names. The six critical signals gate the LOW tier; the four
// contextual signals affect explanation quality only.
const (
	SignalMintAuthority   = "mint_authority_exists"
	SignalFreezeAuthority = "freeze_authority_exists"
	SignalTop1Pct         = "top1_holder_percent"
	SignalTop2Pct         = "top2_holder_percent"
	SignalTop5Pct         = "top5_holders_percent"
	SignalTop10Pct        = "top10_holders_percent"

	SignalAgeDays         = "age_days"
	SignalLiquidityUSD    = "liquidity_usd"
	SignalMetadataMutable = "metadata_mutable"
	SignalHolders         = "holders"
)

// CriticalSignals lists the six safety-critical signals in fixed order.
var CriticalSignals = []string{
	SignalMintAuthority,
	SignalFreezeAuthority,
	SignalTop1Pct,
	SignalTop2Pct,
	SignalTop5Pct,
	SignalTop10Pct,
}

// ContextSignals lists the four contextual signals in fixed order.
var ContextSignals = []string{
	SignalAgeDays,
	SignalLiquidityUSD,
	SignalMetadataMutable,
	SignalHolders,
}

// ExtractSignals projects a token into the flat ten-signal mapping handed
// verbatim to the narration layer. Unknown values are nil, never a zero or
// false that could be mistaken for an observation. Pure; no side effects.
func ExtractSignals(t *domain.Token) map[string]any {
	return map[string]any{
		SignalMintAuthority:   t.MintAuthority.Value(),
		SignalFreezeAuthority: t.FreezeAuthority.Value(),
		SignalTop1Pct:         floatValue(t.Top1HolderPct),
		SignalTop2Pct:         floatValue(t.Top2HolderPct),
		SignalTop5Pct:         floatValue(t.Top5HoldersPct),
		SignalTop10Pct:        floatValue(t.Top10HoldersPct),

		SignalAgeDays:         intValue(t.AgeDays),
		SignalLiquidityUSD:    floatValue(t.LiquidityUSD),
		SignalMetadataMutable: t.MetadataMutable.Value(),
		SignalHolders:         t.Holders,
	}
}

func floatValue(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func intValue(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
