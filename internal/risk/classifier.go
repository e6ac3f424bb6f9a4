package risk

import "tokenbrain/internal/domain"

// classify applies the ordered decision procedure: HIGH triggers first
// (any one suffices), then LOW requirements (all must hold), default
// MEDIUM. The safelist override is handled by the engine before this point.
func (e *Engine) classify(t *domain.Token) domain.RiskLevel {
	if e.isHighRisk(t) {
		return domain.RiskHigh
	}
	if e.isLowRisk(t) {
		return domain.RiskLow
	}
	return domain.RiskMedium
}

// isHighRisk checks the nine HIGH triggers in priority order and
// short-circuits on the first match.
//
// Triggers 1-6 inspect critical signals, trigger 7 is the full-opacity
// rule, triggers 8-9 fire on known-and-dangerous contextual signals.
// All comparisons are strict; boundary values land on the safe side.
func (e *Engine) isHighRisk(t *domain.Token) bool {
	th := e.thresholds

	// 1-2. Active authorities: supply can be inflated or transfers frozen.
	if t.MintAuthority.True() {
		return true
	}
	if t.FreezeAuthority.True() {
		return true
	}

	// 3. Single wallet holds majority.
	if t.Top1HolderPct != nil && *t.Top1HolderPct > th.Top1HighRisk {
		return true
	}

	// 4. Top 5 hold majority, standalone — independent of age or any
	// other signal.
	if t.Top5HoldersPct != nil && *t.Top5HoldersPct > th.Top5HighRisk {
		return true
	}

	// 5. Top 10 concentration.
	if t.Top10HoldersPct != nil && *t.Top10HoldersPct > th.Top10HighRisk {
		return true
	}

	// 6. Two whales: top1 + top2 together control too much.
	if t.Top1HolderPct != nil && t.Top2HolderPct != nil {
		if *t.Top1HolderPct+*t.Top2HolderPct > th.Top1Top2HighRisk {
			return true
		}
	}

	// 7. Full opacity: both age and liquidity unknown. The absence of the
	// two most basic facts about a token is itself a red flag, distinct
	// from merely missing one of them.
	if t.AgeDays == nil && t.LiquidityUSD == nil {
		return true
	}

	// 8-9. Contextual signals, HIGH only when known and dangerous.
	if t.LiquidityUSD != nil && *t.LiquidityUSD < th.LiquidityHighRisk {
		return true
	}
	if t.AgeDays != nil && *t.AgeDays < th.AgeHighRisk {
		return true
	}

	return false
}

// isLowRisk checks the LOW requirements; every one must hold. Any unknown
// critical signal forbids LOW categorically, regardless of how favorable
// the known data looks.
func (e *Engine) isLowRisk(t *domain.Token) bool {
	th := e.thresholds

	// All six critical signals must be known.
	if !t.MintAuthority.Known() || !t.FreezeAuthority.Known() {
		return false
	}
	if t.Top1HolderPct == nil || t.Top2HolderPct == nil ||
		t.Top5HoldersPct == nil || t.Top10HoldersPct == nil {
		return false
	}

	// Authorities must be confirmed absent.
	if t.MintAuthority.True() || t.FreezeAuthority.True() {
		return false
	}

	// Concentration must be under the strict LOW ceilings.
	if *t.Top1HolderPct > th.Top1LowRisk {
		return false
	}
	if *t.Top5HoldersPct > th.Top5LowRisk {
		return false
	}
	if *t.Top10HoldersPct > th.Top10LowRisk {
		return false
	}

	// Liquidity and age must be known and sufficient (inclusive minimums).
	if t.LiquidityUSD == nil || *t.LiquidityUSD < th.LiquidityLowRisk {
		return false
	}
	if t.AgeDays == nil || *t.AgeDays < th.AgeLowRisk {
		return false
	}

	// Enough holders. An unobserved count (0) fails here naturally.
	if t.Holders < th.HoldersLowRisk {
		return false
	}

	return true
}
