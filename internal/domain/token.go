package domain

// ChainSolana is the only chain this system evaluates.
const ChainSolana = "solana"

// RugpullFlags are precomputed risk indicators consumed read-only by the
// risk engine and the narration layer.
type RugpullFlags struct {
	NewContract          bool `json:"new_contract"`
	LowLiquidity         bool `json:"low_liquidity"`
	CentralizedHolders   bool `json:"centralized_holders"`
	DeveloperWalletMoves bool `json:"developer_wallet_moves"`
}

// SocialLinks describes a token's social presence. Absence is a risk signal.
type SocialLinks struct {
	TwitterExists  bool `json:"twitter_exists"`
	TelegramExists bool `json:"telegram_exists"`
	WebsiteValid   bool `json:"website_valid"`
}

// Token is the normalized snapshot of a token as observed by the data
// providers. Pointer fields and Flag fields are nil/Unknown when the
// provider could not observe them; providers must never substitute defaults
// that could be mistaken for real zeros or falses.
type Token struct {
	Chain   string  `json:"chain"`
	Address string  `json:"address"`
	Name    *string `json:"name,omitempty"`
	Symbol  *string `json:"symbol,omitempty"`

	// Authority flags (tri-state).
	MintAuthority   Flag `json:"-"`
	FreezeAuthority Flag `json:"-"`
	MetadataMutable Flag `json:"-"`

	// Holder concentration, percent of supply in [0,100]. Nil = unknown.
	Top1HolderPct   *float64 `json:"top1_holder_percent,omitempty"`
	Top2HolderPct   *float64 `json:"top2_holder_percent,omitempty"`
	Top5HoldersPct  *float64 `json:"top5_holders_percent,omitempty"`
	Top10HoldersPct *float64 `json:"top10_holders_percent,omitempty"`

	// Contextual metrics. Nil = unknown. A Holders count of 0 means
	// "not observed" for completeness purposes but is a valid count.
	AgeDays      *int     `json:"age_days,omitempty"`
	LiquidityUSD *float64 `json:"liquidity_usd,omitempty"`
	Holders      int      `json:"holders"`
	TxCount24h   int      `json:"tx_count_24h"`

	Rugpull RugpullFlags `json:"rugpull_flags"`
	Social  SocialLinks  `json:"social"`
}

// DisplaySymbol returns the symbol for log lines and summaries.
func (t *Token) DisplaySymbol() string {
	if t.Symbol != nil && *t.Symbol != "" {
		return *t.Symbol
	}
	return "UNKNOWN"
}
