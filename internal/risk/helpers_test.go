package risk

import (
	"strings"

	"tokenbrain/internal/domain"
)

// ptr is a helper to create pointers to values.
func ptr[T any](v T) *T {
	return &v
}

// safeToken returns a token that satisfies every LOW requirement under the
// default thresholds. Tests tweak individual fields from this baseline.
func safeToken() *domain.Token {
	return &domain.Token{
		Chain:           domain.ChainSolana,
		Address:         "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
		Symbol:          ptr("SAFE"),
		MintAuthority:   domain.FlagFalse,
		FreezeAuthority: domain.FlagFalse,
		MetadataMutable: domain.FlagFalse,
		Top1HolderPct:   ptr(20.0),
		Top2HolderPct:   ptr(10.0),
		Top5HoldersPct:  ptr(30.0),
		Top10HoldersPct: ptr(50.0),
		AgeDays:         ptr(60),
		LiquidityUSD:    ptr(100_000.0),
		Holders:         500,
		Social: domain.SocialLinks{
			TwitterExists:  true,
			TelegramExists: true,
			WebsiteValid:   true,
		},
	}
}

// contains reports whether list has an element equal to s.
func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// containsSubstring reports whether any element of list contains sub.
func containsSubstring(list []string, sub string) bool {
	for _, item := range list {
		if strings.Contains(item, sub) {
			return true
		}
	}
	return false
}
