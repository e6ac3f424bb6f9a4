package risk

// Canonical protocol-native asset mints. These are wrapped/pegged
// instruments, not speculative tokens: holder-concentration heuristics have
// no meaning for them, so they bypass the rule engine entirely.
// This is NOT a project whitelist; nothing else belongs here.
const (
	MintWSOL = "So11111111111111111111111111111111111111112"
	MintUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	MintUSDT = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
)

// SafeProtocolMints is the fixed allow-list checked before any signal
// inspection.
var SafeProtocolMints = map[string]struct{}{
	MintWSOL: {},
	MintUSDC: {},
	MintUSDT: {},
}

// Safelisted reports whether the address is a base protocol asset.
func Safelisted(address string) bool {
	_, ok := SafeProtocolMints[address]
	return ok
}

// safelistFactor is the single factor emitted for safelisted assets.
const safelistFactor = "Base protocol asset of the chain"
