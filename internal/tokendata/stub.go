package tokendata

import (
	"context"
	"hash/fnv"
	"math/rand"

	"tokenbrain/internal/domain"
)

// mockTokens are realistic name/symbol pairs for generated data.
var mockTokens = [][2]string{
	{"Bonk", "BONK"},
	{"Dogwifhat", "WIF"},
	{"Jupiter", "JUP"},
	{"Raydium", "RAY"},
	{"Marinade", "MNDE"},
	{"Orca", "ORCA"},
	{"Pyth", "PYTH"},
	{"Jito", "JTO"},
	{"Tensor", "TNSR"},
	{"Helium", "HNT"},
}

// StubProvider generates plausible token data without network calls, for
// development and demos. The same address always yields the same data.
type StubProvider struct{}

var _ Provider = (*StubProvider)(nil)

// NewStubProvider creates a stub provider.
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// TokenData generates deterministic fake data seeded by the address.
func (p *StubProvider) TokenData(_ context.Context, address string) (*domain.Token, error) {
	h := fnv.New64a()
	h.Write([]byte(address))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	pair := mockTokens[rng.Intn(len(mockTokens))]
	name, symbol := pair[0], pair[1]

	ageDays := 1 + rng.Intn(365)
	liquidity := round2(1_000 + rng.Float64()*499_000)
	holders := 10 + rng.Intn(49_990)

	top1 := round2(2 + rng.Float64()*48)
	top2 := round2(top1 * (0.3 + rng.Float64()*0.6))
	top5 := round2(top1 + top2 + rng.Float64()*15)
	top10 := round2(top5 + rng.Float64()*20)

	t := &domain.Token{
		Chain:           domain.ChainSolana,
		Address:         address,
		Name:            &name,
		Symbol:          &symbol,
		MintAuthority:   domain.FlagOf(rng.Float64() < 0.15),
		FreezeAuthority: domain.FlagOf(rng.Float64() < 0.1),
		MetadataMutable: domain.FlagOf(rng.Float64() < 0.4),
		Top1HolderPct:   &top1,
		Top2HolderPct:   &top2,
		Top5HoldersPct:  &top5,
		Top10HoldersPct: &top10,
		AgeDays:         &ageDays,
		LiquidityUSD:    &liquidity,
		Holders:         holders,
		TxCount24h:      5 + rng.Intn(9_995),
	}

	t.Rugpull = domain.RugpullFlags{
		NewContract:          ageDays < 7,
		LowLiquidity:         liquidity < 20_000,
		CentralizedHolders:   top10 > centralizedTop10Pct,
		DeveloperWalletMoves: rng.Float64() < 0.1,
	}
	t.Social = domain.SocialLinks{
		TwitterExists:  rng.Float64() > 0.3,
		TelegramExists: rng.Float64() > 0.4,
		WebsiteValid:   rng.Float64() > 0.5,
	}

	return t, nil
}
