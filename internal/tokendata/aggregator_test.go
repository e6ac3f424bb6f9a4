package tokendata

import (
	"context"
	"errors"
	"testing"
	"time"

	"tokenbrain/internal/domain"
)

// slowProvider blocks until its context is done.
type slowProvider struct{}

func (slowProvider) TokenData(ctx context.Context, _ string) (*domain.Token, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// failProvider returns a fixed error.
type failProvider struct{ err error }

func (p failProvider) TokenData(context.Context, string) (*domain.Token, error) {
	return nil, p.err
}

func TestAggregatorPassThrough(t *testing.T) {
	agg := NewAggregator(NewStubProvider(), time.Second)

	tok, err := agg.TokenData(context.Background(), testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Address != testMint {
		t.Errorf("address = %s, want %s", tok.Address, testMint)
	}
}

func TestAggregatorTimeout(t *testing.T) {
	agg := NewAggregator(slowProvider{}, 10*time.Millisecond)

	_, err := agg.TokenData(context.Background(), testMint)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on timeout, got %v", err)
	}
}

func TestAggregatorPropagatesProviderError(t *testing.T) {
	agg := NewAggregator(failProvider{err: ErrNotFound}, time.Second)

	_, err := agg.TokenData(context.Background(), testMint)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStubDeterministic(t *testing.T) {
	p := NewStubProvider()

	first, err := p.TokenData(context.Background(), testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.TokenData(context.Background(), testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *first.Symbol != *second.Symbol {
		t.Errorf("symbol differs across calls: %s vs %s", *first.Symbol, *second.Symbol)
	}
	if *first.AgeDays != *second.AgeDays {
		t.Errorf("age differs across calls: %d vs %d", *first.AgeDays, *second.AgeDays)
	}
	if *first.Top10HoldersPct != *second.Top10HoldersPct {
		t.Errorf("top10 differs across calls")
	}
}

func TestStubFillsAllSignals(t *testing.T) {
	p := NewStubProvider()

	tok, err := p.TokenData(context.Background(), testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tok.Top1HolderPct == nil || tok.Top2HolderPct == nil ||
		tok.Top5HoldersPct == nil || tok.Top10HoldersPct == nil {
		t.Error("stub must fill every concentration tier")
	}
	if tok.AgeDays == nil || tok.LiquidityUSD == nil {
		t.Error("stub must fill age and liquidity")
	}
	if !tok.MintAuthority.Known() || !tok.FreezeAuthority.Known() {
		t.Error("stub must decide both authorities")
	}
	if tok.Holders < 10 {
		t.Errorf("holders = %d, want at least 10", tok.Holders)
	}
}
