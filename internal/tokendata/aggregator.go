package tokendata

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tokenbrain/internal/domain"
)

// DefaultAggregatorTimeout bounds one full fetch, chosen for chat UX: a
// user waiting on a reply will not tolerate much more.
const DefaultAggregatorTimeout = 10 * time.Second

// Aggregator fronts one provider with a hard deadline and uniform error
// mapping. Built for a single source today; combining multiple providers
// would happen here.
type Aggregator struct {
	provider Provider
	timeout  time.Duration
}

var _ Provider = (*Aggregator)(nil)

// NewAggregator wraps a provider. A non-positive timeout falls back to the
// default.
func NewAggregator(provider Provider, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultAggregatorTimeout
	}
	return &Aggregator{provider: provider, timeout: timeout}
}

// TokenData fetches token data under the aggregator's deadline. A blown
// deadline surfaces as ErrUnavailable so callers need not distinguish slow
// from down.
func (a *Aggregator) TokenData(ctx context.Context, address string) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	t, err := a.provider.TokenData(ctx, address)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("[tokendata] provider timeout after %s for %s", a.timeout, shortAddr(address))
			return nil, fmt.Errorf("%w: provider timeout after %s", ErrUnavailable, a.timeout)
		}
		return nil, err
	}
	return t, nil
}
