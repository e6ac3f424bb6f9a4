// Package tokendata fetches on-chain token facts and normalizes them into
// the domain model. Providers report what they observed and nothing more;
// risk interpretation happens elsewhere.
package tokendata

import (
	"context"
	"errors"

	"tokenbrain/internal/domain"
)

// Sentinel errors for provider failures.
var (
	// ErrUnavailable means the upstream source could not be reached or
	// answered too slowly. The caller should tell the user to retry.
	ErrUnavailable = errors.New("token data unavailable")

	// ErrNotFound means the address does not resolve to a token mint.
	ErrNotFound = errors.New("token not found")
)

// Provider fetches raw token data for a mint address. Implementations must
// leave fields they cannot observe unknown (nil pointers, FlagUnknown)
// rather than filling in zeros.
type Provider interface {
	TokenData(ctx context.Context, address string) (*domain.Token, error)
}
