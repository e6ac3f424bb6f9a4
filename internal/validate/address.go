// Package validate holds input validation for externally supplied
// identifiers, performed before any network or database work.
package validate

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Solana public keys are ed25519 points, 32 bytes on the wire.
const solanaAddressBytes = 32

// SolanaAddress checks that s is a plausible Solana mint address: non-empty,
// no surrounding whitespace, valid base58, and exactly 32 bytes decoded.
// It does not check that the account exists or lies on the curve.
func SolanaAddress(s string) error {
	if s == "" {
		return fmt.Errorf("address is empty")
	}
	if strings.TrimSpace(s) != s {
		return fmt.Errorf("address has surrounding whitespace")
	}
	// 32 bytes encode to 32-44 base58 characters; cheap reject before decode.
	if len(s) < 32 || len(s) > 44 {
		return fmt.Errorf("address length %d out of range", len(s))
	}
	decoded, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("decode address: %w", err)
	}
	if len(decoded) != solanaAddressBytes {
		return fmt.Errorf("address decodes to %d bytes, want %d", len(decoded), solanaAddressBytes)
	}
	return nil
}
