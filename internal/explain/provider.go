// Package explain turns an engine verdict into user-facing prose. Narrators
// may rephrase the engine's factors but never invent reasons or override
// the computed risk level; when generation fails, the deterministic
// template takes over.
package explain

import (
	"context"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/risk"
)

// Limits applied to narrator output regardless of source.
const (
	maxSummaryChars = 500
	maxWhyItems     = 5
	maxWhyChars     = 200
)

// Narrator produces the human-readable half of an analysis.
type Narrator interface {
	Explain(ctx context.Context, t *domain.Token, result *risk.Result) (*domain.Analysis, error)
}
