// Package risk implements the token risk decision engine: signal
// extraction, completeness scoring, the HIGH/MEDIUM/LOW classifier, and the
// factor explainer whose output is the only justification text downstream
// narration may use.
//
// The engine is pure and stateless across calls: it reads its input and a
// fixed threshold configuration, performs no I/O, and may be invoked
// concurrently for unrelated tokens with no coordination.
package risk

import "tokenbrain/internal/domain"

// Result is the complete outcome of one evaluation, immutable once
// returned.
type Result struct {
	Level domain.RiskLevel `json:"level"`

	// Completeness of the critical and contextual signal sets, each in [0,1].
	SafetyCompleteness  float64 `json:"safety_completeness"`
	ContextCompleteness float64 `json:"context_completeness"`

	// Signals mirrors the token's optional fields verbatim, nil for
	// unknown. This is what the narrator receives; it never contains
	// values absent from the input.
	Signals map[string]any `json:"risk_signals"`

	// Factors is the ordered justification list. The narrator may reorder
	// or rephrase these lines but must not introduce new content.
	Factors []string `json:"factors"`
}

// Engine evaluates tokens against an immutable threshold configuration.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(thresholds Thresholds) *Engine {
	return &Engine{thresholds: thresholds}
}

// NewDefaultEngine creates an engine with the production rule set.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultThresholds())
}

// Thresholds returns the engine's configuration.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate classifies a token and derives its factor list. Total: every
// combination of known/unknown inputs has a defined outcome, so there is no
// error return. Malformed attributes (out-of-range percentages, negative
// counts) are the caller's validation responsibility.
//
// Order of evaluation:
//  1. SafeList override (base protocol assets)
//  2. HIGH triggers (any match = HIGH)
//  3. LOW requirements (all must match = LOW)
//  4. Default = MEDIUM
func (e *Engine) Evaluate(t *domain.Token) *Result {
	// SafeList override, before any signal inspection. These assets have
	// no meaningful holder-concentration semantics and must never be
	// flagged by heuristics built for arbitrary tokens.
	if Safelisted(t.Address) {
		return &Result{
			Level:               domain.RiskLow,
			SafetyCompleteness:  1.0,
			ContextCompleteness: 1.0,
			Signals:             map[string]any{"safelist": true},
			Factors:             []string{safelistFactor},
		}
	}

	signals := ExtractSignals(t)
	level := e.classify(t)

	return &Result{
		Level:               level,
		SafetyCompleteness:  SafetyCompleteness(signals),
		ContextCompleteness: ContextCompleteness(signals),
		Signals:             signals,
		Factors:             e.factors(t, level),
	}
}
