package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/observability"
	"tokenbrain/internal/risk"
)

// Default configuration values.
const (
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel      = "anthropic/claude-3.5-sonnet"

	// Chat UX budget: past this the user is better served by the template.
	DefaultLLMTimeout = 1500 * time.Millisecond
)

// systemPrompt binds the model to the engine's output. The model may only
// rephrase the supplied factors; the risk level is already decided.
const systemPrompt = `You are a cryptocurrency token risk analyst.

ANTI-HALLUCINATION CONTRACT:
1. Use ONLY the provided data and factors[]
2. Do NOT add NEW reasons, use ONLY factors[]
3. Treat null values as unknown and say so
4. Do NOT speculate about data that is absent
5. The risk level is ALREADY computed by the system, do NOT change it
6. Respond STRICTLY in JSON

RESPONSE FORMAT:
{
  "risk": "high" | "medium" | "low",
  "summary": "short explanation based on factors (1-2 sentences)",
  "why": ["reason from factors 1", "reason from factors 2", ...],
  "recommendation": "avoid" | "caution" | "ok"
}

RULES:
- risk MUST equal the provided level
- why comes ONLY from the provided factors[] (rephrase if needed)
- if data is insufficient, say so in the summary
- summary at most 200 characters, be brief`

// OpenRouterNarrator generates analyses with an LLM behind the OpenRouter
// API. Any failure, including timeout and malformed output, degrades to the
// template fallback instead of an error.
type OpenRouterNarrator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

var _ Narrator = (*OpenRouterNarrator)(nil)

// NarratorOption configures OpenRouterNarrator.
type NarratorOption func(*OpenRouterNarrator)

// WithModel overrides the default model.
func WithModel(model string) NarratorOption {
	return func(n *OpenRouterNarrator) {
		n.model = model
	}
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) NarratorOption {
	return func(n *OpenRouterNarrator) {
		n.timeout = d
	}
}

// WithBaseURL overrides the API endpoint (tests point this at a local server).
func WithBaseURL(apiKey, baseURL string) NarratorOption {
	return func(n *OpenRouterNarrator) {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = baseURL
		n.client = openai.NewClientWithConfig(cfg)
	}
}

// NewOpenRouterNarrator creates a narrator for the given OpenRouter key.
func NewOpenRouterNarrator(apiKey string, opts ...NarratorOption) *OpenRouterNarrator {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = OpenRouterBaseURL

	n := &OpenRouterNarrator{
		client:  openai.NewClientWithConfig(cfg),
		model:   DefaultModel,
		timeout: DefaultLLMTimeout,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Explain asks the model for a narration of the engine result. The returned
// analysis always carries the engine's level; a misbehaving or unreachable
// model yields the template rendering, never an error.
func (n *OpenRouterNarrator) Explain(ctx context.Context, t *domain.Token, result *risk.Result) (*domain.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	start := time.Now()
	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(t, result)},
		},
		Temperature: 0.2,
		MaxTokens:   500,
	})
	observability.RecordLLMCall(time.Since(start).Seconds())
	if err != nil {
		log.Printf("[explain] llm call failed, using fallback: %v", err)
		observability.RecordLLMFallback()
		return FallbackAnalysis(t, result), nil
	}
	if len(resp.Choices) == 0 {
		log.Printf("[explain] llm returned no choices, using fallback")
		observability.RecordLLMFallback()
		return FallbackAnalysis(t, result), nil
	}

	analysis, err := parseAnalysis(resp.Choices[0].Message.Content, result.Level)
	if err != nil {
		log.Printf("[explain] llm output rejected, using fallback: %v", err)
		observability.RecordLLMFallback()
		return FallbackAnalysis(t, result), nil
	}
	return analysis, nil
}

// userPrompt packs the verdict into a JSON block the model must stay inside.
func userPrompt(t *domain.Token, result *risk.Result) string {
	name := "Unknown"
	if t.Name != nil && *t.Name != "" {
		name = *t.Name
	}

	payload := map[string]any{
		"token": map[string]string{
			"name":   name,
			"symbol": t.DisplaySymbol(),
		},
		"risk_level":           string(result.Level),
		"safety_completeness":  fmt.Sprintf("%.0f%%", result.SafetyCompleteness*100),
		"context_completeness": fmt.Sprintf("%.0f%%", result.ContextCompleteness*100),
		"risk_signals":         result.Signals,
		"factors":              result.Factors,
	}
	data, _ := json.MarshalIndent(payload, "", "  ")

	return fmt.Sprintf(`Analyze the token.

DATA:
%s

IMPORTANT:
- The risk level is already computed: %s
- Use ONLY factors[] for the "why" field
- Do not add new reasons
- null in risk_signals means the data is unknown

Respond in JSON.`, data, result.Level)
}

// llmAnalysis is the raw model output. Why tolerates both a list and a
// single string.
type llmAnalysis struct {
	Risk           string `json:"risk"`
	Summary        string `json:"summary"`
	Why            any    `json:"why"`
	Recommendation string `json:"recommendation"`
}

// parseAnalysis validates model output and clamps it to the narration
// limits. The engine's level always wins over whatever the model claims.
func parseAnalysis(content string, level domain.RiskLevel) (*domain.Analysis, error) {
	content = stripFences(content)

	var raw llmAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil {
		return nil, fmt.Errorf("parse llm json: %w", err)
	}

	if claimed := domain.RiskLevel(strings.ToLower(raw.Risk)); claimed.Valid() && claimed != level {
		log.Printf("[explain] llm tried to change level %s -> %s, keeping %s", level, claimed, level)
	}

	summary := truncate(raw.Summary, maxSummaryChars)
	if summary == "" {
		summary = "Analysis unavailable."
	}

	var why []string
	switch v := raw.Why.(type) {
	case []any:
		for _, item := range v {
			if len(why) == maxWhyItems {
				break
			}
			why = append(why, truncate(fmt.Sprintf("%v", item), maxWhyChars))
		}
	case string:
		why = []string{truncate(v, maxWhyChars)}
	}
	if len(why) == 0 {
		why = []string{fallbackWhy[level]}
	}

	rec := domain.Recommendation(strings.ToLower(raw.Recommendation))
	if !rec.Valid() {
		rec = domain.RecommendationFor(level)
	}

	return &domain.Analysis{
		Risk:           level,
		Summary:        summary,
		Why:            why,
		Recommendation: rec,
	}, nil
}

// stripFences unwraps a markdown code block if the model added one.
func stripFences(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return s
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	return s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
