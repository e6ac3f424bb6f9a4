package risk

import (
	"fmt"
	"sort"
	"strings"

	"tokenbrain/internal/domain"
)

// RenderMarkdown renders a Result as a Markdown report.
func RenderMarkdown(t *domain.Token, result *Result) string {
	var sb strings.Builder

	sb.WriteString("# Token Risk Report\n\n")
	sb.WriteString(fmt.Sprintf("Token: %s (`%s`)\n\n", t.DisplaySymbol(), t.Address))
	sb.WriteString(fmt.Sprintf("## Risk level: %s\n\n", strings.ToUpper(string(result.Level))))

	sb.WriteString(fmt.Sprintf("Safety completeness: %.0f%%  \n", result.SafetyCompleteness*100))
	sb.WriteString(fmt.Sprintf("Context completeness: %.0f%%\n\n", result.ContextCompleteness*100))

	// Factors
	sb.WriteString("## Factors\n\n")
	for _, f := range result.Factors {
		sb.WriteString(fmt.Sprintf("- %s\n", f))
	}
	sb.WriteString("\n")

	// Signals table, sorted by name for deterministic output.
	sb.WriteString("## Signals\n\n")
	sb.WriteString("| Signal | Value |\n")
	sb.WriteString("|--------|-------|\n")

	names := make([]string, 0, len(result.Signals))
	for name := range result.Signals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", name, formatSignal(result.Signals[name])))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Recommendation: %s\n", domain.RecommendationFor(result.Level)))

	return sb.String()
}

// formatSignal renders a signal value for the report, "n/a" for unknown.
func formatSignal(v any) string {
	switch val := v.(type) {
	case nil:
		return "n/a"
	case float64:
		return fmt.Sprintf("%.2f", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
