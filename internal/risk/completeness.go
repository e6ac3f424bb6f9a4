package risk

// SafetyCompleteness is the fraction of the six critical signals that are
// known. Always in [0,1]; 1.0 exactly when all six are known.
func SafetyCompleteness(signals map[string]any) float64 {
	known := 0
	for _, name := range CriticalSignals {
		if signals[name] != nil {
			known++
		}
	}
	return float64(known) / float64(len(CriticalSignals))
}

// ContextCompleteness is the fraction of the four contextual signals that
// are known. A holder count of 0 is treated as not-yet-observed, not as a
// real zero, so holders counts as known only when strictly positive.
func ContextCompleteness(signals map[string]any) float64 {
	known := 0
	for _, name := range ContextSignals {
		v := signals[name]
		if v == nil {
			continue
		}
		if name == SignalHolders {
			if n, ok := v.(int); !ok || n <= 0 {
				continue
			}
		}
		known++
	}
	return float64(known) / float64(len(ContextSignals))
}

// TotalCompleteness blends the two ratios for UX gating. Critical signals
// dominate because they gate the LOW tier outright.
func TotalCompleteness(safety, context float64) float64 {
	return safety*0.7 + context*0.3
}

// confidenceGate is the total-completeness level below which the explainer
// warns that the assessment itself is uncertain.
const confidenceGate = 0.5
