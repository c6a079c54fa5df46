// Package reliability computes inter-rater agreement for screening decisions.
package reliability

import "fmt"

// CohenKappa computes Cohen's kappa between two aligned label sequences.
// Panics if the sequences differ in length: that is a caller bug, not a
// recoverable condition.
func CohenKappa(a, b []string) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("reliability: mismatched label sequences (%d vs %d)", len(a), len(b)))
	}
	if len(a) == 0 {
		return 0
	}

	n := float64(len(a))

	// Observed agreement and per-rater marginal label frequencies.
	agree := 0
	marginA := make(map[string]float64)
	marginB := make(map[string]float64)
	for i := range a {
		if a[i] == b[i] {
			agree++
		}
		marginA[a[i]]++
		marginB[b[i]]++
	}
	po := float64(agree) / n

	var pe float64
	for label, ca := range marginA {
		pe += (ca / n) * (marginB[label] / n)
	}

	// A single label used by both raters throughout leaves no room for
	// chance correction; treat as perfect agreement.
	if pe >= 1.0 {
		return 1.0
	}

	return (po - pe) / (1 - pe)
}

// Interpret maps a kappa value to the Landis & Koch qualitative band.
func Interpret(kappa float64) string {
	switch {
	case kappa < 0:
		return "Poor"
	case kappa < 0.20:
		return "Slight"
	case kappa < 0.40:
		return "Fair"
	case kappa < 0.60:
		return "Moderate"
	case kappa < 0.80:
		return "Substantial"
	default:
		return "Almost Perfect"
	}
}
