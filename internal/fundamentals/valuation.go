package fundamentals

import "github.com/aristath/invcore/internal/coreconfig"

// lowerIsBetter scores a metric where smaller values are preferable using
// the saturating curve threshold/(value+threshold): 1.0 as value -> 0,
// 0.5 at value == threshold, -> 0 as value grows. Non-positive values
// (which would invert the curve) are clamped to the best score.
func lowerIsBetter(value, threshold float64) float64 {
	if threshold <= 0 {
		return 0.5
	}
	if value <= 0 {
		return 1.0
	}
	return threshold / (value + threshold)
}

// Valuation computes spec.md §4.3's valuation score: lower P/E, PEG, P/B,
// and EV/EBITDA score higher, renormalized over whichever metrics were
// present (a missing metric contributes 0 weight, not a 0 score).
func Valuation(s Snapshot, t coreconfig.ValuationThresholds) (score float64, present int) {
	total, count := 0.0, 0

	if v, ok := s.PE.Get(); ok {
		total += lowerIsBetter(v, t.PE)
		count++
	}
	if v, ok := s.PEG.Get(); ok {
		total += lowerIsBetter(v, t.PEG)
		count++
	}
	if v, ok := s.PB.Get(); ok {
		total += lowerIsBetter(v, t.PB)
		count++
	}
	if v, ok := s.EVEBITDA.Get(); ok {
		total += lowerIsBetter(v, t.EVEBITDA)
		count++
	}

	if count == 0 {
		return 0, 0
	}
	return total / float64(count), count
}
