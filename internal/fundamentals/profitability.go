package fundamentals

import "github.com/aristath/invcore/internal/coreconfig"

// capToTarget scores value against target as min(1, value/target), clamped
// to 0 for non-positive readings.
func capToTarget(value, target float64) float64 {
	if target <= 0 || value <= 0 {
		return 0
	}
	ratio := value / target
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Profitability computes spec.md §4.3's profitability score: ROE, ROA, and
// ROIC each scored against a target (capped at 1.0), plus a fourth,
// equally-weighted component averaging the gross/operating/net margin
// trio. Renormalized over whichever of the four components had at least
// one present input.
func Profitability(s Snapshot, t coreconfig.ProfitabilityTargets) (score float64, present int) {
	total, count := 0.0, 0

	if v, ok := s.ROE.Get(); ok {
		total += capToTarget(v, t.ROE)
		count++
	}
	if v, ok := s.ROA.Get(); ok {
		total += capToTarget(v, t.ROA)
		count++
	}
	if v, ok := s.ROIC.Get(); ok {
		total += capToTarget(v, t.ROIC)
		count++
	}

	marginTotal, marginCount := 0.0, 0
	if v, ok := s.GrossM.Get(); ok {
		marginTotal += clamp01(v)
		marginCount++
	}
	if v, ok := s.OperatingM.Get(); ok {
		marginTotal += clamp01(v)
		marginCount++
	}
	if v, ok := s.NetM.Get(); ok {
		marginTotal += clamp01(v)
		marginCount++
	}
	if marginCount > 0 {
		total += marginTotal / float64(marginCount)
		count++
	}

	if count == 0 {
		return 0, 0
	}
	return total / float64(count), count
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
