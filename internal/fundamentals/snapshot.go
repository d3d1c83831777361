// Package fundamentals implements spec.md §4.3: the fundamental analyzer
// that turns a point-in-time FundamentalSnapshot into a [0,1] sub-score,
// a discrete health grade, and (optionally) a DCF intrinsic value.
//
// Grounded on the teacher's renormalize-over-present-components idiom in
// internal/modules/scoring/scorers/stability.go and security.go: missing
// inputs fall back to a neutral contribution rather than failing the
// whole calculation, and the final score renormalizes weights over
// whichever components actually produced a value.
package fundamentals

import "github.com/aristath/invcore/internal/optional"

// Snapshot is spec.md §3's FundamentalSnapshot: any field may be absent,
// and absence is never conflated with zero.
type Snapshot struct {
	Symbol string

	PE         optional.Float64
	PEG        optional.Float64
	PB         optional.Float64
	PS         optional.Float64
	EVEBITDA   optional.Float64
	DERatio    optional.Float64
	CurrentR   optional.Float64
	QuickR     optional.Float64
	ROE        optional.Float64
	ROA        optional.Float64
	ROIC       optional.Float64
	GrossM     optional.Float64
	OperatingM optional.Float64
	NetM       optional.Float64
	RevGrowth  optional.Float64
	EPSGrowth  optional.Float64
	FCF        optional.Float64
	Shares     optional.Float64
	DivYield   optional.Float64
}

// HealthGrade is a discrete rollup of the health score.
type HealthGrade string

const (
	Excellent HealthGrade = "excellent"
	Good      HealthGrade = "good"
	Moderate  HealthGrade = "moderate"
	Poor      HealthGrade = "poor"
)

// Grade maps a [0,1] health score to a discrete grade with cutoffs at
// 0.85 (excellent), 0.65 (good) and 0.40 (moderate), below which it is
// poor, mirroring the teacher's threshold-ladder style
// (D/E <1 good, <2 moderate, else poor) generalized to a continuous score.
func Grade(healthScore float64) HealthGrade {
	switch {
	case healthScore >= 0.85:
		return Excellent
	case healthScore >= 0.65:
		return Good
	case healthScore >= 0.40:
		return Moderate
	default:
		return Poor
	}
}
