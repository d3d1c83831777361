package fundamentals

import "github.com/aristath/invcore/internal/coreconfig"

// Score is the composite fundamental sub-score spec.md §4.3 and §4.4
// consume: a [0,1] value, a confidence reflecting how much of the input
// snapshot was populated, and the per-component breakdown the fusion
// layer cites in its rationale.
type Score struct {
	Value         float64
	Confidence    float64
	Valuation     float64
	Health        float64
	Profitability float64
	Growth        float64
	Grade         HealthGrade
}

// totalInputs is the maximum number of components the four scorers can
// ever report present: valuation's 4 (PE, PEG, PB, EV/EBITDA), health's 3
// (D/E, current ratio, quick ratio), profitability's 4 (ROE, ROA, ROIC,
// and the margin trio counted as one component), and growth's 2 (revenue
// growth, EPS growth). Snapshot carries a few fields (PS, FCF, Shares,
// DivYield) that feed other calculations (DCF) rather than a component
// scorer here, so they don't enter this denominator.
const totalInputs = 13

// Compute runs all four component scorers and combines them into a
// composite Score, renormalizing cfg's weights over whichever components
// produced a value and capping confidence by how sparsely the snapshot
// was populated.
func Compute(s Snapshot, cfg *coreconfig.CoreConfig) Score {
	valuationScore, valuationN := Valuation(s, cfg.Valuation)
	healthScore, healthN := Health(s)
	profitScore, profitN := Profitability(s, cfg.Profitability)
	growthScore, growthN := Growth(s, cfg.FundamentalWeight.GrowthK)

	w := cfg.FundamentalWeight
	weightedTotal, weightSum := 0.0, 0.0
	if valuationN > 0 {
		weightedTotal += w.Valuation * valuationScore
		weightSum += w.Valuation
	}
	if healthN > 0 {
		weightedTotal += w.Health * healthScore
		weightSum += w.Health
	}
	if profitN > 0 {
		weightedTotal += w.Profitability * profitScore
		weightSum += w.Profitability
	}
	if growthN > 0 {
		weightedTotal += w.Growth * growthScore
		weightSum += w.Growth
	}

	composite := 0.5
	if weightSum > 0 {
		composite = weightedTotal / weightSum
	}

	present := valuationN + healthN + profitN + growthN
	confidence := float64(present) / float64(totalInputs)
	if confidence > 1 {
		confidence = 1
	}

	return Score{
		Value:         composite,
		Confidence:    confidence,
		Valuation:     valuationScore,
		Health:        healthScore,
		Profitability: profitScore,
		Growth:        growthScore,
		Grade:         Grade(healthScore),
	}
}
