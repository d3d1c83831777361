package fusion

import (
	"sort"

	"github.com/aristath/invcore/internal/coreconfig"
)

// Contribution is one named sub-score's weighted share of the composite,
// used for rationale ordering.
type Contribution struct {
	Name          string
	WeightedValue float64
}

// CompositeScore is spec.md §3's CompositeScore record.
type CompositeScore struct {
	Score         float64
	Confidence    float64
	Contributions map[string]float64
	RiskFlags     []RiskFlag
}

// namedWeight pairs a sub-score with the config weight assigned to its name.
type namedWeight struct {
	sub    *SubScore
	weight float64
}

// Combine fuses the five named sub-scores per spec.md §4.4: weights are
// renormalized over whichever sub-scores are present, the composite is
// their weighted mean, and confidence is the minimum present sub-
// confidence scaled by the fraction of sub-scores present — then capped
// further if fundamental and/or sentiment are missing.
func Combine(in Inputs, w coreconfig.FusionWeights, flags []RiskFlag) CompositeScore {
	pairs := []namedWeight{
		{in.Fundamental, w.Fundamental},
		{in.Technical, w.Technical},
		{in.Sentiment, w.Sentiment},
		{in.Momentum, w.Momentum},
		{in.Risk, w.Risk},
	}

	weightSum := 0.0
	for _, p := range pairs {
		if p.sub != nil {
			weightSum += p.weight
		}
	}

	contributions := make(map[string]float64, 5)
	score := 0.0
	minConfidence := 1.0
	presentCount := 0

	if weightSum > 0 {
		for _, p := range pairs {
			if p.sub == nil {
				continue
			}
			normalizedWeight := p.weight / weightSum
			weighted := normalizedWeight * p.sub.Value
			score += weighted
			contributions[p.sub.Name] = weighted
			if p.sub.Confidence < minConfidence {
				minConfidence = p.sub.Confidence
			}
			presentCount++
		}
	} else {
		minConfidence = 0
	}

	presenceFraction := float64(presentCount) / float64(len(pairs))
	confidence := minConfidence * presenceFraction

	switch {
	case in.Fundamental == nil && in.Sentiment == nil:
		confidence = capAt(confidence, 0.4)
	case in.Fundamental == nil || in.Sentiment == nil:
		confidence = capAt(confidence, 0.6)
	}

	return CompositeScore{
		Score:         score,
		Confidence:    confidence,
		Contributions: contributions,
		RiskFlags:     flags,
	}
}

func capAt(v, ceiling float64) float64 {
	if v > ceiling {
		return ceiling
	}
	return v
}

// namePriority is the fixed tie-break order for rationale contributions
// when two sub-scores weigh in identically.
var namePriority = map[string]int{
	"fundamental": 0,
	"technical":   1,
	"sentiment":   2,
	"momentum":    3,
	"risk":        4,
}

// TopContributions returns the top n sub-scores by weighted value
// descending, for rationale assembly (spec.md §4.5). Ties break by the
// fixed sub-score name priority fundamental > technical > sentiment >
// momentum > risk.
func TopContributions(contributions map[string]float64, n int) []Contribution {
	ranked := make([]Contribution, 0, len(contributions))
	for name, weighted := range contributions {
		ranked = append(ranked, Contribution{Name: name, WeightedValue: weighted})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].WeightedValue != ranked[j].WeightedValue {
			return ranked[i].WeightedValue > ranked[j].WeightedValue
		}
		return namePriority[ranked[i].Name] < namePriority[ranked[j].Name]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
