package fusion

import "fmt"

// MomentumSubScore builds spec.md §4.4's momentum sub-score from the MACD
// histogram's slope (current minus previous) and the price's position
// relative to its 200-day SMA. Each component is mapped to [0,1] via a
// sign-based lean and averaged.
func MomentumSubScore(histSlope float64, closeOverSMA200 float64, haveSlope, haveSMA bool) SubScore {
	total, count := 0.0, 0

	if haveSlope {
		total += leanFromSign(histSlope)
		count++
	}
	if haveSMA {
		total += leanFromSign(closeOverSMA200 - 1)
		count++
	}

	if count == 0 {
		return SubScore{Name: "momentum", Value: 0.5, Confidence: 0, Rationale: "no momentum data"}
	}

	value := total / float64(count)
	confidence := float64(count) / 2.0
	return SubScore{
		Name:       "momentum",
		Value:      value,
		Confidence: confidence,
		Rationale:  fmt.Sprintf("histogram slope %.4f, price/SMA200 %.4f", histSlope, closeOverSMA200),
	}
}

// leanFromSign maps a signed quantity to a bounded [0,1] lean: strongly
// positive approaches 1, strongly negative approaches 0, zero is neutral.
// Uses the same saturating shape as the fundamentals growth score so a
// single large reading cannot swamp the average.
func leanFromSign(x float64) float64 {
	const k = 0.02
	if x >= 0 {
		return 0.5 + 0.5*x/(x+k)
	}
	return 0.5 - 0.5*(-x)/(-x+k)
}
