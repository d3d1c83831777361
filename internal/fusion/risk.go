package fusion

import "fmt"

// RiskFlag is one of spec.md §4.4's discrete risk markers. Flags attach to
// the composite for the recommendation engine to consume; they never
// alter the composite score directly.
type RiskFlag string

const (
	HighVolatility     RiskFlag = "high_volatility"
	DeepDrawdown       RiskFlag = "deep_drawdown"
	ThinLiquidity      RiskFlag = "thin_liquidity"
	ValuationStretched RiskFlag = "valuation_stretched"
)

// RiskFlagInputs holds the raw readings spec.md §4.4 thresholds against to
// derive discrete risk flags.
type RiskFlagInputs struct {
	AnnualizedVolatility float64
	MaxDrawdown          float64 // negative, e.g. -0.30 for a 30% drawdown
	MedianVolume         float64
	ThinLiquidityFloor   float64
	IntrinsicOverMarket  float64 // 0 if intrinsic value is undefined
	HaveIntrinsicValue   bool
}

// DeriveRiskFlags applies spec.md §4.4's fixed thresholds: vol > 0.40,
// drawdown < -0.25, median volume under the configured floor, and
// intrinsic/market < 0.7.
func DeriveRiskFlags(in RiskFlagInputs) []RiskFlag {
	var flags []RiskFlag
	if in.AnnualizedVolatility > 0.40 {
		flags = append(flags, HighVolatility)
	}
	if in.MaxDrawdown < -0.25 {
		flags = append(flags, DeepDrawdown)
	}
	if in.ThinLiquidityFloor > 0 && in.MedianVolume < in.ThinLiquidityFloor {
		flags = append(flags, ThinLiquidity)
	}
	if in.HaveIntrinsicValue && in.IntrinsicOverMarket < 0.7 {
		flags = append(flags, ValuationStretched)
	}
	return flags
}

// hardRiskFlags are the flags the recommendation engine treats as "hard"
// for its confidence-gated action downgrade.
var hardRiskFlags = map[RiskFlag]bool{
	HighVolatility:     true,
	DeepDrawdown:       true,
	ValuationStretched: true,
}

// AnyHard reports whether flags contains a hard risk flag.
func AnyHard(flags []RiskFlag) bool {
	for _, f := range flags {
		if hardRiskFlags[f] {
			return true
		}
	}
	return false
}

// RiskSubScore builds the risk SubScore from realized volatility and
// max-drawdown percentiles: higher risk scores lower, since risk enters
// the composite inverted (spec.md §4.4).
func RiskSubScore(volatilityPercentile, drawdownPercentile float64) SubScore {
	raw := 1 - (volatilityPercentile+drawdownPercentile)/2
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}
	return SubScore{
		Name:       "risk",
		Value:      raw,
		Confidence: 1.0,
		Rationale:  fmt.Sprintf("volatility percentile %.2f, drawdown percentile %.2f", volatilityPercentile, drawdownPercentile),
	}
}
