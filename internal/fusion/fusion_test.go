package fusion

import (
	"testing"

	"github.com/aristath/invcore/internal/coreconfig"
	"github.com/stretchr/testify/assert"
)

func TestCombineAllPresent(t *testing.T) {
	cfg := coreconfig.Default()
	in := Inputs{
		Fundamental: &SubScore{Name: "fundamental", Value: 0.8, Confidence: 0.9},
		Technical:   &SubScore{Name: "technical", Value: 0.6, Confidence: 1.0},
		Sentiment:   &SubScore{Name: "sentiment", Value: 0.5, Confidence: 0.7},
		Momentum:    &SubScore{Name: "momentum", Value: 0.55, Confidence: 1.0},
		Risk:        &SubScore{Name: "risk", Value: 0.9, Confidence: 1.0},
	}
	result := Combine(in, cfg.FusionWeights, nil)
	assert.Greater(t, result.Score, 0.5)
	assert.InDelta(t, 0.7, result.Confidence, 1e-9) // min confidence 0.7 * full presence 1.0
	assert.Len(t, result.Contributions, 5)
}

func TestCombineMissingFundamentalCapsConfidence(t *testing.T) {
	cfg := coreconfig.Default()
	in := Inputs{
		Technical: &SubScore{Name: "technical", Value: 0.7, Confidence: 1.0},
		Momentum:  &SubScore{Name: "momentum", Value: 0.6, Confidence: 1.0},
		Risk:      &SubScore{Name: "risk", Value: 0.8, Confidence: 1.0},
		Sentiment: &SubScore{Name: "sentiment", Value: 0.5, Confidence: 1.0},
	}
	result := Combine(in, cfg.FusionWeights, nil)
	assert.LessOrEqual(t, result.Confidence, 0.6)
}

func TestCombineMissingSentimentOnlyCapsConfidence(t *testing.T) {
	cfg := coreconfig.Default()
	in := Inputs{
		Fundamental: &SubScore{Name: "fundamental", Value: 0.8, Confidence: 0.9},
		Technical:   &SubScore{Name: "technical", Value: 0.7, Confidence: 1.0},
		Momentum:    &SubScore{Name: "momentum", Value: 0.6, Confidence: 1.0},
		Risk:        &SubScore{Name: "risk", Value: 0.8, Confidence: 1.0},
	}
	result := Combine(in, cfg.FusionWeights, nil)
	assert.LessOrEqual(t, result.Confidence, 0.6)
}

func TestCombineMissingFundamentalAndSentimentCapsLower(t *testing.T) {
	cfg := coreconfig.Default()
	in := Inputs{
		Technical: &SubScore{Name: "technical", Value: 0.7, Confidence: 1.0},
		Momentum:  &SubScore{Name: "momentum", Value: 0.6, Confidence: 1.0},
		Risk:      &SubScore{Name: "risk", Value: 0.8, Confidence: 1.0},
	}
	result := Combine(in, cfg.FusionWeights, nil)
	assert.LessOrEqual(t, result.Confidence, 0.4)
}

func TestCombineNoneFound(t *testing.T) {
	cfg := coreconfig.Default()
	result := Combine(Inputs{}, cfg.FusionWeights, nil)
	assert.Zero(t, result.Score)
	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.Contributions)
}

func TestDeriveRiskFlags(t *testing.T) {
	flags := DeriveRiskFlags(RiskFlagInputs{
		AnnualizedVolatility: 0.5,
		MaxDrawdown:          -0.30,
		MedianVolume:         100,
		ThinLiquidityFloor:   1000,
		HaveIntrinsicValue:   true,
		IntrinsicOverMarket:  0.5,
	})
	assert.Contains(t, flags, HighVolatility)
	assert.Contains(t, flags, DeepDrawdown)
	assert.Contains(t, flags, ThinLiquidity)
	assert.Contains(t, flags, ValuationStretched)
	assert.True(t, AnyHard(flags))
}

func TestDeriveRiskFlagsNoneTripped(t *testing.T) {
	flags := DeriveRiskFlags(RiskFlagInputs{
		AnnualizedVolatility: 0.10,
		MaxDrawdown:          -0.05,
		MedianVolume:         5000,
		ThinLiquidityFloor:   1000,
	})
	assert.Empty(t, flags)
	assert.False(t, AnyHard(flags))
}

func TestTopContributionsOrdering(t *testing.T) {
	contributions := map[string]float64{
		"fundamental": 0.3,
		"technical":   0.1,
		"momentum":    0.2,
		"risk":        0.05,
	}
	top := TopContributions(contributions, 3)
	assert.Len(t, top, 3)
	assert.Equal(t, "fundamental", top[0].Name)
	assert.Equal(t, "momentum", top[1].Name)
	assert.Equal(t, "technical", top[2].Name)
}

func TestMomentumSubScore(t *testing.T) {
	up := MomentumSubScore(0.05, 1.1, true, true)
	down := MomentumSubScore(-0.05, 0.9, true, true)
	assert.Greater(t, up.Value, 0.5)
	assert.Less(t, down.Value, 0.5)
}

func TestRiskSubScoreInverted(t *testing.T) {
	lowRisk := RiskSubScore(0.1, 0.1)
	highRisk := RiskSubScore(0.9, 0.9)
	assert.Greater(t, lowRisk.Value, highRisk.Value)
}
