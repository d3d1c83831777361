package recommend

import (
	"testing"
	"time"

	"github.com/aristath/invcore/internal/coreconfig"
	"github.com/aristath/invcore/internal/fusion"
	"github.com/stretchr/testify/assert"
)

func TestClassifyAction(t *testing.T) {
	cfg := coreconfig.Default()
	assert.Equal(t, StrongBuy, ClassifyAction(0.85, 1.0, false, cfg.ActionThresholds))
	assert.Equal(t, Buy, ClassifyAction(0.65, 1.0, false, cfg.ActionThresholds))
	assert.Equal(t, Hold, ClassifyAction(0.5, 1.0, false, cfg.ActionThresholds))
	assert.Equal(t, Sell, ClassifyAction(0.3, 1.0, false, cfg.ActionThresholds))
	assert.Equal(t, StrongSell, ClassifyAction(0.1, 1.0, false, cfg.ActionThresholds))
}

func TestClassifyActionHardRiskDowngrade(t *testing.T) {
	cfg := coreconfig.Default()
	action := ClassifyAction(0.85, 0.3, true, cfg.ActionThresholds)
	assert.Equal(t, Buy, action)
}

func TestClassifyActionHardRiskNoDowngradeWithHighConfidence(t *testing.T) {
	cfg := coreconfig.Default()
	action := ClassifyAction(0.85, 0.9, true, cfg.ActionThresholds)
	assert.Equal(t, StrongBuy, action)
}

func TestTargetWeightZeroForHoldAndSell(t *testing.T) {
	cfg := coreconfig.Default()
	assert.Zero(t, TargetWeight(Hold, 0.5, 1.0, cfg.PositionSizing))
	assert.Zero(t, TargetWeight(Sell, 0.3, 1.0, cfg.PositionSizing))
	assert.Zero(t, TargetWeight(StrongSell, 0.1, 1.0, cfg.PositionSizing))
}

func TestTargetWeightClampedToMax(t *testing.T) {
	cfg := coreconfig.Default()
	w := TargetWeight(StrongBuy, 1.0, 1.0, cfg.PositionSizing)
	assert.Equal(t, cfg.PositionSizing.WMax, w)
}

func TestEntryBandBuySell(t *testing.T) {
	cfg := coreconfig.Default()
	low, high := EntryBand(Buy, 100, Medium, cfg.RiskBands)
	assert.Less(t, low, 100.0)
	assert.Equal(t, 100.0, high)

	low, high = EntryBand(Sell, 100, Medium, cfg.RiskBands)
	assert.Equal(t, 100.0, low)
	assert.Greater(t, high, 100.0)
}

func TestStopLossClampedToMaxLoss(t *testing.T) {
	cfg := coreconfig.Default()
	stop := StopLoss(100, 50, Long, cfg.RiskBands) // huge ATR would blow past the floor
	floor := 100 * (1 - cfg.RiskBands.MaxLossFrac)
	assert.InDelta(t, floor, stop, 1e-9)
}

func TestTakeProfitRewardRisk(t *testing.T) {
	cfg := coreconfig.Default()
	stop := StopLoss(100, 2, Short, cfg.RiskBands)
	target := TakeProfit(100, stop, Short, cfg.RiskBands)
	risk := 100 - stop
	assert.InDelta(t, 100+cfg.RiskBands.RewardRisk.Short*risk, target, 1e-9)
}

func TestBuildRecommendationCoherence(t *testing.T) {
	cfg := coreconfig.Default()
	composite := fusion.CompositeScore{
		Score:      0.85,
		Confidence: 0.9,
		Contributions: map[string]float64{
			"fundamental": 0.3, "technical": 0.2, "momentum": 0.1, "risk": 0.05,
		},
	}
	rec := Build(composite, Inputs{
		Symbol: "ACME", AsOf: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Close: 100, ATR: 3, Horizon: Medium,
	}, cfg)

	assert.Equal(t, StrongBuy, rec.Action)
	assert.Greater(t, rec.TargetWeight, 0.0)
	assert.Less(t, rec.StopLoss, rec.EntryHigh)
	assert.Greater(t, rec.TakeProfit, rec.StopLoss)
	assert.NotEmpty(t, rec.Rationale)
}

func TestBuildRecommendationSellIsZeroWeight(t *testing.T) {
	cfg := coreconfig.Default()
	composite := fusion.CompositeScore{Score: 0.25, Confidence: 0.9}
	rec := Build(composite, Inputs{Symbol: "ACME", Close: 100, ATR: 3, Horizon: Medium}, cfg)
	assert.Equal(t, Sell, rec.Action)
	assert.Zero(t, rec.TargetWeight)
}

func TestStateMachineEntryAndHysteresis(t *testing.T) {
	entryThreshold := 0.60

	// FLAT stays FLAT on HOLD, transitions to LONG on BUY.
	assert.Equal(t, PositionFlat, NextPosition(PositionFlat, Hold, 0.5, entryThreshold, false))
	assert.Equal(t, PositionLong, NextPosition(PositionFlat, Buy, 0.65, entryThreshold, false))

	// LONG holding through a mild SELL dip within the hysteresis band.
	assert.Equal(t, PositionLong, NextPosition(PositionLong, Sell, 0.56, entryThreshold, false))

	// LONG exits once the score drops far enough below the entry threshold.
	assert.Equal(t, PositionFlat, NextPosition(PositionLong, Sell, 0.50, entryThreshold, false))

	// Stop/target hit always exits regardless of the current action.
	assert.Equal(t, PositionFlat, NextPosition(PositionLong, Buy, 0.9, entryThreshold, true))
}
