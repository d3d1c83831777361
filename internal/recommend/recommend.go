package recommend

import (
	"time"

	"github.com/aristath/invcore/internal/coreconfig"
	"github.com/aristath/invcore/internal/fusion"
)

// Recommendation is spec.md §3's Recommendation record.
type Recommendation struct {
	Symbol       string
	AsOf         time.Time
	Action       Action
	Conviction   float64
	TargetWeight float64
	EntryLow     float64
	EntryHigh    float64
	TakeProfit   float64
	StopLoss     float64
	Horizon      Horizon
	Rationale    string
}

// Inputs bundles the per-symbol readings Build needs beyond the
// CompositeScore itself: the current close and ATR drive the stop/target
// bands, and the horizon selects which band triple applies.
type Inputs struct {
	Symbol  string
	AsOf    time.Time
	Close   float64
	ATR     float64
	Horizon Horizon
}

// Build maps a fusion.CompositeScore and the symbol's current market
// reading into spec.md §4.5's Recommendation. Action, sizing, and
// entry/exit bands are all derived from cfg's configurable thresholds.
func Build(composite fusion.CompositeScore, in Inputs, cfg *coreconfig.CoreConfig) Recommendation {
	hasHard := fusion.AnyHard(composite.RiskFlags)
	action := ClassifyAction(composite.Score, composite.Confidence, hasHard, cfg.ActionThresholds)
	weight := TargetWeight(action, composite.Score, composite.Confidence, cfg.PositionSizing)

	entryLow, entryHigh := EntryBand(action, in.Close, in.Horizon, cfg.RiskBands)

	var stop, target float64
	if action == StrongBuy || action == Buy {
		stop = StopLoss(in.Close, in.ATR, in.Horizon, cfg.RiskBands)
		target = TakeProfit(in.Close, stop, in.Horizon, cfg.RiskBands)
	}

	return Recommendation{
		Symbol:       in.Symbol,
		AsOf:         in.AsOf,
		Action:       action,
		Conviction:   composite.Confidence,
		TargetWeight: weight,
		EntryLow:     entryLow,
		EntryHigh:    entryHigh,
		TakeProfit:   target,
		StopLoss:     stop,
		Horizon:      in.Horizon,
		Rationale:    BuildRationale(composite.Contributions, composite.RiskFlags),
	}
}
