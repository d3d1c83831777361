package recommend

import "github.com/aristath/invcore/internal/coreconfig"

// Horizon is spec.md §3's holding-period class.
type Horizon string

const (
	Short  Horizon = "short"
	Medium Horizon = "medium"
	Long   Horizon = "long"
)

// band picks the short/medium/long value out of a HorizonBand triple.
func band(h Horizon, b coreconfig.HorizonBand) float64 {
	switch h {
	case Short:
		return b.Short
	case Medium:
		return b.Medium
	case Long:
		return b.Long
	default:
		return b.Medium
	}
}

// TargetWeight computes spec.md §4.5's position-sizing formula:
// clamp(k*(score-0.5)*confidence, 0, wMax). HOLD/SELL/STRONG_SELL always
// size to zero in the long-only mode this core implements exclusively
// (long-short is out of scope per spec.md §4.5).
func TargetWeight(action Action, score, confidence float64, sizing coreconfig.PositionSizing) float64 {
	if action != StrongBuy && action != Buy {
		return 0
	}
	w := sizing.K * (score - 0.5) * confidence
	switch {
	case w < 0:
		return 0
	case w > sizing.WMax:
		return sizing.WMax
	default:
		return w
	}
}

// EntryBand computes spec.md §4.5's entry window: below close for buys,
// above close for sells, widened by a horizon-dependent fraction e.
func EntryBand(action Action, close float64, h Horizon, bands coreconfig.RiskBands) (low, high float64) {
	e := band(h, bands.EntryBand)
	switch action {
	case StrongBuy, Buy:
		return close * (1 - e), close
	case Sell, StrongSell:
		return close, close * (1 + e)
	default:
		return close, close
	}
}

// StopLoss computes spec.md §4.5's ATR-based stop for a buy action,
// clamped to the configured maximum loss fraction.
func StopLoss(close, atr float64, h Horizon, bands coreconfig.RiskBands) float64 {
	m := band(h, bands.StopATRMultiple)
	stop := close - m*atr
	floor := close * (1 - bands.MaxLossFrac)
	if stop < floor {
		stop = floor
	}
	return stop
}

// TakeProfit computes spec.md §4.5's reward/risk-derived target: close
// plus r times the distance to the stop.
func TakeProfit(close, stop float64, h Horizon, bands coreconfig.RiskBands) float64 {
	r := band(h, bands.RewardRisk)
	risk := close - stop
	return close + r*risk
}
