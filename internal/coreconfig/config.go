// Package coreconfig holds the explicit configuration the investment core
// is threaded with. Per spec.md §9, the core carries no global mutable
// state: every calculator and the backtester receive a *CoreConfig value
// instead of reading package-level singletons, the way
// domain.NewDefaultConfiguration() seeds a PlannerConfiguration in the
// teacher repo rather than reaching for ambient settings.
package coreconfig

import (
	"fmt"

	"github.com/aristath/invcore/internal/coreerrors"
)

// IndicatorParams holds the lookback windows for §4.2's indicators.
type IndicatorParams struct {
	SMAShort    int
	SMALong     int
	RSIPeriod   int
	MACDFast    int
	MACDSlow    int
	MACDSignal  int
	BBPeriod    int
	BBStdDev    float64
	StochK      int
	StochD      int
	ATRPeriod   int
	SRWindow    int     // support/resistance extrema window
	SRTolerance float64 // relative clustering tolerance
}

// FusionWeights holds the per-sub-score weights §4.4 combines. Weights are
// renormalized over whichever sub-scores are actually present for a call.
type FusionWeights struct {
	Fundamental float64
	Technical   float64
	Sentiment   float64
	Momentum    float64
	Risk        float64
}

// ActionThresholds holds the composite-score cutoffs §4.5 maps to actions.
// Must be declared in strictly decreasing order.
type ActionThresholds struct {
	StrongBuy float64
	Buy       float64
	Hold      float64
	Sell      float64
}

// PositionSizing holds §4.5's target-weight sizing knobs.
type PositionSizing struct {
	K            float64
	WMax         float64
	MaxPositions int
}

// HorizonBand holds a per-horizon numeric parameter triple (short/medium/long).
type HorizonBand struct {
	Short, Medium, Long float64
}

// RiskBands holds §4.5/§4.6's stop/target sizing configuration.
type RiskBands struct {
	StopATRMultiple HorizonBand
	RewardRisk      HorizonBand
	EntryBand       HorizonBand
	MaxLossFrac     float64
}

// BacktestCosts holds §4.6's transaction cost model.
type BacktestCosts struct {
	CommissionPerTrade float64
	CommissionPct      float64
	SlippagePct        float64
	// StopFirstOnOverlap resolves spec.md §9 Open Question 3: when a
	// single bar's high/low could trigger both the stop and the target,
	// the stop fires first (worst case) when true. Default true.
	StopFirstOnOverlap bool
}

// CoreConfig is the single explicit configuration value threaded through
// every calculator and the backtester (spec.md §6, §9).
type CoreConfig struct {
	Indicators        IndicatorParams
	FusionWeights     FusionWeights
	ActionThresholds  ActionThresholds
	PositionSizing    PositionSizing
	RiskBands         RiskBands
	BacktestCosts     BacktestCosts
	RebalancePeriod   int // trading days between rebalance evaluations
	PeriodsPerYear    int // annualization base (spec.md §9 Open Question 2)
	FundamentalWeight FundamentalWeights
	DCF               DCFParams
	Valuation         ValuationThresholds
	Profitability     ProfitabilityTargets
}

// FundamentalWeights holds §4.3's composite weighting across the four
// fundamental component scores.
type FundamentalWeights struct {
	Valuation     float64
	Health        float64
	Profitability float64
	Growth        float64
	GrowthK       float64 // saturating constant k in g/(g+k)
}

// DCFParams holds §4.3's discounted cash flow projection knobs.
type DCFParams struct {
	ProjectionYears int
	TerminalGrowth  float64
	Discount        float64
}

// ValuationThresholds holds the reference levels §4.3's valuation score
// compares P/E, PEG, P/B, and EV/EBITDA against. Each metric is scored by
// a saturating curve threshold/(value+threshold), so a value at the
// threshold scores 0.5.
type ValuationThresholds struct {
	PE       float64
	PEG      float64
	PB       float64
	EVEBITDA float64
}

// ProfitabilityTargets holds §4.3's ROE/ROA/ROIC reference targets; a
// value at the target scores 1.0 (capped).
type ProfitabilityTargets struct {
	ROE  float64
	ROA  float64
	ROIC float64
}

// Default returns the configuration spec.md §6 enumerates as defaults.
func Default() *CoreConfig {
	return &CoreConfig{
		Indicators: IndicatorParams{
			SMAShort: 20, SMALong: 50,
			RSIPeriod:  14,
			MACDFast:   12, MACDSlow: 26, MACDSignal: 9,
			BBPeriod: 20, BBStdDev: 2.0,
			StochK: 14, StochD: 3,
			ATRPeriod:   14,
			SRWindow:    10,
			SRTolerance: 0.01,
		},
		FusionWeights: FusionWeights{
			Fundamental: 0.40,
			Technical:   0.20,
			Sentiment:   0.15,
			Momentum:    0.15,
			Risk:        0.10,
		},
		ActionThresholds: ActionThresholds{
			StrongBuy: 0.80,
			Buy:       0.60,
			Hold:      0.40,
			Sell:      0.20,
		},
		PositionSizing: PositionSizing{
			K:            0.4,
			WMax:         0.10,
			MaxPositions: 20,
		},
		RiskBands: RiskBands{
			StopATRMultiple: HorizonBand{Short: 2, Medium: 3, Long: 4},
			RewardRisk:      HorizonBand{Short: 2, Medium: 3, Long: 4},
			EntryBand:       HorizonBand{Short: 0.01, Medium: 0.03, Long: 0.05},
			MaxLossFrac:     0.15,
		},
		BacktestCosts: BacktestCosts{
			CommissionPerTrade: 2.0,
			CommissionPct:      0.002,
			SlippagePct:        0.0005,
			StopFirstOnOverlap: true,
		},
		RebalancePeriod: 21,
		PeriodsPerYear:  252,
		FundamentalWeight: FundamentalWeights{
			Valuation: 0.35, Health: 0.25, Profitability: 0.20, Growth: 0.20,
			GrowthK: 0.10,
		},
		DCF: DCFParams{
			ProjectionYears: 5,
			TerminalGrowth:  0.02,
			Discount:        0.09,
		},
		Valuation: ValuationThresholds{
			PE: 15.0, PEG: 1.0, PB: 3.0, EVEBITDA: 10.0,
		},
		Profitability: ProfitabilityTargets{
			ROE: 0.15, ROA: 0.08, ROIC: 0.12,
		},
	}
}

// Validate checks the invariants spec.md §7 assigns to ConfigurationError:
// fusion weights summing to a positive value, and threshold ordering.
func (c *CoreConfig) Validate() error {
	w := c.FusionWeights
	sum := w.Fundamental + w.Technical + w.Sentiment + w.Momentum + w.Risk
	if sum <= 0 {
		return &coreerrors.ConfigurationError{
			Field:  "FusionWeights",
			Reason: fmt.Sprintf("weights must sum to a positive value, got %v", sum),
		}
	}

	t := c.ActionThresholds
	if !(t.StrongBuy > t.Buy && t.Buy > t.Hold && t.Hold > t.Sell) {
		return &coreerrors.ConfigurationError{
			Field:  "ActionThresholds",
			Reason: fmt.Sprintf("thresholds must be strictly decreasing: strong_buy=%v buy=%v hold=%v sell=%v", t.StrongBuy, t.Buy, t.Hold, t.Sell),
		}
	}

	if c.PositionSizing.WMax <= 0 || c.PositionSizing.WMax > 1 {
		return &coreerrors.ConfigurationError{
			Field:  "PositionSizing.WMax",
			Reason: "must be in (0, 1]",
		}
	}

	if c.PeriodsPerYear <= 0 {
		return &coreerrors.ConfigurationError{
			Field:  "PeriodsPerYear",
			Reason: "must be positive",
		}
	}

	return nil
}
