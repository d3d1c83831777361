package backtest

import (
	"github.com/aristath/invcore/internal/coreconfig"
	"github.com/shopspring/decimal"
)

// costModel wraps spec.md §4.6's transaction cost model (fixed
// per-trade commission plus a percentage, and a slippage percentage
// applied against the execution price in the adverse direction).
type costModel struct {
	perTrade    decimal.Decimal
	pct         decimal.Decimal
	slippagePct float64
}

func newCostModel(c coreconfig.BacktestCosts) costModel {
	return costModel{
		perTrade:    decimal.NewFromFloat(c.CommissionPerTrade),
		pct:         decimal.NewFromFloat(c.CommissionPct),
		slippagePct: c.SlippagePct,
	}
}

func (c costModel) commission(notional decimal.Decimal) decimal.Decimal {
	return c.perTrade.Add(notional.Mul(c.pct))
}

// buyPrice applies slippage against a buyer: execution is worse (higher)
// than the quoted price.
func (c costModel) buyPrice(quote float64) float64 {
	return quote * (1 + c.slippagePct)
}

// sellPrice applies slippage against a seller: execution is worse
// (lower) than the quoted price.
func (c costModel) sellPrice(quote float64) float64 {
	return quote * (1 - c.slippagePct)
}
