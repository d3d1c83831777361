package backtest

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// dailyReturns converts an equity curve into simple daily returns,
// matching the teacher's formulas.CalculateReturns convention (a curve
// of length n yields n-1 returns).
func dailyReturns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}
	out := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1]
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (equity[i]-prev)/prev)
	}
	return out
}

// TotalReturn is the fractional gain from the first to the last equity
// snapshot.
func TotalReturn(equity []float64) float64 {
	if len(equity) < 2 || equity[0] == 0 {
		return 0
	}
	return (equity[len(equity)-1] - equity[0]) / equity[0]
}

// CAGR annualizes TotalReturn over the realized number of trading days,
// using periodsPerYear as the trading-day-to-year conversion (spec.md §9
// Open Question 2, default 252).
func CAGR(equity []float64, periodsPerYear int) float64 {
	if len(equity) < 2 || equity[0] <= 0 || periodsPerYear <= 0 {
		return 0
	}
	years := float64(len(equity)-1) / float64(periodsPerYear)
	if years <= 0 {
		return 0
	}
	ratio := equity[len(equity)-1] / equity[0]
	if ratio <= 0 {
		return -1
	}
	return math.Pow(ratio, 1/years) - 1
}

// AnnualizedVolatility computes the standard deviation of daily returns
// scaled by sqrt(periodsPerYear), mirroring the teacher's
// formulas.AnnualizedVolatility.
func AnnualizedVolatility(returns []float64, periodsPerYear int) float64 {
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(float64(periodsPerYear))
}

// Sharpe computes spec.md §4.6's Sharpe ratio: annualized mean excess
// return over annualized standard deviation of returns. Grounded on
// formulas.CalculateSharpeRatio.
func Sharpe(returns []float64, riskFreeRate float64, periodsPerYear int) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := stat.Mean(returns, nil)
	sd := stat.StdDev(returns, nil)
	if sd == 0 {
		return 0
	}
	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	return (mean - periodicRiskFree) / sd * math.Sqrt(float64(periodsPerYear))
}

// Sortino computes spec.md §4.6's Sortino ratio using downside deviation
// below the periodic minimum acceptable return, grounded on
// formulas.CalculateSortinoRatio.
func Sortino(returns []float64, riskFreeRate, targetReturn float64, periodsPerYear int) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := stat.Mean(returns, nil)
	periodicMAR := targetReturn / float64(periodsPerYear)

	sumSq, count := 0.0, 0
	for _, r := range returns {
		if r < periodicMAR {
			d := r - periodicMAR
			sumSq += d * d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	downsideDev := math.Sqrt(sumSq / float64(count))
	if downsideDev == 0 {
		return 0
	}
	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	return (mean - periodicRiskFree) / downsideDev * math.Sqrt(float64(periodsPerYear))
}

// MaxDrawdown computes the largest peak-to-trough decline over the
// equity curve, as a positive fraction (0.25 = 25% drawdown), mirroring
// formulas.CalculateMaxDrawdown.
func MaxDrawdown(equity []float64) float64 {
	if len(equity) < 2 {
		return 0
	}
	maxDD := 0.0
	peak := equity[0]
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// WinRate and ProfitFactor summarize closed trades: the fraction with
// positive PnL, and the ratio of gross profit to gross loss.
func WinRate(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.PnL.IsPositive() {
			wins++
		}
	}
	return float64(wins) / float64(len(trades))
}

func ProfitFactor(trades []Trade) float64 {
	grossProfit, grossLoss := 0.0, 0.0
	for _, t := range trades {
		pnl, _ := t.PnL.Float64()
		if pnl > 0 {
			grossProfit += pnl
		} else {
			grossLoss += -pnl
		}
	}
	if grossLoss == 0 {
		if grossProfit == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return grossProfit / grossLoss
}

// AlphaBeta regresses the strategy's daily returns on the benchmark's via
// OLS, returning (alpha, beta). Undefined (0, 0) when fewer than two
// paired observations are available or the benchmark has zero variance.
func AlphaBeta(strategyReturns, benchmarkReturns []float64) (alpha, beta float64) {
	n := len(strategyReturns)
	if len(benchmarkReturns) < n {
		n = len(benchmarkReturns)
	}
	if n < 2 {
		return 0, 0
	}
	x := benchmarkReturns[:n]
	y := strategyReturns[:n]

	varX := stat.Variance(x, nil)
	if varX == 0 {
		return 0, 0
	}
	alpha, beta = stat.LinearRegression(x, y, nil, false)
	return alpha, beta
}
