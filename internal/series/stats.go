package series

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/invcore/internal/optional"
)

// Volatility is the sample standard deviation of returns, annualized by
// sqrt(periodsPerYear) when annualize is true. Grounded on
// formulas.AnnualizedVolatility (stat.StdDev * sqrt(252)) from the
// teacher's sibling checkout. Fewer than 2 samples is undefined.
func Volatility(returns []float64, annualize bool, periodsPerYear int) optional.Float64 {
	if len(returns) < 2 {
		return optional.Float64{}
	}
	sd := stat.StdDev(returns, nil)
	if annualize {
		sd *= math.Sqrt(float64(periodsPerYear))
	}
	return optional.Of(sd)
}

// MaxDrawdown returns min_t(equity_t / running_max_t - 1), which is 0 for
// a monotone-nondecreasing equity curve and otherwise negative. Bounded to
// [-1, 0] by construction since equity_t <= running_max_t always.
func MaxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}
	runningMax := equity[0]
	worst := 0.0
	for _, v := range equity {
		if v > runningMax {
			runningMax = v
		}
		if runningMax == 0 {
			continue
		}
		dd := v/runningMax - 1
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// alignDefined returns the subsequence of indices where both a and b are
// defined, preserving order, for correlation/beta computation on
// partially-missing paired series.
func alignDefined(a, b []optional.Float64) (xs, ys []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	xs = make([]float64, 0, n)
	ys = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		av, aok := a[i].Get()
		bv, bok := b[i].Get()
		if aok && bok {
			xs = append(xs, av)
			ys = append(ys, bv)
		}
	}
	return xs, ys
}

// Correlation computes the Pearson correlation coefficient of two
// optional-valued return series, aligned on mutually-defined pairs. Fewer
// than 2 aligned pairs is undefined.
func Correlation(a, b []optional.Float64) optional.Float64 {
	xs, ys := alignDefined(a, b)
	if len(xs) < 2 {
		return optional.Float64{}
	}
	return optional.Of(stat.Correlation(xs, ys, nil))
}

// Beta computes the OLS slope of a (e.g. an asset's returns) regressed on
// b (the benchmark's returns), i.e. cov(a,b)/var(b). Alpha is the
// intercept: mean(a) - beta*mean(b). Fewer than 2 aligned pairs, or a
// benchmark with zero variance, is undefined.
func Beta(a, b []optional.Float64) (beta, alpha optional.Float64) {
	xs, ys := alignDefined(a, b)
	if len(xs) < 2 {
		return optional.Float64{}, optional.Float64{}
	}
	varB := stat.Variance(ys, nil)
	if varB == 0 {
		return optional.Float64{}, optional.Float64{}
	}
	covAB := stat.Covariance(xs, ys, nil)
	betaVal := covAB / varB
	alphaVal := stat.Mean(xs, nil) - betaVal*stat.Mean(ys, nil)
	return optional.Of(betaVal), optional.Of(alphaVal)
}
