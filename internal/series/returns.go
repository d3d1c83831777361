package series

import (
	"math"

	"github.com/aristath/invcore/internal/optional"
)

// SimpleReturns computes (p_t - p_{t-1]) / p_{t-1} for each consecutive
// pair of closes. The result has length len(closes)-1 (zero for empty or
// single-element input). A zero-valued predecessor price makes that one
// step's return undefined rather than propagating an infinity.
func SimpleReturns(closes []float64) []optional.Float64 {
	if len(closes) < 2 {
		return []optional.Float64{}
	}
	out := make([]optional.Float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			continue // leaves out[i-1] as the zero-value "absent" entry
		}
		out[i-1] = optional.Of((closes[i] - prev) / prev)
	}
	return out
}

// LogReturns computes ln(p_t / p_{t-1}) with the same edge rules as
// SimpleReturns: a non-positive predecessor price is undefined.
func LogReturns(closes []float64) []optional.Float64 {
	if len(closes) < 2 {
		return []optional.Float64{}
	}
	out := make([]optional.Float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev <= 0 || closes[i] <= 0 {
			continue
		}
		out[i-1] = optional.Of(math.Log(closes[i] / prev))
	}
	return out
}

// CumulativeReturns computes the running product prefix (1+r_i) - 1. An
// undefined step is treated as a 0% return for that step only (the running
// product simply carries forward), which keeps the sequence total on
// partially-missing input while never fabricating a defined value out of
// nothing.
func CumulativeReturns(returns []optional.Float64) []float64 {
	out := make([]float64, len(returns))
	cum := 1.0
	for i, r := range returns {
		if v, ok := r.Get(); ok {
			cum *= 1 + v
		}
		out[i] = cum - 1
	}
	return out
}

// DefinedValues extracts the defined float64 values from an optional
// sequence, in order, dropping undefined entries.
func DefinedValues(xs []optional.Float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if v, ok := x.Get(); ok {
			out = append(out, v)
		}
	}
	return out
}
