package series

import "github.com/aristath/invcore/internal/optional"

// Rolling applies agg to each simple (non-EWMA) window of width `window`
// over seq, emitting undefined for positions before the window fills.
// Position i < window-1 is undefined; position i >= window-1 is
// agg(seq[i-window+1 .. i]).
func Rolling(window int, agg func([]float64) float64, seq []float64) []optional.Float64 {
	out := make([]optional.Float64, len(seq))
	if window <= 0 {
		return out
	}
	for i := range seq {
		if i < window-1 {
			continue
		}
		out[i] = optional.Of(agg(seq[i-window+1 : i+1]))
	}
	return out
}

// Sum returns the sum of xs, in index order (fixed summation order, per
// the package's determinism requirement).
func Sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

// MeanOf returns the arithmetic mean of xs, or 0 for an empty slice.
func MeanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return Sum(xs) / float64(len(xs))
}

// MaxOf returns the maximum of xs. Panics on an empty slice; callers must
// check length first, matching the package's "total on non-empty" rule.
func MaxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// MinOf returns the minimum of xs. Panics on an empty slice.
func MinOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
