package indicators

import (
	"github.com/markcheno/go-talib"

	"github.com/aristath/invcore/internal/optional"
)

// mask converts a talib output array to an optional series, treating
// positions before `warmup` (0-indexed first-defined position) as
// undefined regardless of what talib left there, per spec.md §4.2's
// per-indicator warm-up column and the "warm-up exactness" property
// (§8.3).
func mask(raw []float64, warmup int) []optional.Float64 {
	out := make([]optional.Float64, len(raw))
	for i, v := range raw {
		if i < warmup || v != v { // skip warm-up and any NaN talib leaves behind (e.g. zero-variance input)
			continue
		}
		out[i] = optional.Of(v)
	}
	return out
}

// SMA computes the simple moving average of length n. Warm-up is n: the
// first defined value is at index n-1.
func SMA(closes []float64, n int) []optional.Float64 {
	if n <= 0 || len(closes) < n {
		return make([]optional.Float64, len(closes))
	}
	raw := talib.Sma(closes, n)
	return mask(raw, n-1)
}

// EMA computes the exponential moving average of length n, seeded from
// SMA(n) at index n-1 per spec.md §4.2. Warm-up is n.
func EMA(closes []float64, n int) []optional.Float64 {
	if n <= 0 || len(closes) < n {
		return make([]optional.Float64, len(closes))
	}
	raw := talib.Ema(closes, n)
	return mask(raw, n-1)
}

// MACD computes the MACD line (EMA_fast - EMA_slow), its signal line
// (EMA_signal of the MACD line), and their difference (the histogram).
// Warm-up is slow+signal, since the signal line needs `signal` EMA
// samples of an already-converged MACD line that itself needs `slow`
// samples; spec.md's table states slow+signal.
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist []optional.Float64) {
	n := len(closes)
	warmup := slow + signal
	if len(closes) < warmup {
		empty := make([]optional.Float64, n)
		return empty, empty, empty
	}
	rawLine, rawSig, rawHist := talib.Macd(closes, fast, slow, signal)
	return mask(rawLine, warmup - 1), mask(rawSig, warmup - 1), mask(rawHist, warmup - 1)
}
