package indicators

import (
	"github.com/markcheno/go-talib"

	"github.com/aristath/invcore/internal/optional"
)

// OBV computes On-Balance Volume: a running sum of +/-volume keyed by the
// sign of the day-over-day close change. Warm-up is 1 (the first bar has
// no prior close to compare against, so talib seeds it with that bar's
// volume).
func OBV(closes, volumes []float64) []optional.Float64 {
	if len(closes) == 0 {
		return nil
	}
	raw := talib.Obv(closes, volumes)
	return mask(raw, 0)
}

// VWAP computes the cumulative volume-weighted average price over the
// supplied bars, Sum(typical*volume)/Sum(volume), reset at the start of
// the slice (the caller passes one session's bars). go-talib has no VWAP
// binding, so this is hand-rolled arithmetic — like support/resistance,
// one of the two indicators in this package not delegated to a
// third-party library (see DESIGN.md).
//
// Per spec.md §4.2's zero-volume edge case, a zero-volume bar leaves the
// cumulative VWAP unchanged from the previous bar rather than dividing by
// zero.
func VWAP(highs, lows, closes, volumes []float64) []optional.Float64 {
	n := len(closes)
	out := make([]optional.Float64, n)
	if n == 0 {
		return out
	}
	cumTypicalVol := 0.0
	cumVol := 0.0
	for i := 0; i < n; i++ {
		typical := (highs[i] + lows[i] + closes[i]) / 3
		if volumes[i] > 0 {
			cumTypicalVol += typical * volumes[i]
			cumVol += volumes[i]
		}
		if cumVol == 0 {
			continue // no volume yet this session: undefined, not a fabricated price
		}
		out[i] = optional.Of(cumTypicalVol / cumVol)
	}
	return out
}
