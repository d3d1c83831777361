package indicators

import (
	"github.com/markcheno/go-talib"

	"github.com/aristath/invcore/internal/optional"
)

// Bollinger computes the 20-period (configurable) Bollinger Bands:
// mid = SMA(n), upper/lower = mid +/- k*stdev(n). Grounded on
// formulas.CalculateBollingerBands, which delegates to talib.BBands with
// MA type 0 (SMA). Warm-up is n.
func Bollinger(closes []float64, n int, k float64) (upper, mid, lower []optional.Float64) {
	if n <= 0 || len(closes) < n {
		empty := make([]optional.Float64, len(closes))
		return empty, empty, empty
	}
	rawUpper, rawMid, rawLower := talib.BBands(closes, n, k, k, 0)
	return mask(rawUpper, n-1), mask(rawMid, n-1), mask(rawLower, n-1)
}

// BollingerPosition returns where the latest close sits within the bands,
// 0.0 at the lower band and 1.0 at the upper band, clamped. Mirrors
// formulas.CalculateBollingerPosition's band-width-zero fallback to 0.5.
func BollingerPosition(close float64, upper, lower optional.Float64) optional.Float64 {
	u, uok := upper.Get()
	l, lok := lower.Get()
	if !uok || !lok {
		return optional.Float64{}
	}
	width := u - l
	if width == 0 {
		return optional.Of(0.5)
	}
	pos := (close - l) / width
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return optional.Of(pos)
}
