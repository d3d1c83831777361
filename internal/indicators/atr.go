package indicators

import (
	"github.com/markcheno/go-talib"

	"github.com/aristath/invcore/internal/optional"
)

// ATR computes Wilder's Average True Range over `period` (typically 14).
// Informational per spec.md §4.2 — consumed by the recommendation engine
// for stop-loss sizing, not mapped to its own buy/sell signal.
func ATR(highs, lows, closes []float64, period int) []optional.Float64 {
	n := len(closes)
	if period <= 0 || n < period+1 {
		return make([]optional.Float64, n)
	}
	raw := talib.Atr(highs, lows, closes, period)
	return mask(raw, period)
}
