package indicators

import (
	"github.com/markcheno/go-talib"

	"github.com/aristath/invcore/internal/optional"
)

// RSI computes Wilder's Relative Strength Index over `period` steps
// (typically 14). Warm-up is `period`: RSI needs period+1 closes to
// produce its first defined value, at index `period`.
func RSI(closes []float64, period int) []optional.Float64 {
	if period <= 0 || len(closes) < period+1 {
		return make([]optional.Float64, len(closes))
	}
	raw := talib.Rsi(closes, period)
	return mask(raw, period)
}
