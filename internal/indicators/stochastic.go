package indicators

import (
	"github.com/markcheno/go-talib"

	"github.com/aristath/invcore/internal/optional"
)

// Stochastic computes the fast %K (no additional smoothing) over
// kPeriod, and %D as a simple dPeriod-length average of %K, per spec.md's
// %K = 100*(C-minL)/(maxH-minL), %D = SMA(%K). Calling talib.Stoch with a
// slowK period of 1 and SMA moving-average type yields the raw fast %K as
// "slowK", matching this definition exactly.
func Stochastic(highs, lows, closes []float64, kPeriod, dPeriod int) (k, d []optional.Float64) {
	n := len(closes)
	if kPeriod <= 0 || n < kPeriod {
		empty := make([]optional.Float64, n)
		return empty, empty
	}
	rawK, rawD := talib.Stoch(highs, lows, closes, kPeriod, 1, 0, dPeriod, 0)
	warmup := kPeriod - 1
	return mask(rawK, warmup), mask(rawD, warmup+dPeriod-1)
}
