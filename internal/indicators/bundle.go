// Package indicators implements spec.md §4.2: the technical indicator
// battery (SMA/EMA, RSI, MACD, Bollinger, Stochastic, ATR, OBV, VWAP,
// support/resistance) plus their discrete buy/sell/hold signal mappings.
//
// Grounded on the teacher's pkg/formulas package (ema.go, bollinger.go,
// trader-go/pkg/formulas/rsi.go): each indicator delegates its recursive
// or windowed math to github.com/markcheno/go-talib and exposes both a
// full per-day series (for IndicatorBundle) and a "latest" convenience,
// the way CalculateEMA/CalculateBollingerBands return the most recent
// value from a talib-computed array.
package indicators

import "github.com/aristath/invcore/internal/optional"

// Signal is a discrete indicator reading.
type Signal string

const (
	StrongBuy  Signal = "strong_buy"
	Buy        Signal = "buy"
	Hold       Signal = "hold"
	Sell       Signal = "sell"
	StrongSell Signal = "strong_sell"
)

// Bundle holds the per-symbol, per-as-of indicator outputs spec.md §3
// assigns to IndicatorBundle: latest values, full series, and the
// discrete signal for each indicator.
type Bundle struct {
	SMAShort, SMALong       []optional.Float64
	EMALong                 []optional.Float64 // EMA200 of closes (the momentum sub-score uses SMA200, not this)
	RSI                     []optional.Float64
	MACDLine, MACDSignal    []optional.Float64
	MACDHist                []optional.Float64
	BollingerUpper          []optional.Float64
	BollingerMiddle         []optional.Float64
	BollingerLower          []optional.Float64
	StochK, StochD          []optional.Float64
	ATR                     []optional.Float64
	OBV                     []optional.Float64
	VWAP                    []optional.Float64
	SupportLevels           []float64
	ResistanceLevels        []float64
	Signals                 map[string]Signal
}

// Latest returns the last element of an optional series, or the absent
// value when the series is empty.
func Latest(xs []optional.Float64) optional.Float64 {
	if len(xs) == 0 {
		return optional.Float64{}
	}
	return xs[len(xs)-1]
}
