package indicators

import "github.com/aristath/invcore/internal/coreconfig"

// Compute builds a full Bundle from OHLCV series, using the lookbacks in
// cfg.Indicators. This is the entry point the fusion and recommendation
// layers call for a symbol's technical picture.
func Compute(highs, lows, closes, volumes []float64, cfg coreconfig.IndicatorParams) Bundle {
	b := Bundle{}
	b.SMAShort = SMA(closes, cfg.SMAShort)
	b.SMALong = SMA(closes, cfg.SMALong)
	b.EMALong = EMA(closes, 200)
	b.RSI = RSI(closes, cfg.RSIPeriod)
	b.MACDLine, b.MACDSignal, b.MACDHist = MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	b.BollingerUpper, b.BollingerMiddle, b.BollingerLower = Bollinger(closes, cfg.BBPeriod, cfg.BBStdDev)
	b.StochK, b.StochD = Stochastic(highs, lows, closes, cfg.StochK, cfg.StochD)
	b.ATR = ATR(highs, lows, closes, cfg.ATRPeriod)
	b.OBV = OBV(closes, volumes)
	b.VWAP = VWAP(highs, lows, closes, volumes)
	b.SupportLevels, b.ResistanceLevels = SupportResistance(closes, cfg.SRWindow, cfg.SRTolerance)

	n := len(closes)
	signals := make(map[string]Signal, 5)
	if n > 0 {
		signals["rsi"] = RSISignal(Latest(b.RSI))
		signals["bollinger"] = BollingerSignal(closes[n-1], Latest(b.BollingerUpper), Latest(b.BollingerLower))
		signals["stochastic"] = StochasticSignal(Latest(b.StochK))
		signals["ma_cross"] = MACrossSignal(Latest(b.SMAShort), Latest(b.SMALong))
	}
	if n > 1 {
		signals["macd"] = MACDSignal(
			b.MACDLine[n-2], b.MACDSignal[n-2],
			b.MACDLine[n-1], b.MACDSignal[n-1],
			b.MACDHist[n-2], b.MACDHist[n-1],
		)
	} else {
		signals["macd"] = Hold
	}
	b.Signals = signals
	return b
}

// TechnicalSubScore reduces a Bundle's discrete signals to spec.md
// §4.2's [0,1] technical sub-score.
func (b Bundle) TechnicalSubScore() float64 {
	signals := make([]Signal, 0, len(b.Signals))
	for _, s := range b.Signals {
		signals = append(signals, s)
	}
	return TechnicalScore(signals)
}

// OverallSignal resolves the bundle's per-indicator signals into one
// discrete overall signal using the declared MACD>RSI>Bollinger>
// Stochastic>MA-cross priority.
func (b Bundle) OverallSignal() Signal {
	return OverallSignal(b.Signals["macd"], b.Signals["rsi"], b.Signals["bollinger"], b.Signals["stochastic"], b.Signals["ma_cross"])
}
