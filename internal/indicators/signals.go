package indicators

import "github.com/aristath/invcore/internal/optional"

// RSISignal maps an RSI reading to a discrete signal per spec.md §4.2:
// <=20 strong_buy, <=30 buy, >=80 strong_sell, >=70 sell, else hold.
func RSISignal(rsi optional.Float64) Signal {
	v, ok := rsi.Get()
	if !ok {
		return Hold
	}
	switch {
	case v <= 20:
		return StrongBuy
	case v <= 30:
		return Buy
	case v >= 80:
		return StrongSell
	case v >= 70:
		return Sell
	default:
		return Hold
	}
}

// MACDSignal detects a signal-line cross between the previous and current
// bar: line crossing above signal is a buy (strong if the histogram is
// accelerating, i.e. growing in magnitude vs the prior bar), crossing
// below is a sell. No cross is hold.
func MACDSignal(prevLine, prevSig, curLine, curSig, prevHist, curHist optional.Float64) Signal {
	pl, plok := prevLine.Get()
	ps, psok := prevSig.Get()
	cl, clok := curLine.Get()
	cs, csok := curSig.Get()
	if !plok || !psok || !clok || !csok {
		return Hold
	}

	crossedUp := pl <= ps && cl > cs
	crossedDown := pl >= ps && cl < cs

	accelerating := false
	if ph, ok := prevHist.Get(); ok {
		if ch, ok2 := curHist.Get(); ok2 {
			accelerating = abs(ch) > abs(ph)
		}
	}

	switch {
	case crossedUp && accelerating:
		return StrongBuy
	case crossedUp:
		return Buy
	case crossedDown && accelerating:
		return StrongSell
	case crossedDown:
		return Sell
	default:
		return Hold
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// BollingerSignal maps close-vs-band position to a signal: below the
// lower band is a buy, above the upper band is a sell.
func BollingerSignal(close float64, upper, lower optional.Float64) Signal {
	u, uok := upper.Get()
	l, lok := lower.Get()
	if !uok || !lok {
		return Hold
	}
	switch {
	case close < l:
		return Buy
	case close > u:
		return Sell
	default:
		return Hold
	}
}

// StochasticSignal maps %K to a signal: <20 buy, >80 sell.
func StochasticSignal(k optional.Float64) Signal {
	v, ok := k.Get()
	if !ok {
		return Hold
	}
	switch {
	case v < 20:
		return Buy
	case v > 80:
		return Sell
	default:
		return Hold
	}
}

// MACrossSignal compares a short and long moving average: short above
// long is a bullish cross (buy), short below long is bearish (sell).
func MACrossSignal(short, long optional.Float64) Signal {
	s, sok := short.Get()
	l, lok := long.Get()
	if !sok || !lok {
		return Hold
	}
	switch {
	case s > l:
		return Buy
	case s < l:
		return Sell
	default:
		return Hold
	}
}

// buyLeaning and sellLeaning classify a signal for the technical
// sub-score's fraction computation.
func buyLeaning(s Signal) bool  { return s == Buy || s == StrongBuy }
func sellLeaning(s Signal) bool { return s == Sell || s == StrongSell }

// TechnicalScore computes spec.md §4.2's technical sub-score: the
// fraction of buy-leaning indicators minus sell-leaning, rescaled to
// [0,1] via 0.5 + 0.5*(buy-sell)/total. An empty signal set scores 0.5
// (neutral) rather than dividing by zero.
func TechnicalScore(signals []Signal) float64 {
	if len(signals) == 0 {
		return 0.5
	}
	buy, sell := 0, 0
	for _, s := range signals {
		if buyLeaning(s) {
			buy++
		} else if sellLeaning(s) {
			sell++
		}
	}
	return 0.5 + 0.5*float64(buy-sell)/float64(len(signals))
}

// OverallSignal resolves spec.md §4.2's declared tie-break order — MACD >
// RSI > Bollinger > Stochastic > MA-cross — into a single overall
// discrete signal. It returns the first non-hold signal found when
// walking the
// named signals in priority order (MACD, RSI, Bollinger, Stochastic,
// MACross expected as keys); hold if all are neutral or missing.
func OverallSignal(macd, rsi, boll, stoch, macross Signal) Signal {
	for _, s := range []Signal{macd, rsi, boll, stoch, macross} {
		if s != Hold {
			return s
		}
	}
	return Hold
}
