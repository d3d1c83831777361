// Package series implements the leaf primitives of spec.md §4.1: bars,
// the Series type, and the pure return/rolling/volatility/drawdown/
// correlation operations every other core package builds on.
//
// Determinism requirement (spec.md §4.1): given identical inputs, every
// operation here produces bit-identical output across runs — summation
// order is fixed and no reduction is parallelized.
package series

import (
	"time"

	"github.com/aristath/invcore/internal/coreerrors"
)

// Bar is one OHLCV record for a symbol on one trading day.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Validate checks the invariants spec.md §3 assigns to Bar:
// low <= {open, close} <= high, volume >= 0.
func (b Bar) Validate() error {
	if b.Low > b.Open || b.Open > b.High {
		return &coreerrors.InvalidInput{Field: "open", Reason: "must satisfy low <= open <= high"}
	}
	if b.Low > b.Close || b.Close > b.High {
		return &coreerrors.InvalidInput{Field: "close", Reason: "must satisfy low <= close <= high"}
	}
	if b.Volume < 0 {
		return &coreerrors.InvalidInput{Field: "volume", Reason: "must be >= 0"}
	}
	for name, v := range map[string]float64{"open": b.Open, "high": b.High, "low": b.Low, "close": b.Close, "volume": b.Volume} {
		if v != v { // NaN check without importing math for a single comparison
			return &coreerrors.InvalidInput{Field: name, Reason: "must not be NaN"}
		}
	}
	return nil
}

// Series is an ordered sequence of Bar for a single symbol and currency:
// at most one bar per trading day, strictly increasing timestamps, no
// gaps inside the covered range.
type Series struct {
	Symbol   string
	Currency string
	Bars     []Bar
}

// Validate checks the Series-level invariants of spec.md §3: strictly
// increasing timestamps (which also rules out duplicate days), plus each
// bar's own invariants.
func (s Series) Validate() error {
	for i, b := range s.Bars {
		if err := b.Validate(); err != nil {
			return err
		}
		if i > 0 && !s.Bars[i-1].Timestamp.Before(b.Timestamp) {
			return &coreerrors.InvalidInput{
				Field:  "timestamp",
				Reason: "bars must be strictly increasing in time",
			}
		}
	}
	return nil
}

// Closes returns the close prices in series order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high prices in series order.
func (s Series) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Lows returns the low prices in series order.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

// Volumes returns the volumes in series order.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Volume
	}
	return out
}

// Truncate returns the prefix of the series with timestamps <= at. Used to
// prove the no-look-ahead property (spec.md §8.5): recomputing against a
// truncated series must reproduce the equity curve up to that date.
func (s Series) Truncate(at time.Time) Series {
	cut := len(s.Bars)
	for i, b := range s.Bars {
		if b.Timestamp.After(at) {
			cut = i
			break
		}
	}
	return Series{Symbol: s.Symbol, Currency: s.Currency, Bars: s.Bars[:cut]}
}
