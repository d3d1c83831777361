// Package ports declares the narrow external collaborators the investment
// core depends on (spec.md §6). Surrounding application code adapts HTTP,
// persistence, and live market feeds to these interfaces; the core itself
// never reaches past them. Modeled on the teacher's narrow-interface style
// in internal/domain/interfaces.go (BrokerClient, CurrencyExchangeServiceInterface):
// small, verb-named methods, no embedding beyond what each caller needs.
package ports

import (
	"context"
	"time"

	"github.com/aristath/invcore/internal/fundamentals"
	"github.com/aristath/invcore/internal/series"
)

// PriceSource supplies historical OHLCV bars for a symbol over a date
// range. Implementations must return a series that is monotonic in time,
// gap-free over business days, and already currency-normalized. When the
// requested range cannot be covered, implementations return a
// *coreerrors.DataUnavailable error.
type PriceSource interface {
	GetSeries(ctx context.Context, symbol string, from, to time.Time) (series.Series, error)
}

// FundamentalSource supplies a point-in-time fundamental snapshot. Any
// field of the returned snapshot may be unset; absence is represented by
// the Optional wrapper, never by a zero value standing in for "missing".
type FundamentalSource interface {
	GetSnapshot(ctx context.Context, symbol string, asOf time.Time) (fundamentals.Snapshot, error)
}

// SentimentSource is an optional external signal. Its absence (a nil
// SentimentSource, or an implementation returning a
// *coreerrors.DataUnavailable error) causes §4.4's fusion layer to
// renormalize without it. Any other error excludes the symbol from that
// day's backtest evaluation and is recorded as an advisory.
type SentimentSource interface {
	GetScore(ctx context.Context, symbol string, asOf time.Time) (value float64, confidence float64, err error)
}

// Calendar enumerates trading days over a range. backtest.Run does not take
// a Calendar: its per-day loop follows the benchmark series' bars.
type Calendar interface {
	TradingDays(from, to time.Time) []time.Time
}

// Clock supplies a notion of "now" to a driver. The core itself never
// reads the real wall clock, and backtest.Run takes no Clock: its dates
// come from the input bars.
type Clock interface {
	Now() time.Time
}
