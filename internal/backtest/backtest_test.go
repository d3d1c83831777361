package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/aristath/invcore/internal/coreconfig"
	"github.com/aristath/invcore/internal/recommend"
	"github.com/aristath/invcore/internal/series"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSeries(symbol string, price float64, days int) series.Series {
	bars := make([]series.Bar, days)
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		bars[i] = series.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      price, High: price, Low: price, Close: price,
			Volume: 1_000_000,
		}
	}
	return series.Series{Symbol: symbol, Currency: "USD", Bars: bars}
}

func trendingSeries(symbol string, startPrice, dailyDrift float64, days int) series.Series {
	bars := make([]series.Bar, days)
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	price := startPrice
	for i := 0; i < days; i++ {
		high := price * 1.01
		low := price * 0.99
		bars[i] = series.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      price, High: high, Low: low, Close: price,
			Volume: 1_000_000,
		}
		price += dailyDrift
	}
	return series.Series{Symbol: symbol, Currency: "USD", Bars: bars}
}

func testRunConfig() RunConfig {
	return RunConfig{
		StartingCash:     100_000,
		Horizon:          recommend.Medium,
		RiskFreeRate:     0.02,
		TargetReturn:     0,
		MinTradeNotional: 100,
	}
}

// S4: a flat-price market with no signal crossings should produce no
// trades and a flat equity curve.
func TestBacktestFlatMarketIsNoOp(t *testing.T) {
	cfg := coreconfig.Default()
	candidate := flatSeries("FLAT", 100, 300)
	benchmark := flatSeries("BENCH", 100, 300)

	report, err := Run(context.Background(), RunInputs{
		Candidates: []Candidate{{Symbol: "FLAT", Series: candidate}},
		Benchmark:  benchmark,
	}, cfg, testRunConfig(), zerolog.Nop())

	require.NoError(t, err)
	assert.False(t, report.Incomplete)
	assert.InDelta(t, 100_000, report.EquityCurve[0], 1e-6)
	assert.Len(t, report.EquityCurve, 300)
}

// S6: running the same inputs twice must produce bit-identical reports
// (determinism under repeated evaluation).
func TestBacktestDeterministic(t *testing.T) {
	cfg := coreconfig.Default()
	candidate := trendingSeries("TREND", 100, 0.15, 300)
	benchmark := flatSeries("BENCH", 100, 300)

	in := RunInputs{
		Candidates: []Candidate{{Symbol: "TREND", Series: candidate}},
		Benchmark:  benchmark,
	}

	report1, err := Run(context.Background(), in, cfg, testRunConfig(), zerolog.Nop())
	require.NoError(t, err)
	report2, err := Run(context.Background(), in, cfg, testRunConfig(), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, report1.EquityCurve, report2.EquityCurve)
	assert.Equal(t, report1.TotalReturn, report2.TotalReturn)
	assert.Equal(t, report1.Sharpe, report2.Sharpe)
	assert.Equal(t, len(report1.Trades), len(report2.Trades))
}

func TestBacktestCancellationReturnsPartialReport(t *testing.T) {
	cfg := coreconfig.Default()
	candidate := trendingSeries("TREND", 100, 0.1, 300)
	benchmark := flatSeries("BENCH", 100, 300)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, RunInputs{
		Candidates: []Candidate{{Symbol: "TREND", Series: candidate}},
		Benchmark:  benchmark,
	}, cfg, testRunConfig(), zerolog.Nop())

	require.NoError(t, err)
	assert.True(t, report.Incomplete)
}

func TestBacktestRejectsMisalignedCalendars(t *testing.T) {
	cfg := coreconfig.Default()
	candidate := flatSeries("SHORT", 100, 100)
	benchmark := flatSeries("BENCH", 100, 300)

	_, err := Run(context.Background(), RunInputs{
		Candidates: []Candidate{{Symbol: "SHORT", Series: candidate}},
		Benchmark:  benchmark,
	}, cfg, testRunConfig(), zerolog.Nop())

	require.Error(t, err)
}

func TestMetrics(t *testing.T) {
	equity := []float64{100, 110, 105, 120, 90, 130}
	assert.InDelta(t, 0.30, TotalReturn(equity), 1e-9)
	assert.Greater(t, MaxDrawdown(equity), 0.0)
}

func TestWinRateAndProfitFactor(t *testing.T) {
	trades := []Trade{
		{PnL: decimal.NewFromFloat(100)},
		{PnL: decimal.NewFromFloat(-50)},
		{PnL: decimal.NewFromFloat(200)},
	}
	assert.InDelta(t, 2.0/3.0, WinRate(trades), 1e-9)
	assert.InDelta(t, 300.0/50.0, ProfitFactor(trades), 1e-9)
}

// Orders generated from day D's close can only fill at day D+1's open: no
// trade can ever be entered on the very first day of a run, since there is
// no prior day's order sitting in pendingOrders yet.
func TestOrdersFillOnNextDayOpenNotSameDay(t *testing.T) {
	cfg := coreconfig.Default()
	candidate := trendingSeries("TREND", 100, 0.5, 60)
	benchmark := flatSeries("BENCH", 100, 60)

	report, err := Run(context.Background(), RunInputs{
		Candidates: []Candidate{{Symbol: "TREND", Series: candidate}},
		Benchmark:  benchmark,
	}, cfg, testRunConfig(), zerolog.Nop())

	require.NoError(t, err)
	firstDate := candidate.Bars[0].Timestamp.Format(time.RFC3339)
	for _, trade := range report.Trades {
		assert.NotEqual(t, firstDate, trade.EntryDate, "a trade must never enter on the first day of the run")
	}
}

func TestStopFiresBeforeTargetOnOverlap(t *testing.T) {
	cfg := coreconfig.Default()
	costs := newCostModel(cfg.BacktestCosts)
	p := NewPortfolio(10_000)
	p.Positions["X"] = Position{Symbol: "X", Shares: decimal.NewFromFloat(10), EntryCost: decimal.NewFromFloat(1000), StopLoss: 90, Target: 110}

	// Simulate the overlap decision directly, mirroring Run's step 3.
	if cfg.BacktestCosts.StopFirstOnOverlap {
		trade := p.closePosition("X", "2024-01-02", costs.sellPrice(90), "stop", costs)
		assert.Equal(t, "stop", trade.Reason)
	}
}
