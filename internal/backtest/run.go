package backtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aristath/invcore/internal/coreconfig"
	"github.com/aristath/invcore/internal/coreerrors"
	"github.com/aristath/invcore/internal/fundamentals"
	"github.com/aristath/invcore/internal/fusion"
	"github.com/aristath/invcore/internal/indicators"
	"github.com/aristath/invcore/internal/ports"
	"github.com/aristath/invcore/internal/recommend"
	"github.com/aristath/invcore/internal/series"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Candidate is one symbol's full price history participating in a run.
type Candidate struct {
	Symbol string
	Series series.Series
}

// RunConfig holds the knobs spec.md §4.6 lists beyond CoreConfig's
// indicator/fusion/sizing parameters: starting capital and the
// backtest-specific return assumptions.
type RunConfig struct {
	StartingCash     float64
	Horizon          recommend.Horizon
	RiskFreeRate     float64
	TargetReturn     float64
	MinTradeNotional float64
}

// RunInputs bundles everything one Run call needs. Candidates and
// Benchmark must share the same bar count and aligned timestamps index
// for index (the core treats this as the trading calendar for the run;
// misaligned input is an InvalidInput error).
type RunInputs struct {
	Candidates   []Candidate
	Benchmark    series.Series
	Fundamentals ports.FundamentalSource // optional
	Sentiment    ports.SentimentSource   // optional
}

func validateAligned(in RunInputs) error {
	if len(in.Candidates) == 0 {
		return &coreerrors.InvalidInput{Field: "Candidates", Reason: "at least one candidate is required"}
	}
	n := len(in.Benchmark.Bars)
	for _, c := range in.Candidates {
		if len(c.Series.Bars) != n {
			return &coreerrors.InvalidInput{
				Field:  "Candidates",
				Reason: fmt.Sprintf("symbol %s has %d bars, benchmark has %d; all series must share one trading calendar", c.Symbol, len(c.Series.Bars), n),
			}
		}
		for i, b := range c.Series.Bars {
			if !b.Timestamp.Equal(in.Benchmark.Bars[i].Timestamp) {
				return &coreerrors.InvalidInput{
					Field:  "Candidates",
					Reason: fmt.Sprintf("symbol %s bar %d is dated %s, benchmark bar is dated %s; all series must share one trading calendar", c.Symbol, i, b.Timestamp.Format(time.RFC3339), in.Benchmark.Bars[i].Timestamp.Format(time.RFC3339)),
				}
			}
		}
	}
	return nil
}

// Run executes spec.md §4.6's per-day event loop over the full calendar
// implied by in.Benchmark, returning a BacktestReport. ctx is checked at
// each bar boundary; cancellation returns the partial report collected so
// far with Incomplete set, per §5's cooperative-cancellation policy.
func Run(ctx context.Context, in RunInputs, cfg *coreconfig.CoreConfig, run RunConfig, log zerolog.Logger) (BacktestReport, error) {
	if err := validateAligned(in); err != nil {
		return BacktestReport{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BacktestReport{}, err
	}

	n := len(in.Benchmark.Bars)
	portfolio := NewPortfolio(run.StartingCash)
	costs := newCostModel(cfg.BacktestCosts)
	states := make(map[string]recommend.Position, len(in.Candidates))
	var pendingOrders []Order
	var pendingRecommendations map[string]recommend.Recommendation
	var advisories []string
	benchmarkEquity := make([]float64, 0, n)

	symbols := make([]string, len(in.Candidates))
	for i, c := range in.Candidates {
		symbols[i] = c.Symbol
		states[c.Symbol] = recommend.PositionFlat
	}
	sort.Strings(symbols)

	bySymbol := make(map[string]series.Series, len(in.Candidates))
	for _, c := range in.Candidates {
		bySymbol[c.Symbol] = c.Series
	}

	for day := 0; day < n; day++ {
		select {
		case <-ctx.Done():
			log.Debug().Int("day", day).Int("of", n).Msg("backtest canceled, returning partial report")
			report := buildReport(portfolio, benchmarkEquity, run.RiskFreeRate, run.TargetReturn, cfg.PeriodsPerYear, advisories, true)
			return report, nil
		default:
		}

		date := in.Benchmark.Bars[day].Timestamp
		dateStr := date.Format(time.RFC3339)

		closes := make(map[string]float64, len(symbols))
		opens := make(map[string]float64, len(symbols))
		highs := make(map[string]float64, len(symbols))
		lows := make(map[string]float64, len(symbols))
		for _, symbol := range symbols {
			bar := bySymbol[symbol].Bars[day]
			closes[symbol] = bar.Close
			opens[symbol] = bar.Open
			highs[symbol] = bar.High
			lows[symbol] = bar.Low
		}
		benchmarkEquity = append(benchmarkEquity, in.Benchmark.Bars[day].Close)

		// Step 1: execute orders staged on a prior day's rebalance at
		// today's open, subject to the cash floor (step 6). These orders
		// were generated from a strictly earlier day's close, so this is
		// the T+1 fill spec.md §4.6 step 5 requires; they must run before
		// anything else touches today's prices.
		if len(pendingOrders) > 0 {
			executeOrders(portfolio, pendingOrders, opens, costs, dateStr, pendingRecommendations)
			pendingOrders = nil
			pendingRecommendations = nil
		}

		// Step 2: mark-to-market and append the day's equity snapshot.
		portfolio.MarkToMarket(dateStr, closes)

		// Step 3: evaluate exits against the day's high/low. Stop fires
		// first on a same-bar overlap when configured (the default,
		// worst-case assumption).
		for _, symbol := range symbols {
			pos, open := portfolio.Positions[symbol]
			if !open {
				continue
			}
			high, low := highs[symbol], lows[symbol]
			stopHit := pos.StopLoss > 0 && low <= pos.StopLoss
			targetHit := pos.Target > 0 && high >= pos.Target

			switch {
			case stopHit && targetHit:
				if cfg.BacktestCosts.StopFirstOnOverlap {
					portfolio.closePosition(symbol, dateStr, costs.sellPrice(pos.StopLoss), "stop", costs)
				} else {
					portfolio.closePosition(symbol, dateStr, costs.sellPrice(pos.Target), "target", costs)
				}
				states[symbol] = recommend.PositionFlat
			case stopHit:
				portfolio.closePosition(symbol, dateStr, costs.sellPrice(pos.StopLoss), "stop", costs)
				states[symbol] = recommend.PositionFlat
			case targetHit:
				portfolio.closePosition(symbol, dateStr, costs.sellPrice(pos.Target), "target", costs)
				states[symbol] = recommend.PositionFlat
			}
		}

		// Step 4: recommendation engine per candidate, using only data up
		// to and including today's close (no look-ahead).
		recommendations := make(map[string]recommend.Recommendation, len(symbols))
		for _, symbol := range symbols {
			full := bySymbol[symbol]
			truncated := full.Truncate(date)
			if len(truncated.Bars) == 0 {
				advisories = append(advisories, fmt.Sprintf("%s: no data available through %s, excluded", symbol, dateStr))
				continue
			}
			rec, score, err := recommendFor(ctx, symbol, truncated, date, cfg, run, in)
			if err != nil {
				advisories = append(advisories, fmt.Sprintf("%s on %s: %s", symbol, dateStr, err.Error()))
				continue
			}
			recommendations[symbol] = rec

			current := states[symbol]
			next := recommend.NextPosition(current, rec.Action, score, cfg.ActionThresholds.Buy, false)
			states[symbol] = next
		}

		// Step 5: on rebalance days, generate orders toward desired
		// weights; these are staged for execution at the next day's open
		// (step 1 of the following iteration), never today's.
		if cfg.RebalancePeriod > 0 && day%cfg.RebalancePeriod == 0 {
			desired := make(map[string]float64, len(recommendations))
			for symbol, rec := range recommendations {
				if states[symbol] == recommend.PositionLong {
					desired[symbol] = rec.TargetWeight
				} else {
					desired[symbol] = 0
				}
			}
			equity, _ := portfolio.Equity(closes).Float64()
			pendingOrders = generateRebalanceOrders(
				desired, portfolio.Positions, closes, equity,
				cfg.PositionSizing.MaxPositions, run.MinTradeNotional,
			)
			pendingRecommendations = recommendations
		}
	}

	report := buildReport(portfolio, benchmarkEquity, run.RiskFreeRate, run.TargetReturn, cfg.PeriodsPerYear, advisories, false)
	return report, nil
}

// recommendFor computes the full technical/fundamental/sentiment/
// momentum/risk fusion for one symbol as of one day and builds a
// Recommendation.
func recommendFor(ctx context.Context, symbol string, s series.Series, asOf time.Time, cfg *coreconfig.CoreConfig, run RunConfig, in RunInputs) (recommend.Recommendation, float64, error) {
	closes := s.Closes()
	highs := s.Highs()
	lows := s.Lows()
	volumes := s.Volumes()

	bundle := indicators.Compute(highs, lows, closes, volumes, cfg.Indicators)
	technical := fusion.SubScore{
		Name: "technical", Value: bundle.TechnicalSubScore(), Confidence: confidenceFor(len(closes)),
	}

	var fundamentalScore *fusion.SubScore
	var intrinsicOverMarket float64
	var haveIntrinsicValue bool
	if in.Fundamentals != nil {
		snap, err := in.Fundamentals.GetSnapshot(ctx, symbol, asOf)
		switch {
		case err == nil:
			composite := fundamentals.Compute(snap, cfg)
			fundamentalScore = &fusion.SubScore{Name: "fundamental", Value: composite.Value, Confidence: composite.Confidence}

			growthRate, _ := snap.RevGrowth.Get()
			if intrinsic, dcfErr := fundamentals.DCF(snap, growthRate, cfg.DCF); dcfErr == nil {
				if v, ok := intrinsic.Get(); ok && closes[len(closes)-1] > 0 {
					intrinsicOverMarket = v / closes[len(closes)-1]
					haveIntrinsicValue = true
				}
			}
		case errors.As(err, new(*coreerrors.DataUnavailable)):
			// The fundamental sub-score degrades to absent; fusion
			// renormalizes its weight over what is present.
		default:
			return recommend.Recommendation{}, 0, err
		}
	}

	var sentimentScore *fusion.SubScore
	if in.Sentiment != nil {
		value, confidence, err := in.Sentiment.GetScore(ctx, symbol, asOf)
		switch {
		case err == nil:
			sentimentScore = &fusion.SubScore{Name: "sentiment", Value: value, Confidence: confidence}
		case errors.As(err, new(*coreerrors.DataUnavailable)):
			// Sentiment degrades to absent the same way.
		default:
			return recommend.Recommendation{}, 0, err
		}
	}

	momentum := computeMomentum(bundle, closes)
	risk := computeRisk(closes, cfg.PeriodsPerYear)

	composite := fusion.Combine(fusion.Inputs{
		Fundamental: fundamentalScore,
		Technical:   &technical,
		Sentiment:   sentimentScore,
		Momentum:    &momentum,
		Risk:        &risk,
	}, cfg.FusionWeights, deriveFlags(closes, volumes, cfg, intrinsicOverMarket, haveIntrinsicValue))

	atr, _ := bundle.ATR[len(bundle.ATR)-1].Get()
	rec := recommend.Build(composite, recommend.Inputs{
		Symbol: symbol, AsOf: asOf, Close: closes[len(closes)-1], ATR: atr, Horizon: run.Horizon,
	}, cfg)
	return rec, composite.Score, nil
}

func confidenceFor(n int) float64 {
	if n == 0 {
		return 0
	}
	return 1.0
}

func computeMomentum(bundle indicators.Bundle, closes []float64) fusion.SubScore {
	n := len(bundle.MACDHist)
	haveSlope := false
	slope := 0.0
	if n >= 2 {
		cur, curOK := bundle.MACDHist[n-1].Get()
		prev, prevOK := bundle.MACDHist[n-2].Get()
		if curOK && prevOK {
			slope = cur - prev
			haveSlope = true
		}
	}

	sma200 := indicators.SMA(closes, 200)
	haveSMA := false
	ratio := 1.0
	if len(sma200) > 0 {
		if v, ok := sma200[len(sma200)-1].Get(); ok && v != 0 {
			ratio = closes[len(closes)-1] / v
			haveSMA = true
		}
	}

	return fusion.MomentumSubScore(slope, ratio, haveSlope, haveSMA)
}

func computeRisk(closes []float64, periodsPerYear int) fusion.SubScore {
	lookback := 252
	if len(closes) < lookback {
		lookback = len(closes)
	}
	window := closes[len(closes)-lookback:]
	returns := series.DefinedValues(series.LogReturns(window))
	vol, _ := series.Volatility(returns, true, periodsPerYear).Get()
	dd := series.MaxDrawdown(window)

	volPercentile := saturatingPercentile(vol, 0.40)
	ddPercentile := saturatingPercentile(-dd, 0.25) // series.MaxDrawdown is <= 0
	return fusion.RiskSubScore(volPercentile, ddPercentile)
}

// saturatingPercentile approximates a percentile rank for a single
// reading against a fixed reference scale (the risk-flag threshold),
// since the backtester evaluates one symbol at a time rather than
// holding the full candidate cross-section in memory at this call site.
func saturatingPercentile(value, referenceScale float64) float64 {
	if referenceScale <= 0 {
		return 0
	}
	p := value / referenceScale
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func deriveFlags(closes, volumes []float64, cfg *coreconfig.CoreConfig, intrinsicOverMarket float64, haveIntrinsicValue bool) []fusion.RiskFlag {
	lookback := 252
	if len(closes) < lookback {
		lookback = len(closes)
	}
	window := closes[len(closes)-lookback:]
	returns := series.DefinedValues(series.LogReturns(window))
	vol, _ := series.Volatility(returns, true, cfg.PeriodsPerYear).Get()
	dd := series.MaxDrawdown(window)

	medianVolume := medianOf(volumes)

	return fusion.DeriveRiskFlags(fusion.RiskFlagInputs{
		AnnualizedVolatility: vol,
		MaxDrawdown:          dd,
		MedianVolume:         medianVolume,
		ThinLiquidityFloor:   0, // no universe-wide liquidity floor configured at this call site
		IntrinsicOverMarket:  intrinsicOverMarket,
		HaveIntrinsicValue:   haveIntrinsicValue,
	})
}

func medianOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func executeOrders(p *Portfolio, orders []Order, opens map[string]float64, costs costModel, dateStr string, recommendations map[string]recommend.Recommendation) {
	for _, order := range orders {
		open, ok := opens[order.Symbol]
		if !ok || open <= 0 {
			continue
		}

		switch order.Side {
		case Buy:
			execPrice := costs.buyPrice(open)
			shares := scaleForCash(order.Shares, execPrice, p.Cash, costs)
			if !shares.IsPositive() {
				continue
			}
			cost := shares.Mul(decimal.NewFromFloat(execPrice))
			commission := costs.commission(cost)
			total := cost.Add(commission)
			p.Cash = p.Cash.Sub(total)

			existing, hasExisting := p.Positions[order.Symbol]
			if hasExisting {
				existing.Shares = existing.Shares.Add(shares)
				existing.EntryCost = existing.EntryCost.Add(total)
				p.Positions[order.Symbol] = existing
			} else {
				rec := recommendations[order.Symbol]
				p.Positions[order.Symbol] = Position{
					Symbol:    order.Symbol,
					Shares:    shares,
					EntryDate: dateStr,
					EntryCost: total,
					StopLoss:  rec.StopLoss,
					Target:    rec.TakeProfit,
				}
			}

		case Sell:
			pos, ok := p.Positions[order.Symbol]
			if !ok {
				continue
			}
			execPrice := costs.sellPrice(open)
			if order.Shares.GreaterThanOrEqual(pos.Shares) {
				p.closePosition(order.Symbol, dateStr, execPrice, "signal", costs)
				continue
			}
			proceeds := order.Shares.Mul(decimal.NewFromFloat(execPrice))
			commission := costs.commission(proceeds)
			net := proceeds.Sub(commission)
			p.Cash = p.Cash.Add(net)

			costBasisShare := pos.EntryCost.Div(pos.Shares)
			releasedCost := costBasisShare.Mul(order.Shares)
			pos.Shares = pos.Shares.Sub(order.Shares)
			pos.EntryCost = pos.EntryCost.Sub(releasedCost)
			p.Positions[order.Symbol] = pos
		}
	}
}
