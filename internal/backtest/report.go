package backtest

// BacktestReport is spec.md §4.6's run-end summary.
type BacktestReport struct {
	EquityCurve         []float64
	EquityDates         []string
	Trades              []Trade
	TotalReturn         float64
	CAGR                float64
	AnnualizedVolatility float64
	Sharpe              float64
	Sortino             float64
	MaxDrawdown         float64
	WinRate             float64
	ProfitFactor        float64
	Alpha               float64
	Beta                float64

	// Advisories records symbols the backtester excluded from a given
	// day's candidate set: a symbol with no bars through that day, or one
	// whose Fundamentals or Sentiment port returned an error other than
	// *coreerrors.DataUnavailable (DataUnavailable only drops that
	// sub-score and records no advisory). The run itself does not abort.
	Advisories []string

	// Incomplete is set when the run was stopped by cooperative
	// cancellation before reaching the end of the calendar; the metrics
	// above are computed over the partial equity curve recorded so far.
	Incomplete bool
}

// buildReport reduces a finished Portfolio and a benchmark series into
// the final BacktestReport.
func buildReport(p *Portfolio, benchmarkEquity []float64, riskFreeRate, targetReturn float64, periodsPerYear int, advisories []string, incomplete bool) BacktestReport {
	returns := dailyReturns(p.EquityCurve)
	benchReturns := dailyReturns(benchmarkEquity)

	return BacktestReport{
		EquityCurve:          p.EquityCurve,
		EquityDates:          p.EquityDates,
		Trades:               p.ClosedTrades,
		TotalReturn:          TotalReturn(p.EquityCurve),
		CAGR:                 CAGR(p.EquityCurve, periodsPerYear),
		AnnualizedVolatility: AnnualizedVolatility(returns, periodsPerYear),
		Sharpe:               Sharpe(returns, riskFreeRate, periodsPerYear),
		Sortino:              Sortino(returns, riskFreeRate, targetReturn, periodsPerYear),
		MaxDrawdown:          MaxDrawdown(p.EquityCurve),
		WinRate:              WinRate(p.ClosedTrades),
		ProfitFactor:         ProfitFactor(p.ClosedTrades),
		Alpha:                alphaOf(returns, benchReturns),
		Beta:                 betaOf(returns, benchReturns),
		Advisories:           advisories,
		Incomplete:           incomplete,
	}
}

func alphaOf(returns, benchReturns []float64) float64 {
	a, _ := AlphaBeta(returns, benchReturns)
	return a
}

func betaOf(returns, benchReturns []float64) float64 {
	_, b := AlphaBeta(returns, benchReturns)
	return b
}
