// Package backtest implements spec.md §4.6: a deterministic discrete-time
// simulator over a calendar of trading days, producing a BacktestReport
// from a candidate set of Series and a recommendation-engine-driven
// per-day event loop.
//
// Grounded on the teacher's trader-go/pkg/formulas (Sharpe, Sortino, max
// drawdown) and internal/work/processor.go's context.Context-driven
// cancellation. Cash and position quantities use shopspring/decimal,
// the way the teacher keeps money arithmetic off float64 in its ledger
// paths, while indicator and statistics math stays on float64.
package backtest

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position is one open holding in a backtest run.
type Position struct {
	Symbol    string
	Shares    decimal.Decimal
	EntryDate string // ISO-8601, set on open
	EntryCost decimal.Decimal
	StopLoss  float64
	Target    float64
}

// MarketValue returns the position's value at the given close price.
func (p Position) MarketValue(close float64) decimal.Decimal {
	return p.Shares.Mul(decimal.NewFromFloat(close))
}

// Trade records one completed round trip for win-rate/profit-factor
// reporting.
type Trade struct {
	ID         string
	Symbol     string
	EntryDate  string
	ExitDate   string
	EntryPrice float64
	ExitPrice  float64
	Shares     decimal.Decimal
	PnL        decimal.Decimal
	Reason     string // "stop", "target", "signal"
}

// Portfolio is the backtester's mutable ledger for one run: cash,
// currently open positions, and the equity curve recorded once per
// trading day.
type Portfolio struct {
	Cash         decimal.Decimal
	Positions    map[string]Position
	EquityCurve  []float64
	EquityDates  []string
	ClosedTrades []Trade
}

// NewPortfolio seeds a Portfolio with starting cash and no positions.
func NewPortfolio(startingCash float64) *Portfolio {
	return &Portfolio{
		Cash:      decimal.NewFromFloat(startingCash),
		Positions: make(map[string]Position),
	}
}

// Equity returns total portfolio value: cash plus the market value of
// every open position at the day's close prices.
func (p *Portfolio) Equity(closes map[string]float64) decimal.Decimal {
	total := p.Cash
	for symbol, pos := range p.Positions {
		if close, ok := closes[symbol]; ok {
			total = total.Add(pos.MarketValue(close))
		}
	}
	return total
}

// MarkToMarket appends one equity snapshot for the day, per spec.md
// §4.6 step 1 and §5's "appended exactly once per trading day" ordering
// guarantee.
func (p *Portfolio) MarkToMarket(date string, closes map[string]float64) {
	equity := p.Equity(closes)
	f, _ := equity.Float64()
	p.EquityCurve = append(p.EquityCurve, f)
	p.EquityDates = append(p.EquityDates, date)
}

// closePosition removes a position, books a Trade, and credits cash at
// the given execution price net of slippage and commission.
func (p *Portfolio) closePosition(symbol, date string, execPrice float64, reason string, costs costModel) Trade {
	pos := p.Positions[symbol]
	proceeds := pos.Shares.Mul(decimal.NewFromFloat(execPrice))
	commission := costs.commission(proceeds)
	net := proceeds.Sub(commission)
	p.Cash = p.Cash.Add(net)

	pnl := net.Sub(pos.EntryCost)
	// The ID is a name-based UUID over the trade's symbol, dates and its
	// index in the run's trade list, so identical runs yield identical IDs.
	idName := fmt.Sprintf("%s|%s|%s|%d", symbol, pos.EntryDate, date, len(p.ClosedTrades))
	trade := Trade{
		ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte(idName)).String(),
		Symbol:     symbol,
		EntryDate:  pos.EntryDate,
		ExitDate:   date,
		EntryPrice: entryPricePerShare(pos),
		ExitPrice:  execPrice,
		Shares:     pos.Shares,
		PnL:        pnl,
		Reason:     reason,
	}
	p.ClosedTrades = append(p.ClosedTrades, trade)
	delete(p.Positions, symbol)
	return trade
}

func entryPricePerShare(pos Position) float64 {
	if pos.Shares.IsZero() {
		return 0
	}
	perShare, _ := pos.EntryCost.Div(pos.Shares).Float64()
	return perShare
}
