package backtest

import (
	"sort"

	"github.com/shopspring/decimal"
)

// OrderSide distinguishes a buy (increase exposure) from a sell
// (reduce or close exposure) order.
type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

// Order is a desired trade sized in shares, generated on a rebalance day
// and executed at the next trading day's open per spec.md §4.6 step 5
// (T+1 execution).
type Order struct {
	Symbol string
	Side   OrderSide
	Shares decimal.Decimal
}

// desiredWeight pairs a candidate symbol with the weight the
// recommendation engine assigned it for this rebalance evaluation.
type desiredWeight struct {
	symbol string
	weight float64
}

// generateRebalanceOrders compares each candidate's desired target weight
// against its current portfolio weight and emits orders that reduce the
// L1 distance between desired and current allocations, honoring
// maxPositions (no new symbol may be opened once the position count is
// at the cap) and minNotional (orders below this dollar size are
// dropped). Candidates are processed in a fixed, sorted order so the
// same inputs always produce the same order sequence.
func generateRebalanceOrders(
	desired map[string]float64,
	positions map[string]Position,
	closes map[string]float64,
	equity float64,
	maxPositions int,
	minNotional float64,
) []Order {
	symbols := make([]string, 0, len(desired))
	for s := range desired {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	openCount := len(positions)
	var orders []Order

	for _, symbol := range symbols {
		close, haveClose := closes[symbol]
		if !haveClose || close <= 0 {
			continue
		}

		desiredValue := desired[symbol] * equity
		currentValue := 0.0
		pos, alreadyOpen := positions[symbol]
		if alreadyOpen {
			f, _ := pos.MarketValue(close).Float64()
			currentValue = f
		}

		delta := desiredValue - currentValue
		if delta > minNotional {
			if !alreadyOpen && openCount >= maxPositions {
				continue
			}
			shares := decimal.NewFromFloat(delta / close).Floor()
			if shares.IsPositive() {
				orders = append(orders, Order{Symbol: symbol, Side: Buy, Shares: shares})
				if !alreadyOpen {
					openCount++
				}
			}
		} else if delta < -minNotional {
			maxShares := positions[symbol].Shares
			wantShares := decimal.NewFromFloat((-delta) / close).Floor()
			if wantShares.GreaterThan(maxShares) {
				wantShares = maxShares
			}
			if wantShares.IsPositive() {
				orders = append(orders, Order{Symbol: symbol, Side: Sell, Shares: wantShares})
			}
		}
	}

	return orders
}

// scaleForCash enforces spec.md §4.6 step 6: if a buy order's cost would
// overdraw the available cash, its share count is scaled down pro-rata
// and floored to an integer share count.
func scaleForCash(shares decimal.Decimal, execPrice float64, availableCash decimal.Decimal, costs costModel) decimal.Decimal {
	price := decimal.NewFromFloat(execPrice)
	cost := shares.Mul(price)
	commission := costs.commission(cost)
	totalCost := cost.Add(commission)

	if totalCost.LessThanOrEqual(availableCash) {
		return shares
	}
	if availableCash.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	// Solve shares*price*(1+pct) + perTrade <= availableCash for shares,
	// then floor to an integer share count.
	budgetForShares := availableCash.Sub(costs.perTrade)
	if budgetForShares.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	denom := price.Mul(decimal.NewFromFloat(1).Add(costs.pct))
	if denom.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return budgetForShares.Div(denom).Floor()
}
