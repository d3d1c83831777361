package fundamentals

import (
	"github.com/aristath/invcore/internal/coreconfig"
	"github.com/aristath/invcore/internal/optional"
)

// DCF computes spec.md §4.3's discounted-cash-flow intrinsic value per
// share: free cash flow is projected forward at growthRate for
// p.ProjectionYears, discounted at p.Discount, plus a Gordon-growth
// terminal value discounted back from the final projected year.
//
// Returns undefined when free cash flow or share count is absent, or when
// the discount rate does not exceed the terminal growth rate (the
// terminal value formula divides by discount-terminalGrowth and must stay
// positive) — spec.md treats d <= t as an undefined intrinsic value, not
// an error.
func DCF(s Snapshot, growthRate float64, p coreconfig.DCFParams) (optional.Float64, error) {
	fcf, ok := s.FCF.Get()
	if !ok {
		return optional.Float64{}, nil
	}
	shares, ok := s.Shares.Get()
	if !ok || shares <= 0 {
		return optional.Float64{}, nil
	}
	if p.Discount <= p.TerminalGrowth {
		return optional.Float64{}, nil
	}

	pvSum := 0.0
	projected := fcf
	for year := 1; year <= p.ProjectionYears; year++ {
		projected *= 1 + growthRate
		discountFactor := pow1p(p.Discount, year)
		pvSum += projected / discountFactor
	}

	terminalValue := projected * (1 + p.TerminalGrowth) / (p.Discount - p.TerminalGrowth)
	pvTerminal := terminalValue / pow1p(p.Discount, p.ProjectionYears)

	enterpriseValue := pvSum + pvTerminal
	perShare := enterpriseValue / shares
	return optional.Of(perShare), nil
}

// pow1p returns (1+r)^n for small positive integer n via repeated
// multiplication, avoiding the edge cases of math.Pow for this narrow use.
func pow1p(r float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= 1 + r
	}
	return result
}
