// Package recommend implements spec.md §4.5: mapping a composite score,
// horizon, and risk posture into a discrete Recommendation — action,
// conviction, target weight, entry band, stop-loss, take-profit, and a
// stable rationale string.
//
// Grounded on the teacher's internal/modules/opportunities/calculators
// package: threshold-ladder action selection and a
// GetFloatParam(params, key, default)-style configurable-with-fallback
// idiom, generalized here to the explicit CoreConfig the core threads
// through every call instead of a loosely typed params map.
package recommend

import "github.com/aristath/invcore/internal/coreconfig"

// Action is spec.md §3's Recommendation.action enumeration.
type Action string

const (
	StrongBuy  Action = "STRONG_BUY"
	Buy        Action = "BUY"
	Hold       Action = "HOLD"
	Sell       Action = "SELL"
	StrongSell Action = "STRONG_SELL"
)

var actionLadder = []Action{StrongBuy, Buy, Hold, Sell, StrongSell}

// downgrade returns the next weaker action, or the same action if already
// at the floor (STRONG_SELL cannot downgrade further).
func downgrade(a Action) Action {
	for i, candidate := range actionLadder {
		if candidate == a && i < len(actionLadder)-1 {
			return actionLadder[i+1]
		}
	}
	return a
}

// ClassifyAction maps a composite score to an action using spec.md
// §4.5's thresholds, then downgrades by one level when a hard risk flag
// is set and confidence is below 0.5.
func ClassifyAction(score, confidence float64, hasHardRiskFlag bool, t coreconfig.ActionThresholds) Action {
	var action Action
	switch {
	case score >= t.StrongBuy:
		action = StrongBuy
	case score >= t.Buy:
		action = Buy
	case score >= t.Hold:
		action = Hold
	case score >= t.Sell:
		action = Sell
	default:
		action = StrongSell
	}

	if hasHardRiskFlag && confidence < 0.5 {
		return downgrade(action)
	}
	return action
}
