package recommend

import (
	"fmt"
	"strings"

	"github.com/aristath/invcore/internal/fusion"
)

// BuildRationale assembles spec.md §4.5's human-readable rationale: the
// top three weighted sub-score contributions in descending order, then
// any active risk flags.
func BuildRationale(contributions map[string]float64, flags []fusion.RiskFlag) string {
	top := fusion.TopContributions(contributions, 3)

	var parts []string
	for _, c := range top {
		parts = append(parts, fmt.Sprintf("%s contributed %.3f", c.Name, c.WeightedValue))
	}
	for _, f := range flags {
		parts = append(parts, fmt.Sprintf("flag: %s", f))
	}
	if len(parts) == 0 {
		return "no contributing signals"
	}
	return strings.Join(parts, "; ")
}
