package backtest

import (
	"context"
	"sort"

	"github.com/aristath/invcore/internal/coreconfig"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// ParamAxis is one tunable grid-search dimension: a name for reporting
// and the ordered list of CoreConfig mutations to try along that axis.
type ParamAxis struct {
	Name    string
	Mutate  []func(*coreconfig.CoreConfig)
	Labels  []string // human-readable label per mutation, same length as Mutate
}

// GridResult pairs one parameter combination's labels with its report.
type GridResult struct {
	Labels map[string]string
	Report BacktestReport
}

// Objective scores a BacktestReport for grid-search ranking. Sharpe is
// spec.md §4.6's default.
type Objective func(BacktestReport) float64

// SharpeObjective is the default grid-search objective.
func SharpeObjective(r BacktestReport) float64 { return r.Sharpe }

// GridSearch runs Run once per combination of axes' mutations, in
// row-major order over the axes as given, and returns every result plus
// the single best result by objective. Iteration order is fixed so the
// same axes and inputs always produce the same result table (spec.md
// §4.6: "deterministic in iteration order").
func GridSearch(ctx context.Context, in RunInputs, base *coreconfig.CoreConfig, run RunConfig, axes []ParamAxis, objective Objective, log zerolog.Logger) ([]GridResult, *GridResult, error) {
	if objective == nil {
		objective = SharpeObjective
	}

	combos := cartesianProduct(axes)
	results := make([]GridResult, 0, len(combos))

	var best *GridResult
	bestScore := 0.0

	for _, combo := range combos {
		select {
		case <-ctx.Done():
			return results, best, nil
		default:
		}

		cfg := *base
		labels := make(map[string]string, len(combo))
		for axisIdx, mutationIdx := range combo {
			axis := axes[axisIdx]
			axis.Mutate[mutationIdx](&cfg)
			labels[axis.Name] = axis.Labels[mutationIdx]
		}

		report, err := Run(ctx, in, &cfg, run, log)
		if err != nil {
			continue
		}

		result := GridResult{Labels: labels, Report: report}
		results = append(results, result)

		score := objective(report)
		if best == nil || score > bestScore {
			best = &results[len(results)-1]
			bestScore = score
		}
	}

	return results, best, nil
}

// ObjectivePercentiles summarizes the spread of objective scores across a
// grid-search result table at the given quantile probabilities (each in
// [0, 1]), e.g. ObjectivePercentiles(results, SharpeObjective, []float64{0.1, 0.5, 0.9})
// for a p10/p50/p90 view of how sensitive the objective is to the swept
// parameters.
func ObjectivePercentiles(results []GridResult, objective Objective, probabilities []float64) []float64 {
	if len(results) == 0 {
		return make([]float64, len(probabilities))
	}
	if objective == nil {
		objective = SharpeObjective
	}

	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = objective(r.Report)
	}
	sort.Float64s(scores)

	out := make([]float64, len(probabilities))
	for i, p := range probabilities {
		out[i] = stat.Quantile(p, stat.Empirical, scores, nil)
	}
	return out
}

// cartesianProduct enumerates every combination of mutation indices
// across axes, row-major (the last axis varies fastest), so the result
// order is a pure function of the axes slice.
func cartesianProduct(axes []ParamAxis) [][]int {
	if len(axes) == 0 {
		return nil
	}
	combos := [][]int{{}}
	for _, axis := range axes {
		next := make([][]int, 0, len(combos)*len(axis.Mutate))
		for _, combo := range combos {
			for i := range axis.Mutate {
				extended := append(append([]int(nil), combo...), i)
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos
}
