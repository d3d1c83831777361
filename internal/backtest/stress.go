package backtest

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// StressResult summarizes a Monte Carlo price-path perturbation of a
// recommendation set's expected portfolio return distribution.
type StressResult struct {
	SimulatedReturns []float64
	MeanReturn       float64
	VaR              float64 // value at risk at the requested confidence
	CVaR             float64 // conditional value at risk (expected tail loss)
}

// StressTest perturbs a target-weighted portfolio's expected return
// using a normal approximation per symbol (mean daily return, daily
// volatility), simulating numPaths independent one-period outcomes and
// reporting the resulting VaR/CVaR at the given confidence level.
//
// This is explicitly separate from the deterministic Run/GridSearch
// path: it draws from seed (a caller-supplied rand.Source, never the
// package-global generator) so a caller who wants reproducible stress
// output controls the seed explicitly, and a caller who does not call
// this function at all sees no randomness anywhere in the core.
func StressTest(weights map[string]float64, meanReturn map[string]float64, volatility map[string]float64, numPaths int, confidence float64, seed rand.Source) StressResult {
	if numPaths <= 0 {
		return StressResult{}
	}

	symbols := make([]string, 0, len(weights))
	for s := range weights {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	normals := make(map[string]distuv.Normal, len(symbols))
	for _, s := range symbols {
		normals[s] = distuv.Normal{
			Mu:    meanReturn[s],
			Sigma: math.Max(volatility[s], 1e-10),
			Src:   seed,
		}
	}

	simulated := make([]float64, numPaths)
	for i := 0; i < numPaths; i++ {
		portfolioReturn := 0.0
		for _, s := range symbols {
			n := normals[s]
			portfolioReturn += weights[s] * n.Rand()
		}
		simulated[i] = portfolioReturn
	}

	sorted := append([]float64(nil), simulated...)
	sort.Float64s(sorted)

	tailProbability := 1 - confidence
	tailCount := int(math.Ceil(float64(len(sorted)) * tailProbability))
	if tailCount < 1 {
		tailCount = 1
	}
	if tailCount > len(sorted) {
		tailCount = len(sorted)
	}

	varValue := sorted[tailCount-1]
	cvarSum := 0.0
	for _, r := range sorted[:tailCount] {
		cvarSum += r
	}
	cvar := cvarSum / float64(tailCount)

	meanSum := 0.0
	for _, r := range simulated {
		meanSum += r
	}

	return StressResult{
		SimulatedReturns: simulated,
		MeanReturn:       meanSum / float64(len(simulated)),
		VaR:              varValue,
		CVaR:             cvar,
	}
}
