package indicators

import (
	"math"
	"sort"
)

// SupportResistance finds local extrema over a configurable window and
// clusters them within a relative tolerance, per spec.md §4.2. Warm-up is
// 2*window (a local extremum needs `window` bars on each side to confirm).
//
// No example repo or ecosystem library in the retrieved pack implements
// tolerance-banded extrema clustering; this is hand-rolled (see
// DESIGN.md's justification for this one component).
func SupportResistance(closes []float64, window int, tolerance float64) (support, resistance []float64) {
	n := len(closes)
	if window <= 0 || n < 2*window+1 {
		return nil, nil
	}

	var lows, highs []float64
	for i := window; i < n-window; i++ {
		isLow, isHigh := true, true
		for j := i - window; j <= i+window; j++ {
			if j == i {
				continue
			}
			if closes[j] < closes[i] {
				isLow = false
			}
			if closes[j] > closes[i] {
				isHigh = false
			}
		}
		if isLow {
			lows = append(lows, closes[i])
		}
		if isHigh {
			highs = append(highs, closes[i])
		}
	}

	return clusterLevels(lows, tolerance), clusterLevels(highs, tolerance)
}

// clusterLevels merges raw extrema into representative levels: any two
// points within `tolerance` relative distance of each other's running
// cluster average are folded into the same cluster.
func clusterLevels(points []float64, tolerance float64) []float64 {
	if len(points) == 0 {
		return nil
	}
	sorted := append([]float64(nil), points...)
	sort.Float64s(sorted)

	var levels []float64
	clusterSum, clusterCount := sorted[0], 1
	for i := 1; i < len(sorted); i++ {
		avg := clusterSum / float64(clusterCount)
		if avg != 0 && math.Abs(sorted[i]-avg)/math.Abs(avg) <= tolerance {
			clusterSum += sorted[i]
			clusterCount++
			continue
		}
		levels = append(levels, clusterSum/float64(clusterCount))
		clusterSum, clusterCount = sorted[i], 1
	}
	levels = append(levels, clusterSum/float64(clusterCount))
	return levels
}
