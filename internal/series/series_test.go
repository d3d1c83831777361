package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/invcore/internal/optional"
)

func optionals(vs ...float64) []optional.Float64 {
	out := make([]optional.Float64, len(vs))
	for i, v := range vs {
		out[i] = optional.Of(v)
	}
	return out
}

func barsAt(closes ...float64) []Bar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]Bar, len(closes))
	for i, c := range closes {
		bars[i] = Bar{Timestamp: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return bars
}

func TestBarValidate(t *testing.T) {
	good := Bar{Open: 10, High: 12, Low: 9, Close: 11, Volume: 100}
	assert.NoError(t, good.Validate())

	bad := Bar{Open: 10, High: 9, Low: 9, Close: 11, Volume: 100}
	assert.Error(t, bad.Validate())

	negativeVolume := Bar{Open: 10, High: 12, Low: 9, Close: 11, Volume: -1}
	assert.Error(t, negativeVolume.Validate())
}

func TestSeriesValidateRejectsNonIncreasingTimestamps(t *testing.T) {
	s := Series{Symbol: "X", Bars: barsAt(10, 11, 12)}
	require.NoError(t, s.Validate())

	s.Bars[2].Timestamp = s.Bars[0].Timestamp
	assert.Error(t, s.Validate())
}

func TestTruncate(t *testing.T) {
	s := Series{Symbol: "X", Bars: barsAt(10, 11, 12, 13)}
	cut := s.Bars[1].Timestamp
	truncated := s.Truncate(cut)
	assert.Len(t, truncated.Bars, 2)
	assert.Equal(t, 11.0, truncated.Bars[len(truncated.Bars)-1].Close)
}

func TestSimpleReturnsSkipsZeroPredecessor(t *testing.T) {
	rs := SimpleReturns([]float64{0, 10, 11})
	require.Len(t, rs, 2)
	_, ok := rs[0].Get()
	assert.False(t, ok)
	v, ok := rs[1].Get()
	require.True(t, ok)
	assert.InDelta(t, 0.1, v, 1e-9)
}

func TestCumulativeReturns(t *testing.T) {
	rs := SimpleReturns([]float64{100, 110, 121})
	cum := CumulativeReturns(rs)
	assert.InDelta(t, 0.10, cum[0], 1e-9)
	assert.InDelta(t, 0.21, cum[1], 1e-9)
}

func TestMaxDrawdown(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdown([]float64{100, 110, 120}))
	assert.InDelta(t, -0.20, MaxDrawdown([]float64{100, 120, 96}), 1e-9)
}

func TestVolatilityUndefinedBelowTwoSamples(t *testing.T) {
	_, ok := Volatility([]float64{0.01}, true, 252).Get()
	assert.False(t, ok)

	v, ok := Volatility([]float64{0.01, -0.01, 0.02, -0.02}, false, 252).Get()
	require.True(t, ok)
	assert.Greater(t, v, 0.0)
}

func TestBetaUndefinedOnZeroVarianceBenchmark(t *testing.T) {
	flat := optionals(0, 0, 0, 0)
	asset := optionals(0.01, 0.02, -0.01, 0.03)
	beta, alpha := Beta(asset, flat)
	_, betaOK := beta.Get()
	_, alphaOK := alpha.Get()
	assert.False(t, betaOK)
	assert.False(t, alphaOK)
}

func TestBetaAndAlpha(t *testing.T) {
	benchmark := optionals(0.01, 0.02, -0.01, 0.015, -0.005)
	asset := optionals(0.02, 0.04, -0.02, 0.03, -0.01)

	beta, alpha := Beta(asset, benchmark)
	bv, ok := beta.Get()
	require.True(t, ok)
	assert.InDelta(t, 2.0, bv, 1e-6)

	av, ok := alpha.Get()
	require.True(t, ok)
	assert.InDelta(t, 0.0, av, 1e-6)
}
