package coreconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsZeroFusionWeights(t *testing.T) {
	cfg := Default()
	cfg.FusionWeights = FusionWeights{}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonDecreasingThresholds(t *testing.T) {
	cfg := Default()
	cfg.ActionThresholds.Buy = cfg.ActionThresholds.StrongBuy
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsOutOfRangeWMax(t *testing.T) {
	cfg := Default()
	cfg.PositionSizing.WMax = 1.5
	assert.Error(t, cfg.Validate())

	cfg2 := Default()
	cfg2.PositionSizing.WMax = 0
	assert.Error(t, cfg2.Validate())
}

func TestValidateRejectsNonPositivePeriodsPerYear(t *testing.T) {
	cfg := Default()
	cfg.PeriodsPerYear = 0
	assert.Error(t, cfg.Validate())
}
