package coreerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrapExposesWrappedError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &DataUnavailable{Symbol: "AAPL", Reason: "upstream timeout", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorsAsMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading snapshot: %w", &DataUnavailable{Symbol: "MSFT", Reason: "not found"})

	var target *DataUnavailable
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "MSFT", target.Symbol)
}

func TestErrorsIsMatchesByKindNotFields(t *testing.T) {
	err := &InvalidInput{Field: "volume", Reason: "must be >= 0"}
	assert.True(t, errors.Is(err, &InvalidInput{}))
	assert.False(t, errors.Is(err, &ConfigurationError{}))
}
