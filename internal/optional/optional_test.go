package optional

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValueIsAbsent(t *testing.T) {
	var f Float64
	_, ok := f.Get()
	assert.False(t, ok)
	assert.False(t, f.Present())
	assert.Equal(t, 0.0, f.OrZero())
}

func TestOfIsPresent(t *testing.T) {
	f := Of(3.14)
	v, ok := f.Get()
	assert.True(t, ok)
	assert.Equal(t, 3.14, v)
	assert.True(t, f.Present())
}

func TestAbsentAndZeroAreDistinct(t *testing.T) {
	absent := Float64{}
	zero := Of(0)
	assert.False(t, absent.Present())
	assert.True(t, zero.Present())
}
