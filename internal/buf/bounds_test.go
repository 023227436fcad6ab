package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddOverflowSafe(t *testing.T) {
	v, ok := AddOverflowSafe(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = AddOverflowSafe(math.MaxInt, 1)
	assert.False(t, ok)

	_, ok = AddOverflowSafe(math.MinInt, -1)
	assert.False(t, ok)
}

func TestSlice(t *testing.T) {
	b := make([]byte, 16)

	s, ok := Slice(b, 4, 8)
	assert.True(t, ok)
	assert.Len(t, s, 8)

	_, ok = Slice(b, 12, 8)
	assert.False(t, ok)

	_, ok = Slice(b, -1, 4)
	assert.False(t, ok)

	_, ok = Slice(b, 4, math.MaxInt)
	assert.False(t, ok)

	s, ok = Slice(b, 16, 0)
	assert.True(t, ok, "empty slice at the end is valid")
	assert.Empty(t, s)
}

func TestHas(t *testing.T) {
	b := make([]byte, 16)
	assert.True(t, Has(b, 0, 16))
	assert.False(t, Has(b, 1, 16))
}
