package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordRoundTrip(t *testing.T) {
	b := make([]byte, 64)

	PutWord(b, 3, 12345)
	assert.Equal(t, int32(12345), ReadWord(b, 3))

	PutWord(b, 3, -12345)
	assert.Equal(t, int32(-12345), ReadWord(b, 3))

	PutWord(b, 0, -1)
	assert.Equal(t, int32(-1), ReadWord(b, 0))
	assert.Equal(t, int32(-12345), ReadWord(b, 3), "neighboring words untouched")
}

func TestQuadConversions(t *testing.T) {
	assert.Equal(t, int32(4), BytesToQuads(16))
	assert.Equal(t, 16, QuadsToBytes(4))
	assert.True(t, Aligned(16))
	assert.False(t, Aligned(17))
	assert.True(t, Aligned(0))
}

func TestDerivedConstants(t *testing.T) {
	assert.Equal(t, 65, HeaderSize)
	assert.Equal(t, 68, FirstBlockOffset)
	assert.Equal(t, 276, OverheadBytes)
	assert.Equal(t, 12, MinFreeableBytes)
}
