package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemix/malloc/internal/format"
)

func newTestArena(t testing.TB, size int) *Arena {
	t.Helper()
	a, err := New(make([]byte, size))
	require.NoError(t, err)
	return a
}

func TestVerifyHeader_FalseOnFreshRegion(t *testing.T) {
	assert.False(t, VerifyHeader(make([]byte, 4096)))
}

func TestVerifyHeader_FalseOnGarbage(t *testing.T) {
	region := make([]byte, 4096)
	for i := range region {
		region[i] = 0x7B
	}
	assert.False(t, VerifyHeader(region))
}

func TestVerifyHeader_FalseOnShortRegion(t *testing.T) {
	assert.False(t, VerifyHeader(make([]byte, 16)))
}

func TestInstallHeader_WritesSentinelAndInitialBlock(t *testing.T) {
	a := newTestArena(t, 4096)
	a.InstallHeader()

	require.True(t, VerifyHeader(a.Bytes()))

	// Header tags and sentinel links.
	assert.Equal(t, int32(format.HeaderSize), a.Word(format.HeaderOffset-1))
	assert.Equal(t, int32(format.HeaderSize), a.Word(format.HeaderOffset+format.HeaderSize))
	assert.Equal(t, int32(1), a.ListHeight())
	assert.Equal(t, int32(format.FirstBlockOffset), a.NextOf(format.HeaderOffset, 0))
	for i := int32(1); i < format.MaxHeight; i++ {
		assert.Equal(t, int32(format.HeaderOffset), a.NextOf(format.HeaderOffset, i))
	}

	// The initial free block spans the remainder; its foot is the final word.
	first := int32(format.FirstBlockOffset)
	size := a.SizeOf(first)
	assert.Equal(t, a.Quads()-(format.HeaderOffset+format.HeaderSize+format.PointerOverhead+1), size)
	assert.True(t, a.IsFree(first))
	assert.Equal(t, a.Quads()-1, first+size, "foot tag is the region's last word")
	assert.Equal(t, int32(1), a.HeightOf(first))
	assert.Equal(t, int32(format.HeaderOffset), a.NextOf(first, 0))

	require.NoError(t, a.Check())
}

func TestInstallHeader_OverwritesGarbage(t *testing.T) {
	region := make([]byte, 4096)
	for i := range region {
		region[i] = 0x7B
	}
	a, err := New(region)
	require.NoError(t, err)
	a.InstallHeader()

	assert.True(t, VerifyHeader(region))
	require.NoError(t, a.Check())
}

func TestNew_RejectsBadRegions(t *testing.T) {
	_, err := New(make([]byte, 88))
	assert.ErrorIs(t, err, ErrRegionTooSmall)

	_, err = New(make([]byte, 4097))
	assert.ErrorIs(t, err, ErrMisaligned)
}
