package arena

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemix/malloc/internal/format"
)

func collectBlocks(t testing.TB, a *Arena) []Block {
	t.Helper()

	var out []Block
	it := a.Blocks()
	for {
		blk, err := it.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, blk)
	}
}

func TestWalk_FreshArenaHasOneBlock(t *testing.T) {
	a := newTestArena(t, 4096)
	a.InstallHeader()

	blocks := collectBlocks(t, a)
	require.Len(t, blocks, 1)
	assert.Equal(t, int32(format.FirstBlockOffset), blocks[0].Offset)
	assert.True(t, blocks[0].Free)
}

func TestWalk_FollowsTiling(t *testing.T) {
	a := newTestArena(t, 4096)
	a.InstallHeader()
	layoutBlocks(t, a, []int32{10, -10, 20, -909})

	blocks := collectBlocks(t, a)
	require.Len(t, blocks, 4)
	assert.Equal(t, int32(10), blocks[0].Size)
	assert.False(t, blocks[1].Free)
	assert.Equal(t, int32(909), blocks[3].Size)
}

func TestWalk_ReportsBrokenTiling(t *testing.T) {
	a := newTestArena(t, 4096)
	a.InstallHeader()

	// A size tag that runs past the region end breaks the walk.
	a.SetWord(format.FirstBlockOffset-1, 5000)

	it := a.Blocks()
	_, err := it.Next()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestCheck_CatchesTagMismatch(t *testing.T) {
	a := newTestArena(t, 4096)
	a.InstallHeader()
	require.NoError(t, a.Check())

	// Corrupt the initial block's foot only.
	a.SetWord(a.Quads()-1, 7)
	assert.ErrorIs(t, a.Check(), ErrCorrupt)
}

func TestCheck_CatchesAdjacentFreeBlocks(t *testing.T) {
	a := newTestArena(t, 4096)
	a.InstallHeader()
	layoutBlocks(t, a, []int32{10, 10, -931})

	// Rebuild a consistent-looking freelist so only adjacency is at fault.
	a.SetNextOf(format.HeaderOffset, 0, format.FirstBlockOffset)
	a.SetNextOf(format.FirstBlockOffset, 0, format.FirstBlockOffset+12)
	a.SetNextOf(format.FirstBlockOffset+12, 0, format.HeaderOffset)

	assert.ErrorIs(t, a.Check(), ErrCorrupt)
}

func TestCheck_CatchesUnlistedFreeBlock(t *testing.T) {
	a := newTestArena(t, 4096)
	a.InstallHeader()
	layoutBlocks(t, a, []int32{10, -10, 20, -909})

	// Link only the first free block; the 20-quad block is stranded.
	a.SetNextOf(format.HeaderOffset, 0, format.FirstBlockOffset)
	a.SetNextOf(format.FirstBlockOffset, 0, format.HeaderOffset)

	assert.ErrorIs(t, a.Check(), ErrCorrupt)
}

func TestCheck_CatchesUnsortedFreelist(t *testing.T) {
	a := newTestArena(t, 4096)
	a.InstallHeader()
	offs := layoutBlocks(t, a, []int32{10, -10, 20, -909})

	// Link the larger block first.
	a.SetNextOf(format.HeaderOffset, 0, offs[2])
	a.SetNextOf(offs[2], 0, offs[0])
	a.SetNextOf(offs[0], 0, format.HeaderOffset)

	assert.ErrorIs(t, a.Check(), ErrCorrupt)
}

func TestFprint_ListsBlocks(t *testing.T) {
	a := newTestArena(t, 4096)
	a.InstallHeader()

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, a))
	assert.Contains(t, buf.String(), "free")
	assert.Contains(t, buf.String(), "3820 bytes")
}
