package dirty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalesce_MergesAdjacentPages(t *testing.T) {
	tr := NewTracker(nil)
	tr.Add(100, 8)
	tr.Add(4090, 8) // straddles the first page boundary
	tr.Add(20000, 4)

	got := tr.Coalesced()
	require.Len(t, got, 2)
	assert.Equal(t, Range{Off: 0, Len: 8192}, got[0],
		"ranges in the first two pages merge")
	assert.Equal(t, Range{Off: 16384, Len: 4096}, got[1])
}

func TestCoalesce_EmptyTracker(t *testing.T) {
	tr := NewTracker(nil)
	assert.Nil(t, tr.Coalesced())
}

func TestCoalesce_UnsortedInput(t *testing.T) {
	tr := NewTracker(nil)
	tr.Add(20000, 4)
	tr.Add(4, 4)

	got := tr.Coalesced()
	require.Len(t, got, 2)
	assert.Equal(t, int64(0), got[0].Off, "output is sorted")
	assert.Equal(t, int64(16384), got[1].Off)
}

func TestReset_DropsRanges(t *testing.T) {
	tr := NewTracker(nil)
	tr.Add(4, 4)
	tr.Reset()
	assert.Empty(t, tr.Ranges())
}
