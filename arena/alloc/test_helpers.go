package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codemix/malloc/arena"
)

// ============================================================================
// Test Helpers
// ============================================================================

// fixedSource replays a canned word sequence and then yields zeroes, so
// every height flip past the end of the sequence lands tails. A source with
// no words pins every node to height 1.
type fixedSource struct {
	words []uint32
	i     int
}

func (s *fixedSource) Uint32() uint32 {
	if s.i >= len(s.words) {
		return 0
	}
	w := s.words[s.i]
	s.i++
	return w
}

// newTestAllocator builds an allocator over a fresh region of the given byte
// size. The supplied words drive skip-list heights; none means height 1
// everywhere, making block placement fully deterministic.
func newTestAllocator(t testing.TB, size int, words ...uint32) *Allocator {
	t.Helper()

	region := make([]byte, size)
	a, err := arena.New(region)
	require.NoError(t, err, "failed to wrap test region")

	al, err := New(a, nil, &fixedSource{words: words})
	require.NoError(t, err, "failed to create allocator")

	return al
}

// mustAlloc allocates n bytes and fails the test on error or exhaustion.
func mustAlloc(t testing.TB, al *Allocator, n int) int {
	t.Helper()

	off, err := al.Alloc(n)
	require.NoError(t, err)
	require.NotZero(t, off, "arena unexpectedly out of memory for %d bytes", n)
	return off
}

// mustFree frees the block at addr and fails the test on error.
func mustFree(t testing.TB, al *Allocator, addr int) int {
	t.Helper()

	n, err := al.Free(addr)
	require.NoError(t, err)
	return n
}

// assertInvariants runs the full integrity sweep and fails the test on any
// violation.
func assertInvariants(t testing.TB, al *Allocator) {
	t.Helper()
	require.NoError(t, al.Check())
}

// freeBlocks filters an Inspect snapshot down to the free blocks.
func freeBlocks(t testing.TB, al *Allocator) []Block {
	t.Helper()

	blocks, err := al.Inspect()
	require.NoError(t, err)

	var free []Block
	for _, b := range blocks {
		if b.Free {
			free = append(free, b)
		}
	}
	return free
}
