package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Coalescing on free has four shapes, depending on which neighbors are free.
// Each test lays out guard blocks so exactly the intended neighbors can
// merge, then checks the combined block through Inspect.

// TestCoalesce_NoNeighbors frees a block flanked by used neighbors.
func TestCoalesce_NoNeighbors(t *testing.T) {
	al := newTestAllocator(t, 8192)

	mustAlloc(t, al, 64)
	b := mustAlloc(t, al, 96)
	mustAlloc(t, al, 64)

	n := mustFree(t, al, b)
	assert.Equal(t, 96, n)

	free := freeBlocks(t, al)
	require.Len(t, free, 2, "the freed block and the trailing block")
	assert.Equal(t, b, free[0].Offset)
	assert.Equal(t, 96, free[0].Size)

	assertInvariants(t, al)
}

// TestCoalesce_RightNeighbor frees a block whose follower is already free.
func TestCoalesce_RightNeighbor(t *testing.T) {
	al := newTestAllocator(t, 8192)

	mustAlloc(t, al, 64)
	b := mustAlloc(t, al, 96)
	c := mustAlloc(t, al, 64)
	mustAlloc(t, al, 64) // keeps c away from the trailing block

	mustFree(t, al, c)
	n := mustFree(t, al, b)
	assert.Equal(t, 96, n, "free reports the pre-coalesce size")

	free := freeBlocks(t, al)
	require.Len(t, free, 2)
	assert.Equal(t, b, free[0].Offset, "combined block starts at b")
	assert.Equal(t, 96+64+8, free[0].Size, "payloads plus the absorbed tag pair")
	assert.Equal(t, 1, al.Stats().CoalesceRight)

	assertInvariants(t, al)
}

// TestCoalesce_LeftNeighbor frees a block whose predecessor is already free.
func TestCoalesce_LeftNeighbor(t *testing.T) {
	al := newTestAllocator(t, 8192)

	mustAlloc(t, al, 64)
	b := mustAlloc(t, al, 96)
	c := mustAlloc(t, al, 64)
	mustAlloc(t, al, 64)

	mustFree(t, al, b)
	n := mustFree(t, al, c)
	assert.Equal(t, 64, n)

	free := freeBlocks(t, al)
	require.Len(t, free, 2)
	assert.Equal(t, b, free[0].Offset, "combined block starts at the left neighbor")
	assert.Equal(t, 96+64+8, free[0].Size)
	assert.Equal(t, 1, al.Stats().CoalesceLeft)

	assertInvariants(t, al)
}

// TestCoalesce_BothNeighbors frees the middle block of a free/used/free
// sandwich.
func TestCoalesce_BothNeighbors(t *testing.T) {
	al := newTestAllocator(t, 8192)

	mustAlloc(t, al, 64)
	b := mustAlloc(t, al, 96)
	c := mustAlloc(t, al, 64)
	d := mustAlloc(t, al, 96)
	mustAlloc(t, al, 64)

	mustFree(t, al, b)
	mustFree(t, al, d)
	n := mustFree(t, al, c)
	assert.Equal(t, 64, n)

	free := freeBlocks(t, al)
	require.Len(t, free, 2)
	assert.Equal(t, b, free[0].Offset)
	assert.Equal(t, 96+64+96+16, free[0].Size, "three payloads plus two absorbed tag pairs")

	assertInvariants(t, al)
}

// TestCoalesce_OrderIndependent verifies that freeing the same blocks in
// different orders converges on the same layout.
func TestCoalesce_OrderIndependent(t *testing.T) {
	run := func(order []int) []Block {
		al := newTestAllocator(t, 8192)
		offs := make([]int, 3)
		for i := range offs {
			offs[i] = mustAlloc(t, al, 64)
		}
		mustAlloc(t, al, 64) // guard before the trailing block
		for _, i := range order {
			mustFree(t, al, offs[i])
		}
		assertInvariants(t, al)
		return freeBlocks(t, al)
	}

	a := run([]int{0, 1, 2})
	b := run([]int{2, 0, 1})
	assert.Equal(t, a, b, "free order must not change the final layout")
}
