package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemix/malloc/internal/format"
)

// TestAlloc_RejectsBadSizes covers the argument validation table: misaligned
// sizes, sizes below the freeable minimum, and sizes beyond the arena.
func TestAlloc_RejectsBadSizes(t *testing.T) {
	al := newTestAllocator(t, 4096)

	cases := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"negative", -16},
		{"misaligned", 10},
		{"below minimum", format.MinFreeableBytes - 4},
		{"larger than arena", 4096 + 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			off, err := al.Alloc(tc.n)
			assert.ErrorIs(t, err, ErrOutOfRange)
			assert.Zero(t, off)
		})
	}

	// Validation happens before any mutation.
	assertInvariants(t, al)
}

// TestFree_RejectsBadAddresses covers the address validation table.
func TestFree_RejectsBadAddresses(t *testing.T) {
	al := newTestAllocator(t, 4096)
	a := mustAlloc(t, al, 160)

	t.Run("inside header", func(t *testing.T) {
		_, err := al.Free(4)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
	t.Run("misaligned", func(t *testing.T) {
		_, err := al.Free(a + 1)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
	t.Run("past the region", func(t *testing.T) {
		_, err := al.Free(4096)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
	t.Run("never allocated", func(t *testing.T) {
		// Interior of a live block; the word before it is payload, not a tag.
		_, err := al.Free(a + 8)
		assert.ErrorIs(t, err, ErrInvalidBlock)
	})
	t.Run("double free", func(t *testing.T) {
		mustFree(t, al, a)
		_, err := al.Free(a)
		assert.ErrorIs(t, err, ErrInvalidBlock)
	})

	assertInvariants(t, al)
}

// TestSizeOf_ValidatesLikeFree verifies SizeOf shares Free's validation but
// also answers for free blocks.
func TestSizeOf_ValidatesLikeFree(t *testing.T) {
	al := newTestAllocator(t, 4096)
	a := mustAlloc(t, al, 160)
	mustAlloc(t, al, 16)

	sz, err := al.SizeOf(a)
	require.NoError(t, err)
	assert.Equal(t, 160, sz)

	_, err = al.SizeOf(3)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// The tag survives the free, so the size stays readable until the
	// block's words are reused.
	mustFree(t, al, a)
	sz, err = al.SizeOf(a)
	require.NoError(t, err)
	assert.Equal(t, 160, sz)
}
