package arena

import "github.com/codemix/malloc/internal/format"

// Boundary-tag operations. A block at quad index b carries its head tag at
// b-1 and its foot tag at b+size; head and foot always agree in sign and
// magnitude.

// SizeOf returns the payload size in quads of the block at b, free or used.
func (a *Arena) SizeOf(b int32) int32 {
	v := a.Word(b - 1)
	if v < 0 {
		return -v
	}
	return v
}

// IsFree reports whether the block at b is free. Offsets inside the header
// region are never considered free.
func (a *Arena) IsFree(b int32) bool {
	if b < format.FirstBlockOffset {
		return false
	}
	return a.Word(b-1) > 0
}

// WriteFreeTags marks the block at b free with payload size s.
func (a *Arena) WriteFreeTags(b, s int32) {
	a.SetWord(b-1, s)
	a.SetWord(b+s, s)
}

// WriteUsedTags marks the block at b used with payload size s.
func (a *Arena) WriteUsedTags(b, s int32) {
	a.SetWord(b-1, -s)
	a.SetWord(b+s, -s)
}

// FreeNeighborBefore returns the start of the free block immediately
// preceding b, or 0 when b is the first block or the preceding block is not
// free. The preceding block's foot sits at b-2; when positive, it gives that
// block's size and therefore its start.
func (a *Arena) FreeNeighborBefore(b int32) int32 {
	if b <= format.FirstBlockOffset {
		return 0
	}
	foot := a.Word(b - 2)
	if foot >= format.PointerOverhead {
		return b - format.PointerOverhead - foot
	}
	return 0
}

// FreeNeighborAfter returns the start of the free block immediately
// following b, or 0 when b is the last block or the following block is not
// free. The follower's head sits right past this block's foot; the tiling
// invariant makes the probe a single word read.
func (a *Arena) FreeNeighborAfter(b int32) int32 {
	next := b + a.SizeOf(b) + format.PointerOverhead
	if next > a.quads-(format.MinFreeableSize+1) {
		return 0
	}
	head := a.Word(next - 1)
	if head >= format.PointerOverhead {
		return next
	}
	return 0
}
