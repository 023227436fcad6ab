// Package format defines the bit-level layout of a managed arena. The goal is
// to keep the word arithmetic in one place, independent from the public API,
// so higher-level packages can orchestrate blocks in a more ergonomic form.
//
// The arena is addressed in quads: 32-bit signed words, four bytes each.
// Every block is flanked by a pair of boundary tags holding the payload size
// in quads; a positive tag marks a free block, a negative tag a used one.
package format

const (
	// PointerSize is the size of one quad in bytes. All external byte
	// offsets and sizes must be multiples of it.
	PointerSize = 4

	// MaxHeight is the tallest skip-list node the freelist permits.
	MaxHeight = 32

	// HeaderOffset is the quad index of the header block's payload. The
	// header is the skip-list sentinel: never allocated, never coalesced.
	HeaderOffset = 1

	// HeaderSize is the header block's payload size in quads, 1+2*MaxHeight.
	// The header uses its first word for the list height and the next
	// MaxHeight words for the per-level entry links; the rest is unused.
	HeaderSize = 1 + 2*MaxHeight

	// PointerOverhead is the two boundary-tag words flanking every block.
	PointerOverhead = 2

	// FirstBlockOffset is the quad index of the first allocatable block:
	// just past the header block and its tag pair.
	FirstBlockOffset = HeaderOffset + HeaderSize + PointerOverhead

	// MinFreeableSize is the smallest legal block payload in quads. A free
	// block must store a height word plus at least one link word in-band,
	// with tag agreement.
	MinFreeableSize = 3

	// MinFreeableBytes is MinFreeableSize expressed in bytes; the smallest
	// request Alloc accepts.
	MinFreeableBytes = MinFreeableSize * PointerSize

	// OverheadBytes is the fixed cost of a managed region in bytes: the
	// header block, its tags, and the first block's head and foot tags.
	OverheadBytes = (FirstBlockOffset + 1) * PointerSize

	// HeightQuad is the quad within a free block's payload holding the
	// node's skip-list height.
	HeightQuad = 0

	// NextQuad is the first link quad within a free block's payload; the
	// level-i link lives at NextQuad + i.
	NextQuad = 1
)
