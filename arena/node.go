package arena

import "github.com/codemix/malloc/internal/format"

// In-band skip-list node accessors. A free block's payload doubles as its
// freelist node: quad 0 holds the node height, quads 1..height hold the
// forward links. Links are quad indices of other free blocks, with the
// header block acting as the sentinel at every level.
//
// The header block itself is addressed like any other node; its height word
// holds the current list height and its links are the per-level entry
// pointers.

// HeightOf returns the skip-list height stored in the free block at b.
func (a *Arena) HeightOf(b int32) int32 {
	return a.Word(b + format.HeightQuad)
}

// SetHeightOf stores the skip-list height of the free block at b.
func (a *Arena) SetHeightOf(b, h int32) {
	a.SetWord(b+format.HeightQuad, h)
}

// NextOf returns the level-i forward link of the free block at b.
func (a *Arena) NextOf(b, i int32) int32 {
	return a.Word(b + format.NextQuad + i)
}

// SetNextOf stores the level-i forward link of the free block at b.
func (a *Arena) SetNextOf(b, i, next int32) {
	a.SetWord(b+format.NextQuad+i, next)
}

// ListHeight returns the current skip-list height stored in the header.
func (a *Arena) ListHeight() int32 {
	return a.HeightOf(format.HeaderOffset)
}
