package arena

import (
	"fmt"
	"io"

	"github.com/codemix/malloc/internal/format"
)

// Block describes one block encountered while tiling the arena.
type Block struct {
	Offset int32 // quad index of the payload
	Size   int32 // payload size in quads
	Free   bool
}

// BlockIterator walks the arena left to right using the tiling invariant:
// each block starts where the previous one's foot tag ends.
type BlockIterator struct {
	a    *Arena
	next int32
}

// Blocks returns an iterator over every block past the header.
func (a *Arena) Blocks() *BlockIterator {
	return &BlockIterator{a: a, next: format.FirstBlockOffset}
}

// Next decodes the block at the cursor and advances past it. It returns
// io.EOF once the walk steps exactly past the region's last word, and a wrapped
// ErrCorrupt when the tiling breaks before that.
func (it *BlockIterator) Next() (Block, error) {
	b := it.next
	// A complete walk steps one past the final foot word.
	if b-1 == it.a.quads {
		return Block{}, io.EOF
	}
	if b-1 > it.a.quads {
		return Block{}, fmt.Errorf("%w: walk overran region at quad %d", ErrCorrupt, b)
	}
	raw := it.a.Word(b - 1)
	size := raw
	if size < 0 {
		size = -size
	}
	if size < format.MinFreeableSize {
		return Block{}, fmt.Errorf("%w: block at quad %d has size %d", ErrCorrupt, b, raw)
	}
	if b+size >= it.a.quads {
		return Block{}, fmt.Errorf("%w: block at quad %d (size %d) runs past region end",
			ErrCorrupt, b, size)
	}
	it.next = b + size + format.PointerOverhead
	return Block{Offset: b, Size: size, Free: raw > 0}, nil
}
