package arena

import (
	"errors"
	"fmt"
	"io"

	"github.com/codemix/malloc/internal/format"
)

// Check runs a full integrity sweep: header shape, tag agreement, tiling,
// the no-adjacent-free-blocks rule, and skip-list consistency (membership,
// sort order, level-subset structure, height bounds). It reads every block,
// so it is O(total blocks); callers run it at adoption time and in tests,
// not on the hot path.
func (a *Arena) Check() error {
	if !VerifyHeader(a.data) {
		return fmt.Errorf("%w: no header block", ErrCorrupt)
	}

	lh := a.ListHeight()
	if lh < 1 || lh > format.MaxHeight {
		return fmt.Errorf("%w: list height %d out of range", ErrCorrupt, lh)
	}
	for i := lh; i < format.MaxHeight; i++ {
		if next := a.NextOf(format.HeaderOffset, i); next != format.HeaderOffset {
			return fmt.Errorf("%w: header link %d above list height is %d, want self",
				ErrCorrupt, i, next)
		}
	}

	// Tile the arena, checking tags and adjacency as we go.
	free := make(map[int32]int32) // offset -> size
	var maxHeight int32
	prevFree := false
	it := a.Blocks()
	for {
		blk, err := it.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		head := a.Word(blk.Offset - 1)
		foot := a.Word(blk.Offset + blk.Size)
		if head != foot {
			return fmt.Errorf("%w: tag mismatch at quad %d: head %d, foot %d",
				ErrCorrupt, blk.Offset, head, foot)
		}
		if blk.Free {
			if prevFree {
				return fmt.Errorf("%w: adjacent free blocks at quad %d", ErrCorrupt, blk.Offset)
			}
			h := a.HeightOf(blk.Offset)
			if h < 1 || h > format.MaxHeight {
				return fmt.Errorf("%w: free block at quad %d has height %d",
					ErrCorrupt, blk.Offset, h)
			}
			if h > maxHeight {
				maxHeight = h
			}
			free[blk.Offset] = blk.Size
		}
		prevFree = blk.Free
	}

	if maxHeight == 0 {
		maxHeight = 1
	}
	if lh != maxHeight {
		return fmt.Errorf("%w: list height %d, tallest free block %d",
			ErrCorrupt, lh, maxHeight)
	}

	// Level 0 must enumerate exactly the free blocks, sorted by size.
	rank := make(map[int32]int, len(free))
	var prevSize int32
	steps := 0
	for b := a.NextOf(format.HeaderOffset, 0); b != format.HeaderOffset; b = a.NextOf(b, 0) {
		if steps++; steps > len(free) {
			return fmt.Errorf("%w: freelist level 0 does not terminate", ErrCorrupt)
		}
		size, ok := free[b]
		if !ok {
			return fmt.Errorf("%w: freelist links quad %d, which is not a free block",
				ErrCorrupt, b)
		}
		if size < prevSize {
			return fmt.Errorf("%w: freelist out of order at quad %d (%d after %d)",
				ErrCorrupt, b, size, prevSize)
		}
		prevSize = size
		rank[b] = steps
	}
	if len(rank) != len(free) {
		return fmt.Errorf("%w: %d free blocks, %d reachable from freelist",
			ErrCorrupt, len(free), len(rank))
	}

	// Each upper level must be a subsequence of level 0 made of nodes tall
	// enough to appear there.
	for i := int32(1); i < lh; i++ {
		prevRank := 0
		steps = 0
		for b := a.NextOf(format.HeaderOffset, i); b != format.HeaderOffset; b = a.NextOf(b, i) {
			if steps++; steps > len(free) {
				return fmt.Errorf("%w: freelist level %d does not terminate", ErrCorrupt, i)
			}
			r, ok := rank[b]
			if !ok {
				return fmt.Errorf("%w: level %d links quad %d, missing from level 0",
					ErrCorrupt, i, b)
			}
			if r <= prevRank {
				return fmt.Errorf("%w: level %d is not a sublist of level 0 at quad %d",
					ErrCorrupt, i, b)
			}
			if a.HeightOf(b) <= i {
				return fmt.Errorf("%w: quad %d linked at level %d above its height %d",
					ErrCorrupt, b, i, a.HeightOf(b))
			}
			prevRank = r
		}
	}

	return nil
}
