package alloc

import (
	"fmt"

	"github.com/codemix/malloc/arena"
	"github.com/codemix/malloc/internal/format"
)

// The freelist is an indexed skip list keyed by block size ascending. The
// header block is the sentinel at every level; links are quad indices into
// the arena. al.updates is the predecessor scratch shared by insert and
// remove: findPredecessors rewrites every level it touches, so stale entries
// from a previous call are never read.

const headerOffset = int32(format.HeaderOffset)

// findPredecessors descends from the top level, recording per level the last
// node whose successor is the sentinel or at least min quads big. It returns
// the level-0 successor: the smallest sufficient block, or the sentinel when
// nothing fits.
func (al *Allocator) findPredecessors(min int32) int32 {
	b := headerOffset
	for lvl := al.a.ListHeight() - 1; lvl >= 0; lvl-- {
		for {
			next := al.a.NextOf(b, lvl)
			if next == headerOffset || al.a.SizeOf(next) >= min {
				break
			}
			b = next
		}
		al.updates[lvl] = b
	}
	return al.a.NextOf(b, 0)
}

// insert links the block at b (payload size s) into the freelist and writes
// its free tags.
func (al *Allocator) insert(b, s int32) {
	al.findPredecessors(s)

	h := al.randomHeight()
	// The payload must hold the height word plus h links.
	if s-1 < h+1 {
		h = s - format.PointerOverhead
	}
	if lh := al.a.ListHeight(); h > lh {
		// Grow the list by exactly one level, not to the sampled height,
		// and give the new level a valid sentinel before linking.
		h = lh + 1
		al.a.SetHeightOf(headerOffset, h)
		al.a.SetNextOf(headerOffset, h-1, headerOffset)
		al.updates[h-1] = headerOffset
	}

	al.a.SetHeightOf(b, h)
	for i := int32(0); i < h; i++ {
		p := al.updates[i]
		al.a.SetNextOf(b, i, al.a.NextOf(p, i))
		al.a.SetNextOf(p, i, b)
	}
	al.a.WriteFreeTags(b, s)
}

// remove unlinks the free block at b (payload size s) from every level it
// occupies and writes its used tags. Blocks of equal size share a run in the
// list, so the level-0 scan may have to advance past same-size neighbors to
// land on b; a scan that runs past size s means the freelist and the tags
// disagree, which is fatal for the arena.
func (al *Allocator) remove(b, s int32) error {
	if h := al.a.HeightOf(b); h < 1 || h > format.MaxHeight {
		return fmt.Errorf("%w: free block at quad %d has height %d",
			arena.ErrCorrupt, b, h)
	}
	if al.a.Word(b-1) != al.a.Word(b+s) {
		return fmt.Errorf("%w: tag mismatch at quad %d", arena.ErrCorrupt, b)
	}

	al.findPredecessors(s)

	p := al.updates[0]
	for al.a.NextOf(p, 0) != b {
		n := al.a.NextOf(p, 0)
		if n == headerOffset || al.a.SizeOf(n) > s {
			return fmt.Errorf("%w: quad %d (size %d) missing from freelist",
				arena.ErrCorrupt, b, s)
		}
		p = n
		for i := int32(0); i < al.a.HeightOf(p); i++ {
			if al.a.NextOf(p, i) == b {
				al.updates[i] = p
			}
		}
	}

	bh := al.a.HeightOf(b)
	for i := int32(0); i < bh; i++ {
		q := al.updates[i]
		if al.a.NextOf(q, i) != b {
			return fmt.Errorf("%w: level %d predecessor of quad %d does not link it",
				arena.ErrCorrupt, i, b)
		}
		al.a.SetNextOf(q, i, al.a.NextOf(b, i))
	}

	for lh := al.a.ListHeight(); lh > 1 && al.a.NextOf(headerOffset, lh-1) == headerOffset; lh-- {
		al.a.SetHeightOf(headerOffset, lh-1)
	}

	al.a.WriteUsedTags(b, s)
	return nil
}
