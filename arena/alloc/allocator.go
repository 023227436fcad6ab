package alloc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/codemix/malloc/arena"
	"github.com/codemix/malloc/internal/format"
)

// Runtime trace flag - controlled by the MALLOC_LOG_ALLOC env var.
var logAlloc = os.Getenv("MALLOC_LOG_ALLOC") != ""

// Allocator manages the blocks of a single arena. Offsets it returns stay
// valid until the matching Free; blocks are never moved.
//
// NOT thread-safe. Callers must synchronize externally.
type Allocator struct {
	a   *arena.Arena
	rng Source

	// Predecessor scratch for skip-list operations. Shared across calls;
	// every level in use is rewritten before it is read.
	updates [format.MaxHeight]int32

	stats Stats
}

// New builds an allocator over a. A region whose header verifies is adopted
// as-is after a full integrity check, which is what permits mmap-backed
// reuse across processes; anything else is formatted fresh.
//
// dt may be nil; when set it receives every word the allocator writes. src
// may be nil for a self-seeded source.
func New(a *arena.Arena, dt arena.DirtyTracker, src Source) (*Allocator, error) {
	if src == nil {
		src = newDefaultSource()
	}
	a.SetDirtyTracker(dt)

	if arena.VerifyHeader(a.Bytes()) {
		if err := a.Check(); err != nil {
			return nil, err
		}
	} else {
		a.InstallHeader()
	}

	return &Allocator{a: a, rng: src}, nil
}

// Arena returns the underlying arena.
func (al *Allocator) Arena() *arena.Arena { return al.a }

// Stats returns a copy of the allocator's counters.
func (al *Allocator) Stats() Stats { return al.stats }

// Alloc reserves n bytes and returns the byte offset of the new block's
// payload. n must be a positive multiple of the pointer size, at least the
// minimum freeable size, and no larger than the arena.
//
// Out of memory is not an error: when no free block fits, Alloc returns
// offset 0 with a nil error.
func (al *Allocator) Alloc(n int) (int, error) {
	al.stats.AllocCalls++

	if !format.Aligned(n) || n < format.MinFreeableBytes || n > len(al.a.Bytes()) {
		return 0, fmt.Errorf("%w: alloc size %d", ErrOutOfRange, n)
	}
	m := format.BytesToQuads(n)

	b := al.findPredecessors(m)
	if b == headerOffset {
		al.stats.FailedAllocs++
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[alloc] no fit for %d bytes\n", n)
		}
		return 0, nil
	}

	s := al.a.SizeOf(b)
	if err := al.remove(b, s); err != nil {
		return 0, err
	}

	if s-(m+format.PointerOverhead) >= format.MinFreeableSize {
		// Split: keep m quads, hand the tail past a fresh tag pair back
		// to the freelist. The tail's used tags are transient; insert
		// overwrites them.
		al.stats.Splits++
		al.a.WriteUsedTags(b, m)
		tail := b + m + format.PointerOverhead
		al.a.WriteUsedTags(tail, s-m-format.PointerOverhead)
		al.insert(tail, s-m-format.PointerOverhead)
	}

	al.stats.BytesAllocated += int64(format.QuadsToBytes(al.a.SizeOf(b)))
	return format.QuadsToBytes(b), nil
}

// Free releases the block at addr and merges it with any free neighbor on
// either side. It returns the size in bytes of the block as it was
// allocated, not the coalesced size.
func (al *Allocator) Free(addr int) (int, error) {
	al.stats.FreeCalls++

	b, s, err := al.validateBlock(addr)
	if err != nil {
		return 0, err
	}
	if al.a.Word(b-1) >= 0 {
		return 0, fmt.Errorf("%w: address %d is not in use", ErrInvalidBlock, addr)
	}

	left := al.a.FreeNeighborBefore(b)
	right := al.a.FreeNeighborAfter(b)

	switch {
	case left == 0 && right == 0:
		al.insert(b, s)

	case left == 0:
		rs := al.a.SizeOf(right)
		if err := al.remove(right, rs); err != nil {
			return 0, err
		}
		al.stats.CoalesceRight++
		// The combined foot coincides with the old foot of the right
		// neighbor.
		al.insert(b, s+rs+format.PointerOverhead)

	case right == 0:
		ls := al.a.SizeOf(left)
		if err := al.remove(left, ls); err != nil {
			return 0, err
		}
		al.stats.CoalesceLeft++
		al.insert(left, ls+format.PointerOverhead+s)

	default:
		ls := al.a.SizeOf(left)
		rs := al.a.SizeOf(right)
		if err := al.remove(left, ls); err != nil {
			return 0, err
		}
		if err := al.remove(right, rs); err != nil {
			return 0, err
		}
		al.stats.CoalesceLeft++
		al.stats.CoalesceRight++
		al.insert(left, (right-left)+rs)
	}

	al.stats.BytesFreed += int64(format.QuadsToBytes(s))
	return format.QuadsToBytes(s), nil
}

// SizeOf returns the payload size in bytes of the block at addr. The size of
// a freed block remains readable until its words are reused; callers should
// only rely on addresses they currently own.
func (al *Allocator) SizeOf(addr int) (int, error) {
	_, s, err := al.validateBlock(addr)
	if err != nil {
		return 0, err
	}
	return format.QuadsToBytes(s), nil
}

// validateBlock translates addr to a quad index and vets its size tag.
func (al *Allocator) validateBlock(addr int) (int32, int32, error) {
	if !format.Aligned(addr) ||
		addr < format.QuadsToBytes(format.FirstBlockOffset) ||
		addr >= len(al.a.Bytes()) {
		return 0, 0, fmt.Errorf("%w: address %d", ErrOutOfRange, addr)
	}
	b := format.BytesToQuads(addr)
	s := al.a.Word(b - 1)
	if s < 0 {
		s = -s
	}
	if s < format.MinFreeableSize || b+s >= al.a.Quads() {
		return 0, 0, fmt.Errorf("%w: address %d has implausible size %d",
			ErrInvalidBlock, addr, s)
	}
	return b, s, nil
}

// Inspect walks the arena left to right and returns a snapshot of every
// block past the header. It never mutates.
func (al *Allocator) Inspect() ([]Block, error) {
	var out []Block
	it := al.a.Blocks()
	for {
		blk, err := it.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		rec := Block{
			Offset: format.QuadsToBytes(blk.Offset),
			Size:   format.QuadsToBytes(blk.Size),
			Free:   blk.Free,
		}
		if blk.Free {
			h := al.a.HeightOf(blk.Offset)
			rec.Height = int(h)
			rec.Links = make([]int, h)
			for i := int32(0); i < h; i++ {
				rec.Links[i] = format.QuadsToBytes(al.a.NextOf(blk.Offset, i))
			}
		}
		out = append(out, rec)
	}
}

// Check runs the arena's full integrity sweep.
func (al *Allocator) Check() error {
	return al.a.Check()
}
