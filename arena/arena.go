// Package arena provides quad-addressed access to a contiguous memory region
// managed as a sequence of boundary-tagged blocks.
//
// An Arena wraps a caller-supplied byte slice and exposes it as an array of
// 32-bit signed words. Every block in the region is bracketed by a pair of
// tag words holding the payload size in quads: positive for free blocks,
// negative for used ones. Two adjacent blocks share no word, so the foot of
// one and the head of the next sit side by side; neighbor probes during
// coalescing read a single tag word and need no separate adjacency structure.
//
// The arena neither grows nor relocates blocks. Concurrency, if any, must be
// enforced by the caller.
package arena

import (
	"fmt"

	"github.com/codemix/malloc/internal/format"
)

// DirtyTracker receives the byte ranges an arena mutates. Implementations
// coalesce and flush them; see the arena/dirty package.
type DirtyTracker interface {
	Add(off, length int)
}

// Arena is a quad-addressed view over a managed region.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Arena struct {
	data  []byte
	quads int32
	dt    DirtyTracker
}

// New wraps region as an arena. The region length must be a multiple of the
// pointer size and large enough to hold the header block plus one minimal
// free block.
func New(region []byte) (*Arena, error) {
	if !format.Aligned(len(region)) {
		return nil, fmt.Errorf("%w: length %d not a multiple of %d",
			ErrMisaligned, len(region), format.PointerSize)
	}
	if len(region) < format.OverheadBytes+format.MinFreeableBytes {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d",
			ErrRegionTooSmall, len(region), format.OverheadBytes+format.MinFreeableBytes)
	}
	return &Arena{
		data:  region,
		quads: format.BytesToQuads(len(region)),
	}, nil
}

// SetDirtyTracker attaches a tracker that is notified of every word write.
// Pass nil to detach.
func (a *Arena) SetDirtyTracker(dt DirtyTracker) {
	a.dt = dt
}

// Bytes returns the underlying region.
func (a *Arena) Bytes() []byte { return a.data }

// Quads returns the number of addressable words in the region.
func (a *Arena) Quads() int32 { return a.quads }

// Word reads the signed word at quad index q.
func (a *Arena) Word(q int32) int32 {
	return format.ReadWord(a.data, q)
}

// SetWord writes the signed word at quad index q.
func (a *Arena) SetWord(q, v int32) {
	format.PutWord(a.data, q, v)
	if a.dt != nil {
		a.dt.Add(format.QuadsToBytes(q), format.PointerSize)
	}
}
