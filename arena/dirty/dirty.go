// Package dirty provides efficient tracking and flushing of dirty pages in
// mmap-backed arenas.
//
// The tracker maintains a list of dirty byte ranges, coalesces them into
// page-aligned ranges, and flushes them to disk using platform-specific
// system calls (msync on Unix, a plain write-back elsewhere).
package dirty

import (
	"context"
	"sort"

	"github.com/codemix/malloc/arena"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// standardPageSize is the typical OS page size (4KB).
	standardPageSize = 4096
)

// Range represents a dirty byte range (offsets into the mapped region).
type Range struct {
	Off int64
	Len int64
}

// Tracker accumulates dirty ranges and flushes them efficiently. It
// satisfies arena.DirtyTracker, so attaching it to an arena records every
// word the allocator writes.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	f        *arena.File
	ranges   []Range
	pageSize int64
}

var _ arena.DirtyTracker = (*Tracker)(nil)

// NewTracker creates a dirty tracker for the given file-backed arena.
func NewTracker(f *arena.File) *Tracker {
	return &Tracker{
		f:        f,
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: standardPageSize,
	}
}

// Add records a dirty range. Ranges are page-aligned and coalesced at flush
// time, so Add itself only appends to a slice.
func (t *Tracker) Add(off, length int) {
	t.ranges = append(t.ranges, Range{
		Off: int64(off),
		Len: int64(length),
	})
}

// Flush coalesces the recorded ranges and pushes them to disk. The context
// can cancel the flush between ranges; some ranges may then have been
// flushed while others have not.
func (t *Tracker) Flush(ctx context.Context) error {
	if len(t.ranges) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data := t.f.Bytes()
	if len(data) == 0 {
		return nil
	}

	if err := t.flushRanges(ctx, data); err != nil {
		return err
	}

	t.ranges = t.ranges[:0]
	return nil
}

// Sync flushes pending ranges and then syncs the file descriptor, making the
// arena durable against power loss.
func (t *Tracker) Sync(ctx context.Context) error {
	if err := t.Flush(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fdatasync(t.f)
}

// Reset clears all tracked ranges without flushing.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Ranges returns a copy of the raw, uncoalesced ranges (for tests).
func (t *Tracker) Ranges() []Range {
	out := make([]Range, len(t.ranges))
	copy(out, t.ranges)
	return out
}

// Coalesced returns the page-aligned, merged ranges that a flush would push
// (for tests).
func (t *Tracker) Coalesced() []Range {
	return t.coalesce()
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping or
// adjacent ranges into a non-overlapping sorted slice.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for i := 1; i < len(aligned); i++ {
		next := aligned[i]
		if next.Off <= current.Off+current.Len {
			end := current.Off + current.Len
			if nextEnd := next.Off + next.Len; nextEnd > end {
				end = nextEnd
			}
			current.Len = end - current.Off
		} else {
			merged = append(merged, current)
			current = next
		}
	}
	merged = append(merged, current)

	return merged
}
