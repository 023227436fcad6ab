// Package malloc is the public entry point for the arena allocator: a
// best-fit, coalescing allocator over a caller-supplied fixed-size byte
// region.
//
// The region is the persisted format. Construct over a fresh buffer and the
// allocator formats it; construct over a region that already carries a valid
// header (a re-opened file mapping, a shared-memory segment) and it is
// adopted as-is after an integrity check. All offsets and sizes at this
// layer are bytes.
package malloc

import (
	"context"
	"fmt"

	"github.com/codemix/malloc/arena"
	"github.com/codemix/malloc/arena/alloc"
	"github.com/codemix/malloc/arena/dirty"
	"github.com/codemix/malloc/internal/buf"
	"github.com/codemix/malloc/internal/format"
)

// Re-exported sentinels so callers need only this package.
var (
	ErrOutOfRange   = alloc.ErrOutOfRange
	ErrInvalidBlock = alloc.ErrInvalidBlock
	ErrCorrupt      = arena.ErrCorrupt
)

// Block is one record of an Inspect snapshot.
type Block = alloc.Block

// Stats holds the allocator's counters.
type Stats = alloc.Stats

// FirstBlockOffset is the byte offset of the first allocation an arena can
// return; every offset Alloc yields is at least this.
const FirstBlockOffset = format.FirstBlockOffset * format.PointerSize

// MinAllocSize is the smallest request Alloc accepts, in bytes.
const MinAllocSize = format.MinFreeableBytes

// Overhead is the fixed byte cost of a managed region: the header block with
// its tags plus the first block's tag pair.
const Overhead = format.OverheadBytes

// Allocator manages one contiguous region.
//
// NOT thread-safe. Wrap it in a mutex when sharing across goroutines.
type Allocator struct {
	al *alloc.Allocator
	f  *arena.File
	dt *dirty.Tracker
}

// New builds an allocator over region (or the sub-region selected with
// WithOffset and WithLength). The sub-region must be pointer-aligned and
// large enough for the header plus one minimal block.
func New(region []byte, opts ...Option) (*Allocator, error) {
	var o options
	o.length = -1
	for _, opt := range opts {
		opt(&o)
	}

	length := o.length
	if length < 0 {
		length = len(region) - o.offset
	}
	if !format.Aligned(o.offset) || !format.Aligned(length) {
		return nil, fmt.Errorf("%w: sub-region %d+%d not pointer-aligned",
			ErrOutOfRange, o.offset, length)
	}
	sub, ok := buf.Slice(region, o.offset, length)
	if !ok {
		return nil, fmt.Errorf("%w: sub-region %d+%d outside region of %d bytes",
			ErrOutOfRange, o.offset, length, len(region))
	}

	a, err := arena.New(sub)
	if err != nil {
		return nil, err
	}
	dt := o.dt
	if dt != nil && o.offset > 0 {
		// Dirty ranges are flushed against the backing region, so rebase
		// sub-region offsets before they reach the tracker.
		dt = offsetTracker{dt: dt, base: o.offset}
	}
	al, err := alloc.New(a, dt, o.rng)
	if err != nil {
		return nil, err
	}
	return &Allocator{al: al}, nil
}

// offsetTracker rebases sub-region offsets onto the backing region.
type offsetTracker struct {
	dt   arena.DirtyTracker
	base int
}

func (t offsetTracker) Add(off, length int) { t.dt.Add(t.base+off, length) }

// Open maps the file at path and builds an allocator over it, adopting the
// contents when the header verifies and formatting them otherwise. A dirty
// tracker is attached so Flush can push changed pages to disk; Close
// releases the mapping.
func Open(path string, opts ...Option) (*Allocator, error) {
	f, err := arena.OpenFile(path)
	if err != nil {
		return nil, err
	}

	dt := dirty.NewTracker(f)
	m, err := New(f.Bytes(), append(opts, withTracker(dt))...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	m.f = f
	m.dt = dt
	return m, nil
}

// Alloc reserves n bytes and returns the byte offset of the block, or 0 when
// the arena has no block large enough. Out of memory is not an error.
func (m *Allocator) Alloc(n int) (int, error) {
	return m.al.Alloc(n)
}

// Free releases the block at addr, coalescing with free neighbors, and
// returns the block's allocated size in bytes.
func (m *Allocator) Free(addr int) (int, error) {
	return m.al.Free(addr)
}

// SizeOf returns the payload size in bytes of the block at addr.
func (m *Allocator) SizeOf(addr int) (int, error) {
	return m.al.SizeOf(addr)
}

// Inspect returns a snapshot of every block in the arena.
func (m *Allocator) Inspect() ([]Block, error) {
	return m.al.Inspect()
}

// Stats returns the allocator's counters.
func (m *Allocator) Stats() Stats {
	return m.al.Stats()
}

// Check runs a full integrity sweep.
func (m *Allocator) Check() error {
	return m.al.Check()
}

// Flush pushes dirty pages to disk. It is a no-op for allocators constructed
// over plain byte slices.
func (m *Allocator) Flush(ctx context.Context) error {
	if m.dt == nil {
		return nil
	}
	return m.dt.Flush(ctx)
}

// Sync flushes dirty pages and syncs the backing file descriptor.
func (m *Allocator) Sync(ctx context.Context) error {
	if m.dt == nil {
		return nil
	}
	return m.dt.Sync(ctx)
}

// Close releases the file mapping, if any. The allocator must not be used
// afterwards.
func (m *Allocator) Close() error {
	if m.f == nil {
		return nil
	}
	err := m.f.Close()
	m.f = nil
	return err
}
