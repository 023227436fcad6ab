//go:build linux || freebsd

package dirty

import (
	"context"

	"golang.org/x/sys/unix"

	"github.com/codemix/malloc/arena"
)

// flushRanges msyncs each coalesced range. Linux and FreeBSD handle msync on
// sub-slices of a mapping correctly.
func (t *Tracker) flushRanges(ctx context.Context, data []byte) error {
	for _, r := range t.coalesce() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := int(r.Off)
		end := int(r.Off + r.Len)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			continue
		}
		if err := unix.Msync(data[start:end], unix.MS_SYNC); err != nil {
			return err
		}
	}
	return nil
}

// fdatasync syncs file data without forcing a metadata flush.
func fdatasync(f *arena.File) error {
	return unix.Fdatasync(f.FD())
}
