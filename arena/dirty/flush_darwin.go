//go:build darwin

package dirty

import (
	"context"

	"golang.org/x/sys/unix"

	"github.com/codemix/malloc/arena"
)

// flushRanges msyncs each coalesced range.
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

// fdatasync uses F_FULLFSYNC: on darwin a plain fsync does not guarantee the
// drive cache is flushed.
func fdatasync(f *arena.File) error {
	_, err := unix.FcntlInt(uintptr(f.FD()), unix.F_FULLFSYNC, 0)
	return err
}
