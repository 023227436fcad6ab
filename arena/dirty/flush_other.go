//go:build !linux && !freebsd && !darwin

package dirty

import (
	"context"

	"github.com/codemix/malloc/arena"
)

// flushRanges writes the private buffer back; without a shared mapping there
// is no finer-grained flush to do.
func (t *Tracker) flushRanges(_ context.Context, _ []byte) error {
	return t.f.WriteBack()
}

func fdatasync(f *arena.File) error {
	return f.WriteBack()
}
