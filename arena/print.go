package arena

import (
	"errors"
	"fmt"
	"io"

	"github.com/codemix/malloc/internal/format"
)

// Fprint writes a human-readable block map to w, one line per block.
// Diagnostic only; it never mutates the arena.
func Fprint(w io.Writer, a *Arena) error {
	fmt.Fprintf(w, "arena: %d quads (%d bytes), list height %d\n",
		a.Quads(), len(a.Bytes()), a.ListHeight())

	it := a.Blocks()
	for {
		blk, err := it.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		state := "used"
		if blk.Free {
			state = "free"
		}
		fmt.Fprintf(w, "  %8d  %-4s %8d bytes", format.QuadsToBytes(blk.Offset),
			state, format.QuadsToBytes(blk.Size))
		if blk.Free {
			fmt.Fprintf(w, "  h=%d", a.HeightOf(blk.Offset))
		}
		fmt.Fprintln(w)
	}
}
