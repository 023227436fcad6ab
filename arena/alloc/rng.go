package alloc

import (
	"math/rand"

	"github.com/codemix/malloc/internal/format"
)

// newDefaultSource returns the height source used when the caller injects
// none.
func newDefaultSource() Source {
	return rand.New(rand.NewSource(rand.Int63()))
}

// randomHeight samples a geometric distribution with p = 1/2: start at one
// and keep flipping while the coin lands heads, capped at the maximum
// height. One word is drawn per flip so a pinned source maps one value to
// one flip.
func (al *Allocator) randomHeight() int32 {
	h := int32(1)
	for h < format.MaxHeight && al.rng.Uint32()&1 == 1 {
		h++
	}
	return h
}
