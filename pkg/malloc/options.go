package malloc

import (
	"github.com/codemix/malloc/arena"
	"github.com/codemix/malloc/arena/alloc"
)

type options struct {
	offset int
	length int
	rng    alloc.Source
	dt     arena.DirtyTracker
}

// Option configures construction.
type Option func(*options)

// WithOffset manages only the region past the first n bytes. n must be a
// multiple of the pointer size.
func WithOffset(n int) Option {
	return func(o *options) { o.offset = n }
}

// WithLength manages only the first n bytes of the (offset-adjusted)
// region. n must be a multiple of the pointer size.
func WithLength(n int) Option {
	return func(o *options) { o.length = n }
}

// WithRand injects the random source driving skip-list heights. Feeding a
// fixed sequence makes block placement reproducible.
func WithRand(src alloc.Source) Option {
	return func(o *options) { o.rng = src }
}

func withTracker(dt arena.DirtyTracker) Option {
	return func(o *options) { o.dt = dt }
}
