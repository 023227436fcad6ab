package arena

import "errors"

var (
	// ErrRegionTooSmall indicates the supplied region cannot hold a header
	// block plus one minimal free block.
	ErrRegionTooSmall = errors.New("arena: region too small")

	// ErrMisaligned indicates a region offset or length that is not a
	// multiple of the pointer size.
	ErrMisaligned = errors.New("arena: region not pointer-aligned")

	// ErrCorrupt indicates the arena's structural invariants do not hold.
	// The arena should be considered unusable.
	ErrCorrupt = errors.New("arena: integrity violation")
)
