package alloc

import "errors"

var (
	// ErrOutOfRange indicates a size or address argument that fails
	// validation: misaligned, below the minimum, or outside the arena.
	// Raised before any state mutation.
	ErrOutOfRange = errors.New("alloc: argument out of range")

	// ErrInvalidBlock indicates an address that does not point at a
	// currently-allocated block. The arena is left unmodified.
	ErrInvalidBlock = errors.New("alloc: not an allocated block")
)
