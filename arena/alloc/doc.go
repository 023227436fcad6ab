// Package alloc implements a best-fit allocator over a boundary-tagged
// arena.
//
// # Overview
//
// Free blocks are indexed by an in-band skip list keyed by block size: each
// free block's payload stores its node height and forward links, so the
// freelist costs no memory beyond the blocks themselves. Allocation finds
// the smallest sufficient block in expected O(log N), splits it when the
// leftover can stand alone as a free block, and returns a byte offset into
// the arena. Freeing probes both boundary-tag neighbors and coalesces with
// any free ones before reinserting, so no two free blocks are ever adjacent.
//
// # Out of memory
//
// Exhaustion is not an error: Alloc returns offset 0 with a nil error when
// no block fits, letting callers back off or fall back without unwrapping
// anything. Errors are reserved for invalid arguments, frees of addresses
// that are not allocated blocks, and integrity violations.
//
// # Determinism
//
// Block placement depends on the random heights drawn at insertion time. The
// random source is injectable; feeding a fixed sequence makes placement
// fully reproducible, which the tests rely on.
//
// # Thread safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally.
//
// # Related packages
//
//   - github.com/codemix/malloc/arena: boundary tags, tiling, integrity
//   - github.com/codemix/malloc/arena/dirty: flushing for mmap-backed arenas
//   - github.com/codemix/malloc/pkg/malloc: the public facade
package alloc
