package format

import "encoding/binary"

// Word I/O for the arena's quad array.
//
// The persisted format is 32-bit, host-endian: an arena written by one
// process is adopted byte-for-byte by the next on the same machine, so the
// codec follows the native byte order rather than pinning one.
//
// Implementation: encoding/binary.NativeEndian. The standard library
// implementation is already highly optimized by the compiler; unsafe pointer
// variants provided no measurable benefit and added complexity.

// ReadWord reads the signed 32-bit word at quad index q.
func ReadWord(b []byte, q int32) int32 {
	off := int(q) * PointerSize
	return int32(binary.NativeEndian.Uint32(b[off : off+PointerSize]))
}

// PutWord writes the signed 32-bit word at quad index q.
func PutWord(b []byte, q int32, v int32) {
	off := int(q) * PointerSize
	binary.NativeEndian.PutUint32(b[off:off+PointerSize], uint32(v))
}

// BytesToQuads converts a byte count to quads. The caller must have verified
// alignment; for aligned inputs the conversion is exact.
func BytesToQuads(n int) int32 {
	return int32(n / PointerSize)
}

// QuadsToBytes converts a quad count or index to bytes.
func QuadsToBytes(q int32) int {
	return int(q) * PointerSize
}

// Aligned reports whether n is a multiple of the pointer size.
func Aligned(n int) bool {
	return n%PointerSize == 0
}
