package arena

import "github.com/codemix/malloc/internal/format"

// VerifyHeader reports whether region begins with a valid header block: the
// header's head and foot tags both carry the fixed header size. A region
// that verifies is adopted as-is, which is what permits persistent and
// mmap-backed reuse across processes.
func VerifyHeader(region []byte) bool {
	if len(region) < format.OverheadBytes {
		return false
	}
	head := format.ReadWord(region, format.HeaderOffset-1)
	foot := format.ReadWord(region, format.HeaderOffset+format.HeaderSize)
	return head == format.HeaderSize && foot == format.HeaderSize
}

// InstallHeader writes a fresh header block and a single free block spanning
// the remainder of the region, overwriting whatever was there.
//
// The header becomes the skip-list sentinel: height 1, level-0 link to the
// initial free block, all other levels looping back to the header itself.
func (a *Arena) InstallHeader() {
	const h = format.HeaderOffset

	a.WriteFreeTags(h, format.HeaderSize)
	a.SetHeightOf(h, 1)
	a.SetNextOf(h, 0, format.FirstBlockOffset)
	for i := int32(1); i < format.MaxHeight; i++ {
		a.SetNextOf(h, i, h)
	}

	// One free block spans everything past the header: its head tag sits
	// right after the header's foot, its foot tag is the region's last word.
	first := int32(format.FirstBlockOffset)
	size := a.quads - (h + format.HeaderSize + format.PointerOverhead + 1)
	a.WriteFreeTags(first, size)
	a.SetHeightOf(first, 1)
	a.SetNextOf(first, 0, h)
}
