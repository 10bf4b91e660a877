package volume

import "strings"

// Attr mirrors the classic FAT attribute byte, reused verbatim by NTFS
// records for the bits that carry the same meaning (read-only, hidden,
// system, archive) plus a directory bit inferred structurally on NTFS.
type Attr uint8

const (
	AttrReadOnly Attr = 1 << iota
	AttrHidden
	AttrSystem
	AttrVolumeLabel
	AttrDirectory
	AttrArchive
)

// Has reports whether all bits in mask are set.
func (a Attr) Has(mask Attr) bool {
	return a&mask == mask
}

// String renders the attribute set the way directory listings do:
// one letter per set bit, in a fixed order, '-' for bits that are clear.
func (a Attr) String() string {
	var b strings.Builder
	for _, bit := range []struct {
		mask Attr
		c    byte
	}{
		{AttrDirectory, 'd'},
		{AttrReadOnly, 'r'},
		{AttrHidden, 'h'},
		{AttrSystem, 's'},
		{AttrArchive, 'a'},
		{AttrVolumeLabel, 'v'},
	} {
		if a.Has(bit.mask) {
			b.WriteByte(bit.c)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
