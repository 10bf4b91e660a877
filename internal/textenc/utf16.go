// Package textenc decodes the UTF-16LE byte strings used by both FAT32
// long filenames and NTFS $FILE_NAME attributes. Grounded on the
// soypat-fat reference decoder's choice of unicode/utf16 +
// unicode/utf8 over a text-conversion library: that repo declares
// golang.org/x/text in its go.mod but never actually imports it for
// this concern, so the precedent this module follows is the stdlib
// one, not the unused dependency.
package textenc

import (
	"encoding/binary"
	"unicode/utf16"
)

// DecodeUTF16LE decodes a little-endian UTF-16 byte slice into a Go
// string. A trailing odd byte, if any, is dropped rather than treated
// as an error since directory-entry name fields are fixed-width.
func DecodeUTF16LE(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(units))
}
