package fat32

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/corvidae/rawvol/internal/textenc"
	"github.com/corvidae/rawvol/internal/volume"
)

// EntryKind tags what a raw 32-byte directory slot actually holds.
type EntryKind uint8

const (
	KindEmpty EntryKind = iota
	KindDeleted
	KindSubentry
	KindVolumeLabel
	KindShort
)

// DirEntry is a decoded 32-byte FAT32 directory slot. Only KindShort
// entries carry a resolved Name, timestamps and data location; the
// others exist so Directory can fold long-name subentries onto the
// short entry that follows them.
type DirEntry struct {
	Kind EntryKind

	// Populated for KindSubentry.
	Ordinal      byte
	NameFragment string

	// Populated for KindShort (and, partially, KindVolumeLabel).
	Name         string
	Attr         volume.Attr
	Created      time.Time
	Modified     time.Time
	StartCluster uint32
	Size         uint32
}

func parseDirEntry(raw []byte) DirEntry {
	switch raw[0] {
	case 0x00:
		return DirEntry{Kind: KindEmpty}
	case 0xE5:
		return DirEntry{Kind: KindDeleted}
	}

	attrByte := raw[0x0B]
	if attrByte == 0x0F {
		return DirEntry{Kind: KindSubentry, Ordinal: raw[0], NameFragment: extractLongNameFragment(raw)}
	}

	attr := volume.Attr(attrByte & 0x3F)
	name := decodeShortName(raw[0:8], raw[8:11])

	if attr.Has(volume.AttrVolumeLabel) {
		return DirEntry{Kind: KindVolumeLabel, Attr: attr, Name: name}
	}

	created := decodeFATDateTime(
		binary.LittleEndian.Uint16(raw[0x10:0x12]),
		binary.LittleEndian.Uint16(raw[0x0E:0x10]),
	)
	modified := decodeFATDateTime(
		binary.LittleEndian.Uint16(raw[0x18:0x1A]),
		binary.LittleEndian.Uint16(raw[0x16:0x18]),
	)

	hi := binary.LittleEndian.Uint16(raw[0x14:0x16])
	lo := binary.LittleEndian.Uint16(raw[0x1A:0x1C])
	startCluster := uint32(hi)<<16 | uint32(lo)
	size := binary.LittleEndian.Uint32(raw[0x1C:0x20])

	return DirEntry{
		Kind:         KindShort,
		Name:         name,
		Attr:         attr,
		Created:      created,
		Modified:     modified,
		StartCluster: startCluster,
		Size:         size,
	}
}

func decodeShortName(nameField, extField []byte) string {
	name := strings.TrimRight(string(nameField), " ")
	ext := strings.TrimRight(string(extField), " ")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// decodeFATDateTime decodes the standard FAT date/time bitfields:
// date = yyyyyyymmmmddddd (year offset from 1980, 1-based month/day),
// time = hhhhhmmmmmmsssss (seconds in 2-second units).
func decodeFATDateTime(date, timeField uint16) time.Time {
	year := 1980 + int((date>>9)&0x7F)
	month := int((date >> 5) & 0x0F)
	day := int(date & 0x1F)
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}

	hour := int((timeField >> 11) & 0x1F)
	minute := int((timeField >> 5) & 0x3F)
	second := int(timeField&0x1F) * 2

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}

// extractLongNameFragment pulls the 13 UTF-16 code units out of a long
// name subentry (bytes 1-10, 14-25, 28-31), stopping at a 0xFFFF or
// 0x0000 terminator if one appears before the end of the field.
func extractLongNameFragment(raw []byte) string {
	buf := make([]byte, 0, 26)
	for _, rng := range [][2]int{{0x01, 0x0B}, {0x0E, 0x1A}, {0x1C, 0x20}} {
		buf = append(buf, raw[rng[0]:rng[1]]...)
	}
	for i := 0; i+1 < len(buf); i += 2 {
		if (buf[i] == 0xFF && buf[i+1] == 0xFF) || (buf[i] == 0x00 && buf[i+1] == 0x00) {
			buf = buf[:i]
			break
		}
	}
	return textenc.DecodeUTF16LE(buf)
}
