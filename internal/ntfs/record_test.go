package ntfs

import (
	"encoding/binary"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/corvidae/rawvol/internal/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTimeToTime(t *testing.T) {
	got := fileTimeToTime(130000000000000000)
	want := time.Date(2012, time.December, 30, 7, 46, 40, 0, time.UTC)
	assert.Equal(t, want, got)
}

func TestReadLEUint(t *testing.T) {
	assert.Equal(t, uint64(0x0201), readLEUint([]byte{0x01, 0x02}))
	assert.Equal(t, uint64(0), readLEUint(nil))
}

func putU16(b []byte, off int, v uint16) { binary.LittleEndian.PutUint16(b[off:], v) }
func putU32(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:], v) }
func putU64(b []byte, off int, v uint64) { binary.LittleEndian.PutUint64(b[off:], v) }

// buildStandardInformationAttr builds a STANDARD_INFORMATION attribute
// body whose content starts at offset 20 within the body, matching the
// offsets parseStandardInformation reads.
func buildStandardInformationAttr(created, modified uint64, attrFlags uint32) []byte {
	body := make([]byte, 56)
	putU16(body, 0x14, 20)
	content := body[20:56]
	putU64(content, 0, created)
	putU64(content, 8, modified)
	putU32(content, 32, attrFlags)
	return body
}

// buildFileNameAttr builds a FILE_NAME attribute body with its content
// at offset 24, matching the offsets parseFileName reads.
func buildFileNameAttr(parentID uint64, name string) []byte {
	units := utf16.Encode([]rune(name))
	nameLen := len(units)
	size := 66 + nameLen*2
	body := make([]byte, 24+size)
	putU32(body, 0x10, uint32(size))
	putU16(body, 0x14, 24)
	content := body[24 : 24+size]
	putU64(content, 0, parentID&0x0000FFFFFFFFFFFF)
	content[64] = byte(nameLen)
	for i, u := range units {
		putU16(content, 66+i*2, u)
	}
	return body
}

func appendAttr(raw []byte, attrType uint32, body []byte) []byte {
	start := len(raw)
	out := append(raw, body...)
	putU32(out[start:], 0, attrType)
	putU32(out[start:], 4, uint32(len(body)))
	return out
}

func buildMftRecord(fileID uint32, parentID uint64, name string, attrFlags uint32) []byte {
	const attrsOffset = 56
	raw := make([]byte, attrsOffset)
	copy(raw[0:4], "FILE")
	putU16(raw, 0x14, attrsOffset)
	putU16(raw, 0x16, recordInUse)
	putU32(raw, 0x2C, fileID)

	raw = appendAttr(raw, attrStandardInformation, buildStandardInformationAttr(130000000000000000, 130000000000000000, attrFlags))
	raw = appendAttr(raw, attrFileName, buildFileNameAttr(parentID, name))
	raw = append(raw, make([]byte, 8)...)
	putU32(raw[len(raw)-8:], 0, attrEnd)
	return raw
}

func TestParseMftRecordDecodesNameAndParent(t *testing.T) {
	raw := buildMftRecord(5, 2, "FILE.TXT", 0x20)
	rec, err := parseMftRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), rec.FileID)
	assert.Equal(t, uint64(2), rec.ParentID)
	assert.Equal(t, "FILE.TXT", rec.Name)
	assert.False(t, rec.IsDirectory())
}

func TestParseMftRecordRejectsBadMagic(t *testing.T) {
	raw := make([]byte, 64)
	copy(raw[0:4], "XXXX")
	_, err := parseMftRecord(raw)
	require.Error(t, err)
}

func TestParseMftRecordRejectsNotInUse(t *testing.T) {
	raw := buildMftRecord(5, 2, "FILE.TXT", 0x20)
	putU16(raw, 0x16, 0)
	_, err := parseMftRecord(raw)
	require.Error(t, err)
}

func TestMftRecordIsActiveExcludesSystemAndHidden(t *testing.T) {
	rec := &MftRecord{Attr: volume.AttrSystem}
	assert.False(t, rec.IsActive())
	rec2 := &MftRecord{Attr: volume.AttrArchive}
	assert.True(t, rec2.IsActive())
}
