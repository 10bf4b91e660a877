package fat32

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeFATDateTime(t *testing.T) {
	got := decodeFATDateTime(0x4F21, 0x7B40)
	want := time.Date(2019, time.September, 1, 15, 26, 0, 0, time.UTC)
	assert.Equal(t, want, got)
}

func TestDecodeFATDateTimeClampsZeroMonthAndDay(t *testing.T) {
	got := decodeFATDateTime(0x0000, 0x0000)
	assert.Equal(t, 1980, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 1, got.Day())
}

func buildShortEntry(name, ext string, attr byte) []byte {
	raw := make([]byte, 32)
	copy(raw[0:8], padRight(name, 8))
	copy(raw[8:11], padRight(ext, 3))
	raw[0x0B] = attr
	return raw
}

func padRight(s string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b, s)
	return b
}

func TestParseDirEntryShortName(t *testing.T) {
	raw := buildShortEntry("README", "TXT", 0x20)
	e := parseDirEntry(raw)
	assert.Equal(t, KindShort, e.Kind)
	assert.Equal(t, "README.TXT", e.Name)
}

func TestParseDirEntrySentinels(t *testing.T) {
	empty := make([]byte, 32)
	assert.Equal(t, KindEmpty, parseDirEntry(empty).Kind)

	deleted := make([]byte, 32)
	deleted[0] = 0xE5
	assert.Equal(t, KindDeleted, parseDirEntry(deleted).Kind)
}
