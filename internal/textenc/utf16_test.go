package textenc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodeUTF16LE(s string) []byte {
	runes := []rune(s)
	buf := make([]byte, 0, len(runes)*2)
	for _, r := range runes {
		u := uint16(r)
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, u)
		buf = append(buf, b...)
	}
	return buf
}

func TestDecodeUTF16LE(t *testing.T) {
	got := DecodeUTF16LE(encodeUTF16LE("hello.txt"))
	assert.Equal(t, "hello.txt", got)
}

func TestDecodeUTF16LEDropsTrailingOddByte(t *testing.T) {
	b := append(encodeUTF16LE("ok"), 0x41)
	got := DecodeUTF16LE(b)
	assert.Equal(t, "ok", got)
}

func TestDecodeUTF16LEEmpty(t *testing.T) {
	assert.Equal(t, "", DecodeUTF16LE(nil))
}
