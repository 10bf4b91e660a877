package fat32

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memReader is a trivial in-memory volume.BlockReader for tests.
type memReader struct {
	data []byte
}

func (m *memReader) ReadAt(offset int64, length int) ([]byte, error) {
	if offset < 0 || offset+int64(length) > int64(len(m.data)) {
		return nil, fmt.Errorf("memReader: out of range [%d:%d) of %d", offset, offset+int64(length), len(m.data))
	}
	return m.data[offset : offset+int64(length)], nil
}

func (m *memReader) SizeHint() int64 { return int64(len(m.data)) }

// buildEntryWithLocation extends buildShortEntry with a start cluster
// and size, for entries that need to be resolved further (directories
// or files with readable content).
func buildEntryWithLocation(name, ext string, attr byte, startCluster, size uint32) []byte {
	raw := buildShortEntry(name, ext, attr)
	binary.LittleEndian.PutUint16(raw[0x14:0x16], uint16(startCluster>>16))
	binary.LittleEndian.PutUint16(raw[0x1A:0x1C], uint16(startCluster&0xFFFF))
	binary.LittleEndian.PutUint32(raw[0x1C:0x20], size)
	return raw
}

// buildFat32Image assembles a minimal single-FAT, one-sector-per-cluster
// FAT32 image: root directory (cluster 2) holds a DOCS subdirectory
// (cluster 3), which holds a HELLO.TXT file (cluster 4).
func buildFat32Image(t *testing.T) []byte {
	t.Helper()
	const sectorSize = 512
	image := make([]byte, 6*sectorSize)

	boot := buildBootSector(sectorSize, 1, 1, 1, 1, 2, "FAT32   ")
	copy(image[0:sectorSize], boot)

	fat := image[sectorSize : 2*sectorSize]
	binary.LittleEndian.PutUint32(fat[2*4:3*4], 0x0FFFFFFF)
	binary.LittleEndian.PutUint32(fat[3*4:4*4], 0x0FFFFFFF)
	binary.LittleEndian.PutUint32(fat[4*4:5*4], 0x0FFFFFFF)

	rootDir := image[2*sectorSize : 3*sectorSize]
	copy(rootDir[0:32], buildEntryWithLocation("DOCS", "", 0x10, 3, 0))

	subDir := image[3*sectorSize : 4*sectorSize]
	copy(subDir[0:32], buildEntryWithLocation("HELLO", "TXT", 0x20, 4, 11))

	fileData := image[4*sectorSize : 5*sectorSize]
	copy(fileData, "hello world")

	return image
}

func openTestVolume(t *testing.T) *Fat32Volume {
	t.Helper()
	image := buildFat32Image(t)
	v, err := Open("C", &memReader{data: image}, nil)
	require.NoError(t, err)
	return v
}

func TestFat32VolumeListsRootDirectory(t *testing.T) {
	v := openTestVolume(t)
	entries, err := v.List("")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DOCS", entries[0].Name)
	assert.True(t, entries[0].IsDir())
}

func TestFat32VolumeChdirAndListSubdirectory(t *testing.T) {
	v := openTestVolume(t)
	require.NoError(t, v.Chdir("DOCS"))
	entries, err := v.List("")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "HELLO.TXT", entries[0].Name)
	assert.False(t, entries[0].IsDir())
}

func TestFat32VolumeReadTextByAbsolutePath(t *testing.T) {
	v := openTestVolume(t)
	text, err := v.ReadText(`C\DOCS\HELLO.TXT`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestFat32VolumePathResolutionIsCaseInsensitive(t *testing.T) {
	v := openTestVolume(t)
	require.NoError(t, v.Chdir("docs"))
	text, err := v.ReadText("hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestFat32VolumeName(t *testing.T) {
	v := openTestVolume(t)
	assert.Equal(t, "C", v.Name())
}
