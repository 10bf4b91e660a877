package fat32

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/corvidae/rawvol/internal/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBootSector(bytesPerSector uint16, sectorsPerCluster uint8, reserved uint16, numFATs uint8, sectorsPerFAT, rootCluster uint32, label string) []byte {
	data := make([]byte, bootSectorSize)
	binary.LittleEndian.PutUint16(data[0x0B:0x0D], bytesPerSector)
	data[0x0D] = sectorsPerCluster
	binary.LittleEndian.PutUint16(data[0x0E:0x10], reserved)
	data[0x10] = numFATs
	binary.LittleEndian.PutUint32(data[0x24:0x28], sectorsPerFAT)
	binary.LittleEndian.PutUint32(data[0x2C:0x30], rootCluster)
	copy(data[0x52:0x5A], label)
	return data
}

func TestParseBootParametersValid(t *testing.T) {
	data := buildBootSector(512, 8, 32, 2, 1000, 2, "FAT32   ")
	bp, err := parseBootParameters(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(512), bp.BytesPerSector)
	assert.Equal(t, uint8(8), bp.SectorsPerCluster)
	assert.Equal(t, uint32(2), bp.RootCluster)
	assert.Equal(t, uint32(32+2*1000), bp.DataStartSector())
	assert.Equal(t, 4096, bp.ClusterSize())
}

func TestParseBootParametersRejectsWrongLabel(t *testing.T) {
	data := buildBootSector(512, 8, 32, 2, 1000, 2, "NTFS    ")
	_, err := parseBootParameters(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, volume.ErrNotThisFormat))
}

func TestParseBootParametersRejectsNonPowerOfTwoCluster(t *testing.T) {
	data := buildBootSector(512, 3, 32, 2, 1000, 2, "FAT32   ")
	_, err := parseBootParameters(data)
	require.Error(t, err)
}

func TestClusterSector(t *testing.T) {
	data := buildBootSector(512, 8, 32, 2, 1000, 2, "FAT32   ")
	bp, err := parseBootParameters(data)
	require.NoError(t, err)
	assert.Equal(t, bp.DataStartSector(), bp.ClusterSector(2))
	assert.Equal(t, bp.DataStartSector()+8, bp.ClusterSector(3))
}
