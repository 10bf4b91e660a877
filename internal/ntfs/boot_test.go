package ntfs

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/corvidae/rawvol/internal/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildNTFSBootSector(bytesPerSector uint16, sectorsPerCluster uint8, clustersPerRecord int8) []byte {
	data := make([]byte, bootSectorSize)
	copy(data[0x03:0x0B], "NTFS    ")
	binary.LittleEndian.PutUint16(data[0x0B:0x0D], bytesPerSector)
	data[0x0D] = sectorsPerCluster
	data[0x40] = byte(clustersPerRecord)
	return data
}

func TestParseBootParametersNegativeRecordSize(t *testing.T) {
	data := buildNTFSBootSector(512, 8, -10)
	bp, err := parseBootParameters(data)
	require.NoError(t, err)
	assert.Equal(t, 1024, bp.RecordSize)
}

func TestParseBootParametersPositiveRecordSize(t *testing.T) {
	data := buildNTFSBootSector(512, 2, 1)
	bp, err := parseBootParameters(data)
	require.NoError(t, err)
	assert.Equal(t, 1024, bp.RecordSize)
}

func TestParseBootParametersRejectsWrongOEM(t *testing.T) {
	data := buildNTFSBootSector(512, 8, -10)
	copy(data[0x03:0x0B], "FAT32   ")
	_, err := parseBootParameters(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, volume.ErrNotThisFormat))
}
