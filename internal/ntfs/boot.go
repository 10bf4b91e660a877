// Package ntfs implements a read-only NTFS volume browser: boot sector
// parsing, MFT record attribute walking, directory tree
// reconstruction from parent file references, and path-based
// navigation. Each MFT record's attributes are walked generically by
// their type/length headers rather than assumed to sit at fixed
// offsets, since attribute order and presence both vary per record.
package ntfs

import (
	"encoding/binary"
	"fmt"

	"github.com/corvidae/rawvol/internal/volume"
)

// BootParameters is the subset of the NTFS boot sector the browser
// needs to locate the $MFT and compute cluster geometry.
type BootParameters struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	MFTLCN            uint64
	MFTMirrLCN        uint64
	RecordSize        int
}

const bootSectorSize = 512

func parseBootParameters(data []byte) (*BootParameters, error) {
	if len(data) < bootSectorSize {
		return nil, fmt.Errorf("ntfs: boot sector short read: got %d bytes, want %d", len(data), bootSectorSize)
	}

	oem := string(data[0x03:0x0B])
	if oem != "NTFS    " {
		return nil, volume.New(volume.NotThisFormat, "")
	}

	bp := &BootParameters{
		BytesPerSector:    binary.LittleEndian.Uint16(data[0x0B:0x0D]),
		SectorsPerCluster: data[0x0D],
		MFTLCN:            binary.LittleEndian.Uint64(data[0x30:0x38]),
		MFTMirrLCN:        binary.LittleEndian.Uint64(data[0x38:0x40]),
	}

	clustersPerRecord := int8(data[0x40])
	clusterSize := int(bp.SectorsPerCluster) * int(bp.BytesPerSector)
	if clustersPerRecord < 0 {
		bp.RecordSize = 1 << uint(-clustersPerRecord)
	} else {
		bp.RecordSize = int(clustersPerRecord) * clusterSize
	}

	if err := bp.validate(); err != nil {
		return nil, err
	}
	return bp, nil
}

func (bp *BootParameters) validate() error {
	switch bp.BytesPerSector {
	case 512, 1024, 2048, 4096:
	default:
		return fmt.Errorf("ntfs: implausible bytes-per-sector %d", bp.BytesPerSector)
	}
	if bp.SectorsPerCluster == 0 {
		return fmt.Errorf("ntfs: zero sectors-per-cluster")
	}
	if bp.RecordSize <= 0 {
		return fmt.Errorf("ntfs: implausible MFT record size %d", bp.RecordSize)
	}
	return nil
}

// ClusterSize is the byte size of one cluster.
func (bp *BootParameters) ClusterSize() int {
	return int(bp.SectorsPerCluster) * int(bp.BytesPerSector)
}
