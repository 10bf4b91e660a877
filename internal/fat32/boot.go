// Package fat32 implements a read-only FAT32 volume browser: boot
// sector parsing, cluster-chain resolution, long/short directory entry
// decoding, and path-based navigation, decoding fields with
// binary.LittleEndian over byte slices into validated structs.
package fat32

import (
	"encoding/binary"
	"fmt"

	"github.com/corvidae/rawvol/internal/volume"
)

// BootParameters is the subset of the FAT32 BIOS Parameter Block the
// browser needs to locate the FAT and the data region.
type BootParameters struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	TotalSectors      uint32
	SectorsPerFAT     uint32
	RootCluster       uint32
	FATLabel          string
}

const bootSectorSize = 512

func parseBootParameters(data []byte) (*BootParameters, error) {
	if len(data) < bootSectorSize {
		return nil, fmt.Errorf("fat32: boot sector short read: got %d bytes, want %d", len(data), bootSectorSize)
	}

	label := string(data[0x52:0x5A])
	if label != "FAT32   " {
		return nil, volume.New(volume.NotThisFormat, "")
	}

	bp := &BootParameters{
		BytesPerSector:    binary.LittleEndian.Uint16(data[0x0B:0x0D]),
		SectorsPerCluster: data[0x0D],
		ReservedSectors:   binary.LittleEndian.Uint16(data[0x0E:0x10]),
		NumFATs:           data[0x10],
		TotalSectors:      binary.LittleEndian.Uint32(data[0x20:0x24]),
		SectorsPerFAT:     binary.LittleEndian.Uint32(data[0x24:0x28]),
		RootCluster:       binary.LittleEndian.Uint32(data[0x2C:0x30]),
		FATLabel:          label,
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
		return fmt.Errorf("fat32: implausible bytes-per-sector %d", bp.BytesPerSector)
	}
	if bp.SectorsPerCluster == 0 || bp.SectorsPerCluster&(bp.SectorsPerCluster-1) != 0 {
		return fmt.Errorf("fat32: sectors-per-cluster %d is not a power of two", bp.SectorsPerCluster)
	}
	if bp.NumFATs == 0 {
		return fmt.Errorf("fat32: zero FAT copies declared")
	}
	return nil
}

// DataStartSector is the first sector of the data (cluster) region.
func (bp *BootParameters) DataStartSector() uint32 {
	return uint32(bp.ReservedSectors) + uint32(bp.NumFATs)*bp.SectorsPerFAT
}

// ClusterSector returns the first sector of the given cluster number.
func (bp *BootParameters) ClusterSector(cluster uint32) uint32 {
	return bp.DataStartSector() + (cluster-2)*uint32(bp.SectorsPerCluster)
}

// ClusterSize is the byte size of one cluster.
func (bp *BootParameters) ClusterSize() int {
	return int(bp.SectorsPerCluster) * int(bp.BytesPerSector)
}
