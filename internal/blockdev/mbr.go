package blockdev

import (
	"encoding/binary"
	"fmt"

	"github.com/corvidae/rawvol/internal/volume"
)

// PartitionType is the one-byte MBR partition type ID.
type PartitionType uint8

const (
	PartitionTypeEmpty         PartitionType = 0x00
	PartitionTypeFAT12         PartitionType = 0x01
	PartitionTypeFAT16Small    PartitionType = 0x04
	PartitionTypeExtendedCHS   PartitionType = 0x05
	PartitionTypeFAT16         PartitionType = 0x06
	PartitionTypeNTFSExFAT     PartitionType = 0x07
	PartitionTypeFAT32CHS      PartitionType = 0x0B
	PartitionTypeFAT32LBA      PartitionType = 0x0C
	PartitionTypeFAT16LBA      PartitionType = 0x0E
	PartitionTypeExtendedLBA   PartitionType = 0x0F
	PartitionTypeLinuxSwap     PartitionType = 0x82
	PartitionTypeLinux         PartitionType = 0x83
	PartitionTypeGPTProtective PartitionType = 0xEE
)

func (t PartitionType) String() string {
	switch t {
	case PartitionTypeEmpty:
		return "empty"
	case PartitionTypeFAT12:
		return "FAT12"
	case PartitionTypeFAT16Small:
		return "FAT16 (<32MB)"
	case PartitionTypeExtendedCHS, PartitionTypeExtendedLBA:
		return "extended"
	case PartitionTypeFAT16, PartitionTypeFAT16LBA:
		return "FAT16"
	case PartitionTypeNTFSExFAT:
		return "NTFS/exFAT"
	case PartitionTypeFAT32CHS, PartitionTypeFAT32LBA:
		return "FAT32"
	case PartitionTypeLinuxSwap:
		return "Linux swap"
	case PartitionTypeLinux:
		return "Linux filesystem"
	case PartitionTypeGPTProtective:
		return "GPT protective"
	default:
		return fmt.Sprintf("unknown (0x%02X)", uint8(t))
	}
}

// Partition is one of the up to four primary entries in an MBR
// partition table.
type Partition struct {
	Bootable     bool
	Type         PartitionType
	StartLBA     uint32
	TotalSectors uint32
}

// Offset returns the partition's byte offset assuming 512-byte sectors.
func (p Partition) Offset() int64 { return int64(p.StartLBA) * 512 }

// Size returns the partition's byte size assuming 512-byte sectors.
func (p Partition) Size() int64 { return int64(p.TotalSectors) * 512 }

// ReadMBRPartitions reads the MBR sector from reader and returns its
// up to four primary partition entries, skipping empty slots. CHS
// fields and the embedded boot code are not captured since LBA
// addressing alone is enough to locate a partition's byte range.
func ReadMBRPartitions(reader volume.BlockReader) ([]Partition, error) {
	data, err := reader.ReadAt(0, 512)
	if err != nil {
		return nil, fmt.Errorf("blockdev: reading MBR: %w", err)
	}
	if len(data) != 512 {
		return nil, fmt.Errorf("blockdev: MBR short read: got %d bytes, want 512", len(data))
	}
	if sig := binary.LittleEndian.Uint16(data[0x1FE:0x200]); sig != 0xAA55 {
		return nil, fmt.Errorf("blockdev: invalid MBR signature 0x%04X", sig)
	}

	var partitions []Partition
	for i := 0; i < 4; i++ {
		entry := data[0x1BE+i*16 : 0x1BE+i*16+16]
		p := Partition{
			Bootable:     entry[0x00] == 0x80,
			Type:         PartitionType(entry[0x04]),
			StartLBA:     binary.LittleEndian.Uint32(entry[0x08:0x0C]),
			TotalSectors: binary.LittleEndian.Uint32(entry[0x0C:0x10]),
		}
		if p.Type == PartitionTypeEmpty {
			continue
		}
		partitions = append(partitions, p)
	}
	return partitions, nil
}

// partitionReader offsets every read by a partition's starting byte,
// so a decoder sees a partition as if it were the whole block device.
type partitionReader struct {
	base   volume.BlockReader
	offset int64
	size   int64
}

var _ volume.BlockReader = (*partitionReader)(nil)

// NewPartitionReader restricts base to the byte range occupied by p.
func NewPartitionReader(base volume.BlockReader, p Partition) volume.BlockReader {
	return &partitionReader{base: base, offset: p.Offset(), size: p.Size()}
}

func (r *partitionReader) ReadAt(offset int64, length int) ([]byte, error) {
	if offset < 0 || offset+int64(length) > r.size {
		return nil, fmt.Errorf("blockdev: partition read [%d:%d) out of range (size %d)", offset, offset+int64(length), r.size)
	}
	return r.base.ReadAt(r.offset+offset, length)
}

func (r *partitionReader) SizeHint() int64 { return r.size }

// Close forwards to the underlying reader if it is closeable, so
// wrapping a reader in a partitionReader doesn't leak its handle.
func (r *partitionReader) Close() error {
	if c, ok := r.base.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
