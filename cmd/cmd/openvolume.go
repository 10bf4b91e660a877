package cmd

import (
	"fmt"
	"os"

	"github.com/corvidae/rawvol/internal/blockdev"
	"github.com/corvidae/rawvol/internal/fat32"
	"github.com/corvidae/rawvol/internal/logger"
	"github.com/corvidae/rawvol/internal/ntfs"
	"github.com/corvidae/rawvol/internal/volume"
	"github.com/spf13/cobra"
)

func newLogger(cmd *cobra.Command) *logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(os.Stderr, logger.ParseLevel(level)).With(AppName)
}

// openReader opens path as a memory-mapped block reader where
// available, falling back to a plain os.File-backed reader elsewhere.
func openReader(path string) (volume.BlockReader, error) {
	path = blockdev.NormalizeVolumePath(path)
	if r, err := blockdev.OpenMmap(path); err == nil {
		return r, nil
	}
	return blockdev.OpenFile(path)
}

// openVolume opens path and auto-detects whether it holds a FAT32 or
// NTFS volume. When partition is positive, it is treated as a
// 1-based index into the MBR partition table and reads are restricted
// to that partition's byte range instead of the whole device.
func openVolume(path, name string, partition int, log *logger.Logger) (volume.Volume, error) {
	reader, err := openReader(path)
	if err != nil {
		return nil, err
	}

	if partition > 0 {
		parts, err := blockdev.ReadMBRPartitions(reader)
		if err != nil {
			return nil, err
		}
		if partition > len(parts) {
			return nil, fmt.Errorf("rawvol: %s has %d partition(s), no partition %d", path, len(parts), partition)
		}
		reader = blockdev.NewPartitionReader(reader, parts[partition-1])
	}

	if fat32.Detect(reader) {
		return fat32.Open(name, reader, log.With("fat32"))
	}
	if ntfs.Detect(reader) {
		return ntfs.Open(name, reader, log.With("ntfs"))
	}

	if c, ok := reader.(interface{ Close() error }); ok {
		c.Close()
	}
	return nil, fmt.Errorf("rawvol: %s is neither a FAT32 nor an NTFS volume", path)
}
