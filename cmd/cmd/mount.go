package cmd

import (
	"path/filepath"
	"strings"

	"github.com/corvidae/rawvol/internal/fuseview"
	"github.com/spf13/cobra"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mount <volume>",
		Short:        "Mount a FAT32 or NTFS volume read-only over FUSE",
		Long:         `The 'mount' command opens a disk image, partition, or raw device, auto-detects whether it holds a FAT32 or NTFS filesystem, and serves it read-only at the given mountpoint until interrupted.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMount,
	}
	cmd.Flags().StringP("mountpoint", "m", "", "directory to mount at (defaults to the volume's base name without its extension, or with _mnt appended when it has none)")
	cmd.Flags().StringP("name", "n", "", "volume label to display (defaults to the base name of the path)")
	cmd.Flags().IntP("partition", "p", 0, "1-based MBR partition index to mount, when the path is a whole-disk image")
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filepath.Base(args[0])
	}
	partition, _ := cmd.Flags().GetInt("partition")

	mountpoint, _ := cmd.Flags().GetString("mountpoint")
	if mountpoint == "" {
		mountpoint = defaultMountpoint(args[0])
	}

	vol, err := openVolume(args[0], name, partition, log)
	if err != nil {
		return err
	}
	defer vol.Close()

	return fuseview.Mount(mountpoint, vol, log.With("fuseview"))
}

// defaultMountpoint derives a mountpoint name from the volume path by
// stripping its extension, or by appending "_mnt" when it has none.
func defaultMountpoint(volumePath string) string {
	base := filepath.Base(volumePath)
	ext := filepath.Ext(base)
	base = strings.TrimSuffix(base, ext)
	if ext == "" {
		base += "_mnt"
	}
	return base
}
