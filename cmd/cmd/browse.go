package cmd

import (
	"os"
	"path/filepath"

	"github.com/corvidae/rawvol/internal/shell"
	"github.com/spf13/cobra"
)

func DefineBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "browse <volume>",
		Short:        "Open an interactive shell over a FAT32 or NTFS volume",
		Long:         `The 'browse' command opens a disk image, partition, or raw device, auto-detects whether it holds a FAT32 or NTFS filesystem, and drops into an interactive shell for navigating it.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunBrowse,
	}
	cmd.Flags().StringP("name", "n", "", "volume label to display (defaults to the base name of the path)")
	cmd.Flags().IntP("partition", "p", 0, "1-based MBR partition index to browse, when the path is a whole-disk image")
	return cmd
}

func RunBrowse(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filepath.Base(args[0])
	}
	partition, _ := cmd.Flags().GetInt("partition")

	vol, err := openVolume(args[0], name, partition, log)
	if err != nil {
		return err
	}
	defer vol.Close()

	shell.New(vol, os.Stdin, os.Stdout, log).Run()
	return nil
}
