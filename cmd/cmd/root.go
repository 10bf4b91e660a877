package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "rawvol"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - read-only FAT32/NTFS raw volume browser",
	}

	rootCmd.PersistentFlags().String("log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")

	rootCmd.AddCommand(DefineBrowseCommand())
	rootCmd.AddCommand(DefineMountCommand())
	rootCmd.AddCommand(DefineVolumesCommand())

	return rootCmd.Execute()
}
