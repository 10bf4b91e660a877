package cmd

import (
	"fmt"

	"github.com/corvidae/rawvol/internal/volpick"
	"github.com/corvidae/rawvol/pkg/sysinfo"
	"github.com/spf13/cobra"
)

func DefineVolumesCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "volumes",
		Short:        "List candidate volumes/devices on this host",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunVolumes,
	}
}

func RunVolumes(cmd *cobra.Command, args []string) error {
	info, err := sysinfo.Stat()
	if err == nil {
		fmt.Printf("Host: %s %s %s\n\n", info.Name, info.Release, info.Version)
	}

	devices, err := volpick.List()
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Println("No candidate volumes found.")
		return nil
	}

	fmt.Println("Candidate volumes:")
	for i, d := range devices {
		fmt.Printf("%2d. %s\n", i+1, d)
	}
	return nil
}
