//go:build !linux
// +build !linux

package fuseview

import (
	"fmt"

	"github.com/corvidae/rawvol/internal/logger"
	"github.com/corvidae/rawvol/internal/volume"
)

// Mount is only supported on Linux, where bazil.org/fuse can serve a
// real mountpoint.
func Mount(mountpoint string, vol volume.Volume, log *logger.Logger) error {
	return fmt.Errorf("fuseview: FUSE mount is only supported on linux")
}
