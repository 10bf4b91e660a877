//go:build linux
// +build linux

package blockdev

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// deviceSize queries a block device's size in bytes via BLKGETSIZE64.
func deviceSize(f *os.File) (int64, error) {
	var size uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&size)))
	if errno != 0 {
		return 0, fmt.Errorf("blockdev: BLKGETSIZE64 on %s: %w", f.Name(), errno)
	}
	return int64(size), nil
}

// SectorSize queries a block device's logical sector size via
// BLKSSZGET, falling back to 512 when the ioctl fails (e.g. f is a
// plain disk image rather than a device node).
func SectorSize(f *os.File) int {
	n, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKSSZGET)
	if err != nil || n <= 0 {
		return 512
	}
	return n
}
