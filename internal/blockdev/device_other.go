//go:build !linux
// +build !linux

package blockdev

import "os"

// deviceSize has no portable block-device ioctl outside Linux; callers
// fall back to seek-to-end in fileSize.
func deviceSize(f *os.File) (int64, error) {
	return 0, errUnsupportedPlatform
}

// SectorSize defaults to the universal 512-byte legacy sector size on
// platforms without a BLKSSZGET equivalent wired in.
func SectorSize(f *os.File) int { return 512 }

var errUnsupportedPlatform = platformError("blockdev: device sizing ioctl not supported on this platform")

type platformError string

func (e platformError) Error() string { return string(e) }
