//go:build !linux
// +build !linux

package blockdev

import "fmt"

// OpenMmap is only available on Linux; elsewhere callers should fall
// back to OpenFile.
func OpenMmap(path string) (*FileReader, error) {
	return nil, fmt.Errorf("blockdev: memory-mapped reader is only supported on linux")
}
