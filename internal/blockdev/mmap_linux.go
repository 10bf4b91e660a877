//go:build linux
// +build linux

package blockdev

import (
	"fmt"
	"os"
	"syscall"

	"github.com/corvidae/rawvol/internal/volume"
)

// MmapReader is a volume.BlockReader backed by a read-only mmap of the
// entire volume, since decoders need random access across it.
type MmapReader struct {
	data []byte
	f    *os.File
}

var _ volume.BlockReader = (*MmapReader)(nil)

// OpenMmap maps path read-only for the whole of its size.
func OpenMmap(path string) (*MmapReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blockdev: open %s: %w", path, err)
	}

	size, err := fileSize(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("blockdev: %s has zero size", path)
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("blockdev: mmap %s: %w", path, err)
	}

	return &MmapReader{data: data, f: f}, nil
}

func (r *MmapReader) ReadAt(offset int64, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+int64(length) > int64(len(r.data)) {
		return nil, fmt.Errorf("blockdev: read [%d:%d) out of range (size %d)", offset, offset+int64(length), len(r.data))
	}
	out := make([]byte, length)
	copy(out, r.data[offset:offset+int64(length)])
	return out, nil
}

func (r *MmapReader) SizeHint() int64 { return int64(len(r.data)) }

func (r *MmapReader) Close() error {
	err := syscall.Munmap(r.data)
	cerr := r.f.Close()
	if err != nil {
		return fmt.Errorf("blockdev: munmap: %w", err)
	}
	return cerr
}
