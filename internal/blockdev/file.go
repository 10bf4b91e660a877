// Package blockdev provides volume.BlockReader implementations over raw
// disk images and block devices: a plain os.File-backed reader and a
// memory-mapped reader for Linux.
package blockdev

import (
	"fmt"
	"io"
	"os"

	"github.com/corvidae/rawvol/internal/volume"
)

// FileReader is a volume.BlockReader backed by a plain *os.File, read
// via ReadAt so callers can issue concurrent, independent reads.
type FileReader struct {
	f    *os.File
	size int64
}

var _ volume.BlockReader = (*FileReader)(nil)

// OpenFile opens path read-only and determines its size, falling back
// to seek-to-end for block devices that report a zero Stat size.
func OpenFile(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blockdev: open %s: %w", path, err)
	}

	size, err := fileSize(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &FileReader{f: f, size: size}, nil
}

func fileSize(f *os.File) (int64, error) {
	if fi, err := f.Stat(); err == nil && fi.Size() > 0 {
		return fi.Size(), nil
	}
	if size, err := deviceSize(f); err == nil && size > 0 {
		return size, nil
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("blockdev: determining size of %s: %w", f.Name(), err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("blockdev: rewinding %s: %w", f.Name(), err)
	}
	return size, nil
}

func (r *FileReader) ReadAt(offset int64, length int) ([]byte, error) {
	buf := make([]byte, length)
	n, err := r.f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("blockdev: read [%d:%d) from %s: %w", offset, offset+int64(length), r.f.Name(), err)
	}
	return buf[:n], nil
}

func (r *FileReader) SizeHint() int64 { return r.size }

func (r *FileReader) Close() error { return r.f.Close() }
