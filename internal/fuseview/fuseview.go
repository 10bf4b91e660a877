//go:build linux
// +build linux

// Package fuseview projects a volume.Volume onto a FUSE mountpoint,
// read-only. It walks the volume's real directory tree and always
// resolves absolute, volume-rooted paths so concurrent lookups never
// have to touch the volume's mutable current-directory state.
package fuseview

import (
	"context"
	"os"
	"sort"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/corvidae/rawvol/internal/volume"
)

// volumeFS is the bazil.org/fuse filesystem root.
type volumeFS struct {
	vol volume.Volume
}

func (vfs *volumeFS) Root() (fs.Node, error) {
	return &dirNode{vfs: vfs, segments: nil}, nil
}

// dirNode implements fs.Node and fs.HandleReadDirAller for one
// directory, addressed by its path segments below the volume root.
type dirNode struct {
	vfs      *volumeFS
	segments []string
}

func (d *dirNode) absPath() string {
	return strings.Join(append([]string{d.vfs.vol.Name()}, d.segments...), `\`)
}

func (d *dirNode) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *dirNode) Lookup(ctx context.Context, name string) (fs.Node, error) {
	entries, err := d.vfs.vol.List(d.absPath())
	if err != nil {
		return nil, fuse.ENOENT
	}
	for _, e := range entries {
		if e.Name != name {
			continue
		}
		childSegments := append(append([]string{}, d.segments...), name)
		if e.IsDir() {
			return &dirNode{vfs: d.vfs, segments: childSegments}, nil
		}
		return d.openFile(childSegments, e.Size)
	}
	return nil, fuse.ENOENT
}

func (d *dirNode) openFile(segments []string, size uint64) (fs.Node, error) {
	path := strings.Join(append([]string{d.vfs.vol.Name()}, segments...), `\`)
	text, err := d.vfs.vol.ReadText(path)
	if err != nil {
		// Non-text content is out of scope for this browser; surface
		// the file with empty content rather than failing the lookup.
		return &fileNode{data: nil}, nil
	}
	return &fileNode{data: []byte(text)}, nil
}

func (d *dirNode) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	entries, err := d.vfs.vol.List(d.absPath())
	if err != nil {
		return nil, err
	}

	dirents := make([]fuse.Dirent, len(entries))
	for i, e := range entries {
		typ := fuse.DT_File
		if e.IsDir() {
			typ = fuse.DT_Dir
		}
		dirents[i] = fuse.Dirent{Inode: uint64(i + 1), Name: e.Name, Type: typ}
	}
	sort.Slice(dirents, func(i, j int) bool { return dirents[i].Name < dirents[j].Name })
	return dirents, nil
}

// fileNode implements fs.Node and fs.HandleReader over fully-decoded
// text content, clamping reads to the content length.
type fileNode struct {
	data []byte
}

func (f *fileNode) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(len(f.data))
	return nil
}

func (f *fileNode) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	offset := req.Offset
	size := req.Size

	if offset >= int64(len(f.data)) {
		resp.Data = []byte{}
		return nil
	}
	if offset+int64(size) > int64(len(f.data)) {
		size = int(int64(len(f.data)) - offset)
	}
	resp.Data = f.data[offset : offset+int64(size)]
	return nil
}
