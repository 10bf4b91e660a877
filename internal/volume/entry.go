package volume

import "time"

// Entry is the filesystem-agnostic directory listing row returned by
// both the FAT32 and NTFS readers.
type Entry struct {
	Name     string
	Attr     Attr
	Modified time.Time
	Size     uint64
	Sector   uint64
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Attr.Has(AttrDirectory) }
