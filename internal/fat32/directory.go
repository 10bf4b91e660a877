package fat32

import (
	"strings"

	"github.com/corvidae/rawvol/internal/volume"
)

// Directory is a decoded run of 32-byte directory slots with long-name
// subentries folded onto the short entry that terminates them, by
// accumulating fragments until a short entry flushes them as one name.
type Directory struct {
	entries []DirEntry
}

func parseDirectory(data []byte) *Directory {
	var acc string
	entries := make([]DirEntry, 0, len(data)/32)

	for i := 0; i+32 <= len(data); i += 32 {
		e := parseDirEntry(data[i : i+32])
		switch e.Kind {
		case KindEmpty, KindDeleted:
			acc = ""
		case KindSubentry:
			acc = e.NameFragment + acc
		default:
			if acc != "" {
				e.Name = acc
			}
			acc = ""
		}
		entries = append(entries, e)
	}

	return &Directory{entries: entries}
}

// ActiveEntries returns the short entries that represent real, visible
// files or subdirectories: not empty, deleted, a long-name subentry, a
// volume label, and not flagged SYSTEM.
func (d *Directory) ActiveEntries() []DirEntry {
	var out []DirEntry
	for _, e := range d.entries {
		if e.Kind != KindShort {
			continue
		}
		if e.Attr.Has(volume.AttrSystem) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Find looks up an active entry by name, case-insensitively.
func (d *Directory) Find(name string) *DirEntry {
	for i := range d.entries {
		e := &d.entries[i]
		if e.Kind != KindShort || e.Attr.Has(volume.AttrSystem) {
			continue
		}
		if strings.EqualFold(e.Name, name) {
			return e
		}
	}
	return nil
}
