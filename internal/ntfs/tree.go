package ntfs

import "github.com/corvidae/rawvol/internal/volume"

// DirectoryTree links decoded MFT records into a parent/child tree by
// file ID: index every record by ID, then attach each one as a child
// of its parent; the record whose parent ID equals its own file ID is
// root.
type DirectoryTree struct {
	byID map[uint64]*MftRecord
	Root *MftRecord
}

func buildTree(records []*MftRecord) (*DirectoryTree, error) {
	t := &DirectoryTree{byID: make(map[uint64]*MftRecord, len(records))}
	for _, r := range records {
		t.byID[r.FileID] = r
	}
	for _, r := range records {
		if r.ParentID == r.FileID {
			t.Root = r
			continue
		}
		if parent, ok := t.byID[r.ParentID]; ok {
			parent.Children = append(parent.Children, r)
		}
	}
	if t.Root == nil {
		return nil, volume.New(volume.CorruptRecord, "no self-parented root record found in $MFT")
	}
	return t, nil
}

// Parent returns r's parent record, or the tree root if r has none
// indexed (covers orphaned records pointing at an unscanned parent ID).
func (t *DirectoryTree) Parent(r *MftRecord) *MftRecord {
	if p, ok := t.byID[r.ParentID]; ok {
		return p
	}
	return t.Root
}
