package ntfs

import (
	"testing"

	"github.com/corvidae/rawvol/internal/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestVolume builds an NtfsVolume directly over a hand-assembled
// directory tree, bypassing Open's $MFT scan so the navigation and
// read logic can be exercised without a full synthetic disk image.
func newTestVolume(t *testing.T) *NtfsVolume {
	t.Helper()
	root := &MftRecord{FileID: 5, ParentID: 5, Name: ".", Attr: volume.AttrDirectory}
	docs := &MftRecord{FileID: 6, ParentID: 5, Name: "docs", Attr: volume.AttrDirectory}
	file := &MftRecord{
		FileID: 7, ParentID: 6, Name: "notes.txt",
		Data: DataStream{Resident: true, Content: []byte("hello ntfs"), Size: 10},
	}
	tree, err := buildTree([]*MftRecord{root, docs, file})
	require.NoError(t, err)

	return &NtfsVolume{
		boot:    &BootParameters{BytesPerSector: 512, SectorsPerCluster: 8},
		tree:    tree,
		name:    "C",
		cwd:     tree.Root,
		cwdPath: []string{"C"},
	}
}

func TestNtfsVolumeListsChildrenOfCwd(t *testing.T) {
	v := newTestVolume(t)
	entries, err := v.List("")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "docs", entries[0].Name)
	assert.True(t, entries[0].IsDir())
}

func TestNtfsVolumeChdirIntoSubdirectory(t *testing.T) {
	v := newTestVolume(t)
	require.NoError(t, v.Chdir("docs"))
	entries, err := v.List("")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "notes.txt", entries[0].Name)
}

func TestNtfsVolumeChdirParentIsNoopAtRoot(t *testing.T) {
	v := newTestVolume(t)
	require.NoError(t, v.Chdir(".."))
	assert.Equal(t, "C\\", v.Cwd())
}

func TestNtfsVolumeReadTextResidentContent(t *testing.T) {
	v := newTestVolume(t)
	text, err := v.ReadText(`C\docs\notes.txt`)
	require.NoError(t, err)
	assert.Equal(t, "hello ntfs", text)
}

func TestNtfsVolumeNameLookupIsCaseSensitive(t *testing.T) {
	v := newTestVolume(t)
	_, err := v.ReadText(`C\Docs\notes.txt`)
	require.Error(t, err)
	assert.ErrorIs(t, err, volume.ErrNotFound)
}
