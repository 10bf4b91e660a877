// Package volume defines the shared contracts both the FAT32 and NTFS
// readers implement: a random-access block source, the directory entry
// shape returned to callers, and a typed error vocabulary.
package volume

// BlockReader is the random-access byte source a volume decoder reads
// from. Implementations live in internal/blockdev.
type BlockReader interface {
	ReadAt(offset int64, length int) ([]byte, error)
	SizeHint() int64
}

// Volume is the read-only, single-rooted filesystem surface exposed by
// both fat32.Fat32Volume and ntfs.NtfsVolume.
type Volume interface {
	// Name returns the volume label used to re-root absolute paths.
	Name() string
	// Describe renders a human-readable volume information block.
	Describe() string
	// Cwd returns the current working directory path.
	Cwd() string
	// List returns the active directory entries at path, or the
	// current directory when path is empty.
	List(path string) ([]Entry, error)
	// Chdir changes the current working directory.
	Chdir(path string) error
	// ReadText reads a file's contents and decodes it as text.
	ReadText(path string) (string, error)
	// Close releases the underlying block source.
	Close() error
}
