package ntfs

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/corvidae/rawvol/internal/logger"
	"github.com/corvidae/rawvol/internal/volume"
)

// NtfsVolume implements volume.Volume over a raw NTFS image or device.
// The $MFT is scanned once at Open into an in-memory directory tree;
// navigation and reads walk that tree instead of re-parsing records.
type NtfsVolume struct {
	reader volume.BlockReader
	boot   *BootParameters
	tree   *DirectoryTree
	name   string

	cwd     *MftRecord
	cwdPath []string

	log *logger.Logger
}

var _ volume.Volume = (*NtfsVolume)(nil)

// Open parses the boot sector, scans $MFT, and builds the directory
// tree. name is the volume label used to re-root absolute paths.
func Open(name string, reader volume.BlockReader, log *logger.Logger) (*NtfsVolume, error) {
	header, err := reader.ReadAt(0, bootSectorSize)
	if err != nil {
		return nil, fmt.Errorf("ntfs: reading boot sector: %w", err)
	}
	boot, err := parseBootParameters(header)
	if err != nil {
		return nil, err
	}

	mftOffset := int64(boot.MFTLCN) * int64(boot.ClusterSize())
	mftFirst, err := reader.ReadAt(mftOffset, boot.RecordSize)
	if err != nil {
		return nil, fmt.Errorf("ntfs: reading $MFT record 0: %w", err)
	}

	numRecords, err := mftRecordCount(mftFirst, boot.RecordSize)
	if err != nil {
		return nil, err
	}

	records := make([]*MftRecord, 0, numRecords)
	for i := 0; i < numRecords; i++ {
		off := mftOffset + int64(i)*int64(boot.RecordSize)
		raw, err := reader.ReadAt(off, boot.RecordSize)
		if err != nil {
			break
		}
		if len(raw) < 4 || string(raw[0:4]) != "FILE" {
			continue
		}
		rec, err := parseMftRecord(raw)
		if err != nil {
			if log != nil {
				log.Debugf("ntfs: skipping unusable record %d: %v", i, err)
			}
			continue
		}
		records = append(records, rec)
	}

	tree, err := buildTree(records)
	if err != nil {
		return nil, err
	}

	v := &NtfsVolume{
		reader:  reader,
		boot:    boot,
		tree:    tree,
		name:    name,
		cwd:     tree.Root,
		cwdPath: []string{name},
		log:     log,
	}
	if log != nil {
		log.Debugf("opened NTFS volume %s: %d records scanned, record size %d", name, len(records), boot.RecordSize)
	}
	return v, nil
}

// mftRecordCount prefers the $MFT record's own DATA attribute (its
// true, authoritative size); when that attribute can't be read it
// falls back to a field-at-0x118 approximation that overcounts by
// rounding up to a full cluster.
func mftRecordCount(mftFirst []byte, recordSize int) (int, error) {
	if rec, err := parseMftRecord(mftFirst); err == nil && rec.Data.Size > 0 {
		return int(rec.Data.Size) / recordSize, nil
	}
	if len(mftFirst) < 0x120 {
		return 0, fmt.Errorf("ntfs: $MFT record too short to approximate size")
	}
	raw := binary.LittleEndian.Uint64(mftFirst[0x118:0x120])
	return int((raw + 1) * 8), nil
}

// visit resolves a path to the record it names, rooted at either the
// volume root (absolute path) or the current directory.
func (v *NtfsVolume) visit(path string) (*MftRecord, error) {
	parts := volume.SplitPath(path)
	cur := v.cwd

	if len(parts) > 0 && strings.EqualFold(parts[0], v.name) {
		cur = v.tree.Root
		parts = parts[1:]
	}

	for _, part := range parts {
		switch part {
		case ".":
			continue
		case "..":
			cur = v.tree.Parent(cur)
			continue
		}
		child := cur.FindChild(part)
		if child == nil {
			return nil, volume.New(volume.NotFound, part)
		}
		if !child.IsDirectory() {
			return nil, volume.New(volume.NotADirectory, part)
		}
		cur = child
	}
	return cur, nil
}

func (v *NtfsVolume) entrySector(r *MftRecord) uint64 {
	if r.Data.Resident {
		return v.boot.MFTLCN*uint64(v.boot.SectorsPerCluster) + r.FileID
	}
	return r.Data.ClusterOffset * uint64(v.boot.SectorsPerCluster)
}

func (v *NtfsVolume) List(path string) ([]volume.Entry, error) {
	dir := v.cwd
	if path != "" {
		d, err := v.visit(path)
		if err != nil {
			return nil, err
		}
		dir = d
	}

	children := dir.ActiveChildren()
	out := make([]volume.Entry, 0, len(children))
	for _, c := range children {
		out = append(out, volume.Entry{
			Name:     c.Name,
			Attr:     c.Attr,
			Modified: c.Modified,
			Size:     c.Data.Size,
			Sector:   v.entrySector(c),
		})
	}
	return out, nil
}

func (v *NtfsVolume) Chdir(path string) error {
	if path == "" {
		return volume.New(volume.RequiresPath, "")
	}
	target, err := v.visit(path)
	if err != nil {
		return err
	}
	v.cwd = target

	parts := volume.SplitPath(path)
	if len(parts) > 0 && strings.EqualFold(parts[0], v.name) {
		v.cwdPath = []string{v.name}
		parts = parts[1:]
	}
	for _, p := range parts {
		switch p {
		case ".":
		case "..":
			// a no-op at the root: the tree has no component above it to pop.
			if len(v.cwdPath) > 1 {
				v.cwdPath = v.cwdPath[:len(v.cwdPath)-1]
			}
		default:
			v.cwdPath = append(v.cwdPath, p)
		}
	}
	return nil
}

func (v *NtfsVolume) Cwd() string {
	if len(v.cwdPath) == 1 {
		return v.cwdPath[0] + `\`
	}
	return strings.Join(v.cwdPath, `\`)
}

func (v *NtfsVolume) ReadText(path string) (string, error) {
	if path == "" {
		return "", volume.New(volume.RequiresPath, "")
	}
	parts := volume.SplitPath(path)
	name := parts[len(parts)-1]

	dir := v.cwd
	if len(parts) > 1 {
		d, err := v.visit(strings.Join(parts[:len(parts)-1], `\`))
		if err != nil {
			return "", err
		}
		dir = d
	}

	record := dir.FindChild(name)
	if record == nil {
		return "", volume.New(volume.NotFound, name)
	}
	if record.IsDirectory() {
		return "", volume.New(volume.IsADirectory, name)
	}

	if record.Data.Resident {
		return volume.DecodeText(record.Data.Content)
	}
	return v.readNonResidentText(record)
}

func (v *NtfsVolume) readNonResidentText(record *MftRecord) (string, error) {
	clusterSize := v.boot.ClusterSize()
	offset := int64(record.Data.ClusterOffset) * int64(clusterSize)
	sizeLeft := int64(record.Data.Size)
	out := make([]byte, 0, sizeLeft)

	for i := uint64(0); i < record.Data.ClusterCount && sizeLeft > 0; i++ {
		n := int64(clusterSize)
		if sizeLeft < n {
			n = sizeLeft
		}
		data, err := v.reader.ReadAt(offset, int(n))
		if err != nil {
			return "", err
		}
		out = append(out, data...)
		sizeLeft -= n
		offset += int64(clusterSize)
	}
	return volume.DecodeText(out)
}

func (v *NtfsVolume) Name() string { return v.name }

func (v *NtfsVolume) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Volume name: %s\n", v.name)
	fmt.Fprintf(&b, "Filesystem type: NTFS\n")
	fmt.Fprintf(&b, "Bytes per sector: %d\n", v.boot.BytesPerSector)
	fmt.Fprintf(&b, "Sectors per cluster: %d\n", v.boot.SectorsPerCluster)
	fmt.Fprintf(&b, "MFT logical cluster number: %d\n", v.boot.MFTLCN)
	fmt.Fprintf(&b, "MFT mirror logical cluster number: %d\n", v.boot.MFTMirrLCN)
	fmt.Fprintf(&b, "MFT record size: %d\n", v.boot.RecordSize)
	return b.String()
}

func (v *NtfsVolume) Close() error {
	if c, ok := v.reader.(io.Closer); ok {
		if v.log != nil {
			v.log.Debugf("closing NTFS volume %s", v.name)
		}
		return c.Close()
	}
	return nil
}

// Detect reports whether reader's boot sector carries the NTFS OEM ID,
// without fully scanning $MFT. Used by volume auto-detection.
func Detect(reader volume.BlockReader) bool {
	header, err := reader.ReadAt(0, bootSectorSize)
	if err != nil {
		return false
	}
	_, err = parseBootParameters(header)
	return err == nil
}
