package fat32

import (
	"fmt"
	"io"
	"strings"

	"github.com/corvidae/rawvol/internal/logger"
	"github.com/corvidae/rawvol/internal/volume"
)

// Fat32Volume implements volume.Volume over a raw FAT32 image or
// device, resolving paths against the root directory cluster and its
// descendants and tracking a current directory as a cluster plus path.
type Fat32Volume struct {
	reader volume.BlockReader
	boot   *BootParameters
	table  *FatTable
	name   string

	cache      map[uint32]*Directory
	cwdCluster uint32
	cwdPath    []string

	log *logger.Logger
}

var _ volume.Volume = (*Fat32Volume)(nil)

// Open parses the boot sector and loads the first FAT copy from reader.
// name is the volume label used to re-root absolute paths, e.g. "C:".
func Open(name string, reader volume.BlockReader, log *logger.Logger) (*Fat32Volume, error) {
	header, err := reader.ReadAt(0, bootSectorSize)
	if err != nil {
		return nil, fmt.Errorf("fat32: reading boot sector: %w", err)
	}
	boot, err := parseBootParameters(header)
	if err != nil {
		return nil, err
	}

	fatOffset := int64(boot.ReservedSectors) * int64(boot.BytesPerSector)
	fatSize := int(boot.SectorsPerFAT) * int(boot.BytesPerSector)
	fatData, err := reader.ReadAt(fatOffset, fatSize)
	if err != nil {
		return nil, fmt.Errorf("fat32: reading FAT: %w", err)
	}

	v := &Fat32Volume{
		reader:     reader,
		boot:       boot,
		table:      parseFatTable(fatData),
		name:       name,
		cache:      make(map[uint32]*Directory),
		cwdCluster: boot.RootCluster,
		cwdPath:    []string{name},
		log:        log,
	}

	if _, err := v.directoryAt(boot.RootCluster); err != nil {
		return nil, fmt.Errorf("fat32: reading root directory: %w", err)
	}
	if log != nil {
		log.Debugf("opened FAT32 volume %s: %d bytes/sector, %d sectors/cluster", name, boot.BytesPerSector, boot.SectorsPerCluster)
	}
	return v, nil
}

func (v *Fat32Volume) readCluster(cluster uint32) ([]byte, error) {
	sector := v.boot.ClusterSector(cluster)
	offset := int64(sector) * int64(v.boot.BytesPerSector)
	return v.reader.ReadAt(offset, v.boot.ClusterSize())
}

func (v *Fat32Volume) readChainData(start uint32) ([]byte, error) {
	chain, err := v.table.ClusterChain(start)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(chain)*v.boot.ClusterSize())
	for _, c := range chain {
		data, err := v.readCluster(c)
		if err != nil {
			return nil, err
		}
		out = append(out, data...)
	}
	return out, nil
}

func (v *Fat32Volume) directoryAt(cluster uint32) (*Directory, error) {
	if d, ok := v.cache[cluster]; ok {
		return d, nil
	}
	data, err := v.readChainData(cluster)
	if err != nil {
		return nil, err
	}
	d := parseDirectory(data)
	v.cache[cluster] = d
	return d, nil
}

// visit resolves a path to the cluster and Directory it names, rooted
// at either the volume root (if the path starts with the volume name)
// or the current directory.
func (v *Fat32Volume) visit(path string) (uint32, *Directory, error) {
	parts := volume.SplitPath(path)
	cluster := v.cwdCluster

	if len(parts) > 0 && strings.EqualFold(parts[0], v.name) {
		cluster = v.boot.RootCluster
		parts = parts[1:]
	}

	dir, err := v.directoryAt(cluster)
	if err != nil {
		return 0, nil, err
	}

	for _, part := range parts {
		switch part {
		case ".":
			continue
		}
		entry := dir.Find(part)
		if entry == nil {
			return 0, nil, volume.New(volume.NotFound, part)
		}
		if !entry.Attr.Has(volume.AttrDirectory) {
			return 0, nil, volume.New(volume.NotADirectory, part)
		}
		target := entry.StartCluster
		if target == 0 {
			target = v.boot.RootCluster
		}
		cluster = target
		dir, err = v.directoryAt(cluster)
		if err != nil {
			return 0, nil, err
		}
	}

	return cluster, dir, nil
}

func (v *Fat32Volume) entrySector(e DirEntry) uint32 {
	if e.StartCluster == 0 {
		return (e.StartCluster + 2) * uint32(v.boot.SectorsPerCluster)
	}
	return e.StartCluster * uint32(v.boot.SectorsPerCluster)
}

func (v *Fat32Volume) List(path string) ([]volume.Entry, error) {
	dir, err := v.resolveDir(path)
	if err != nil {
		return nil, err
	}
	active := dir.ActiveEntries()
	out := make([]volume.Entry, 0, len(active))
	for _, e := range active {
		out = append(out, volume.Entry{
			Name:     e.Name,
			Attr:     e.Attr,
			Modified: e.Modified,
			Size:     uint64(e.Size),
			Sector:   uint64(v.entrySector(e)),
		})
	}
	return out, nil
}

func (v *Fat32Volume) resolveDir(path string) (*Directory, error) {
	if path == "" {
		return v.directoryAt(v.cwdCluster)
	}
	_, dir, err := v.visit(path)
	return dir, err
}

func (v *Fat32Volume) Chdir(path string) error {
	if path == "" {
		return volume.New(volume.RequiresPath, "")
	}
	cluster, _, err := v.visit(path)
	if err != nil {
		return err
	}
	v.cwdCluster = cluster

	parts := volume.SplitPath(path)
	if len(parts) > 0 && strings.EqualFold(parts[0], v.name) {
		v.cwdPath = []string{v.name}
		parts = parts[1:]
	}
	for _, p := range parts {
		switch p {
		case ".":
		case "..":
			if len(v.cwdPath) > 0 {
				v.cwdPath = v.cwdPath[:len(v.cwdPath)-1]
			}
		default:
			v.cwdPath = append(v.cwdPath, p)
		}
	}
	return nil
}

func (v *Fat32Volume) Cwd() string {
	if len(v.cwdPath) == 0 {
		return v.name + `\`
	}
	if len(v.cwdPath) == 1 {
		return v.cwdPath[0] + `\`
	}
	return strings.Join(v.cwdPath, `\`)
}

func (v *Fat32Volume) ReadText(path string) (string, error) {
	if path == "" {
		return "", volume.New(volume.RequiresPath, "")
	}
	parts := volume.SplitPath(path)
	name := parts[len(parts)-1]

	var dir *Directory
	var err error
	if len(parts) > 1 {
		dir, err = v.resolveDir(strings.Join(parts[:len(parts)-1], `\`))
	} else {
		dir, err = v.directoryAt(v.cwdCluster)
	}
	if err != nil {
		return "", err
	}

	entry := dir.Find(name)
	if entry == nil {
		return "", volume.New(volume.NotFound, name)
	}
	if entry.Attr.Has(volume.AttrDirectory) {
		return "", volume.New(volume.IsADirectory, name)
	}

	data, err := v.readFileData(entry)
	if err != nil {
		return "", err
	}
	return volume.DecodeText(data)
}

func (v *Fat32Volume) readFileData(entry *DirEntry) ([]byte, error) {
	chain, err := v.table.ClusterChain(entry.StartCluster)
	if err != nil {
		return nil, err
	}
	clusterBytes := v.boot.ClusterSize()
	sizeLeft := int(entry.Size)
	out := make([]byte, 0, sizeLeft)

	for _, c := range chain {
		if sizeLeft <= 0 {
			break
		}
		data, err := v.readCluster(c)
		if err != nil {
			return nil, err
		}
		n := clusterBytes
		if sizeLeft < n {
			n = sizeLeft
		}
		out = append(out, data[:n]...)
		sizeLeft -= n
	}
	return out, nil
}

func (v *Fat32Volume) Name() string { return v.name }

func (v *Fat32Volume) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Volume name: %s\n", v.name)
	fmt.Fprintf(&b, "Filesystem type: %s\n", strings.TrimSpace(v.boot.FATLabel))
	fmt.Fprintf(&b, "Bytes per sector: %d\n", v.boot.BytesPerSector)
	fmt.Fprintf(&b, "Sectors per cluster: %d\n", v.boot.SectorsPerCluster)
	fmt.Fprintf(&b, "Reserved sectors: %d\n", v.boot.ReservedSectors)
	fmt.Fprintf(&b, "Number of FATs: %d\n", v.boot.NumFATs)
	fmt.Fprintf(&b, "Sectors in volume: %d\n", v.boot.TotalSectors)
	fmt.Fprintf(&b, "Sectors per FAT: %d\n", v.boot.SectorsPerFAT)
	fmt.Fprintf(&b, "Root directory cluster: %d\n", v.boot.RootCluster)
	fmt.Fprintf(&b, "Data region starts at sector: %d\n", v.boot.DataStartSector())
	return b.String()
}

func (v *Fat32Volume) Close() error {
	if c, ok := v.reader.(io.Closer); ok {
		if v.log != nil {
			v.log.Debugf("closing FAT32 volume %s", v.name)
		}
		return c.Close()
	}
	return nil
}

// Detect reports whether reader's boot sector carries the FAT32 label,
// without fully opening the volume. Used by volume auto-detection.
func Detect(reader volume.BlockReader) bool {
	header, err := reader.ReadAt(0, bootSectorSize)
	if err != nil {
		return false
	}
	_, err = parseBootParameters(header)
	return err == nil
}
