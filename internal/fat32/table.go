package fat32

import (
	"encoding/binary"

	"github.com/corvidae/rawvol/internal/volume"
)

const (
	fatEntryMask  = 0x0FFFFFFF
	fatBadCluster = 0x0FFFFFF7
	fatEOCMin     = 0x0FFFFFF8
)

// FatTable is the decoded 32-bit File Allocation Table: one entry per
// cluster, each either the next cluster in the chain or an end-of-chain
// / bad-cluster sentinel.
type FatTable struct {
	entries []uint32
}

func parseFatTable(data []byte) *FatTable {
	n := len(data) / 4
	entries := make([]uint32, n)
	for i := 0; i < n; i++ {
		entries[i] = binary.LittleEndian.Uint32(data[i*4:i*4+4]) & fatEntryMask
	}
	return &FatTable{entries: entries}
}

// ClusterChain walks the table from start until it hits an end-of-chain
// or bad-cluster marker, returning every cluster visited (the sentinel
// itself is not included). Returns a CorruptChain error on a cycle, an
// out-of-range entry, or a chain longer than the table itself.
func (t *FatTable) ClusterChain(start uint32) ([]uint32, error) {
	if int(start) >= len(t.entries) {
		return nil, volume.New(volume.CorruptChain, "")
	}

	seen := make(map[uint32]struct{})
	var chain []uint32
	cur := start

	for {
		if _, ok := seen[cur]; ok {
			return nil, volume.New(volume.CorruptChain, "")
		}
		seen[cur] = struct{}{}
		chain = append(chain, cur)
		if len(chain) > len(t.entries) {
			return nil, volume.New(volume.CorruptChain, "")
		}

		if int(cur) >= len(t.entries) {
			return nil, volume.New(volume.CorruptChain, "")
		}
		next := t.entries[cur]
		if next == fatBadCluster || next >= fatEOCMin {
			return chain, nil
		}
		cur = next
	}
}
