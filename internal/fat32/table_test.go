package fat32

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/corvidae/rawvol/internal/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fatBytes(entries map[uint32]uint32, count int) []byte {
	data := make([]byte, count*4)
	for cluster, next := range entries {
		binary.LittleEndian.PutUint32(data[cluster*4:cluster*4+4], next)
	}
	return data
}

func TestClusterChainFollowsEntriesToEOC(t *testing.T) {
	table := parseFatTable(fatBytes(map[uint32]uint32{
		2: 3,
		3: 4,
		4: 0x0FFFFFFF,
	}, 8))

	chain, err := table.ClusterChain(2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 3, 4}, chain)
}

func TestClusterChainStopsAtBadCluster(t *testing.T) {
	table := parseFatTable(fatBytes(map[uint32]uint32{
		2: 3,
		3: fatBadCluster,
	}, 8))

	chain, err := table.ClusterChain(2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 3}, chain)
}

func TestClusterChainDetectsCycle(t *testing.T) {
	table := parseFatTable(fatBytes(map[uint32]uint32{
		2: 3,
		3: 2,
	}, 8))

	_, err := table.ClusterChain(2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, volume.ErrCorruptChain))
}

func TestClusterChainRejectsOutOfRangeStart(t *testing.T) {
	table := parseFatTable(fatBytes(nil, 4))

	_, err := table.ClusterChain(10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, volume.ErrCorruptChain))
}
