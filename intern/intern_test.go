package intern_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/intern"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/staconfig"
)

func newInterner(t *testing.T) *intern.Interner {
	t.Helper()
	return intern.New(staconfig.DefaultConfig(), nil)
}

func TestInternClkInfo_DedupsEqualKeys(t *testing.T) {
	in := newInterner(t)
	key := intern.ClkInfo{
		ClockEdge: intern.ClockEdgeRef{Clock: "clk", RF: liberty.Rise},
		SrcPin:    network.Pin{ID: "clk_src"},
		MinMax:    liberty.Max,
	}

	id1, err := in.InternClkInfo(key)
	require.NoError(t, err)
	id2, err := in.InternClkInfo(key)
	require.NoError(t, err)
	require.Equal(t, id1, id2)

	other := key
	other.Latency = 1.0
	id3, err := in.InternClkInfo(other)
	require.NoError(t, err)
	require.NotEqual(t, id1, id3)

	require.Equal(t, key, in.ClkInfo(id1))
}

func TestInternTag_AllocatesAdjacentSiblingPair(t *testing.T) {
	in := newInterner(t)
	clkID, err := in.InternClkInfo(intern.ClkInfo{MinMax: liberty.Max})
	require.NoError(t, err)

	riseID, err := in.InternTag(intern.Tag{RF: liberty.Rise, MinMax: liberty.Max, ClkInfo: clkID})
	require.NoError(t, err)
	fallID, err := in.InternTag(intern.Tag{RF: liberty.Fall, MinMax: liberty.Max, ClkInfo: clkID})
	require.NoError(t, err)

	require.Equal(t, riseID, intern.SiblingTagID(fallID))
	require.Equal(t, fallID, intern.SiblingTagID(riseID))
	require.Equal(t, liberty.Rise, in.Tag(riseID).RF)
	require.Equal(t, liberty.Fall, in.Tag(fallID).RF)
}

func TestInternTag_DedupsEqualKey(t *testing.T) {
	in := newInterner(t)
	key := intern.Tag{RF: liberty.Rise, MinMax: liberty.Max}
	id1, err := in.InternTag(key)
	require.NoError(t, err)
	id2, err := in.InternTag(key)
	require.NoError(t, err)
	require.Equal(t, id1, id2)
}

func TestInternTagGroup_DedupsRegardlessOfOrder(t *testing.T) {
	in := newInterner(t)
	t1, err := in.InternTag(intern.Tag{RF: liberty.Rise, MinMax: liberty.Max})
	require.NoError(t, err)
	t2, err := in.InternTag(intern.Tag{RF: liberty.Fall, MinMax: liberty.Max})
	require.NoError(t, err)

	g1, err := in.InternTagGroup([]intern.TagGroupEntry{{Tag: t1, PathIndex: 0}, {Tag: t2, PathIndex: 1}})
	require.NoError(t, err)
	g2, err := in.InternTagGroup([]intern.TagGroupEntry{{Tag: t2, PathIndex: 1}, {Tag: t1, PathIndex: 0}})
	require.NoError(t, err)

	require.Equal(t, g1, g2)
	require.Len(t, in.TagGroup(g1), 2)
}

func TestInternTag_ConcurrentInternsAreSafe(t *testing.T) {
	in := newInterner(t)
	var wg sync.WaitGroup
	ids := make([]intern.TagID, 64)
	for i := 0; i < 64; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := in.InternTag(intern.Tag{RF: liberty.Rise, MinMax: liberty.Max, InputDelay: intern.InputDelayRef{ID: uint32(i)}})
			require.NoError(t, err)
			ids[i] = id
		}()
	}
	wg.Wait()

	seen := make(map[intern.TagID]bool)
	for _, id := range ids {
		require.True(t, id.Valid())
		require.False(t, seen[id], "tag id reused across distinct keys")
		seen[id] = true
	}
}
