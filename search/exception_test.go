package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/sdc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/staconfig"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// chain builds a combinational pin-to-pin chain of len(names)-1 edges, one
// vertex per name in ascending level order, every edge carrying a single
// rise arc (the fall tag seeded at an unconstrained root then simply never
// propagates past the root, since no fall arc exists to match it).
func chain(t *testing.T, names ...string) (*tgraph.Graph, []tgraph.VertexID) {
	t.Helper()
	g := tgraph.NewGraph()
	ids := make([]tgraph.VertexID, len(names))
	for i, n := range names {
		id, _ := g.AddPin(pin(n), network.DirInternal)
		g.Vertex(id).Level = i
		ids[i] = id
	}
	arcs := &liberty.TimingArcSet{Arcs: []liberty.TimingArc{riseArc()}}
	for i := 0; i+1 < len(ids); i++ {
		_, err := g.AddEdge(ids[i], ids[i+1], tgraph.RoleCombinational, arcs)
		require.NoError(t, err)
	}
	return g, ids
}

// TestFalsePath_NoThru_ReachesAndSuppressesAtDeclaredEndpoint is a
// regression test for an exception state that completes (Done=true) with
// no -thru points at all: ExceptionState.Complete() used to be vacuously
// true the instant the state was seeded (ThruIndex 0 >= len(Thru) 0),
// killing the path on its very first edge instead of letting it reach its
// own -to pin.
func TestFalsePath_NoThru_ReachesAndSuppressesAtDeclaredEndpoint(t *testing.T) {
	g, ids := chain(t, "a", "b")
	sdcs := sdc.New()
	_, err := sdcs.AddException(sdc.FalsePath, []network.Pin{pin("a")}, nil, nil, []network.Pin{pin("b")}, nil, 0)
	require.NoError(t, err)

	cfg := staconfig.DefaultConfig()
	cfg.UnconstrainedPaths = true
	s := newSearcher(t, g, sdcs, cfg)
	ap := typAP(liberty.Max)
	require.NoError(t, s.FindArrivals(context.Background(), ap))
	require.NoError(t, s.FindRequireds(context.Background(), ap))

	require.NotEmpty(t, s.Paths(ids[1]), "false path with no -thru must still reach its own -to pin")

	ends := s.FindPathEnds(ap)
	for _, e := range ends {
		require.NotEqual(t, ids[1], e.Vertex, "a false path's own endpoint must not be reported")
	}
}

// TestFalsePath_MultiThru_SurvivesIntermediateVertexThenKillsOneEdgePastTo
// is a regression test for an exception whose -thru waypoint completes on
// an intermediate, non-"-to" vertex: the old Complete() definition
// conflated "every -thru satisfied" with "reached -to", so the edge
// immediately after the -thru-completing vertex was killed outright even
// though the path was still short of its declared endpoint.
func TestFalsePath_MultiThru_SurvivesIntermediateVertexThenKillsOneEdgePastTo(t *testing.T) {
	g, ids := chain(t, "a", "b", "c", "d", "e")
	sdcs := sdc.New()
	_, err := sdcs.AddException(sdc.FalsePath, []network.Pin{pin("a")}, nil,
		[][]network.Pin{{pin("b")}}, []network.Pin{pin("d")}, nil, 0)
	require.NoError(t, err)

	cfg := staconfig.DefaultConfig()
	cfg.UnconstrainedPaths = true
	s := newSearcher(t, g, sdcs, cfg)
	ap := typAP(liberty.Max)
	require.NoError(t, s.FindArrivals(context.Background(), ap))
	require.NoError(t, s.FindRequireds(context.Background(), ap))

	// -thru=b is satisfied on edge b->c, landing at c (not the declared
	// -to=d): c must not be mistaken for a completed exception.
	require.NotEmpty(t, s.Paths(ids[2]), "must survive past the vertex where -thru completes")
	// d is the exception's own -to pin, reached on edge c->d.
	require.NotEmpty(t, s.Paths(ids[3]), "must still reach its declared -to pin")
	// e is one edge past -to: the data path dies there, same as the
	// no-thru case's behavior one edge past its own -to.
	require.Empty(t, s.Paths(ids[4]), "a false path must not propagate past its declared -to pin")
}
