package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/delaycalc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/intern"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/report"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/sdc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/search"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/staconfig"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// TestFindArrivals_TwoCornersDoNotAliasAtTheSameVertex proves a single
// Searcher keeps one corner's arrivals from corrupting another's: two
// FindArrivals calls over the same chain, one per corner, with the same
// identity derating, must leave both sets of arrivals
// intact at the shared endpoint instead of one overwriting the other.
func TestFindArrivals_TwoCornersDoNotAliasAtTheSameVertex(t *testing.T) {
	g := tgraph.NewGraph()
	a, _ := g.AddPin(pin("a"), network.DirInput)
	b, _ := g.AddPin(pin("b"), network.DirOutput)
	g.Vertex(a).Level = 0
	g.Vertex(b).Level = 1
	arcs := &liberty.TimingArcSet{Arcs: []liberty.TimingArc{riseArc(), fallArc()}}
	_, err := g.AddEdge(a, b, tgraph.RoleCombinational, arcs)
	require.NoError(t, err)

	cfg := staconfig.DefaultConfig()
	cfg.UnconstrainedPaths = true
	sdcs := sdc.New(sdc.WithDerating(sdc.DeratingFactors{
		CellDelayLate: 1.0, CellDelayEarly: 1.0, NetDelayLate: 1.0, NetDelayEarly: 1.0,
	}))
	in := intern.New(cfg, report.Default)
	calc := delaycalc.NewLinearDelayCalc(fixedDrive(0.1, 0.05, 0))
	s := search.New(g, nil, in, sdcs, calc, nil, nil, nil, cfg, report.Default)

	slow := tgraph.AnalysisPoint{Corner: liberty.Corner{ID: "slow"}, MinMax: liberty.Max}
	fast := tgraph.AnalysisPoint{Corner: liberty.Corner{ID: "fast"}, MinMax: liberty.Max}

	require.NoError(t, s.FindArrivals(context.Background(), slow))
	require.NoError(t, s.FindArrivals(context.Background(), fast))

	paths := s.Paths(b)
	require.Len(t, paths, 4, "rise+fall x slow+fast must occupy four distinct Tag slots, not alias into two")

	var sawSlow, sawFast int
	for _, p := range paths {
		require.InDelta(t, 0.1, p.Arrival, 1e-9, "the second corner's seed/propagate must not overwrite the first's")
		switch corner := in.Tag(p.Tag).Corner; corner.ID {
		case "slow":
			sawSlow++
		case "fast":
			sawFast++
		default:
			t.Fatalf("unexpected corner %q on tag", corner.ID)
		}
	}
	require.Equal(t, 2, sawSlow)
	require.Equal(t, 2, sawFast)
}

// TestFindPathEnds_FiltersByCorner proves FindPathEnds only reports the tags
// belonging to the AnalysisPoint it was called with, even though both
// corners' paths live at the same vertex.
func TestFindPathEnds_FiltersByCorner(t *testing.T) {
	g := tgraph.NewGraph()
	a, _ := g.AddPin(pin("a"), network.DirInput)
	b, _ := g.AddPin(pin("b"), network.DirOutput)
	g.Vertex(a).Level = 0
	g.Vertex(b).Level = 1
	arcs := &liberty.TimingArcSet{Arcs: []liberty.TimingArc{riseArc(), fallArc()}}
	_, err := g.AddEdge(a, b, tgraph.RoleCombinational, arcs)
	require.NoError(t, err)

	cfg := staconfig.DefaultConfig()
	cfg.UnconstrainedPaths = true
	sdcs := sdc.New()
	in := intern.New(cfg, report.Default)
	calc := delaycalc.NewLinearDelayCalc(fixedDrive(0.1, 0.05, 0))
	s := search.New(g, nil, in, sdcs, calc, nil, nil, nil, cfg, report.Default)

	slow := tgraph.AnalysisPoint{Corner: liberty.Corner{ID: "slow"}, MinMax: liberty.Max}
	fast := tgraph.AnalysisPoint{Corner: liberty.Corner{ID: "fast"}, MinMax: liberty.Max}
	require.NoError(t, s.FindArrivals(context.Background(), slow))
	require.NoError(t, s.FindArrivals(context.Background(), fast))
	require.NoError(t, s.FindRequireds(context.Background(), slow))
	require.NoError(t, s.FindRequireds(context.Background(), fast))

	ends := s.FindPathEnds(slow)
	require.Len(t, ends, 2)
	for _, e := range ends {
		require.Equal(t, "slow", in.Tag(e.Tag).Corner.ID)
	}
}
