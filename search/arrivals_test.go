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

func pin(id string) network.Pin { return network.Pin{ID: network.ID(id)} }

func typAP(mm liberty.MinMax) tgraph.AnalysisPoint {
	return tgraph.AnalysisPoint{Corner: liberty.Corner{ID: "typ"}, MinMax: mm}
}

func fixedDrive(delay, slew, rdrive float64) delaycalc.DriveModelFunc {
	return func(liberty.TimingArc, tgraph.AnalysisPoint) (float64, float64, float64) {
		return delay, slew, rdrive
	}
}

func riseArc() liberty.TimingArc {
	return liberty.TimingArc{FromRF: liberty.Rise, ToRF: liberty.Rise, Sense: liberty.PositiveUnate}
}

func fallArc() liberty.TimingArc {
	return liberty.TimingArc{FromRF: liberty.Fall, ToRF: liberty.Fall, Sense: liberty.PositiveUnate}
}

// newSearcher builds a Searcher with a flat (rdrive=0) LinearDelayCalc and
// no network/liberty collaborator wired in: defaultLoading short-circuits
// to an empty Loading whenever s.lib is nil, so these tests never need a
// fake network.Network.
func newSearcher(t *testing.T, g *tgraph.Graph, sdcs *sdc.Sdc, cfg staconfig.Config) *search.Searcher {
	t.Helper()
	in := intern.New(cfg, report.Default)
	calc := delaycalc.NewLinearDelayCalc(fixedDrive(0.1, 0.05, 0))
	return search.New(g, nil, in, sdcs, calc, nil, nil, nil, cfg, report.Default)
}

func TestFindArrivals_UnconstrainedChain_PropagatesAndDerates(t *testing.T) {
	g := tgraph.NewGraph()
	a, _ := g.AddPin(pin("a"), network.DirInput)
	b, _ := g.AddPin(pin("b"), network.DirInternal)
	c, _ := g.AddPin(pin("c"), network.DirOutput)
	g.Vertex(a).Level = 0
	g.Vertex(b).Level = 1
	g.Vertex(c).Level = 2

	arcs := &liberty.TimingArcSet{Arcs: []liberty.TimingArc{riseArc(), fallArc()}}
	_, err := g.AddEdge(a, b, tgraph.RoleCombinational, arcs)
	require.NoError(t, err)
	_, err = g.AddEdge(b, c, tgraph.RoleCombinational, arcs)
	require.NoError(t, err)

	cfg := staconfig.DefaultConfig()
	cfg.UnconstrainedPaths = true
	cfg.Workers = 2
	sdcs := sdc.New(sdc.WithDerating(sdc.DeratingFactors{
		CellDelayLate: 2.0, CellDelayEarly: 1.0, NetDelayLate: 1.0, NetDelayEarly: 1.0,
	}))

	s := newSearcher(t, g, sdcs, cfg)
	ap := typAP(liberty.Max)
	require.NoError(t, s.FindArrivals(context.Background(), ap))

	require.Len(t, s.Paths(a), 2, "unconstrained root seeds both rise and fall")
	require.Len(t, s.Paths(b), 2)
	pc := s.Paths(c)
	require.Len(t, pc, 2)

	// Each hop's 0.1s intrinsic delay is derated 2x on the late (Max) side;
	// LumpedCap stays 0 since no liberty/network collaborator is wired in.
	for _, p := range pc {
		require.InDelta(t, 0.4, p.Arrival, 1e-9)
	}
}

func TestFindArrivals_NothingSeededWithoutClockInputDelayOrUnconstrainedPaths(t *testing.T) {
	g := tgraph.NewGraph()
	a, _ := g.AddPin(pin("a"), network.DirInput)
	b, _ := g.AddPin(pin("b"), network.DirOutput)
	g.Vertex(a).Level = 0
	g.Vertex(b).Level = 1
	arcs := &liberty.TimingArcSet{Arcs: []liberty.TimingArc{riseArc()}}
	_, err := g.AddEdge(a, b, tgraph.RoleCombinational, arcs)
	require.NoError(t, err)

	cfg := staconfig.DefaultConfig()
	cfg.UnconstrainedPaths = false
	sdcs := sdc.New()
	s := newSearcher(t, g, sdcs, cfg)
	require.NoError(t, s.FindArrivals(context.Background(), typAP(liberty.Max)))

	require.Empty(t, s.Paths(a), "no clock, input delay or unconstrained root: nothing seeded")
	require.Empty(t, s.Paths(b))
}
