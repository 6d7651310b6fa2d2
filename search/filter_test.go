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

// TestFindFilteredPathEnds_OnlyReportsFilteredTags proves a PathFilter
// exception's -from/-to pair marks the tags that traverse it, and that
// FindFilteredPathEnds narrows FindPathEnds down to just those, leaving an
// unfiltered path (from a second, unrelated startpoint) out of the result.
func TestFindFilteredPathEnds_OnlyReportsFilteredTags(t *testing.T) {
	g := tgraph.NewGraph()
	a, _ := g.AddPin(pin("a"), network.DirInput)
	c, _ := g.AddPin(pin("c"), network.DirInput)
	b, _ := g.AddPin(pin("b"), network.DirOutput)
	g.Vertex(a).Level = 0
	g.Vertex(c).Level = 0
	g.Vertex(b).Level = 1
	arcs := &liberty.TimingArcSet{Arcs: []liberty.TimingArc{riseArc(), fallArc()}}
	_, err := g.AddEdge(a, b, tgraph.RoleCombinational, arcs)
	require.NoError(t, err)
	_, err = g.AddEdge(c, b, tgraph.RoleCombinational, arcs)
	require.NoError(t, err)

	cfg := staconfig.DefaultConfig()
	cfg.UnconstrainedPaths = true
	sdcs := sdc.New()
	_, err = sdcs.AddException(sdc.PathFilter, []network.Pin{pin("a")}, nil, nil, []network.Pin{pin("b")}, nil, 0)
	require.NoError(t, err)

	in := intern.New(cfg, report.Default)
	calc := delaycalc.NewLinearDelayCalc(fixedDrive(0.1, 0.05, 0))
	s := search.New(g, nil, in, sdcs, calc, nil, nil, nil, cfg, report.Default)

	ap := typAP(liberty.Max)
	require.NoError(t, s.FindArrivals(context.Background(), ap))
	require.NoError(t, s.FindRequireds(context.Background(), ap))

	all := s.FindPathEnds(ap)
	require.Len(t, all, 4, "both startpoints' rise+fall tags should survive unfiltered")

	filtered := s.FindFilteredPathEnds(ap)
	require.Len(t, filtered, 2, "only the tags that traversed the -from a -to b filter should survive")
	for _, e := range filtered {
		require.True(t, in.Tag(e.Tag).IsFilter)
	}
}

// TestClearFilteredPaths_RemovesRecordedFilteredPaths proves
// ClearFilteredPaths deletes the filtered Path entries it recorded: every
// arrival at b here traversed the filter, so b is left with none.
func TestClearFilteredPaths_RemovesRecordedFilteredPaths(t *testing.T) {
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
	_, err = sdcs.AddException(sdc.PathFilter, []network.Pin{pin("a")}, nil, nil, []network.Pin{pin("b")}, nil, 0)
	require.NoError(t, err)

	in := intern.New(cfg, report.Default)
	calc := delaycalc.NewLinearDelayCalc(fixedDrive(0.1, 0.05, 0))
	s := search.New(g, nil, in, sdcs, calc, nil, nil, nil, cfg, report.Default)

	ap := typAP(liberty.Max)
	require.NoError(t, s.FindArrivals(context.Background(), ap))
	require.Len(t, s.Paths(b), 2)

	s.ClearFilteredPaths()
	require.Empty(t, s.Paths(b), "both rise and fall tags traversed the filter, so both must be cleared")
}
