package delaycalc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/delaycalc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/pireduce"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

func pin(id string) network.Pin { return network.Pin{ID: network.ID(id)} }

func fixedDrive(intrinsicDelay, intrinsicSlew, rdrive float64) delaycalc.DriveModelFunc {
	return func(arc liberty.TimingArc, ap tgraph.AnalysisPoint) (float64, float64, float64) {
		return intrinsicDelay, intrinsicSlew, rdrive
	}
}

func newEdge(t *testing.T) (*tgraph.Graph, *tgraph.Edge, tgraph.VertexID) {
	t.Helper()
	g := tgraph.NewGraph()
	from, _ := g.AddPin(pin("u1/Y"), network.DirOutput)
	to, _ := g.AddPin(pin("u2/A"), network.DirInput)
	eid, err := g.AddEdge(from, to, tgraph.RoleCombinational, nil)
	require.NoError(t, err)
	return g, g.Edge(eid), to
}

func TestLinearDelayCalc_LumpedCap(t *testing.T) {
	_, edge, _ := newEdge(t)
	calc := delaycalc.NewLinearDelayCalc(fixedDrive(0.1, 0.05, 2.0))
	arc := liberty.TimingArc{FromRF: liberty.Rise, ToRF: liberty.Rise, Sense: liberty.PositiveUnate}
	ap := tgraph.AnalysisPoint{Corner: liberty.Corner{ID: "typ"}, MinMax: liberty.Max}

	res, err := calc.ArcDelay(context.Background(), edge, arc, ap, 0.2, delaycalc.Loading{LumpedCap: 3.0})
	require.NoError(t, err)
	require.InDelta(t, 0.1+2.0*3.0, res.Delay, 1e-9)
	require.InDelta(t, 0.05+2.0*3.0+0.5*0.2, res.Slew, 1e-9)
}

func TestLinearDelayCalc_PreferElmoreOverLumpedDelay(t *testing.T) {
	_, edge, _ := newEdge(t)
	calc := delaycalc.NewLinearDelayCalc(fixedDrive(0.1, 0.05, 2.0))
	arc := liberty.TimingArc{FromRF: liberty.Rise, ToRF: liberty.Rise}
	ap := tgraph.AnalysisPoint{Corner: liberty.Corner{ID: "typ"}, MinMax: liberty.Max}

	load := delaycalc.Loading{HasPi: true, Pi: pireduce.PiModel{C1: 1, C2: 2}, HasElmore: true, Elmore: 0.9}
	res, err := calc.ArcDelay(context.Background(), edge, arc, ap, 0, load)
	require.NoError(t, err)
	require.InDelta(t, 0.1+0.9, res.Delay, 1e-9)
}

func TestLinearDelayCalc_NoDriveFuncErrors(t *testing.T) {
	_, edge, _ := newEdge(t)
	calc := &delaycalc.LinearDelayCalc{}
	_, err := calc.ArcDelay(context.Background(), edge, liberty.TimingArc{}, tgraph.AnalysisPoint{}, 0, delaycalc.Loading{})
	require.ErrorIs(t, err, delaycalc.ErrNoArcDelay)
}

func TestAnnotate_CachesOnEdgeAndVertex(t *testing.T) {
	g, edge, toID := newEdge(t)
	toVertex := g.Vertex(toID)
	calc := delaycalc.NewLinearDelayCalc(fixedDrive(0.1, 0.05, 2.0))
	arc := liberty.TimingArc{FromRF: liberty.Rise, ToRF: liberty.Fall}
	ap := tgraph.AnalysisPoint{Corner: liberty.Corner{ID: "typ"}, MinMax: liberty.Max}

	_, err := delaycalc.Annotate(context.Background(), calc, edge, toVertex, arc, ap, 0, delaycalc.Loading{LumpedCap: 1.0})
	require.NoError(t, err)

	delay, ok := edge.Delay(ap, liberty.Fall)
	require.True(t, ok)
	require.InDelta(t, 0.1+2.0, delay, 1e-9)

	slew, ok := toVertex.Slew(ap, liberty.Fall)
	require.True(t, ok)
	require.InDelta(t, 0.05+2.0, slew, 1e-9)
}

func TestLoading_TotalCap(t *testing.T) {
	require.Equal(t, 5.0, delaycalc.Loading{LumpedCap: 5.0}.TotalCap())
	require.Equal(t, 3.0, delaycalc.Loading{HasPi: true, Pi: pireduce.PiModel{C1: 1, C2: 2}}.TotalCap())
}
