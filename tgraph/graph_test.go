package tgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

func pin(id string) network.Pin { return network.Pin{ID: network.ID(id)} }

func TestAddPin_Unary(t *testing.T) {
	g := tgraph.NewGraph()
	v1, drv := g.AddPin(pin("u1/A"), network.DirInput)
	require.True(t, v1.Valid())
	require.False(t, drv.Valid())

	// Idempotent: same pin returns the same vertex id.
	v2, _ := g.AddPin(pin("u1/A"), network.DirInput)
	require.Equal(t, v1, v2)
}

func TestAddPin_Bidirect(t *testing.T) {
	g := tgraph.NewGraph()
	load, drv := g.AddPin(pin("io/B"), network.DirBidirect)
	require.True(t, load.Valid())
	require.True(t, drv.Valid())
	require.NotEqual(t, load, drv)

	drvVertex := g.Vertex(drv)
	require.True(t, drvVertex.Flags.IsBidirectDriver)

	eid, err := g.AddBidirectInstEdge(load, drv)
	require.NoError(t, err)
	e := g.Edge(eid)
	require.True(t, e.Flags.IsBidirectInstPath)
	require.Equal(t, load, e.From)
	require.Equal(t, drv, e.To)

	loadVertex := g.Vertex(load)
	require.Contains(t, loadVertex.OutEdges(), eid)
	require.Contains(t, drvVertex.InEdges(), eid)
}

func TestAddEdge_BadEndpoints(t *testing.T) {
	g := tgraph.NewGraph()
	_, err := g.AddEdge(7, 9, tgraph.RoleWire, nil)
	require.ErrorIs(t, err, tgraph.ErrBadEndpoints)
}

func TestSlewAnnotatedLock(t *testing.T) {
	g := tgraph.NewGraph()
	v1, _ := g.AddPin(pin("u1/Y"), network.DirOutput)
	v := g.Vertex(v1)

	ap := tgraph.AnalysisPoint{Corner: liberty.Corner{ID: "typ"}, MinMax: liberty.Max}
	v.SetSlew(ap, liberty.Rise, 12.5, false)
	val, ok := v.Slew(ap, liberty.Rise)
	require.True(t, ok)
	require.InDelta(t, 12.5, val, 1e-9)
	require.False(t, v.SlewIsAnnotated(ap, liberty.Rise))

	// Lock the value; subsequent non-annotated writes must not move it.
	v.SetSlew(ap, liberty.Rise, 99.0, true)
	v.SetSlew(ap, liberty.Rise, 1.0, false)
	val, _ = v.Slew(ap, liberty.Rise)
	require.InDelta(t, 99.0, val, 1e-9)
	require.True(t, v.SlewIsAnnotated(ap, liberty.Rise))
}

func TestDelayAnnotatedLock(t *testing.T) {
	g := tgraph.NewGraph()
	a, _ := g.AddPin(pin("u1/A"), network.DirInput)
	y, _ := g.AddPin(pin("u1/Y"), network.DirOutput)
	eid, err := g.AddEdge(a, y, tgraph.RoleCombinational, nil)
	require.NoError(t, err)
	e := g.Edge(eid)

	ap := tgraph.AnalysisPoint{Corner: liberty.Corner{ID: "typ"}, MinMax: liberty.Max}
	e.SetDelay(ap, liberty.Rise, 100, true)
	e.SetDelay(ap, liberty.Rise, 500, false)
	got, ok := e.Delay(ap, liberty.Rise)
	require.True(t, ok)
	require.InDelta(t, 100, got, 1e-9)
}

func TestRemoveVertexDetachesEdges(t *testing.T) {
	g := tgraph.NewGraph()
	a, _ := g.AddPin(pin("u1/A"), network.DirInput)
	y, _ := g.AddPin(pin("u1/Y"), network.DirOutput)
	eid, err := g.AddEdge(a, y, tgraph.RoleCombinational, nil)
	require.NoError(t, err)

	detached := g.RemoveVertex(a)
	require.Equal(t, []tgraph.EdgeID{eid}, detached)
	require.Nil(t, g.Vertex(a))
	require.Nil(t, g.Edge(eid))
	require.Empty(t, g.Vertex(y).InEdges())
}

func TestTimingRoleIsCheck(t *testing.T) {
	require.True(t, tgraph.RoleSetupCheck.IsCheck())
	require.True(t, tgraph.RoleHoldCheck.IsCheck())
	require.False(t, tgraph.RoleCombinational.IsCheck())
}
