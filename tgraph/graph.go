package tgraph

import (
	"sync"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
)

// pinVertexKind distinguishes the two vertices a bidirect pin owns.
type pinVertexKind int

const (
	kindUnary pinVertexKind = iota
	kindLoad
	kindDriver
)

type pinKey struct {
	pin  network.ID
	kind pinVertexKind
}

// Graph is the timing graph container: arena-indexed vertices and edges,
// plus a pin->vertex index. Two locks, mirroring core.Graph's
// muVert/muEdgeAdj split: muVert guards the vertex table, pin index and
// per-vertex in/out adjacency lists; muEdge guards the edge table.
type Graph struct {
	muVert sync.RWMutex
	muEdge sync.RWMutex

	vertices []*Vertex // slot 0 unused (arena convention)
	edges    []*Edge   // slot 0 unused

	pinIndex map[pinKey]VertexID
}

// NewGraph constructs an empty timing graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: make([]*Vertex, 1, 64),
		edges:    make([]*Edge, 1, 64),
		pinIndex: make(map[pinKey]VertexID),
	}
}

// AddPin materializes the vertex (or vertices, for a bidirect pin) for pin.
// A non-bidirect pin gets one vertex; a bidirect pin gets a load vertex and
// a driver vertex (spec §4.1). Returns the load/unary vertex id first and
// the driver vertex id second (zero if pin is not bidirect).
func (g *Graph) AddPin(pin network.Pin, dir network.Direction) (unaryOrLoad VertexID, driver VertexID) {
	g.muVert.Lock()
	defer g.muVert.Unlock()

	if !dir.IsBidirect() {
		if id, ok := g.pinIndex[pinKey{pin.ID, kindUnary}]; ok {
			return id, 0
		}
		id := g.newVertexLocked(pin)
		g.pinIndex[pinKey{pin.ID, kindUnary}] = id
		return id, 0
	}

	loadID, hasLoad := g.pinIndex[pinKey{pin.ID, kindLoad}]
	if !hasLoad {
		loadID = g.newVertexLocked(pin)
		g.pinIndex[pinKey{pin.ID, kindLoad}] = loadID
	}
	drvID, hasDrv := g.pinIndex[pinKey{pin.ID, kindDriver}]
	if !hasDrv {
		drvID = g.newVertexLocked(pin)
		g.vertices[drvID].Flags.IsBidirectDriver = true
		g.pinIndex[pinKey{pin.ID, kindDriver}] = drvID
	}
	return loadID, drvID
}

func (g *Graph) newVertexLocked(pin network.Pin) VertexID {
	v := &Vertex{
		id:    VertexID(len(g.vertices)),
		Pin:   pin,
		Level: -1,
		slews: make(map[transitionKey]annotated),
	}
	g.vertices = append(g.vertices, v)
	return v.id
}

// Vertex returns the vertex at id, or nil if id is out of range or refers
// to a removed slot.
func (g *Graph) Vertex(id VertexID) *Vertex {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	if int(id) <= 0 || int(id) >= len(g.vertices) {
		return nil
	}
	return g.vertices[id]
}

// VertexForPin returns the (load-or-unary, driver) vertex ids for pin, zero
// if no vertex has been created for that (pin, kind) yet.
func (g *Graph) VertexForPin(pin network.Pin) (unaryOrLoad, driver VertexID) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	unaryOrLoad = g.pinIndex[pinKey{pin.ID, kindUnary}]
	if unaryOrLoad == 0 {
		unaryOrLoad = g.pinIndex[pinKey{pin.ID, kindLoad}]
	}
	return unaryOrLoad, g.pinIndex[pinKey{pin.ID, kindDriver}]
}

// VertexCount returns the number of vertex slots (including slot 0 and the
// nil slots of removed vertices).
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	return len(g.vertices)
}

// Vertices calls fn for every live vertex. Iteration order is arena order
// (stable, but not meaningful beyond "created before").
func (g *Graph) Vertices(fn func(*Vertex)) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	for _, v := range g.vertices[1:] {
		if v != nil {
			fn(v)
		}
	}
}

// AddEdge creates a directed edge from -> to with the given role and arc
// set. Returns ErrBadEndpoints if either endpoint is not a live vertex.
func (g *Graph) AddEdge(from, to VertexID, role TimingRole, arcs *liberty.TimingArcSet) (EdgeID, error) {
	return g.addEdge(from, to, role, arcs, false)
}

// AddBidirectInstEdge is AddEdge for the implicit zero-delay edge from a
// bidirect pin's load vertex to its driver vertex (spec §4.1): the
// levelizer and search treat the driver as a fan-out of the load.
func (g *Graph) AddBidirectInstEdge(load, drvr VertexID) (EdgeID, error) {
	id, err := g.addEdge(load, drvr, RoleWire, nil, true)
	if err != nil {
		return 0, err
	}
	g.edges[id].Flags.IsBidirectInstPath = true
	return id, nil
}

func (g *Graph) addEdge(from, to VertexID, role TimingRole, arcs *liberty.TimingArcSet, allowSynthetic bool) (EdgeID, error) {
	if g.Vertex(from) == nil || g.Vertex(to) == nil {
		return 0, ErrBadEndpoints
	}
	g.muEdge.Lock()
	defer g.muEdge.Unlock()

	e := &Edge{
		id:     EdgeID(len(g.edges)),
		From:   from,
		To:     to,
		Role:   role,
		ArcSet: arcs,
		delays: make(map[transitionKey]annotated),
	}
	g.edges = append(g.edges, e)

	g.muVert.Lock()
	g.vertices[from].out = append(g.vertices[from].out, e.id)
	g.vertices[to].in = append(g.vertices[to].in, e.id)
	g.muVert.Unlock()

	return e.id, nil
}

// Edge returns the edge at id, or nil if out of range.
func (g *Graph) Edge(id EdgeID) *Edge {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	if int(id) <= 0 || int(id) >= len(g.edges) {
		return nil
	}
	return g.edges[id]
}

// EdgeCount returns the number of edge slots (including slot 0 and the nil
// slots of removed edges).
func (g *Graph) EdgeCount() int {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	return len(g.edges)
}

// From returns e's source vertex.
func (g *Graph) From(e *Edge) *Vertex { return g.Vertex(e.From) }

// To returns e's destination vertex.
func (g *Graph) To(e *Edge) *Vertex { return g.Vertex(e.To) }

// RemoveVertex detaches and removes v's edges, then removes v itself,
// matching §5's "deletion of a vertex first detaches all of its edges and
// then removes the vertex." Callers (the levelizer's root set, the
// endpoint set) are expected to react to the returned detached edge ids.
func (g *Graph) RemoveVertex(id VertexID) (detached []EdgeID) {
	v := g.Vertex(id)
	if v == nil {
		return nil
	}
	g.muEdge.Lock()
	in := append([]EdgeID(nil), v.in...)
	out := append([]EdgeID(nil), v.out...)
	g.muEdge.Unlock()

	for _, eid := range in {
		g.RemoveEdge(eid)
		detached = append(detached, eid)
	}
	for _, eid := range out {
		g.RemoveEdge(eid)
		detached = append(detached, eid)
	}

	g.muVert.Lock()
	g.vertices[id] = nil
	delete(g.pinIndex, pinKey{v.Pin.ID, kindUnary})
	delete(g.pinIndex, pinKey{v.Pin.ID, kindLoad})
	delete(g.pinIndex, pinKey{v.Pin.ID, kindDriver})
	g.muVert.Unlock()
	return detached
}

// RemoveEdge detaches e from its endpoints' adjacency lists and removes it.
func (g *Graph) RemoveEdge(id EdgeID) {
	e := g.Edge(id)
	if e == nil {
		return
	}
	g.muVert.Lock()
	if from := g.vertices[e.From]; from != nil {
		from.out = removeID(from.out, id)
	}
	if to := g.vertices[e.To]; to != nil {
		to.in = removeID(to.in, id)
	}
	g.muVert.Unlock()

	g.muEdge.Lock()
	g.edges[id] = nil
	g.muEdge.Unlock()
}

func removeID(s []EdgeID, id EdgeID) []EdgeID {
	for i, v := range s {
		if v == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
