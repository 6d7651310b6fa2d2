package search

import (
	"sync"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/delaycalc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/intern"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/levelize"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/report"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/sdc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/staconfig"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// LoadingFunc computes one edge's destination Loading for (toRF, ap) — the
// delaycalc consumer boundary spec §4.4 describes. The default,
// defaultLoading, sums Liberty pin capacitance over the destination net's
// load pins; a caller wanting parasitic-aware delay supplies one built from
// pireduce's ReduceToPi/ReduceToPiElmore/ReduceToPiPoleResidue output
// instead (mirroring pireduce.PinCapFunc's own injected-closure boundary).
type LoadingFunc func(edge *tgraph.Edge, toRF liberty.RiseFall, ap tgraph.AnalysisPoint) delaycalc.Loading

// Searcher owns one analysis's forward/backward propagation state over one
// timing graph. Construct with New; call FindArrivals then FindRequireds
// for each tgraph.AnalysisPoint of interest.
type Searcher struct {
	g    *tgraph.Graph
	lv   *levelize.Levelizer
	in   *intern.Interner
	sdcs *sdc.Sdc
	calc delaycalc.DelayCalc
	net  network.Network
	lib  liberty.LibertyPort
	load LoadingFunc
	cfg  staconfig.Config
	rpt  *report.Report

	excStates     []sdc.ExceptionState
	excStateByKey map[sdc.ExceptionState]intern.ExceptionStateID

	// queueMu is named for the level iterator's coarse mutex around the
	// per-level queue (spec §5: "the level iterator's coarse mutex around
	// the per-level queue (enqueue/drain)"). No code in this package locks
	// it: the level sweeps select touched vertices by their BFSInQueue*
	// flags and hand them to an errgroup instead.
	queueMu sync.Mutex

	// pathMu guards paths/tagGroupOf/filteredVertices, and the BFSInQueue*
	// flag sets that setArrival/relaxRequired make while propagating (the
	// level sweeps clear a vertex's flag without it, just before handing
	// that vertex to a worker): spec §5 relies on "no
	// vertex in level L is visited twice concurrently" to make per-vertex
	// access race-free, but different vertices at the same level still
	// share these maps, so a lock is needed around the map access itself
	// (not the per-vertex tag-group computation, which needs no lock).
	// paths stays keyed by VertexID alone, never (VertexID, Corner): one
	// Searcher already runs every scene sequentially over the same graph
	// (FindArrivals/FindRequireds take a tgraph.AnalysisPoint per call), and
	// Tag itself carries Corner, so the intern.Tag equality setArrival keys
	// off of already keeps two scenes' arrivals at the same vertex in
	// distinct Path entries instead of aliasing one into the other.
	pathMu     sync.Mutex
	paths      map[tgraph.VertexID][]Path
	tagGroupOf map[tgraph.VertexID]intern.TagGroupID

	// invalidArrivals/invalidRequireds are the incremental-invalidation
	// sets spec §7 describes: InvalidateVertex inserts vertices here.
	// FindArrivals and FindRequireds do not read them; nothing in this
	// package reseeds the recorded vertices.
	invalidArrivals  map[tgraph.VertexID]bool
	invalidRequireds map[tgraph.VertexID]bool

	// filteredVertices records every vertex setArrival has ever given an
	// IsFilter tag, the recorded filtered-vertex set spec §4.6 describes so
	// ClearFilteredPaths doesn't have to scan the whole graph to find them.
	filteredVertices map[tgraph.VertexID]bool

	pocvWarned bool
}

// New constructs a Searcher over g, using lv's level assignment, in for
// Tag/ClkInfo/TagGroup interning, sdcs for constraints, calc for arc delay,
// net/lib for connectivity and pin capacitance, and cfg/rpt for the
// ambient tunables and diagnostics every other package shares. loadFn may
// be nil to use defaultLoading (Liberty lumped capacitance only).
func New(g *tgraph.Graph, lv *levelize.Levelizer, in *intern.Interner, sdcs *sdc.Sdc, calc delaycalc.DelayCalc, net network.Network, lib liberty.LibertyPort, loadFn LoadingFunc, cfg staconfig.Config, rpt *report.Report) *Searcher {
	if rpt == nil {
		rpt = report.Default
	}
	s := &Searcher{
		g: g, lv: lv, in: in, sdcs: sdcs, calc: calc, net: net, lib: lib, load: loadFn, cfg: cfg, rpt: rpt,
		paths:            make(map[tgraph.VertexID][]Path),
		tagGroupOf:       make(map[tgraph.VertexID]intern.TagGroupID),
		invalidArrivals:  make(map[tgraph.VertexID]bool),
		invalidRequireds: make(map[tgraph.VertexID]bool),
		filteredVertices: make(map[tgraph.VertexID]bool),
		excStateByKey:    make(map[sdc.ExceptionState]intern.ExceptionStateID),
	}
	if s.load == nil {
		s.load = s.defaultLoading
	}
	return s
}

// Paths returns a copy of the Path array currently stored at v (spec §4.1
// "vertices expose paths()").
func (s *Searcher) Paths(v tgraph.VertexID) []Path {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	p := s.paths[v]
	out := make([]Path, len(p))
	copy(out, p)
	return out
}

// Path dereferences ref, returning the Path it names and whether ref is
// valid and resolvable.
func (s *Searcher) Path(ref intern.PathRef) (Path, bool) {
	if !ref.Valid() {
		return Path{}, false
	}
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	arr := s.paths[ref.Vertex]
	if ref.Index < 0 || ref.Index >= len(arr) {
		return Path{}, false
	}
	return arr[ref.Index], true
}

// TagGroup returns the interned TagGroupID currently assigned to v, or zero
// if v has no paths yet.
func (s *Searcher) TagGroup(v tgraph.VertexID) intern.TagGroupID {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	return s.tagGroupOf[v]
}

// InvalidateVertex marks v's arrivals and requireds stale (spec §7
// "invalidation races"): it records v in invalidArrivals/invalidRequireds
// and drops v's stored paths and tag group. It does not touch downstream
// vertices, and FindArrivals/FindRequireds do not consult the recorded
// sets: a later FindArrivals refills v only if v is a startpoint or one of
// its fanin vertices is touched again by that run.
func (s *Searcher) InvalidateVertex(v tgraph.VertexID) {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	s.invalidArrivals[v] = true
	s.invalidRequireds[v] = true
	delete(s.paths, v)
	delete(s.tagGroupOf, v)
}
