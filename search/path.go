package search

import (
	"math"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/intern"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// Path is one arrival at a vertex (spec §3): an arrival time, a required
// time (filled in later by the backward search), a back-reference to the
// Path it was propagated from, the edge/arc that produced it, and its tag.
//
// Vertices don't carry their own Path array in this module (unlike the
// original's Vertex-owned array): tgraph is a dependency leaf that must
// not import search, so the dense per-vertex Path storage spec §4.1
// describes ("a pointer to an array of Path records") lives in Searcher
// instead, keyed by tgraph.VertexID — see Searcher.paths. intern.PathRef
// is exactly the opaque {vertex, index} handle that lets ClkInfo's
// CrprClkPath field point into this external storage without intern or
// tgraph depending on search.
type Path struct {
	Tag      intern.TagID
	Arrival  float64
	Required float64
	Prev     intern.PathRef
	Edge     tgraph.EdgeID
	ArcIndex int
}

// initialRequired returns the "not yet propagated" sentinel for mm (spec
// §7: "the caller either triggers findRequireds or accepts the INF init
// value"): max (setup) analysis starts requireds at +Inf since any check is
// satisfiable until a tighter bound is found; min (hold) analysis starts at
// -Inf for the symmetric reason.
func initialRequired(mm liberty.MinMax) float64 {
	if mm == liberty.Min {
		return math.Inf(-1)
	}
	return math.Inf(1)
}
