package levelize

import (
	"sort"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// findRoots enumerates vertices with no enabled incoming edge, not
// themselves fully disabled, possessing at least one enabled outgoing
// edge (spec §4.2 step 2). Bidirect driver vertices are not special-cased
// here: the implicit load->driver wire edge tgraph materializes makes a
// bidirect driver naturally have exactly one in-edge (from its load), so
// it is a root only when that edge happens to be disabled, exactly
// matching "levelize the bidirect driver as a fan-out of the load."
func (lv *Levelizer) findRoots() []tgraph.VertexID {
	var roots []tgraph.VertexID
	lv.g.Vertices(func(v *tgraph.Vertex) {
		if lv.isRoot(v) {
			roots = append(roots, v.ID())
		}
	})
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots
}

func (lv *Levelizer) isRoot(v *tgraph.Vertex) bool {
	hasEnabledIn := false
	for _, eid := range v.InEdges() {
		e := lv.g.Edge(eid)
		if e != nil && lv.pred(e) {
			hasEnabledIn = true
			break
		}
	}
	if hasEnabledIn {
		return false
	}
	return lv.hasFanout(v)
}

func (lv *Levelizer) hasFanout(v *tgraph.Vertex) bool {
	for _, eid := range v.OutEdges() {
		e := lv.g.Edge(eid)
		if e != nil && lv.pred(e) {
			return true
		}
	}
	return false
}
