package levelize

import "github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"

// dfsFrame is one entry of the explicit DFS stack (spec §4.2 step 3:
// "Iterative-DFS from roots using an explicit stack").
type dfsFrame struct {
	v   tgraph.VertexID
	idx int // index into v's out-edges of the next edge to explore
}

// findBackEdges runs the iterative DFS from the given starting vertices,
// marking {visited, on-path}, and for every edge that lands on an on-path
// vertex records a Loop and flags the edge isDisabledLoop (spec §4.2 step
// 3).
func (lv *Levelizer) findBackEdges(starts []tgraph.VertexID) {
	for _, root := range starts {
		v := lv.g.Vertex(root)
		if v == nil || v.Flags.Visited {
			continue
		}
		lv.dfsFrom(root)
	}
}

// findCycleBackEdges repeats the DFS over vertices the root-reachable pass
// never touched — isolated cycles with no edge reachable from a root. Each
// such vertex seeds a synthetic root; any back edge discovered also seeds
// its source vertex into the returned set so Kahn assignment can start
// from it once the loop edge is disabled (spec §4.2 step 4).
func (lv *Levelizer) findCycleBackEdges(unvisited []tgraph.VertexID) []tgraph.VertexID {
	var extraRoots []tgraph.VertexID
	seen := make(map[tgraph.VertexID]bool)
	for _, id := range unvisited {
		v := lv.g.Vertex(id)
		if v == nil || v.Flags.Visited {
			continue
		}
		before := len(lv.loops)
		lv.dfsFrom(id)
		for _, l := range lv.loops[before:] {
			be := lv.g.Edge(l.BackEdge)
			if be == nil {
				continue
			}
			if !seen[be.From] {
				seen[be.From] = true
				extraRoots = append(extraRoots, be.From)
			}
		}
	}
	return extraRoots
}

// dfsFrom runs one iterative DFS tree rooted at start, using an explicit
// stack of (vertex, next out-edge index) frames plus a parallel edge path
// so a discovered back edge can be resolved to the loop segment between
// the on-path ancestor and the current vertex.
func (lv *Levelizer) dfsFrom(start tgraph.VertexID) {
	startV := lv.g.Vertex(start)
	startV.Flags.Visited = true
	startV.Flags.OnPath = true

	stack := []dfsFrame{{v: start, idx: 0}}
	path := make([]tgraph.EdgeID, 0, 16)

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		v := lv.g.Vertex(top.v)
		out := v.OutEdges()

		if top.idx >= len(out) {
			// Fully explored: pop and clear on-path.
			v.Flags.OnPath = false
			stack = stack[:len(stack)-1]
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
			continue
		}

		eid := out[top.idx]
		top.idx++
		e := lv.g.Edge(eid)
		if e == nil || !lv.pred(e) {
			continue
		}

		w := lv.g.Vertex(e.To)
		switch {
		case !w.Flags.Visited:
			w.Flags.Visited = true
			w.Flags.OnPath = true
			stack = append(stack, dfsFrame{v: e.To, idx: 0})
			path = append(path, eid)
		case w.Flags.OnPath:
			lv.recordLoop(stack, path, eid, e.To)
		default:
			// Edge to an already-finished vertex: a valid DAG cross edge,
			// no action needed.
		}
	}
}

// recordLoop resolves the loop segment from the on-path ancestor w back to
// the current top-of-stack vertex, using path[j:] where stack[j].v == w.
func (lv *Levelizer) recordLoop(stack []dfsFrame, path []tgraph.EdgeID, backEdge tgraph.EdgeID, w tgraph.VertexID) {
	j := -1
	for i, f := range stack {
		if f.v == w {
			j = i
			break
		}
	}
	if j < 0 {
		// w is on-path by flag but not found on this stack; should not
		// happen given the DFS invariant, but fail safe by treating the
		// back edge as a trivial self-loop.
		j = len(stack) - 1
	}
	segment := append([]tgraph.EdgeID(nil), path[j:]...)
	segment = append(segment, backEdge)

	if e := lv.g.Edge(backEdge); e != nil {
		e.Flags.IsDisabledLoop = true
	}
	lv.disabledLoopEdge[backEdge] = true
	lv.loops = append(lv.loops, Loop{Path: segment, BackEdge: backEdge})
}
