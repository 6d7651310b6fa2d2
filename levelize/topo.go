package levelize

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// kahnOrder computes a topological order over every edge that passes
// lv.pred, using Kahn's algorithm with a deterministic (lowest-id-first)
// tie-break so Levelize is reproducible across runs (spec §4.2 step 5).
// Back edges found by findBackEdges/findCycleBackEdges are already flagged
// isDisabledLoop, so pred excludes them and the remaining graph is acyclic.
func (lv *Levelizer) kahnOrder() ([]tgraph.VertexID, error) {
	indeg := make(map[tgraph.VertexID]int)
	total := 0
	lv.g.Vertices(func(v *tgraph.Vertex) {
		total++
		n := 0
		for _, eid := range v.InEdges() {
			if e := lv.g.Edge(eid); e != nil && lv.pred(e) {
				n++
			}
		}
		indeg[v.ID()] = n
	})

	var queue []tgraph.VertexID
	for id, n := range indeg {
		if n == 0 {
			queue = append(queue, id)
		}
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	order := make([]tgraph.VertexID, 0, total)
	for len(queue) > 0 {
		sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		v := lv.g.Vertex(id)
		for _, eid := range v.OutEdges() {
			e := lv.g.Edge(eid)
			if e == nil || !lv.pred(e) {
				continue
			}
			indeg[e.To]--
			if indeg[e.To] == 0 {
				queue = append(queue, e.To)
			}
		}
	}

	if len(order) != total {
		lv.rpt.Warnf("levelize: kahn order covered %d/%d vertices, %d left on unbroken cycles", len(order), total, total-len(order))
	}
	return order, nil
}

// assignLevels walks order (already topologically sorted) and sets each
// vertex's level to the maximum predecessor level plus LevelStep, zero when
// it has no enabled predecessor (spec §4.2 step 5).
func (lv *Levelizer) assignLevels(order []tgraph.VertexID) error {
	for _, id := range order {
		v := lv.g.Vertex(id)
		level := int64(0)
		for _, eid := range v.InEdges() {
			e := lv.g.Edge(eid)
			if e == nil || !lv.pred(e) {
				continue
			}
			from := lv.g.Vertex(e.From)
			if from == nil {
				continue
			}
			cand := int64(from.Level) + int64(lv.cfg.LevelStep)
			if cand > level {
				level = cand
			}
		}
		if err := lv.capacityCheck(level); err != nil {
			return err
		}
		v.Level = int(level)
	}
	return nil
}

// ensureLatchLevels applies the original's one-directional latch D->Q
// correction: when an edge marked via MarkLatchDToQ has its endpoints on
// equal levels, the from-vertex is bumped by one LevelStep (never the
// to-vertex), iterated up to cfg.MaxLatchPasses times (spec §4.2 step 6).
func (lv *Levelizer) ensureLatchLevels() error {
	for pass := 0; pass < lv.cfg.MaxLatchPasses; pass++ {
		changed := false
		for _, eid := range lv.latchDToQ {
			e := lv.g.Edge(eid)
			if e == nil {
				continue
			}
			from := lv.g.Vertex(e.From)
			to := lv.g.Vertex(e.To)
			if from == nil || to == nil {
				continue
			}
			if from.Level == to.Level {
				level := int64(from.Level) + int64(lv.cfg.LevelStep)
				if err := lv.capacityCheck(level); err != nil {
					return err
				}
				from.Level = int(level)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return nil
}

// CrossCheckAcyclic rebuilds the pred-filtered subgraph as a gonum
// simple.DirectedGraph and runs topo.Sort, returning an error if gonum
// reports an unresolved cycle. It exists as an independent verification of
// Levelize's own back-edge detection, exercised by the package tests rather
// than by the hot levelization path.
func CrossCheckAcyclic(g *tgraph.Graph, pred Predicate) error {
	if pred == nil {
		pred = DefaultPredicate
	}
	dg := simple.NewDirectedGraph()
	g.Vertices(func(v *tgraph.Vertex) {
		dg.AddNode(simple.Node(int64(v.ID())))
	})
	g.Vertices(func(v *tgraph.Vertex) {
		for _, eid := range v.OutEdges() {
			e := g.Edge(eid)
			if e == nil || !pred(e) {
				continue
			}
			from := dg.Node(int64(e.From))
			to := dg.Node(int64(e.To))
			if from == nil || to == nil {
				continue
			}
			dg.SetEdge(dg.NewEdge(from, to))
		}
	})
	_, err := topo.Sort(dg)
	return err
}
