package levelize

import "github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"

// NotifyEdgeAdded records that a new edge now reaches to, so the next
// Relevelize call considers it for a level bump (spec §4.2 "Incremental
// relevelization": graph edits mark endpoints, a later pass only ever
// raises levels from there).
func (lv *Levelizer) NotifyEdgeAdded(from, to tgraph.VertexID) {
	lv.relevelizeFrom[from] = true
	lv.relevelizeFrom[to] = true
}

// NotifyVertexAdded records a newly created vertex as needing a level.
func (lv *Levelizer) NotifyVertexAdded(v tgraph.VertexID) {
	lv.relevelizeFrom[v] = true
}

// Relevelize incrementally brings levels up to date for vertices touched
// since the last Levelize/Relevelize call. It never lowers a level: each
// marked vertex, and everything reachable forward from it through pred-
// enabled edges, has its level raised to the maximum predecessor level
// plus LevelStep wherever that exceeds the vertex's current level. This
// intentionally does not re-run loop detection — an edit that introduces a
// new feedback loop requires a full Levelize, not an incremental pass.
func (lv *Levelizer) Relevelize() error {
	if !lv.levelized {
		return lv.Levelize()
	}
	if len(lv.relevelizeFrom) == 0 {
		return nil
	}

	seed := make([]tgraph.VertexID, 0, len(lv.relevelizeFrom))
	for v := range lv.relevelizeFrom {
		seed = append(seed, v)
	}

	queue := append([]tgraph.VertexID(nil), seed...)
	queued := make(map[tgraph.VertexID]bool, len(seed))
	for _, v := range seed {
		queued[v] = true
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		delete(queued, id)

		v := lv.g.Vertex(id)
		if v == nil {
			continue
		}

		level := int64(v.Level)
		if level < 0 {
			// Not leveled yet (e.g. added since the last pass): start at 0.
			level = 0
		}
		for _, eid := range v.InEdges() {
			e := lv.g.Edge(eid)
			if e == nil || !lv.pred(e) {
				continue
			}
			from := lv.g.Vertex(e.From)
			if from == nil {
				continue
			}
			if cand := int64(from.Level) + int64(lv.cfg.LevelStep); cand > level {
				level = cand
			}
		}

		if level == int64(v.Level) {
			continue
		}
		if err := lv.capacityCheck(level); err != nil {
			return err
		}
		v.Level = int(level)

		for _, eid := range v.OutEdges() {
			e := lv.g.Edge(eid)
			if e == nil || !lv.pred(e) {
				continue
			}
			if !queued[e.To] {
				queued[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}

	lv.relevelizeFrom = make(map[tgraph.VertexID]bool)
	return lv.ensureLatchLevels()
}
