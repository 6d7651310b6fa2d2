// Package levelize assigns every timing-graph vertex an integer level such
// that level(from) < level(to) for every edge search will traverse,
// detects feedback loops and flags one loop-breaking edge per loop, and
// supports incremental relevelization after graph edits (spec §4.2).
//
// The house style follows the teacher's dfs package: sentinel errors and
// per-vertex DFS state (here the Visited/OnPath vertex flags) — generalized
// from a recursive single-pass DFS to the spec's explicit-stack iterative DFS
// plus a from-scratch Kahn topological assignment, because spec §4.2 step
// 3 mandates "iterative-DFS ... using an explicit stack" rather than
// recursion (unbounded netlists would otherwise blow the goroutine stack).
package levelize

import (
	"errors"
	"sort"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/report"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/staconfig"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/staerr"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// ErrGraphNil is returned when a nil *tgraph.Graph is passed to NewLevelizer.
var ErrGraphNil = errors.New("levelize: graph is nil")

// Predicate reports whether search would traverse edge e. The default,
// DefaultPredicate, excludes timing-check edges (spec §3 invariant) and
// edges flagged disabled (loop-broken or constraint-disabled).
type Predicate func(e *tgraph.Edge) bool

// DefaultPredicate is searchThru from spec §4.2: not a check edge, not
// disabled-loop, not disabled-constraint.
func DefaultPredicate(e *tgraph.Edge) bool {
	return !e.Role.IsCheck() && !e.Flags.IsDisabledLoop && !e.Flags.IsDisabledConstraint
}

// Loop records one feedback loop found during back-edge detection: the
// path prefix from the on-path vertex back to the encountered vertex, plus
// the back edge itself (spec §4.2 step 3).
type Loop struct {
	Path     []tgraph.EdgeID // edges forming the loop, in traversal order
	BackEdge tgraph.EdgeID
}

// Levelizer owns the per-graph levelization state: the current loop set,
// the disabled-loop edge set, and the seed set relevelization resumes
// from.
type Levelizer struct {
	g    *tgraph.Graph
	cfg  staconfig.Config
	rpt  *report.Report
	pred Predicate

	levelized bool
	maxLevel  int64

	loops            []Loop
	disabledLoopEdge map[tgraph.EdgeID]bool

	// relevelizeFrom accumulates vertex ids touched by graph edits since
	// the last full or incremental levelization (spec §4.2 "Incremental
	// relevelization").
	relevelizeFrom map[tgraph.VertexID]bool

	// latchDToQ lists edges the caller has identified as latch D->Q arcs,
	// which get the strict from.level < to.level bump of spec §4.2 step 6.
	latchDToQ []tgraph.EdgeID
}

// New constructs a Levelizer over g using cfg's LevelStep/MaxLevel. A nil
// predicate defaults to DefaultPredicate.
func New(g *tgraph.Graph, cfg staconfig.Config, rpt *report.Report, pred Predicate) (*Levelizer, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if rpt == nil {
		rpt = report.Default
	}
	if pred == nil {
		pred = DefaultPredicate
	}
	return &Levelizer{
		g:                g,
		cfg:              cfg,
		rpt:              rpt,
		pred:             pred,
		disabledLoopEdge: make(map[tgraph.EdgeID]bool),
		relevelizeFrom:   make(map[tgraph.VertexID]bool),
	}, nil
}

// MarkLatchDToQ records eid as a latch D->Q edge so Levelize's step 6
// enforces a strict level gap across it (spec §4.2 step 6).
func (lv *Levelizer) MarkLatchDToQ(eid tgraph.EdgeID) {
	lv.latchDToQ = append(lv.latchDToQ, eid)
}

// Loops returns every loop recorded by the most recent Levelize call.
func (lv *Levelizer) Loops() []Loop {
	out := make([]Loop, len(lv.loops))
	copy(out, lv.loops)
	return out
}

// IsDisabledLoop reports whether eid was flagged isDisabledLoop.
func (lv *Levelizer) IsDisabledLoop(eid tgraph.EdgeID) bool {
	return lv.disabledLoopEdge[eid]
}

// ReenableLoopEdge clears an edge's isDisabledLoop flag (spec §4.2 "Loop-
// breaking policy": a dynamic mode can re-enable a disabled-loop edge when
// an exception sensitizes the path through it). The caller (search) is
// responsible for deciding when this is sound; levelize only executes it
// and records the edge as no longer loop-broken — re-levelizing afterward
// is the caller's responsibility if the new edge should affect ordering.
func (lv *Levelizer) ReenableLoopEdge(eid tgraph.EdgeID) {
	if e := lv.g.Edge(eid); e != nil {
		e.Flags.IsDisabledLoop = false
	}
	delete(lv.disabledLoopEdge, eid)
}

// Levelize performs a full, from-scratch levelization: clear state, find
// roots, find back edges (root-reachable DFS then isolated-cycle DFS),
// Kahn-assign levels, bump latch D->Q gaps, and level stranded vertices to
// zero (spec §4.2 steps 1-7).
func (lv *Levelizer) Levelize() error {
	lv.clear()

	roots := lv.findRoots()
	lv.findBackEdges(roots)
	stillUnvisited := lv.unvisitedVertices()
	extraRoots := lv.findCycleBackEdges(stillUnvisited)
	roots = append(roots, extraRoots...)

	order, err := lv.kahnOrder()
	if err != nil {
		return err
	}
	if err := lv.assignLevels(order); err != nil {
		return err
	}
	if err := lv.ensureLatchLevels(); err != nil {
		return err
	}
	lv.levelStranded()

	lv.relevelizeFrom = make(map[tgraph.VertexID]bool)
	lv.levelized = true
	lv.rpt.Infof("levelize: %d roots, %d loops, max level %d", len(roots), len(lv.loops), lv.maxLevel)
	return nil
}

func (lv *Levelizer) clear() {
	lv.g.Vertices(func(v *tgraph.Vertex) {
		v.Flags.Visited = false
		v.Flags.OnPath = false
		v.Level = -1
	})
	lv.loops = nil
	for eid := range lv.disabledLoopEdge {
		if e := lv.g.Edge(eid); e != nil {
			e.Flags.IsDisabledLoop = false
		}
	}
	lv.disabledLoopEdge = make(map[tgraph.EdgeID]bool)
	lv.maxLevel = 0
}

func (lv *Levelizer) unvisitedVertices() []tgraph.VertexID {
	var out []tgraph.VertexID
	lv.g.Vertices(func(v *tgraph.Vertex) {
		if !v.Flags.Visited {
			out = append(out, v.ID())
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (lv *Levelizer) levelStranded() {
	lv.g.Vertices(func(v *tgraph.Vertex) {
		if v.Level == -1 {
			v.Level = 0
		}
		v.Flags.Visited = false
		v.Flags.OnPath = false
	})
}

func (lv *Levelizer) capacityCheck(level int64) error {
	if err := staerr.NewCapacity("level", level, lv.cfg.MaxLevel); err != nil {
		lv.rpt.Criticalf("%v", err)
		return err
	}
	if level > lv.maxLevel {
		lv.maxLevel = level
	}
	return nil
}
