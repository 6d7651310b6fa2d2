package search

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/delaycalc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/intern"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/sdc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// FindArrivals runs the forward search for ap (spec §4.6): seed every
// startpoint, then sweep levels in ascending order, draining each level's
// touched vertices concurrently (bounded by cfg.Workers) before the next
// level starts. Levelization already puts every pred-enabled edge's target
// on a higher level than its source, so one ascending sweep suffices for a
// well-formed (non-combinational-loop) design; the repeat
// up to cfg.MaxLatchPasses exists for the rare case a caller's own
// incremental edits left a touched vertex below its sources' level, and is
// a no-op (nothing left touched) on every pass after the first otherwise.
func (s *Searcher) FindArrivals(ctx context.Context, ap tgraph.AnalysisPoint) error {
	s.warnPocvOnce()
	s.seedArrivals(ap)
	passes := s.cfg.MaxLatchPasses
	if passes < 1 {
		passes = 1
	}
	for i := 0; i < passes; i++ {
		if err := s.propagateArrivals(ctx, ap); err != nil {
			return err
		}
	}
	return nil
}

var bothRF = [2]liberty.RiseFall{liberty.Rise, liberty.Fall}

// warnPocvOnce reports sdc.Variables.PocvEnabled once per Searcher: this
// core always computes corner-based (not statistical) delay, so a caller
// who asked for POCV should find out it's being ignored rather than
// silently get corner-based numbers back.
func (s *Searcher) warnPocvOnce() {
	if !s.sdcs.Variables().PocvEnabled || s.pocvWarned {
		return
	}
	s.pocvWarned = true
	s.rpt.Warnf("Variables.PocvEnabled is set but this core only computes corner-based delay; POCV is ignored")
}

// seedArrivals applies spec §4.6's three seeding rules to every vertex:
// clock leaf pins (rule 1), set_input_delay ports (rule 2), and, when
// unconstrainedPathsEnabled, zero-arrival unclocked roots (rule 3).
func (s *Searcher) seedArrivals(ap tgraph.AnalysisPoint) {
	seedUnclocked := s.unconstrainedPathsEnabled()
	s.g.Vertices(func(v *tgraph.Vertex) {
		seeded := s.seedClkArrivals(v, ap)
		seeded = s.seedInputDelayArrivals(v, ap) || seeded
		if !seeded && seedUnclocked && len(v.InEdges()) == 0 {
			s.seedUnconstrained(v, ap)
		}
	})
}

// unconstrainedPathsEnabled reports whether unclocked roots/endpoints get a
// zero-arrival seed and a reported path end: either cfg.UnconstrainedPaths
// was set for this run, or sdc.Variables.UseDefaultArrivalClock asks for it
// unconditionally (the original's virtual "default arrival clock" seeds an
// unclocked port without needing the caller to also set
// unconstrained_paths).
func (s *Searcher) unconstrainedPathsEnabled() bool {
	return s.cfg.UnconstrainedPaths || s.sdcs.Variables().UseDefaultArrivalClock
}

func (s *Searcher) seedClkArrivals(v *tgraph.Vertex, ap tgraph.AnalysisPoint) bool {
	mm := ap.MinMax
	pin := v.Pin
	clocks := s.sdcs.ClocksAtPin(pin)
	if len(clocks) == 0 {
		return false
	}
	seeded := false
	for _, clk := range clocks {
		for _, rf := range bothRF {
			edgeTime, ok := clk.EdgeTime(rf)
			if !ok {
				continue
			}
			insertion, _ := s.sdcs.ClockInsertionDelay(clk.Name, mm)
			uncertainty, _ := s.sdcs.ClockUncertainty(clk.Name, mm)
			clkInfoID, err := s.in.InternClkInfo(intern.ClkInfo{
				ClockEdge:   intern.ClockEdgeRef{Clock: clk.Name, RF: rf},
				SrcPin:      pin,
				Propagated:  clk.Propagated,
				Insertion:   insertion,
				Uncertainty: uncertainty,
				MinMax:      mm,
				Corner:      ap.Corner,
			})
			if err != nil {
				s.rpt.Errorf("seedClkArrivals: %v", err)
				continue
			}
			st, hasSt := s.startExceptionState(pin, clk.Name)
			tagID, err := s.findTag(rf, mm, ap.Corner, clkInfoID, true, intern.InputDelayRef{}, false, st, hasSt)
			if err != nil {
				s.rpt.Errorf("seedClkArrivals: %v", err)
				continue
			}
			s.setArrival(v, tagID, edgeTime+insertion, intern.PathRef{}, 0, -1)
			seeded = true
		}
	}
	return seeded
}

func (s *Searcher) seedInputDelayArrivals(v *tgraph.Vertex, ap tgraph.AnalysisPoint) bool {
	mm := ap.MinMax
	delays := s.sdcs.InputDelaysAt(v.Pin)
	seeded := false
	for _, id := range delays {
		if id.MinMax != mm {
			continue
		}
		clockTime := id.ClockEdge.Time()
		st, hasSt := s.startExceptionState(v.Pin, "")
		tagID, err := s.findTag(id.RF, mm, ap.Corner, 0, false, intern.InputDelayRef{ID: id.ID}, true, st, hasSt)
		if err != nil {
			s.rpt.Errorf("seedInputDelayArrivals: %v", err)
			continue
		}
		s.setArrival(v, tagID, clockTime+id.Delay, intern.PathRef{}, 0, -1)
		seeded = true
	}
	return seeded
}

func (s *Searcher) seedUnconstrained(v *tgraph.Vertex, ap tgraph.AnalysisPoint) {
	mm := ap.MinMax
	for _, rf := range bothRF {
		st, hasSt := s.startExceptionState(v.Pin, "")
		tagID, err := s.findTag(rf, mm, ap.Corner, 0, false, intern.InputDelayRef{}, true, st, hasSt)
		if err != nil {
			s.rpt.Errorf("seedUnconstrained: %v", err)
			continue
		}
		s.setArrival(v, tagID, 0, intern.PathRef{}, 0, -1)
	}
}

// startExceptionState returns the first exception whose -from set matches
// pin/clockName, if any (spec §4.6 seeding). Tag carries a single pending
// ExceptionStateID, so only the highest-priority match (lowest ID on a tie,
// the same order Exceptions sorts by) is tracked per path. StartStates
// returns matches in registration (ID) order.
func (s *Searcher) startExceptionState(pin network.Pin, clockName string) (sdc.ExceptionState, bool) {
	states := s.sdcs.StartStates(pin, clockName)
	if len(states) == 0 {
		return sdc.ExceptionState{}, false
	}
	best := states[0]
	for _, st := range states[1:] {
		if st.Exception.Priority > best.Exception.Priority {
			best = st
		}
	}
	return best, true
}

// thruClkInfo decides (to_clk_info, to_is_clk) for one traversed edge (spec
// §4.6 step 2's ClkInfo update). A register's clock-to-output edge or a
// latch's data-to-output edge leaves the clock network: the data path keeps the launching clock's
// ClkInfo (so CRPR can still find it) but is no longer itself "on the
// clock network". Every other edge role is clock-network-internal or
// clock-network-external uniformly, so it just carries isClock through
// unchanged.
func (s *Searcher) thruClkInfo(fromTag intern.Tag, edge *tgraph.Edge) (intern.ClkInfoID, bool) {
	if edge.Role.IsRegClkToQ() || edge.Role.IsLatchDToQ() {
		return fromTag.ClkInfo, false
	}
	if edge.Role == tgraph.RoleTristateEnable || edge.Role == tgraph.RoleTristateDisable {
		if !s.sdcs.Variables().ClkThruTristateEnabled {
			return fromTag.ClkInfo, false
		}
	}
	return fromTag.ClkInfo, fromTag.IsClock
}

// loopBreakSensitized reports whether tag is actively matching a loop-break
// exception (sdc.Variables.DynamicLoopBreaking): levelize disables every
// edge on a detected combinational loop statically (spec §4.2), but a
// declared loop-break exception naming a path through one of those edges
// means this one path should still be allowed across it.
func (s *Searcher) loopBreakSensitized(tag intern.Tag) bool {
	if !tag.ExceptionState.Valid() {
		return false
	}
	st, ok := s.exceptionState(tag.ExceptionState)
	return ok && st.Exception.Type == sdc.LoopBreak
}

func (s *Searcher) propagateArrivals(ctx context.Context, ap tgraph.AnalysisPoint) error {
	byLevel := s.verticesByLevel()
	for _, lvl := range sortedLevels(byLevel) {
		touched := touchedArrivals(byLevel[lvl])
		if len(touched) == 0 {
			continue
		}
		if err := s.visitLevelArrivals(ctx, ap, touched); err != nil {
			return err
		}
	}
	return nil
}

func (s *Searcher) visitLevelArrivals(ctx context.Context, ap tgraph.AnalysisPoint, vs []*tgraph.Vertex) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max1(s.cfg.Workers))
	for _, v := range vs {
		v.Flags.BFSInQueueArrival = false
		vv := v
		g.Go(func() error {
			return s.visitArrivals(gctx, ap, vv)
		})
	}
	return g.Wait()
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// visitArrivals fans from's live arrivals out across every traversable
// out-edge's matching arcs (spec §4.6 step 1-3): levelize's searchThru
// predicate (check edges, disabled-loop, disabled-constraint) plus sdc's
// own per-edge disable set gate which edges are walked at all.
func (s *Searcher) visitArrivals(ctx context.Context, ap tgraph.AnalysisPoint, from *tgraph.Vertex) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	vars := s.sdcs.Variables()
	paths := s.Paths(from.ID())
	for _, eid := range from.OutEdges() {
		edge := s.g.Edge(eid)
		if edge == nil || edge.ArcSet == nil || edge.Role.IsCheck() ||
			edge.Flags.IsDisabledConstraint || s.sdcs.IsDisabled(eid) {
			continue
		}
		if edge.Role == tgraph.RoleRegSetClr && !vars.PresetClrArcsEnabled {
			continue
		}
		to := s.g.Vertex(edge.To)
		if to == nil {
			continue
		}
		if edge.Flags.IsBidirectInstPath && !vars.BidirectInstPathsEnabled {
			continue
		}
		if to.Flags.IsBidirectDriver && !edge.Flags.IsBidirectInstPath && !vars.BidirectNetPathsEnabled {
			continue
		}
		for idx, p := range paths {
			fromTag := s.in.Tag(p.Tag)
			if fromTag.MinMax != ap.MinMax || fromTag.Corner != ap.Corner {
				continue
			}
			if edge.Flags.IsDisabledLoop && (!vars.DynamicLoopBreaking || !s.loopBreakSensitized(fromTag)) {
				continue
			}
			for arcIdx, arc := range edge.ArcSet.Arcs {
				if arc.FromRF != fromTag.RF {
					continue
				}
				toClkInfo, toIsClk := s.thruClkInfo(fromTag, edge)
				toTagID, ok := s.mutateTag(p.Tag, from.Pin, to.Pin, arc.ToRF,
					fromTag.IsClock, toIsClk, fromTag.IsSegmentStart, toClkInfo, fromTag.InputDelay)
				if !ok {
					continue
				}
				inSlew, _ := from.Slew(ap, fromTag.RF)
				load := s.load(edge, arc.ToRF, ap)
				res, err := delaycalc.Annotate(ctx, s.calc, edge, to, arc, ap, inSlew, load)
				if err != nil {
					s.rpt.Errorf("visitArrivals: %v", err)
					continue
				}
				derated := res.Delay * s.deratingFactor(edge, ap.MinMax)
				s.setArrival(to, toTagID, p.Arrival+derated, intern.PathRef{Vertex: from.ID(), Index: idx}, eid, arcIdx)
			}
		}
	}
	return nil
}

// deratingFactor returns the set_timing_derate multiplier for edge's delay
// at mm: wire edges use the net factor, everything else the cell factor,
// picking the early (Min) or late (Max) side to match (spec §4.6 step 1's
// "derated_arc_delay"; sdc.DeratingFactors defaults to identity).
func (s *Searcher) deratingFactor(edge *tgraph.Edge, mm liberty.MinMax) float64 {
	d := s.sdcs.Derating()
	isNet := edge.Role == tgraph.RoleWire
	if mm == liberty.Min {
		if isNet {
			return d.NetDelayEarly
		}
		return d.CellDelayEarly
	}
	if isNet {
		return d.NetDelayLate
	}
	return d.CellDelayLate
}

func (s *Searcher) verticesByLevel() map[int][]*tgraph.Vertex {
	byLevel := make(map[int][]*tgraph.Vertex)
	s.g.Vertices(func(v *tgraph.Vertex) {
		byLevel[v.Level] = append(byLevel[v.Level], v)
	})
	return byLevel
}

func sortedLevels(byLevel map[int][]*tgraph.Vertex) []int {
	out := make([]int, 0, len(byLevel))
	for l := range byLevel {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

func touchedArrivals(vs []*tgraph.Vertex) []*tgraph.Vertex {
	var out []*tgraph.Vertex
	for _, v := range vs {
		if v.Flags.BFSInQueueArrival {
			out = append(out, v)
		}
	}
	return out
}

// setArrival records (or relaxes) one tagged arrival at v (spec §4.6 step
// 3's merge-by-min/max): a path with an identical tag keeps whichever
// arrival mm.Better prefers; a brand-new tag appends. v is marked touched,
// so the next level sweep visits its fanout, only when a tag is appended
// or an existing arrival improves.
func (s *Searcher) setArrival(v *tgraph.Vertex, tagID intern.TagID, arrival float64, prev intern.PathRef, eid tgraph.EdgeID, arcIdx int) {
	tag := s.in.Tag(tagID)
	mm := tag.MinMax
	s.pathMu.Lock()
	defer s.pathMu.Unlock()

	if tag.IsFilter {
		s.filteredVertices[v.ID()] = true
	}

	arr := s.paths[v.ID()]
	for i := range arr {
		if arr[i].Tag == tagID {
			if mm.Better(arrival, arr[i].Arrival) != arr[i].Arrival {
				arr[i].Arrival = arrival
				arr[i].Prev = prev
				arr[i].Edge = eid
				arr[i].ArcIndex = arcIdx
				v.Flags.BFSInQueueArrival = true
			}
			return
		}
	}
	arr = append(arr, Path{
		Tag:      tagID,
		Arrival:  arrival,
		Required: initialRequired(mm),
		Prev:     prev,
		Edge:     eid,
		ArcIndex: arcIdx,
	})
	s.paths[v.ID()] = arr
	s.rebuildTagGroupLocked(v.ID())
	v.Flags.BFSInQueueArrival = true
}

// rebuildTagGroupLocked re-interns v's TagGroup from its current path list
// (spec §4.5: "a TagGroup bundles every Tag live at a vertex with the
// index of its Path record"). Called with pathMu already held.
func (s *Searcher) rebuildTagGroupLocked(vid tgraph.VertexID) {
	paths := s.paths[vid]
	entries := make([]intern.TagGroupEntry, len(paths))
	for i, p := range paths {
		entries[i] = intern.TagGroupEntry{Tag: p.Tag, PathIndex: i}
	}
	id, err := s.in.InternTagGroup(entries)
	if err != nil {
		s.rpt.Errorf("rebuildTagGroup: %v", err)
		return
	}
	s.tagGroupOf[vid] = id
}

// ClearFilteredPaths removes every Path carrying an IsFilter tag (spec §4.6
// "filtered arrivals ... cleared between queries"), walking only the
// recorded filtered-vertex set rather than the whole graph. Call between
// report_timing-style filtered queries so a stale -from/-thru/-to filter's
// paths don't leak into the next one.
func (s *Searcher) ClearFilteredPaths() {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	for vid := range s.filteredVertices {
		arr := s.paths[vid]
		kept := arr[:0]
		for _, p := range arr {
			if !s.in.Tag(p.Tag).IsFilter {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(s.paths, vid)
			delete(s.tagGroupOf, vid)
		} else {
			s.paths[vid] = kept
			s.rebuildTagGroupLocked(vid)
		}
		delete(s.filteredVertices, vid)
	}
}
