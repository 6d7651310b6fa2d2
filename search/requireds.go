package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/delaycalc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/intern"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/sdc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// checkMM maps a check edge's role to the analysis side its margin
// constrains: a setup check bounds the late (Max) data arrival, a hold
// check the early (Min) one (spec §4.7, §4.8).
func checkMM(role tgraph.TimingRole) (liberty.MinMax, bool) {
	switch role {
	case tgraph.RoleSetupCheck:
		return liberty.Max, true
	case tgraph.RoleHoldCheck:
		return liberty.Min, true
	default:
		return 0, false
	}
}

// requiredFromTarget applies a margin to a check/output-delay target the
// way each side of mm needs it: Max subtracts (the data path must arrive
// before target-margin), Min adds (it must not arrive before target+margin).
func requiredFromTarget(mm liberty.MinMax, target, margin float64) float64 {
	if mm == liberty.Max {
		return target - margin
	}
	return target + margin
}

// FindRequireds runs the backward search for ap (spec §4.7): seed every
// endpoint's required time from its check/output-delay/path-delay
// constraint, then relax it back through the forward search's own Prev
// links in descending-level order, one level fully drained before the
// next (spec §5, mirroring FindArrivals' shape in the opposite direction).
func (s *Searcher) FindRequireds(ctx context.Context, ap tgraph.AnalysisPoint) error {
	if err := s.seedRequireds(ctx, ap); err != nil {
		return err
	}
	return s.propagateRequireds(ctx, ap)
}

// isEndpoint reports whether v terminates at least one timing path (spec
// §4.8): it has an enabled check in-edge, an output-delay constraint, a
// path-delay exception naming it as -to, no fanout at all (a dangling net
// still needs a reported arrival), or is an unconstrained register clock
// pin while unconstrainedPathsEnabled. Gated-clock-enable endpoints are a
// simplification this core does not classify (no gated-clock package is
// wired in).
func (s *Searcher) isEndpoint(v *tgraph.Vertex) bool {
	for _, eid := range v.InEdges() {
		e := s.g.Edge(eid)
		if e != nil && e.Role.IsCheck() && !e.Flags.IsDisabledConstraint && !s.sdcs.IsDisabled(eid) {
			return true
		}
	}
	if len(s.sdcs.OutputDelaysAt(v.Pin)) > 0 {
		return true
	}
	for _, ex := range s.sdcs.Exceptions() {
		if ex.Type == sdc.PathDelay && ex.MatchesTo(v.Pin) {
			return true
		}
	}
	if len(v.OutEdges()) == 0 {
		return true
	}
	return s.unconstrainedPathsEnabled() && v.Flags.IsRegClk
}

func (s *Searcher) seedRequireds(ctx context.Context, ap tgraph.AnalysisPoint) error {
	var outerErr error
	s.g.Vertices(func(v *tgraph.Vertex) {
		if outerErr != nil || !s.isEndpoint(v) {
			return
		}
		if err := s.seedCheckRequireds(ctx, v, ap); err != nil {
			outerErr = err
			return
		}
		s.seedOutputDelayRequireds(v, ap)
		s.seedPathDelayRequireds(v, ap)
	})
	return outerErr
}

// seedCheckRequireds relaxes every data Path at v whose tag matches ap's
// side against the check edges feeding it (spec §4.7's check-edge formula
// "required = checkTarget - checkMargin - uncertainty"; the sign flips for
// Min per requiredFromTarget). The check edge's own arc delay is the
// margin, computed through the same DelayCalc used for ordinary arcs — a
// check TimingArcSet is still just a (from-rf, to-rf) arc table.
//
// The captured clock's own arrival is read from the *opposite* side of ap:
// a setup check (mm=Max) wants the capture clock as early as possible
// (Min), a hold check the latest possible (Max) — the standard OCV
// asymmetry that also makes CRPR's common-path correction meaningful (a
// Max-side launch clock path and a Min-side capture clock path otherwise
// double-derate the clock network segment they actually share). Both
// sides' Paths coexist at the same vertex because MinMax is part of Tag,
// so this assumes the caller has already run FindArrivals for both.
func (s *Searcher) seedCheckRequireds(ctx context.Context, v *tgraph.Vertex, ap tgraph.AnalysisPoint) error {
	mm := ap.MinMax
	captureMM := mm.Opposite()
	captureAP := tgraph.AnalysisPoint{Corner: ap.Corner, MinMax: captureMM}
	dataPaths := s.Paths(v.ID())
	for _, eid := range v.InEdges() {
		edge := s.g.Edge(eid)
		if edge == nil || edge.ArcSet == nil || !edge.Role.IsCheck() ||
			edge.Flags.IsDisabledConstraint || s.sdcs.IsDisabled(eid) {
			continue
		}
		wantMM, ok := checkMM(edge.Role)
		if !ok || wantMM != mm {
			continue
		}
		clkVertex := s.g.Vertex(edge.From)
		if clkVertex == nil {
			continue
		}
		clkPaths := s.Paths(clkVertex.ID())
		for _, arc := range edge.ArcSet.Arcs {
			for cpIdx, cp := range clkPaths {
				clkTag := s.in.Tag(cp.Tag)
				if !clkTag.IsClock || clkTag.MinMax != captureMM || clkTag.Corner != ap.Corner || clkTag.RF != arc.FromRF {
					continue
				}
				clkInfo := s.in.ClkInfo(clkTag.ClkInfo)
				uncertainty, _ := s.sdcs.ClockUncertainty(clkInfo.ClockEdge.Clock, mm)
				clkRef := intern.PathRef{Vertex: clkVertex.ID(), Index: cpIdx}

				inSlew, _ := clkVertex.Slew(captureAP, clkTag.RF)
				res, err := delaycalc.Annotate(ctx, s.calc, edge, v, arc, ap, inSlew, delaycalc.Loading{})
				if err != nil {
					s.rpt.Errorf("seedCheckRequireds: %v", err)
					continue
				}
				margin := res.Delay + uncertainty
				required := requiredFromTarget(mm, cp.Arrival, margin)

				for idx, dp := range dataPaths {
					dataTag := s.in.Tag(dp.Tag)
					if dataTag.MinMax != mm || dataTag.Corner != ap.Corner || dataTag.RF != arc.ToRF {
						continue
					}
					dataRef := intern.PathRef{Vertex: v.ID(), Index: idx}
					s.relaxRequired(v.ID(), idx, required+s.crprAdjustment(dataRef, clkRef), mm)
				}
			}
		}
	}
	return nil
}

// seedOutputDelayRequireds applies spec §4.8's output-delay endpoint rule:
// required = clockEdge.Time() -+ delay, same requiredFromTarget shape as a
// check margin with the output-delay value standing in for the margin.
func (s *Searcher) seedOutputDelayRequireds(v *tgraph.Vertex, ap tgraph.AnalysisPoint) {
	mm := ap.MinMax
	dataPaths := s.Paths(v.ID())
	for _, od := range s.sdcs.OutputDelaysAt(v.Pin) {
		if od.MinMax != mm {
			continue
		}
		required := requiredFromTarget(mm, od.ClockEdge.Time(), od.Delay)
		for idx, dp := range dataPaths {
			dataTag := s.in.Tag(dp.Tag)
			if dataTag.RF != od.RF || dataTag.MinMax != mm || dataTag.Corner != ap.Corner {
				continue
			}
			s.relaxRequired(v.ID(), idx, required, mm)
		}
	}
}

// seedPathDelayRequireds applies a set_max_delay/set_min_delay exception's
// fixed endpoint target (spec §4.8). This core's Exception carries no
// separate min/max side of its own (a simplification: DelayValue applies
// identically whichever ap is running), unlike a check's or output-delay's
// explicit MinMax field.
func (s *Searcher) seedPathDelayRequireds(v *tgraph.Vertex, ap tgraph.AnalysisPoint) {
	mm := ap.MinMax
	dataPaths := s.Paths(v.ID())
	for _, ex := range s.sdcs.Exceptions() {
		if ex.Type != sdc.PathDelay || !ex.MatchesTo(v.Pin) {
			continue
		}
		for idx := range dataPaths {
			s.relaxRequired(v.ID(), idx, ex.DelayValue, mm)
		}
	}
}

// relaxRequired merges candidate into the Required field of the Path at
// (vid, idx), keeping whichever side mm.Opposite().Better prefers: for a
// Max/setup check the tightest (smallest) required time among every
// constraint that reaches this tag wins, the reverse of how arrivals merge
// (spec §4.7 RequiredCmp). initialRequired's +-Inf sentinel guarantees the
// first relaxation always applies.
func (s *Searcher) relaxRequired(vid tgraph.VertexID, idx int, candidate float64, mm liberty.MinMax) {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	arr := s.paths[vid]
	if idx < 0 || idx >= len(arr) {
		return
	}
	merged := mm.Opposite().Better(candidate, arr[idx].Required)
	if merged != arr[idx].Required {
		arr[idx].Required = merged
		if v := s.g.Vertex(vid); v != nil {
			v.Flags.BFSInQueueRequired = true
		}
	}
}

func (s *Searcher) propagateRequireds(ctx context.Context, ap tgraph.AnalysisPoint) error {
	byLevel := s.verticesByLevel()
	levels := sortedLevels(byLevel)
	for i := len(levels) - 1; i >= 0; i-- {
		touched := touchedRequireds(byLevel[levels[i]])
		if len(touched) == 0 {
			continue
		}
		if err := s.visitLevelRequireds(ctx, ap, touched); err != nil {
			return err
		}
	}
	return nil
}

func (s *Searcher) visitLevelRequireds(ctx context.Context, ap tgraph.AnalysisPoint, vs []*tgraph.Vertex) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max1(s.cfg.Workers))
	for _, v := range vs {
		v.Flags.BFSInQueueRequired = false
		vv := v
		g.Go(func() error {
			return s.visitRequireds(gctx, ap, vv)
		})
	}
	return g.Wait()
}

// visitRequireds relaxes every Path at v back onto the upstream Path that
// produced it (spec §4.7): backward search never re-derives the tag graph,
// it walks the Prev link forward search already recorded and subtracts the
// same derated arc delay cached on Path.Edge/ArcIndex.
func (s *Searcher) visitRequireds(ctx context.Context, ap tgraph.AnalysisPoint, v *tgraph.Vertex) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	paths := s.Paths(v.ID())
	for _, p := range paths {
		if !p.Prev.Valid() {
			continue
		}
		mm := s.in.Tag(p.Tag).MinMax
		edge := s.g.Edge(p.Edge)
		if edge == nil || edge.ArcSet == nil || p.ArcIndex < 0 || p.ArcIndex >= len(edge.ArcSet.Arcs) {
			continue
		}
		arc := edge.ArcSet.Arcs[p.ArcIndex]
		delay, ok := edge.Delay(ap, arc.ToRF)
		if !ok {
			continue
		}
		derated := delay * s.deratingFactor(edge, mm)
		s.relaxRequired(p.Prev.Vertex, p.Prev.Index, p.Required-derated, mm)
	}
	return nil
}

func touchedRequireds(vs []*tgraph.Vertex) []*tgraph.Vertex {
	var out []*tgraph.Vertex
	for _, v := range vs {
		if v.Flags.BFSInQueueRequired {
			out = append(out, v)
		}
	}
	return out
}
