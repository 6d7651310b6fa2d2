package search

import (
	"math"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/intern"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/sdc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// EndpointKind classifies why a vertex terminates a timing path (spec
// §4.8). Gated-clock checks are a simplification this core does not
// classify separately (no gated-clock collaborator is wired in); a gated
// enable endpoint reports as EndpointUnconstrained instead.
type EndpointKind int

const (
	EndpointUnconstrained EndpointKind = iota
	EndpointCheck
	EndpointOutputDelay
	EndpointPathDelay
)

func (k EndpointKind) String() string {
	switch k {
	case EndpointCheck:
		return "check"
	case EndpointOutputDelay:
		return "output_delay"
	case EndpointPathDelay:
		return "path_delay"
	default:
		return "unconstrained"
	}
}

// PathEnd is one reported (arrival, required) pair at an endpoint (spec
// §4.8: "every surviving arrival is combined with every applicable
// target-clock arrival to form a path end").
type PathEnd struct {
	Vertex    tgraph.VertexID
	PathIndex int
	Tag       intern.TagID
	Kind      EndpointKind
	PathGroup string
	Arrival   float64
	Required  float64
	Slack     float64
}

// Slack computes required-arrival or arrival-required depending on mm,
// "the usual sign for the min/max side" (spec §8's testable property).
func Slack(mm liberty.MinMax, arrival, required float64) float64 {
	if mm == liberty.Max {
		return required - arrival
	}
	return arrival - required
}

// pathGroup names the *path group* a tag's arrival reports under (spec
// §4.8): a path-delay exception's own fixed bucket, "**unconstrained**"
// for a path with no constraint at all, the launching/capturing clock's
// name when the tag carries one, or "**default**" otherwise.
// set_group_path's own -group override is a simplification this core does
// not track per-tag.
func (s *Searcher) pathGroup(kind EndpointKind, tag intern.Tag) string {
	switch kind {
	case EndpointPathDelay:
		return "**path_delay**"
	case EndpointUnconstrained:
		return "**unconstrained**"
	}
	if tag.ClkInfo.Valid() {
		if name := s.in.ClkInfo(tag.ClkInfo).ClockEdge.Clock; name != "" {
			return name
		}
	}
	return "**default**"
}

// endpointKind picks the first matching reason v is a seeded endpoint for
// ap's side (spec §4.8's endpoint type list, minus gated-clock checks).
func (s *Searcher) endpointKind(v *tgraph.Vertex, mm liberty.MinMax) EndpointKind {
	for _, eid := range v.InEdges() {
		e := s.g.Edge(eid)
		if e == nil || !e.Role.IsCheck() {
			continue
		}
		if wantMM, ok := checkMM(e.Role); ok && wantMM == mm {
			return EndpointCheck
		}
	}
	for _, od := range s.sdcs.OutputDelaysAt(v.Pin) {
		if od.MinMax == mm {
			return EndpointOutputDelay
		}
	}
	for _, ex := range s.sdcs.Exceptions() {
		if ex.Type == sdc.PathDelay && ex.MatchesTo(v.Pin) {
			return EndpointPathDelay
		}
	}
	return EndpointUnconstrained
}

// suppressedByException reports whether tag's pending exception state has
// completed a false-path or loop-break match, i.e. the path has reached
// that exception's -to pin, at this endpoint or upstream of it (spec's
// worked example 5: "no path end...slack reported as
// +∞/not reported"). A clock tag still carrying a completed false-path
// state is not suppressed — it may still disable a downstream check that
// uses it as data, same asymmetry mutateTag applies going forward.
func (s *Searcher) suppressedByException(tag intern.Tag) bool {
	if !tag.ExceptionState.Valid() {
		return false
	}
	st, ok := s.exceptionState(tag.ExceptionState)
	if !ok || !st.Complete() {
		return false
	}
	switch st.Exception.Type {
	case sdc.FalsePath, sdc.LoopBreak:
		return !tag.IsClock
	}
	return false
}

// FindPathEnds builds one PathEnd per (endpoint, surviving tag) at ap, the
// final spec §4.8 step turning arrivals and requireds into reported
// slacks. Call after both FindArrivals(ap) and FindArrivals(ap.Opposite)
// and FindRequireds(ap) have run (seedCheckRequireds needs both sides'
// clock arrivals). Unconstrained endpoints are only reported when
// cfg.UnconstrainedPaths or sdc.Variables.UseDefaultArrivalClock asks for
// them (unconstrainedPathsEnabled).
func (s *Searcher) FindPathEnds(ap tgraph.AnalysisPoint) []PathEnd {
	mm := ap.MinMax
	var ends []PathEnd
	s.g.Vertices(func(v *tgraph.Vertex) {
		if !s.isEndpoint(v) {
			return
		}
		kind := s.endpointKind(v, mm)
		if kind == EndpointUnconstrained && !s.unconstrainedPathsEnabled() {
			return
		}
		for idx, p := range s.Paths(v.ID()) {
			tag := s.in.Tag(p.Tag)
			if tag.MinMax != mm || tag.Corner != ap.Corner {
				continue
			}
			if kind != EndpointUnconstrained && math.IsInf(p.Required, 0) {
				// Never relaxed by this endpoint's own constraint (a
				// different check edge's mm, perhaps): nothing to report.
				continue
			}
			if s.suppressedByException(tag) {
				continue
			}
			ends = append(ends, PathEnd{
				Vertex:    v.ID(),
				PathIndex: idx,
				Tag:       p.Tag,
				Kind:      kind,
				PathGroup: s.pathGroup(kind, tag),
				Arrival:   p.Arrival,
				Required:  p.Required,
				Slack:     Slack(mm, p.Arrival, p.Required),
			})
		}
	})
	return ends
}

// FindFilteredPathEnds reports only the PathEnds whose tag carries an active
// report_timing-style filter (spec §4.6: "only tags carrying the filter's
// active state survive" at the report layer) — the narrowed view a caller
// gets from -from/-thru/-to filtering instead of every surviving path.
// Call ClearFilteredPaths once the caller is done with the result, so the
// next filtered query starts from an empty set.
func (s *Searcher) FindFilteredPathEnds(ap tgraph.AnalysisPoint) []PathEnd {
	ends := s.FindPathEnds(ap)
	out := ends[:0]
	for _, e := range ends {
		if s.in.Tag(e.Tag).IsFilter {
			out = append(out, e)
		}
	}
	return out
}
