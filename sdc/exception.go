package sdc

import (
	"sort"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
)

// ExceptionType selects which kind an Exception represents: the five kinds
// spec §3 names, plus PathFilter.
type ExceptionType int

const (
	FalsePath ExceptionType = iota
	MulticyclePath
	PathDelay
	GroupPath
	LoopBreak
	// PathFilter is a report_timing-style -from/-thru/-to filter (spec
	// §4.6's "filtered arrivals"): it rides the same From/Thru/To
	// point-set/ExceptionState machinery as the other five exception types,
	// but reaching its own -to pin never kills a tag's propagation the way
	// FalsePath/LoopBreak/PathDelay do — it only marks Tag.IsFilter so a
	// later filtered query/clear can find it.
	PathFilter
)

func (t ExceptionType) String() string {
	switch t {
	case FalsePath:
		return "false_path"
	case MulticyclePath:
		return "multicycle_path"
	case PathDelay:
		return "path_delay"
	case GroupPath:
		return "group_path"
	case LoopBreak:
		return "loop_break"
	case PathFilter:
		return "path_filter"
	default:
		return "unknown"
	}
}

// pointSet is a from/thru/to endpoint set: a list of pins and/or clock
// names, either of which matches (spec §3 "from-pin/clock sets").
type pointSet struct {
	Pins   map[network.ID]bool
	Clocks map[string]bool
}

func newPointSet(pins []network.Pin, clocks []string) pointSet {
	ps := pointSet{Pins: make(map[network.ID]bool), Clocks: make(map[string]bool)}
	for _, p := range pins {
		ps.Pins[p.ID] = true
	}
	for _, c := range clocks {
		ps.Clocks[c] = true
	}
	return ps
}

func (ps pointSet) empty() bool { return len(ps.Pins) == 0 && len(ps.Clocks) == 0 }

func (ps pointSet) matchesPin(pin network.Pin) bool { return ps.Pins[pin.ID] }

func (ps pointSet) matchesClock(name string) bool { return ps.Clocks[name] }

// Exception is one false-path / multicycle / path-delay / group-path /
// loop-break constraint (spec §3), or a path filter. Priority breaks ties when more than one
// exception's -to set matches the same endpoint; higher wins, matching the
// SDC convention that the most specific (latest-applied, narrowest)
// exception governs.
type Exception struct {
	ID       uint32
	Type     ExceptionType
	From     pointSet
	Thru     []pointSet
	To       pointSet
	Priority int

	// Cycles is the multiplier for MulticyclePath (-setup/-hold cycle count).
	Cycles int
	// SetupNotHold selects which check MulticyclePath relaxes; irrelevant
	// for other types.
	SetupNotHold bool
	// DelayValue is the fixed value for PathDelay (set_max_delay/
	// set_min_delay), seconds.
	DelayValue float64
	// GroupName names the path group for GroupPath.
	GroupName string
}

// ExceptionState is the per-edge progress marker spec §3 describes as
// tracking "the next -thru we are waiting for": ThruIndex counts how many
// of Exception.Thru have been satisfied so far by the path being searched.
// Done is distinct from "every -thru satisfied": it is set only by Advance,
// only on the one edge that also lands on the exception's own -to pin —
// the signal mutateTag needs to kill propagation one edge past the named
// endpoint without also killing a path still short of it (a -thru-less
// exception's ThruIndex is vacuously "all satisfied" from the moment it is
// seeded, long before it ever reaches -to).
type ExceptionState struct {
	Exception *Exception
	ThruIndex int
	Done      bool
}

// Complete reports whether this state has already matched every -thru and
// landed on its exception's own -to pin on some prior edge: mutateTag kills
// a FalsePath/LoopBreak/PathDelay data path outright the edge after this,
// and FindPathEnds suppresses a Path still carrying it at its own endpoint.
func (st ExceptionState) Complete() bool { return st.Done }

func (s *Sdc) nextExceptionID() uint32 {
	s.exceptionSeq++
	return s.exceptionSeq
}

// AddException registers a new exception and returns it. Thru may be nil
// or empty for an exception with no -thru points.
func (s *Sdc) AddException(typ ExceptionType, fromPins []network.Pin, fromClocks []string, thru [][]network.Pin, toPins []network.Pin, toClocks []string, priority int) (*Exception, error) {
	const method = "AddException"
	to := newPointSet(toPins, toClocks)
	if to.empty() {
		return nil, wrapf(method, "%v", ErrExceptionEmptyTo)
	}
	thruSets := make([]pointSet, len(thru))
	for i, t := range thru {
		thruSets[i] = newPointSet(t, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ex := &Exception{
		ID:       s.nextExceptionID(),
		Type:     typ,
		From:     newPointSet(fromPins, fromClocks),
		Thru:     thruSets,
		To:       to,
		Priority: priority,
	}
	s.exceptions = append(s.exceptions, ex)
	return ex, nil
}

// StartStates returns the initial ExceptionStates for every exception whose
// -from set matches fromPin (or fromClock, if the startpoint carries one),
// used by forward search when seeding an arrival at a startpoint.
func (s *Sdc) StartStates(fromPin network.Pin, fromClock string) []ExceptionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ExceptionState
	for _, ex := range s.exceptions {
		if ex.From.empty() || ex.From.matchesPin(fromPin) || (fromClock != "" && ex.From.matchesClock(fromClock)) {
			out = append(out, ExceptionState{Exception: ex, ThruIndex: 0})
		}
	}
	return out
}

// Advance matches one traversed edge's {via pin} against state's next
// pending -thru (or, if already past every -thru, against -to). It returns
// the resulting state, whether the exception is fully satisfied at toPin
// (its path-end/kill behavior depends on ex.Type, decided by the caller:
// search kills a FalsePath tag, completes a PathDelay's endpoint, etc — spec
// §4.6 mutateTag), and whether the state survives. alive is always true:
// a via pin that misses the pending thru leaves the state pending rather
// than dropping it.
func (st ExceptionState) Advance(viaPin, toPin network.Pin) (next ExceptionState, doneAtTo bool, alive bool) {
	ex := st.Exception
	idx := st.ThruIndex
	if idx < len(ex.Thru) {
		if ex.Thru[idx].matchesPin(viaPin) {
			idx++
		}
		// Thru points are optional waypoints, not mandatory per edge: an
		// unmatched via pin leaves ThruIndex unchanged and the state still
		// alive, matching the original's "next -thru we are waiting for"
		// semantics (it only advances, never rejects, on a miss).
	}
	doneAtTo = idx >= len(ex.Thru) && ex.To.matchesPin(toPin)
	next = ExceptionState{Exception: ex, ThruIndex: idx, Done: doneAtTo}
	return next, doneAtTo, true
}

// MatchesTo reports whether pin is in ex's -to set, the endpoint-detection
// query search's backward search uses to find path-delay-exception
// endpoints (spec §4.8) without reaching into Exception's unexported
// pointSet fields.
func (ex *Exception) MatchesTo(pin network.Pin) bool { return ex.To.matchesPin(pin) }

// Exceptions returns every registered exception, sorted by descending
// Priority then ascending ID for deterministic iteration.
func (s *Sdc) Exceptions() []*Exception {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Exception, len(s.exceptions))
	copy(out, s.exceptions)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}
