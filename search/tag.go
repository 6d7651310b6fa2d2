package search

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/intern"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/sdc"
)

// findTag interns a Tag from its component fields, optionally carrying a
// pending exception state.
func (s *Searcher) findTag(rf liberty.RiseFall, mm liberty.MinMax, corner liberty.Corner, clkInfo intern.ClkInfoID, isClock bool, inputDelay intern.InputDelayRef, isSegmentStart bool, state sdc.ExceptionState, hasState bool) (intern.TagID, error) {
	var esID intern.ExceptionStateID
	if hasState {
		esID = s.internExceptionState(state)
	}
	return s.in.InternTag(intern.Tag{
		RF:             rf,
		MinMax:         mm,
		Corner:         corner,
		ClkInfo:        clkInfo,
		IsClock:        isClock,
		InputDelay:     inputDelay,
		IsSegmentStart: isSegmentStart,
		ExceptionState: esID,
		IsFilter:       hasState && state.Exception != nil && state.Exception.Type == sdc.PathFilter,
	})
}

// mutateTag finds the tag for a path going from fromTagID through one edge
// to (toPin, toRF) — the original's Search::mutateTag (spec §4.6 step 2).
// It returns ok=false when the traversal kills the path outright: a
// completed false-path -thru reaching non-clock data, a completed loop-
// break, or a path-delay exception whose -to endpoint was just reached (so
// the path dies here rather than continuing past its declared endpoint).
func (s *Searcher) mutateTag(fromTagID intern.TagID, fromPin, toPin network.Pin, toRF liberty.RiseFall, fromIsClk, toIsClk, toIsSegmentStart bool, toClkInfo intern.ClkInfoID, toInputDelay intern.InputDelayRef) (intern.TagID, bool) {
	fromTag := s.in.Tag(fromTagID)
	mm := fromTag.MinMax
	corner := fromTag.Corner

	var nextState sdc.ExceptionState
	hasState := false
	stateChanged := false

	if fromTag.ExceptionState.Valid() {
		st, ok := s.exceptionState(fromTag.ExceptionState)
		if ok {
			// A state that already reached its exception's own -to pin on a
			// prior edge (st.Done, set by Advance, distinct from merely
			// having every -thru satisfied) kills a false path's data
			// propagation one edge past its endpoint (clocks still carry it,
			// to disable downstream paths that use the clock as data), and
			// always kills loop-break/path-delay from propagating further.
			if st.Complete() {
				switch st.Exception.Type {
				case sdc.FalsePath:
					if !fromIsClk {
						return 0, false
					}
				case sdc.LoopBreak, sdc.PathDelay:
					return 0, false
				}
			}

			next, doneAtTo, alive := st.Advance(fromPin, toPin)
			if !alive {
				return 0, false
			}
			// The tag built below always keeps next, even when doneAtTo:
			// the endpoint's own tag needs the completed (Done) state on it
			// so FindPathEnds can suppress it there, and so the edge past it
			// hits the st.Complete() branch above exactly one hop later.
			hasState = true
			nextState = next
			stateChanged = doneAtTo || next.ThruIndex != st.ThruIndex
		}
	}

	if !stateChanged {
		if toClkInfo == fromTag.ClkInfo &&
			toIsClk == fromTag.IsClock &&
			fromTag.IsSegmentStart == toIsSegmentStart &&
			fromTag.InputDelay == toInputDelay {
			// No change in anything mutateTag tracks: reuse fromTag's own
			// representative (or its RF sibling) instead of re-interning.
			if toRF == fromTag.RF {
				return fromTagID, true
			}
			return intern.SiblingTagID(fromTagID), true
		}
	}

	id, err := s.findTag(toRF, mm, corner, toClkInfo, toIsClk, toInputDelay, toIsSegmentStart, nextState, hasState)
	if err != nil {
		s.rpt.Errorf("mutateTag: %v", err)
		return 0, false
	}
	return id, true
}
