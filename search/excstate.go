package search

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/intern"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/sdc"
)

// sdc.ExceptionState carries a *sdc.Exception pointer, so it can't live
// inside the intern package (a dependency leaf that must not import sdc).
// search keeps its own small arena for it instead, the same "intern then
// reference by integer id" shape intern itself uses for Tag/ClkInfo/
// TagGroup, so intern.Tag.ExceptionState stays a plain comparable field
// (spec §4.5's interning discipline applied one level up).
//
// Slot 0 is reserved invalid, matching every other arena in this module.
func (s *Searcher) internExceptionState(st sdc.ExceptionState) intern.ExceptionStateID {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	if len(s.excStates) == 0 {
		s.excStates = append(s.excStates, sdc.ExceptionState{})
	}
	if id, ok := s.excStateByKey[st]; ok {
		return id
	}
	id := intern.ExceptionStateID(len(s.excStates))
	s.excStates = append(s.excStates, st)
	s.excStateByKey[st] = id
	return id
}

// exceptionState resolves id back to the sdc.ExceptionState it was
// interned from, or false if id is invalid or unknown.
func (s *Searcher) exceptionState(id intern.ExceptionStateID) (sdc.ExceptionState, bool) {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	if !id.Valid() || int(id) >= len(s.excStates) {
		return sdc.ExceptionState{}, false
	}
	return s.excStates[id], true
}
