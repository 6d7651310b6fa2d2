package sdc

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
)

// InputDelay is a set_input_delay constraint: pin's external arrival at rf
// relative to clockEdge is delay, min or max side (spec §4.6 seeding rule
// 2). RefPin, when set, means "relative to the reference pin's own clock
// arrival" instead of the literal clockEdge.Time().
type InputDelay struct {
	ID        uint32
	Pin       network.Pin
	ClockEdge ClockEdge
	RF        liberty.RiseFall
	MinMax    liberty.MinMax
	Delay     float64
	RefPin    network.Pin
	HasRefPin bool
}

// OutputDelay is a set_output_delay constraint: pin's required departure
// time at rf relative to clockEdge is delay, min or max side (spec §4.8
// "output-delay" endpoint type).
type OutputDelay struct {
	ID        uint32
	Pin       network.Pin
	ClockEdge ClockEdge
	RF        liberty.RiseFall
	MinMax    liberty.MinMax
	Delay     float64
}

// SetInputDelay records a new input-delay constraint on pin and returns its
// id (used as intern.InputDelayRef.ID so a Tag can reference it without sdc
// being a dependency of intern).
func (s *Sdc) SetInputDelay(pin network.Pin, clockEdge ClockEdge, rf liberty.RiseFall, mm liberty.MinMax, delay float64) *InputDelay {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := &InputDelay{ID: s.nextInputDelayID(), Pin: pin, ClockEdge: clockEdge, RF: rf, MinMax: mm, Delay: delay}
	s.inputDelays = append(s.inputDelays, id)
	s.inputDelaysByPin[pin.ID] = append(s.inputDelaysByPin[pin.ID], id)
	return id
}

// SetInputDelayWithRefPin is SetInputDelay with an explicit -reference_pin:
// delay is relative to refPin's own computed clock arrival rather than
// clockEdge.Time() directly.
func (s *Sdc) SetInputDelayWithRefPin(pin network.Pin, refPin network.Pin, rf liberty.RiseFall, mm liberty.MinMax, delay float64) *InputDelay {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := &InputDelay{ID: s.nextInputDelayID(), Pin: pin, RF: rf, MinMax: mm, Delay: delay, RefPin: refPin, HasRefPin: true}
	s.inputDelays = append(s.inputDelays, id)
	s.inputDelaysByPin[pin.ID] = append(s.inputDelaysByPin[pin.ID], id)
	return id
}

func (s *Sdc) nextInputDelayID() uint32 {
	s.inputDelaySeq++
	return s.inputDelaySeq
}

// InputDelaysAt returns every input-delay constraint on pin (spec §4.6
// seeding rule 2: "one arrival per... per input-delay object").
func (s *Sdc) InputDelaysAt(pin network.Pin) []*InputDelay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.inputDelaysByPin[pin.ID]
	if out == nil {
		return nil
	}
	cp := make([]*InputDelay, len(out))
	copy(cp, out)
	return cp
}

// SetOutputDelay records a new output-delay constraint on pin.
func (s *Sdc) SetOutputDelay(pin network.Pin, clockEdge ClockEdge, rf liberty.RiseFall, mm liberty.MinMax, delay float64) *OutputDelay {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputDelaySeq++
	od := &OutputDelay{ID: s.outputDelaySeq, Pin: pin, ClockEdge: clockEdge, RF: rf, MinMax: mm, Delay: delay}
	s.outputDelays = append(s.outputDelays, od)
	s.outputDelaysByPin[pin.ID] = append(s.outputDelaysByPin[pin.ID], od)
	return od
}

// OutputDelaysAt returns every output-delay constraint on pin.
func (s *Sdc) OutputDelaysAt(pin network.Pin) []*OutputDelay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.outputDelaysByPin[pin.ID]
	if out == nil {
		return nil
	}
	cp := make([]*OutputDelay, len(out))
	copy(cp, out)
	return cp
}
