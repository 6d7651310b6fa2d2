package sdc

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
)

// Clock is a declared clock: one or more source pins/ports, a period, and a
// waveform of edge times within one period, alternating rise/fall starting
// with rise (spec §6 "clocks (ideal/propagated/generated)").
type Clock struct {
	Name     string
	Sources  []network.Pin
	Period   float64
	Waveform []float64 // strictly increasing edge times in [0, Period)

	Propagated bool // false = ideal network (default), true = propagated

	// Generated-clock fields; Master is nil for a non-generated clock.
	Master        *Clock
	MasterPin     network.Pin
	DivideBy      int
	EdgeFactor    float64 // period multiplier; CreateGeneratedClock sets it to DivideBy
	Invert        bool

	// IsVirtual marks a clock with no physical source pin, used only to
	// anchor exceptions/constraints against an off-chip reference.
	IsVirtual bool
}

// edgeRF reports whether waveform index i is a rising or falling edge,
// alternating starting with Rise at index 0.
func edgeRF(i int) liberty.RiseFall {
	if i%2 == 0 {
		return liberty.Rise
	}
	return liberty.Fall
}

// EdgeTime returns the time of clk's first occurrence of rf within one
// period, or false if clk's waveform never takes that transition (a clock
// with an odd single-edge waveform, for instance).
func (clk *Clock) EdgeTime(rf liberty.RiseFall) (float64, bool) {
	for i, t := range clk.Waveform {
		if edgeRF(i) == rf {
			return t, true
		}
	}
	return 0, false
}

// ClockEdge identifies one rise or fall transition of a declared clock, the
// seed point Forward Search starts an arrival from (spec §4.6 seeding rule
// 1).
type ClockEdge struct {
	Clock *Clock
	RF    liberty.RiseFall
}

// Time returns the absolute time of this edge within the clock's first
// period.
func (ce ClockEdge) Time() float64 {
	t, _ := ce.Clock.EdgeTime(ce.RF)
	return t
}

func validateWaveform(period float64, waveform []float64) error {
	if period <= 0 {
		return ErrInvalidPeriod
	}
	prev := -1.0
	for _, t := range waveform {
		if t < 0 || t >= period || t <= prev {
			return ErrInvalidWaveform
		}
		prev = t
	}
	return nil
}

// CreateClock declares a new ideal clock named name with the given sources,
// period and waveform. Waveform defaults to {0, period/2} (a 50% duty-cycle
// square wave starting rising at time 0) when nil.
func (s *Sdc) CreateClock(name string, sources []network.Pin, period float64, waveform []float64) (*Clock, error) {
	const method = "CreateClock"
	if waveform == nil {
		waveform = []float64{0, period / 2}
	}
	if err := validateWaveform(period, waveform); err != nil {
		return nil, wrapf(method, "%v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clocks[name]; ok {
		return nil, wrapf(method, "%q: %v", name, ErrDuplicateClock)
	}
	clk := &Clock{Name: name, Sources: append([]network.Pin(nil), sources...), Period: period, Waveform: waveform}
	s.clocks[name] = clk
	for _, p := range sources {
		s.clockSourcePin[p.ID] = append(s.clockSourcePin[p.ID], clk)
	}
	return clk, nil
}

// CreateGeneratedClock declares a clock derived from masterName by integer
// division (divideBy; values <= 0 are treated as 1) (spec §6
// "clocks...generated"). There is no separate edge-multiplier form.
func (s *Sdc) CreateGeneratedClock(name string, sources []network.Pin, masterName string, masterPin network.Pin, divideBy int, invert bool) (*Clock, error) {
	const method = "CreateGeneratedClock"
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clocks[name]; ok {
		return nil, wrapf(method, "%q: %v", name, ErrDuplicateClock)
	}
	master, ok := s.clocks[masterName]
	if !ok {
		return nil, wrapf(method, "%q: %v", masterName, ErrMasterClockNotFound)
	}
	div := divideBy
	if div <= 0 {
		div = 1
	}
	period := master.Period * float64(div)
	clk := &Clock{
		Name:       name,
		Sources:    append([]network.Pin(nil), sources...),
		Period:     period,
		Waveform:   []float64{0, period / 2},
		Propagated: true,
		Master:     master,
		MasterPin:  masterPin,
		DivideBy:   div,
		EdgeFactor: float64(div),
		Invert:     invert,
	}
	s.clocks[name] = clk
	for _, p := range sources {
		s.clockSourcePin[p.ID] = append(s.clockSourcePin[p.ID], clk)
	}
	return clk, nil
}

// Clock looks up a declared clock by name.
func (s *Sdc) Clock(name string) (*Clock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clk, ok := s.clocks[name]
	if !ok {
		return nil, wrapf("Clock", "%q: %v", name, ErrClockNotFound)
	}
	return clk, nil
}

// SetPropagated marks clk's network as propagated (vs. the default ideal),
// so forward search's seeding no longer treats every downstream pin's
// clock arrival as insertion-delay-only.
func (s *Sdc) SetPropagated(name string, propagated bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clk, ok := s.clocks[name]
	if !ok {
		return wrapf("SetPropagated", "%q: %v", name, ErrClockNotFound)
	}
	clk.Propagated = propagated
	return nil
}

// ClocksAtPin returns every clock declared with pin as a source, the lookup
// forward search's seeding rule 1 uses to find "clock leaf pins".
func (s *Sdc) ClocksAtPin(pin network.Pin) []*Clock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.clockSourcePin[pin.ID]
	if out == nil {
		return nil
	}
	cp := make([]*Clock, len(out))
	copy(cp, out)
	return cp
}

// Clocks returns every declared clock, in creation order is not guaranteed;
// callers that need determinism should sort by Name.
func (s *Sdc) Clocks() []*Clock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Clock, 0, len(s.clocks))
	for _, clk := range s.clocks {
		out = append(out, clk)
	}
	return out
}
