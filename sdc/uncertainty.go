package sdc

import "github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"

// clockSideKey indexes a per-clock, per-min/max scalar (uncertainty,
// latency, insertion delay).
type clockSideKey struct {
	Clock  string
	MinMax liberty.MinMax
}

// SetClockUncertainty records the inter-clock or intra-clock uncertainty
// margin CRPR's caller subtracts on the check side (spec §4.7, §6 "clock
// uncertainties").
func (s *Sdc) SetClockUncertainty(clockName string, mm liberty.MinMax, uncertainty float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uncertainty[clockSideKey{clockName, mm}] = uncertainty
}

// ClockUncertainty returns the uncertainty set for (clockName, mm), or
// false if none was set.
func (s *Sdc) ClockUncertainty(clockName string, mm liberty.MinMax) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.uncertainty[clockSideKey{clockName, mm}]
	return v, ok
}

// SetClockLatency records a clock network's estimated (non-propagated)
// latency for (clockName, mm) — the "clock latency" spec §6 names apart
// from per-pin insertion delay.
func (s *Sdc) SetClockLatency(clockName string, mm liberty.MinMax, latency float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency[clockSideKey{clockName, mm}] = latency
}

// ClockLatency returns the latency set for (clockName, mm), or false if
// none was set.
func (s *Sdc) ClockLatency(clockName string, mm liberty.MinMax) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.latency[clockSideKey{clockName, mm}]
	return v, ok
}

// SetClockInsertionDelay records a clock tree's source (insertion) delay
// for (clockName, mm), the value forward search's seeding rule 1 adds to a
// clock leaf pin's arrival.
func (s *Sdc) SetClockInsertionDelay(clockName string, mm liberty.MinMax, insertion float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertion[clockSideKey{clockName, mm}] = insertion
}

// ClockInsertionDelay returns the insertion delay set for (clockName, mm),
// or false if none was set.
func (s *Sdc) ClockInsertionDelay(clockName string, mm liberty.MinMax) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.insertion[clockSideKey{clockName, mm}]
	return v, ok
}
