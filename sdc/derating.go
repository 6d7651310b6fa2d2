package sdc

import "github.com/The-OpenROAD-Project/OpenSTA-sub003/network"

// OperatingConditions is the PVT point an analysis corner's cell lookups
// resolve against (spec §6 "operating conditions").
type OperatingConditions struct {
	Name        string
	Process     float64
	Voltage     float64
	Temperature float64
}

// DeratingFactors scales cell and net (interconnect) delays for early
// (min/best-case) and late (max/worst-case) analysis, the multiplicative
// knob `set_timing_derate` exposes (spec §6 "derating factors").
type DeratingFactors struct {
	CellDelayEarly float64
	CellDelayLate  float64
	NetDelayEarly  float64
	NetDelayLate   float64
}

// DefaultDeratingFactors returns the identity derating (no scaling).
func DefaultDeratingFactors() DeratingFactors {
	return DeratingFactors{CellDelayEarly: 1, CellDelayLate: 1, NetDelayEarly: 1, NetDelayLate: 1}
}

// SetOperatingConditions replaces the active operating conditions.
func (s *Sdc) SetOperatingConditions(oc OperatingConditions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operatingConditions = oc
}

// OperatingConditions returns the active operating conditions.
func (s *Sdc) OperatingConditions() OperatingConditions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.operatingConditions
}

// SetDerating replaces the active derating factors.
func (s *Sdc) SetDerating(d DeratingFactors) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.derating = d
}

// Derating returns the active derating factors.
func (s *Sdc) Derating() DeratingFactors {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.derating
}

// CaseValue is a forced logic value from set_case_analysis.
type CaseValue int

const (
	CaseNone CaseValue = iota
	CaseZero
	CaseOne
	CaseRising
	CaseFalling
)

// SetCaseAnalysis forces pin to a constant logic value for the rest of
// this analysis (spec §6 "case analysis (forced logic values on pins)").
func (s *Sdc) SetCaseAnalysis(pin network.Pin, value CaseValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == CaseNone {
		delete(s.caseAnalysis, pin.ID)
		return
	}
	s.caseAnalysis[pin.ID] = value
}

// CaseAnalysis returns the forced value at pin, or CaseNone if unset.
func (s *Sdc) CaseAnalysis(pin network.Pin) CaseValue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.caseAnalysis[pin.ID]
}
