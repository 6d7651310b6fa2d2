// Package liberty declares the LibertyCell/LibertyPort collaborator from
// spec §6: per-(corner,min/max,rf) capacitance, pulse-clock sense,
// macro clock-tree absorption delay, and the TimingArcSet lookup a timing
// graph edge is built from. Liberty file parsing itself is out of scope
// (spec §1); this package is the interface a front end implements.
package liberty

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
)

// RiseFall is a signal transition direction.
type RiseFall int

const (
	Rise RiseFall = iota
	Fall
)

func (rf RiseFall) String() string {
	if rf == Rise {
		return "rise"
	}
	return "fall"
}

// Opposite returns the other transition.
func (rf RiseFall) Opposite() RiseFall {
	if rf == Rise {
		return Fall
	}
	return Rise
}

// MinMax selects the worst-case analysis side: max for setup, min for hold.
type MinMax int

const (
	Max MinMax = iota
	Min
)

func (mm MinMax) String() string {
	if mm == Max {
		return "max"
	}
	return "min"
}

// Opposite returns the other side.
func (mm MinMax) Opposite() MinMax {
	if mm == Max {
		return Min
	}
	return Max
}

// Better returns whichever of a, b this side prefers: the greater value for
// Max, the lesser for Min. Used throughout search's min/max merge (§4.6
// step 3, §4.7 RequiredCmp).
func (mm MinMax) Better(a, b float64) float64 {
	if mm == Max {
		if a > b {
			return a
		}
		return b
	}
	if a < b {
		return a
	}
	return b
}

// IsBetterOrEqual reports whether candidate is at least as good as
// incumbent on this side (candidate >= incumbent for Max, <= for Min).
func (mm MinMax) IsBetterOrEqual(candidate, incumbent float64) bool {
	if mm == Max {
		return candidate >= incumbent
	}
	return candidate <= incumbent
}

// PulseSense describes a pulse-generating clock's active sense.
type PulseSense int

const (
	PulseSenseNone PulseSense = iota
	PulseSenseRise
	PulseSenseFall
)

// Sense is a timing arc's static sense: does rising/falling input produce a
// rising/falling/either output.
type Sense int

const (
	PositiveUnate Sense = iota
	NegativeUnate
	NonUnate
)

// Corner is one PVT analysis point's identity, used to key per-corner
// values throughout the graph, parasitics and search packages (spec §3
// "Scene").
type Corner struct{ ID string }

// TimingArc is a single (from-rf, to-rf, sense) transition pair inside a
// TimingArcSet, carrying per-corner delay model references (spec §3).
type TimingArc struct {
	FromRF RiseFall
	ToRF   RiseFall
	Sense  Sense
	// DelayModel is an opaque reference DelayCalc understands; the core
	// never interprets it, only threads it through arcDelay calls.
	DelayModel interface{}
}

// TimingArcSet is one or more per-transition TimingArc objects attached to a
// (from-pin-template, to-pin-template) pair on a cell (spec §3).
type TimingArcSet struct {
	From Port
	To   Port
	Role ArcRole
	Arcs []TimingArc
}

// ArcRole names what kind of timing relationship a TimingArcSet describes,
// independent of the TimingRole assigned to a specific graph edge (a graph
// edge's TimingRole is derived from this plus the instance's connectivity).
type ArcRole int

const (
	ArcCombinational ArcRole = iota
	ArcRegClkToQ
	ArcLatchDToQ
	ArcLatchEnToQ
	ArcSetupCheck
	ArcHoldCheck
	ArcTristateEnable
	ArcTristateDisable
	ArcRegSetClr
)

// Port identifies a Liberty port template on a cell.
type Port = network.Port

// Cell identifies a Liberty cell.
type Cell struct{ ID string }

// LibertyPort is the per-port collaborator surface.
type LibertyPort interface {
	// Direction returns the port's signal direction.
	Direction(port Port) network.Direction

	// Capacitance returns the port's pin capacitance for (corner, min/max,
	// rf), used when no parasitic network is available or to fold pin caps
	// into parasitic node grounded capacitance (§4.3, §4.4).
	Capacitance(port Port, corner Corner, mm MinMax, rf RiseFall) float64

	// CapacitanceIsOneValue reports whether rise and fall capacitance are
	// the same single value (used to compute PiReduction.PinCapsOneValue,
	// see SPEC_FULL.md).
	CapacitanceIsOneValue(port Port) bool

	// PulseClkSense returns the active sense of a pulse-generating clock
	// port, or PulseSenseNone if port is not a pulse clock.
	PulseClkSense(port Port) PulseSense

	// ClkTreeDelay returns the macro-internal clock-network absorption
	// delay for a given input slew, transition and side; used when a
	// macro's internal clock tree is modeled as a single absorbed delay
	// rather than expanded into graph edges.
	ClkTreeDelay(port Port, slew float64, rf RiseFall, mm MinMax) float64
}

// LibertyCell is the per-cell collaborator surface.
type LibertyCell interface {
	// TimingArcSets returns every TimingArcSet whose From/To match the
	// given port pair (a pair may have more than one arc set, e.g. a
	// combinational arc plus a disable arc).
	TimingArcSets(from, to Port) []*TimingArcSet

	// Port looks up a named port template by name, returning false if the
	// cell has no such port.
	Port(name string) (Port, bool)
}
