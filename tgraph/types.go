// Package tgraph implements the timing graph (spec §3, §4.1): a
// per-direction vertex per pin, directed edges carrying timing arcs, and
// per-(corner,rf) annotated slew and arc-delay storage. It follows the
// teacher's core.Graph house style — sentinel errors, separate RWMutex
// locks per concern — generalized from a generic
// ID-keyed multigraph to the pin/arc-typed graph this domain needs, and
// from string-keyed vertices to small-integer arena indices (§9 design
// note: "arena vectors keyed by small integer ids").
//
// Vertex and edge lifetimes are tied to the owning pin/net: a vertex is
// created when its pin appears and destroyed when the pin is removed: see
// Graph.RemoveVertex.
package tgraph

import (
	"errors"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
)

// Sentinel errors, in the teacher's core-package convention.
var (
	ErrVertexNotFound = errors.New("tgraph: vertex not found")
	ErrEdgeNotFound   = errors.New("tgraph: edge not found")
	ErrPinHasVertex   = errors.New("tgraph: pin already has a vertex of that kind")
	ErrBadEndpoints   = errors.New("tgraph: edge endpoints not in this graph")
)

// VertexID is an arena index into Graph.vertices. The zero value is never a
// valid id (arena slot 0 is reserved), so a VertexID zero value doubles as
// "absent".
type VertexID uint32

// EdgeID is an arena index into Graph.edges, same convention as VertexID.
type EdgeID uint32

// Valid reports whether id refers to a real slot.
func (id VertexID) Valid() bool { return id != 0 }

// Valid reports whether id refers to a real slot.
func (id EdgeID) Valid() bool { return id != 0 }

// TimingRole classifies a graph edge (spec §3). Every edge's role is one of
// these values; timing-check edges (setup/hold) are never traversed by
// forward search (§4.6).
type TimingRole int

const (
	RoleWire TimingRole = iota
	RoleCombinational
	RoleRegClkToQ
	RoleLatchDToQ
	RoleLatchEnToQ
	RoleSetupCheck
	RoleHoldCheck
	RoleTristateEnable
	RoleTristateDisable
	RoleRegSetClr
)

// IsCheck reports whether r is a timing-check role (setup or hold): check
// edges are never traversed by forward search (spec §3 invariant, §4.1).
func (r TimingRole) IsCheck() bool {
	return r == RoleSetupCheck || r == RoleHoldCheck
}

// IsRegClkToQ reports whether r is the register clock-to-output role.
func (r TimingRole) IsRegClkToQ() bool { return r == RoleRegClkToQ }

// IsLatchDToQ reports whether r is the latch data-to-output role.
func (r TimingRole) IsLatchDToQ() bool { return r == RoleLatchDToQ }

func (r TimingRole) String() string {
	switch r {
	case RoleWire:
		return "wire"
	case RoleCombinational:
		return "combinational"
	case RoleRegClkToQ:
		return "reg-clk-to-Q"
	case RoleLatchDToQ:
		return "latch-D-to-Q"
	case RoleLatchEnToQ:
		return "latch-en-to-Q"
	case RoleSetupCheck:
		return "setup-check"
	case RoleHoldCheck:
		return "hold-check"
	case RoleTristateEnable:
		return "tristate-enable"
	case RoleTristateDisable:
		return "tristate-disable"
	case RoleRegSetClr:
		return "reg-set-clr"
	default:
		return "unknown"
	}
}

// AnalysisPoint is a (corner, min/max) pair: the "dcalc analysis point" the
// spec's DelayCalc interface is indexed by (§6).
type AnalysisPoint struct {
	Corner liberty.Corner
	MinMax liberty.MinMax
}

// transitionKey indexes per-(analysis point, rf) annotated values.
type transitionKey struct {
	AnalysisPoint
	RF liberty.RiseFall
}

// annotated pairs a value with the "locked against recomputation" flag the
// spec requires for both arc delay and vertex slew (§4.1).
type annotated struct {
	Value      float64
	IsAnnotated bool
}

// VertexFlags holds the boolean/bitset attributes of one Vertex (spec §3).
// BFSInQueue is indexed by search kind (arrival vs required) per spec's
// "bfs-in-queue[K]"; two is enough for this core's two BFS passes.
type VertexFlags struct {
	Visited              bool
	OnPath               bool
	BFSInQueueArrival     bool
	BFSInQueueRequired    bool
	IsBidirectDriver      bool
	IsRegClk              bool
	HasChecks             bool
	HasDownstreamClkPin   bool
}

// Vertex is a per-direction node of the timing graph: one per non-bidirect
// pin, two per bidirect pin (load side, driver side) — see Graph.AddPin.
type Vertex struct {
	id    VertexID
	Pin   network.Pin
	Level int // -1 = unlevelized
	Flags VertexFlags

	slews map[transitionKey]annotated

	in  []EdgeID
	out []EdgeID
}

// ID returns v's arena index.
func (v *Vertex) ID() VertexID { return v.id }

// Slew returns the annotated slew for (ap, rf) and whether it has ever been
// set.
func (v *Vertex) Slew(ap AnalysisPoint, rf liberty.RiseFall) (float64, bool) {
	a, ok := v.slews[transitionKey{ap, rf}]
	return a.Value, ok
}

// SlewIsAnnotated reports whether the slew at (ap, rf) was locked by an
// explicit SetSlew(..., annotated=true) call rather than computed.
func (v *Vertex) SlewIsAnnotated(ap AnalysisPoint, rf liberty.RiseFall) bool {
	return v.slews[transitionKey{ap, rf}].IsAnnotated
}

// SetSlew records the slew at (ap, rf). If lockAnnotated is true the value
// is marked annotated and future non-annotated SetSlew calls are ignored,
// matching the spec's "locked against recomputation" semantics.
func (v *Vertex) SetSlew(ap AnalysisPoint, rf liberty.RiseFall, value float64, lockAnnotated bool) {
	k := transitionKey{ap, rf}
	if v.slews[k].IsAnnotated && !lockAnnotated {
		return
	}
	v.slews[k] = annotated{Value: value, IsAnnotated: v.slews[k].IsAnnotated || lockAnnotated}
}

// InEdges returns the ids of edges directed into v.
func (v *Vertex) InEdges() []EdgeID { return v.in }

// OutEdges returns the ids of edges directed out of v.
func (v *Vertex) OutEdges() []EdgeID { return v.out }

// EdgeFlags holds the boolean attributes of one Edge (spec §3).
type EdgeFlags struct {
	IsDisabledLoop       bool
	IsDisabledConstraint bool
	IsBidirectInstPath   bool
}

// Edge is a directed graph edge between two vertices (spec §3). Its Role is
// fixed at construction; ArcSet carries the TimingArc entries whose
// from-rf/to-rf pairs forward search iterates (§4.6 step 1).
type Edge struct {
	id    EdgeID
	From  VertexID
	To    VertexID
	Role  TimingRole
	Flags EdgeFlags
	ArcSet *liberty.TimingArcSet

	delays map[transitionKey]annotated
}

// ID returns e's arena index.
func (e *Edge) ID() EdgeID { return e.id }

// Delay returns the annotated arc delay for (ap, rf-of-to-transition) and
// whether it has ever been set. rf here is the *to* transition, matching
// DelayCalc's per-(corner,rf) result shape (spec §6).
func (e *Edge) Delay(ap AnalysisPoint, toRF liberty.RiseFall) (float64, bool) {
	a, ok := e.delays[transitionKey{ap, toRF}]
	return a.Value, ok
}

// DelayIsAnnotated reports whether the delay at (ap, toRF) is locked.
func (e *Edge) DelayIsAnnotated(ap AnalysisPoint, toRF liberty.RiseFall) bool {
	return e.delays[transitionKey{ap, toRF}].IsAnnotated
}

// SetDelay records an arc delay, honoring the same annotated-lock semantics
// as Vertex.SetSlew.
func (e *Edge) SetDelay(ap AnalysisPoint, toRF liberty.RiseFall, value float64, lockAnnotated bool) {
	k := transitionKey{ap, toRF}
	if e.delays[k].IsAnnotated && !lockAnnotated {
		return
	}
	e.delays[k] = annotated{Value: value, IsAnnotated: e.delays[k].IsAnnotated || lockAnnotated}
}
