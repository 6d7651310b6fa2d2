package pireduce

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/parasitics"
)

// PinCapFunc supplies a node's extra pin capacitance when the owning
// Network was not already built with includesPinCaps (spec §4.4's
// "pin_cap_if_not_already_included"). isOneValue reports whether the
// liberty port backing pin has a single (non-rise/fall-split)
// capacitance value; the reduction accumulates the AND of every visited
// pin's answer into PiResult.PinCapsOneValue.
type PinCapFunc func(pin network.Pin) (cap float64, isOneValue bool)

// PiModel is the three-element driving-point model (spec §4.4): a near
// capacitor c2, a resistor rpi, and a far capacitor c1.
type PiModel struct {
	C2, Rpi, C1 float64
}

// PiResult is everything Pass 1 produces: the pi model itself, plus the
// bookkeeping Pass 2a/2b and callers reuse without re-walking the network
// (spec's supplemented pinCapsOneValue/maxResistance tracking, and the
// cached per-node downstream capacitance spec §4.4 calls out as reused by
// Pass 2a).
type PiResult struct {
	Model           PiModel
	PinCapsOneValue bool
	MaxResistance   float64
	LoopResistors   map[parasitics.ResistorID]bool
	DownstreamCap   map[parasitics.NodeID]float64
}

type piReducer struct {
	pn             *parasitics.Network
	couplingFactor float64
	pinCap         PinCapFunc

	onPath          map[parasitics.NodeID]bool
	loopResistors   map[parasitics.ResistorID]bool
	downstreamCap   map[parasitics.NodeID]float64
	pinCapsOneValue bool
}

// ReduceToPi runs Pass 1 (spec §4.4) from drvr outward, returning the pi
// model and the bookkeeping later passes need. couplingFactor scales
// coupling capacitance into each node's effective ground cap; pinCap
// supplies load-pin capacitance when the Network does not already include
// it (pass nil if it does).
func ReduceToPi(pn *parasitics.Network, drvr parasitics.NodeID, couplingFactor float64, pinCap PinCapFunc) PiResult {
	r := &piReducer{
		pn:              pn,
		couplingFactor:  couplingFactor,
		pinCap:          pinCap,
		onPath:          make(map[parasitics.NodeID]bool),
		loopResistors:   make(map[parasitics.ResistorID]bool),
		downstreamCap:   make(map[parasitics.NodeID]float64),
		pinCapsOneValue: true,
	}
	y1, y2, y3, _, maxR := r.dfs(drvr, 0, 0.0)
	return PiResult{
		Model:           computePi(y1, y2, y3),
		PinCapsOneValue: r.pinCapsOneValue,
		MaxResistance:   maxR,
		LoopResistors:   r.loopResistors,
		DownstreamCap:   r.downstreamCap,
	}
}

// computePi turns the Pass 1 admittance moments into (c2, rpi, c1). The
// formula is preserved exactly as the original reduction computes it:
// delay-calculation consumers are calibrated against this precise
// expression, not an algebraically equivalent rearrangement.
func computePi(y1, y2, y3 float64) PiModel {
	if y2 == 0 && y3 == 0 {
		return PiModel{C1: y1, C2: 0, Rpi: 0}
	}
	return PiModel{
		C1:  y2 * y2 / y3,
		C2:  y1 - y2*y2/y3,
		Rpi: -(y3 * y3) / (y2 * y2 * y2),
	}
}

func (r *piReducer) nodeGndCap(node *parasitics.Node) float64 {
	cap := localNodeCap(r.pn, node, r.couplingFactor)
	if pin, hasPin := node.Pin(); hasPin && r.pinCap != nil {
		v, oneValue := r.pinCap(pin)
		cap += v
		r.pinCapsOneValue = r.pinCapsOneValue && oneValue
	}
	return cap
}

// localNodeCap returns node's own ground capacitance plus its incident
// coupling capacitance folded by couplingFactor, excluding any pin
// capacitance (callers that care about pin caps add those separately,
// since only Pass 1 tracks the PinCapsOneValue bookkeeping).
func localNodeCap(pn *parasitics.Network, node *parasitics.Node, couplingFactor float64) float64 {
	cap := node.GndCap()
	for _, cid := range pn.NodeCapacitors(node.ID()) {
		if c := pn.Capacitor(cid); c != nil {
			cap += c.Value() * couplingFactor
		}
	}
	return cap
}

// dfs computes the admittance moments for the subtree rooted at node, as
// seen looking upstream from fromRes at src_resistance ohms from the
// driver (spec §4.4 Pass 1). fromRes is zero (invalid) only at the root
// call.
func (r *piReducer) dfs(node parasitics.NodeID, fromRes parasitics.ResistorID, srcResistance float64) (y1, y2, y3, dwnCap, maxResistance float64) {
	n := r.pn.Node(node)
	dwnCap = r.nodeGndCap(n)
	y1 = dwnCap
	maxResistance = srcResistance

	r.onPath[node] = true
	defer delete(r.onPath, node)

	for _, rid := range r.pn.NodeResistors(node) {
		if r.loopResistors[rid] {
			continue
		}
		res := r.pn.Resistor(rid)
		onode := res.OtherNode(node)
		// One commercial extractor creates resistors with identical
		// from/to nodes.
		if onode == node || rid == fromRes {
			continue
		}
		if r.onPath[onode] {
			r.loopResistors[rid] = true
			continue
		}
		rv := res.Value()
		yd1, yd2, yd3, dcap, subMax := r.dfs(onode, rid, srcResistance+rv)
		y1 += yd1
		y2 += yd2 - rv*yd1*yd1
		y3 += yd3 - 2*rv*yd1*yd2 + rv*rv*yd1*yd1*yd1
		dwnCap += dcap
		if subMax > maxResistance {
			maxResistance = subMax
		}
	}

	r.downstreamCap[node] = dwnCap
	return y1, y2, y3, dwnCap, maxResistance
}
