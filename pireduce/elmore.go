package pireduce

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/parasitics"
)

// ElmoreModel is a pi-Elmore reduction: the pi model plus one Elmore delay
// per load pin (spec §4.4 Pass 2a).
type ElmoreModel struct {
	Pi     PiModel
	Elmore map[network.ID]float64
}

// LoadPredicate reports whether pin is a load pin (as opposed to the
// driver or an internal node with no pin at all).
type LoadPredicate func(pin network.Pin) bool

// ReduceToPiElmore runs Pass 2a (spec §4.4): a second DFS from drvr that
// accumulates elmore += r * downstreamCap(to) across each traversed
// resistor, recording the result at every load pin. It reuses pi's cached
// downstream capacitances and loop-resistor set from Pass 1 rather than
// recomputing them.
func ReduceToPiElmore(pn *parasitics.Network, drvr parasitics.NodeID, pi PiResult, isLoad LoadPredicate) ElmoreModel {
	m := ElmoreModel{Pi: pi.Model, Elmore: make(map[network.ID]float64)}
	visited := make(map[parasitics.NodeID]bool)
	var dfs func(node parasitics.NodeID, fromRes parasitics.ResistorID, elmore float64)
	dfs = func(node parasitics.NodeID, fromRes parasitics.ResistorID, elmore float64) {
		n := pn.Node(node)
		if fromRes != 0 {
			if pin, hasPin := n.Pin(); hasPin && isLoad != nil && isLoad(pin) {
				m.Elmore[pin.ID] = elmore
			}
		}
		visited[node] = true
		defer delete(visited, node)

		for _, rid := range pn.NodeResistors(node) {
			if pi.LoopResistors[rid] || rid == fromRes {
				continue
			}
			res := pn.Resistor(rid)
			onode := res.OtherNode(node)
			if visited[onode] {
				continue
			}
			dfs(onode, rid, elmore+res.Value()*pi.DownstreamCap[onode])
		}
	}
	dfs(drvr, 0, 0.0)
	return m
}
