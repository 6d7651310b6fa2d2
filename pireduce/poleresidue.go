package pireduce

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/parasitics"
)

// PoleResidueModel is a pi-pole-residue reduction: the pi model plus one
// or two (pole, residue) pairs per load pin, from RICE moment matching
// (spec §4.4 Pass 2b).
type PoleResidueModel struct {
	Pi       PiModel
	Poles    map[network.ID][]complex128
	Residues map[network.ID][]complex128
}

const momentCount = 4 // moments 1..3 are used; index 0 is the constant 1.0

type momentSweep struct {
	pn             *parasitics.Network
	couplingFactor float64
	pinCap         PinCapFunc
	loopResistors  map[parasitics.ResistorID]bool

	moments  [momentCount]map[parasitics.NodeID]float64
	currents map[parasitics.ResistorID]float64
}

func (s *momentSweep) nodeCap(node *parasitics.Node) float64 {
	cap := localNodeCap(s.pn, node, s.couplingFactor)
	if pin, hasPin := node.Pin(); hasPin && s.pinCap != nil {
		v, _ := s.pinCap(pin)
		cap += v
	}
	return cap
}

func (s *momentSweep) moment(node parasitics.NodeID, idx int) float64 {
	if idx == 0 {
		return 1.0
	}
	return s.moments[idx][node]
}

func (s *momentSweep) setMoment(node parasitics.NodeID, idx int, v float64) {
	if idx > 0 {
		s.moments[idx][node] = v
	}
}

// findBranchCurrents sweeps the resistor currents needed to evaluate
// moment momentIdx, a post-order DFS summing each subtree's device
// currents (spec §4.4 Pass 2b step 1).
func (s *momentSweep) findBranchCurrents(node parasitics.NodeID, fromRes parasitics.ResistorID, momentIdx int, visited map[parasitics.NodeID]bool) float64 {
	visited[node] = true
	defer delete(visited, node)

	branchI := 0.0
	for _, rid := range s.pn.NodeResistors(node) {
		if s.loopResistors[rid] || rid == fromRes {
			continue
		}
		res := s.pn.Resistor(rid)
		onode := res.OtherNode(node)
		if onode == node || visited[onode] {
			continue
		}
		branchI += s.findBranchCurrents(onode, rid, momentIdx, visited)
	}

	n := s.pn.Node(node)
	cap := s.nodeCap(n)
	branchI += cap * s.moment(node, momentIdx-1)
	if fromRes != 0 {
		s.currents[fromRes] = branchI
	}
	return branchI
}

// findMoments sweeps node voltages at momentIdx from fromVolt, a pre-order
// DFS (spec §4.4 Pass 2b step 2).
func (s *momentSweep) findMoments(node parasitics.NodeID, fromVolt float64, fromRes parasitics.ResistorID, momentIdx int, visited map[parasitics.NodeID]bool) {
	visited[node] = true
	defer delete(visited, node)

	for _, rid := range s.pn.NodeResistors(node) {
		if s.loopResistors[rid] || rid == fromRes {
			continue
		}
		res := s.pn.Resistor(rid)
		onode := res.OtherNode(node)
		if onode == node || visited[onode] {
			continue
		}
		rVolt := res.Value() * s.currents[rid]
		onodeVolt := fromVolt - rVolt
		s.setMoment(onode, momentIdx, onodeVolt)
		s.findMoments(onode, onodeVolt, rid, momentIdx, visited)
	}
}

// ReduceToPiPoleResidue runs Pass 2b (spec §4.4): find the first three
// voltage moments at every load node via RICE moment matching, then solve
// the two-pole/two-residue (or degenerate single-pole) response at each
// load pin from those moments.
func ReduceToPiPoleResidue(pn *parasitics.Network, drvr parasitics.NodeID, pi PiResult, isLoad LoadPredicate, pinCap PinCapFunc, couplingFactor float64) PoleResidueModel {
	s := &momentSweep{
		pn:             pn,
		couplingFactor: couplingFactor,
		pinCap:         pinCap,
		loopResistors:  pi.LoopResistors,
		currents:       make(map[parasitics.ResistorID]float64),
	}
	for i := range s.moments {
		s.moments[i] = make(map[parasitics.NodeID]float64)
	}

	// Driver model Thevenin resistance is taken as zero: the reduced pi
	// model's rpi already represents the interconnect's own resistance, and
	// delay calc folds in driver resistance separately.
	const rd = 0.0
	for idx := 1; idx < momentCount; idx++ {
		visited := make(map[parasitics.NodeID]bool)
		rdI := s.findBranchCurrents(drvr, 0, idx, visited)
		rdVolt := rdI * rd
		s.setMoment(drvr, idx, 0.0)
		visited2 := make(map[parasitics.NodeID]bool)
		s.findMoments(drvr, -rdVolt, 0, idx, visited2)
	}

	m := PoleResidueModel{Pi: pi.Model, Poles: make(map[network.ID][]complex128), Residues: make(map[network.ID][]complex128)}
	pn.NodeWalk(func(n *parasitics.Node) {
		pin, hasPin := n.Pin()
		if !hasPin || isLoad == nil || !isLoad(pin) {
			return
		}
		poles, residues := polesResiduesForLoad(s, n.ID())
		m.Poles[pin.ID] = poles
		m.Residues[pin.ID] = residues
	})
	return m
}

// polesResiduesForLoad solves the pole/residue pair (or degenerate single
// pole) at one load node from its first three voltage moments (spec §4.4
// Pass 2b, second half).
func polesResiduesForLoad(s *momentSweep, node parasitics.NodeID) ([]complex128, []complex128) {
	m1 := s.moment(node, 1)
	m2 := s.moment(node, 2)
	m3 := s.moment(node, 3)
	p1 := -m2 / m3
	p2 := p1 * (1.0/m1 - m1/m2) / (m1/m2 - m2/m3)

	if p1 <= 0 || p2 <= 0 || p1 == p2 || m1/m2 == m2/m3 {
		p1 = -1.0 / m1
		k1 := 1.0
		return []complex128{complex(p1, 0)}, []complex128{complex(k1, 0)}
	}

	k1 := p1 * p1 * (1.0 + m1*p2) / (p1 - p2)
	k2 := -p2 * p2 * (1.0 + m1*p1) / (p1 - p2)
	if k1 < 0 && k2 > 0 {
		p1, p2 = p2, p1
		k1, k2 = k2, k1
	}
	return []complex128{complex(p1, 0), complex(p2, 0)}, []complex128{complex(k1, 0), complex(k2, 0)}
}
