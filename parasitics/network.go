package parasitics

import (
	"sync"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
)

// Network is the extracted RC network for one net at one corner (spec
// §4.3). It owns every Node, Resistor and Capacitor it has ever created;
// deleting a Network (Store.Delete) drops all of them together.
type Network struct {
	mu sync.RWMutex

	net             network.Net
	includesPinCaps bool

	nodes      []*Node      // slot 0 unused
	resistors  []*Resistor  // slot 0 unused
	capacitors []*Capacitor // slot 0 unused

	nodeByExtID map[int]NodeID
	nodeByPin   map[network.ID]NodeID

	resistorMap  map[NodeID][]ResistorID
	capacitorMap map[NodeID][]CapacitorID
	mapsDirty    bool
}

// NewNetwork constructs an empty parasitic network for net. includesPinCaps
// records whether the extraction data already folds load-pin capacitance
// into node ground caps (spec §4.3's pinCapacitance pass consults this).
func NewNetwork(net network.Net, includesPinCaps bool) *Network {
	return &Network{
		net:             net,
		includesPinCaps: includesPinCaps,
		nodes:           make([]*Node, 1, 64),
		resistors:       make([]*Resistor, 1, 64),
		capacitors:      make([]*Capacitor, 1, 64),
		nodeByExtID:     make(map[int]NodeID),
		nodeByPin:       make(map[network.ID]NodeID),
	}
}

// Net returns the net this parasitic network belongs to.
func (pn *Network) Net() network.Net { return pn.net }

// IncludesPinCaps reports whether extraction already folds pin caps into
// node ground caps.
func (pn *Network) IncludesPinCaps() bool { return pn.includesPinCaps }

// EnsureNodeByID returns the node for extractor id extID, creating it if
// this is the first reference.
func (pn *Network) EnsureNodeByID(extID int) NodeID {
	pn.mu.Lock()
	defer pn.mu.Unlock()
	if id, ok := pn.nodeByExtID[extID]; ok {
		return id
	}
	n := &Node{id: NodeID(len(pn.nodes)), extID: extID}
	pn.nodes = append(pn.nodes, n)
	pn.nodeByExtID[extID] = n.id
	pn.mapsDirty = true
	return n.id
}

// EnsureNodeByPin returns the node tied to pin, creating it if this is the
// first reference.
func (pn *Network) EnsureNodeByPin(pin network.Pin) NodeID {
	pn.mu.Lock()
	defer pn.mu.Unlock()
	if id, ok := pn.nodeByPin[pin.ID]; ok {
		return id
	}
	n := &Node{id: NodeID(len(pn.nodes)), pin: pin, hasPin: true}
	pn.nodes = append(pn.nodes, n)
	pn.nodeByPin[pin.ID] = n.id
	pn.mapsDirty = true
	return n.id
}

// FindNodeByPin returns the node tied to pin, if one has been created.
func (pn *Network) FindNodeByPin(pin network.Pin) (NodeID, bool) {
	pn.mu.RLock()
	defer pn.mu.RUnlock()
	id, ok := pn.nodeByPin[pin.ID]
	return id, ok
}

// Node returns the node at id, or nil if out of range or removed.
func (pn *Network) Node(id NodeID) *Node {
	pn.mu.RLock()
	defer pn.mu.RUnlock()
	if int(id) <= 0 || int(id) >= len(pn.nodes) {
		return nil
	}
	return pn.nodes[id]
}

// IncrCap accumulates cap into node id's ground capacitance.
func (pn *Network) IncrCap(id NodeID, cap float64) {
	pn.mu.Lock()
	defer pn.mu.Unlock()
	if n := pn.nodeAt(id); n != nil {
		n.gndCap += cap
	}
}

func (pn *Network) nodeAt(id NodeID) *Node {
	if int(id) <= 0 || int(id) >= len(pn.nodes) {
		return nil
	}
	return pn.nodes[id]
}

// MakeResistor adds a resistor of the given value between n1 and n2.
func (pn *Network) MakeResistor(value float64, n1, n2 NodeID) ResistorID {
	pn.mu.Lock()
	defer pn.mu.Unlock()
	r := &Resistor{id: ResistorID(len(pn.resistors)), value: value, node1: n1, node2: n2}
	pn.resistors = append(pn.resistors, r)
	pn.mapsDirty = true
	return r.id
}

// MakeCapacitor adds a coupling capacitor of the given value between n1 and
// n2.
func (pn *Network) MakeCapacitor(value float64, n1, n2 NodeID) CapacitorID {
	pn.mu.Lock()
	defer pn.mu.Unlock()
	c := &Capacitor{id: CapacitorID(len(pn.capacitors)), value: value, node1: n1, node2: n2}
	pn.capacitors = append(pn.capacitors, c)
	pn.mapsDirty = true
	return c.id
}

// NodeWalk calls fn for every live node in arena order.
func (pn *Network) NodeWalk(fn func(*Node)) {
	pn.mu.RLock()
	defer pn.mu.RUnlock()
	for _, n := range pn.nodes[1:] {
		if n != nil {
			fn(n)
		}
	}
}

// Resistor returns the resistor at id, or nil.
func (pn *Network) Resistor(id ResistorID) *Resistor {
	pn.mu.RLock()
	defer pn.mu.RUnlock()
	if int(id) <= 0 || int(id) >= len(pn.resistors) {
		return nil
	}
	return pn.resistors[id]
}

// Capacitor returns the capacitor at id, or nil.
func (pn *Network) Capacitor(id CapacitorID) *Capacitor {
	pn.mu.RLock()
	defer pn.mu.RUnlock()
	if int(id) <= 0 || int(id) >= len(pn.capacitors) {
		return nil
	}
	return pn.capacitors[id]
}

// ensureMapsLocked rebuilds resistorMap/capacitorMap on demand when the
// network has been edited since the last build (spec §4.3: "lookup indices
// are built on demand").
func (pn *Network) ensureMapsLocked() {
	if !pn.mapsDirty && pn.resistorMap != nil {
		return
	}
	pn.resistorMap = make(map[NodeID][]ResistorID, len(pn.nodes))
	pn.capacitorMap = make(map[NodeID][]CapacitorID, len(pn.nodes))
	for _, r := range pn.resistors {
		if r == nil {
			continue
		}
		pn.resistorMap[r.node1] = append(pn.resistorMap[r.node1], r.id)
		pn.resistorMap[r.node2] = append(pn.resistorMap[r.node2], r.id)
	}
	for _, c := range pn.capacitors {
		if c == nil {
			continue
		}
		pn.capacitorMap[c.node1] = append(pn.capacitorMap[c.node1], c.id)
		pn.capacitorMap[c.node2] = append(pn.capacitorMap[c.node2], c.id)
	}
	pn.mapsDirty = false
}

// NodeResistors returns every resistor incident on id, building the lookup
// index on first use after an edit.
func (pn *Network) NodeResistors(id NodeID) []ResistorID {
	pn.mu.Lock()
	defer pn.mu.Unlock()
	pn.ensureMapsLocked()
	return append([]ResistorID(nil), pn.resistorMap[id]...)
}

// NodeCapacitors returns every coupling capacitor incident on id, building
// the lookup index on first use after an edit.
func (pn *Network) NodeCapacitors(id NodeID) []CapacitorID {
	pn.mu.Lock()
	defer pn.mu.Unlock()
	pn.ensureMapsLocked()
	return append([]CapacitorID(nil), pn.capacitorMap[id]...)
}

// DisconnectPinBefore replaces pin's node with a freshly allocated internal
// sub-node of the same net and rewires every resistor/capacitor that
// referenced it, preserving topology during netlist surgery (spec §4.3).
func (pn *Network) DisconnectPinBefore(pin network.Pin) {
	pn.mu.Lock()
	defer pn.mu.Unlock()
	old, ok := pn.nodeByPin[pin.ID]
	if !ok {
		return
	}
	sub := &Node{id: NodeID(len(pn.nodes)), extID: -int(old), gndCap: pn.nodes[old].gndCap}
	pn.nodes = append(pn.nodes, sub)
	pn.nodeByExtID[sub.extID] = sub.id

	for _, r := range pn.resistors {
		if r == nil {
			continue
		}
		if r.node1 == old {
			r.node1 = sub.id
		}
		if r.node2 == old {
			r.node2 = sub.id
		}
	}
	for _, c := range pn.capacitors {
		if c == nil {
			continue
		}
		if c.node1 == old {
			c.node1 = sub.id
		}
		if c.node2 == old {
			c.node2 = sub.id
		}
	}
	delete(pn.nodeByPin, pin.ID)
	pn.nodes[old].hasPin = false
	pn.mapsDirty = true
}

// LoadPinCapacitanceChangedFunc is called by LoadPinCapacitanceChanged for
// every reduced model that depends on pin and must be invalidated.
type LoadPinCapacitanceChangedFunc func(pin network.Pin)

// LoadPinCapacitanceChanged is the build-side half of the "load pin
// capacitance changed" edit (spec §4.3): the extraction network itself
// does not store pin capacitance (pireduce reads it live from liberty/sdc
// at reduction time), so this only notifies invalidate of pin so it can
// drop cached reduced models whose topology depends on pin caps.
func (pn *Network) LoadPinCapacitanceChanged(pin network.Pin, invalidate LoadPinCapacitanceChangedFunc) {
	if invalidate != nil {
		invalidate(pin)
	}
}
