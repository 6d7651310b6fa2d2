package parasitics

import "github.com/The-OpenROAD-Project/OpenSTA-sub003/network"

// NodeID, ResistorID and CapacitorID are arena indices into a Network's
// internal slices; zero is reserved as the invalid id.
type NodeID uint32
type ResistorID uint32
type CapacitorID uint32

// Valid reports whether id refers to a live slot.
func (id NodeID) Valid() bool { return id != 0 }

// Valid reports whether id refers to a live slot.
func (id ResistorID) Valid() bool { return id != 0 }

// Valid reports whether id refers to a live slot.
func (id CapacitorID) Valid() bool { return id != 0 }

// Node is one extraction node: either an internal node identified only by
// an extractor-assigned integer id, or a node tied to a pin. Its ground
// capacitance accumulates via IncrCap; coupling capacitance lives on
// Capacitor devices instead.
type Node struct {
	id     NodeID
	extID  int // extractor-assigned id, valid when hasPin is false
	pin    network.Pin
	hasPin bool
	gndCap float64
}

// ID returns the node's arena id.
func (n *Node) ID() NodeID { return n.id }

// Pin returns the node's pin and whether it has one (an internal node does
// not).
func (n *Node) Pin() (network.Pin, bool) { return n.pin, n.hasPin }

// GndCap returns the node's accumulated ground capacitance.
func (n *Node) GndCap() float64 { return n.gndCap }

// Resistor connects two nodes of the same Network.
type Resistor struct {
	id         ResistorID
	value      float64
	node1, node2 NodeID
}

// ID returns the resistor's arena id.
func (r *Resistor) ID() ResistorID { return r.id }

// Value returns the resistor's resistance.
func (r *Resistor) Value() float64 { return r.value }

// Nodes returns the resistor's two endpoint nodes.
func (r *Resistor) Nodes() (NodeID, NodeID) { return r.node1, r.node2 }

// OtherNode returns the endpoint of r that is not from.
func (r *Resistor) OtherNode(from NodeID) NodeID {
	if r.node1 == from {
		return r.node2
	}
	return r.node1
}

// Capacitor is a coupling capacitor between two nodes. Ground capacitance
// is tracked per-node (Node.GndCap), matching the original extractor
// format's separation of grounded caps from coupling caps.
type Capacitor struct {
	id         CapacitorID
	value      float64
	node1, node2 NodeID
}

// ID returns the capacitor's arena id.
func (c *Capacitor) ID() CapacitorID { return c.id }

// Value returns the capacitor's capacitance.
func (c *Capacitor) Value() float64 { return c.value }

// Nodes returns the capacitor's two endpoint nodes.
func (c *Capacitor) Nodes() (NodeID, NodeID) { return c.node1, c.node2 }

// OtherNode returns the endpoint of c that is not from.
func (c *Capacitor) OtherNode(from NodeID) NodeID {
	if c.node1 == from {
		return c.node2
	}
	return c.node1
}
