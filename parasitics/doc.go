// Package parasitics holds the extracted RC network for a net: nodes,
// ground-to-node capacitors (folded directly onto the node), resistors, and
// coupling capacitors between two nodes (spec §4.3). A Network is built
// once per (net, corner) by a reader of extraction data (e.g. SPEF), then
// consumed by pireduce to produce a reduced driving-point model.
//
// Nodes, resistors and capacitors are stored in arena-indexed slices the
// same way tgraph stores vertices and edges: an id is a slot index into
// the owning Network, slot zero is reserved invalid, and deleting the
// Network drops every device and node it owns (spec §4.3's "deleting a
// parasitic network transitively deletes its devices and nodes").
package parasitics
