// Package tgraph — see types.go and graph.go for the full API.
//
// Bidirect pins materialize two vertices, a load vertex and a driver
// vertex (AddPin), joined by an explicit zero-delay RoleWire edge created
// by AddBidirectInstEdge. This makes "the driver vertex behaves as a
// fan-out of the load vertex" (spec §4.1) a consequence of ordinary edge
// traversal rather than a special case the levelizer and search must
// recognize — the edge is enabled/disabled and leveled exactly like any
// other wire edge.
package tgraph
