// Package levelize turns a tgraph.Graph into a leveled DAG: every vertex
// gets an integer Level such that level(from) < level(to) across every
// edge search will traverse, feedback loops are found and one edge per
// loop is flagged isDisabledLoop to break them, and incremental edits can
// be re-leveled without a full pass (spec §4.2).
//
// A full Levelize call runs in eight steps: clear prior state, find roots,
// find back edges reachable from roots, find back edges in any leftover
// isolated cycle, Kahn-order the now-acyclic pred-filtered graph, assign
// levels in that order, enforce the latch D->Q gap, and finally pin any
// still-unleveled vertex (one outside every root's reach, e.g. a
// fully-disabled island) to level zero.
package levelize
