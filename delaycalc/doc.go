// Package delaycalc is the DelayCalc collaborator boundary (spec §6):
// search calls ArcDelay with an edge, its arc, an analysis point and the
// destination's Loading, and caches the returned delay/slew on the edge.
// LinearDelayCalc is a minimal reference implementation; production
// callers are expected to supply their own Liberty-table-backed
// implementation of the DelayCalc interface.
package delaycalc
