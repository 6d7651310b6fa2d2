// Package search implements the level-ordered forward (arrivals) and
// backward (requireds) propagations, CRPR, and the endpoint/path-end
// visitor (spec §4.6-§4.8). It is the one package that imports every
// other leaf package — tgraph, intern, liberty, network, levelize,
// sdc, delaycalc, staconfig, report — matching the dependency-order list
// spec §2 lays out ("leaves first"). Parasitics-aware loading is injected
// through LoadingFunc instead: search never imports parasitics/pireduce
// directly, the same boundary delaycalc.DriveModelFunc and
// pireduce.PinCapFunc already use elsewhere in this module.
package search
