package sdc

import "github.com/The-OpenROAD-Project/OpenSTA-sub003/staconfig"

// Variables is the set of global analysis toggles that affect search
// behavior but aren't themselves constraints (clocks, delays, exceptions).
// Grounded directly on original_source/sdc/Variables.cc's field list, which
// the distilled spec.md drops entirely but which the original's search and
// CRPR logic reads constantly (e.g. gated_clk_checks_enabled_ gates
// whether a gated-clock endpoint is even generated — spec §4.8 names the
// endpoint type but not the toggle that can suppress it).
type Variables struct {
	// CrprEnabled turns CRPR (spec §4.7) on; a conservative analysis can
	// disable it to get the (pessimistic) uncorrected margin instead.
	// Consulted directly by search.crprAdjustment.
	CrprEnabled bool
	// CrprMode mirrors staconfig.CRPRMode; kept here too since the original
	// stores it alongside the other SDC-level variables rather than in a
	// separate config object. Consulted by search.crprAdjustment, which
	// reads this field rather than staconfig.Config.CRPRMode so a caller can
	// change it per run without rebuilding cfg.
	CrprMode staconfig.CRPRMode

	// PropagateGatedClockEnable lets a clock-gating integrated cell's clock
	// continue propagating through its output even when the enable isn't
	// provably always-on. This core has no gated-clock-cell collaborator
	// (no Liberty "clock_gating_integrated_cell" modeling, no enable-pin
	// classification), so there is nothing for this toggle to gate; it is
	// carried only so a config loaded from a real SDC dump round-trips.
	PropagateGatedClockEnable bool
	// PresetClrArcsEnabled includes asynchronous set/reset arcs
	// (tgraph.RoleRegSetClr) in the timing graph rather than skipping them;
	// consulted by search.visitArrivals.
	PresetClrArcsEnabled bool
	// CondDefaultArcsEnabled falls back to a cell's default (unconditional)
	// timing arc when no conditional arc's "when" expression is satisfiable
	// from case analysis. liberty.TimingArc has no "when"-expression or
	// conditional-arc-group modeling at all (every arc is unconditional), so
	// there is no fallback decision for this toggle to make; carried for
	// round-trip fidelity only.
	CondDefaultArcsEnabled bool

	// BidirectNetPathsEnabled and BidirectInstPathsEnabled control whether
	// search treats a bidirect pin's implicit load->driver edge (spec §4.1)
	// as a net path, an instance path, or both; consulted by
	// search.visitArrivals against tgraph.Edge.Flags.IsBidirectInstPath and
	// tgraph.Vertex.Flags.IsBidirectDriver.
	BidirectNetPathsEnabled  bool
	BidirectInstPathsEnabled bool

	// RecoveryRemovalChecksEnabled includes asynchronous recovery/removal
	// timing-check edges alongside setup/hold. This core only models
	// tgraph.RoleSetupCheck/RoleHoldCheck (spec §4.7, §4.8 describe setup
	// and hold only); there is no recovery/removal check role to gate, so
	// this toggle has no effect. Carried for round-trip fidelity only.
	RecoveryRemovalChecksEnabled bool
	// GatedClkChecksEnabled enables the spec §4.8 gated-clock-check endpoint
	// type. Like PropagateGatedClockEnable, this core has no gated-clock
	// collaborator to classify against, so search.endpointKind never
	// produces that endpoint kind regardless of this toggle's value — a
	// gated-enable endpoint always reports as EndpointUnconstrained.
	GatedClkChecksEnabled bool
	// ClkThruTristateEnabled lets a clock signal continue propagating as a
	// clock through a tristate enable/disable edge; consulted by
	// search.thruClkInfo against tgraph.RoleTristateEnable/Disable.
	ClkThruTristateEnabled bool

	// DynamicLoopBreaking lets the levelizer's loop-breaking policy (spec
	// §4.2) re-enable a disabled-loop edge when search finds a loop-break
	// exception sensitizing the path through it; consulted by
	// search.visitArrivals/loopBreakSensitized.
	DynamicLoopBreaking bool
	// PropagateAllClks disables the "only clocks that actually reach a
	// register" pruning. This core's seedClkArrivals never prunes by
	// downstream reachability in the first place (tgraph.VertexFlags.
	// HasDownstreamClkPin is declared but no pass computes it) — every
	// declared clock already seeds at every pin it's attached to, which is
	// this toggle's "true" behavior; setting it false has no effect since
	// there is no pruning pass to disable.
	PropagateAllClks bool
	// UseDefaultArrivalClock seeds an unclocked input port with a virtual
	// "default arrival clock" instead of requiring unconstrained_paths;
	// consulted by search.unconstrainedPathsEnabled.
	UseDefaultArrivalClock bool
	// PocvEnabled selects parametric on-chip variation (statistical delay)
	// over the core's default corner-based analysis; out of scope for this
	// core's delay calculation (spec §1 Non-goals). search.FindArrivals
	// reports it through rpt.Warnf once per Searcher so a caller who sets it
	// finds out POCV was requested but isn't implemented, rather than
	// silently getting corner-based numbers instead.
	PocvEnabled bool
}

// DefaultVariables mirrors original_source/sdc/Variables.cc's constructor
// defaults exactly.
func DefaultVariables() Variables {
	return Variables{
		CrprEnabled:                  true,
		CrprMode:                     staconfig.SamePinSameRF,
		PropagateGatedClockEnable:    true,
		PresetClrArcsEnabled:         false,
		CondDefaultArcsEnabled:       true,
		BidirectNetPathsEnabled:      false,
		BidirectInstPathsEnabled:     false,
		RecoveryRemovalChecksEnabled: true,
		GatedClkChecksEnabled:        true,
		ClkThruTristateEnabled:       false,
		DynamicLoopBreaking:          false,
		PropagateAllClks:             false,
		UseDefaultArrivalClock:       false,
		PocvEnabled:                  false,
	}
}
