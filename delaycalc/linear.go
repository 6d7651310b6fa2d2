package delaycalc

import (
	"context"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// DriveModelFunc returns the driver-side parameters a LinearDelayCalc
// combines with the destination Loading: an intrinsic (load-independent)
// delay/slew pair and an output drive resistance. arc.DelayModel is the
// opaque per-arc reference a real Liberty-table delay calculator would
// interpolate against; this func is the injection point a caller supplies
// instead (the same PinCapFunc-style boundary pireduce.ReduceToPi uses to
// stay independent of the package that actually owns the lookup data).
type DriveModelFunc func(arc liberty.TimingArc, ap tgraph.AnalysisPoint) (intrinsicDelay, intrinsicSlew, driveResistance float64)

// LinearDelayCalc is a first-order RC delay calculator: delay and slew are
// an intrinsic term plus drive-resistance times load capacitance. When
// pireduce has supplied an Elmore delay, the delay is the intrinsic term
// plus that Elmore value instead; the slew is unchanged by it, and pole/
// residue data on the Loading is not used. It is
// a deliberately simple reference DelayCalc for tests and standalone demos
// — calibrated Liberty delay-table interpolation is out of this core's
// scope (spec §1).
type LinearDelayCalc struct {
	Drive DriveModelFunc
}

// NewLinearDelayCalc constructs a LinearDelayCalc using drive as its
// per-arc intrinsic/resistance lookup.
func NewLinearDelayCalc(drive DriveModelFunc) *LinearDelayCalc {
	return &LinearDelayCalc{Drive: drive}
}

// ArcDelay implements DelayCalc.
func (c *LinearDelayCalc) ArcDelay(_ context.Context, _ *tgraph.Edge, arc liberty.TimingArc, ap tgraph.AnalysisPoint, inSlew float64, load Loading) (Result, error) {
	if c.Drive == nil {
		return Result{}, ErrNoArcDelay
	}
	intrinsicDelay, intrinsicSlew, rdrive := c.Drive(arc, ap)

	cap := load.TotalCap()
	delay := intrinsicDelay + rdrive*cap
	// Output slew degrades with both the load (rdrive*cap, same as delay)
	// and the input transition's own slew, a crude input-slew-derating
	// stand-in for real Liberty slew-degradation tables.
	slew := intrinsicSlew + rdrive*cap + 0.5*inSlew

	// When the reducer has supplied an Elmore delay to this specific load
	// pin, it already accounts for the distributed wire RC the lumped
	// rdrive*cap term only approximates; prefer it for the delay (not the
	// slew, which Elmore alone doesn't model).
	if load.HasElmore {
		delay = intrinsicDelay + load.Elmore
	}

	return Result{Delay: delay, Slew: slew}, nil
}

var _ DelayCalc = (*LinearDelayCalc)(nil)
