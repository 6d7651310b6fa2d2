// Package delaycalc declares the DelayCalc collaborator (spec §6): given an
// edge and its two endpoint vertices' loading, return arc delay and output
// slew for each (corner, rf). Liberty delay-table interpolation itself is
// explicitly out of scope (spec §1 Non-goals: "the core calls a DelayCalc
// collaborator") — this package is the interface surface plus a minimal
// reference implementation for tests, not a calibrated delay model.
package delaycalc

import (
	"context"
	"errors"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// ErrNoArcDelay is returned when a DelayCalc implementation has no model to
// compute a delay for the requested arc (e.g. a degenerate sense).
var ErrNoArcDelay = errors.New("delaycalc: no delay model for arc")

// Result is one (delay, slew) pair for a single (corner, rf) computation.
type Result struct {
	Delay float64
	Slew  float64
}

// DelayCalc computes arc delay and output slew given an edge's driving-point
// loading. The core calls it through ArcDelay and caches the result on the
// edge via tgraph.Edge.SetDelay (spec §6: "results cached on the edge").
type DelayCalc interface {
	// ArcDelay returns the delay and output slew edge's arc produces at ap,
	// given inSlew (the input transition's slew) and load (the driving-point
	// model seen at the edge's to-vertex).
	ArcDelay(ctx context.Context, edge *tgraph.Edge, arc liberty.TimingArc, ap tgraph.AnalysisPoint, inSlew float64, load Loading) (Result, error)
}

// Annotate calls calc.ArcDelay and, on success, records the delay onto edge
// via SetDelay and the output slew onto toVertex via SetSlew (whenever
// toVertex is non-nil, zero slews included) — the thin "call DelayCalc, cache on the edge" wiring spec §6
// describes, factored out so search doesn't repeat it per call site.
func Annotate(ctx context.Context, calc DelayCalc, edge *tgraph.Edge, toVertex *tgraph.Vertex, arc liberty.TimingArc, ap tgraph.AnalysisPoint, inSlew float64, load Loading) (Result, error) {
	res, err := calc.ArcDelay(ctx, edge, arc, ap, inSlew, load)
	if err != nil {
		return Result{}, err
	}
	edge.SetDelay(ap, arc.ToRF, res.Delay, false)
	if toVertex != nil {
		toVertex.SetSlew(ap, arc.ToRF, res.Slew, false)
	}
	return res, nil
}
