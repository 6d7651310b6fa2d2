package delaycalc

import "github.com/The-OpenROAD-Project/OpenSTA-sub003/pireduce"

// Loading is the driving-point model DelayCalc sees at an edge's
// destination: either a reduced parasitic (π, optionally with Elmore or
// pole/residue detail for the specific load pin) or, absent parasitics, a
// flat pin-capacitance sum (spec §6: "driving-point π from a reduced
// parasitic, or a pin-cap sum").
type Loading struct {
	HasPi bool
	Pi    pireduce.PiModel

	HasElmore bool
	Elmore    float64

	HasPoleResidue bool
	Poles          []complex128
	Residues       []complex128

	// LumpedCap is the flat pin-capacitance sum used when HasPi is false
	// (no parasitics extracted for this net yet).
	LumpedCap float64
}

// TotalCap returns the capacitance DelayCalc should treat as "what the
// driver sees": the π model's total (c1+c2) when parasitics are present,
// else the flat lumped sum.
func (l Loading) TotalCap() float64 {
	if l.HasPi {
		return l.Pi.C1 + l.Pi.C2
	}
	return l.LumpedCap
}
