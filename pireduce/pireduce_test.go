package pireduce_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/parasitics"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/pireduce"
)

// buildChain builds drvr -R-> mid -R-> load1, mid -R-> load2 : a driver
// feeding two loads through a shared interconnect segment.
func buildChain(t *testing.T) (*parasitics.Network, parasitics.NodeID, network.ID, network.ID) {
	t.Helper()
	net := network.Net{ID: "n1"}
	pn := parasitics.NewNetwork(net, true)

	drvr := pn.EnsureNodeByPin(network.Pin{ID: "u1/Y"})
	mid := pn.EnsureNodeByID(1)
	load1 := pn.EnsureNodeByPin(network.Pin{ID: "u2/A"})
	load2 := pn.EnsureNodeByPin(network.Pin{ID: "u3/A"})

	pn.MakeResistor(10, drvr, mid)
	pn.MakeResistor(20, mid, load1)
	pn.MakeResistor(30, mid, load2)
	pn.IncrCap(mid, 1e-15)
	pn.IncrCap(load1, 2e-15)
	pn.IncrCap(load2, 3e-15)

	return pn, drvr, network.ID("u2/A"), network.ID("u3/A")
}

func isLoadPin(pin network.Pin) bool {
	return pin.ID == "u2/A" || pin.ID == "u3/A"
}

func TestReduceToPi_ResistiveTree(t *testing.T) {
	pn, drvr, _, _ := buildChain(t)
	result := pireduce.ReduceToPi(pn, drvr, 1.0, nil)

	require.True(t, result.PinCapsOneValue)
	require.InDelta(t, 40, result.MaxResistance, 1e-9)
	require.Empty(t, result.LoopResistors)
	// Capacitive-only edge case must not trigger: there is real resistance.
	require.NotZero(t, result.Model.Rpi)
}

func TestReduceToPi_PureCapacitiveLoad(t *testing.T) {
	net := network.Net{ID: "n2"}
	pn := parasitics.NewNetwork(net, true)
	drvr := pn.EnsureNodeByPin(network.Pin{ID: "u1/Y"})
	pn.IncrCap(drvr, 5e-15)

	result := pireduce.ReduceToPi(pn, drvr, 1.0, nil)
	require.Zero(t, result.Model.Rpi)
	require.Zero(t, result.Model.C2)
	require.InDelta(t, 5e-15, result.Model.C1, 1e-20)
}

func TestReduceToPi_LoopResistorDetected(t *testing.T) {
	net := network.Net{ID: "n3"}
	pn := parasitics.NewNetwork(net, true)
	a := pn.EnsureNodeByID(1)
	b := pn.EnsureNodeByID(2)
	c := pn.EnsureNodeByID(3)
	pn.MakeResistor(1, a, b)
	pn.MakeResistor(1, b, c)
	loopRes := pn.MakeResistor(1, c, a)

	result := pireduce.ReduceToPi(pn, a, 1.0, nil)
	require.True(t, result.LoopResistors[loopRes])
}

func TestReduceToPiElmore_MonotonicWithDistance(t *testing.T) {
	pn, drvr, load1, load2 := buildChain(t)
	pi := pireduce.ReduceToPi(pn, drvr, 1.0, nil)
	elmore := pireduce.ReduceToPiElmore(pn, drvr, pi, isLoadPin)

	require.Contains(t, elmore.Elmore, load1)
	require.Contains(t, elmore.Elmore, load2)
	require.Greater(t, elmore.Elmore[load2], 0.0)
	require.Greater(t, elmore.Elmore[load1], 0.0)
}

func TestReduceToPiPoleResidue_OnePairPerLoad(t *testing.T) {
	pn, drvr, load1, load2 := buildChain(t)
	pi := pireduce.ReduceToPi(pn, drvr, 1.0, nil)
	pr := pireduce.ReduceToPiPoleResidue(pn, drvr, pi, isLoadPin, nil, 1.0)

	require.NotEmpty(t, pr.Poles[load1])
	require.NotEmpty(t, pr.Poles[load2])
	require.Equal(t, len(pr.Poles[load1]), len(pr.Residues[load1]))
}
