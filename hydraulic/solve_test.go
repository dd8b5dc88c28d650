package hydraulic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydrosolve/linkmodel"
	"hydrosolve/network"
)

// buildReservoirJunction builds the simplest possible solvable network: a
// fixed-head reservoir feeding a single demanding junction through one
// Hazen-Williams pipe.
func buildReservoirJunction(t *testing.T, demand float64) (*network.Network, *Solver, []float64, []float64) {
	t.Helper()
	net := network.New()
	require.NoError(t, net.AddNode(&network.Node{ID: "R1", Kind: network.Reservoir, Elevation: 500}))
	require.NoError(t, net.AddNode(&network.Node{ID: "J1", Kind: network.Junction, Elevation: 400, BaseDemand: demand}))

	f, _ := linkmodel.FormulaByName("hazen-williams")
	r := f.Resistance(1.0, 1000, 120)
	require.NoError(t, net.AddLink(&network.Link{
		ID: "P1", Kind: network.Pipe, StartNode: 0, EndNode: 1,
		Diameter: 1.0, Length: 1000, Roughness: 120,
		Formula: network.HazenWilliams, Resistance: r, InitialStatus: network.Open,
	}))
	require.NoError(t, net.Finalize())

	s := NewSolver(net)

	heads := make([]float64, len(net.Nodes))
	flows := make([]float64, len(net.Links))
	heads[0] = net.Nodes[0].Head()
	heads[1] = net.Nodes[1].Head()
	flows[0] = demand // reasonable initial guess

	return net, s, heads, flows
}

func baseStatusOf(net *network.Network) []network.Status {
	st := make([]network.Status, len(net.Links))
	for i, l := range net.Links {
		st[i] = l.InitialStatus
	}
	return st
}

func TestSolveReservoirJunctionMassBalance(t *testing.T) {
	demand := 2.0 // cfs
	net, s, heads, flows := buildReservoirJunction(t, demand)

	demands := []float64{0, demand}
	iters, err := Solve(net, s, demands, heads, flows, baseStatusOf(net), DefaultOptions())
	require.NoError(t, err)
	assert.Greater(t, iters, 0)

	// mass balance: the single pipe must carry exactly the junction's demand
	assert.InDelta(t, demand, flows[0], 1e-4)

	// energy consistency: reservoir head minus headloss equals junction head
	f, _ := linkmodel.FormulaByName("hazen-williams")
	r := f.Resistance(1.0, 1000, 120)
	h, _ := f.Headloss(flows[0], r, 1.0, 120)
	assert.InDelta(t, heads[0]-h, heads[1], 1e-3)
	assert.Less(t, heads[1], heads[0])
}

func TestSolveZeroDemandNoFlow(t *testing.T) {
	net, s, heads, flows := buildReservoirJunction(t, 0)
	demands := []float64{0, 0}
	_, err := Solve(net, s, demands, heads, flows, baseStatusOf(net), DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0, flows[0], 1e-6)
	assert.InDelta(t, heads[0], heads[1], 1e-6)
}

// buildReservoirPRVJunction builds a reservoir feeding a demanding junction
// through a pressure reducing valve whose setting sits well below the
// reservoir's head, so the valve is expected to go Active and pin the
// junction's head to that setting.
func buildReservoirPRVJunction(t *testing.T, reservoirHead, setting, demand float64) (*network.Network, *Solver, []float64, []float64) {
	t.Helper()
	net := network.New()
	require.NoError(t, net.AddNode(&network.Node{ID: "R1", Kind: network.Reservoir, Elevation: reservoirHead}))
	require.NoError(t, net.AddNode(&network.Node{ID: "J1", Kind: network.Junction, Elevation: 0, BaseDemand: demand}))

	require.NoError(t, net.AddLink(&network.Link{
		ID: "V1", Kind: network.Valve, ValveType: network.PRV, Setting: setting,
		StartNode: 0, EndNode: 1, InitialStatus: network.Open,
	}))
	require.NoError(t, net.Finalize())

	s := NewSolver(net)

	heads := make([]float64, len(net.Nodes))
	flows := make([]float64, len(net.Links))
	heads[0] = net.Nodes[0].Head()
	heads[1] = net.Nodes[0].Head() // optimistic initial guess, above setting
	flows[0] = demand

	return net, s, heads, flows
}

func TestSolvePRVActivePinsDownstreamHeadToSetting(t *testing.T) {
	demand := 1.2
	net, s, heads, flows := buildReservoirPRVJunction(t, 200, 150, demand)

	demands := []float64{0, demand}
	_, err := Solve(net, s, demands, heads, flows, baseStatusOf(net), DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, 150, heads[1], 1e-2)
	assert.InDelta(t, demand, flows[0], 1e-4)
}

func TestSolvePRVStaysOpenWhenSettingAboveUnregulatedHead(t *testing.T) {
	// setting far above the reservoir head: the valve never needs to
	// throttle, so it should settle Open with near-reservoir downstream head.
	demand := 0.5
	net, s, heads, flows := buildReservoirPRVJunction(t, 100, 500, demand)

	demands := []float64{0, demand}
	_, err := Solve(net, s, demands, heads, flows, baseStatusOf(net), DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, demand, flows[0], 1e-4)
	assert.Less(t, heads[1], heads[0])
	assert.Greater(t, heads[1], 90.0)
}

func TestSolveClosedLinkForcesZeroFlow(t *testing.T) {
	net, s, heads, flows := buildReservoirJunction(t, 1.5)
	net.Links[0].InitialStatus = network.Closed
	demands := []float64{0, 1.5}
	_, err := Solve(net, s, demands, heads, flows, baseStatusOf(net), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, flows[0])
	assert.True(t, math.IsNaN(flows[0]) == false)
}
