package eps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydrosolve/hydraulic"
	"hydrosolve/linkmodel"
	"hydrosolve/network"
)

func buildTankDrainNetwork(t *testing.T) *network.Network {
	t.Helper()
	net := network.New()
	require.NoError(t, net.AddNode(&network.Node{ID: "T1", Kind: network.Tank, Elevation: 100, InitialLevel: 10, MinLevel: 0, MaxLevel: 20, Diameter: 10}))
	require.NoError(t, net.AddNode(&network.Node{ID: "J1", Kind: network.Junction, Elevation: 80, BaseDemand: 1.0}))
	net.Nodes[0].Level = net.Nodes[0].InitialLevel

	f, _ := linkmodel.FormulaByName("hazen-williams")
	r := f.Resistance(1.0, 500, 120)
	require.NoError(t, net.AddLink(&network.Link{
		ID: "P1", Kind: network.Pipe, StartNode: 0, EndNode: 1,
		Diameter: 1.0, Length: 500, Roughness: 120,
		Formula: network.HazenWilliams, Resistance: r, InitialStatus: network.Open,
	}))
	require.NoError(t, net.Finalize())
	return net
}

func TestRunSerialTankDrains(t *testing.T) {
	net := buildTankDrainNetwork(t)
	solver := hydraulic.NewSolver(net)
	opts := DefaultOptions()
	opts.Duration = 3600
	opts.PatternStep = 3600

	res, err := Run(net, solver, opts)
	require.NoError(t, err)
	require.NotEmpty(t, res.Steps)

	first := res.Steps[0].Heads[0]
	last := res.Steps[len(res.Steps)-1].Heads[0]
	assert.Less(t, last, first, "tank head should drop as it drains to meet junction demand")
}

func TestCanParallelizeRejectsTanks(t *testing.T) {
	net := buildTankDrainNetwork(t)
	assert.False(t, CanParallelize(net))
}

func TestCanParallelizeAcceptsTankFreeNetwork(t *testing.T) {
	net := network.New()
	require.NoError(t, net.AddNode(&network.Node{ID: "R1", Kind: network.Reservoir, Elevation: 500}))
	require.NoError(t, net.AddNode(&network.Node{ID: "J1", Kind: network.Junction, Elevation: 400, BaseDemand: 1.0}))
	f, _ := linkmodel.FormulaByName("hazen-williams")
	r := f.Resistance(1.0, 1000, 120)
	require.NoError(t, net.AddLink(&network.Link{
		ID: "P1", Kind: network.Pipe, StartNode: 0, EndNode: 1,
		Diameter: 1.0, Length: 1000, Roughness: 120,
		Formula: network.HazenWilliams, Resistance: r, InitialStatus: network.Open,
	}))
	require.NoError(t, net.Finalize())
	assert.True(t, CanParallelize(net))
}

func TestSerialAndParallelAgreeWhenTankFree(t *testing.T) {
	net := network.New()
	require.NoError(t, net.AddNode(&network.Node{ID: "R1", Kind: network.Reservoir, Elevation: 500}))
	require.NoError(t, net.AddNode(&network.Node{ID: "J1", Kind: network.Junction, Elevation: 400, BaseDemand: 2.0}))
	f, _ := linkmodel.FormulaByName("hazen-williams")
	r := f.Resistance(1.0, 1000, 120)
	require.NoError(t, net.AddLink(&network.Link{
		ID: "P1", Kind: network.Pipe, StartNode: 0, EndNode: 1,
		Diameter: 1.0, Length: 1000, Roughness: 120,
		Formula: network.HazenWilliams, Resistance: r, InitialStatus: network.Open,
	}))
	require.NoError(t, net.Finalize())

	solver := hydraulic.NewSolver(net)
	opts := DefaultOptions()
	opts.Duration = 7200
	opts.ReportStep = 3600
	opts.PatternStep = 3600

	serial, err := Run(net, solver, opts)
	require.NoError(t, err)

	opts.Parallel = true
	parallel, err := Run(net, solver, opts)
	require.NoError(t, err)

	require.Equal(t, len(serial.Steps), len(parallel.Steps))
	for i := range serial.Steps {
		assert.InDelta(t, serial.Steps[i].Flows[0], parallel.Steps[i].Flows[0], 1e-6)
	}
}
