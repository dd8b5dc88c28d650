package linkmodel

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/utl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydrosolve/network"
)

func TestHazenWilliamsHeadlossSignSymmetric(t *testing.T) {
	f, ok := FormulaByName("hazen-williams")
	require.True(t, ok)
	r := f.Resistance(1.0, 1000, 120)
	hPos, _ := f.Headloss(5, r, 1.0, 120)
	hNeg, _ := f.Headloss(-5, r, 1.0, 120)
	assert.InDelta(t, hPos, -hNeg, 1e-9)
}

func TestHazenWilliamsAnalyticVsNumericSlope(t *testing.T) {
	f, ok := FormulaByName("hazen-williams")
	require.True(t, ok)
	r := f.Resistance(1.0, 500, 100)
	q := 3.2
	_, slope := f.Headloss(q, r, 1.0, 100)
	numSlope := calcNumericSlope(func(x float64) float64 {
		h, _ := f.Headloss(x, r, 1.0, 100)
		return h
	}, q)
	utl.CheckAnaNum(t, "dH/dQ", 1e-6, slope, numSlope, false)
}

func TestChezyManningLinearizedNearZero(t *testing.T) {
	f, _ := FormulaByName("chezy-manning")
	r := f.Resistance(1.0, 100, 0.012)
	h, slope := f.Headloss(1e-8, r, 1.0, 0.012)
	assert.Greater(t, slope, 0.0)
	assert.InDelta(t, 0, h, 1e-6)
}

func TestFitSinglePointMatchesShutoffAtZeroFlow(t *testing.T) {
	a, b := FitSinglePoint(100, 80, 10)
	assert.Equal(t, 2.0, b)
	h := 100 - a*math.Pow(0, b)
	assert.InDelta(t, 100, h, 1e-9)
	h = 100 - a*math.Pow(10, b)
	assert.InDelta(t, 80, h, 1e-9)
}

func TestFitCurveThreePoint(t *testing.T) {
	h0, a, b, err := FitCurve([]float64{0, 5, 10}, []float64{120, 100, 60})
	require.NoError(t, err)
	assert.InDelta(t, 120, h0, 1e-9)
	hAt5 := h0 - a*math.Pow(5, b)
	assert.InDelta(t, 100, hAt5, 1e-6)
}

func TestPumpCoefficientsClampsNearZeroFlow(t *testing.T) {
	h0, a, b := 150.0, 1.5, 2.0
	l := &network.Link{Kind: network.Pump, ShutoffHead: h0, PumpA: a, PumpB: b, Speed: 1.0}
	gInvLo, yLo, err := Coefficients(l, network.Open, 0)
	require.NoError(t, err)
	gInvHi, yHi, err := Coefficients(l, network.Open, 5)
	require.NoError(t, err)
	assert.Greater(t, gInvLo, 0.0)
	assert.Greater(t, gInvHi, 0.0)
	assert.NotEqual(t, yLo, yHi)
}

func TestValveClosedForcesLargeResistance(t *testing.T) {
	l := &network.Link{Kind: network.Valve, ValveType: network.PRV}
	gInv, y, err := Coefficients(l, network.Closed, 3.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, y)
	assert.InDelta(t, 1.0/BigValue, gInv, 1e-15)
}

func TestValveOpenHasSmallResistance(t *testing.T) {
	l := &network.Link{Kind: network.Valve, ValveType: network.PRV}
	gInv, _, err := Coefficients(l, network.Open, 3.0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/SmallValue, gInv, 1e-9)
}

func TestValvePBVUnsupported(t *testing.T) {
	l := &network.Link{Kind: network.Valve, ValveType: network.PBV}
	_, _, err := Coefficients(l, network.Active, 1.0)
	require.Error(t, err)
}

func TestValveActivePRVPSVDecoupledFromHeadloss(t *testing.T) {
	for _, vt := range []network.ValveKind{network.PRV, network.PSV} {
		l := &network.Link{Kind: network.Valve, ValveType: vt, Setting: 120}
		gInv, y, err := Coefficients(l, network.Active, 2.5)
		require.NoError(t, err)
		assert.Equal(t, 0.0, y)
		assert.InDelta(t, 1.0/BigValue, gInv, 1e-15)
	}
}

func TestValveActiveFCVPinsFlowToSetting(t *testing.T) {
	l := &network.Link{Kind: network.Valve, ValveType: network.FCV, Setting: 4.5}
	gInv, y, err := Coefficients(l, network.Active, 10.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, gInv)
	assert.Equal(t, 4.5, y)
}

func TestActiveValvePinPRVPinsDownstream(t *testing.T) {
	l := &network.Link{Kind: network.Valve, ValveType: network.PRV, Setting: 100}
	side, head, ok := ActiveValvePin(l, network.Active)
	require.True(t, ok)
	assert.Equal(t, 1, side)
	assert.Equal(t, 100.0, head)

	_, _, ok = ActiveValvePin(l, network.Open)
	assert.False(t, ok)
}

func TestActiveValvePinPSVPinsUpstream(t *testing.T) {
	l := &network.Link{Kind: network.Valve, ValveType: network.PSV, Setting: 50}
	side, head, ok := ActiveValvePin(l, network.Active)
	require.True(t, ok)
	assert.Equal(t, 0, side)
	assert.Equal(t, 50.0, head)
}

func TestActiveValvePinFCVHasNoHeadPin(t *testing.T) {
	l := &network.Link{Kind: network.Valve, ValveType: network.FCV, Setting: 5}
	_, _, ok := ActiveValvePin(l, network.Active)
	assert.False(t, ok)
}

func calcNumericSlope(h func(float64) float64, q float64) float64 {
	eps := 1e-4
	return (h(q+eps) - h(q-eps)) / (2 * eps)
}
