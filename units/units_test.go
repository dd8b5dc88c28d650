package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowRoundTrip(t *testing.T) {
	all := []FlowUnits{CFS, GPM, MGD, IMGD, AFD, LPS, LPM, MLD, CMS, CMH, CMD}
	for _, u := range all {
		original := 12.345
		converted := FromCFS(original, u)
		back := ToCFS(converted, u)
		assert.InDeltaf(t, original, back, 1e-9*original, "round trip for %v", u)
	}
}

func TestPressureRoundTrip(t *testing.T) {
	all := []PressureUnits{Feet, PSI, KPA, Meters, Bar}
	for _, u := range all {
		original := 87.6
		converted := FromFeet(original, u)
		back := ToFeet(converted, u)
		assert.InDeltaf(t, original, back, 1e-9*original, "round trip for %v", u)
	}
}

func TestParseFlowUnitsCaseInsensitive(t *testing.T) {
	u, ok := ParseFlowUnits("lps")
	require.True(t, ok)
	assert.Equal(t, LPS, u)

	_, ok = ParseFlowUnits("bogus")
	assert.False(t, ok)
}

func TestParsePressureUnitsCaseInsensitive(t *testing.T) {
	u, ok := ParsePressureUnits("Meters")
	require.True(t, ok)
	assert.Equal(t, Meters, u)
}

func TestNoUnitIsZero(t *testing.T) {
	// a zero canonical value must convert to zero regardless of unit
	for _, u := range []FlowUnits{GPM, CMH, LPS} {
		assert.True(t, math.Abs(FromCFS(0, u)) < 1e-12)
	}
}
