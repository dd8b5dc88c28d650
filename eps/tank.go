package eps

import (
	"math"

	"hydrosolve/network"
)

// netTankInflow returns the net volumetric inflow (CFS) into tank n, summing
// flows arriving via LinksTo (flow toward the tank, i.e. EndNode == tank)
// and subtracting flows leaving via LinksFrom (StartNode == tank).
func netTankInflow(n *network.Node, flows []float64) float64 {
	q := 0.0
	for _, li := range n.LinksTo {
		q += flows[li]
	}
	for _, li := range n.LinksFrom {
		q -= flows[li]
	}
	return q
}

// timeToTankLimit returns the number of seconds until tank n's level would
// cross MinLevel or MaxLevel at its current net inflow rate, or
// math.MaxInt32 if it is not moving toward either bound.
func timeToTankLimit(n *network.Node, flows []float64) int {
	q := netTankInflow(n, flows)
	if q == 0 {
		return math.MaxInt32
	}
	area := n.VolumeAtLevel(1.0) // cylindrical: volume per unit level
	if area <= 0 {
		return math.MaxInt32
	}
	rate := q / area // ft/s
	var target float64
	if rate > 0 {
		target = n.MaxLevel
	} else {
		target = n.MinLevel
	}
	dt := (target - n.Level) / rate
	if dt <= 0 {
		return 0
	}
	return int(math.Ceil(dt))
}

// integrateTanks advances every tank's Level by dt seconds at the flows
// computed for the step just solved, clamping the result to
// [MinLevel, MaxLevel] (spec.md §4.4). Volume that would carry a tank past
// either bound is discarded, whether or not Overflow is set; this also
// absorbs the small overshoot of the rounded-up step timeToTankLimit
// returns. It always returns nil.
func integrateTanks(net *network.Network, flows []float64, dt int) error {
	for _, n := range net.Nodes {
		if n.Kind != network.Tank {
			continue
		}
		area := n.VolumeAtLevel(1.0)
		if area <= 0 {
			continue
		}
		q := netTankInflow(n, flows)
		newLevel := n.Level + q/area*float64(dt)

		if newLevel > n.MaxLevel {
			newLevel = n.MaxLevel
		}
		if newLevel < n.MinLevel {
			newLevel = n.MinLevel
		}
		n.Level = newLevel
	}
	return nil
}
