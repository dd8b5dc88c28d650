package eps

import (
	"math"

	"hydrosolve/network"
)

// nextTimeStep picks the largest step (in seconds) that can be taken
// without skipping past: the simulation's end, the nominal hydraulic step,
// the next demand-pattern boundary, the next scheduled Time/ClockTime
// control, or any tank crossing MinLevel/MaxLevel (spec.md §4.4's
// min(t+hydraulic_step, next_pattern_change, next_control_time,
// next_tank_empty_or_full) rule).
func nextTimeStep(net *network.Network, flows []float64, simTime, remaining, patternStep, hydraulicStep int) int {
	dt := remaining

	if hydraulicStep > 0 && hydraulicStep < dt {
		dt = hydraulicStep
	}

	if patternStep > 0 {
		toBoundary := patternStep - (simTime % patternStep)
		if toBoundary < dt {
			dt = toBoundary
		}
	}

	for _, c := range net.Controls {
		if c.Condition != network.CondTime && c.Condition != network.CondClockTime {
			continue
		}
		if c.Seconds > simTime {
			until := c.Seconds - simTime
			if until < dt {
				dt = until
			}
		}
	}

	for _, n := range net.Nodes {
		if n.Kind != network.Tank {
			continue
		}
		if t := timeToTankLimit(n, flows); t < dt {
			dt = t
		}
	}

	if dt < 1 {
		dt = 1
	}
	if dt == math.MaxInt32 {
		dt = remaining
	}
	return dt
}
