package eps

import "hydrosolve/network"

// applyControlsSerial evaluates every simple control against the current
// solved heads and simulation clock, mutating network.Link.InitialStatus/
// Setting in place. Safe only when nothing else touches net concurrently
// (runSerial's single goroutine) — the next hydraulic.Solve call reads the
// mutated InitialStatus as that link's baseline for its own PRV/PSV/FCV/
// check-valve status management (spec.md §4.3 step 6). Returns whether
// anything changed.
func applyControlsSerial(net *network.Network, heads, elevations []float64, simTime, clockTime int) bool {
	statuses := make([]network.Status, len(net.Links))
	settings := make([]float64, len(net.Links))
	for i, l := range net.Links {
		statuses[i] = l.InitialStatus
		settings[i] = l.Setting
	}

	changed := false
	for _, c := range net.Controls {
		if c.IsActive(heads, elevations, simTime, clockTime) {
			if c.Activate(statuses, settings) {
				changed = true
			}
		}
	}

	for i, l := range net.Links {
		l.InitialStatus = statuses[i]
		l.Setting = settings[i]
	}
	return changed
}

// controlStatusOverrides evaluates only the status-changing controls active
// at (simTime, clockTime) and returns each link's resulting status, without
// mutating net — safe to call concurrently from multiple goroutines over a
// shared, read-only Network. Setting-changing controls are not applied here:
// parallel EPS only supports status-changing controls (spec.md §4.5's
// cumulative-state caveat, see SPEC_FULL.md §14); a network whose controls
// change a Setting should run serially.
func controlStatusOverrides(net *network.Network, heads, elevations []float64, simTime, clockTime int) []network.Status {
	statuses := make([]network.Status, len(net.Links))
	settings := make([]float64, len(net.Links))
	for i, l := range net.Links {
		statuses[i] = l.InitialStatus
		settings[i] = l.Setting
	}
	for _, c := range net.Controls {
		if c.Setting != nil {
			continue
		}
		if c.IsActive(heads, elevations, simTime, clockTime) {
			c.Activate(statuses, settings)
		}
	}
	return statuses
}

// hasSettingControls reports whether any control in net changes a Setting
// rather than only a Status — such a network cannot run the parallel EPS
// path without risking a data race on network.Link.Setting.
func hasSettingControls(net *network.Network) bool {
	for _, c := range net.Controls {
		if c.Setting != nil {
			return true
		}
	}
	return false
}

// elevationsOf returns every node's elevation, indexed by node index — the
// fixed reference Control.IsActive needs to turn a solved head into a
// pressure.
func elevationsOf(net *network.Network) []float64 {
	e := make([]float64, len(net.Nodes))
	for i, n := range net.Nodes {
		e[i] = n.Elevation
	}
	return e
}
