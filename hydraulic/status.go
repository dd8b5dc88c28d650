package hydraulic

import "hydrosolve/network"

// resolveStatus returns the status a link should actually use for this
// iteration's coefficient evaluation: InitialStatus adjusted by check-valve
// reverse-flow closing and pressure-regulating-valve active/open/closed
// transitions, per spec.md §4.1's status-management rules. Pure function of
// the current iterate; no link is ever mutated here — updateStatuses below
// decides whether the change is worth another Newton pass.
func resolveStatus(net *network.Network, l *network.Link, heads, flows []float64, q float64) network.Status {
	if l.InitialStatus == network.Closed {
		return network.Closed
	}

	if l.IsCheckValve && q < -checkValveTol {
		return network.Closed
	}

	if l.Kind == network.Pump && q < -checkValveTol {
		return network.Closed
	}

	if l.Kind == network.Valve {
		hStart, hEnd := heads[l.StartNode], heads[l.EndNode]
		switch l.ValveType {
		case network.PRV:
			// Reducing valve: pins downstream head to Setting whenever the
			// unregulated head would reach or exceed it, otherwise acts
			// fully open; closes on sustained reverse flow. The lower bound
			// (Setting-statusTol, not +statusTol) matters once Active: a
			// converged pin leaves hEnd sitting almost exactly at Setting,
			// and a stricter ">Setting+tol" test would flip it back to Open
			// every other pass (it only ever clears a "+tol" bar from
			// further above setting, never from sitting on it).
			if q < -checkValveTol {
				return network.Closed
			}
			if hEnd >= l.Setting-statusTol {
				return network.Active
			}
			return network.Open
		case network.PSV:
			// Sustaining valve: mirrors PRV on the upstream side — Active
			// whenever the unregulated upstream head would reach or fall
			// below Setting, same "don't flip out of a converged pin"
			// reasoning on the boundary.
			if q < -checkValveTol {
				return network.Closed
			}
			if hStart <= l.Setting+statusTol {
				return network.Active
			}
			return network.Open
		case network.FCV:
			// Flow control valve: Active once the unregulated flow would
			// reach or exceed Setting; a converged pin leaves q sitting
			// almost exactly at Setting, same boundary reasoning as PRV.
			if q < -checkValveTol {
				return network.Closed
			}
			if q >= l.Setting-statusTol {
				return network.Active
			}
			return network.Open
		}
	}

	return l.InitialStatus
}

const (
	checkValveTol = 1e-6
	statusTol     = 1e-4
)

// updateStatuses recomputes every link's effective status from the current
// heads/flows and reports whether anything changed — the caller re-runs the
// Newton loop whenever it has, since a status flip changes the system being
// solved (spec.md §4.1, §4.3).
func updateStatuses(net *network.Network, heads, flows []float64, effective []network.Status) bool {
	changed := false
	for i, l := range net.Links {
		s := resolveStatus(net, l, heads, flows, flows[i])
		if s != effective[i] {
			changed = true
		}
		effective[i] = s
	}
	return changed
}
