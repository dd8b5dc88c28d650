package linkmodel

import (
	"math"

	"hydrosolve/hydroerr"
	"hydrosolve/network"
)

// valveCoefficients implements a valve's (gInv, y). A Closed valve, an
// Open or Active PRV/PSV and an Open FCV return y=0: each is modeled as a
// purely linear conductance element (H(q) = q/gInv), so the flow-correction
// term y = q - gInv*H(q) is identically zero and only gInv varies. An
// Active FCV returns (0, Setting), and TCV/GPV return the (gInv, y) of the
// TCVHeadloss minor-loss relation.
//
// (The reference implementation this spec was distilled from returns y=q in
// every branch, a leftover from an incomplete port flagged by its own
// "Get Agadir to run for now" comment. Taken literally, y=q makes a closed
// valve's flow converge toward its previous value instead of zero. hydraulic
// additionally clamps a Closed link's flow to exactly zero after each Newton
// update, which is what actually guarantees spec.md §4.1's stated intent
// ("forces q->0").)
func valveCoefficients(l *network.Link, status network.Status, q float64) (gInv, y float64, err error) {
	if status == network.Closed {
		return 1.0 / BigValue, 0, nil
	}

	switch l.ValveType {
	case network.PRV, network.PSV:
		// Active: the controlled node's head is pinned to l.Setting by
		// hydraulic.newtonLoop's extra ActiveValvePin term on that node's
		// own diagonal, not by this link's (gInv, y) — a headloss relation
		// between its two ends has no way to express "pin one end to an
		// absolute value" on its own. As a conductance element linking its
		// two nodes, an active regulator keeps them almost fully decoupled
		// (tiny gInv, same as Closed): the pin, not this link's own
		// coupling, is what does the regulating.
		if status == network.Active {
			return 1.0 / BigValue, 0, nil
		}
		return 1.0 / SmallValue, 0, nil

	case network.FCV:
		// Active: flow itself is the controlled quantity, q = l.Setting
		// regardless of head difference — gInv=0, y=Setting expresses that
		// directly with no auxiliary term needed.
		if status == network.Active {
			return 0, l.Setting, nil
		}
		return 1.0 / SmallValue, 0, nil

	case network.TCV, network.GPV:
		h, slope := TCVHeadloss(q, l.Diameter, l.Setting)
		if slope < 1/BigValue {
			slope = 1 / BigValue
		}
		gInv = 1.0 / slope
		y = q - gInv*h
		return gInv, y, nil

	case network.PBV, network.PCV:
		// network.Finalize already rejects these at build time; this branch
		// only guards a link constructed without going through Finalize.
		return 0, 0, hydroerr.New(hydroerr.Unsupported, l.ID, "valve type %s is not implemented", l.ValveType)
	}

	return 1.0 / SmallValue, 0, nil
}

// ActiveValvePin reports whether link l, evaluated at status, pins one of
// its endpoints' head to l.Setting: side=0 for StartNode (PSV — pressure
// sustaining pins the upstream side), side=1 for EndNode (PRV — pressure
// reducing pins the downstream side). ok is false for every other
// link/status, including Active FCV, whose flow pin is already carried
// entirely by valveCoefficients' (gInv, y) = (0, Setting).
func ActiveValvePin(l *network.Link, status network.Status) (side int, head float64, ok bool) {
	if l.Kind != network.Valve || status != network.Active {
		return 0, 0, false
	}
	switch l.ValveType {
	case network.PRV:
		return 1, l.Setting, true
	case network.PSV:
		return 0, l.Setting, true
	}
	return 0, 0, false
}

// TCVHeadloss implements the minor-loss form H(q) = k*q*|q| / (2*g*A^2)
// used by TCV (throttle control valve) and GPV (whose curve is not
// evaluated), where k is the valve's Setting (a dimensionless minor-loss coefficient)
// and A is the valve's bore area. Linearized below QLin for the same reason
// as the pipe formulas.
func TCVHeadloss(q, diameter, k float64) (h, slope float64) {
	area := math.Pi * diameter * diameter / 4.0
	denom := 2 * gravity * area * area
	aq := math.Abs(q)
	if aq < QLin {
		slope = 2 * k * QLin / denom
		h = slope * q
		return
	}
	slope = 2 * k * aq / denom
	h = k * q * aq / denom
	return
}
