package linkmodel

import (
	"hydrosolve/hydroerr"
	"hydrosolve/network"
)

var formulaNames = map[network.HeadlossFormula]string{
	network.HazenWilliams: "hazen-williams",
	network.DarcyWeisbach: "darcy-weisbach",
	network.ChezyManning:  "chezy-manning",
}

// Coefficients is the single dispatch point spec.md §4.1/§9 describes: given
// a link's current flow, its resolved status and setting, return (gInv, y).
// Dispatch is a switch on network.Link.Kind, mirroring the teacher's
// tagged-sum element style rather than per-variant interface polymorphism —
// this runs once per link per Newton iteration, the hottest loop in the
// solver.
func Coefficients(l *network.Link, status network.Status, q float64) (gInv, y float64, err error) {
	if status == network.Closed && l.Kind != network.Valve {
		return 1.0 / BigValue, 0, nil
	}

	switch l.Kind {
	case network.Pipe:
		name, ok := formulaNames[l.Formula]
		if !ok {
			return 0, 0, hydroerr.New(hydroerr.Unsupported, l.ID, "unknown headloss formula %v", l.Formula)
		}
		f, ok := FormulaByName(name)
		if !ok {
			return 0, 0, hydroerr.New(hydroerr.Unsupported, l.ID, "unregistered headloss formula %q", name)
		}
		h, slope := f.Headloss(q, l.Resistance, l.Diameter, l.Roughness)
		if slope < 1/BigValue {
			slope = 1 / BigValue
		}
		gInv = 1.0 / slope
		y = q - gInv*h
		return gInv, y, nil

	case network.Pump:
		gInv, y = pumpCoefficients(l.ShutoffHead, l.PumpA, l.PumpB, l.Speed, q)
		return gInv, y, nil

	case network.Valve:
		return valveCoefficients(l, status, q)
	}

	return 0, 0, hydroerr.New(hydroerr.Unsupported, l.ID, "unknown link kind %v", l.Kind)
}
