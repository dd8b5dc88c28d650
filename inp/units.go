package inp

import (
	"hydrosolve/linkmodel"
	"hydrosolve/network"
	"hydrosolve/units"
)

// isUSSystem reports whether f is one of EPANET's US-customary flow units
// (CFS/GPM/MGD/IMGD/AFD), as opposed to one of the metric units (the rest).
// Pipe/valve diameters are entered in inches under a US system and
// millimeters under a metric one, per EPANET's own convention — unlike
// every other quantity, diameter does not follow the flow unit's own scale
// factor, so it needs this separate check.
func isUSSystem(f units.FlowUnits) bool {
	switch f {
	case units.CFS, units.GPM, units.MGD, units.IMGD, units.AFD:
		return true
	}
	return false
}

func diameterToFeet(d float64, fu units.FlowUnits) float64 {
	if isUSSystem(fu) {
		return d / 12.0
	}
	return d / 304.8
}

// convertCurves rescales every [CURVES] point's flow (X) and head (Y,
// metric only) column into the canonical basis before resolvePumpCurves
// fits a pump's H0/PumpA/PumpB from them; fitting on raw file units would
// bake the wrong scale into every pump permanently.
func convertCurves(net *network.Network, s *Settings) {
	for _, c := range net.Curves {
		for i := range c.X {
			c.X[i] = units.ToCFS(c.X[i], s.FlowUnits)
		}
		if !isUSSystem(s.FlowUnits) {
			for i := range c.Y {
				c.Y[i] = units.ToFeet(c.Y[i], units.Meters)
			}
		}
	}
}

// applyUnits converts the fields read straight off the page (inches/mm
// diameters, demands in the declared [OPTIONS] flow unit, FCV settings in
// flow units, PRV/PSV settings in pressure units and, under a metric unit
// system, node elevations and reservoir heads, tank levels and diameters,
// level-control targets and pipe lengths) into the canonical CFS+feet
// basis, then (re)computes each pipe's Resistance now that its diameter is
// in feet. Pump-curve points are converted separately by convertCurves;
// pipe roughness values are used as entered. Must run after the whole file has been
// read, since [OPTIONS] may appear after the sections whose values it
// governs.
func applyUnits(net *network.Network, s *Settings) error {
	pressureUnits := units.PSI
	if !isUSSystem(s.FlowUnits) {
		pressureUnits = units.Meters
	}

	for _, n := range net.Nodes {
		if !isUSSystem(s.FlowUnits) {
			n.Elevation = units.ToFeet(n.Elevation, units.Meters)
		}
		switch n.Kind {
		case network.Junction:
			n.BaseDemand = units.ToCFS(n.BaseDemand, s.FlowUnits)
		case network.Tank:
			if !isUSSystem(s.FlowUnits) {
				n.Diameter = units.ToFeet(n.Diameter, units.Meters)
				n.InitialLevel = units.ToFeet(n.InitialLevel, units.Meters)
				n.MinLevel = units.ToFeet(n.MinLevel, units.Meters)
				n.MaxLevel = units.ToFeet(n.MaxLevel, units.Meters)
			}
		}
	}

	// CondHighPressure/CondLowPressure targets are left as entered:
	// network/control.go's IsActive always converts head to psi via its own
	// psiPerFoot constant, so a pressure control's Target is only
	// meaningful in psi regardless of the file's declared unit system —
	// the same US-customary-only simplification spec.md §3 makes for the
	// whole solver core.
	for _, c := range net.Controls {
		if (c.Condition == network.CondHighLevel || c.Condition == network.CondLowLevel) && !isUSSystem(s.FlowUnits) {
			c.Target = units.ToFeet(c.Target, units.Meters)
		}
	}

	for _, l := range net.Links {
		switch l.Kind {
		case network.Pipe:
			// the headloss formula is a single global [OPTIONS] choice, not
			// a per-pipe one; re-apply it here in case [OPTIONS] appeared
			// after [PIPES] in the file, then re-derive Resistance now that
			// Diameter is in feet.
			l.Formula = s.Formula
			l.Diameter = diameterToFeet(l.Diameter, s.FlowUnits)
			if !isUSSystem(s.FlowUnits) {
				l.Length = units.ToFeet(l.Length, units.Meters)
			}
			formulaKey := formulaKeys[l.Formula]
			formula, ok := linkmodel.FormulaByName(formulaKey)
			if ok {
				l.Resistance = formula.Resistance(l.Diameter, l.Length, l.Roughness)
			}
		case network.Valve:
			l.Diameter = diameterToFeet(l.Diameter, s.FlowUnits)
			switch l.ValveType {
			case network.FCV:
				l.Setting = units.ToCFS(l.Setting, s.FlowUnits)
			case network.PRV, network.PSV:
				l.Setting = units.ToFeet(l.Setting, pressureUnits)
			}
		}
	}
	return nil
}
