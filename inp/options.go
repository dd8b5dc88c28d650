package inp

import (
	"strings"

	"hydrosolve/network"
	"hydrosolve/units"
)

// readOption recognizes the two [OPTIONS] keywords the solver itself cares
// about (Units, Headloss); every other EPANET option (Viscosity, Specific
// Gravity, Trials, Accuracy, Unbalanced, Pattern, Demand Multiplier,
// Emitter Exponent, Quality, Diffusivity, Tolerance) is parsed-and-ignored:
// they either govern EPANET subsystems hydrosolve doesn't implement (water
// quality) or duplicate a value this solver already takes from its own
// hydraulic.Options/eps.Options (Trials/Accuracy -> Options.MaxIter/HeadTol).
func readOption(s *Settings, f []string) error {
	if len(f) < 2 {
		return nil
	}
	switch strings.ToUpper(f[0]) {
	case "UNITS":
		if fu, ok := units.ParseFlowUnits(f[1]); ok {
			s.FlowUnits = fu
			if fu == units.CFS || fu == units.GPM || fu == units.MGD || fu == units.IMGD || fu == units.AFD {
				s.PressureUnits = units.PSI
			} else {
				s.PressureUnits = units.Meters
			}
		}
	case "HEADLOSS":
		switch strings.ToUpper(f[1]) {
		case "H-W":
			s.Formula = network.HazenWilliams
		case "D-W":
			s.Formula = network.DarcyWeisbach
		case "C-M":
			s.Formula = network.ChezyManning
		}
	}
	return nil
}
