package inp

import (
	"hydrosolve/hydroerr"
	"hydrosolve/linkmodel"
	"hydrosolve/network"
)

// resolvePumpCurves fits each pump's H0/PumpA/PumpB from its referenced
// curve's points, via linkmodel.FitCurve — the single-point case degenerates
// internally to FitSinglePoint (spec.md §4.1).
func resolvePumpCurves(net *network.Network) error {
	for _, l := range net.Links {
		if l.Kind != network.Pump {
			continue
		}
		c, ok := net.Curves[l.CurveID]
		if !ok {
			return hydroerr.New(hydroerr.Input, l.ID, "pump references unknown curve %q", l.CurveID)
		}
		h0, a, b, err := linkmodel.FitCurve(c.X, c.Y)
		if err != nil {
			return hydroerr.New(hydroerr.Input, l.ID, "fitting pump curve %q: %v", l.CurveID, err)
		}
		l.ShutoffHead, l.PumpA, l.PumpB = h0, a, b
		if len(c.X) > 0 {
			l.DesignFlow = c.X[len(c.X)/2]
			l.DesignHead = c.Y[len(c.Y)/2]
		}
	}
	return nil
}
