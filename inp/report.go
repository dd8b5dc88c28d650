package inp

import (
	"fmt"
	"io"
	"math"

	"hydrosolve/network"
	"hydrosolve/result"
	"hydrosolve/units"
)

// WriteReport writes a plain-text summary of a SolverResult in EPANET's own
// .rpt spirit: a node table (id, head, pressure) then a link table (id,
// flow, |velocity| in ft/s — velocity is derived from flow/area here since
// the solver itself never tracks it, and is 0 for pumps and valves) per
// reported time-step.
func WriteReport(w io.Writer, net *network.Network, r *result.SolverResult, flowUnits units.FlowUnits, pressureUnits units.PressureUnits) error {
	elevations := make([]float64, len(net.Nodes))
	for _, n := range net.Nodes {
		elevations[n.Index] = n.Elevation
	}
	areas := make([]float64, len(net.Links))
	for _, l := range net.Links {
		if l.Kind == network.Pipe {
			r := l.Diameter / 2.0
			areas[l.Index] = 3.14159265358979323846 * r * r
		}
	}

	for _, step := range r.Steps {
		fmt.Fprintf(w, "Time: %d s\n", step.Time)
		if step.Warning {
			fmt.Fprintln(w, "  WARNING: hydraulics did not fully converge this step")
		}
		fmt.Fprintln(w, "  Node Results:")
		fmt.Fprintf(w, "  %-16s %12s %12s\n", "ID", "Head", "Pressure")
		for i, id := range r.NodeIDs {
			// Head is reported in the canonical feet basis (EPANET itself
			// reports head in the run's length unit, feet or meters; this
			// solver only carries a pressure-unit conversion, so head stays
			// in feet here rather than picking an unrequested length unit).
			head := step.Heads[i]
			pressure := units.FromFeet(step.Heads[i]-elevations[i], pressureUnits)
			fmt.Fprintf(w, "  %-16s %12.4f %12.4f\n", id, head, pressure)
		}
		fmt.Fprintln(w, "  Link Results:")
		fmt.Fprintf(w, "  %-16s %12s %12s\n", "ID", "Flow", "Velocity")
		for i, id := range r.LinkIDs {
			flow := units.FromCFS(step.Flows[i], flowUnits)
			velocity := 0.0
			if areas[i] > 0 {
				velocity = math.Abs(step.Flows[i]) / areas[i]
			}
			fmt.Fprintf(w, "  %-16s %12.4f %12.4f\n", id, flow, velocity)
		}
		fmt.Fprintln(w)
	}
	return nil
}
