package eps

import (
	"hydrosolve/hydraulic"
	"hydrosolve/hydroerr"
	"hydrosolve/network"
	"hydrosolve/result"
)

// Options configures an extended-period simulation run.
type Options struct {
	Duration      int // total simulated seconds
	ReportStep    int // seconds between recorded steps (0 = every hydraulic step)
	PatternStep   int // seconds per pattern interval
	HydraulicStep int // nominal time-step; shortened by pattern/control/tank events (spec.md §4.4 step 5)
	StartClock    int // clock-time-of-day in seconds at simulation start, for CondClockTime
	Parallel      bool
	HydraulicOpts hydraulic.Options
}

// DefaultOptions mirrors EPANET2's typical 1-hour pattern/report/hydraulic step.
func DefaultOptions() Options {
	return Options{ReportStep: 3600, PatternStep: 3600, HydraulicStep: 3600, HydraulicOpts: hydraulic.DefaultOptions()}
}

// CanParallelize reports whether net is eligible for the parallel EPS mode:
// every time-step must be independent, which holds only when the network
// has no tanks (spec.md §4.5 — "When all tanks have an imposed level
// trajectory (or the network is tank-free) each time-step is independent").
// A tank's level is ordinary state carried step-to-step, so its presence
// rules out the parallel path entirely in this implementation (no imposed-
// trajectory tank mode is modeled — see SPEC_FULL.md §14).
func CanParallelize(net *network.Network) bool {
	for _, n := range net.Nodes {
		if n.Kind == network.Tank {
			return false
		}
	}
	return !hasSettingControls(net)
}

// Run executes a full extended-period simulation and returns the recorded
// result buffer. Dispatches to the serial or parallel loop depending on
// opts.Parallel and CanParallelize; a parallel request against a
// tank-bearing network silently falls back to serial (spec.md §4.5's
// cumulative-state caveat — see SPEC_FULL.md §14).
func Run(net *network.Network, solver *hydraulic.Solver, opts Options) (*result.SolverResult, error) {
	if opts.Parallel && CanParallelize(net) {
		return runParallel(net, solver, opts)
	}
	return runSerial(net, solver, opts)
}

func nodeIDs(net *network.Network) []string {
	ids := make([]string, len(net.Nodes))
	for i, n := range net.Nodes {
		ids[i] = n.ID
	}
	return ids
}

func linkIDs(net *network.Network) []string {
	ids := make([]string, len(net.Links))
	for i, l := range net.Links {
		ids[i] = l.ID
	}
	return ids
}

func initialState(net *network.Network, simTime, patternStep int) ([]float64, []float64) {
	heads := make([]float64, len(net.Nodes))
	flows := make([]float64, len(net.Links))
	for _, n := range net.Nodes {
		switch n.Kind {
		case network.Reservoir:
			heads[n.Index] = reservoirHead(net, n, simTime, patternStep)
		case network.Tank:
			heads[n.Index] = n.Head()
		default:
			heads[n.Index] = n.Elevation
		}
	}
	return heads, flows
}

// runSerial steps the simulation forward one hydraulic solve at a time,
// integrating tanks and applying controls between steps — the only
// strategy that can support tank state and cumulative controls correctly.
func runSerial(net *network.Network, solver *hydraulic.Solver, opts Options) (*result.SolverResult, error) {
	res := result.NewSolverResult(nodeIDs(net), linkIDs(net), 0)

	heads, flows := initialState(net, 0, opts.PatternStep)
	elevations := elevationsOf(net)

	simTime := 0
	nextReport := 0
	for simTime <= opts.Duration {
		clockTime := (opts.StartClock + simTime) % 86400
		applyControlsSerial(net, heads, elevations, simTime, clockTime)

		for _, n := range net.Nodes {
			if n.Kind == network.Reservoir {
				heads[n.Index] = reservoirHead(net, n, simTime, opts.PatternStep)
			}
		}

		demands := computeDemands(net, simTime, opts.PatternStep)
		baseStatus := make([]network.Status, len(net.Links))
		for i, l := range net.Links {
			baseStatus[i] = l.InitialStatus
		}
		_, err := hydraulic.Solve(net, solver, demands, heads, flows, baseStatus, opts.HydraulicOpts)
		warning := false
		if err != nil {
			if hydroerr.Is(err, hydroerr.NonConvergence) {
				warning = true
			} else {
				return res, err
			}
		}

		if simTime >= nextReport {
			step := result.Step{Time: simTime, Warning: warning}
			step.Heads = append([]float64(nil), heads...)
			step.Flows = append([]float64(nil), flows...)
			step.Demands = append([]float64(nil), demands...)
			res.Steps = append(res.Steps, step)
			nextReport += max(opts.ReportStep, 1)
		}

		if simTime == opts.Duration {
			break
		}
		dt := nextTimeStep(net, flows, simTime, opts.Duration-simTime, opts.PatternStep, opts.HydraulicStep)
		if err := integrateTanks(net, flows, dt); err != nil {
			return res, err
		}
		simTime += dt
	}

	return res, nil
}
