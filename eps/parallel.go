package eps

import (
	"sync"

	"hydrosolve/hydraulic"
	"hydrosolve/hydroerr"
	"hydrosolve/network"
	"hydrosolve/result"
)

// runParallel solves every reported time-step concurrently: since the
// network has no tanks (guaranteed by CanParallelize), each step's demands
// depend only on its own simulation time, not on any prior step's solved
// state, so steps can run as independent goroutines writing disjoint slots
// of a pre-sized SolverResult (spec.md §4.5's "each worker owns a private
// SolverState... written per-step to a pre-sized buffer slot — no locks
// needed"). Status-changing controls are evaluated per step against that
// step's own freshly-initialized heads and the network's initial link
// statuses, not against a running state: a Time/ClockTime control changes
// its link only in the step whose time it names, whereas runSerial keeps
// the change for every later step, and a pressure or level control sees
// initialized heads rather than a previous step's solution. With controls
// present the results can therefore differ from runSerial's; without
// controls each step is solved exactly as runSerial would solve it.
func runParallel(net *network.Network, solver *hydraulic.Solver, opts Options) (*result.SolverResult, error) {
	step := opts.ReportStep
	if step <= 0 {
		step = opts.PatternStep
	}
	if step <= 0 {
		step = opts.Duration
	}
	if step <= 0 {
		step = 1
	}

	var times []int
	for t := 0; t <= opts.Duration; t += step {
		times = append(times, t)
	}
	if times[len(times)-1] != opts.Duration {
		times = append(times, opts.Duration)
	}

	res := result.NewSolverResult(nodeIDs(net), linkIDs(net), len(times))
	elevations := elevationsOf(net)

	var wg sync.WaitGroup
	errs := make([]error, len(times))
	for i, simTime := range times {
		wg.Add(1)
		go func(i, simTime int) {
			defer wg.Done()

			heads, flows := initialState(net, simTime, opts.PatternStep)
			clockTime := (opts.StartClock + simTime) % 86400
			baseStatus := controlStatusOverrides(net, heads, elevations, simTime, clockTime)
			for _, n := range net.Nodes {
				if n.Kind == network.Reservoir {
					heads[n.Index] = reservoirHead(net, n, simTime, opts.PatternStep)
				}
			}
			demands := computeDemands(net, simTime, opts.PatternStep)

			_, err := hydraulic.Solve(net, solver, demands, heads, flows, baseStatus, opts.HydraulicOpts)
			warning := false
			if err != nil {
				if hydroerr.Is(err, hydroerr.NonConvergence) {
					warning = true
				} else {
					errs[i] = err
					return
				}
			}

			res.Steps[i] = result.Step{Time: simTime, Heads: heads, Flows: flows, Demands: demands, Warning: warning}
		}(i, simTime)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return res, err
		}
	}
	return res, nil
}
