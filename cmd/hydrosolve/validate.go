package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"hydrosolve/eps"
	"hydrosolve/hydraulic"
	"hydrosolve/inp"
	"hydrosolve/internal/trace"
)

// validateCmd solves net fresh and compares every reported step's heads
// and flows against a reference EPANET .out binary file, within
// |a-b| <= atol + rtol*|b| (spec.md §6's validate tolerance rule). Every
// disagreeing step/node or step/link value is reported with a warning, and
// once all steps are compared a non-nil error (nonzero exit) is returned if
// any disagreed; a period-count mismatch is also an error.
func validateCmd(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	inPath := fs.String("inp", "", "input .inp network file (required)")
	refPath := fs.String("ref", "", "reference EPANET .out binary file (required)")
	rtol := fs.Float64("rtol", 1e-3, "relative tolerance")
	atol := fs.Float64("atol", 1e-2, "absolute tolerance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errRequiredFlag("-inp")
	}
	if *refPath == "" {
		return errRequiredFlag("-ref")
	}

	inFile, err := os.Open(*inPath)
	if err != nil {
		return err
	}
	defer inFile.Close()
	net, settings, err := inp.ReadINP(inFile)
	if err != nil {
		return err
	}
	if err := net.Finalize(); err != nil {
		return err
	}

	refFile, err := os.Open(*refPath)
	if err != nil {
		return err
	}
	defer refFile.Close()
	ref, err := inp.ReadOut(refFile)
	if err != nil {
		return err
	}
	if ref.NNodes != len(net.Nodes) || ref.NLinks != len(net.Links) {
		return fmt.Errorf("reference .out has %d nodes/%d links, network has %d/%d", ref.NNodes, ref.NLinks, len(net.Nodes), len(net.Links))
	}

	solver := hydraulic.NewSolver(net)
	opts := eps.DefaultOptions()
	opts.Duration = settings.Duration
	opts.PatternStep = settings.PatternStep
	opts.ReportStep = settings.ReportStep
	opts.HydraulicStep = settings.HydraulicStep
	opts.StartClock = settings.StartClock

	res, err := eps.Run(net, solver, opts)
	if err != nil {
		return err
	}
	if len(res.Steps) != len(ref.Periods) {
		return fmt.Errorf("solved %d reported steps, reference has %d periods", len(res.Steps), len(ref.Periods))
	}

	mismatches := 0
	for t, step := range res.Steps {
		period := ref.Periods[t]
		for i, id := range res.NodeIDs {
			if !closeEnough(step.Heads[i], period.Heads[i], *rtol, *atol) {
				trace.Warn("step %d node %s: got head %.4f, reference %.4f", t, id, step.Heads[i], period.Heads[i])
				mismatches++
			}
		}
		for i, id := range res.LinkIDs {
			if !closeEnough(step.Flows[i], period.Flows[i], *rtol, *atol) {
				trace.Warn("step %d link %s: got flow %.4f, reference %.4f", t, id, step.Flows[i], period.Flows[i])
				mismatches++
			}
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%d values exceeded tolerance (rtol=%g atol=%g)", mismatches, *rtol, *atol)
	}
	trace.Info("validate OK: %d steps matched within tolerance", len(res.Steps))
	return nil
}

func closeEnough(a, b, rtol, atol float64) bool {
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}
