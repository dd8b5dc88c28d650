package main

import (
	"flag"
	"os"

	"hydrosolve/eps"
	"hydrosolve/hydraulic"
	"hydrosolve/inp"
	"hydrosolve/internal/trace"
)

// runCmd solves a network end-to-end: read .inp, build the solver layout,
// run an (optionally parallel) extended-period simulation, write a .rpt.
func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	inPath := fs.String("inp", "", "input .inp network file (required)")
	outPath := fs.String("report", "", "output .rpt file (default: stdout)")
	parallel := fs.Bool("parallel", false, "solve each reported time-step concurrently when the network allows it")
	verbose := fs.Bool("verbose", false, "print per-iteration Newton diagnostics")
	quiet := fs.Bool("quiet", false, "suppress progress messages (the startup banner is still printed)")
	duration := fs.Int("duration", -1, "override [TIMES] Duration, in seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errRequiredFlag("-inp")
	}
	trace.Verbose = *verbose && !*quiet

	f, err := os.Open(*inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	net, settings, err := inp.ReadINP(f)
	if err != nil {
		return err
	}
	if err := net.Finalize(); err != nil {
		return err
	}

	solver := hydraulic.NewSolver(net)
	opts := eps.DefaultOptions()
	opts.Duration = settings.Duration
	if *duration >= 0 {
		opts.Duration = *duration
	}
	opts.PatternStep = settings.PatternStep
	opts.ReportStep = settings.ReportStep
	opts.HydraulicStep = settings.HydraulicStep
	opts.StartClock = settings.StartClock
	opts.Parallel = *parallel

	if !*quiet {
		trace.Info("solving %d nodes, %d links over %d s (parallel=%v)", len(net.Nodes), len(net.Links), opts.Duration, opts.Parallel && eps.CanParallelize(net))
	}

	res, err := eps.Run(net, solver, opts)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *outPath != "" {
		out, err = os.Create(*outPath)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return inp.WriteReport(out, net, res, settings.FlowUnits, settings.PressureUnits)
}

func errRequiredFlag(name string) error {
	return flagError{name}
}

type flagError struct{ name string }

func (e flagError) Error() string { return "missing required flag " + e.name }
