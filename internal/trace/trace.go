// Package trace is hydrosolve's entire "logging" layer: a thin wrapper
// around gosl/io's colorized Printf-family helpers, matching the teacher
// codebase's io.Pf/io.PfRed/io.PfYel texture rather than a structured
// logger. hydraulic's Newton loop logs per-iteration diagnostics through
// here, gated by Verbose, and the CLI prints its banner, progress and
// warnings; eps, units, network, linkmodel and sparse never print.
package trace

import "github.com/cpmech/gosl/io"

// Verbose gates Info/Debug output; Error/Warn always print.
var Verbose = false

// Banner prints a block of lines unconditionally (e.g. the CLI startup banner).
func Banner(lines ...string) {
	for _, l := range lines {
		io.PfWhite("%s\n", l)
	}
}

// Info prints a progress message when Verbose is set.
func Info(format string, args ...interface{}) {
	if Verbose {
		io.Pf(format+"\n", args...)
	}
}

// Debug prints a dim progress message when Verbose is set.
func Debug(format string, args ...interface{}) {
	if Verbose {
		io.Pfcyan(">> "+format+"\n", args...)
	}
}

// Warn always prints, in yellow.
func Warn(format string, args ...interface{}) {
	io.PfYel("WARNING: "+format+"\n", args...)
}

// Error always prints, in red.
func Error(format string, args ...interface{}) {
	io.PfRed("ERROR: "+format+"\n", args...)
}
