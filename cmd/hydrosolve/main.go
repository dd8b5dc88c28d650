// Command hydrosolve is the CLI entry point: run/convert/validate
// subcommands over an EPANET-style .inp network, in the spirit of the
// teacher's own main.go (a banner, flag.Parse, one dispatch, no
// sub-package of its own — see BookmarkSciencePrrojects-gofem/main.go).
package main

import (
	"fmt"
	"os"

	"hydrosolve/internal/trace"
)

func main() {
	trace.Banner(
		"hydrosolve -- hydraulic network solver",
		"a Global Gradient Algorithm (GGA) solver for pressurized pipe networks",
	)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(os.Args[2:])
	case "convert":
		err = convertCmd(os.Args[2:])
	case "validate":
		err = validateCmd(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		trace.Error("%v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hydrosolve <run|convert|validate> [flags]")
}
