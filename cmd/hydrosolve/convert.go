package main

import (
	"flag"
	"os"
	"strings"

	"hydrosolve/inp"
)

// convertCmd reads a .inp network and re-serializes it as JSON or
// MessagePack, letting other tools consume a pre-parsed, pre-validated
// network without re-implementing the .inp grammar.
func convertCmd(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	inPath := fs.String("inp", "", "input .inp network file (required)")
	outPath := fs.String("out", "", "output file (required)")
	format := fs.String("format", "json", "output format: json or msgpack")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errRequiredFlag("-inp")
	}
	if *outPath == "" {
		return errRequiredFlag("-out")
	}

	f, err := os.Open(*inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	net, _, err := inp.ReadINP(f)
	if err != nil {
		return err
	}
	if err := net.Finalize(); err != nil {
		return err
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	switch strings.ToLower(*format) {
	case "json":
		return inp.WriteJSON(out, net)
	case "msgpack":
		return inp.WriteMsgpack(out, net)
	}
	return flagError{"-format (must be json or msgpack)"}
}
