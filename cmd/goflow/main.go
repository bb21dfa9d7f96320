package main

import (
	"fmt"
	"os"

	"github.com/1homsi/goflow/cmd/goflow/callgraph"
	"github.com/1homsi/goflow/cmd/goflow/constprop"
	"github.com/1homsi/goflow/cmd/goflow/deadcode"
	"github.com/1homsi/goflow/cmd/goflow/interproc"
	"github.com/1homsi/goflow/cmd/goflow/pta"
	"github.com/1homsi/goflow/cmd/goflow/taint"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "callgraph":
		os.Exit(callgraph.Run(os.Args[2:]))
	case "constprop":
		os.Exit(constprop.Run(os.Args[2:]))
	case "pta":
		os.Exit(pta.Run(os.Args[2:]))
	case "interproc":
		os.Exit(interproc.Run(os.Args[2:]))
	case "taint":
		os.Exit(taint.Run(os.Args[2:]))
	case "deadcode":
		os.Exit(deadcode.Run(os.Args[2:]))
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `goflow — whole-program static analysis over a small class-based IR

Usage:
  goflow callgraph [--json] <program.json>
  goflow constprop [--json] <program.json>
  goflow pta       [--json] [--context ci|k-call|k-obj|k-type] [--k N] <program.json>
  goflow interproc [--json] [--context ...] [--k N] <program.json>
  goflow taint     [--json] [--taint-config file.yaml] [--context ...] [--k N] <program.json>
  goflow deadcode  [--json] <program.json>
  goflow version

<program.json> is the CLI's own JSON program format (see internal/world),
standing in for a real bytecode/source frontend.`)
}
