// Package callgraph is cmd/goflow's call-graph subcommand: it loads a program,
// builds the CHA call graph from its entry method, and prints it.
package callgraph

import (
	"fmt"
	"os"

	"github.com/1homsi/goflow/internal/callgraph"
	"github.com/1homsi/goflow/internal/config"
	"github.com/1homsi/goflow/internal/logx"
	"github.com/1homsi/goflow/internal/report"
	"github.com/1homsi/goflow/internal/world"
)

func Run(args []string) int {
	opts, err := config.Parse("callgraph", args)
	if err != nil {
		return 2
	}
	logx.SetVerbose(opts.Verbose)

	if len(opts.Args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: goflow callgraph [--json] <program.json>")
		return 2
	}

	w, err := world.LoadProgramJSON(opts.Args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "load program:", err)
		return 2
	}

	main := w.MainMethod()
	g := callgraph.Build(main, w.ClassHierarchy())
	r := report.NewCallGraphReport(main.String(), g)

	if opts.JSON {
		if err := report.WriteCallGraphJSON(os.Stdout, r); err != nil {
			fmt.Fprintln(os.Stderr, "write output:", err)
			return 2
		}
	} else {
		report.WriteCallGraphText(os.Stdout, r)
	}
	return 0
}
