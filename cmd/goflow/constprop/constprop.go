// Package constprop is cmd/goflow's constant-propagation subcommand: it loads a program and
// runs intra-procedural constant propagation over its entry method.
package constprop

import (
	"fmt"
	"os"

	"github.com/1homsi/goflow/internal/cfg"
	"github.com/1homsi/goflow/internal/config"
	"github.com/1homsi/goflow/internal/constprop"
	"github.com/1homsi/goflow/internal/dataflow"
	"github.com/1homsi/goflow/internal/logx"
	"github.com/1homsi/goflow/internal/report"
	"github.com/1homsi/goflow/internal/world"
)

func Run(args []string) int {
	opts, err := config.Parse("constprop", args)
	if err != nil {
		return 2
	}
	logx.SetVerbose(opts.Verbose)

	if len(opts.Args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: goflow constprop [--json] <program.json>")
		return 2
	}

	w, err := world.LoadProgramJSON(opts.Args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "load program:", err)
		return 2
	}

	main := w.MainMethod()
	g := cfg.New(main)
	result := dataflow.Solve(g, constprop.Intra{})
	w.StoreResult("constprop", result)
	fact := constprop.FactOf(result.Out[g.Exit()])

	r := report.ConstPropReport{Method: main.String()}
	for _, v := range fact.Vars() {
		r.Bindings = append(r.Bindings, report.ConstBinding{Var: v.Name, Value: fact.Get(v).String()})
	}

	if opts.JSON {
		if err := report.WriteConstPropJSON(os.Stdout, r); err != nil {
			fmt.Fprintln(os.Stderr, "write output:", err)
			return 2
		}
	} else {
		report.WriteConstPropText(os.Stdout, r)
	}
	return 0
}
