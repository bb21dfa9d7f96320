// Package interproc is cmd/goflow's inter-procedural subcommand: it loads a program,
// builds the call graph, pointer analysis and ICFG, then runs alias-aware
// inter-procedural constant propagation and prints the entry method's
// final bindings.
package interproc

import (
	"fmt"
	"os"

	"github.com/1homsi/goflow/internal/callgraph"
	"github.com/1homsi/goflow/internal/config"
	"github.com/1homsi/goflow/internal/constprop"
	"github.com/1homsi/goflow/internal/icfg"
	"github.com/1homsi/goflow/internal/interproc"
	"github.com/1homsi/goflow/internal/logx"
	"github.com/1homsi/goflow/internal/pta"
	"github.com/1homsi/goflow/internal/report"
	"github.com/1homsi/goflow/internal/world"
)

func Run(args []string) int {
	opts, err := config.Parse("interproc", args)
	if err != nil {
		return 2
	}
	logx.SetVerbose(opts.Verbose)

	if len(opts.Args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: goflow interproc [--json] [--context ...] [--k N] <program.json>")
		return 2
	}
	sel, err := opts.Selector()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	w, err := world.LoadProgramJSON(opts.Args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "load program:", err)
		return 2
	}

	main := w.MainMethod()
	cg := callgraph.Build(main, w.ClassHierarchy())
	ig := icfg.Build(cg)

	ptaResult, ok := world.Result[*pta.Result](w, opts.PTAResult)
	if !ok {
		solver := pta.NewSolver(w.ClassHierarchy(), w.TypeSystem(), pta.NewAllocationSiteHeap(), sel)
		ptaResult = solver.Solve(main)
		w.StoreResult(opts.PTAResult, ptaResult)
	}

	inter := constprop.NewInter(ig, ptaResult)
	entry := ig.Entry(main)
	res := interproc.Solve(ig, entry, inter)
	w.StoreResult("inter-constprop", res)

	exit := ig.CFG(main).Exit()
	fact := constprop.FactOf(res.Out[exit])

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
