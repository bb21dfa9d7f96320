// Package deadcode is cmd/goflow's dead-code subcommand: it loads a program,
// runs constant propagation and liveness over its entry method, and prints
// every unreachable branch and dead assignment found.
package deadcode

import (
	"fmt"
	"os"

	"github.com/1homsi/goflow/internal/cfg"
	"github.com/1homsi/goflow/internal/config"
	"github.com/1homsi/goflow/internal/constprop"
	"github.com/1homsi/goflow/internal/dataflow"
	"github.com/1homsi/goflow/internal/deadcode"
	"github.com/1homsi/goflow/internal/logx"
	"github.com/1homsi/goflow/internal/report"
	"github.com/1homsi/goflow/internal/world"
)

func Run(args []string) int {
	opts, err := config.Parse("deadcode", args)
	if err != nil {
		return 2
	}
	logx.SetVerbose(opts.Verbose)

	if len(opts.Args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: goflow deadcode [--json] <program.json>")
		return 2
	}

	w, err := world.LoadProgramJSON(opts.Args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "load program:", err)
		return 2
	}

	main := w.MainMethod()
	g := cfg.New(main)
	cp := dataflow.Solve(g, constprop.Intra{})
	live := deadcode.Liveness(g)
	findings := deadcode.Analyze(g, cp, live)
	w.StoreResult("deadcode", findings)

	r := report.DeadCodeReport{Method: main.String()}
	for _, f := range findings {
		stmt := "<entry/exit>"
		if s := f.Node.Stmt(); s != nil {
			stmt = s.String()
		}
		r.Findings = append(r.Findings, report.DeadCodeEntry{Index: f.Node.Index, Reason: f.Reason.String(), Stmt: stmt})
	}

	if opts.JSON {
		if err := report.WriteDeadCodeJSON(os.Stdout, r); err != nil {
			fmt.Fprintln(os.Stderr, "write output:", err)
			return 2
		}
	} else {
		report.WriteDeadCodeText(os.Stdout, r)
	}
	if len(r.Findings) > 0 {
		return 1
	}
	return 0
}
