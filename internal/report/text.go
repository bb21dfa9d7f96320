package report

import (
	"fmt"
	"io"
)

// WriteCallGraphText prints one line per edge, grouped under the entry
// method, in a plain line-per-record format.
func WriteCallGraphText(w io.Writer, r CallGraphReport) {
	fmt.Fprintf(w, "call graph from %s (%d methods, %d edges)\n", r.Entry, len(r.Methods), r.EdgeCount)
	for _, e := range r.Edges {
		fmt.Fprintf(w, "  %s -> %s [%s]\n", e.Caller, e.Callee, e.Kind)
	}
}

func WriteConstPropText(w io.Writer, r ConstPropReport) {
	fmt.Fprintf(w, "constant propagation for %s\n", r.Method)
	for _, b := range r.Bindings {
		fmt.Fprintf(w, "  %s = %s\n", b.Var, b.Value)
	}
}

func WritePointsToText(w io.Writer, r PointsToReport) {
	fmt.Fprintf(w, "points-to sets from %s (%d reachable CS methods)\n", r.Entry, r.ReachableCSM)
	for _, v := range r.Vars {
		fmt.Fprintf(w, "  %s@%s -> %v\n", v.Var, v.Context, v.PointsTo)
	}
}

func WriteTaintText(w io.Writer, r TaintReport) {
	if len(r.Flows) == 0 {
		fmt.Fprintln(w, "no taint flows found")
		return
	}
	for _, f := range r.Flows {
		fmt.Fprintf(w, "tainted value from %s reaches %s (arg %d)\n", f.Source, f.Sink, f.Index)
	}
}

func WriteDeadCodeText(w io.Writer, r DeadCodeReport) {
	if len(r.Findings) == 0 {
		fmt.Fprintf(w, "%s: no dead code found\n", r.Method)
		return
	}
	for _, f := range r.Findings {
		fmt.Fprintf(w, "%s:%d: %s: %s\n", r.Method, f.Index, f.Reason, f.Stmt)
	}
}
