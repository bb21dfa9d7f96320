// Package report defines the result shapes each cmd/goflow subcommand
// prints, and their JSON encoders.
package report

import (
	"github.com/1homsi/goflow/internal/callgraph"
	"github.com/1homsi/goflow/internal/taint"
)

// CallGraphReport is a call graph's result, flattened into caller/callee name pairs.
type CallGraphReport struct {
	Entry     string
	Methods   []string
	EdgeCount int
	Edges     []CallGraphEdge
}

type CallGraphEdge struct {
	Caller string
	Callee string
	Kind   string
}

// NewCallGraphReport flattens a callgraph.Graph for printing.
func NewCallGraphReport(entry string, g *callgraph.Graph) CallGraphReport {
	r := CallGraphReport{Entry: entry, EdgeCount: len(g.Edges())}
	for _, m := range g.Methods() {
		r.Methods = append(r.Methods, m.String())
	}
	for _, e := range g.Edges() {
		r.Edges = append(r.Edges, CallGraphEdge{
			Caller: e.CallerMethod.String(),
			Callee: e.Callee.String(),
			Kind:   e.Kind.String(),
		})
	}
	return r
}

// ConstPropReport is a constant-propagation result: the non-UNDEF variable
// bindings of the fact at a method's exit.
type ConstPropReport struct {
	Method   string
	Bindings []ConstBinding
}

type ConstBinding struct {
	Var   string
	Value string // "UNDEF" | "NAC" | the decimal constant
}

// PointsToReport is a pointer-analysis result: each reachable variable's points-to
// set, rendered as allocation-site labels.
type PointsToReport struct {
	Entry        string
	ReachableCSM int
	Vars         []PointsToEntry
}

type PointsToEntry struct {
	Var      string
	Context  string
	PointsTo []string
}

// TaintReport is a taint analysis result: every flow the Analysis collected.
type TaintReport struct {
	Flows []TaintFlowEntry
}

type TaintFlowEntry struct {
	Source string
	Sink   string
	Index  int
}

// NewTaintReport flattens a taint.Analysis's Flows for printing.
func NewTaintReport(flows []taint.TaintFlow) TaintReport {
	r := TaintReport{Flows: make([]TaintFlowEntry, len(flows))}
	for i, f := range flows {
		r.Flows[i] = TaintFlowEntry{Source: f.Source.String(), Sink: f.Sink.String(), Index: f.Index}
	}
	return r
}

// DeadCodeReport is the dead-code client's result: every finding in a single method.
type DeadCodeReport struct {
	Method   string
	Findings []DeadCodeEntry
}

type DeadCodeEntry struct {
	Index  int
	Reason string
	Stmt   string
}
