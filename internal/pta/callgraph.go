package pta

import "github.com/1homsi/goflow/internal/ir"

// CSEdge is one on-the-fly call-graph edge discovered during the solve.
type CSEdge struct {
	Kind   ir.CallKind
	CS     CSCallSite
	Callee CSMethod
}

// CSCallGraph is the context-sensitive call graph the solver builds
// incrementally, as distinct from the upfront CHA approximation in
// package callgraph.
type CSCallGraph struct {
	edges []CSEdge
	seen  map[CSEdge]bool
	out   map[CSCallSite][]CSEdge
}

func newCSCallGraph() *CSCallGraph {
	return &CSCallGraph{seen: make(map[CSEdge]bool), out: make(map[CSCallSite][]CSEdge)}
}

// AddEdge adds e if new, reporting whether it was added.
func (g *CSCallGraph) AddEdge(e CSEdge) bool {
	if g.seen[e] {
		return false
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
	g.out[e.CS] = append(g.out[e.CS], e)
	return true
}

// Edges returns every edge in discovery order.
func (g *CSCallGraph) Edges() []CSEdge { return g.edges }
