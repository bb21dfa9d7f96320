// Package icfg builds the inter-procedural CFG the solver runs
// over: per-method CFGs stitched together along call-graph edges, with
// Call/Return/CallToReturn edges added at call sites and Normal edges
// everywhere else.
package icfg

import (
	"github.com/1homsi/goflow/internal/callgraph"
	"github.com/1homsi/goflow/internal/cfg"
	"github.com/1homsi/goflow/internal/ir"
)

// EdgeKind is one of the four ICFG edge kinds names.
type EdgeKind int

const (
	Normal EdgeKind = iota
	CallToReturn
	Call
	Return
)

func (k EdgeKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case CallToReturn:
		return "call-to-return"
	case Call:
		return "call"
	case Return:
		return "return"
	default:
		return "unknown"
	}
}

// InEdge is one inbound ICFG edge to a node: its kind and source.
type InEdge struct {
	Kind EdgeKind
	Src  cfg.Node
}

// Graph is the inter-procedural CFG: every reachable method's CFG, plus
// the cross-method Call/Return/CallToReturn edges CHA's call graph
// contributes at each call-site node.
type Graph struct {
	CallGraph *callgraph.Graph
	cfgs      map[*ir.Method]*cfg.Graph
	in        map[cfg.Node][]InEdge
	// calleeEntries maps a call-site node to the first statement node(s) of
	// every CHA-resolved callee, i.e. the successors of its entry node (the
	// Call-edge targets).
	calleeEntries map[cfg.Node][]cfg.Node
	// returnSites maps a callee's exit node to every caller-side
	// call-to-return node awaiting its Return edge.
	returnSites map[cfg.Node][]cfg.Node
	// callSites maps a call-to-return node back to the call statement that
	// precedes it, so an Analysis can recover "which variable receives the
	// result" when it processes that node's inbound Return edge.
	callSites map[cfg.Node]*ir.Invoke
}

// Build stitches together an ICFG from every method callgraph.Graph
// reports reachable.
func Build(cg *callgraph.Graph) *Graph {
	g := &Graph{
		CallGraph:     cg,
		cfgs:          make(map[*ir.Method]*cfg.Graph),
		in:            make(map[cfg.Node][]InEdge),
		calleeEntries: make(map[cfg.Node][]cfg.Node),
		returnSites:   make(map[cfg.Node][]cfg.Node),
		callSites:     make(map[cfg.Node]*ir.Invoke),
	}
	for _, m := range cg.Methods() {
		g.cfgs[m] = cfg.New(m)
	}
	for _, m := range cg.Methods() {
		mcfg := g.cfgs[m]
		for _, n := range mcfg.Nodes() {
			g.wireNode(mcfg, n)
		}
	}
	return g
}

// CFG returns the intra-procedural CFG for m, building one on demand for
// methods Build did not see (e.g. added by the pointer analysis after CHA
// ran) so ICFG construction stays usable incrementally.
func (g *Graph) CFG(m *ir.Method) *cfg.Graph {
	if c, ok := g.cfgs[m]; ok {
		return c
	}
	c := cfg.New(m)
	g.cfgs[m] = c
	for _, n := range c.Nodes() {
		g.wireNode(c, n)
	}
	return c
}

// wireNode records n's intra-procedural Normal successors, plus — if n is
// an invoke statement — the Call/Return/CallToReturn edges to/from every
// CHA-resolved callee.
func (g *Graph) wireNode(mcfg *cfg.Graph, n cfg.Node) {
	if n.IsExit() {
		return
	}
	if inv, ok := n.Stmt().(*ir.Invoke); ok {
		g.wireCallSite(mcfg, n, inv)
		return
	}
	for _, succ := range mcfg.Succs(n) {
		g.in[succ] = append(g.in[succ], InEdge{Kind: Normal, Src: n})
	}
}

// wireCallSite adds a Call edge into each callee's first statement(s) (the
// successors of its entry node), a Return edge
// from each callee's exit back to the call-to-return successor, and a
// CallToReturn edge directly from n to that successor.
func (g *Graph) wireCallSite(mcfg *cfg.Graph, n cfg.Node, inv *ir.Invoke) {
	succs := mcfg.Succs(n)
	resolved := false
	for _, e := range g.CallGraph.OutEdges(n.Method) {
		if e.CallSite != inv {
			continue
		}
		resolved = true
		calleeCFG := g.CFG(e.Callee)
		calleeEntry := calleeCFG.Entry()
		calleeExit := calleeCFG.Exit()
		for _, c := range calleeCFG.Succs(calleeEntry) {
			g.in[c] = append(g.in[c], InEdge{Kind: Call, Src: n})
			g.calleeEntries[n] = append(g.calleeEntries[n], c)
		}
		for _, retSucc := range succs {
			g.in[retSucc] = append(g.in[retSucc], InEdge{Kind: Return, Src: calleeExit})
			g.in[retSucc] = append(g.in[retSucc], InEdge{Kind: CallToReturn, Src: n})
			g.returnSites[calleeExit] = append(g.returnSites[calleeExit], retSucc)
			g.callSites[retSucc] = inv
		}
	}
	if !resolved {
		// Unresolvable dispatch: the call is skipped, but the
		// CFG must stay connected, so fall through as a Normal edge.
		for _, succ := range succs {
			g.in[succ] = append(g.in[succ], InEdge{Kind: Normal, Src: n})
		}
	}
}

// Succs returns n's ICFG successors: ordinary intra-procedural successors,
// except a call-site node also flows into each resolved callee's CFG
// (Call edges) in addition to its call-to-return successor, and a
// callee's exit node flows back to every caller-side return site it has
// accumulated (Return edges).
func (g *Graph) Succs(n cfg.Node) []cfg.Node {
	mcfg := g.cfgs[n.Method]
	if n.IsExit() {
		return g.returnSites[n]
	}
	if _, ok := n.Stmt().(*ir.Invoke); ok {
		out := append([]cfg.Node{}, g.calleeEntries[n]...)
		out = append(out, mcfg.Succs(n)...)
		return out
	}
	return mcfg.Succs(n)
}

// InEdges returns n's inbound ICFG edges (the inEdges(n)).
func (g *Graph) InEdges(n cfg.Node) []InEdge { return g.in[n] }

// CallOf returns the call statement whose call-to-return edge targets n, if
// n is a call's return site.
func (g *Graph) CallOf(n cfg.Node) (*ir.Invoke, bool) {
	inv, ok := g.callSites[n]
	return inv, ok
}

// Nodes returns every node of every stitched method's CFG.
func (g *Graph) Nodes() []cfg.Node {
	var out []cfg.Node
	for _, m := range g.CallGraph.Methods() {
		out = append(out, g.cfgs[m].Nodes()...)
	}
	return out
}

// Entry returns the entry node of the ICFG's designated entry method.
func (g *Graph) Entry(m *ir.Method) cfg.Node { return g.CFG(m).Entry() }
