// Package interproc is the inter-procedural worklist solver: it runs a
// concrete Analysis over an ICFG, dispatching one of four edge-transfer
// functions (Normal/CallToReturn/Call/Return) per inbound edge before
// running the node's own transfer. Inter-procedural constant propagation
// (package constprop) is its concrete instantiation.
package interproc

import (
	"github.com/1homsi/goflow/internal/cfg"
	"github.com/1homsi/goflow/internal/dataflow"
	"github.com/1homsi/goflow/internal/icfg"
	"github.com/1homsi/goflow/internal/logx"
)

// Analysis is the concrete instantiation this package's solver drives.
type Analysis interface {
	// NewInitialFact returns the fact every non-boundary node starts with.
	NewInitialFact() dataflow.Fact
	// NewBoundaryFact returns the fact seeded at OUT(entry of the entry
	// method).
	NewBoundaryFact(entry cfg.Node) dataflow.Fact
	// Meet combines two facts.
	Meet(a, b dataflow.Fact) dataflow.Fact
	// TransferEdge computes the contribution edge e makes to IN(dst), given
	// OUT at e's source (the transferEdge). dst is passed alongside
	// because a Call edge's contribution depends on the callee (dst's
	// method) and a Return edge's depends on the caller's call statement
	// (recoverable from dst via icfg.Graph.CallOf).
	TransferEdge(dst cfg.Node, e icfg.InEdge, srcOut dataflow.Fact) dataflow.Fact
	// TransferNode recomputes OUT(n) from IN(n), returning whether OUT
	// changed. push lets the analysis enqueue additional nodes beyond n's
	// ordinary ICFG successors (the alias-driven workListAdd).
	// outAt reads the live OUT fact of any other node, letting a field/array
	// load meet over the OUT facts of its aliased store sites.
	TransferNode(n cfg.Node, in, out dataflow.Fact, push func(cfg.Node), outAt func(cfg.Node) dataflow.Fact) bool
}

// Result holds the IN/OUT facts computed for every ICFG node.
type Result struct {
	In, Out map[cfg.Node]dataflow.Fact
}

// Solve runs Analysis a to a fixpoint over g, starting from entry:
// initialize every node's IN/OUT, seed OUT(entry) with the boundary fact,
// enqueue all nodes FIFO, and loop until the queue drains.
func Solve(g *icfg.Graph, entry cfg.Node, a Analysis) *Result {
	res := &Result{In: make(map[cfg.Node]dataflow.Fact), Out: make(map[cfg.Node]dataflow.Fact)}
	nodes := g.Nodes()
	for _, n := range nodes {
		res.In[n] = a.NewInitialFact()
		res.Out[n] = a.NewInitialFact()
	}
	res.Out[entry] = a.NewBoundaryFact(entry)

	wl := newFIFO()
	for _, n := range nodes {
		wl.push(n)
	}

	logx.Debugf("[interproc] solving %d-node ICFG", len(nodes))

	outAt := func(n cfg.Node) dataflow.Fact { return res.Out[n] }

	for !wl.empty() {
		n := wl.pop()
		if n == entry {
			continue
		}
		for _, e := range g.InEdges(n) {
			contrib := a.TransferEdge(n, e, res.Out[e.Src])
			merged := a.Meet(res.In[n], contrib)
			res.In[n].CopyFrom(merged)
		}
		changed := a.TransferNode(n, res.In[n], res.Out[n], wl.push, outAt)
		if changed {
			for _, succ := range g.Succs(n) {
				wl.push(succ)
			}
		}
	}
	return res
}

// fifo is a deduplicating FIFO queue of cfg.Node, matching the "order
// is first-in-first-out (queue)".
type fifo struct {
	queue []cfg.Node
	in    map[cfg.Node]bool
}

func newFIFO() *fifo { return &fifo{in: make(map[cfg.Node]bool)} }

func (f *fifo) push(n cfg.Node) {
	if f.in[n] {
		return
	}
	f.in[n] = true
	f.queue = append(f.queue, n)
}

func (f *fifo) empty() bool { return len(f.queue) == 0 }

func (f *fifo) pop() cfg.Node {
	n := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.in, n)
	return n
}
