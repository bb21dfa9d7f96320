// Package cfg is the graph adapter: it exposes a Method's statements as
// nodes with predecessor/successor/entry/exit accessors, without requiring
// every consumer to know the underlying ir.Method representation.
package cfg

import "github.com/1homsi/goflow/internal/ir"

// Node identifies a position in a method's control-flow graph. A negative
// Index denotes the synthetic Entry (-1) or Exit (-2) pseudo-node.
type Node struct {
	Method *ir.Method
	Index  int
}

const (
	entryIndex = -1
	exitIndex  = -2
)

// Stmt returns the statement at n, or nil at Entry/Exit.
func (n Node) Stmt() ir.Stmt {
	if n.Index < 0 || n.Index >= len(n.Method.Stmts) {
		return nil
	}
	return n.Method.Stmts[n.Index]
}

func (n Node) IsEntry() bool { return n.Index == entryIndex }
func (n Node) IsExit() bool  { return n.Index == exitIndex }

func (n Node) String() string {
	switch {
	case n.IsEntry():
		return n.Method.String() + "#entry"
	case n.IsExit():
		return n.Method.String() + "#exit"
	default:
		return n.Method.String() + "#" + itoa(n.Index)
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [12]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		p--
		buf[p] = '-'
	}
	return string(buf[p:])
}

// Graph is the CFG accessor for a single Method, built once and then
// queried repeatedly by the dataflow solver.
type Graph struct {
	Method *ir.Method
}

// New wraps m in a CFG accessor.
func New(m *ir.Method) *Graph { return &Graph{Method: m} }

func (g *Graph) Entry() Node { return Node{Method: g.Method, Index: entryIndex} }
func (g *Graph) Exit() Node  { return Node{Method: g.Method, Index: exitIndex} }

// Nodes returns every node in deterministic order: Entry, each statement in
// index order, Exit.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.Method.Stmts)+2)
	nodes = append(nodes, g.Entry())
	for i := range g.Method.Stmts {
		nodes = append(nodes, Node{Method: g.Method, Index: i})
	}
	nodes = append(nodes, g.Exit())
	return nodes
}

// hasOutgoing reports whether statement index i has any explicit CFG edge.
func (g *Graph) hasOutgoing(i int) bool {
	for _, e := range g.Method.Edges {
		if e.From == i {
			return true
		}
	}
	return false
}

func (g *Graph) hasIncoming(i int) bool {
	for _, e := range g.Method.Edges {
		if e.To == i {
			return true
		}
	}
	return false
}

// Succs returns the successors of n, following the Method's explicit
// Edges; a statement with no outgoing edge implicitly flows to Exit, and
// Entry implicitly flows to Stmts[0].
func (g *Graph) Succs(n Node) []Node {
	if n.IsExit() {
		return nil
	}
	if n.IsEntry() {
		if len(g.Method.Stmts) == 0 {
			return []Node{g.Exit()}
		}
		return []Node{{Method: g.Method, Index: 0}}
	}
	var out []Node
	for _, e := range g.Method.Edges {
		if e.From == n.Index {
			out = append(out, Node{Method: g.Method, Index: e.To})
		}
	}
	if len(out) == 0 {
		out = append(out, g.Exit())
	}
	return out
}

// Preds returns the predecessors of n, the dual of Succs.
func (g *Graph) Preds(n Node) []Node {
	if n.IsEntry() {
		return nil
	}
	if n.IsExit() {
		var out []Node
		for i := range g.Method.Stmts {
			if !g.hasOutgoing(i) {
				out = append(out, Node{Method: g.Method, Index: i})
			}
		}
		if len(g.Method.Stmts) == 0 {
			out = append(out, g.Entry())
		}
		return out
	}
	var out []Node
	for _, e := range g.Method.Edges {
		if e.To == n.Index {
			out = append(out, Node{Method: g.Method, Index: e.From})
		}
	}
	if n.Index == 0 {
		out = append(out, g.Entry())
	}
	return out
}
