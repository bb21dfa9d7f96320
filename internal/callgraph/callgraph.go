// Package callgraph builds the class-hierarchy-based call graph: a
// context-insensitive, CHA-resolved approximation that the ICFG is built
// from and that serves as a standalone result for callers that only need
// reachability. The pointer analysis builds its own on-the-fly call graph
// and shares only Dispatch with this package.
package callgraph

import (
	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/logx"
)

// Edge is one resolved call: a call site cs in CallerMethod dispatching, by
// Kind, to Callee.
type Edge struct {
	Kind         ir.CallKind
	CallSite     *ir.Invoke
	CallerMethod *ir.Method
	Callee       *ir.Method
}

// Graph is the CHA call graph built from a single entry method.
type Graph struct {
	edges     []Edge
	out       map[*ir.Method][]Edge
	reachable map[*ir.Method]bool
	order     []*ir.Method // reachable methods in discovery order, for deterministic iteration
}

// Reachable reports whether m was reached from the entry method.
func (g *Graph) Reachable(m *ir.Method) bool { return g.reachable[m] }

// Methods returns every reachable method, in discovery order.
func (g *Graph) Methods() []*ir.Method { return g.order }

// Edges returns every resolved edge, in discovery order.
func (g *Graph) Edges() []Edge { return g.edges }

// OutEdges returns the edges whose CallerMethod is m.
func (g *Graph) OutEdges(m *ir.Method) []Edge { return g.out[m] }

// Build runs the buildCallGraph worklist algorithm from entry,
// resolving each call site against hierarchy by CHA and enqueueing any
// newly reachable callee.
func Build(entry *ir.Method, hierarchy ir.ClassHierarchy) *Graph {
	g := &Graph{
		out:       make(map[*ir.Method][]Edge),
		reachable: make(map[*ir.Method]bool),
	}

	var worklist []*ir.Method
	addReachable := func(m *ir.Method) {
		if m == nil || g.reachable[m] {
			return
		}
		g.reachable[m] = true
		g.order = append(g.order, m)
		worklist = append(worklist, m)
	}

	addReachable(entry)
	for len(worklist) > 0 {
		m := worklist[0]
		worklist = worklist[1:]

		for _, st := range m.Stmts {
			inv, ok := st.(*ir.Invoke)
			if !ok {
				continue
			}
			callees := resolve(inv, hierarchy)
			for _, callee := range callees {
				e := Edge{Kind: inv.Kind, CallSite: inv, CallerMethod: m, Callee: callee}
				g.edges = append(g.edges, e)
				g.out[m] = append(g.out[m], e)
				addReachable(callee)
			}
		}
	}

	logx.Debugf("[callgraph] built CHA graph: %d reachable methods, %d edges", len(g.order), len(g.edges))
	return g
}

// resolve implements the resolve(cs): the callee set for a single
// call site, by dispatch kind.
func resolve(cs *ir.Invoke, h ir.ClassHierarchy) []*ir.Method {
	switch cs.Kind {
	case ir.STATIC, ir.SPECIAL:
		if m, ok := Dispatch(h, cs.Method.Owner, cs.Method.Sig); ok {
			return []*ir.Method{m}
		}
		return nil
	case ir.VIRTUAL:
		var out []*ir.Method
		for _, class := range subclassClosure(h, cs.Method.Owner) {
			if m, ok := Dispatch(h, class, cs.Method.Sig); ok {
				out = append(out, m)
			}
		}
		return out
	case ir.INTERFACE, ir.DYNAMIC:
		var out []*ir.Method
		seen := make(map[*ir.Method]bool)
		for _, iface := range subInterfaceClosure(h, cs.Method.Owner) {
			for _, impl := range h.Implementers(iface) {
				for _, class := range subclassClosure(h, impl) {
					if m, ok := Dispatch(h, class, cs.Method.Sig); ok && !seen[m] {
						seen[m] = true
						out = append(out, m)
					}
				}
			}
		}
		return out
	default:
		return nil
	}
}

// Dispatch implements the dispatch(C, sig): C's own declaration if
// present, else recurse into the superclass; abstract methods are skipped
// (never returned as a resolved callee).
func Dispatch(h ir.ClassHierarchy, class, sig string) (*ir.Method, bool) {
	for class != "" {
		if m, ok := h.DeclaredMethod(class, sig); ok {
			if m.Abstract {
				return nil, false
			}
			return m, true
		}
		super, ok := h.Superclass(class)
		if !ok {
			break
		}
		class = super
	}
	return nil, false
}

// subclassClosure returns class and every transitive subclass, BFS order.
func subclassClosure(h ir.ClassHierarchy, class string) []string {
	var out []string
	seen := map[string]bool{class: true}
	queue := []string{class}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		out = append(out, c)
		for _, sub := range h.Subclasses(c) {
			if !seen[sub] {
				seen[sub] = true
				queue = append(queue, sub)
			}
		}
	}
	return out
}

// subInterfaceClosure returns iface and every transitive sub-interface.
func subInterfaceClosure(h ir.ClassHierarchy, iface string) []string {
	var out []string
	seen := map[string]bool{iface: true}
	queue := []string{iface}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		out = append(out, c)
		for _, sub := range h.SubInterfaces(c) {
			if !seen[sub] {
				seen[sub] = true
				queue = append(queue, sub)
			}
		}
	}
	return out
}
