package pta

// PFG is the pointer-flow graph: an edge set plus adjacency map over
// Pointer, and the per-pointer points-to set. Grounded on
// internal/interproc/context.go and internal/interproc/scc.go's
// worklist/interning idioms, generalized from function-reachability edges
// to pointer-flow edges.
type PFG struct {
	succs   map[Pointer][]Pointer
	seen    map[[2]Pointer]bool
	pts     map[Pointer]*PTS
}

// NewPFG returns an empty pointer-flow graph.
func NewPFG() *PFG {
	return &PFG{
		succs: make(map[Pointer][]Pointer),
		seen:  make(map[[2]Pointer]bool),
		pts:   make(map[Pointer]*PTS),
	}
}

// AddEdge adds s → t if not already present, returning whether it is new
// (the addPFGEdge precondition).
func (g *PFG) AddEdge(s, t Pointer) bool {
	key := [2]Pointer{s, t}
	if g.seen[key] {
		return false
	}
	g.seen[key] = true
	g.succs[s] = append(g.succs[s], t)
	return true
}

// Succs returns s's PFG successors in insertion order.
func (g *PFG) Succs(s Pointer) []Pointer { return g.succs[s] }

// PTS returns p's points-to set, creating an empty one on first access.
func (g *PFG) PTS(p Pointer) *PTS {
	pts, ok := g.pts[p]
	if !ok {
		pts = NewPTS()
		g.pts[p] = pts
	}
	return pts
}
