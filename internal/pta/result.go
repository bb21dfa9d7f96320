package pta

// Result is the immutable outcome of a Solve: the reachable CS call graph
// plus read accessors over the final points-to sets.
type Result struct {
	csm       *CSManager
	pfg       *PFG
	callGraph *CSCallGraph
	reachable map[CSMethod]bool
	order     []CSMethod
}

// CallGraph returns the on-the-fly CS call graph.
func (r *Result) CallGraph() *CSCallGraph { return r.callGraph }

// PointsTo returns p's points-to set as resolved CSObj values.
func (r *Result) PointsTo(p Pointer) []CSObj {
	pts := r.pfg.PTS(p)
	out := make([]CSObj, 0, pts.Len())
	for _, id := range pts.Elems() {
		out = append(out, r.csm.ObjAt(id))
	}
	return out
}

// MayAlias reports whether a and b's points-to sets intersect.
func (r *Result) MayAlias(a, b Pointer) bool {
	aSet := r.pfg.PTS(a)
	bSet := r.pfg.PTS(b)
	for _, id := range aSet.Elems() {
		if bSet.Has(id) {
			return true
		}
	}
	return false
}

// ReachableMethods returns every CS method reached, in discovery order.
func (r *Result) ReachableMethods() []CSMethod { return r.order }

// IsReachable reports whether csm was reached.
func (r *Result) IsReachable(csm CSMethod) bool { return r.reachable[csm] }
