package pta

// Plugin is the extension point the taint analysis attaches through: the
// solver calls each hook at the point named, in the single solver thread,
// and treats a failing hook as fatal.
type Plugin interface {
	// OnNewCallSite fires when csCS first becomes reachable in the call
	// graph (a new CSCallSite, not merely a new CSEdge).
	OnNewCallSite(s *Solver, csCS CSCallSite)
	// OnPointerPropagated fires after propagate(p, pts) computes a
	// non-empty delta.
	OnPointerPropagated(s *Solver, p Pointer, delta *PTS)
	// OnFinish fires once the main loop's worklist is empty.
	OnFinish(s *Solver)
}
