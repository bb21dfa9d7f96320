package pta

import (
	"github.com/1homsi/goflow/internal/callgraph"
	"github.com/1homsi/goflow/internal/context"
	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/logx"
)

// Solver runs the context-sensitive Andersen-style inclusion algorithm of
// to a fixpoint. Construct with NewSolver and run with Solve.
type Solver struct {
	Hierarchy ir.ClassHierarchy
	Types     ir.TypeSystem
	Heap      HeapModel
	Selector  context.Selector
	Plugins   []Plugin

	csm       *CSManager
	pfg       *PFG
	wl        *workList
	callGraph *CSCallGraph

	reachable   map[CSMethod]bool
	order       []CSMethod
	methodsByName map[string]*ir.Method
	seenCallSite  map[CSCallSite]bool
}

// NewSolver wires together a fresh solver over the given hierarchy, type
// system, heap model and context selector.
func NewSolver(h ir.ClassHierarchy, t ir.TypeSystem, heap HeapModel, sel context.Selector) *Solver {
	return &Solver{
		Hierarchy:     h,
		Types:         t,
		Heap:          heap,
		Selector:      sel,
		csm:           NewCSManager(),
		pfg:           NewPFG(),
		wl:            newWorkList(),
		callGraph:     newCSCallGraph(),
		reachable:     make(map[CSMethod]bool),
		methodsByName: make(map[string]*ir.Method),
		seenCallSite:  make(map[CSCallSite]bool),
	}
}

// Solve seeds reachability with (emptyCtx, main) and runs the worklist to
// a fixpoint.
func (s *Solver) Solve(main *ir.Method) *Result {
	csMain := CSMethod{Ctx: s.Selector.EmptyContext(), Method: main}
	s.addReachable(csMain)
	s.analyze()
	for _, p := range s.Plugins {
		p.OnFinish(s)
	}
	logx.Debugf("[pta] solved: %d reachable CS methods, %d PFG pointers", len(s.order), len(s.pfg.pts))
	return &Result{csm: s.csm, pfg: s.pfg, callGraph: s.callGraph, reachable: s.reachable, order: s.order}
}

// PTS exposes a pointer's current points-to set, as CSObj ids resolved
// through the solver's CSManager — the accessor plugins use (// "plugins must not retain references to mutable solver state except
// through the provided accessors").
func (s *Solver) PTS(p Pointer) []CSObj {
	pts := s.pfg.PTS(p)
	out := make([]CSObj, 0, pts.Len())
	for _, id := range pts.Elems() {
		out = append(out, s.csm.ObjAt(id))
	}
	return out
}

// CallGraph exposes the on-the-fly CS call graph built so far.
func (s *Solver) CallGraph() *CSCallGraph { return s.callGraph }

// Seed injects obj directly into p's points-to set and enqueues its
// propagation, for plugins that introduce points-to facts the ordinary
// statement processor has no statement for (the synthetic taint
// objects, seeded at a source call site rather than a New statement).
func (s *Solver) Seed(p Pointer, obj CSObj) {
	delta := NewPTS()
	delta.Insert(s.csm.Intern(obj))
	s.wl.push(p, delta)
}

// Resolve maps a raw PTS — such as the delta a Plugin's OnPointerPropagated
// hook receives — to its CSObj values, for plugins that need object
// identity rather than just set membership.
func (s *Solver) Resolve(delta *PTS) []CSObj {
	out := make([]CSObj, 0, delta.Len())
	for _, id := range delta.Elems() {
		out = append(out, s.csm.ObjAt(id))
	}
	return out
}

// addReachable implements the addReachable: idempotent, runs the
// statement processor over csm's method body on first sight.
func (s *Solver) addReachable(csm CSMethod) {
	if s.reachable[csm] {
		return
	}
	s.reachable[csm] = true
	s.order = append(s.order, csm)
	s.methodsByName[csm.Method.String()] = csm.Method
	s.processStmts(csm)
}

// processStmts is the statement processor table of: it seeds new
// PFG structure and worklist entries for New/Copy/static-field/static-call
// statements, but never itself traverses the PFG.
func (s *Solver) processStmts(csm CSMethod) {
	for _, st := range csm.Method.Stmts {
		switch stmt := st.(type) {
		case *ir.New:
			o := s.Heap.Obj(stmt)
			hc := s.Selector.SelectHeapContext(csm.Ctx, o)
			csObj := CSObj{Ctx: hc, Obj: o}
			delta := NewPTS()
			delta.Insert(s.csm.Intern(csObj))
			s.wl.push(CSVar{Ctx: csm.Ctx, Var: stmt.LHS}, delta)

		case *ir.Copy:
			s.addPFGEdge(CSVar{csm.Ctx, stmt.RHS}, CSVar{csm.Ctx, stmt.LHS})

		case *ir.LoadField:
			if stmt.Static {
				s.addPFGEdge(StaticField{stmt.Field}, CSVar{csm.Ctx, stmt.LHS})
			}

		case *ir.StoreField:
			if stmt.Static {
				s.addPFGEdge(CSVar{csm.Ctx, stmt.RHS}, StaticField{stmt.Field})
			}

		case *ir.Invoke:
			if stmt.Receiver == nil {
				s.processStaticCall(csm, stmt)
			}
		}
	}
}

// processStaticCall resolves and binds a static/special call site:
// calleeCtx := selector.selectContext(csCS, callee), with no this binding.
// The call site is reachable, and so notified to plugins, whether or not
// dispatch finds an analyzable callee body — a taint source/sink/transfer
// is typically an external method with no IR of its own, so plugin
// notification cannot wait on resolution.
func (s *Solver) processStaticCall(csm CSMethod, inv *ir.Invoke) {
	csCS := CSCallSite{Ctx: csm.Ctx, CS: inv}
	s.notifyNewCallSite(csCS)

	callee, ok := callgraph.Dispatch(s.Hierarchy, inv.Method.Owner, inv.Method.Sig)
	if !ok {
		return // unresolvable dispatch: silently skipped
	}

	calleeCtx := s.Selector.SelectContext(csm.Ctx, inv, callee)
	csCallee := CSMethod{Ctx: calleeCtx, Method: callee}
	edge := CSEdge{Kind: inv.Kind, CS: csCS, Callee: csCallee}
	if !s.callGraph.AddEdge(edge) {
		return
	}
	s.addReachable(csCallee)
	s.bindArgsAndReturn(csm.Ctx, inv, calleeCtx, callee)
}

// processCall implements the processCall for a CSVar receiver csVar
// now known to point to recv: it dispatches every non-static invoke whose
// receiver is csVar's variable.
func (s *Solver) processCall(csVar CSVar, recv CSObj) {
	method := s.methodsByName[csVar.Var.Method]
	if method == nil {
		return
	}
	for _, inv := range method.UsesOf(csVar.Var).Invokes {
		csCS := CSCallSite{Ctx: csVar.Ctx, CS: inv}
		s.notifyNewCallSite(csCS)

		class := s.Types.TypeOf(recv.Obj).Name
		callee, ok := callgraph.Dispatch(s.Hierarchy, class, inv.Method.Sig)
		if !ok {
			continue // unresolvable dispatch: silently skipped
		}
		calleeCtx := s.Selector.SelectInstanceContext(csVar.Ctx, inv, recv.Ctx, recv.Obj, callee)
		csCallee := CSMethod{Ctx: calleeCtx, Method: callee}

		// Seed `this` before checking/adding the call-graph edge, so a newly reachable callee already sees its
		// receiver on first visit.
		thisDelta := NewPTS()
		thisDelta.Insert(s.csm.Intern(recv))
		s.wl.push(CSVar{Ctx: calleeCtx, Var: callee.This}, thisDelta)

		edge := CSEdge{Kind: inv.Kind, CS: csCS, Callee: csCallee}
		if !s.callGraph.AddEdge(edge) {
			continue
		}
		s.addReachable(csCallee)
		s.bindArgsAndReturn(csVar.Ctx, inv, calleeCtx, callee)
	}
}

func (s *Solver) bindArgsAndReturn(callerCtx *context.ListContext, inv *ir.Invoke, calleeCtx *context.ListContext, callee *ir.Method) {
	for i, param := range callee.Params {
		if i < len(inv.Args) {
			s.addPFGEdge(CSVar{callerCtx, inv.Args[i]}, CSVar{calleeCtx, param})
		}
	}
	if inv.Result != nil {
		for _, ret := range callee.ReturnVars {
			s.addPFGEdge(CSVar{calleeCtx, ret}, CSVar{callerCtx, *inv.Result})
		}
	}
}

func (s *Solver) notifyNewCallSite(csCS CSCallSite) {
	if s.seenCallSite[csCS] {
		return
	}
	s.seenCallSite[csCS] = true
	for _, p := range s.Plugins {
		p.OnNewCallSite(s, csCS)
	}
}

// addPFGEdge implements the addPFGEdge(s, t): if the edge is new
// and pt(s) is non-empty, enqueue (t, pt(s)).
func (s *Solver) addPFGEdge(from, to Pointer) bool {
	if !s.pfg.AddEdge(from, to) {
		return false
	}
	pts := s.pfg.PTS(from)
	if !pts.IsEmpty() {
		s.wl.push(to, pts.Clone())
	}
	return true
}

// analyze is the main loop.
func (s *Solver) analyze() {
	for !s.wl.empty() {
		e := s.wl.pop()
		delta := s.propagate(e.p, e.delta)
		if delta.IsEmpty() {
			continue
		}
		for _, p := range s.Plugins {
			p.OnPointerPropagated(s, e.p, delta)
		}

		csVar, ok := e.p.(CSVar)
		if !ok {
			continue
		}
		method := s.methodsByName[csVar.Var.Method]
		if method == nil {
			continue
		}
		uses := method.UsesOf(csVar.Var)
		for _, id := range delta.Elems() {
			recv := s.csm.ObjAt(id)
			for _, sf := range uses.StoreFields {
				s.addPFGEdge(CSVar{csVar.Ctx, sf.RHS}, InstanceField{recv, sf.Field})
			}
			for _, lf := range uses.LoadFields {
				s.addPFGEdge(InstanceField{recv, lf.Field}, CSVar{csVar.Ctx, lf.LHS})
			}
			for _, sa := range uses.StoreArrays {
				s.addPFGEdge(CSVar{csVar.Ctx, sa.RHS}, ArrayIndex{recv})
			}
			for _, la := range uses.LoadArrays {
				s.addPFGEdge(ArrayIndex{recv}, CSVar{csVar.Ctx, la.LHS})
			}
			s.processCall(csVar, recv)
		}
	}
}

// propagate implements the propagate(p, pts): Δ := pts \ pt(p);
// pt(p) ∪= Δ; enqueue (succ, Δ) for every PFG successor of p.
func (s *Solver) propagate(p Pointer, delta *PTS) *PTS {
	pts := s.pfg.PTS(p)
	realDelta := pts.Diff(delta)
	if realDelta.IsEmpty() {
		return realDelta
	}
	pts.UnionWith(realDelta)
	for _, succ := range s.pfg.Succs(p) {
		s.wl.push(succ, realDelta)
	}
	return realDelta
}
