package constprop

import (
	"github.com/1homsi/goflow/internal/cfg"
	"github.com/1homsi/goflow/internal/context"
	"github.com/1homsi/goflow/internal/dataflow"
	"github.com/1homsi/goflow/internal/icfg"
	"github.com/1homsi/goflow/internal/interproc"
	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/lattice"
	"github.com/1homsi/goflow/internal/pta"
)

// aliasIndex is the four may-alias indexes, built once from a
// pta.Result: every base variable b that may-aliases a variable v with
// field/array uses gets those uses filed under b, so a store through b can
// find every load that might observe it without re-querying the pointer
// analysis on every node visit.
type aliasIndex struct {
	storeInstanceFields map[ir.Var][]*ir.StoreField
	loadInstanceFields  map[ir.Var][]*ir.LoadField
	storeArrays         map[ir.Var][]*ir.StoreArray
	loadArrays          map[ir.Var][]*ir.LoadArray
	storeStaticFields   map[ir.Field][]*ir.StoreField
	loadStaticFields    map[ir.Field][]*ir.LoadField

	// stmtNode maps a store/load statement back to its ICFG node so
	// TransferNode's push callback can enqueue an aliased load directly.
	stmtNode map[ir.Stmt]cfg.Node
}

// buildAliasIndex scans every method the pointer analysis reached, filing
// its field/array stores and loads under every base variable that
// may-aliases them ("for all b, v such that pt(b) ∩ pt(v) ≠
// ∅"). A variable's points-to set is taken as the union over every context
// under which its owning method was reached — exact when the pointer
// analysis ran with context.CI(), a sound over-approximation otherwise,
// since this alias-aware extension of constant propagation does not track
// contexts of its own.
func buildAliasIndex(result *pta.Result) *aliasIndex {
	idx := &aliasIndex{
		storeInstanceFields: make(map[ir.Var][]*ir.StoreField),
		loadInstanceFields:  make(map[ir.Var][]*ir.LoadField),
		storeArrays:         make(map[ir.Var][]*ir.StoreArray),
		loadArrays:          make(map[ir.Var][]*ir.LoadArray),
		storeStaticFields:   make(map[ir.Field][]*ir.StoreField),
		loadStaticFields:    make(map[ir.Field][]*ir.LoadField),
		stmtNode:            make(map[ir.Stmt]cfg.Node),
	}

	contextsOf := make(map[string][]*context.ListContext)
	methods := make(map[string]*ir.Method)
	for _, csm := range result.ReachableMethods() {
		key := csm.Method.String()
		methods[key] = csm.Method
		contextsOf[key] = append(contextsOf[key], csm.Ctx)
	}

	ptsUnion := func(v ir.Var) map[pta.CSObj]bool {
		set := make(map[pta.CSObj]bool)
		for _, ctx := range contextsOf[v.Method] {
			for _, o := range result.PointsTo(pta.CSVar{Ctx: ctx, Var: v}) {
				set[o] = true
			}
		}
		return set
	}

	ptsCache := make(map[ir.Var]map[pta.CSObj]bool)
	ptsOf := func(v ir.Var) map[pta.CSObj]bool {
		if pts, ok := ptsCache[v]; ok {
			return pts
		}
		pts := ptsUnion(v)
		ptsCache[v] = pts
		return pts
	}
	mayAlias := func(a, b ir.Var) bool {
		pb := ptsOf(b)
		for o := range ptsOf(a) {
			if pb[o] {
				return true
			}
		}
		return false
	}

	var bases []ir.Var
	seenBase := make(map[ir.Var]bool)
	for _, m := range methods {
		for i, st := range m.Stmts {
			idx.stmtNode[st] = cfg.Node{Method: m, Index: i}

			var base ir.Var
			switch s := st.(type) {
			case *ir.StoreField:
				if s.Static {
					idx.storeStaticFields[s.Field] = append(idx.storeStaticFields[s.Field], s)
					continue
				}
				base = s.Base
			case *ir.LoadField:
				if s.Static {
					idx.loadStaticFields[s.Field] = append(idx.loadStaticFields[s.Field], s)
					continue
				}
				base = s.Base
			case *ir.StoreArray:
				base = s.Base
			case *ir.LoadArray:
				base = s.Base
			default:
				continue
			}
			if !seenBase[base] {
				seenBase[base] = true
				bases = append(bases, base)
			}
		}
	}

	for _, b := range bases {
		for _, v := range bases {
			if !mayAlias(b, v) {
				continue
			}
			uses := methods[v.Method].UsesOf(v)
			idx.storeInstanceFields[b] = append(idx.storeInstanceFields[b], uses.StoreFields...)
			idx.loadInstanceFields[b] = append(idx.loadInstanceFields[b], uses.LoadFields...)
			idx.storeArrays[b] = append(idx.storeArrays[b], uses.StoreArrays...)
			idx.loadArrays[b] = append(idx.loadArrays[b], uses.LoadArrays...)
		}
	}
	return idx
}

// Inter is the alias-aware inter-procedural constant-propagation
// analysis, instantiated against an icfg.Graph and the pta.Result computed
// over the same call graph.
type Inter struct {
	Graph *icfg.Graph
	idx   *aliasIndex
}

var _ interproc.Analysis = (*Inter)(nil)

// NewInter builds Inter from a finished pointer-analysis result and the ICFG
// stitched over the same reachable call graph.
func NewInter(g *icfg.Graph, result *pta.Result) *Inter {
	return &Inter{Graph: g, idx: buildAliasIndex(result)}
}

func (a *Inter) NewInitialFact() dataflow.Fact { return cpFact{lattice.NewCPFact()} }

// NewBoundaryFact mirrors the intra-procedural analysis's: the entry method's
// integer-shaped parameters start at NAC, everything else at UNDEF.
func (a *Inter) NewBoundaryFact(entry cfg.Node) dataflow.Fact {
	fact := lattice.NewCPFact()
	for _, p := range entry.Method.Params {
		if p.IsIntegerShaped() {
			fact.Update(p, lattice.NAC)
		}
	}
	return cpFact{fact}
}

func (a *Inter) Meet(x, y dataflow.Fact) dataflow.Fact {
	return cpFact{lattice.Meet(x.(cpFact).f, y.(cpFact).f)}
}

// TransferEdge implements the four edge rules. Normal and
// CallToReturn both flow from the call statement's own OUT; CallToReturn
// additionally kills the call's result variable, since that variable's real
// value arrives separately via the Return edge. Call binds only the
// callee's integer-shaped formals from the caller's actuals. Return meets
// the callee's return variables into the caller's result variable.
func (a *Inter) TransferEdge(dst cfg.Node, e icfg.InEdge, srcOut dataflow.Fact) dataflow.Fact {
	switch e.Kind {
	case icfg.Normal:
		return cpFact{srcOut.(cpFact).f.Copy()}

	case icfg.CallToReturn:
		out := srcOut.(cpFact).f.Copy()
		if inv, ok := e.Src.Stmt().(*ir.Invoke); ok && inv.Result != nil {
			out.Remove(*inv.Result)
		}
		return cpFact{out}

	case icfg.Call:
		out := lattice.NewCPFact()
		if inv, ok := e.Src.Stmt().(*ir.Invoke); ok {
			callerFact := srcOut.(cpFact).f
			for i, param := range dst.Method.Params {
				if i >= len(inv.Args) {
					break
				}
				if param.IsIntegerShaped() {
					out.Update(param, callerFact.Get(inv.Args[i]))
				}
			}
		}
		return cpFact{out}

	case icfg.Return:
		out := lattice.NewCPFact()
		inv, ok := a.Graph.CallOf(dst)
		if !ok || inv.Result == nil {
			return cpFact{out}
		}
		calleeFact := srcOut.(cpFact).f
		result := lattice.Undef
		for _, ret := range e.Src.Method.ReturnVars {
			result = lattice.MeetValue(result, calleeFact.Get(ret))
		}
		out.Update(*inv.Result, result)
		return cpFact{out}
	}
	return cpFact{lattice.NewCPFact()}
}

// TransferNode implements: call statements (and the synthetic
// Entry/Exit pseudo-nodes) pass IN through unchanged, since a call's real
// effect is carried by the Call/Return edges instead; field and array
// stores/loads get the alias-aware rule below; every other statement kind
// falls through to the ordinary intra-procedural transfer.
func (a *Inter) TransferNode(n cfg.Node, in, out dataflow.Fact, push func(cfg.Node), outAt func(cfg.Node) dataflow.Fact) bool {
	inFact, outFact := in.(cpFact).f, out.(cpFact).f

	switch s := n.Stmt().(type) {
	case nil, *ir.Invoke:
		return outFact.CopyFrom(inFact)

	case *ir.StoreField:
		changed := outFact.CopyFrom(inFact)
		if changed && s.RHS.IsIntegerShaped() {
			a.enqueueFieldLoads(s, push)
		}
		return changed

	case *ir.LoadField:
		return a.transferLoadField(s, inFact, outFact, outAt)

	case *ir.StoreArray:
		changed := outFact.CopyFrom(inFact)
		if changed && s.RHS.IsIntegerShaped() {
			for _, load := range a.idx.loadArrays[s.Base] {
				push(a.idx.stmtNode[load])
			}
		}
		return changed

	case *ir.LoadArray:
		return a.transferLoadArray(s, inFact, outFact, outAt)

	default:
		return transferAssignLike(s, inFact, outFact)
	}
}

func (a *Inter) enqueueFieldLoads(s *ir.StoreField, push func(cfg.Node)) {
	if s.Static {
		for _, load := range a.idx.loadStaticFields[s.Field] {
			push(a.idx.stmtNode[load])
		}
		return
	}
	for _, load := range a.idx.loadInstanceFields[s.Base] {
		if load.Field == s.Field {
			push(a.idx.stmtNode[load])
		}
	}
}

func (a *Inter) transferLoadField(s *ir.LoadField, inFact, outFact *lattice.CPFact, outAt func(cfg.Node) dataflow.Fact) bool {
	inCopy := inFact.Copy()
	value := lattice.Undef
	defined := false

	record := func(stores []*ir.StoreField) {
		for _, store := range stores {
			if store.Field != s.Field {
				continue
			}
			defined = true
			storeOut := FactOf(outAt(a.idx.stmtNode[store]))
			value = lattice.MeetValue(value, storeOut.Get(store.RHS))
		}
	}
	if s.Static {
		record(a.idx.storeStaticFields[s.Field])
	} else {
		record(a.idx.storeInstanceFields[s.Base])
	}

	if defined {
		inCopy.Update(s.LHS, value)
	}
	return outFact.CopyFrom(inCopy)
}

func (a *Inter) transferLoadArray(s *ir.LoadArray, inFact, outFact *lattice.CPFact, outAt func(cfg.Node) dataflow.Fact) bool {
	inCopy := inFact.Copy()
	idxVal := inFact.Get(s.Index)
	value := lattice.Undef
	defined := false

	for _, store := range a.idx.storeArrays[s.Base] {
		storeOut := FactOf(outAt(a.idx.stmtNode[store]))
		if !indicesMayEqual(idxVal, storeOut.Get(store.Index)) {
			continue
		}
		defined = true
		value = lattice.MeetValue(value, storeOut.Get(store.RHS))
	}

	if defined {
		inCopy.Update(s.LHS, value)
	}
	return outFact.CopyFrom(inCopy)
}

// indicesMayEqual implements the array-index comparison: an UNDEF
// index (not yet observed) never matches anything, two distinct known
// constants never match, and everything else (NAC on either side, or two
// equal constants) may.
func indicesMayEqual(a, b lattice.Value) bool {
	if a.IsUndef() || b.IsUndef() {
		return false
	}
	if a.IsConst() && b.IsConst() {
		return a.ConstValue() == b.ConstValue()
	}
	return true
}
