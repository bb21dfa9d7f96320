// Package taint is a source/sink/transfer taint-flow analysis layered
// on the pointer analysis as a Plugin, rather than a
// standalone pass over the IR. Its three hooks run inline with pointer
// propagation so a taint introduced mid-solve still reaches every sink a
// later propagation discovers.
package taint

import (
	"sort"

	"github.com/1homsi/goflow/internal/context"
	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/pta"
)

// Index encodes a transfer/sink operand: RESULT and BASE are
// negative sentinels, and a non-negative value is an argument position.
const (
	RESULT = -2
	BASE   = -1
)

// SourceRule seeds a tainted result of the given logical Type whenever the
// configured Method is called.
type SourceRule struct {
	Method string
	Type   string
}

// SinkRule records a (sink, call-site) pair for every reachable call to
// Method, to be checked against argument Index's points-to set at OnFinish.
type SinkRule struct {
	Method string
	Index  int
}

// TransferRule re-types a taint flowing from operand From to operand To
// across a call to Method, without the taint having to flow through the
// callee's body (e.g. a library method that returns a tainted wrapper
// around its tainted argument).
type TransferRule struct {
	Method   string
	From, To int
	Type     string
}

// Config is the taint configuration document of
type Config struct {
	Sources   []SourceRule
	Sinks     []SinkRule
	Transfers []TransferRule
}

// TaintFlow witnesses a tainted value flowing from a source call to a sink
// call's argument.
type TaintFlow struct {
	Source *ir.Invoke
	Sink   *ir.Invoke
	Index  int
}

type taintKey struct {
	source *ir.Invoke
	typ    string
}

type transferTarget struct {
	to     pta.CSVar
	toType string
}

type sinkHit struct {
	rule  SinkRule
	cs    pta.CSCallSite
	order int
}

// Analysis is the taint-flow analysis, attached to a pta.Solver as a Plugin.
type Analysis struct {
	Config Config

	objs        map[taintKey]*ir.Obj
	taintSource map[*ir.Obj]*ir.Invoke
	sourceOrder map[*ir.Invoke]int
	nextOrder   int

	transferSuccs map[pta.CSVar][]transferTarget
	sinkHits      []sinkHit

	// Flows accumulates OnFinish's result; read it once Solve returns.
	Flows []TaintFlow
}

var _ pta.Plugin = (*Analysis)(nil)

// New returns a taint Analysis ready to attach to a pta.Solver's Plugins.
func New(cfg Config) *Analysis {
	return &Analysis{
		Config:        cfg,
		objs:          make(map[taintKey]*ir.Obj),
		taintSource:   make(map[*ir.Obj]*ir.Invoke),
		sourceOrder:   make(map[*ir.Invoke]int),
		transferSuccs: make(map[pta.CSVar][]transferTarget),
	}
}

// resolveVar maps a transfer/sink index to the operand Var at call site inv
// (BASE=-1, RESULT=-2, 0..n-1 are arguments), or false if inv has
// no such operand (e.g. RESULT on a discarded call, BASE on a static call).
func resolveVar(inv *ir.Invoke, index int) (ir.Var, bool) {
	switch {
	case index == BASE:
		if inv.Receiver == nil {
			return ir.Var{}, false
		}
		return *inv.Receiver, true
	case index == RESULT:
		if inv.Result == nil {
			return ir.Var{}, false
		}
		return *inv.Result, true
	case index >= 0 && index < len(inv.Args):
		return inv.Args[index], true
	default:
		return ir.Var{}, false
	}
}

// taintObj interns the taint object identified by (source, typ): two taint
// objects are equal iff both components are (the taintOf).
// Retyping reuses source, so a value that flows through several transfer
// points keeps the identity of its original source call.
func (a *Analysis) taintObj(source *ir.Invoke, typ string) pta.CSObj {
	key := taintKey{source, typ}
	o, ok := a.objs[key]
	if !ok {
		o = &ir.Obj{Type: ir.Type{Name: typ, Reference: true}}
		a.objs[key] = o
		a.taintSource[o] = source
		if _, seen := a.sourceOrder[source]; !seen {
			a.sourceOrder[source] = a.nextOrder
			a.nextOrder++
		}
	}
	return pta.CSObj{Ctx: context.Empty, Obj: o}
}

func (a *Analysis) isTaint(o pta.CSObj) bool {
	_, ok := a.taintSource[o.Obj]
	return ok
}

// OnNewCallSite implements the three reachability-time checks:
// seed a source's result, record a sink's call site, and both wire up and
// immediately fire a transfer edge against the from-operand's current PTS.
func (a *Analysis) OnNewCallSite(s *pta.Solver, csCS pta.CSCallSite) {
	sig := csCS.CS.Method.String()

	for _, src := range a.Config.Sources {
		if src.Method != sig {
			continue
		}
		resultVar, ok := resolveVar(csCS.CS, RESULT)
		if !ok {
			continue
		}
		s.Seed(pta.CSVar{Ctx: csCS.Ctx, Var: resultVar}, a.taintObj(csCS.CS, src.Type))
	}

	for _, sink := range a.Config.Sinks {
		if sink.Method != sig {
			continue
		}
		a.sinkHits = append(a.sinkHits, sinkHit{rule: sink, cs: csCS, order: len(a.sinkHits)})
	}

	for _, tr := range a.Config.Transfers {
		if tr.Method != sig {
			continue
		}
		fromVar, ok := resolveVar(csCS.CS, tr.From)
		if !ok {
			continue
		}
		toVar, ok := resolveVar(csCS.CS, tr.To)
		if !ok {
			continue
		}
		from := pta.CSVar{Ctx: csCS.Ctx, Var: fromVar}
		to := pta.CSVar{Ctx: csCS.Ctx, Var: toVar}
		a.transferSuccs[from] = append(a.transferSuccs[from], transferTarget{to: to, toType: tr.Type})

		for _, obj := range s.PTS(from) {
			if !a.isTaint(obj) {
				continue
			}
			s.Seed(to, a.taintObj(a.taintSource[obj.Obj], tr.Type))
		}
	}
}

// OnPointerPropagated implements the second transfer trigger: a
// from-operand that only later acquires taint still reaches every
// transfer's to-operand, via the delta the pointer analysis hands plugins
// (never the full PTS, Open Question (c)).
func (a *Analysis) OnPointerPropagated(s *pta.Solver, p pta.Pointer, delta *pta.PTS) {
	csVar, ok := p.(pta.CSVar)
	if !ok {
		return
	}
	targets := a.transferSuccs[csVar]
	if len(targets) == 0 {
		return
	}
	for _, obj := range s.Resolve(delta) {
		if !a.isTaint(obj) {
			continue
		}
		source := a.taintSource[obj.Obj]
		for _, target := range targets {
			s.Seed(target.to, a.taintObj(source, target.toType))
		}
	}
}

// OnFinish implements the collection step: for every recorded sink
// hit, read the configured argument's points-to set in that call site's
// context and emit one TaintFlow per tainted object reaching it, ordered
// deterministically by (source-discovery-order, sink-discovery-order,
// index).
func (a *Analysis) OnFinish(s *pta.Solver) {
	for _, hit := range a.sinkHits {
		argVar, ok := resolveVar(hit.cs.CS, hit.rule.Index)
		if !ok {
			continue
		}
		for _, obj := range s.PTS(pta.CSVar{Ctx: hit.cs.Ctx, Var: argVar}) {
			source, ok := a.taintSource[obj.Obj]
			if !ok {
				continue
			}
			a.Flows = append(a.Flows, TaintFlow{Source: source, Sink: hit.cs.CS, Index: hit.rule.Index})
		}
	}

	sinkOrder := make(map[*ir.Invoke]int, len(a.sinkHits))
	for _, hit := range a.sinkHits {
		sinkOrder[hit.cs.CS] = hit.order
	}
	sort.SliceStable(a.Flows, func(i, j int) bool {
		fi, fj := a.Flows[i], a.Flows[j]
		if so, sj := a.sourceOrder[fi.Source], a.sourceOrder[fj.Source]; so != sj {
			return so < sj
		}
		if ko, kj := sinkOrder[fi.Sink], sinkOrder[fj.Sink]; ko != kj {
			return ko < kj
		}
		return fi.Index < fj.Index
	})
}
