package deadcode

import (
	"github.com/1homsi/goflow/internal/cfg"
	"github.com/1homsi/goflow/internal/dataflow"
	"github.com/1homsi/goflow/internal/ir"
)

// liveFact is a live-variable set, the dataflow.Fact this package's own
// instantiation (Live) propagates: the IR + class hierarchy out-of-scope
// note only excuses the core from building a real live-variable
// analysis out of thin air, not from needing one — the dead-code client
// consumes it, so it lives here rather than as a separate package.
type liveFact struct{ vars map[ir.Var]bool }

func newLiveFact() liveFact { return liveFact{vars: make(map[ir.Var]bool)} }

func (f liveFact) Copy() dataflow.Fact {
	cp := make(map[ir.Var]bool, len(f.vars))
	for v := range f.vars {
		cp[v] = true
	}
	return liveFact{vars: cp}
}

func (f liveFact) CopyFrom(other dataflow.Fact) bool {
	o := other.(liveFact)
	if sameVarSet(f.vars, o.vars) {
		return false
	}
	for v := range f.vars {
		delete(f.vars, v)
	}
	for v := range o.vars {
		f.vars[v] = true
	}
	return true
}

func sameVarSet(a, b map[ir.Var]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}

// IsLive reports whether v is in the live-variable fact produced by Live
// (e.g. live.Out[node] from a dataflow.Result returned by Liveness).
func IsLive(fact dataflow.Fact, v ir.Var) bool {
	return fact.(liveFact).vars[v]
}

// Live is the live-variable analysis: a backward may-analysis where
// IN(n) = use(n) ∪ (OUT(n) - def(n)), the textbook dual of constant
// propagation's forward
// constant propagation.
type Live struct{}

var _ dataflow.Analysis = Live{}

func (Live) IsForward() bool { return false }

func (Live) NewInitialFact() dataflow.Fact { return newLiveFact() }

// NewBoundaryFact seeds nothing live past the exit.
func (Live) NewBoundaryFact(g *cfg.Graph) dataflow.Fact { return newLiveFact() }

func (Live) Meet(a, b dataflow.Fact) dataflow.Fact {
	fa, fb := a.(liveFact), b.(liveFact)
	out := newLiveFact()
	for v := range fa.vars {
		out.vars[v] = true
	}
	for v := range fb.vars {
		out.vars[v] = true
	}
	return out
}

// Transfer computes IN(n) from OUT(n). For a backward analysis the solver
// passes OUT(n) as in and the IN(n) receptacle as out (the mirrored
// direction), so this reads in as OUT and writes out as IN.
func (Live) Transfer(n cfg.Node, in, out dataflow.Fact) bool {
	outFact := in.(liveFact)
	def, hasDef, uses := defUse(n.Stmt())

	next := make(map[ir.Var]bool, len(outFact.vars)+len(uses))
	for v := range outFact.vars {
		if hasDef && v == def {
			continue
		}
		next[v] = true
	}
	for _, v := range uses {
		next[v] = true
	}
	return out.(liveFact).CopyFrom(liveFact{vars: next})
}

// Liveness runs Live to a fixpoint over g.
func Liveness(g *cfg.Graph) *dataflow.Result { return dataflow.Solve(g, Live{}) }

// defUse returns the variable stmt defines (if any) and the variables it
// reads, per the operand shape of each statement kind.
func defUse(stmt ir.Stmt) (def ir.Var, hasDef bool, uses []ir.Var) {
	switch s := stmt.(type) {
	case *ir.New:
		return s.LHS, true, nil

	case *ir.Copy:
		return s.LHS, true, []ir.Var{s.RHS}

	case *ir.LoadField:
		if s.Static {
			return s.LHS, true, nil
		}
		return s.LHS, true, []ir.Var{s.Base}

	case *ir.StoreField:
		if s.Static {
			return ir.Var{}, false, []ir.Var{s.RHS}
		}
		return ir.Var{}, false, []ir.Var{s.Base, s.RHS}

	case *ir.LoadArray:
		return s.LHS, true, []ir.Var{s.Base, s.Index}

	case *ir.StoreArray:
		return ir.Var{}, false, []ir.Var{s.Base, s.Index, s.RHS}

	case *ir.Invoke:
		var uses []ir.Var
		if s.Receiver != nil {
			uses = append(uses, *s.Receiver)
		}
		uses = append(uses, s.Args...)
		if s.Result != nil {
			return *s.Result, true, uses
		}
		return ir.Var{}, false, uses

	case *ir.If:
		return ir.Var{}, false, exprVars(s.Cond)

	case *ir.Switch:
		return ir.Var{}, false, []ir.Var{s.Key}

	case *ir.Assign:
		return s.LHS, true, exprVars(s.RHS)

	case *ir.Return:
		return ir.Var{}, false, s.Vars

	default:
		return ir.Var{}, false, nil
	}
}

func exprVars(e ir.Expr) []ir.Var {
	switch ex := e.(type) {
	case ir.VarExpr:
		return []ir.Var{ex.V}
	case ir.BinaryExpr:
		return []ir.Var{ex.X, ex.Y}
	default:
		return nil
	}
}
