// Package constprop instantiates the generic worklist solver for integer
// constant propagation, and builds the alias-aware inter-procedural
// extension of it on top of the inter-procedural ICFG solver.
package constprop

import (
	"github.com/1homsi/goflow/internal/cfg"
	"github.com/1homsi/goflow/internal/dataflow"
	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/lattice"
)

// cpFact adapts *lattice.CPFact to the dataflow.Fact interface so the
// generic solver never has to know about the constant-propagation lattice.
type cpFact struct{ f *lattice.CPFact }

func (c cpFact) Copy() dataflow.Fact          { return cpFact{c.f.Copy()} }
func (c cpFact) CopyFrom(o dataflow.Fact) bool { return c.f.CopyFrom(o.(cpFact).f) }

// FactOf unwraps a dataflow.Fact produced by Intra back into the concrete
// *lattice.CPFact, for callers (the deadcode client, report encoders,
// tests) that need to read variable bindings out of a dataflow.Result.
func FactOf(f dataflow.Fact) *lattice.CPFact { return f.(cpFact).f }

// Intra is the intra-procedural constant-propagation analysis,
// instantiated against a single Method's CFG.
type Intra struct{}

var _ dataflow.Analysis = Intra{}

func (Intra) IsForward() bool { return true }

func (Intra) NewInitialFact() dataflow.Fact { return cpFact{lattice.NewCPFact()} }

// NewBoundaryFact sets every integer-shaped parameter to NAC:
// a parameter's value is unknown at method entry, unlike a plain local
// variable, which starts at UNDEF (no observed value at all).
func (Intra) NewBoundaryFact(g *cfg.Graph) dataflow.Fact {
	fact := lattice.NewCPFact()
	for _, p := range g.Method.Params {
		if p.IsIntegerShaped() {
			fact.Update(p, lattice.NAC)
		}
	}
	return cpFact{fact}
}

func (Intra) Meet(a, b dataflow.Fact) dataflow.Fact {
	return cpFact{lattice.Meet(a.(cpFact).f, b.(cpFact).f)}
}

// Transfer implements the node transfer: for `x = rhs` it replaces
// x's binding with eval(rhs, in) when x is integer-shaped and otherwise
// passes the fact through unchanged.
func (Intra) Transfer(n cfg.Node, in, out dataflow.Fact) bool {
	return transferAssignLike(n.Stmt(), in.(cpFact).f, out.(cpFact).f)
}

// transferAssignLike is the intra-procedural node transfer, shared with
// this package's inter-procedural extension for every statement kind that
// falls through to the ordinary intra-procedural rule rather than one of
// the call-specific cases.
func transferAssignLike(stmt ir.Stmt, inFact, outFact *lattice.CPFact) bool {
	var lhs ir.Var
	var newVal lattice.Value
	assigns := false

	switch s := stmt.(type) {
	case *ir.Assign:
		if s.LHS.IsIntegerShaped() {
			lhs, newVal, assigns = s.LHS, Eval(s.RHS, inFact), true
		}
	case *ir.Copy:
		if s.LHS.IsIntegerShaped() {
			lhs, newVal, assigns = s.LHS, inFact.Get(s.RHS), true
		}
	}

	changed := outFact.CopyFrom(inFact)
	if assigns {
		if outFact.Update(lhs, newVal) {
			changed = true
		}
	}
	return changed
}

// Eval evaluates an Expr under fact in, per the eval table.
func Eval(e ir.Expr, in *lattice.CPFact) lattice.Value {
	switch expr := e.(type) {
	case ir.IntLiteral:
		return lattice.Const(expr.Value)
	case ir.VarExpr:
		return in.Get(expr.V)
	case ir.BinaryExpr:
		return evalBinary(expr.Op, in.Get(expr.X), in.Get(expr.Y))
	default:
		return lattice.NAC
	}
}

func evalBinary(op ir.BinOp, x, y lattice.Value) lattice.Value {
	if (op == ir.DIV || op == ir.REM) && y.IsConst() && y.ConstValue() == 0 {
		return lattice.NAC
	}
	if x.IsConst() && y.IsConst() {
		return lattice.Const(applyOp(op, x.ConstValue(), y.ConstValue()))
	}
	if x.IsNAC() || y.IsNAC() {
		return lattice.NAC
	}
	return lattice.Undef
}

// applyOp computes the usual two's-complement 32-bit integer operation;
// shift counts are masked to 5 bits.
func applyOp(op ir.BinOp, a, b int32) int32 {
	switch op {
	case ir.ADD:
		return a + b
	case ir.SUB:
		return a - b
	case ir.MUL:
		return a * b
	case ir.DIV:
		return a / b
	case ir.REM:
		return a % b
	case ir.AND:
		return a & b
	case ir.OR:
		return a | b
	case ir.XOR:
		return a ^ b
	case ir.SHL:
		return a << uint32(b&31)
	case ir.SHR:
		return a >> uint32(b&31)
	case ir.USHR:
		return int32(uint32(a) >> uint32(b&31))
	default:
		return 0
	}
}
