package dataflow_test

import (
	"testing"

	"github.com/1homsi/goflow/internal/cfg"
	"github.com/1homsi/goflow/internal/constprop"
	"github.com/1homsi/goflow/internal/dataflow"
	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/ir/testprog"
	"github.com/1homsi/goflow/internal/lattice"
)

// TestSolveConstantPropagation exercises the generic solver through its
// constant-propagation instantiation: a straight-line method with an integer param (NAC at entry), a literal
// assignment, a binary op combining the two, and a self-contained constant
// computation.
func TestSolveConstantPropagation(t *testing.T) {
	const method = "Linear.run"
	p := testprog.V(method, "p", testprog.IntType)
	x := testprog.V(method, "x", testprog.IntType)
	y := testprog.V(method, "y", testprog.IntType)
	z := testprog.V(method, "z", testprog.IntType)
	two := testprog.V(method, "two", testprog.IntType)
	w := testprog.V(method, "w", testprog.IntType)

	stmts := []ir.Stmt{
		&ir.Assign{LHS: x, RHS: ir.IntLiteral{Value: 5}},
		&ir.Assign{LHS: y, RHS: ir.BinaryExpr{Op: ir.ADD, X: x, Y: p}},
		&ir.Assign{LHS: z, RHS: ir.IntLiteral{Value: 3}},
		&ir.Assign{LHS: two, RHS: ir.IntLiteral{Value: 2}},
		&ir.Assign{LHS: w, RHS: ir.BinaryExpr{Op: ir.ADD, X: z, Y: two}},
	}
	m := testprog.Linear("Linear", "run", []ir.Var{p}, stmts, nil)
	g := cfg.New(m)

	res := dataflow.Solve(g, constprop.Intra{})

	last := cfg.Node{Method: m, Index: len(stmts) - 1}
	out := constprop.FactOf(res.Out[last])

	if got := out.Get(x); !got.Equal(lattice.Const(5)) {
		t.Errorf("x = %v, want Const(5)", got)
	}
	if got := out.Get(p); !got.Equal(lattice.NAC) {
		t.Errorf("p = %v, want NAC (boundary parameter)", got)
	}
	if got := out.Get(y); !got.Equal(lattice.NAC) {
		t.Errorf("y = %v, want NAC (x + NAC param)", got)
	}
	if got := out.Get(z); !got.Equal(lattice.Const(3)) {
		t.Errorf("z = %v, want Const(3)", got)
	}
	if got := out.Get(w); !got.Equal(lattice.Const(5)) {
		t.Errorf("w = %v, want Const(5)", got)
	}
}

// TestSolveBranchMeetsToNAC confirms a variable assigned two different
// constants on the two arms of a branch meets to NAC at the join point,
// exercising Preds()/Succs() through a non-straight-line CFG.
func TestSolveBranchMeetsToNAC(t *testing.T) {
	const method = "Branch.run"
	cond := testprog.V(method, "cond", testprog.IntType)
	x := testprog.V(method, "x", testprog.IntType)

	m := &ir.Method{
		Class:  "Branch",
		Name:   "run",
		Params: []ir.Var{cond},
		Stmts: []ir.Stmt{
			&ir.If{Cond: ir.VarExpr{V: cond}},
			&ir.Assign{LHS: x, RHS: ir.IntLiteral{Value: 1}},
			&ir.Assign{LHS: x, RHS: ir.IntLiteral{Value: 2}},
			&ir.Other{Note: "join"},
		},
		Edges: []ir.CFGEdge{
			{From: 0, To: 1, Kind: ir.IfTrue},
			{From: 0, To: 2, Kind: ir.IfFalse},
			{From: 1, To: 3},
			{From: 2, To: 3},
		},
	}
	g := cfg.New(m)
	res := dataflow.Solve(g, constprop.Intra{})

	join := cfg.Node{Method: m, Index: 3}
	in := constprop.FactOf(res.In[join])
	if got := in.Get(x); !got.Equal(lattice.NAC) {
		t.Errorf("x at join = %v, want NAC", got)
	}
}
