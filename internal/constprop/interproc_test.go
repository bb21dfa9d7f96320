package constprop_test

import (
	"testing"

	"github.com/1homsi/goflow/internal/callgraph"
	"github.com/1homsi/goflow/internal/constprop"
	"github.com/1homsi/goflow/internal/context"
	"github.com/1homsi/goflow/internal/icfg"
	"github.com/1homsi/goflow/internal/interproc"
	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/ir/testprog"
	"github.com/1homsi/goflow/internal/pta"
)

// TestInterPropagatesConstantThroughCall confirms a constant argument flows
// into a callee's parameter via the Call edge and the callee's return
// value flows back into the caller's result variable via the Return edge.
func TestInterPropagatesConstantThroughCall(t *testing.T) {
	const calleeM = "Util.identity"
	p := testprog.V(calleeM, "p", testprog.IntType)
	callee := testprog.Linear("Util", "identity", []ir.Var{p}, []ir.Stmt{&ir.Return{Vars: []ir.Var{p}}}, []ir.Var{p})

	const callerM = "Main.main"
	x := testprog.V(callerM, "x", testprog.IntType)
	r := testprog.V(callerM, "r", testprog.IntType)
	call := &ir.Invoke{
		Result: &r,
		Kind:   ir.STATIC,
		Method: ir.MethodRef{Owner: "Util", Name: "identity"},
		Args:   []ir.Var{x},
	}
	after := &ir.Other{Note: "after"}
	main := &ir.Method{
		Class: "Main", Name: "main",
		Stmts: []ir.Stmt{
			&ir.Assign{LHS: x, RHS: ir.IntLiteral{Value: 7}},
			call,
			after,
		},
		Edges: []ir.CFGEdge{{From: 0, To: 1}, {From: 1, To: 2}},
	}

	hierarchy := ir.NewSimpleHierarchy()
	hierarchy.AddMethod(callee)
	hierarchy.AddMethod(main)

	cg := callgraph.Build(main, hierarchy)
	g := icfg.Build(cg)

	types := &ir.SimpleTypes{Hierarchy: hierarchy}
	solver := pta.NewSolver(hierarchy, types, pta.NewAllocationSiteHeap(), context.CI())
	ptaResult := solver.Solve(main)

	inter := constprop.NewInter(g, ptaResult)
	res := interproc.Solve(g, g.Entry(main), inter)

	afterNode := g.CFG(main).Nodes()[3] // Entry, stmt0 (x=7), stmt1 (call), stmt2 (after)
	fact := constprop.FactOf(res.Out[afterNode])
	if got := fact.Get(r); !got.IsConst() || got.ConstValue() != 7 {
		t.Fatalf("r after call = %v, want Const(7)", got)
	}
}

// TestInterFieldStoreLoadAcrossAlias confirms a field store reaches an
// aliased load in the same method through the may-alias index, not just
// ordinary predecessor flow.
func TestInterFieldStoreLoadAcrossAlias(t *testing.T) {
	const mainM = "Main.main"
	holderType := testprog.ObjType("Holder")
	field := ir.Field{Owner: "Holder", Name: "n", Type: testprog.IntType}

	h := testprog.V(mainM, "h", holderType)
	y := testprog.V(mainM, "y", testprog.IntType)
	z := testprog.V(mainM, "z", testprog.IntType)

	stmts := []ir.Stmt{
		&ir.New{LHS: h, Type: holderType},
		&ir.Assign{LHS: y, RHS: ir.IntLiteral{Value: 9}},
		&ir.StoreField{Base: h, Field: field, RHS: y},
		&ir.LoadField{LHS: z, Base: h, Field: field},
	}
	main := testprog.Linear("Main", "main", nil, stmts, nil)

	hierarchy := ir.NewSimpleHierarchy()
	types := &ir.SimpleTypes{Hierarchy: hierarchy}

	cg := callgraph.Build(main, hierarchy)
	g := icfg.Build(cg)

	solver := pta.NewSolver(hierarchy, types, pta.NewAllocationSiteHeap(), context.CI())
	ptaResult := solver.Solve(main)

	inter := constprop.NewInter(g, ptaResult)
	res := interproc.Solve(g, g.Entry(main), inter)

	exitFact := constprop.FactOf(res.Out[g.CFG(main).Exit()])
	if got := exitFact.Get(z); !got.IsConst() || got.ConstValue() != 9 {
		t.Fatalf("z at exit = %v, want Const(9)", got)
	}
}
