package cfg

import (
	"testing"

	"github.com/1homsi/goflow/internal/ir"
)

func straightLine() *ir.Method {
	return &ir.Method{
		Stmts: []ir.Stmt{&ir.Other{Note: "a"}, &ir.Other{Note: "b"}},
		Edges: []ir.CFGEdge{{From: 0, To: 1}},
	}
}

func TestLinearSuccsPreds(t *testing.T) {
	g := New(straightLine())
	entry := g.Entry()
	succ := g.Succs(entry)
	if len(succ) != 1 || succ[0].Index != 0 {
		t.Fatalf("Entry succs = %v, want [0]", succ)
	}
	last := Node{Method: g.Method, Index: 1}
	succ = g.Succs(last)
	if len(succ) != 1 || !succ[0].IsExit() {
		t.Fatalf("last stmt succs = %v, want [exit]", succ)
	}
	pred := g.Preds(g.Exit())
	if len(pred) != 1 || pred[0].Index != 1 {
		t.Fatalf("Exit preds = %v, want [1]", pred)
	}
}

func TestBranching(t *testing.T) {
	m := &ir.Method{
		Stmts: []ir.Stmt{&ir.If{}, &ir.Other{Note: "then"}, &ir.Other{Note: "else"}},
		Edges: []ir.CFGEdge{
			{From: 0, To: 1, Kind: ir.IfTrue},
			{From: 0, To: 2, Kind: ir.IfFalse},
		},
	}
	g := New(m)
	succ := g.Succs(Node{Method: m, Index: 0})
	if len(succ) != 2 {
		t.Fatalf("if-stmt succs = %v, want 2 nodes", succ)
	}
	// Both branches have no outgoing edge, so both implicitly flow to Exit.
	for _, idx := range []int{1, 2} {
		s := g.Succs(Node{Method: m, Index: idx})
		if len(s) != 1 || !s[0].IsExit() {
			t.Errorf("node %d succs = %v, want [exit]", idx, s)
		}
	}
	preds := g.Preds(g.Exit())
	if len(preds) != 2 {
		t.Fatalf("exit preds = %v, want 2", preds)
	}
}
