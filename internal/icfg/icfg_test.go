package icfg

import (
	"testing"

	"github.com/1homsi/goflow/internal/callgraph"
	"github.com/1homsi/goflow/internal/ir"
)

func TestBuildWiresCallReturnEdges(t *testing.T) {
	h := ir.NewSimpleHierarchy()
	callee := &ir.Method{Class: "A", Name: "callee", Stmts: []ir.Stmt{&ir.Other{Note: "body"}}}
	h.AddMethod(callee)

	call := &ir.Invoke{Kind: ir.STATIC, Method: ir.MethodRef{Owner: "A", Name: "callee"}}
	after := &ir.Other{Note: "after"}
	caller := &ir.Method{
		Class: "A", Name: "caller",
		Stmts: []ir.Stmt{call, after},
		Edges: []ir.CFGEdge{{From: 0, To: 1}},
	}
	h.AddMethod(caller)

	cg := callgraph.Build(caller, h)
	g := Build(cg)

	callNode := g.CFG(caller).Nodes()[1] // Entry, then stmt 0 (call)
	succs := g.Succs(callNode)
	if len(succs) != 2 {
		t.Fatalf("call-site succs = %v, want 2 (callee entry + call-to-return)", succs)
	}

	calleeEntry := g.CFG(callee).Entry()
	in := g.InEdges(g.CFG(callee).Succs(calleeEntry)[0])
	foundCall := false
	for _, e := range in {
		if e.Kind == Call {
			foundCall = true
		}
	}
	if !foundCall {
		t.Errorf("callee's first statement has no inbound Call edge: %v", in)
	}

	afterNode := g.CFG(caller).Nodes()[2] // stmt index 1
	inAfter := g.InEdges(afterNode)
	var kinds []EdgeKind
	for _, e := range inAfter {
		kinds = append(kinds, e.Kind)
	}
	hasReturn, hasC2R := false, false
	for _, k := range kinds {
		if k == Return {
			hasReturn = true
		}
		if k == CallToReturn {
			hasC2R = true
		}
	}
	if !hasReturn || !hasC2R {
		t.Errorf("return-site inbound kinds = %v, want both Return and CallToReturn", kinds)
	}
}
