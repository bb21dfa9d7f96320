package context

import (
	"testing"

	"github.com/1homsi/goflow/internal/ir"
)

func TestCIAlwaysEmpty(t *testing.T) {
	sel := CI()
	cs := &ir.Invoke{Method: ir.MethodRef{Owner: "A", Name: "m"}}
	if got := sel.SelectContext(Empty, cs, nil); got != Empty {
		t.Errorf("CI SelectContext = %v, want Empty", got)
	}
}

func TestOneCallContextLength(t *testing.T) {
	sel := Call(1)
	cs1 := &ir.Invoke{Method: ir.MethodRef{Owner: "A", Name: "m1"}}
	cs2 := &ir.Invoke{Method: ir.MethodRef{Owner: "A", Name: "m2"}}

	c1 := sel.SelectContext(Empty, cs1, nil)
	if len(c1.Elems()) != 1 {
		t.Fatalf("1-call context len = %d, want 1", len(c1.Elems()))
	}
	c2 := sel.SelectContext(c1, cs2, nil)
	if len(c2.Elems()) != 1 {
		t.Fatalf("1-call truncation failed: len = %d, want 1", len(c2.Elems()))
	}
}

func TestTwoCallContextTruncates(t *testing.T) {
	sel := Call(2)
	cs1 := &ir.Invoke{Method: ir.MethodRef{Owner: "A", Name: "m1"}}
	cs2 := &ir.Invoke{Method: ir.MethodRef{Owner: "A", Name: "m2"}}
	cs3 := &ir.Invoke{Method: ir.MethodRef{Owner: "A", Name: "m3"}}

	c1 := sel.SelectContext(Empty, cs1, nil)
	c2 := sel.SelectContext(c1, cs2, nil)
	if len(c2.Elems()) != 2 {
		t.Fatalf("2-call context len = %d, want 2", len(c2.Elems()))
	}
	c3 := sel.SelectContext(c2, cs3, nil)
	if len(c3.Elems()) != 2 {
		t.Fatalf("2-call context after truncation len = %d, want 2", len(c3.Elems()))
	}
}

func TestInterningIsStable(t *testing.T) {
	sel := Call(1)
	cs := &ir.Invoke{Method: ir.MethodRef{Owner: "A", Name: "m"}}
	a := sel.SelectContext(Empty, cs, nil)
	b := sel.SelectContext(Empty, cs, nil)
	if a != b {
		t.Errorf("equal context builds produced distinct pointers: %p != %p", a, b)
	}
}

func TestOneObjStaticFallsBackToCallerContext(t *testing.T) {
	sel := Obj(1)
	cs := &ir.Invoke{Method: ir.MethodRef{Owner: "A", Name: "m"}}
	callSel := Call(1)
	callerCtx := callSel.SelectContext(Empty, cs, nil)
	got := sel.SelectContext(callerCtx, cs, nil)
	if got != callerCtx {
		t.Errorf("1-obj static call context = %v, want caller's own context %v", got, callerCtx)
	}
}
