package ir

import "testing"

func TestVarString(t *testing.T) {
	tests := []struct {
		v    Var
		want string
	}{
		{Var{Name: "x"}, "x"},
		{Var{Method: "C.m", Name: "x"}, "C.m#x"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("Var.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMethodIndex(t *testing.T) {
	intType := Type{Name: "int", Integer: true}
	objType := Type{Name: "C", Reference: true}
	x := Var{Method: "m", Name: "x", Type: objType}
	y := Var{Method: "m", Name: "y", Type: intType}

	field := Field{Owner: "C", Name: "f", Type: intType}
	sf := &StoreField{Base: x, Field: field, RHS: y}
	lf := &LoadField{LHS: y, Base: x, Field: field}

	m := &Method{Class: "C", Name: "m", Stmts: []Stmt{sf, lf}}
	uses := m.UsesOf(x)
	if len(uses.StoreFields) != 1 || uses.StoreFields[0] != sf {
		t.Errorf("expected x's store-fields to contain sf, got %v", uses.StoreFields)
	}
	if len(uses.LoadFields) != 1 || uses.LoadFields[0] != lf {
		t.Errorf("expected x's load-fields to contain lf, got %v", uses.LoadFields)
	}
}

func TestMethodSuccessorsPredecessors(t *testing.T) {
	m := &Method{
		Stmts: []Stmt{&Other{Note: "a"}, &Other{Note: "b"}, &Other{Note: "c"}},
		Edges: []CFGEdge{
			{From: 0, To: 1, Kind: IfTrue},
			{From: 0, To: 2, Kind: IfFalse},
		},
	}
	succ := m.Successors(0)
	if len(succ) != 2 {
		t.Fatalf("expected 2 successors of node 0, got %d", len(succ))
	}
	pred := m.Predecessors(2)
	if len(pred) != 1 || pred[0] != 0 {
		t.Errorf("expected node 2's only predecessor to be 0, got %v", pred)
	}
}

func TestSimpleHierarchyDispatch(t *testing.T) {
	h := NewSimpleHierarchy()
	h.AddClass("Base", "")
	h.AddClass("Derived", "Base")
	base := &Method{Class: "Base", Name: "run", Sig: "()"}
	h.AddMethod(base)

	if _, ok := h.DeclaredMethod("Derived", "()"); ok {
		t.Error("Derived should not declare run() directly")
	}
	got, ok := h.DeclaredMethod("Base", "()")
	if !ok || got != base {
		t.Error("expected Base to declare run()")
	}
	subs := h.Subclasses("Base")
	if len(subs) != 1 || subs[0] != "Derived" {
		t.Errorf("Subclasses(Base) = %v, want [Derived]", subs)
	}
}

func TestSimpleTypesSubtype(t *testing.T) {
	h := NewSimpleHierarchy()
	h.AddClass("Base", "")
	h.AddClass("Derived", "Base")
	h.AddInterface("Derived", "Runnable")
	ts := &SimpleTypes{Hierarchy: h}

	derived := Type{Name: "Derived", Reference: true}
	base := Type{Name: "Base", Reference: true}
	runnable := Type{Name: "Runnable", Reference: true}

	if !ts.IsSubtype(derived, base) {
		t.Error("Derived should be a subtype of Base")
	}
	if !ts.IsSubtype(derived, runnable) {
		t.Error("Derived should be a subtype of Runnable")
	}
	if ts.IsSubtype(base, derived) {
		t.Error("Base should not be a subtype of Derived")
	}
}
