package callgraph

import (
	"testing"

	"github.com/1homsi/goflow/internal/ir"
)

func method(class, name, sig string, abstract bool, stmts ...ir.Stmt) *ir.Method {
	return &ir.Method{Class: class, Name: name, Sig: sig, Abstract: abstract, Stmts: stmts}
}

// Animal.speak() is abstract; Dog and Cat override it. main() calls
// a.speak() virtually; CHA must resolve to both overrides, never Animal's.
func TestBuildVirtualDispatch(t *testing.T) {
	h := ir.NewSimpleHierarchy()
	animalSpeak := method("Animal", "speak", "()V", true)
	dogSpeak := method("Dog", "speak", "()V", false)
	catSpeak := method("Cat", "speak", "()V", false)
	h.AddMethod(animalSpeak)
	h.AddMethod(dogSpeak)
	h.AddMethod(catSpeak)
	h.AddClass("Dog", "Animal")
	h.AddClass("Cat", "Animal")

	call := &ir.Invoke{Kind: ir.VIRTUAL, Method: ir.MethodRef{Owner: "Animal", Name: "speak", Sig: "()V"}}
	main := method("Main", "main", "()V", false, call)
	h.AddMethod(main)

	g := Build(main, h)

	if !g.Reachable(dogSpeak) || !g.Reachable(catSpeak) {
		t.Fatalf("expected both Dog.speak and Cat.speak reachable")
	}
	if g.Reachable(animalSpeak) {
		t.Fatalf("abstract Animal.speak must not be reachable as a callee")
	}
	if len(g.OutEdges(main)) != 2 {
		t.Fatalf("main has %d out-edges, want 2", len(g.OutEdges(main)))
	}
}

// Shape is an interface implemented by Circle and Square; an interface call
// must resolve through Implementers, not Subclasses.
func TestBuildInterfaceDispatch(t *testing.T) {
	h := ir.NewSimpleHierarchy()
	circleArea := method("Circle", "area", "()I", false)
	squareArea := method("Square", "area", "()I", false)
	h.AddMethod(circleArea)
	h.AddMethod(squareArea)
	h.AddInterface("Circle", "Shape")
	h.AddInterface("Square", "Shape")

	call := &ir.Invoke{Kind: ir.INTERFACE, Method: ir.MethodRef{Owner: "Shape", Name: "area", Sig: "()I"}}
	main := method("Main", "main", "()V", false, call)
	h.AddMethod(main)

	g := Build(main, h)
	if !g.Reachable(circleArea) || !g.Reachable(squareArea) {
		t.Fatalf("expected both implementers reachable")
	}
}

// Polygon extends Shape, and Triangle implements Polygon (not Shape
// directly); a call against Shape must still resolve to Triangle's
// override by walking the sub-interface closure down to Polygon first.
func TestBuildInterfaceDispatchThroughSubInterface(t *testing.T) {
	h := ir.NewSimpleHierarchy()
	triangleArea := method("Triangle", "area", "()I", false)
	h.AddMethod(triangleArea)
	h.AddInterface("Triangle", "Polygon")
	h.AddSubInterface("Polygon", "Shape")

	call := &ir.Invoke{Kind: ir.INTERFACE, Method: ir.MethodRef{Owner: "Shape", Name: "area", Sig: "()I"}}
	main := method("Main", "main", "()V", false, call)
	h.AddMethod(main)

	g := Build(main, h)
	if !g.Reachable(triangleArea) {
		t.Fatalf("expected Triangle.area reachable through the Polygon sub-interface")
	}
	edges := g.OutEdges(main)
	if len(edges) != 1 || edges[0].Callee != triangleArea {
		t.Fatalf("edges = %v, want single edge to Triangle.area", edges)
	}
}

// A static call has exactly one target, resolved along the superclass
// chain when not declared directly on the owner.
func TestBuildStaticDispatchInheritsFromSuper(t *testing.T) {
	h := ir.NewSimpleHierarchy()
	base := method("Base", "util", "()V", false)
	h.AddMethod(base)
	h.AddClass("Derived", "Base")

	call := &ir.Invoke{Kind: ir.STATIC, Method: ir.MethodRef{Owner: "Derived", Name: "util", Sig: "()V"}}
	main := method("Main", "main", "()V", false, call)
	h.AddMethod(main)

	g := Build(main, h)
	if !g.Reachable(base) {
		t.Fatalf("expected Base.util reachable via superclass dispatch")
	}
	edges := g.OutEdges(main)
	if len(edges) != 1 || edges[0].Callee != base {
		t.Fatalf("edges = %v, want single edge to Base.util", edges)
	}
}
