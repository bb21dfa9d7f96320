package pta_test

import (
	"testing"

	"github.com/1homsi/goflow/internal/context"
	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/ir/testprog"
	"github.com/1homsi/goflow/internal/pta"
)

// TestFieldStoreLoadAliasing exercises New/StoreField/LoadField wiring: a
// Box allocated once, stored into a Holder's field, and read back out,
// must produce the same points-to set at both ends of the field.
func TestFieldStoreLoadAliasing(t *testing.T) {
	const method = "Main.main"
	boxType := testprog.ObjType("Box")
	holderType := testprog.ObjType("Holder")
	field := ir.Field{Owner: "Holder", Name: "b", Type: boxType}

	b1 := testprog.V(method, "b1", boxType)
	h := testprog.V(method, "h", holderType)
	b2 := testprog.V(method, "b2", boxType)

	stmts := []ir.Stmt{
		&ir.New{LHS: b1, Type: boxType},
		&ir.New{LHS: h, Type: holderType},
		&ir.StoreField{Base: h, Field: field, RHS: b1},
		&ir.LoadField{LHS: b2, Base: h, Field: field},
	}
	main := testprog.Linear("Main", "main", nil, stmts, nil)

	hierarchy := ir.NewSimpleHierarchy()
	types := &ir.SimpleTypes{Hierarchy: hierarchy}
	solver := pta.NewSolver(hierarchy, types, pta.NewAllocationSiteHeap(), context.CI())
	result := solver.Solve(main)

	b1Pts := result.PointsTo(pta.CSVar{Ctx: context.Empty, Var: b1})
	b2Pts := result.PointsTo(pta.CSVar{Ctx: context.Empty, Var: b2})
	if len(b1Pts) != 1 || len(b2Pts) != 1 {
		t.Fatalf("pt(b1) = %v, pt(b2) = %v, want exactly one object each", b1Pts, b2Pts)
	}
	if b1Pts[0] != b2Pts[0] {
		t.Fatalf("pt(b1) = %v != pt(b2) = %v, want the same Box object", b1Pts[0], b2Pts[0])
	}
}

// TestVirtualCallDispatchesAndSeedsThis confirms a virtual call on a
// receiver dispatches to the concrete override and flows the receiver
// object into that override's `this`.
func TestVirtualCallDispatchesAndSeedsThis(t *testing.T) {
	const mainM = "Main.main"
	const dogM = "Dog.bark"
	animalType := testprog.ObjType("Animal")
	intType := testprog.IntType

	dogThis := testprog.V(dogM, "this", animalType)
	dogParam := testprog.V(dogM, "volume", intType)
	dog := &ir.Method{
		Class: "Dog", Name: "bark",
		This:   dogThis,
		Params: []ir.Var{dogParam},
		Stmts:  []ir.Stmt{&ir.Other{Note: "bark body"}},
	}

	a := testprog.V(mainM, "a", animalType)
	vol := testprog.V(mainM, "vol", intType)
	recvVar := a
	call := &ir.Invoke{
		Receiver: &recvVar,
		Kind:     ir.VIRTUAL,
		Method:   ir.MethodRef{Owner: "Animal", Name: "bark", Sig: ""},
		Args:     []ir.Var{vol},
	}
	stmts := []ir.Stmt{
		&ir.New{LHS: a, Type: testprog.ObjType("Dog")},
		&ir.Assign{LHS: vol, RHS: ir.IntLiteral{Value: 11}},
		call,
	}
	main := testprog.Linear("Main", "main", nil, stmts, nil)

	hierarchy := ir.NewSimpleHierarchy()
	hierarchy.AddMethod(dog)
	hierarchy.AddClass("Dog", "Animal")
	types := &ir.SimpleTypes{Hierarchy: hierarchy}

	solver := pta.NewSolver(hierarchy, types, pta.NewAllocationSiteHeap(), context.CI())
	result := solver.Solve(main)

	csDog := pta.CSMethod{Ctx: context.Empty, Method: dog}
	if !result.IsReachable(csDog) {
		t.Fatalf("Dog.bark not reached via virtual dispatch on a concrete Dog receiver")
	}

	thisPts := result.PointsTo(pta.CSVar{Ctx: context.Empty, Var: dogThis})
	if len(thisPts) != 1 {
		t.Fatalf("pt(this) in Dog.bark = %v, want exactly the receiver object", thisPts)
	}
}
