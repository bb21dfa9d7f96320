package world_test

import (
	"testing"

	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/ir/testprog"
	"github.com/1homsi/goflow/internal/registry"
	"github.com/1homsi/goflow/internal/world"
)

func TestStaticFacade(t *testing.T) {
	main := testprog.Linear("Main", "main", nil, nil, nil)
	hierarchy := ir.NewSimpleHierarchy()
	hierarchy.AddMethod(main)
	types := &ir.SimpleTypes{Hierarchy: hierarchy}
	reg := registry.New()
	reg.Store("constprop", "fake-result")

	w := &world.Static{Main: main, Hierarchy: hierarchy, Types: types, Registry: reg}

	if w.MainMethod() != main {
		t.Error("MainMethod did not return the configured main")
	}
	if w.ClassHierarchy() != ir.ClassHierarchy(hierarchy) {
		t.Error("ClassHierarchy did not return the configured hierarchy")
	}
	if w.TypeSystem() != ir.TypeSystem(types) {
		t.Error("TypeSystem did not return the configured types")
	}
	if v, ok := w.GetResult("constprop"); !ok || v != "fake-result" {
		t.Errorf("GetResult(constprop) = (%v, %v), want (fake-result, true)", v, ok)
	}
	if _, ok := w.GetResult("missing"); ok {
		t.Error("GetResult on an unset id should report false")
	}
}

func TestStaticWithNilRegistry(t *testing.T) {
	w := &world.Static{}
	if _, ok := w.GetResult("anything"); ok {
		t.Error("GetResult with a nil Registry should report false, not panic")
	}
}
