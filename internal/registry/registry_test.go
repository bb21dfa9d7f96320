package registry_test

import (
	"testing"

	"github.com/1homsi/goflow/internal/registry"
)

func TestStoreAndGetTyped(t *testing.T) {
	r := registry.New()
	r.Store("constprop", 42)

	got, ok := registry.Get[int](r, "constprop")
	if !ok || got != 42 {
		t.Fatalf("Get[int] = (%v, %v), want (42, true)", got, ok)
	}

	if _, ok := registry.Get[string](r, "constprop"); ok {
		t.Fatal("Get[string] on an int value should fail the type assertion")
	}

	if _, ok := registry.Get[int](r, "missing"); ok {
		t.Fatal("Get on an unset id should report false")
	}
}
