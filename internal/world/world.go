// Package world is the thin facade the core's algorithms are written
// against for the pieces a frontend is responsible for: IR construction and
// class-hierarchy traversal. The core never depends on how a World was
// built, only on this interface.
package world

import (
	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/registry"
)

// World exposes the entry method, class hierarchy, type system, and a
// named-result registry every cmd/goflow subcommand needs.
type World interface {
	MainMethod() *ir.Method
	ClassHierarchy() ir.ClassHierarchy
	TypeSystem() ir.TypeSystem
	GetResult(id string) (any, bool)
	StoreResult(id string, value any)
}

// Static is a World resolved entirely up front: every subcommand this
// module ships builds one of these and never mutates it mid-analysis,
// matching the single-threaded, non-suspending solve.
type Static struct {
	Main      *ir.Method
	Hierarchy ir.ClassHierarchy
	Types     ir.TypeSystem
	Registry  *registry.Registry
}

var _ World = (*Static)(nil)

func (s *Static) MainMethod() *ir.Method              { return s.Main }
func (s *Static) ClassHierarchy() ir.ClassHierarchy    { return s.Hierarchy }
func (s *Static) TypeSystem() ir.TypeSystem            { return s.Types }

func (s *Static) GetResult(id string) (any, bool) {
	if s.Registry == nil {
		return nil, false
	}
	return s.Registry.Lookup(id)
}

// StoreResult records value under id in s.Registry, lazily creating the
// Registry if this Static was built without one (e.g. by a test).
func (s *Static) StoreResult(id string, value any) {
	if s.Registry == nil {
		s.Registry = registry.New()
	}
	s.Registry.Store(id, value)
}

// Result retrieves the value stored under id in w's registry and asserts
// it to T, so a cmd/goflow subcommand can reuse a result an earlier
// subcommand already computed (e.g. pta's result, retrieved by interproc)
// instead of recomputing it.
func Result[T any](w World, id string) (T, bool) {
	var zero T
	v, ok := w.GetResult(id)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
