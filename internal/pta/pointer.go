// Package pta is the context-sensitive Andersen-style pointer-analysis
// engine: an inclusion-based solver whose points-to sets and on-the-fly
// call graph feed alias-aware inter-procedural constant propagation and
// the taint-analysis plugin.
package pta

import (
	"github.com/1homsi/goflow/internal/context"
	"github.com/1homsi/goflow/internal/ir"
)

// CSObj is a context-sensitive abstract object: an allocation site paired
// with the heap context under which it was allocated.
type CSObj struct {
	Ctx *context.ListContext
	Obj *ir.Obj
}

func (o CSObj) String() string { return o.Ctx.String() + ":" + o.Obj.String() }

// CSVar is a context-sensitive local variable.
type CSVar struct {
	Ctx *context.ListContext
	Var ir.Var
}

func (v CSVar) isPointer()     {}
func (v CSVar) String() string { return v.Ctx.String() + ":" + v.Var.String() }

// StaticField is a pointer for a static field, which carries no context of
// its own (there is exactly one StaticField(f) regardless of caller).
type StaticField struct{ Field ir.Field }

func (StaticField) isPointer()      {}
func (f StaticField) String() string { return "static:" + f.Field.String() }

// InstanceField is a pointer for object o's field f.
type InstanceField struct {
	Obj   CSObj
	Field ir.Field
}

func (InstanceField) isPointer()      {}
func (f InstanceField) String() string { return f.Obj.String() + "." + f.Field.Name }

// ArrayIndex is a pointer for object o's array contents, merged
// index-insensitively.
type ArrayIndex struct{ Obj CSObj }

func (ArrayIndex) isPointer()      {}
func (a ArrayIndex) String() string { return a.Obj.String() + "[]" }

// Pointer is a PFG node: anything that can hold a points-to set. All four
// concrete kinds are plain comparable structs, so Pointer values can be
// used directly as map keys without a separate interning step.
type Pointer interface {
	isPointer()
	String() string
}

// CSCallSite is a context-sensitive call site.
type CSCallSite struct {
	Ctx *context.ListContext
	CS  *ir.Invoke
}

func (c CSCallSite) String() string { return c.Ctx.String() + ":" + c.CS.String() }

// CSMethod is a context-sensitive method: the unit of reachability.
type CSMethod struct {
	Ctx    *context.ListContext
	Method *ir.Method
}

func (m CSMethod) String() string { return m.Ctx.String() + ":" + m.Method.String() }

// CSManager interns CSObj values into small dense integers so PTS can be
// represented as a bitset; CSVar/CSCallSite/CSMethod need no
// interning since they are already comparable map keys in their own right.
type CSManager struct {
	ids  map[CSObj]int
	objs []CSObj
}

// NewCSManager returns an empty manager.
func NewCSManager() *CSManager {
	return &CSManager{ids: make(map[CSObj]int)}
}

// Intern returns o's stable id, allocating one on first sight.
func (m *CSManager) Intern(o CSObj) int {
	if id, ok := m.ids[o]; ok {
		return id
	}
	id := len(m.objs)
	m.objs = append(m.objs, o)
	m.ids[o] = id
	return id
}

// ObjAt returns the CSObj interned at id.
func (m *CSManager) ObjAt(id int) CSObj { return m.objs[id] }
