// Package context implements the context-sensitivity selectors: the pluggable
// strategy that turns a call site (plus, for instance calls, a receiver
// object) into the context under which the callee is analyzed.
package context

import (
	"strings"

	"github.com/1homsi/goflow/internal/ir"
)

// Elem is one component of a ListContext: either a call site or a heap
// object, the only two things the variants ever place in a
// context.
type Elem struct {
	CallSite *ir.Invoke
	Obj      *ir.Obj
}

func callElem(cs *ir.Invoke) Elem { return Elem{CallSite: cs} }
func objElem(o *ir.Obj) Elem      { return Elem{Obj: o} }

func (e Elem) String() string {
	switch {
	case e.CallSite != nil:
		return "cs:" + e.CallSite.Method.String()
	case e.Obj != nil:
		return "obj:" + e.Obj.Type.Name
	default:
		return "<empty>"
	}
}

// ListContext is a bounded-length, interned tuple of Elems. The empty
// context (k=0, context-insensitive) is the zero ListContext.
type ListContext struct {
	key   string // interning key, computed once by make
	elems []Elem
}

var table = make(map[string]*ListContext)

// make_ interns elems into a canonical *ListContext, so two contexts built
// from equal element sequences always compare pointer-equal.
func make_(elems []Elem) *ListContext {
	var b strings.Builder
	for i, e := range elems {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(e.String())
	}
	key := b.String()
	if c, ok := table[key]; ok {
		return c
	}
	c := &ListContext{key: key, elems: elems}
	table[key] = c
	return c
}

// Empty is the context-insensitive (k=0) context.
var Empty = make_(nil)

// Elems returns the context's elements in construction order (oldest to
// newest); most-recent-first is not implied.
func (c *ListContext) Elems() []Elem { return c.elems }

// Last returns the most recently appended element, or the zero Elem if c
// is empty — used by 2-call/2-obj's "last(ctx)" rule.
func (c *ListContext) Last() (Elem, bool) {
	if len(c.elems) == 0 {
		return Elem{}, false
	}
	return c.elems[len(c.elems)-1], true
}

func (c *ListContext) String() string { return c.key }

// appendTruncated builds a new interned context of elems truncated to the last k
// entries (the "truncated" 2-call rule).
func appendTruncated(elems []Elem, k int) *ListContext {
	if len(elems) > k {
		elems = elems[len(elems)-k:]
	}
	out := make([]Elem, len(elems))
	copy(out, elems)
	return make_(out)
}

// Selector is the pluggable context-selection strategy (the "small trait with four
// methods"). It depends only on package ir, not on package pta, so pta can
// import context without a cycle.
type Selector interface {
	EmptyContext() *ListContext
	// SelectContext is used for static call sites (no receiver).
	SelectContext(callerCtx *ListContext, cs *ir.Invoke, callee *ir.Method) *ListContext
	// SelectInstanceContext is used for instance call sites, given the
	// receiver object's allocation context and abstract object.
	SelectInstanceContext(callerCtx *ListContext, cs *ir.Invoke, recvCtx *ListContext, recv *ir.Obj, callee *ir.Method) *ListContext
	// SelectHeapContext derives the allocation context for a new object
	// created by csm (whose own context is allocCtx).
	SelectHeapContext(allocCtx *ListContext, obj *ir.Obj) *ListContext
}

// ciSelector is the context-insensitive selector (k=0): every context is
// Empty.
type ciSelector struct{}

// CI returns the context-insensitive selector.
func CI() Selector { return ciSelector{} }

func (ciSelector) EmptyContext() *ListContext { return Empty }
func (ciSelector) SelectContext(*ListContext, *ir.Invoke, *ir.Method) *ListContext {
	return Empty
}
func (ciSelector) SelectInstanceContext(*ListContext, *ir.Invoke, *ListContext, *ir.Obj, *ir.Method) *ListContext {
	return Empty
}
func (ciSelector) SelectHeapContext(*ListContext, *ir.Obj) *ListContext { return Empty }

// callSelector implements k-call-site sensitivity (1-call, 2-call).
type callSelector struct{ k int }

// Call returns a k-call-site-sensitive selector (k ∈ {1, 2}).
func Call(k int) Selector { return callSelector{k: k} }

func (callSelector) EmptyContext() *ListContext { return Empty }

func (s callSelector) SelectContext(callerCtx *ListContext, cs *ir.Invoke, _ *ir.Method) *ListContext {
	return appendTruncated(append(append([]Elem{}, callerCtx.elems...), callElem(cs)), s.k)
}

func (s callSelector) SelectInstanceContext(callerCtx *ListContext, cs *ir.Invoke, _ *ListContext, _ *ir.Obj, _ *ir.Method) *ListContext {
	return s.SelectContext(callerCtx, cs, nil)
}

// SelectHeapContext: 1-call carries no heap context; 2-call carries the
// last element of the allocating method's own context.
func (s callSelector) SelectHeapContext(allocCtx *ListContext, _ *ir.Obj) *ListContext {
	if s.k < 2 {
		return Empty
	}
	if last, ok := allocCtx.Last(); ok {
		return make_([]Elem{last})
	}
	return Empty
}

// objSelector implements k-object sensitivity (1-obj, 2-obj): instance
// calls are contextualized by the receiver object, static calls fall back
// to the caller's own context").
type objSelector struct{ k int }

// Obj returns a k-object-sensitive selector (k ∈ {1, 2}).
func Obj(k int) Selector { return objSelector{k: k} }

func (objSelector) EmptyContext() *ListContext { return Empty }

func (s objSelector) SelectContext(callerCtx *ListContext, _ *ir.Invoke, _ *ir.Method) *ListContext {
	return callerCtx
}

func (s objSelector) SelectInstanceContext(_ *ListContext, _ *ir.Invoke, recvCtx *ListContext, recv *ir.Obj, _ *ir.Method) *ListContext {
	if s.k < 2 {
		return make_([]Elem{objElem(recv)})
	}
	elems := []Elem{}
	if last, ok := recvCtx.Last(); ok {
		elems = append(elems, last)
	}
	elems = append(elems, objElem(recv))
	return appendTruncated(elems, s.k)
}

func (s objSelector) SelectHeapContext(allocCtx *ListContext, _ *ir.Obj) *ListContext {
	if s.k < 2 {
		return Empty
	}
	if last, ok := allocCtx.Last(); ok {
		return make_([]Elem{last})
	}
	return Empty
}

// typeSelector implements 1-type sensitivity: the receiver object's
// allocation type, rather than the object itself.
type typeSelector struct{}

// Type1 returns the 1-type-sensitive selector.
func Type1() Selector { return typeSelector{} }

func (typeSelector) EmptyContext() *ListContext { return Empty }
func (typeSelector) SelectContext(callerCtx *ListContext, _ *ir.Invoke, _ *ir.Method) *ListContext {
	return callerCtx
}
func (typeSelector) SelectInstanceContext(_ *ListContext, _ *ir.Invoke, _ *ListContext, recv *ir.Obj, _ *ir.Method) *ListContext {
	return make_([]Elem{{Obj: &ir.Obj{Type: recv.Type}}})
}
func (typeSelector) SelectHeapContext(*ListContext, *ir.Obj) *ListContext { return Empty }
