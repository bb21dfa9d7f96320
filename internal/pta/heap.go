package pta

import "github.com/1homsi/goflow/internal/ir"

// HeapModel abstracts a New statement into an abstract heap object. The
// default AllocationSiteHeap (one Obj per New) is the only variant the
// core needs; the interface exists so the choice is explicit and testable.
type HeapModel interface {
	Obj(stmt *ir.New) *ir.Obj
}

// AllocationSiteHeap interns one Obj per distinct New statement: the
// standard allocation-site abstraction.
type AllocationSiteHeap struct {
	objs map[*ir.New]*ir.Obj
}

// NewAllocationSiteHeap returns an empty heap model.
func NewAllocationSiteHeap() *AllocationSiteHeap {
	return &AllocationSiteHeap{objs: make(map[*ir.New]*ir.Obj)}
}

func (h *AllocationSiteHeap) Obj(stmt *ir.New) *ir.Obj {
	if o, ok := h.objs[stmt]; ok {
		return o
	}
	o := &ir.Obj{Alloc: stmt, Type: stmt.Type}
	h.objs[stmt] = o
	return o
}
