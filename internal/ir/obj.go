package ir

// Obj is an abstract heap object. In the default allocation-site heap
// model one Obj exists per New statement; HeapModel implementations (in
// package pta) are responsible for the one-per-allocation-site interning,
// this type just carries the identity payload.
type Obj struct {
	Alloc *New
	Type  Type
}

func (o *Obj) String() string {
	if o == nil {
		return "<nil-obj>"
	}
	name := "?"
	if o.Alloc != nil {
		name = o.Alloc.LHS.Name
	}
	return "new " + o.Type.Name + "@" + name
}
