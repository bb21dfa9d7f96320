// Package ir defines the object-oriented, class-based intermediate
// representation that the rest of the core consumes. Building this IR from
// real source (bytecode, ASTs, ...) is explicitly out of scope for the core
// — this package only defines the shapes the core's algorithms
// are written against, plus a tiny hand-built-program helper used by tests.
package ir

import "fmt"

// Type is a nominal type in the analyzed program. Primitive integer-shaped
// types (byte/short/int/char/boolean) are distinguished because the
// constant-propagation boundary fact only tracks them.
type Type struct {
	Name string
	// Integer marks byte/short/int/char/boolean-shaped types: the only
	// types constant propagation assigns a non-UNDEF boundary value to.
	Integer bool
	// Reference marks class/array/interface types: the only types that
	// carry points-to information.
	Reference bool
}

func (t Type) String() string { return t.Name }

// Field is a resolved field reference.
type Field struct {
	Owner  string // declaring class
	Name   string
	Type   Type
	Static bool
}

func (f Field) String() string { return fmt.Sprintf("%s.%s", f.Owner, f.Name) }

// MethodRef identifies a method signature, resolved or not yet dispatched.
type MethodRef struct {
	Owner string // declared class (static type at the call site)
	Name  string
	Sig   string // parameter/return signature, for overload disambiguation
}

func (m MethodRef) String() string { return fmt.Sprintf("%s.%s%s", m.Owner, m.Name, m.Sig) }

// Var is a named location in the IR with a type. Var is a comparable value
// type (not a pointer) so it can be used directly as a map key, which
// CPFact and the inter-procedural may-alias indexes both rely on.
type Var struct {
	Method string // enclosing method's unique name; "" for a synthetic/global var
	Name   string
	Type   Type
	Param  bool // true if this is a formal parameter
}

func (v Var) String() string {
	if v.Method == "" {
		return v.Name
	}
	return v.Method + "#" + v.Name
}

// IsIntegerShaped reports whether v is byte/short/int/char/boolean-shaped,
// i.e. eligible for constant propagation.
func (v Var) IsIntegerShaped() bool { return v.Type.Integer }

// IsReference reports whether v can hold a reference (eligible for
// points-to tracking).
func (v Var) IsReference() bool { return v.Type.Reference }
