// Package lattice implements the constant-propagation lattice
// (UNDEF ⊏ constant ⊏ NAC) and the per-statement fact type built on it.
package lattice

import "fmt"

// Kind discriminates the three members of the lattice.
type Kind uint8

const (
	KindUndef Kind = iota
	KindConst
	KindNAC
)

// Value is the algebraic lattice value UNDEF | Const(i32) | NAC.
//
// The zero Value is UNDEF, so a freshly zeroed Value is already bottom.
type Value struct {
	kind  Kind
	cst   int32
}

// Undef is the bottom of the lattice: no observed value.
var Undef = Value{kind: KindUndef}

// NAC is the top of the lattice: not-a-constant.
var NAC = Value{kind: KindNAC}

// Const returns a constant lattice value.
func Const(c int32) Value { return Value{kind: KindConst, cst: c} }

func (v Value) IsUndef() bool { return v.kind == KindUndef }
func (v Value) IsNAC() bool   { return v.kind == KindNAC }
func (v Value) IsConst() bool { return v.kind == KindConst }

// ConstValue returns the constant payload; only meaningful when IsConst().
func (v Value) ConstValue() int32 { return v.cst }

func (v Value) String() string {
	switch v.kind {
	case KindUndef:
		return "UNDEF"
	case KindNAC:
		return "NAC"
	default:
		return fmt.Sprintf("%d", v.cst)
	}
}

// Equal reports whether two values denote the same lattice element.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	return v.kind != KindConst || v.cst == o.cst
}

// MeetValue computes the lattice meet (the "join" in forward-flow
// convention,): UNDEF is identity, NAC is absorbing, and two
// distinct constants collapse to NAC.
//
// MeetValue is commutative, associative and idempotent.
func MeetValue(a, b Value) Value {
	if a.kind == KindUndef {
		return b
	}
	if b.kind == KindUndef {
		return a
	}
	if a.kind == KindNAC || b.kind == KindNAC {
		return NAC
	}
	// Both Const.
	if a.cst == b.cst {
		return a
	}
	return NAC
}

// LessEqual reports the lattice partial order a ⊑ b used by the
// monotonicity property: UNDEF ⊑ everything, everything ⊑ NAC,
// and a constant is ⊑ only itself and NAC.
func LessEqual(a, b Value) bool {
	return MeetValue(a, b).Equal(b)
}
