package lattice

import (
	"sort"
	"strings"

	"github.com/1homsi/goflow/internal/ir"
)

// CPFact is a mapping from Var to Value; a variable missing from the map is
// treated as Undef. This is the fact type threaded through the generic
// worklist solver when instantiated for constant propagation, and through
// its inter-procedural, alias-aware counterpart.
type CPFact struct {
	m map[ir.Var]Value
}

// NewCPFact returns an empty fact (every variable implicitly UNDEF).
func NewCPFact() *CPFact {
	return &CPFact{m: make(map[ir.Var]Value)}
}

// Get returns the value bound to v, or Undef if unbound.
func (f *CPFact) Get(v ir.Var) Value {
	if f == nil {
		return Undef
	}
	if val, ok := f.m[v]; ok {
		return val
	}
	return Undef
}

// Update binds v to val, returning whether the fact actually changed.
// Binding a variable to Undef removes it from the map (keeping the
// representation canonical so Equal/changed checks are exact).
func (f *CPFact) Update(v ir.Var, val Value) bool {
	old := f.Get(v)
	if old.Equal(val) {
		return false
	}
	if val.IsUndef() {
		delete(f.m, v)
	} else {
		f.m[v] = val
	}
	return true
}

// Remove deletes any binding for v.
func (f *CPFact) Remove(v ir.Var) {
	delete(f.m, v)
}

// Copy returns an independent copy of f.
func (f *CPFact) Copy() *CPFact {
	out := NewCPFact()
	for k, v := range f.m {
		out.m[k] = v
	}
	return out
}

// CopyFrom overwrites f's bindings with other's, returning whether f
// changed as a result.
func (f *CPFact) CopyFrom(other *CPFact) bool {
	changed := len(f.m) != len(other.m)
	if !changed {
		for k, v := range other.m {
			if ov, ok := f.m[k]; !ok || !ov.Equal(v) {
				changed = true
				break
			}
		}
	}
	if !changed {
		return false
	}
	f.m = make(map[ir.Var]Value, len(other.m))
	for k, v := range other.m {
		f.m[k] = v
	}
	return true
}

// Vars returns the variables with a non-UNDEF binding, sorted for
// deterministic iteration (tests and debug traces rely on this).
func (f *CPFact) Vars() []ir.Var {
	vars := make([]ir.Var, 0, len(f.m))
	for v := range f.m {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}

// Meet computes the pointwise MeetValue of two facts (used to combine
// predecessor OUT facts into a node's IN fact,).
func Meet(a, b *CPFact) *CPFact {
	out := NewCPFact()
	seen := make(map[ir.Var]bool, len(a.m)+len(b.m))
	for v := range a.m {
		seen[v] = true
	}
	for v := range b.m {
		seen[v] = true
	}
	for v := range seen {
		out.m[v] = MeetValue(a.Get(v), b.Get(v))
	}
	return out
}

// MeetInto meets src into dst in place, returning whether dst changed.
func MeetInto(src, dst *CPFact) bool {
	changed := false
	vars := make(map[ir.Var]bool, len(src.m))
	for v := range src.m {
		vars[v] = true
	}
	for v := range vars {
		merged := MeetValue(src.Get(v), dst.Get(v))
		if dst.Update(v, merged) {
			changed = true
		}
	}
	return changed
}

func (f *CPFact) String() string {
	var b strings.Builder
	vars := f.Vars()
	for i, v := range vars {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.Name)
		b.WriteString("=")
		b.WriteString(f.Get(v).String())
	}
	return b.String()
}
