package pta

import "golang.org/x/tools/container/intsets"

// PTS is a points-to set: a bitset of CSObj ids, interned through a
// CSManager. golang.org/x/tools/container/intsets.Sparse is the idiomatic
// choice here: Insert/UnionWith both report whether anything changed, and a
// sparse bitset keeps large, mostly-disjoint PTSes cheap. UnionWith reports
// only a bool, so propagate computes its Δ with Diff before unioning.
type PTS struct {
	bits intsets.Sparse
}

// NewPTS returns an empty points-to set.
func NewPTS() *PTS { return &PTS{} }

// Insert adds id, reporting whether the set changed.
func (p *PTS) Insert(id int) bool { return p.bits.Insert(id) }

// Has reports whether id is a member.
func (p *PTS) Has(id int) bool { return p.bits.Has(id) }

// UnionWith merges other into p in place, reporting whether p changed.
func (p *PTS) UnionWith(other *PTS) bool { return p.bits.UnionWith(&other.bits) }

// IsEmpty reports whether p has no members.
func (p *PTS) IsEmpty() bool { return p.bits.IsEmpty() }

// Len returns the number of members.
func (p *PTS) Len() int { return p.bits.Len() }

// Elems returns the member ids in ascending order.
func (p *PTS) Elems() []int { return p.bits.AppendTo(nil) }

// Clone returns an independent copy of p.
func (p *PTS) Clone() *PTS {
	c := NewPTS()
	c.UnionWith(p)
	return c
}

// Diff computes other \ p (the members of other not already in p) without
// mutating either set — used by propagate to compute Δ before unioning.
func (p *PTS) Diff(other *PTS) *PTS {
	d := NewPTS()
	for _, id := range other.Elems() {
		if !p.Has(id) {
			d.Insert(id)
		}
	}
	return d
}
