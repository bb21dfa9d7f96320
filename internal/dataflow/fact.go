// Package dataflow is the generic worklist fixpoint solver: it is
// instantiated for whatever lattice/fact type a concrete analysis
// (constant propagation, live-variable analysis, ...) supplies.
package dataflow

// Fact is the per-node data a concrete analysis propagates. Analyses
// implement a concrete Fact (package lattice's CPFact for constant
// propagation, a set of live variables for liveness) and a matching
// Analysis below.
type Fact interface {
	// Copy returns an independent copy of the fact.
	Copy() Fact
	// CopyFrom overwrites the receiver's contents with other's, returning
	// whether the receiver actually changed.
	CopyFrom(other Fact) bool
}
