package dataflow

import "github.com/1homsi/goflow/internal/cfg"

// Analysis is the concrete instantiation the generic solver drives: a direction,
// an initial/boundary fact constructor, a meet operator, and a per-node
// transfer function.
type Analysis interface {
	// IsForward reports the analysis direction.
	IsForward() bool
	// NewInitialFact returns the fact every non-boundary node starts with.
	NewInitialFact() Fact
	// NewBoundaryFact returns the fact seeded at the entry (forward) or
	// exit (backward) node.
	NewBoundaryFact(g *cfg.Graph) Fact
	// Meet combines two facts (⨅ over predecessor/successor OUT/IN facts).
	Meet(a, b Fact) Fact
	// Transfer recomputes out from in at node n, returning whether out
	// changed.
	Transfer(n cfg.Node, in, out Fact) bool
}
