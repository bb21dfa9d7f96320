package ir

// CallKind classifies how a call site dispatches, mirroring the
// vocabulary golang.org/x/tools/go/callgraph uses for its own edges
// (Static/Dynamic/...), generalized with the SPECIAL/INTERFACE distinction
// a class-based IR needs.
type CallKind int

const (
	STATIC CallKind = iota
	SPECIAL
	VIRTUAL
	INTERFACE
	DYNAMIC
)

func (k CallKind) String() string {
	switch k {
	case STATIC:
		return "static"
	case SPECIAL:
		return "special"
	case VIRTUAL:
		return "virtual"
	case INTERFACE:
		return "interface"
	case DYNAMIC:
		return "dynamic"
	default:
		return "unknown"
	}
}

// CFGEdgeKind tags an intra-procedural control-flow edge.
type CFGEdgeKind int

const (
	Unconditional CFGEdgeKind = iota
	IfTrue
	IfFalse
	SwitchCase
	SwitchDefault
)

// CFGEdge is a directed edge between two statement indices within a single
// Method's Stmts slice.
type CFGEdge struct {
	From, To  int
	Kind      CFGEdgeKind
	CaseValue int32 // meaningful only for SwitchCase
}

// Method is a single procedure in the IR: a flat statement list plus
// explicit control-flow edges between statement indices. Entry is always
// Stmts[0]; any statement with no outgoing edge in Edges implicitly flows
// to the method's exit.
type Method struct {
	Class    string
	Name     string
	Sig      string
	Static   bool
	Abstract bool

	This   Var // zero Var when Static
	Params []Var
	// ReturnVars lists the variables that may flow out of the method via a
	// Return statement — the union of the operands of every Return stmt.
	ReturnVars []Var

	Stmts []Stmt
	Edges []CFGEdge

	varUses map[Var]*VarUses
}

// VarUses is the precomputed inverted index describes: for a
// variable reachable in a method, the load/store statements that mention
// it as their base.
type VarUses struct {
	StoreFields []*StoreField
	LoadFields  []*LoadField
	StoreArrays []*StoreArray
	LoadArrays  []*LoadArray
	Invokes     []*Invoke
}

// String returns a qualified method name used as a map key throughout the
// call-graph and pointer-analysis layers.
func (m *Method) String() string {
	if m.Sig != "" {
		return m.Class + "." + m.Name + m.Sig
	}
	return m.Class + "." + m.Name
}

// Signature returns the method's MethodRef (declared class + name + sig).
func (m *Method) Signature() MethodRef {
	return MethodRef{Owner: m.Class, Name: m.Name, Sig: m.Sig}
}

// Index builds (or returns the cached) inverted Var→VarUses index. It is
// idempotent and safe to call repeatedly; the first call does the work.
func (m *Method) Index() map[Var]*VarUses {
	if m.varUses != nil {
		return m.varUses
	}
	idx := make(map[Var]*VarUses)
	use := func(v Var) *VarUses {
		u, ok := idx[v]
		if !ok {
			u = &VarUses{}
			idx[v] = u
		}
		return u
	}
	for _, st := range m.Stmts {
		switch s := st.(type) {
		case *StoreField:
			if !s.Static {
				u := use(s.Base)
				u.StoreFields = append(u.StoreFields, s)
			}
		case *LoadField:
			if !s.Static {
				u := use(s.Base)
				u.LoadFields = append(u.LoadFields, s)
			}
		case *StoreArray:
			u := use(s.Base)
			u.StoreArrays = append(u.StoreArrays, s)
		case *LoadArray:
			u := use(s.Base)
			u.LoadArrays = append(u.LoadArrays, s)
		case *Invoke:
			if s.Receiver != nil {
				u := use(*s.Receiver)
				u.Invokes = append(u.Invokes, s)
			}
		}
	}
	m.varUses = idx
	return m.varUses
}

// UsesOf returns the precomputed uses of v (zero value if v has none),
// building the index on first use.
func (m *Method) UsesOf(v Var) VarUses {
	idx := m.Index()
	if u, ok := idx[v]; ok {
		return *u
	}
	return VarUses{}
}

// Entry returns the entry statement index, or -1 for an empty method.
func (m *Method) Entry() int {
	if len(m.Stmts) == 0 {
		return -1
	}
	return 0
}

// Successors returns the outgoing edges of statement index i.
func (m *Method) Successors(i int) []CFGEdge {
	var out []CFGEdge
	for _, e := range m.Edges {
		if e.From == i {
			out = append(out, e)
		}
	}
	return out
}

// Predecessors returns the statement indices with an edge into i.
func (m *Method) Predecessors(i int) []int {
	var out []int
	for _, e := range m.Edges {
		if e.To == i {
			out = append(out, e.From)
		}
	}
	return out
}
