package ir

// ClassHierarchy is the hierarchy-traversal collaborator the call-graph
// and pointer-analysis dispatch logic consumes. Building and maintaining
// the real hierarchy from a class file format is out of core scope;
// SimpleHierarchy below is the minimal in-memory implementation used to
// wire the CLI and tests.
type ClassHierarchy interface {
	// Superclass returns the direct superclass of class, if any.
	Superclass(class string) (string, bool)
	// DeclaredMethod returns the method declared directly on class with
	// the given signature, without walking the superclass chain.
	DeclaredMethod(class, sig string) (*Method, bool)
	// Subclasses returns the direct subclasses of class.
	Subclasses(class string) []string
	// Interfaces returns the interfaces class directly declares.
	Interfaces(class string) []string
	// SubInterfaces returns the direct sub-interfaces of iface.
	SubInterfaces(iface string) []string
	// Implementers returns the classes that directly implement iface.
	Implementers(iface string) []string
	// IsInterface reports whether class is an interface type.
	IsInterface(class string) bool
}

// TypeSystem resolves the dynamic type of an abstract object and subtype
// relations, the second out-of-core-scope collaborator; the pointer
// analysis consumes it to find a receiver object's class for dispatch.
type TypeSystem interface {
	TypeOf(o *Obj) Type
	IsSubtype(sub, sup Type) bool
}

// SimpleHierarchy is a minimal map-based ClassHierarchy (SimpleTypes below
// is the matching TypeSystem) used to
// wire small programs together for the CLI and for tests, standing in for
// a real class-hierarchy loader built from compiled class files.
type SimpleHierarchy struct {
	Methods       map[string]map[string]*Method // class -> sig -> method
	Supers       map[string]string   // class -> direct superclass
	Subs         map[string][]string // class -> direct subclasses
	Ifaces       map[string][]string // class -> directly declared interfaces
	SubIfaces    map[string][]string // iface -> direct sub-interfaces
	SuperIfaces  map[string][]string // iface -> direct super-interfaces
	Implementors map[string][]string // iface -> direct implementers
	InterfaceSet map[string]bool
}

// NewSimpleHierarchy returns an empty, ready-to-populate hierarchy.
func NewSimpleHierarchy() *SimpleHierarchy {
	return &SimpleHierarchy{
		Methods:      make(map[string]map[string]*Method),
		Supers:       make(map[string]string),
		Subs:         make(map[string][]string),
		Ifaces:       make(map[string][]string),
		SubIfaces:    make(map[string][]string),
		SuperIfaces:  make(map[string][]string),
		Implementors: make(map[string][]string),
		InterfaceSet: make(map[string]bool),
	}
}

// AddClass registers class as a subclass of super (super == "" for a root
// class such as Object), wiring both the Supers and Subs maps.
func (h *SimpleHierarchy) AddClass(class, super string) {
	if super != "" {
		h.Supers[class] = super
		h.Subs[super] = append(h.Subs[super], class)
	}
}

// AddInterface registers class as implementing iface directly.
func (h *SimpleHierarchy) AddInterface(class, iface string) {
	h.Ifaces[class] = append(h.Ifaces[class], iface)
	h.Implementors[iface] = append(h.Implementors[iface], class)
	h.InterfaceSet[iface] = true
}

// AddSubInterface registers sub as a direct sub-interface of super.
func (h *SimpleHierarchy) AddSubInterface(sub, super string) {
	h.SubIfaces[super] = append(h.SubIfaces[super], sub)
	h.SuperIfaces[sub] = append(h.SuperIfaces[sub], super)
	h.InterfaceSet[super] = true
	h.InterfaceSet[sub] = true
}

// AddMethod registers m as declared on m.Class.
func (h *SimpleHierarchy) AddMethod(m *Method) {
	bySig, ok := h.Methods[m.Class]
	if !ok {
		bySig = make(map[string]*Method)
		h.Methods[m.Class] = bySig
	}
	bySig[m.Sig] = m
}

func (h *SimpleHierarchy) Superclass(class string) (string, bool) {
	s, ok := h.Supers[class]
	return s, ok
}

func (h *SimpleHierarchy) DeclaredMethod(class, sig string) (*Method, bool) {
	bySig, ok := h.Methods[class]
	if !ok {
		return nil, false
	}
	m, ok := bySig[sig]
	return m, ok
}

func (h *SimpleHierarchy) Subclasses(class string) []string { return h.Subs[class] }
func (h *SimpleHierarchy) Interfaces(class string) []string { return h.Ifaces[class] }
func (h *SimpleHierarchy) SubInterfaces(iface string) []string { return h.SubIfaces[iface] }
func (h *SimpleHierarchy) Implementers(iface string) []string { return h.Implementors[iface] }
func (h *SimpleHierarchy) IsInterface(class string) bool       { return h.InterfaceSet[class] }

// SimpleTypes is a minimal TypeSystem: every Obj's type is taken from its
// allocation site, and subtyping is resolved by walking a SimpleHierarchy's
// superclass chain plus its interface declarations.
type SimpleTypes struct {
	Hierarchy *SimpleHierarchy
}

func (t *SimpleTypes) TypeOf(o *Obj) Type {
	if o == nil {
		return Type{}
	}
	return o.Type
}

func (t *SimpleTypes) IsSubtype(sub, sup Type) bool {
	if sub.Name == sup.Name {
		return true
	}
	seen := map[string]bool{}
	class := sub.Name
	for class != "" && !seen[class] {
		seen[class] = true
		if class == sup.Name {
			return true
		}
		for _, iface := range t.Hierarchy.Interfaces(class) {
			if t.implementsInterface(iface, sup.Name) {
				return true
			}
		}
		next, ok := t.Hierarchy.Superclass(class)
		if !ok {
			break
		}
		class = next
	}
	return false
}

// implementsInterface reports whether iface is target or one of target's
// transitive sub-interfaces (walking SuperIfaces upward from iface).
func (t *SimpleTypes) implementsInterface(iface, target string) bool {
	if iface == target {
		return true
	}
	for _, super := range t.Hierarchy.SuperIfaces[iface] {
		if t.implementsInterface(super, target) {
			return true
		}
	}
	return false
}
