package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/registry"
)

// programDoc is the on-disk JSON shape LoadProgramJSON reads: a flat set of
// classes, each with a method list, plus the entry point. This is the CLI's
// own stand-in for a bytecode/class-file frontend, out of scope for the
// core — the core only ever sees the ir.Method/ir.ClassHierarchy it
// builds, never this format.
type programDoc struct {
	Entry   string       `json:"entry"` // "Class.Method" or "Class.Method(sig)"
	Classes []classDoc   `json:"classes"`
}

type classDoc struct {
	Name       string   `json:"name"`
	Super      string   `json:"super,omitempty"`
	Interfaces []string `json:"interfaces,omitempty"`
	// SuperInterfaces names the interfaces this entry directly extends,
	// when this entry is itself an interface (e.g. "Iterable" extending
	// "Countable"). Distinct from Interfaces, which names the interfaces a
	// class directly implements.
	SuperInterfaces []string    `json:"superInterfaces,omitempty"`
	Methods         []methodDoc `json:"methods"`
}

type methodDoc struct {
	Name       string    `json:"name"`
	Sig        string    `json:"sig,omitempty"`
	Static     bool      `json:"static,omitempty"`
	This       *varDoc   `json:"this,omitempty"`
	Params     []varDoc  `json:"params,omitempty"`
	ReturnVars []varDoc  `json:"returnVars,omitempty"`
	Stmts      []stmtDoc `json:"stmts"`
	Edges      []edgeDoc `json:"edges,omitempty"`
}

type varDoc struct {
	Name string  `json:"name"`
	Type typeDoc `json:"type"`
}

type typeDoc struct {
	Name      string `json:"name"`
	Integer   bool   `json:"integer,omitempty"`
	Reference bool   `json:"reference,omitempty"`
}

type fieldDoc struct {
	Owner  string  `json:"owner"`
	Name   string  `json:"name"`
	Type   typeDoc `json:"type"`
	Static bool    `json:"static,omitempty"`
}

type edgeDoc struct {
	From      int    `json:"from"`
	To        int    `json:"to"`
	Kind      string `json:"kind,omitempty"` // "true"|"false"|"case"|"default"; default "unconditional"
	CaseValue int32  `json:"caseValue,omitempty"`
}

// stmtDoc is a tagged union over every ir.Stmt kind, discriminated by Op.
// Fields not meaningful for a given Op are simply left zero.
type stmtDoc struct {
	Op string `json:"op"` // new|copy|loadfield|storefield|loadarray|storearray|invoke|if|switch|assign|return|other

	LHS    *varDoc `json:"lhs,omitempty"`
	RHSVar *varDoc `json:"rhsVar,omitempty"`
	Base   *varDoc `json:"base,omitempty"`
	Index  *varDoc `json:"index,omitempty"`
	Key    *varDoc `json:"key,omitempty"`

	Type  *typeDoc  `json:"type,omitempty"`  // new
	Field *fieldDoc `json:"field,omitempty"` // load/store field

	Receiver *varDoc   `json:"receiver,omitempty"` // invoke
	Result   *varDoc   `json:"result,omitempty"`
	Kind     string    `json:"kind,omitempty"` // invoke call kind: static|special|virtual|interface|dynamic
	Method   *callDoc  `json:"method,omitempty"`
	Args     []varDoc  `json:"args,omitempty"`

	Cond *exprDoc `json:"cond,omitempty"` // if
	RHS  *exprDoc `json:"rhs,omitempty"`  // assign

	Vars []varDoc `json:"vars,omitempty"` // return
	Note string   `json:"note,omitempty"` // other
}

type callDoc struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
	Sig   string `json:"sig,omitempty"`
}

// exprDoc is a tagged union over every ir.Expr kind.
type exprDoc struct {
	Op    string  `json:"op"` // lit|var|binary|unknown
	Value int32   `json:"value,omitempty"`
	Var   *varDoc `json:"var,omitempty"`
	X, Y  *varDoc `json:"x,omitempty"`
	BinOp string  `json:"binOp,omitempty"`
	Note  string  `json:"note,omitempty"`
}

// LoadProgramJSON reads a program document from path and builds a Static
// World from it: an ir.SimpleHierarchy/ir.SimpleTypes pair, the entry
// method, and an empty Registry ready for a subcommand's own results.
func LoadProgramJSON(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load program %s: %w", path, err)
	}
	var doc programDoc
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse program %s: %w", path, err)
	}

	h := ir.NewSimpleHierarchy()
	for _, c := range doc.Classes {
		h.AddClass(c.Name, c.Super)
		for _, iface := range c.Interfaces {
			h.AddInterface(c.Name, iface)
		}
		for _, super := range c.SuperInterfaces {
			h.AddSubInterface(c.Name, super)
		}
	}
	for _, c := range doc.Classes {
		for _, md := range c.Methods {
			m, err := buildMethod(c.Name, md)
			if err != nil {
				return nil, fmt.Errorf("program %s: class %s: %w", path, c.Name, err)
			}
			h.AddMethod(m)
		}
	}

	entryClass, entrySig, err := splitEntry(doc.Entry)
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", path, err)
	}
	main, ok := h.DeclaredMethod(entryClass, entrySig)
	if !ok {
		return nil, fmt.Errorf("program %s: entry %q not declared", path, doc.Entry)
	}

	return &Static{
		Main:      main,
		Hierarchy: h,
		Types:     &ir.SimpleTypes{Hierarchy: h},
		Registry:  registry.New(),
	}, nil
}

// splitEntry parses "Class.Method" or "Class.Method(sig)" into the class
// name and the signature DeclaredMethod expects (empty when no sig given).
func splitEntry(entry string) (class, sig string, err error) {
	dot := strings.LastIndex(entry, ".")
	if dot < 0 {
		return "", "", fmt.Errorf("entry %q: want \"Class.Method\"", entry)
	}
	class, rest := entry[:dot], entry[dot+1:]
	if paren := strings.IndexByte(rest, '('); paren >= 0 {
		sig = rest[paren:]
	}
	if class == "" {
		return "", "", fmt.Errorf("entry %q: empty class", entry)
	}
	return class, sig, nil
}

func convType(t typeDoc) ir.Type {
	return ir.Type{Name: t.Name, Integer: t.Integer, Reference: t.Reference}
}

func convVar(method string, v *varDoc) ir.Var {
	if v == nil {
		return ir.Var{}
	}
	return ir.Var{Method: method, Name: v.Name, Type: convType(v.Type)}
}

func convVars(method string, vs []varDoc) []ir.Var {
	if vs == nil {
		return nil
	}
	out := make([]ir.Var, len(vs))
	for i := range vs {
		out[i] = convVar(method, &vs[i])
	}
	return out
}

func convField(f *fieldDoc) ir.Field {
	if f == nil {
		return ir.Field{}
	}
	return ir.Field{Owner: f.Owner, Name: f.Name, Type: convType(f.Type), Static: f.Static}
}

func convCallKind(kind string) (ir.CallKind, error) {
	switch kind {
	case "", "static":
		return ir.STATIC, nil
	case "special":
		return ir.SPECIAL, nil
	case "virtual":
		return ir.VIRTUAL, nil
	case "interface":
		return ir.INTERFACE, nil
	case "dynamic":
		return ir.DYNAMIC, nil
	default:
		return 0, fmt.Errorf("unknown call kind %q", kind)
	}
}

func convEdgeKind(kind string) (ir.CFGEdgeKind, error) {
	switch kind {
	case "", "unconditional":
		return ir.Unconditional, nil
	case "true":
		return ir.IfTrue, nil
	case "false":
		return ir.IfFalse, nil
	case "case":
		return ir.SwitchCase, nil
	case "default":
		return ir.SwitchDefault, nil
	default:
		return 0, fmt.Errorf("unknown edge kind %q", kind)
	}
}

func convExpr(method string, e *exprDoc) (ir.Expr, error) {
	if e == nil {
		return ir.UnknownExpr{Note: "missing"}, nil
	}
	switch e.Op {
	case "lit":
		return ir.IntLiteral{Value: e.Value}, nil
	case "var":
		return ir.VarExpr{V: convVar(method, e.Var)}, nil
	case "binary":
		op, err := convBinOp(e.BinOp)
		if err != nil {
			return nil, err
		}
		return ir.BinaryExpr{Op: op, X: convVar(method, e.X), Y: convVar(method, e.Y)}, nil
	case "unknown", "":
		return ir.UnknownExpr{Note: e.Note}, nil
	default:
		return nil, fmt.Errorf("unknown expr op %q", e.Op)
	}
}

func convBinOp(op string) (ir.BinOp, error) {
	switch op {
	case "+":
		return ir.ADD, nil
	case "-":
		return ir.SUB, nil
	case "*":
		return ir.MUL, nil
	case "/":
		return ir.DIV, nil
	case "%":
		return ir.REM, nil
	case "&":
		return ir.AND, nil
	case "|":
		return ir.OR, nil
	case "^":
		return ir.XOR, nil
	case "<<":
		return ir.SHL, nil
	case ">>":
		return ir.SHR, nil
	case ">>>":
		return ir.USHR, nil
	default:
		return 0, fmt.Errorf("unknown binary operator %q", op)
	}
}

// convStmt converts one stmtDoc into the ir.Stmt variant its Op selects.
func convStmt(method string, sd stmtDoc) (ir.Stmt, error) {
	switch sd.Op {
	case "new":
		t := ir.Type{}
		if sd.Type != nil {
			t = convType(*sd.Type)
		}
		return &ir.New{LHS: convVar(method, sd.LHS), Type: t}, nil
	case "copy":
		return &ir.Copy{LHS: convVar(method, sd.LHS), RHS: convVar(method, sd.RHSVar)}, nil
	case "loadfield":
		return &ir.LoadField{
			LHS:    convVar(method, sd.LHS),
			Base:   convVar(method, sd.Base),
			Static: sd.Field != nil && sd.Field.Static,
			Field:  convField(sd.Field),
		}, nil
	case "storefield":
		return &ir.StoreField{
			Base:   convVar(method, sd.Base),
			Static: sd.Field != nil && sd.Field.Static,
			Field:  convField(sd.Field),
			RHS:    convVar(method, sd.RHSVar),
		}, nil
	case "loadarray":
		return &ir.LoadArray{LHS: convVar(method, sd.LHS), Base: convVar(method, sd.Base), Index: convVar(method, sd.Index)}, nil
	case "storearray":
		return &ir.StoreArray{Base: convVar(method, sd.Base), Index: convVar(method, sd.Index), RHS: convVar(method, sd.RHSVar)}, nil
	case "invoke":
		kind, err := convCallKind(sd.Kind)
		if err != nil {
			return nil, err
		}
		var recv *ir.Var
		if sd.Receiver != nil {
			v := convVar(method, sd.Receiver)
			recv = &v
		}
		var result *ir.Var
		if sd.Result != nil {
			v := convVar(method, sd.Result)
			result = &v
		}
		var ref ir.MethodRef
		if sd.Method != nil {
			ref = ir.MethodRef{Owner: sd.Method.Owner, Name: sd.Method.Name, Sig: sd.Method.Sig}
		}
		return &ir.Invoke{Result: result, Receiver: recv, Kind: kind, Method: ref, Args: convVars(method, sd.Args)}, nil
	case "if":
		cond, err := convExpr(method, sd.Cond)
		if err != nil {
			return nil, err
		}
		return &ir.If{Cond: cond}, nil
	case "switch":
		return &ir.Switch{Key: convVar(method, sd.Key)}, nil
	case "assign":
		rhs, err := convExpr(method, sd.RHS)
		if err != nil {
			return nil, err
		}
		return &ir.Assign{LHS: convVar(method, sd.LHS), RHS: rhs}, nil
	case "return":
		return &ir.Return{Vars: convVars(method, sd.Vars)}, nil
	case "other", "":
		return &ir.Other{Note: sd.Note}, nil
	default:
		return nil, fmt.Errorf("unknown stmt op %q", sd.Op)
	}
}

// buildMethod converts one methodDoc, declared on class, into an *ir.Method.
func buildMethod(class string, md methodDoc) (*ir.Method, error) {
	name := class + "." + md.Name + md.Sig
	stmts := make([]ir.Stmt, len(md.Stmts))
	for i, sd := range md.Stmts {
		st, err := convStmt(name, sd)
		if err != nil {
			return nil, fmt.Errorf("method %s: stmt %d: %w", name, i, err)
		}
		stmts[i] = st
	}
	edges := make([]ir.CFGEdge, len(md.Edges))
	for i, ed := range md.Edges {
		kind, err := convEdgeKind(ed.Kind)
		if err != nil {
			return nil, fmt.Errorf("method %s: edge %d: %w", name, i, err)
		}
		edges[i] = ir.CFGEdge{From: ed.From, To: ed.To, Kind: kind, CaseValue: ed.CaseValue}
	}
	var this ir.Var
	if !md.Static {
		this = convVar(name, md.This)
	}
	return &ir.Method{
		Class:      class,
		Name:       md.Name,
		Sig:        md.Sig,
		Static:     md.Static,
		This:       this,
		Params:     convVars(name, md.Params),
		ReturnVars: convVars(name, md.ReturnVars),
		Stmts:      stmts,
		Edges:      edges,
	}, nil
}
