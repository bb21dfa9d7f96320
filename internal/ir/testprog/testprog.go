// Package testprog builds small hand-written IR programs for use in unit
// tests across the analysis packages, standing in for a real IR builder
// fed from compiled bytecode.
package testprog

import "github.com/1homsi/goflow/internal/ir"

// IntType is the shared integer-shaped type used by test programs.
var IntType = ir.Type{Name: "int", Integer: true}

// ObjType returns a reference-shaped type named name.
func ObjType(name string) ir.Type { return ir.Type{Name: name, Reference: true} }

// V returns a Var in method with the given name and type.
func V(method, name string, typ ir.Type) ir.Var {
	return ir.Var{Method: method, Name: name, Type: typ}
}

// Linear builds a straight-line method (no branches): Entry -> Stmts[0] ->
// ... -> Stmts[n-1] -> Exit.
func Linear(class, name string, params []ir.Var, stmts []ir.Stmt, rets []ir.Var) *ir.Method {
	m := &ir.Method{
		Class:      class,
		Name:       name,
		Params:     params,
		ReturnVars: rets,
		Stmts:      stmts,
	}
	for i := 0; i+1 < len(stmts); i++ {
		m.Edges = append(m.Edges, ir.CFGEdge{From: i, To: i + 1})
	}
	return m
}
