// Package deadcode is a small client over the constant-propagation and CFG
// packages, demonstrating the lattice's use outside the
// constant-propagation engine itself: given a method's CFG, a
// constant-propagation result and a live-variable result, it reports
// unreachable statements and assignments whose value is never observed.
package deadcode

import (
	"github.com/1homsi/goflow/internal/cfg"
	"github.com/1homsi/goflow/internal/constprop"
	"github.com/1homsi/goflow/internal/dataflow"
	"github.com/1homsi/goflow/internal/ir"
)

// Reason classifies why a statement was reported.
type Reason int

const (
	// Unreachable means no CFG path from entry, given the branches constant
	// propagation could resolve, ever reaches the statement.
	Unreachable Reason = iota
	// DeadAssignment means the statement assigns a variable that is not
	// live at its OUT and whose right-hand side has no side effect.
	DeadAssignment
)

func (r Reason) String() string {
	if r == DeadAssignment {
		return "dead-assignment"
	}
	return "unreachable"
}

// Finding is one dead-code report entry.
type Finding struct {
	Node   cfg.Node
	Reason Reason
}

// Analyze implements exactly: breadth-first traverse reachable
// statements from entry, following only the constant-matching successor of
// an If/Switch when its condition/key resolves to a constant; then, among
// the visited statements, mark dead assignments using live. cp and live
// must have been solved over g (cp via constprop.Intra, live via Liveness).
func Analyze(g *cfg.Graph, cp, live *dataflow.Result) []Finding {
	m := g.Method
	visited := make(map[int]bool, len(m.Stmts))
	var queue []int
	if e := m.Entry(); e >= 0 {
		queue = append(queue, e)
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if visited[i] {
			continue
		}
		visited[i] = true
		node := cfg.Node{Method: m, Index: i}
		for _, succ := range succIndices(m, i, cp.Out[node]) {
			if !visited[succ] {
				queue = append(queue, succ)
			}
		}
	}

	var findings []Finding
	for i, st := range m.Stmts {
		node := cfg.Node{Method: m, Index: i}
		if !visited[i] {
			findings = append(findings, Finding{Node: node, Reason: Unreachable})
			continue
		}
		if isDeadAssignment(st, live.Out[node]) {
			findings = append(findings, Finding{Node: node, Reason: DeadAssignment})
		}
	}
	return findings
}

// succIndices returns the statement indices n's outgoing edges reach, given
// n's OUT constant-propagation fact: every edge when the branch can't be
// resolved to a constant, otherwise only the edge(s) matching the resolved
// value (the If/Switch rule).
func succIndices(m *ir.Method, i int, outFact dataflow.Fact) []int {
	edges := m.Successors(i)
	if len(edges) == 0 {
		return nil
	}

	cpFact := constprop.FactOf(outFact)
	switch s := m.Stmts[i].(type) {
	case *ir.If:
		val := constprop.Eval(s.Cond, cpFact)
		if val.IsConst() {
			want := ir.IfFalse
			if val.ConstValue() != 0 {
				want = ir.IfTrue
			}
			return edgesOfKind(edges, want)
		}

	case *ir.Switch:
		key := cpFact.Get(s.Key)
		if key.IsConst() {
			for _, e := range edges {
				if e.Kind == ir.SwitchCase && e.CaseValue == key.ConstValue() {
					return []int{e.To}
				}
			}
			return edgesOfKind(edges, ir.SwitchDefault)
		}
	}

	out := make([]int, len(edges))
	for j, e := range edges {
		out[j] = e.To
	}
	return out
}

func edgesOfKind(edges []ir.CFGEdge, kind ir.CFGEdgeKind) []int {
	var out []int
	for _, e := range edges {
		if e.Kind == kind {
			out = append(out, e.To)
		}
	}
	return out
}

// isDeadAssignment implements the RHS side-effect exclusion list:
// new, cast (folded into UnknownExpr), field/array access (their own Stmt
// kinds, never reach here) and DIV/REM (may raise on a zero divisor) are
// never eligible, regardless of liveness.
func isDeadAssignment(st ir.Stmt, outFact dataflow.Fact) bool {
	switch s := st.(type) {
	case *ir.Copy:
		return !IsLive(outFact, s.LHS)
	case *ir.Assign:
		if !sideEffectFree(s.RHS) {
			return false
		}
		return !IsLive(outFact, s.LHS)
	default:
		return false
	}
}

func sideEffectFree(e ir.Expr) bool {
	switch ex := e.(type) {
	case ir.IntLiteral, ir.VarExpr:
		return true
	case ir.BinaryExpr:
		return ex.Op != ir.DIV && ex.Op != ir.REM
	default:
		return false
	}
}
