package dataflow

import (
	"github.com/1homsi/goflow/internal/cfg"
	"github.com/1homsi/goflow/internal/logx"
)

// Result holds the IN/OUT facts computed for every node of a CFG.
type Result struct {
	In, Out map[cfg.Node]Fact
}

// worklist is a FIFO queue of nodes with O(1) membership testing, a
// slice plus a membership set rather than a sorted slice since node identity here is
// already comparable and total order isn't needed for correctness, only
// for enqueue-order determinism, which insertion order gives us directly.
type worklist struct {
	queue []cfg.Node
	in    map[cfg.Node]bool
}

func newWorklist() *worklist { return &worklist{in: make(map[cfg.Node]bool)} }

func (w *worklist) push(n cfg.Node) {
	if w.in[n] {
		return
	}
	w.in[n] = true
	w.queue = append(w.queue, n)
}

func (w *worklist) pop() cfg.Node {
	n := w.queue[0]
	w.queue = w.queue[1:]
	delete(w.in, n)
	return n
}

func (w *worklist) empty() bool { return len(w.queue) == 0 }

// Solve runs analysis a to a fixpoint over g:
// forward analyses seed OUT(entry) with the boundary fact and recompute
// IN(n) as the meet of predecessors' OUT; backward analyses are the
// symmetric mirror image with entry/exit and preds/succs swapped.
func Solve(g *cfg.Graph, a Analysis) *Result {
	res := &Result{In: make(map[cfg.Node]Fact), Out: make(map[cfg.Node]Fact)}
	nodes := g.Nodes()
	for _, n := range nodes {
		res.In[n] = a.NewInitialFact()
		res.Out[n] = a.NewInitialFact()
	}

	wl := newWorklist()
	if a.IsForward() {
		res.Out[g.Entry()] = a.NewBoundaryFact(g)
	} else {
		res.In[g.Exit()] = a.NewBoundaryFact(g)
	}
	for _, n := range nodes {
		wl.push(n)
	}

	logx.Debugf("[dataflow] solving %d-node CFG, forward=%v", len(nodes), a.IsForward())

	for !wl.empty() {
		n := wl.pop()
		if a.IsForward() {
			if n.IsEntry() {
				continue
			}
			res.In[n] = meetAll(a, res.Out, g.Preds(n))
			if a.Transfer(n, res.In[n], res.Out[n]) {
				for _, succ := range g.Succs(n) {
					wl.push(succ)
				}
			}
		} else {
			if n.IsExit() {
				continue
			}
			res.Out[n] = meetAll(a, res.In, g.Succs(n))
			if a.Transfer(n, res.Out[n], res.In[n]) {
				for _, pred := range g.Preds(n) {
					wl.push(pred)
				}
			}
		}
	}
	return res
}

func meetAll(a Analysis, facts map[cfg.Node]Fact, nodes []cfg.Node) Fact {
	result := a.NewInitialFact()
	for _, n := range nodes {
		result = a.Meet(result, facts[n])
	}
	return result
}
