package constprop

import (
	"testing"

	"github.com/1homsi/goflow/internal/ir"
	"github.com/1homsi/goflow/internal/ir/testprog"
	"github.com/1homsi/goflow/internal/lattice"
)

func TestEvalBinaryDivByConstZero(t *testing.T) {
	in := lattice.NewCPFact()
	x := testprog.V("M.m", "x", testprog.IntType)
	zero := testprog.V("M.m", "zero", testprog.IntType)
	in.Update(x, lattice.Const(10))
	in.Update(zero, lattice.Const(0))

	got := Eval(ir.BinaryExpr{Op: ir.DIV, X: x, Y: zero}, in)
	if !got.Equal(lattice.NAC) {
		t.Errorf("10/0 = %v, want NAC (not a panic)", got)
	}
	got = Eval(ir.BinaryExpr{Op: ir.REM, X: x, Y: zero}, in)
	if !got.Equal(lattice.NAC) {
		t.Errorf("10%%0 = %v, want NAC", got)
	}
}

func TestEvalBinaryBothConst(t *testing.T) {
	in := lattice.NewCPFact()
	a := testprog.V("M.m", "a", testprog.IntType)
	b := testprog.V("M.m", "b", testprog.IntType)
	in.Update(a, lattice.Const(7))
	in.Update(b, lattice.Const(3))

	cases := []struct {
		op   ir.BinOp
		want int32
	}{
		{ir.ADD, 10}, {ir.SUB, 4}, {ir.MUL, 21}, {ir.DIV, 2}, {ir.REM, 1},
	}
	for _, c := range cases {
		got := Eval(ir.BinaryExpr{Op: c.op, X: a, Y: b}, in)
		if !got.Equal(lattice.Const(c.want)) {
			t.Errorf("7 %s 3 = %v, want Const(%d)", c.op, got, c.want)
		}
	}
}

func TestEvalBinaryNACPropagates(t *testing.T) {
	in := lattice.NewCPFact()
	a := testprog.V("M.m", "a", testprog.IntType)
	nacVar := testprog.V("M.m", "n", testprog.IntType)
	in.Update(a, lattice.Const(7))
	in.Update(nacVar, lattice.NAC)

	got := Eval(ir.BinaryExpr{Op: ir.ADD, X: a, Y: nacVar}, in)
	if !got.Equal(lattice.NAC) {
		t.Errorf("const + NAC = %v, want NAC", got)
	}
}

func TestEvalBinaryUndefWithoutNACStaysUndef(t *testing.T) {
	in := lattice.NewCPFact()
	a := testprog.V("M.m", "a", testprog.IntType)
	u := testprog.V("M.m", "u", testprog.IntType)
	in.Update(a, lattice.Const(7))
	// u is never bound: stays Undef.

	got := Eval(ir.BinaryExpr{Op: ir.ADD, X: a, Y: u}, in)
	if !got.IsUndef() {
		t.Errorf("const + UNDEF = %v, want UNDEF", got)
	}
}

func TestShiftCountMasked(t *testing.T) {
	in := lattice.NewCPFact()
	a := testprog.V("M.m", "a", testprog.IntType)
	shift := testprog.V("M.m", "s", testprog.IntType)
	in.Update(a, lattice.Const(1))
	in.Update(shift, lattice.Const(33)) // 33 & 31 == 1

	got := Eval(ir.BinaryExpr{Op: ir.SHL, X: a, Y: shift}, in)
	if !got.Equal(lattice.Const(2)) {
		t.Errorf("1 << 33 = %v, want Const(2) (shift count masked to 5 bits)", got)
	}
}
