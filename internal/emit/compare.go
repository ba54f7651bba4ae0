package emit

import "github.com/mlambacher/bfalc/internal/memlayout"

// This file implements component C5, the predicate and comparison
// emitters: every BFAL condition resolves to RC, which LOOP/IF read
// at dispatch. Grounded on pyfck/pyfck/bfalParser/macros.py's ifCB and
// comparison, and on spec.md §4.5's "difference protocol".

// IfCB is the "magic bit" conditional: it runs inner only if CB is
// currently nonzero, leaving CB unchanged either way. Its exit position is
// data-independent by construction: CB's loop always drains to C2 before
// closing, and the trailing scan always walks back to C0, so SKHP is fixed
// at C0 regardless of which branch ran.
func (e *Emitter) IfCB(inner func(*Emitter)) {
	e.MoveToCell(memlayout.CB)
	e.raw("[")
	inner(e)
	e.MoveToCell(memlayout.C2)
	e.raw("]")
	e.raw("<<[<]")
	e.pos = e.layout.Index(memlayout.C0)
}

// NotZeroV sets RC to the compile-time-constant truth value of v != 0.
func (e *Emitter) NotZeroV(v int) {
	if v != 0 {
		e.SetLiteral(memlayout.ConditionRegister, 1)
	} else {
		e.SetLiteral(memlayout.ConditionRegister, 0)
	}
}

// NotZeroR sets RC to whether register r currently holds a nonzero value.
func (e *Emitter) NotZeroR(r string) {
	e.SetLiteral(memlayout.ConditionRegister, 0)
	e.AddCell(memlayout.CB, r, false)
	e.IfCB(func(e *Emitter) { e.Inc(memlayout.ConditionRegister, 1) })
	e.SetToZero(memlayout.CB)
}

// ZeroV sets RC to the compile-time-constant truth value of v == 0.
func (e *Emitter) ZeroV(v int) {
	if v == 0 {
		e.SetLiteral(memlayout.ConditionRegister, 1)
	} else {
		e.SetLiteral(memlayout.ConditionRegister, 0)
	}
}

// ZeroR sets RC to whether register r currently holds zero.
func (e *Emitter) ZeroR(r string) {
	e.SetLiteral(memlayout.ConditionRegister, 1)
	e.AddCell(memlayout.CB, r, false)
	e.IfCB(func(e *Emitter) { e.Dec(memlayout.ConditionRegister, 1) })
	e.SetToZero(memlayout.CB)
}

// Not negates RC in place.
func (e *Emitter) Not() {
	e.CopyCell(memlayout.CB, memlayout.ConditionRegister, true)
	e.SetLiteral(memlayout.ConditionRegister, 1)
	e.IfCB(func(e *Emitter) { e.Dec(memlayout.ConditionRegister, 1) })
	e.SetToZero(memlayout.CB)
}

// EqualVV sets RC to the compile-time-constant truth value of a == b.
func (e *Emitter) EqualVV(a, b int) {
	e.SetLiteral(memlayout.ConditionRegister, boolInt(a == b))
}

// EqualRV sets RC to whether register r currently equals the literal v.
func (e *Emitter) EqualRV(r string, v int) {
	e.SetLiteral(memlayout.ConditionRegister, 1)
	e.AddCell(memlayout.CB, r, false)
	e.Dec(memlayout.CB, v)
	e.IfCB(func(e *Emitter) { e.Dec(memlayout.ConditionRegister, 1) })
	e.SetToZero(memlayout.CB)
}

// EqualRR sets RC to whether registers a and b currently hold equal
// values. The same register compared to itself is trivially true and
// skips emitting the comparison entirely.
func (e *Emitter) EqualRR(a, b string) {
	e.SetLiteral(memlayout.ConditionRegister, 1)
	if a == b {
		return
	}
	e.AddCell(memlayout.CB, a, false)
	e.SubCell(memlayout.CB, b, false)
	e.IfCB(func(e *Emitter) { e.Dec(memlayout.ConditionRegister, 1) })
	e.SetToZero(memlayout.CB)
}

// NotEqualVV sets RC to the compile-time-constant truth value of a != b.
func (e *Emitter) NotEqualVV(a, b int) {
	e.SetLiteral(memlayout.ConditionRegister, boolInt(a != b))
}

// NotEqualRV sets RC to whether register r currently differs from v.
func (e *Emitter) NotEqualRV(r string, v int) {
	e.SetLiteral(memlayout.ConditionRegister, 0)
	e.AddCell(memlayout.CB, r, false)
	e.Dec(memlayout.CB, v)
	e.IfCB(func(e *Emitter) { e.Inc(memlayout.ConditionRegister, 1) })
	e.SetToZero(memlayout.CB)
}

// NotEqualRR sets RC to whether registers a and b currently differ.
func (e *Emitter) NotEqualRR(a, b string) {
	e.SetLiteral(memlayout.ConditionRegister, 0)
	if a == b {
		return
	}
	e.AddCell(memlayout.CB, a, false)
	e.SubCell(memlayout.CB, b, false)
	e.IfCB(func(e *Emitter) { e.Inc(memlayout.ConditionRegister, 1) })
	e.SetToZero(memlayout.CB)
}

// CompareMode names an ordered comparison's direction and strictness.
type CompareMode int

const (
	Less CompareMode = iota
	LessEqual
	Greater
	GreaterEqual
)

// compareCommon implements spec.md §4.5's difference protocol: both
// operands are added into CA/CB (swapped for the "greater" family, which
// reduces to the "less" family on the swapped pair), CA is bumped by one
// for strict comparisons, and then CA iterations of "if CB is still
// nonzero, RC stays at its running count" drain the difference. CA/CB are
// always the literal cells the inner loop reads, regardless of which
// operand the caller's swap routed through them.
func (e *Emitter) compareCommon(mode CompareMode, a string, emitB func(destB string)) {
	e.SetLiteral(memlayout.ConditionRegister, 1)

	destA, destB := memlayout.CA, memlayout.CB
	strict := mode == Less || mode == Greater
	if mode == Greater || mode == GreaterEqual {
		destA, destB = memlayout.CB, memlayout.CA
	}

	e.AddCell(destA, a, false)
	emitB(destB)

	if strict {
		e.Inc(memlayout.CA, 1)
	}

	e.MoveToCell(memlayout.CA)
	e.DoCellTimes(memlayout.CA, func(e *Emitter) {
		e.IfCB(func(e *Emitter) { e.Inc(memlayout.ConditionRegister, 1) })
		e.Dec(memlayout.ConditionRegister, 1)
		e.Dec(memlayout.CB, 1)
	}, "", true)

	e.SetToZero(memlayout.CB)
}

// CompareRR sets RC to the result of comparing registers a and b under
// mode. a compared to itself is a compile-time-constant outcome.
func (e *Emitter) CompareRR(a, b string, mode CompareMode) {
	if a == b {
		switch mode {
		case Less, Greater:
			e.SetLiteral(memlayout.ConditionRegister, 0)
		case LessEqual, GreaterEqual:
			e.SetLiteral(memlayout.ConditionRegister, 1)
		}
		return
	}
	e.compareCommon(mode, a, func(destB string) { e.AddCell(destB, b, false) })
}

// CompareRV sets RC to the result of comparing register a against the
// literal v under mode.
func (e *Emitter) CompareRV(a string, v int, mode CompareMode) {
	e.compareCommon(mode, a, func(destB string) { e.Inc(destB, v) })
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
