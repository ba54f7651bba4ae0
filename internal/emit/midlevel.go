package emit

import "github.com/mlambacher/bfalc/internal/memlayout"

// This file implements component C4, the mid-level emitters: cell-to-cell
// arithmetic and text output built from C3 primitives plus scratch locking.
// Grounded on pyfck/pyfck/bfalParser/macros.py's doCellTimes/addCell/
// subCell/copyCell/mulCell/divCell/printText.

// DoCellTimes runs cmds once per unit of count's value, counting count down
// to zero. If dest is non-empty, cmds runs at dest each iteration (moved to
// via AtCellFunc) rather than wherever it left the head the iteration
// before; otherwise cmds is responsible for its own positioning.
//
// When destructive is false, count's value is first copied into a scratch
// cell and restored onto count afterward, so the caller's register is left
// unchanged; this costs one scratch lock for the duration of the call.
func (e *Emitter) DoCellTimes(count string, cmds func(*Emitter), dest string, destructive bool) {
	run := cmds
	if dest != "" {
		run = func(e *Emitter) { e.AtCellFunc(dest, cmds) }
	}

	if destructive {
		e.MoveToCell(count)
		e.Loop(func(e *Emitter) {
			e.Dec("", 1)
			run(e)
			e.MoveToCell(count)
		})
		return
	}

	var temp string
	if dest != "" {
		temp = e.ClosestScratch(dest, count)
	} else {
		temp = e.ClosestScratch(count, "")
	}
	unlock := e.Lock(temp)
	defer unlock()

	e.MoveToCell(count)
	e.Loop(func(e *Emitter) {
		e.Dec("", 1)
		e.Inc(temp, 1)
		run(e)
		e.MoveToCell(count)
	})
	e.MoveToCell(temp)
	e.Loop(func(e *Emitter) {
		e.Dec("", 1)
		e.Inc(count, 1)
		e.MoveToCell(temp)
	})
}

// AddCell adds source's value onto dest, counting source (destructively or
// not, per destructive).
func (e *Emitter) AddCell(dest, source string, destructive bool) {
	e.DoCellTimes(source, func(e *Emitter) { e.Inc("", 1) }, dest, destructive)
}

// SubCell subtracts source's value from dest.
func (e *Emitter) SubCell(dest, source string, destructive bool) {
	e.DoCellTimes(source, func(e *Emitter) { e.Dec("", 1) }, dest, destructive)
}

// CopyCell overwrites dest with source's value. A no-op if dest and source
// name the same cell.
func (e *Emitter) CopyCell(dest, source string, destructive bool) {
	if dest == source {
		return
	}
	e.SetToZero(dest)
	e.AddCell(dest, source, destructive)
}

// MulRV multiplies register a by the literal b into dest. When dest aliases
// a, a's value is preserved in a scratch cell first so zeroing dest doesn't
// destroy the operand.
func (e *Emitter) MulRV(dest, a string, b int) {
	cmds := func(e *Emitter) { e.Inc(dest, b) }
	if dest == a {
		t := e.ClosestScratch(dest, "")
		unlock := e.Lock(t)
		defer unlock()
		e.AddCell(t, a, false)
		e.SetToZero(dest)
		e.DoCellTimes(t, cmds, "", true)
		return
	}
	e.SetToZero(dest)
	e.DoCellTimes(a, cmds, "", false)
}

// MulRR multiplies registers a and b into dest. Aliasing between dest and
// either operand is routed through a scratch cell the same way MulRV does,
// since the operand must survive dest being zeroed.
func (e *Emitter) MulRR(dest, a, b string) {
	// Multiplication commutes, so dest aliasing only b is handled as dest
	// aliasing a.
	if dest == b && dest != a {
		a, b = b, a
	}
	src := b
	cmds := func(e *Emitter) { e.AddCell(dest, src, false) }
	if dest == a || a == b {
		t := e.ClosestScratch(dest, b)
		unlock := e.Lock(t)
		defer unlock()
		e.AddCell(t, a, false)
		if b == dest {
			s := e.ClosestScratch(t, "")
			unlockS := e.Lock(s)
			defer unlockS()
			e.AddCell(s, b, false)
			src = s
		}
		e.SetToZero(dest)
		e.DoCellTimes(t, cmds, "", true)
		if src != b {
			e.SetToZero(src)
		}
		return
	}
	e.SetToZero(dest)
	e.DoCellTimes(a, cmds, "", false)
}

// divPreamble is the part of division shared between the literal-divisor
// and register-divisor forms: acquire a scratch cell near the comparison
// block, preserve a if dest aliases it, then zero dest.
func (e *Emitter) divPreamble(dest, a string) (string, func()) {
	t := e.ClosestScratch(memlayout.CA, "")
	unlock := e.Lock(t)
	if dest == a {
		e.CopyCell(t, a, false)
	}
	e.SetToZero(dest)
	return t, unlock
}

// DivRV computes dest = a / b with truncation toward zero, for a literal
// divisor b. Division by zero yields zero, matching the register form,
// rather than faulting.
func (e *Emitter) DivRV(dest, a string, b int) {
	if b == 0 {
		e.SetToZero(dest)
		return
	}

	t, unlock := e.divPreamble(dest, a)
	defer unlock()

	e.SetLiteral(memlayout.ConditionRegister, 1)
	if dest == a {
		e.CopyCell(memlayout.CB, t, true)
	} else {
		e.CopyCell(memlayout.CB, a, false)
	}
	e.Inc(memlayout.CA, b)

	// Compensate for the loop below always running at least once: drop
	// dest and re-raise CB by b so the first iteration's subtraction nets
	// out to the intended starting remainder.
	e.Dec(dest, 1)
	e.Inc(memlayout.CB, b)

	e.MoveToCell(memlayout.ConditionRegister)
	e.Loop(func(e *Emitter) {
		e.Inc(dest, 1)
		e.Dec(memlayout.CB, b)
		for i := 0; i < b; i++ {
			e.IfCB(func(e *Emitter) { e.Inc(memlayout.ConditionRegister, 1) })
			e.Dec(memlayout.ConditionRegister, 1)
			e.Dec(memlayout.CB, 1)
			e.Inc(t, 1)
		}
		e.DoCellTimes(t, func(e *Emitter) { e.Inc(memlayout.CB, 1) }, "", true)
		e.MoveToCell(memlayout.ConditionRegister)
	})

	e.SetToZero(memlayout.CA)
	e.SetToZero(memlayout.CB)
	e.SetToZero(t)
}

// DivRR computes dest = a / b with truncation toward zero, for a register
// divisor b. b == 0 is tested at run time (the divisor's value isn't known
// until the generated program runs) and yields zero with no fault.
func (e *Emitter) DivRR(dest, a, b string) {
	t, unlock := e.divPreamble(dest, a)
	defer unlock()

	e.SetToZero(memlayout.ConditionRegister)
	e.AddCell(memlayout.CB, b, false)
	e.IfCB(func(e *Emitter) { e.Inc(memlayout.ConditionRegister, 1) })

	e.MoveToCell(memlayout.ConditionRegister)
	e.Loop(func(e *Emitter) {
		if a == b {
			e.Dec("", 1)
			e.Inc(dest, 1)
		} else {
			if dest == a {
				e.CopyCell(memlayout.CB, t, true)
			} else {
				e.CopyCell(memlayout.CB, a, false)
			}
			e.AddCell(memlayout.CA, b, false)
			e.Dec(dest, 1)
			e.AddCell(memlayout.CB, memlayout.CA, false)

			e.MoveToCell(memlayout.ConditionRegister)
			e.Loop(func(e *Emitter) {
				e.Inc(dest, 1)
				e.SubCell(memlayout.CB, memlayout.CA, false)
				e.DoCellTimes(memlayout.CA, func(e *Emitter) {
					e.IfCB(func(e *Emitter) { e.Inc(memlayout.ConditionRegister, 1) })
					e.Dec(memlayout.ConditionRegister, 1)
					e.Dec(memlayout.CB, 1)
					e.Inc(t, 1)
				}, "", true)
				e.DoCellTimes(t, func(e *Emitter) {
					e.Inc(memlayout.CA, 1)
					e.Inc(memlayout.CB, 1)
				}, "", true)
				e.MoveToCell(memlayout.ConditionRegister)
			})
			e.SetToZero(memlayout.CA)
		}
		e.MoveToCell(memlayout.ConditionRegister)
	})

	e.SetToZero(memlayout.CB)
	e.SetToZero(t)
}

// decodeEscapes interprets a small set of backslash escapes (\n, \t, \r,
// \\, \", \xNN) over a Latin-1 source string, matching the text pyfck's
// printText accepted via Python's unicode-escape codec. An escape it
// doesn't recognise, or a truncated \x, is passed through literally rather
// than rejected: PRT's argument already went through the lexer's own quote
// handling, so a malformed escape here is a corner case, not a new class of
// user error worth inventing.
func decodeEscapes(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			out = append(out, c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case '0':
			out = append(out, 0)
		case '\\':
			out = append(out, '\\')
		case '"':
			out = append(out, '"')
		case 'x':
			if hi, ok := hexDigit(s, i+1); ok {
				if lo, ok := hexDigit(s, i+2); ok {
					out = append(out, byte(hi*16+lo))
					i += 2
					continue
				}
			}
			out = append(out, '\\', 'x')
		default:
			out = append(out, '\\', s[i])
		}
	}
	return out
}

func hexDigit(s string, i int) (int, bool) {
	if i >= len(s) {
		return 0, false
	}
	c := s[i]
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// PrintText writes text's decoded bytes to the target tape language's
// output primitive, one at a time, from a single scratch cell: each byte is
// reached from the previous by SetFromTo, so consecutive similar bytes
// (runs of the same letter, ascending/descending sequences) cost little
// more than the difference between them.
func (e *Emitter) PrintText(text string) {
	temp := e.ClosestScratch("", "")
	unlock := e.Lock(temp)
	defer unlock()

	e.MoveToCell(temp)
	cur := 0
	for _, b := range decodeEscapes(text) {
		e.SetFromTo(cur, int(b), "")
		e.raw(".")
		cur = int(b)
	}
	e.raw("[-]")
}
