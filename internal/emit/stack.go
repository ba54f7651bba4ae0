package emit

import "github.com/mlambacher/bfalc/internal/memlayout"

// This file implements component C6, the stack emitters: a self-
// terminating region of (marker, value) cell pairs past STACK/STACK0,
// scanned from the front on every push and pop. Grounded on
// pyfck/pyfck/bfalParser/macros.py's atStackEnd and the inline PUSH/POP
// handling in parser.py's compile().
//
// PUSH R runs one stack-end scan per unit of the register's value. Each
// scan stops at the terminator pair, whose marker is still zero, and
// increments that pair's value cell; a final scan then sets its marker. The
// result is a single (1, v) pair, the same shape PUSH V writes and the
// shape POP drains back into a register (see DESIGN.md, Open Question 1).

// AtStackEnd scans from STACK to the first pair whose marker reads zero
// (the terminator), runs inner there, then scans back to the nearest zero
// marker behind it and resets SKHP to STACK. inner must not assume a
// statically known position: it may only emit position-relative motion and
// current-cell operations (Inc/Dec with an empty dest, raw motions), never
// MoveToCell/MoveToPos, since the terminator's tape position is
// data-dependent.
func (e *Emitter) AtStackEnd(inner func(*Emitter)) {
	e.MoveToCell(memlayout.Stack)
	e.raw(">>[>>]")
	inner(e)
	e.raw("[<<]")
	e.pos = e.layout.Index(memlayout.Stack)
}

// PushValue appends one (marker=1, value=v) pair.
func (e *Emitter) PushValue(v int) {
	e.AtStackEnd(func(e *Emitter) {
		e.raw("+>")
		e.Inc("", v)
		e.raw("<")
	})
}

// PushRegister appends one (marker=1, value=v) pair holding register r's
// current value v, leaving r unchanged. The value cell is raised one unit
// per scan while the pair's marker is still zero; the marker is set last.
func (e *Emitter) PushRegister(r string) {
	e.DoCellTimes(r, func(e *Emitter) {
		e.AtStackEnd(func(e *Emitter) { e.raw(">+<<<") })
	}, "", false)
	e.AtStackEnd(func(e *Emitter) { e.raw("+") })
}

// Pop drains the topmost pair's value cell into dest, one increment per
// unit of the value, then clears that pair's marker so it becomes the new
// terminator.
//
// The drain loop's brackets span two separate stack-end scans rather
// than nesting inside a single one: the first scan's inner text opens the
// loop ('<[-<'), the increment of dest happens in between, and the second
// scan's inner text closes it ('<]<-<<'). Each scan's own >>[>>] / [<<]
// wrapper is self-balanced, so the two concatenate into one well-formed
// loop. This can't be expressed through AtStackEnd's single-callback form,
// so it's written out directly instead of forcing the abstraction.
func (e *Emitter) Pop(dest string) {
	e.SetLiteral(dest, 0)

	e.MoveToCell(memlayout.Stack)
	e.raw(">>[>>]")
	e.raw("<[-<")
	e.raw("[<<]")
	e.pos = e.layout.Index(memlayout.Stack)

	e.Inc(dest, 1)

	e.MoveToCell(memlayout.Stack)
	e.raw(">>[>>]")
	e.raw("<]<-<<")
	e.raw("[<<]")
	e.pos = e.layout.Index(memlayout.Stack)
}
