package emit

// This file implements component C3, the low-level emitters: the
// handful of primitive operations every higher-level emitter is built
// from. Grounded on pyfck/pyfck/bfalParser/macros.py's setFromTo/set/
// inc/dec/loop, with the stack-based Lock/ClosestScratch plumbing from
// emitter.go standing in for the original's lockTemp context manager.

// SetFromTo chooses the shorter signed 8-bit path modulo 256 between a
// and b (the difference is normalised into (-128, 128]) and applies it
// as pluses or minuses at dest (or the current cell if dest is empty).
// With b == a it emits no '+' or '-' (only the move to dest, if one is
// given).
func (e *Emitter) SetFromTo(a, b int, dest string) {
	diff := b - a
	if diff > 128 {
		diff -= 256
	} else if diff <= -128 {
		diff += 256
	}

	if diff == 0 {
		if dest != "" {
			e.MoveToCell(dest)
		}
		return
	}
	if diff > 0 {
		e.Inc(dest, diff)
	} else {
		e.Dec(dest, -diff)
	}
}

// SetToZero moves to cell and clears it with the zero-preserving loop
// wrapper '[-]'.
func (e *Emitter) SetToZero(cell string) {
	e.AtCell(cell, "[-]")
}

// SetLiteral zeroes dest then counts up (or down) to v.
func (e *Emitter) SetLiteral(dest string, v int) {
	e.MoveToCell(dest)
	e.raw("[-]")
	e.SetFromTo(0, v, "")
}

// Inc emits '+' v times at dest (or the current cell if dest is empty).
func (e *Emitter) Inc(dest string, v int) {
	if dest == "" {
		e.Repeat("+", v)
		return
	}
	e.MoveToCell(dest)
	e.Repeat("+", v)
}

// Dec emits '-' v times at dest (or the current cell if dest is empty).
func (e *Emitter) Dec(dest string, v int) {
	if dest == "" {
		e.Repeat("-", v)
		return
	}
	e.MoveToCell(dest)
	e.Repeat("-", v)
}

// Loop wraps inner in the target tape language's loop-while-nonzero
// primitives. The target tape language tests the cell the head is on
// both at entry and at each back-edge; the caller must guarantee that,
// on both edges, the head is on the same cell (the loop's anchor cell).
// Violating this is a generator bug, not something Loop itself can
// detect from the emitted text alone.
func (e *Emitter) Loop(inner func(*Emitter)) {
	e.raw("[")
	inner(e)
	e.raw("]")
}
