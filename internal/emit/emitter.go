// Package emit implements the code generator's single emitter facade
// (spec.md §9, Design Notes: "model this with a single emitter facade
// object that owns SKHP and exposes every operation; avoid a graph of
// mutually-referential free functions"). The Emitter type is that
// facade: it owns the statically known head position (SKHP), the
// scratch-lock multiset, and the accumulating output buffer, and every
// component C2-C6 in spec.md is a method on it, split across files the
// way the teacher (tinyrange-rtg's CodeGen in std/compiler/backend.go)
// splits one large code-generation struct's methods across several
// backend_*.go files by concern.
package emit

import (
	"strings"

	"github.com/mlambacher/bfalc/internal/bferr"
	"github.com/mlambacher/bfalc/internal/memlayout"
)

// Emitter tracks the statically known head position (SKHP) and emits
// target tape language fragments against a fixed memory layout. It is
// not safe for concurrent use; a compilation session owns exactly one
// Emitter (spec.md §5: the core is single-threaded and non-suspending).
type Emitter struct {
	layout *memlayout.Layout
	pos    int
	locked []string // scratch-lock stack, released in LIFO order
	out    strings.Builder
}

// New creates an Emitter positioned at the layout's start position.
func New(layout *memlayout.Layout) *Emitter {
	return &Emitter{layout: layout, pos: layout.StartPos()}
}

// Layout returns the memory layout this emitter generates against.
func (e *Emitter) Layout() *memlayout.Layout { return e.layout }

// Pos returns the statically known head position (SKHP): an invariant
// held to equal the runtime head position at every instruction boundary
// (spec.md §3, Invariant 1).
func (e *Emitter) Pos() int { return e.pos }

// String returns the accumulated target tape language fragment.
func (e *Emitter) String() string { return e.out.String() }

// raw appends target tape language text without touching SKHP. Used only
// by emitters that already account for head motion themselves (e.g. the
// ifCB magic bit, whose final position is data-independent by
// construction — spec.md §4.5).
func (e *Emitter) raw(s string) { e.out.WriteString(s) }

// Repeat emits cmd repeated n times (component C3). n must be
// non-negative; a negative repeat count supplied to a low-level emitter
// is an internal error (spec.md §7) — it cannot arise from user input,
// only from a generator bug.
func (e *Emitter) Repeat(cmd string, n int) {
	if n < 0 {
		bferr.Internal("", "negative repeat count (%d) requested for %q", n, cmd)
	}
	for i := 0; i < n; i++ {
		e.raw(cmd)
	}
}

// MoveToPos emits '>' or '<' repeated |k-SKHP| times and sets SKHP := k.
func (e *Emitter) MoveToPos(k int) {
	dist := k - e.pos
	e.pos = k
	if dist < 0 {
		e.Repeat("<", -dist)
	} else {
		e.Repeat(">", dist)
	}
}

// MoveToCell resolves name to its layout index and moves there.
func (e *Emitter) MoveToCell(name string) {
	e.MoveToPos(e.layout.Index(name))
}

// EmitRaw appends s to the output without moving SKHP. Exposed for the
// dispatcher's control-flow brackets: LOOP/IF open a "[" and ENDLOOP/ENDIF
// close it with "]" from two separate dispatch calls, too far apart for
// Loop's single-call wrapping to express.
func (e *Emitter) EmitRaw(s string) { e.raw(s) }

// Len reports the number of bytes emitted so far, without copying the
// whole accumulated fragment.
func (e *Emitter) Len() int { return e.out.Len() }

// AtCell moves to cell, then emits inner (a literal fragment).
func (e *Emitter) AtCell(cell string, inner string) {
	e.MoveToCell(cell)
	e.raw(inner)
}

// AtCellFunc moves to cell, then runs inner, which may itself emit and
// mutate SKHP (the "closure" variant of AtCell referenced by spec.md
// §4.2; corresponds to the original's "either a string or a callable"
// pattern, resolved here as a plain Go closure rather than a tagged
// Literal/Thunk variant, since Go closures already carry no ambiguity
// about which case they are — see spec.md §9 Design Notes).
func (e *Emitter) AtCellFunc(cell string, inner func(*Emitter)) {
	e.MoveToCell(cell)
	inner(e)
}

// Lock acquires a scratch-cell lock and returns a function that releases
// it. Locks nest LIFO (spec.md §3 "Scratch locks"); callers must defer
// the returned function so release happens on every exit path,
// including errors and panics.
func (e *Emitter) Lock(name string) func() {
	e.locked = append(e.locked, name)
	return func() {
		n := len(e.locked)
		if n == 0 || e.locked[n-1] != name {
			bferr.Internal("", "scratch lock released out of LIFO order for %q", name)
		}
		e.locked = e.locked[:n-1]
	}
}

// isLocked reports whether name is currently held by an enclosing
// emitter in the call chain.
func (e *Emitter) isLocked(name string) bool {
	for _, l := range e.locked {
		if l == name {
			return true
		}
	}
	return false
}

// ClosestScratch searches the layout starting one slot past anchor (or
// the current head position if anchor is empty) in the direction of
// directionCell, and returns the first unlocked scratch slot found. If
// none is found in that direction, it searches in reverse. directionCell
// itself is excluded from the search so composite emitters can search
// "away from" a cell they've already committed to using without extra
// bookkeeping (spec.md §4.2).
//
// Returning no result (i.e. every scratch cell is locked) must not occur
// in well-formed emitters and is reported as an internal error.
func (e *Emitter) ClosestScratch(anchor, directionCell string) string {
	anchorIdx := e.pos
	if anchor != "" {
		anchorIdx = e.layout.Index(anchor)
	}

	dirIdx := anchorIdx + 1
	if directionCell != "" {
		dirIdx = e.layout.Index(directionCell)
	}
	direction := 1
	if dirIdx < anchorIdx {
		direction = -1
	}

	omit := directionCell

	if t := e.findScratch(anchorIdx, direction, omit); t != "" {
		return t
	}
	if t := e.findScratch(anchorIdx, -direction, omit); t != "" {
		return t
	}

	bferr.Internal("", "no unlocked scratch cell available near %q", e.layout.NameAt(anchorIdx))
	panic("unreachable")
}

func (e *Emitter) findScratch(anchorIdx, direction int, omit string) string {
	n := e.layout.Len()
	for i := anchorIdx + direction; i >= 0 && i < n; i += direction {
		name := e.layout.NameAt(i)
		if name == omit {
			continue
		}
		if e.layout.Role(name) != memlayout.RoleScratch {
			continue
		}
		if e.isLocked(name) {
			continue
		}
		return name
	}
	return ""
}
