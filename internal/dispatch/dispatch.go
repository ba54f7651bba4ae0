// Package dispatch implements component C7, the instruction dispatcher: it
// consumes the lexer's classified commands one at a time and routes each to
// the emitter method (or methods) that realises it, folding VV-typed
// instructions to a literal result at compile time instead of emitting any
// target tape language text for them.
//
// Grounded on pyfck/pyfck/bfalParser/parser.py's compile(), read opcode by
// opcode for its exact RVV/RRV/RRR/VV/RV/RR composition rules.
package dispatch

import (
	"strconv"
	"strings"

	"github.com/mlambacher/bfalc/internal/bferr"
	"github.com/mlambacher/bfalc/internal/emit"
	"github.com/mlambacher/bfalc/internal/lexer"
	"github.com/mlambacher/bfalc/internal/memlayout"
	"github.com/mlambacher/bfalc/internal/opcodes"
)

// Dispatcher compiles a whole BFAL source text into a target tape language
// fragment against one Layout, one Lexer, and one Emitter.
type Dispatcher struct {
	Layout  *memlayout.Layout
	Lexer   *lexer.Lexer
	Emitter *emit.Emitter

	ends             []opcodes.Opcode // control-flow-end stack, innermost last
	constantsEmitted bool
}

// New creates a Dispatcher against layout, picking the matching opcode
// catalogue (spec.md §4.7: a layout lacking the comparison block and stack
// region uses opcodes.Basic).
func New(layout *memlayout.Layout) *Dispatcher {
	catalogue := opcodes.Table
	if !layout.HasComparison() || !layout.HasStack() {
		catalogue = opcodes.Basic
	}
	return &Dispatcher{
		Layout:  layout,
		Lexer:   lexer.New(layout.Registers(), catalogue),
		Emitter: emit.New(layout),
	}
}

// Compile runs every line of source through the lexer and dispatcher in
// order and returns the accumulated target tape language fragment. The
// first command that advances the error taxonomy (a *bferr.AssemblyError)
// stops compilation and is returned as-is.
func (d *Dispatcher) Compile(source string) (string, error) {
	for _, line := range strings.Split(source, "\n") {
		if err := d.compileLine(line); err != nil {
			return "", err
		}
	}
	if len(d.ends) != 0 {
		return "", bferr.SyntaxErrorf("unterminated control-flow block: %d still open", len(d.ends))
	}
	return d.Emitter.String(), nil
}

func (d *Dispatcher) compileLine(line string) error {
	cmd, err := d.Lexer.ParseCommand(line)
	if err != nil {
		return err
	}
	if cmd == nil {
		return nil
	}

	if cmd.Opcode == opcodes.ALIAS {
		d.Lexer.SetAlias(cmd.Args[0], cmd.Args[1])
		return nil
	}

	d.ensureConstants()

	if err := d.route(cmd); err != nil {
		return err
	}

	if s := d.Emitter.String(); len(s) > 0 && s[len(s)-1] != '\n' {
		d.Emitter.EmitRaw("\n")
	}
	return nil
}

// ensureConstants emits the constants initialiser exactly once, just before
// the first command that will itself produce code (spec.md §4.7). ALIAS is
// the only command with no code-generation effect, so it is excluded from
// triggering this before compileLine calls ensureConstants.
func (d *Dispatcher) ensureConstants() {
	if d.constantsEmitted {
		return
	}
	d.constantsEmitted = true
	for _, c := range d.Layout.Constants() {
		d.Emitter.Inc(c.Cell, int(c.Value))
	}
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// incOrDec applies a signed literal delta to dest via Inc or Dec, whichever
// matches its sign: Inc/Dec (component C3) only accept a non-negative
// count, so a literal INC/DEC whose argument is negative (e.g. "INC R0
// -1") must route through the opposite primitive rather than hand a
// negative count to Inc/Dec, which would be an internal error (spec.md §8
// property 2 requires mem[R] = (v0+δ) mod 256 for arbitrary δ).
func incOrDec(e *emit.Emitter, dest string, delta int) {
	if delta >= 0 {
		e.Inc(dest, delta)
	} else {
		e.Dec(dest, -delta)
	}
}

func boolLiteral(b bool) int {
	if b {
		return 1
	}
	return 0
}

// route emits cmd's target tape language fragment (or folds it to nothing
// but a constant-register write) onto d.Emitter.
func (d *Dispatcher) route(cmd *lexer.Command) error {
	e := d.Emitter
	a := cmd.Args

	switch cmd.Class {
	case opcodes.ControlFlowStart:
		e.MoveToCell(memlayout.ConditionRegister)
		e.EmitRaw("[")
		end := opcodes.ENDLOOP
		if cmd.Opcode == opcodes.IF {
			end = opcodes.ENDIF
		}
		d.ends = append(d.ends, end)
		return nil

	case opcodes.ControlFlowEnd:
		if len(d.ends) == 0 {
			return bferr.WithCommand(bferr.SyntaxErrorf("unexpected %s: no matching %s or %s", cmd.Opcode, opcodes.LOOP, opcodes.IF), cmd.Source)
		}
		top := d.ends[len(d.ends)-1]
		if top != cmd.Opcode {
			return bferr.WithCommand(bferr.SyntaxErrorf("mismatched control-flow end: expected %s, got %s", top, cmd.Opcode), cmd.Source)
		}
		d.ends = d.ends[:len(d.ends)-1]
		if cmd.Opcode == opcodes.ENDIF {
			e.SetLiteral(memlayout.ConditionRegister, 0)
		} else {
			e.MoveToCell(memlayout.ConditionRegister)
		}
		e.EmitRaw("]")
		return nil

	case opcodes.Special:
		switch cmd.Opcode {
		case opcodes.PRT:
			e.PrintText(a[0])
		default:
			bferr.Internal(cmd.Source, "unhandled special opcode %s", cmd.Opcode)
		}
		return nil
	}

	switch cmd.Opcode {
	case opcodes.SET:
		switch cmd.Type {
		case "RV":
			e.SetLiteral(a[0], atoi(a[1]))
		case "RR":
			e.CopyCell(a[0], a[1], false)
		}
	case opcodes.STZ:
		e.SetToZero(a[0])
	case opcodes.INC:
		switch cmd.Type {
		case "R":
			e.Inc(a[0], 1)
		case "RV":
			incOrDec(e, a[0], atoi(a[1]))
		case "RR":
			e.AddCell(a[0], a[1], false)
		}
	case opcodes.DEC:
		switch cmd.Type {
		case "R":
			e.Dec(a[0], 1)
		case "RV":
			incOrDec(e, a[0], -atoi(a[1]))
		case "RR":
			e.SubCell(a[0], a[1], false)
		}
	case opcodes.ADD:
		switch cmd.Type {
		case "RVV":
			e.SetLiteral(a[0], atoi(a[1])+atoi(a[2]))
		case "RRV":
			e.CopyCell(a[0], a[1], false)
			incOrDec(e, a[0], atoi(a[2]))
		case "RRR":
			e.CopyCell(a[0], a[1], false)
			e.AddCell(a[0], a[2], false)
		}
	case opcodes.SUB:
		switch cmd.Type {
		case "RVV":
			e.SetLiteral(a[0], atoi(a[1])-atoi(a[2]))
		case "RRV":
			e.CopyCell(a[0], a[1], false)
			incOrDec(e, a[0], -atoi(a[2]))
		case "RRR":
			e.CopyCell(a[0], a[1], false)
			e.SubCell(a[0], a[2], false)
		}
	case opcodes.MUL:
		switch cmd.Type {
		case "RVV":
			e.SetLiteral(a[0], atoi(a[1])*atoi(a[2]))
		case "RRV":
			e.MulRV(a[0], a[1], atoi(a[2]))
		case "RRR":
			e.MulRR(a[0], a[1], a[2])
		}
	case opcodes.DIV:
		switch cmd.Type {
		case "RVV":
			b := atoi(a[2])
			q := 0
			if b != 0 {
				q = atoi(a[1]) / b
			}
			e.SetLiteral(a[0], q)
		case "RRV":
			e.DivRV(a[0], a[1], atoi(a[2]))
		case "RRR":
			e.DivRR(a[0], a[1], a[2])
		}
	case opcodes.INP:
		e.AtCell(a[0], ",")
	case opcodes.OUT:
		e.AtCell(a[0], ".")
	case opcodes.PUSH:
		switch cmd.Type {
		case "V":
			e.PushValue(atoi(a[0]))
		case "R":
			e.PushRegister(a[0])
		}
	case opcodes.POP:
		e.Pop(a[0])

	case opcodes.TRUE:
		e.SetLiteral(memlayout.ConditionRegister, 1)
	case opcodes.FALSE:
		e.SetLiteral(memlayout.ConditionRegister, 0)
	case opcodes.NOT:
		e.Not()
	case opcodes.NZR:
		switch cmd.Type {
		case "V":
			e.NotZeroV(atoi(a[0]))
		case "R":
			e.NotZeroR(a[0])
		}
	case opcodes.ZR:
		switch cmd.Type {
		case "V":
			e.ZeroV(atoi(a[0]))
		case "R":
			e.ZeroR(a[0])
		}
	case opcodes.EQ:
		switch cmd.Type {
		case "VV":
			e.EqualVV(atoi(a[0]), atoi(a[1]))
		case "RV":
			e.EqualRV(a[0], atoi(a[1]))
		case "RR":
			e.EqualRR(a[0], a[1])
		}
	case opcodes.NE:
		switch cmd.Type {
		case "VV":
			e.NotEqualVV(atoi(a[0]), atoi(a[1]))
		case "RV":
			e.NotEqualRV(a[0], atoi(a[1]))
		case "RR":
			e.NotEqualRR(a[0], a[1])
		}
	case opcodes.GT:
		routeOrderedCompare(e, cmd, emit.Greater, func(x, y int) bool { return x > y })
	case opcodes.GE:
		routeOrderedCompare(e, cmd, emit.GreaterEqual, func(x, y int) bool { return x >= y })
	case opcodes.LT:
		routeOrderedCompare(e, cmd, emit.Less, func(x, y int) bool { return x < y })
	case opcodes.LE:
		routeOrderedCompare(e, cmd, emit.LessEqual, func(x, y int) bool { return x <= y })

	default:
		bferr.Internal(cmd.Source, "unhandled opcode %s", cmd.Opcode)
	}
	return nil
}

// routeOrderedCompare handles the four strictly-ordered predicates, whose
// VV/RV/RR shapes are identical apart from the comparator and emit.Mode.
func routeOrderedCompare(e *emit.Emitter, cmd *lexer.Command, mode emit.CompareMode, cmp func(x, y int) bool) {
	a := cmd.Args
	switch cmd.Type {
	case "VV":
		e.SetLiteral(memlayout.ConditionRegister, boolLiteral(cmp(atoi(a[0]), atoi(a[1]))))
	case "RV":
		e.CompareRV(a[0], atoi(a[1]), mode)
	case "RR":
		e.CompareRR(a[0], a[1], mode)
	}
}
