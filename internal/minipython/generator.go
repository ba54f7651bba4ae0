package minipython

import (
	"fmt"
	"strings"
)

// maxVariables caps MiniPython variables at 5 rather than the full 8
// general-purpose registers: R0-R2 are reserved as the generator's own
// scratch registers for expression evaluation (see visitBinary/
// visitComparison), matching pyfck/pyfck/minipython/bfalGenerator.py's
// literal choice of R0/R1/R2 as scratch. A variable occupying one of those
// three would be clobbered the first time an expression was evaluated.
const maxVariables = 5

// firstVariableRegister is R3, the lowest register not reserved as scratch.
const firstVariableRegister = 3

// Generator lowers a parsed MiniPython Program to BFAL source text, one
// visitor method per AST node kind, in the shape of bfalGenerator.py's
// BFALGenerator.visit.
type Generator struct {
	vars map[string]string
	next int
	cmds []string
}

// NewGenerator creates a Generator with no declared variables yet.
func NewGenerator() *Generator {
	return &Generator{vars: map[string]string{}, next: firstVariableRegister}
}

// Generate lowers program to a BFAL source text ready for dispatch.Compile.
func (g *Generator) Generate(program *Program) (string, error) {
	g.cmds = nil
	for _, name := range program.Declarations {
		if err := g.declare(name); err != nil {
			return "", err
		}
	}
	if err := g.visitStatement(program.Statement); err != nil {
		return "", err
	}
	return strings.Join(g.cmds, "\n"), nil
}

func (g *Generator) declare(name string) error {
	if _, exists := g.vars[name]; exists {
		return fmt.Errorf("variable %q declared twice", name)
	}
	if len(g.vars) >= maxVariables {
		return fmt.Errorf("too many variables: at most %d are supported", maxVariables)
	}
	g.vars[name] = fmt.Sprintf("R%d", g.next)
	g.next++
	return nil
}

func (g *Generator) registerFor(name string) (string, error) {
	reg, ok := g.vars[name]
	if !ok {
		return "", fmt.Errorf("undeclared variable %q", name)
	}
	return reg, nil
}

func (g *Generator) emit(format string, args ...any) {
	g.cmds = append(g.cmds, fmt.Sprintf(format, args...))
}

func (g *Generator) visitStatement(s Statement) error {
	switch v := s.(type) {
	case *Block:
		for _, stmt := range v.Statements {
			if err := g.visitStatement(stmt); err != nil {
				return err
			}
		}
		return nil

	case *Assignment:
		reg, err := g.registerFor(v.Name)
		if err != nil {
			return err
		}
		if err := g.visitExpression(v.Expr); err != nil {
			return err
		}
		g.emit("POP %s", reg)
		return nil

	case *Write:
		if err := g.visitExpression(v.Expr); err != nil {
			return err
		}
		g.emit("POP R0")
		g.emit("OUT R0")
		return nil

	case *IfThen:
		if err := g.visitCondition(v.Cond); err != nil {
			return err
		}
		g.emit("IF")
		if err := g.visitStatement(v.Then); err != nil {
			return err
		}
		g.emit("ENDIF")
		return nil

	case *While:
		// Unlike pyfck's generator (which never implements While), this
		// re-evaluates Cond a second time at the end of the body: LOOP's
		// backedge tests RC's current value natively, so RC must hold a
		// freshly recomputed result there, not whatever the body last
		// left behind (e.g. from a nested IfThen's own comparison).
		if err := g.visitCondition(v.Cond); err != nil {
			return err
		}
		g.emit("LOOP")
		if err := g.visitStatement(v.Body); err != nil {
			return err
		}
		if err := g.visitCondition(v.Cond); err != nil {
			return err
		}
		g.emit("ENDLOOP")
		return nil

	default:
		return fmt.Errorf("unhandled statement type %T", s)
	}
}

func (g *Generator) visitExpression(e Expression) error {
	switch v := e.(type) {
	case *Number:
		if v.Value < 0 || v.Value > 255 {
			return fmt.Errorf("number %d out of range 0-255", v.Value)
		}
		g.emit("PUSH %d", v.Value)
		return nil

	case *Variable:
		reg, err := g.registerFor(v.Name)
		if err != nil {
			return err
		}
		g.emit("PUSH %s", reg)
		return nil

	case *ReadExpr:
		g.emit("INP R0")
		g.emit("PUSH R0")
		return nil

	case *Binary:
		return g.visitBinary(v)

	default:
		return fmt.Errorf("unhandled expression type %T", e)
	}
}

// visitBinary evaluates both operands onto the stack, then pops them into
// R0 (lhs) and R1 (rhs) for the arithmetic opcode, and pushes the result
// from R2. The original pops in the opposite order (rhs into R0, lhs into
// R1), which silently computes "rhs op lhs" for SUB and DIV; this corrects
// the pop order so non-commutative operators see their operands the right
// way round.
func (g *Generator) visitBinary(b *Binary) error {
	if err := g.visitExpression(b.Lhs); err != nil {
		return err
	}
	if err := g.visitExpression(b.Rhs); err != nil {
		return err
	}
	g.emit("POP R1")
	g.emit("POP R0")

	switch b.Op {
	case Add:
		g.emit("ADD R2 R0 R1")
	case Sub:
		g.emit("SUB R2 R0 R1")
	case Mul:
		g.emit("MUL R2 R0 R1")
	case Div:
		g.emit("DIV R2 R0 R1")
	default:
		return fmt.Errorf("unhandled binary operator %v", b.Op)
	}
	g.emit("PUSH R2")
	return nil
}

func (g *Generator) visitCondition(c Condition) error {
	switch v := c.(type) {
	case *True:
		g.emit("TRUE")
		return nil
	case *False:
		g.emit("FALSE")
		return nil
	case *Not:
		if err := g.visitCondition(v.Operand); err != nil {
			return err
		}
		g.emit("NOT")
		return nil
	case *Comparison:
		return g.visitComparison(v)
	default:
		return fmt.Errorf("unhandled condition type %T", c)
	}
}

// visitComparison mirrors visitBinary's pop-order fix. Unlike the original
// (which emits a stray "PUSH R2" after every comparison, even though
// EQ/NE/LT/LE/GT/GE write RC, never R2), this leaves the result only in RC:
// IF/LOOP/NOT all read a condition's result from RC directly, never from
// the stack, so pushing anything here would leave a dangling stack entry.
func (g *Generator) visitComparison(c *Comparison) error {
	if err := g.visitExpression(c.Lhs); err != nil {
		return err
	}
	if err := g.visitExpression(c.Rhs); err != nil {
		return err
	}
	g.emit("POP R1")
	g.emit("POP R0")

	switch c.Op {
	case Eq:
		g.emit("EQ R0 R1")
	case Ne:
		g.emit("NE R0 R1")
	case Lt:
		g.emit("LT R0 R1")
	case Le:
		g.emit("LE R0 R1")
	case Gt:
		g.emit("GT R0 R1")
	case Ge:
		g.emit("GE R0 R1")
	default:
		return fmt.Errorf("unhandled comparison operator %v", c.Op)
	}
	return nil
}
