// Package memlayout names the fixed cell positions the code generator
// emits against and classifies them into roles, corresponding to
// spec.md §3 "Memory Layout (compile-time, static)" and component C1.
//
// Everything here is a pure, compile-time constant: there is no dynamic
// cell allocation (spec.md §1 Non-goals) and the layout never changes
// once constructed.
package memlayout

import "github.com/mlambacher/bfalc/internal/bferr"

// Role classifies a named cell slot.
type Role int

const (
	RoleReserved Role = iota
	RoleRegister
	RoleScratch
	RoleStack
)

func (r Role) String() string {
	switch r {
	case RoleReserved:
		return "reserved"
	case RoleRegister:
		return "register"
	case RoleScratch:
		return "scratch"
	case RoleStack:
		return "stack"
	default:
		return "unknown"
	}
}

// Constant is a (cell, literal) pair initialised at program start.
type Constant struct {
	Cell  string
	Value byte
}

// Layout is an ordered, immutable sequence of named cell slots.
type Layout struct {
	names     []string
	roles     map[string]Role
	index     map[string]int
	registers []string
	scratch   []string
	constants []Constant
	hasCmp    bool
	hasStack  bool
}

// ConditionRegister is the designated cell whose runtime value drives
// every IF/LOOP control-flow construct (spec.md GLOSSARY, "RC").
const ConditionRegister = "RC"

// Comparison block cell names, placed contiguously and before RC.
const (
	C0 = "C0"
	C1 = "C1"
	C2 = "C2"
	CB = "CB"
	CA = "CA"
)

// Stack anchor cells.
const (
	Stack  = "STACK"
	Stack0 = "STACK0"
)

const numRegisters = 8
const numScratch = 8

// Full builds the canonical layout with the comparison block and the
// stack region enabled:
//
//	C0, C1, C2, CB, CA, RC, R0, T0, R1, T1, …, R7, T7, STACK, STACK0
//
// Registers and scratch cells are interleaved to keep a scratch cell
// within one hop of every register (spec.md §3).
func Full() *Layout {
	l := &Layout{roles: map[string]Role{}, index: map[string]int{}, hasCmp: true, hasStack: true}

	for _, c := range []string{C0, C1, C2, CB, CA} {
		l.append(c, RoleReserved)
	}
	l.append(ConditionRegister, RoleReserved)

	for i := 0; i < numRegisters; i++ {
		r := registerName(i)
		t := scratchName(i)
		l.append(r, RoleRegister)
		l.registers = append(l.registers, r)
		l.append(t, RoleScratch)
		l.scratch = append(l.scratch, t)
	}

	l.append(Stack, RoleStack)
	l.append(Stack0, RoleStack)

	l.constants = []Constant{{Cell: C1, Value: 1}}

	return l
}

// Basic builds the earlier generation's layout that lacks the
// comparison block and the stack region (spec.md §4.7: "A generation of
// the language lacks the stack and the comparison block; in that
// layout, PUSH/POP/ordered-comparisons are simply absent from the
// dispatch table — no other change is required."):
//
//	RC, R0, T0, R1, T1, …, R7, T7
func Basic() *Layout {
	l := &Layout{roles: map[string]Role{}, index: map[string]int{}}

	l.append(ConditionRegister, RoleReserved)
	for i := 0; i < numRegisters; i++ {
		r := registerName(i)
		t := scratchName(i)
		l.append(r, RoleRegister)
		l.registers = append(l.registers, r)
		l.append(t, RoleScratch)
		l.scratch = append(l.scratch, t)
	}

	return l
}

func (l *Layout) append(name string, role Role) {
	l.index[name] = len(l.names)
	l.names = append(l.names, name)
	l.roles[name] = role
}

func registerName(i int) string { return "R" + string(rune('0'+i)) }
func scratchName(i int) string  { return "T" + string(rune('0'+i)) }

// Names returns the ordered slot names.
func (l *Layout) Names() []string { return l.names }

// Len returns the number of slots in the layout.
func (l *Layout) Len() int { return len(l.names) }

// StartPos is the initial head position (spec.md §3: "usually cell 0").
func (l *Layout) StartPos() int { return 0 }

// Index resolves a cell name to its slot index. It panics with an
// internal error if the name is not in the layout — a generator bug,
// since every cell name an emitter uses must come from this package's
// constants or from a user-supplied register already validated by the
// lexer boundary.
func (l *Layout) Index(name string) int {
	idx, ok := l.index[name]
	if !ok {
		bferr.Internal("", "unknown cell %q in memory layout", name)
	}
	return idx
}

// HasIndex reports whether name is a known cell, without panicking.
func (l *Layout) HasIndex(name string) (int, bool) {
	idx, ok := l.index[name]
	return idx, ok
}

// NameAt returns the cell name at a given slot index.
func (l *Layout) NameAt(pos int) string {
	if pos < 0 || pos >= len(l.names) {
		bferr.Internal("", "memory layout position %d out of range", pos)
	}
	return l.names[pos]
}

// Role reports the role of a named cell.
func (l *Layout) Role(name string) Role {
	role, ok := l.roles[name]
	if !ok {
		bferr.Internal("", "unknown cell %q in memory layout", name)
	}
	return role
}

// IsRegister reports whether name is a general-purpose register.
func (l *Layout) IsRegister(name string) bool {
	idx, ok := l.index[name]
	return ok && l.roles[l.names[idx]] == RoleRegister
}

// Registers returns the general-purpose register names R0..R7, in order.
func (l *Layout) Registers() []string { return l.registers }

// Scratch returns the scratch cell names T0..T7, in order.
func (l *Layout) Scratch() []string { return l.scratch }

// Constants returns the (cell, literal) pairs to initialise at program
// start (spec.md §3 "Constants").
func (l *Layout) Constants() []Constant { return l.constants }

// HasComparison reports whether the comparison block (C0,C1,C2,CB,CA)
// and the RC-driven ifCB machinery are present in this layout.
func (l *Layout) HasComparison() bool { return l.hasCmp }

// HasStack reports whether the trailing stack region is present.
func (l *Layout) HasStack() bool { return l.hasStack }
