// Package bferr defines the two disjoint error taxonomies used across the
// compiler: user errors, produced by the lexing/dispatch boundary from bad
// BFAL source, and internal errors, which indicate a bug in the generator
// itself and are never attributable to user input.
package bferr

import "fmt"

// Kind names an AssemblyError the way the original parser's exception
// classes did (NameError, ValueError, TypeError, SyntaxError).
type Kind string

const (
	KindName     Kind = "NameError"
	KindValue    Kind = "ValueError"
	KindType     Kind = "TypeError"
	KindSyntax   Kind = "SyntaxError"
	KindGeneral  Kind = "GeneralError"
)

// AssemblyError is a user error: something wrong with the BFAL source,
// reported with the originating command so the user can fix it.
type AssemblyError struct {
	Kind    Kind
	Command string
	Msg     string
}

func (e *AssemblyError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("error while parsing the command %q:\n\t%s: %s", e.Command, e.Kind, e.Msg)
}

func newf(kind Kind, format string, args ...any) *AssemblyError {
	return &AssemblyError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NameErrorf(format string, args ...any) *AssemblyError   { return newf(KindName, format, args...) }
func ValueErrorf(format string, args ...any) *AssemblyError  { return newf(KindValue, format, args...) }
func TypeErrorf(format string, args ...any) *AssemblyError   { return newf(KindType, format, args...) }
func SyntaxErrorf(format string, args ...any) *AssemblyError { return newf(KindSyntax, format, args...) }

// WithCommand returns a copy of err annotated with the source command it
// was raised while parsing, unless it already carries one.
func WithCommand(err *AssemblyError, command string) *AssemblyError {
	if err.Command != "" {
		return err
	}
	cp := *err
	cp.Command = command
	return &cp
}

// Internal panics with the "internal error" prefix mandated by spec.md §7,
// mirroring the teacher's `panic("ICE: ...")` convention (ir.go) for
// invariant violations inside the generator: unknown opcode/type/class
// reaching the dispatcher, a negative repeat count, no scratch cell
// available, or an unhandled comparison/multiplication/division type tag.
// It must never be reached by well-formed emitters; reaching it is a
// generator bug, not a user error.
func Internal(command string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if command != "" {
		panic(fmt.Sprintf("internal error: %s (while compiling %q)", msg, command))
	}
	panic(fmt.Sprintf("internal error: %s", msg))
}
