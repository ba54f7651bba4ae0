package bferr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlambacher/bfalc/internal/bferr"
)

func TestErrorFormattingWithoutCommand(t *testing.T) {
	err := bferr.NameErrorf("unknown opcode %s", "FROB")
	assert.Equal(t, "NameError: unknown opcode FROB", err.Error())
}

func TestErrorFormattingWithCommand(t *testing.T) {
	err := bferr.WithCommand(bferr.TypeErrorf("bad arity"), "SET R0")
	assert.Equal(t, "error while parsing the command \"SET R0\":\n\tTypeError: bad arity", err.Error())
}

func TestWithCommandDoesNotOverwrite(t *testing.T) {
	err := bferr.WithCommand(bferr.SyntaxErrorf("x"), "first")
	err2 := bferr.WithCommand(err, "second")
	assert.Equal(t, "first", err2.Command)
}

func TestKindConstructors(t *testing.T) {
	assert.Equal(t, bferr.KindName, bferr.NameErrorf("x").Kind)
	assert.Equal(t, bferr.KindValue, bferr.ValueErrorf("x").Kind)
	assert.Equal(t, bferr.KindType, bferr.TypeErrorf("x").Kind)
	assert.Equal(t, bferr.KindSyntax, bferr.SyntaxErrorf("x").Kind)
}

func TestInternalPanicsWithPrefix(t *testing.T) {
	assert.PanicsWithValue(t, "internal error: no scratch cell available", func() {
		bferr.Internal("", "no scratch cell available")
	})
}

func TestInternalPanicsWithCommandReference(t *testing.T) {
	assert.PanicsWithValue(t, "internal error: bad tag (while compiling \"MUL R0 R1 R2\")", func() {
		bferr.Internal("MUL R0 R1 R2", "bad tag")
	})
}
