package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlambacher/bfalc/internal/emit"
	"github.com/mlambacher/bfalc/internal/memlayout"
)

func TestPushValuePopRoundTrip(t *testing.T) {
	r := build(t, fullLayout(), func(e *emit.Emitter) {
		e.PushValue(65)
		e.Pop("R0")
	})
	assert.Equal(t, byte(65), r.cell("R0"))
}

func TestPushValueLIFOOrder(t *testing.T) {
	r := build(t, fullLayout(), func(e *emit.Emitter) {
		e.PushValue(65)
		e.PushValue(66)
		e.Pop("R0")
		e.Pop("R1")
	})
	assert.Equal(t, byte(66), r.cell("R0"))
	assert.Equal(t, byte(65), r.cell("R1"))
}

func TestStackShapeRestoredAfterPushPop(t *testing.T) {
	layout := fullLayout()
	r := build(t, layout, func(e *emit.Emitter) {
		e.PushValue(42)
		e.Pop("R0")
	})
	stackStart := layout.Index(memlayout.Stack)
	// The pair used by the push must be fully drained (marker and value
	// both zero) so the region reads as empty again, same shape as before
	// the push (spec.md §8 property 8/9).
	assert.Equal(t, byte(0), r.tape[stackStart], "stack anchor must read zero")
	assert.Equal(t, byte(0), r.tape[stackStart+1], "STACK0 must read zero")
	assert.Equal(t, byte(0), r.tape[stackStart+2], "drained pair's marker must read zero")
	assert.Equal(t, byte(0), r.tape[stackStart+3], "drained pair's value must read zero")
}

func TestPushRegisterPopRoundTrip(t *testing.T) {
	r := build(t, fullLayout(), func(e *emit.Emitter) {
		e.SetLiteral("R0", 5)
		e.PushRegister("R0")
		e.Pop("R1")
	})
	assert.Equal(t, byte(5), r.cell("R0"), "PushRegister leaves its source register unchanged")
	assert.Equal(t, byte(5), r.cell("R1"))
}
