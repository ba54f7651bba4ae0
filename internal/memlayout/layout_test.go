package memlayout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlambacher/bfalc/internal/memlayout"
)

func TestFullLayoutOrder(t *testing.T) {
	l := memlayout.Full()
	want := []string{
		"C0", "C1", "C2", "CB", "CA", "RC",
		"R0", "T0", "R1", "T1", "R2", "T2", "R3", "T3",
		"R4", "T4", "R5", "T5", "R6", "T6", "R7", "T7",
		"STACK", "STACK0",
	}
	assert.Equal(t, want, l.Names())
	assert.Equal(t, len(want), l.Len())
	assert.Equal(t, 0, l.StartPos())
}

func TestFullLayoutRoles(t *testing.T) {
	l := memlayout.Full()
	assert.Equal(t, memlayout.RoleReserved, l.Role("C0"))
	assert.Equal(t, memlayout.RoleReserved, l.Role("RC"))
	assert.Equal(t, memlayout.RoleRegister, l.Role("R3"))
	assert.Equal(t, memlayout.RoleScratch, l.Role("T3"))
	assert.Equal(t, memlayout.RoleStack, l.Role("STACK"))
	assert.Equal(t, memlayout.RoleStack, l.Role("STACK0"))
}

func TestFullLayoutComparisonBlockPrecedesRC(t *testing.T) {
	l := memlayout.Full()
	rc := l.Index(memlayout.ConditionRegister)
	for _, c := range []string{memlayout.C0, memlayout.C1, memlayout.C2, memlayout.CB, memlayout.CA} {
		assert.Less(t, l.Index(c), rc, "%s must precede RC", c)
	}
	// Contiguous and in the exact order spec.md §3 requires.
	assert.Equal(t, l.Index(memlayout.C0)+1, l.Index(memlayout.C1))
	assert.Equal(t, l.Index(memlayout.C1)+1, l.Index(memlayout.C2))
	assert.Equal(t, l.Index(memlayout.C2)+1, l.Index(memlayout.CB))
	assert.Equal(t, l.Index(memlayout.CB)+1, l.Index(memlayout.CA))
	assert.Equal(t, l.Index(memlayout.CA)+1, rc)
}

func TestFullLayoutConstants(t *testing.T) {
	l := memlayout.Full()
	require.Len(t, l.Constants(), 1)
	assert.Equal(t, memlayout.C1, l.Constants()[0].Cell)
	assert.Equal(t, byte(1), l.Constants()[0].Value)
}

func TestFullLayoutRegistersAndScratch(t *testing.T) {
	l := memlayout.Full()
	require.Len(t, l.Registers(), 8)
	require.Len(t, l.Scratch(), 8)
	for i, r := range l.Registers() {
		assert.True(t, l.IsRegister(r))
		assert.Equal(t, l.Index(r)+1, l.Index(l.Scratch()[i]), "scratch must sit one hop from its register")
	}
}

func TestBasicLayoutHasNoComparisonOrStack(t *testing.T) {
	l := memlayout.Basic()
	assert.False(t, l.HasComparison())
	assert.False(t, l.HasStack())
	assert.Empty(t, l.Constants())
	want := []string{"RC", "R0", "T0", "R1", "T1", "R2", "T2", "R3", "T3", "R4", "T4", "R5", "T5", "R6", "T6", "R7", "T7"}
	assert.Equal(t, want, l.Names())
}

func TestIndexUnknownCellPanics(t *testing.T) {
	l := memlayout.Full()
	assert.Panics(t, func() { l.Index("NOPE") })
	_, ok := l.HasIndex("NOPE")
	assert.False(t, ok)
}

func TestNameAtOutOfRangePanics(t *testing.T) {
	l := memlayout.Full()
	assert.Panics(t, func() { l.NameAt(-1) })
	assert.Panics(t, func() { l.NameAt(l.Len()) })
}
