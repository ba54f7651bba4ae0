package minipython_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlambacher/bfalc/internal/minipython"
)

func TestParseDeclarationsAndBlock(t *testing.T) {
	prog, err := minipython.Parse(`
var x;
var y;
{
	x = 1;
	write x;
}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, prog.Declarations)

	block, ok := prog.Statement.(*minipython.Block)
	require.True(t, ok, "top-level statement must be a Block")
	require.Len(t, block.Statements, 2)

	assign, ok := block.Statements[0].(*minipython.Assignment)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)
	num, ok := assign.Expr.(*minipython.Number)
	require.True(t, ok)
	assert.Equal(t, 1, num.Value)

	write, ok := block.Statements[1].(*minipython.Write)
	require.True(t, ok)
	v, ok := write.Expr.(*minipython.Variable)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)
}

func TestParseExpressionPrecedence(t *testing.T) {
	// "2 + 3 * 4" must parse as 2 + (3 * 4), not (2 + 3) * 4.
	prog, err := minipython.Parse(`{ write 2 + 3 * 4; }`)
	require.NoError(t, err)
	block := prog.Statement.(*minipython.Block)
	write := block.Statements[0].(*minipython.Write)
	top, ok := write.Expr.(*minipython.Binary)
	require.True(t, ok)
	assert.Equal(t, minipython.Add, top.Op)

	lhs, ok := top.Lhs.(*minipython.Number)
	require.True(t, ok)
	assert.Equal(t, 2, lhs.Value)

	rhs, ok := top.Rhs.(*minipython.Binary)
	require.True(t, ok)
	assert.Equal(t, minipython.Mul, rhs.Op)
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	// "(2 + 3) * 4" must parse with Mul at the top.
	prog, err := minipython.Parse(`{ write (2 + 3) * 4; }`)
	require.NoError(t, err)
	block := prog.Statement.(*minipython.Block)
	write := block.Statements[0].(*minipython.Write)
	top, ok := write.Expr.(*minipython.Binary)
	require.True(t, ok)
	assert.Equal(t, minipython.Mul, top.Op)
	_, ok = top.Lhs.(*minipython.Binary)
	assert.True(t, ok, "left operand must be the parenthesised addition")
}

func TestParseConditionForms(t *testing.T) {
	prog, err := minipython.Parse(`
var x;
if (not true) {
	x = 1;
}
`)
	require.NoError(t, err)
	ifThen, ok := prog.Statement.(*minipython.IfThen)
	require.True(t, ok)
	not, ok := ifThen.Cond.(*minipython.Not)
	require.True(t, ok)
	_, ok = not.Operand.(*minipython.True)
	assert.True(t, ok)
}

func TestParseWhileWithComparison(t *testing.T) {
	prog, err := minipython.Parse(`
var x;
while (x < 10) {
	x = x + 1;
}
`)
	require.NoError(t, err)
	while, ok := prog.Statement.(*minipython.While)
	require.True(t, ok)
	cmp, ok := while.Cond.(*minipython.Comparison)
	require.True(t, ok)
	assert.Equal(t, minipython.Lt, cmp.Op)
	body, ok := while.Body.(*minipython.Block)
	require.True(t, ok)
	assert.Len(t, body.Statements, 1)
}

func TestParseReadExpression(t *testing.T) {
	prog, err := minipython.Parse(`var x; { x = read; }`)
	require.NoError(t, err)
	block := prog.Statement.(*minipython.Block)
	assign := block.Statements[0].(*minipython.Assignment)
	_, ok := assign.Expr.(*minipython.ReadExpr)
	assert.True(t, ok)
}

func TestParseMissingSemicolonIsError(t *testing.T) {
	_, err := minipython.Parse(`var x; { x = 1 }`)
	assert.Error(t, err)
}

func TestParseTrailingGarbageIsError(t *testing.T) {
	_, err := minipython.Parse(`{ write 1; } write 2;`)
	assert.Error(t, err)
}

func TestParseUnknownStatementIsError(t *testing.T) {
	_, err := minipython.Parse(`123;`)
	assert.Error(t, err)
}
