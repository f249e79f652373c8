package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssertFreezeAndSign(t *testing.T) {
	reg := NewWireRegistry()
	a, _ := reg.Fresh("a")
	b, _ := reg.Fresh("b")

	assert := NewAssert("nonzero", NewBinOp(BinAnd, NewVar(0), NewVar(1)), []*Wire{a, b})
	require.Nil(t, assert.Outputs())
	require.False(t, assert.Frozen())

	require.NoError(t, assert.Freeze())
	require.True(t, assert.Frozen())

	s1, err := assert.Sign(0)
	require.NoError(t, err)
	s2, err := assert.Sign(0)
	require.NoError(t, err)
	require.Equal(t, s1, s2)
}

func TestTristateIOOrder(t *testing.T) {
	reg := NewWireRegistry()
	from, _ := reg.Fresh("from")
	to, _ := reg.Fresh("to")
	enable, _ := reg.Fresh("enable")

	ts := NewTristate(from, to, enable)
	require.Equal(t, []*Wire{from, enable}, ts.Inputs())
	require.Equal(t, []*Wire{to}, ts.Outputs())
	require.NoError(t, ts.Freeze())
}

func TestCombinationalOutputsDrivenByDistinctExpressions(t *testing.T) {
	reg := NewWireRegistry()
	in0, _ := reg.Fresh("in0")
	in1, _ := reg.Fresh("in1")
	out0, _ := reg.Fresh("out0")
	out1, _ := reg.Fresh("out1")

	c := NewCombinational()
	require.NoError(t, c.AddInput(in0))
	require.NoError(t, c.AddInput(in1))
	require.NoError(t, c.AddOutput(out0, NewBinOp(BinAnd, NewVar(0), NewVar(1))))
	require.NoError(t, c.AddOutput(out1, NewBinOp(BinXor, NewVar(0), NewVar(1))))
	require.NoError(t, c.Freeze())

	require.ErrorIs(t, c.AddInput(in0), ErrFrozen)
	require.Len(t, c.Expressions(), 2)
}

func TestDelayIsLeafGate(t *testing.T) {
	reg := NewWireRegistry()
	in, _ := reg.Fresh("in")
	out, _ := reg.Fresh("out")
	d := NewDelay(in, out)
	require.Equal(t, []*Wire{in}, d.Inputs())
	require.Equal(t, []*Wire{out}, d.Outputs())
	require.NoError(t, d.Freeze())
}
