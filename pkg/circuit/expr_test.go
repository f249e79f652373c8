package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCommutativeOperatorSignature covers spec §8 scenario 4: XOR(a, b) vs
// XOR(b, a) must have equal signatures and be structurally equal.
func TestCommutativeOperatorSignature(t *testing.T) {
	a, b := NewVar(0), NewVar(1)
	xorAB := NewBinOp(BinXor, a, b)
	xorBA := NewBinOp(BinXor, b, a)

	require.Equal(t, xorAB.Sign(), xorBA.Sign())
	require.True(t, xorAB.Equals(xorBA))
}

// TestNonCommutativeOperatorSignature covers spec §8 scenario 5: SUB(a, b)
// vs SUB(b, a) must have distinct signatures and not be structurally equal.
func TestNonCommutativeOperatorSignature(t *testing.T) {
	a, b := NewVar(0), NewVar(1)
	subAB := NewBinOp(BinSub, a, b)
	subBA := NewBinOp(BinSub, b, a)

	require.NotEqual(t, subAB.Sign(), subBA.Sign())
	require.False(t, subAB.Equals(subBA))
}

// TestMergeSliceRoundTrip covers spec §8 scenario 6: merging the two
// halves of a sliced expression produces a signature-distinct node from
// the original, and that signature is stable across repeated calls.
func TestMergeSliceRoundTrip(t *testing.T) {
	x := NewVar(0)
	lo := NewSlice(x, 0, 8)
	hi := NewSlice(x, 8, 16)
	merged := NewMerge(lo, hi)

	require.NotEqual(t, x.Sign(), merged.Sign())
	require.Equal(t, merged.Sign(), merged.Sign())
	require.False(t, merged.Equals(x))
}

func TestExprEqualsDistinguishesVariants(t *testing.T) {
	c := NewConst(5)
	v := NewVar(5)
	require.False(t, c.Equals(v))
	require.False(t, v.Equals(c))
}

func TestExprEqualsRecursesSubexpressions(t *testing.T) {
	left := NewBinOp(BinAdd, NewConst(1), NewVar(0))
	same := NewBinOp(BinAdd, NewConst(1), NewVar(0))
	different := NewBinOp(BinAdd, NewConst(2), NewVar(0))

	require.True(t, left.Equals(same))
	require.False(t, left.Equals(different))
}

func TestUnConstExprDistinguishesConstant(t *testing.T) {
	a := NewUnConstOp(UnConstLsl, 1, NewVar(0))
	b := NewUnConstOp(UnConstLsl, 2, NewVar(0))

	require.NotEqual(t, a.Sign(), b.Sign())
	require.False(t, a.Equals(b))
}

func TestNewConstFromHexAcceptsPrefixedAndBare(t *testing.T) {
	withPrefix, err := NewConstFromHex("0xFF")
	require.NoError(t, err)
	require.Equal(t, uint64(255), withPrefix.Value)

	bare, err := NewConstFromHex("ff")
	require.NoError(t, err)
	require.Equal(t, withPrefix.Value, bare.Value)
}

func TestNewConstFromHexRejectsInvalid(t *testing.T) {
	_, err := NewConstFromHex("not-hex")
	require.ErrorIs(t, err, ErrInvalidHex)
	require.Equal(t, 4, ErrorCode(err))
}
