package circuit

import (
	"strconv"

	"github.com/pkg/errors"
)

// This file gathers the expression-builder half of the builder API (spec
// §4.G): convenience constructors for every Expr variant, used by parsers
// building up gate expressions. The gate/group mutation half of the
// builder API (AddChild, AddInput, AddOutput, Freeze, ...) is simply the
// set of exported methods on Group/Combinational/Delay/Tristate/Assert
// defined alongside each type, rather than a separate indirection layer --
// the teacher's constructors (NewOperatorCache, NewDefaultRegistryClientProvider,
// ...) are likewise plain functions returning the concrete type, not a
// builder object.

// NewConst returns a constant expression of the given unsigned value.
func NewConst(value uint64) *ConstExpr { return &ConstExpr{Value: value} }

// ErrInvalidHex is returned by NewConstFromHex when its argument is not a
// valid hexadecimal literal, the Go-side equivalent of the C-ABI's error
// code 4 ("invalid hexadecimal string (long-constant builder)"), spec §6.
var ErrInvalidHex = errors.New("circuit: invalid hexadecimal constant")

// NewConstFromHex parses a hexadecimal literal (with or without a leading
// "0x") into a constant expression, for front-ends that need to build
// wide constants the decimal NewConst can't express conveniently.
func NewConstFromHex(hex string) (*ConstExpr, error) {
	v, err := strconv.ParseUint(trimHexPrefix(hex), 16, 64)
	if err != nil {
		return nil, ErrInvalidHex
	}
	return NewConst(v), nil
}

func trimHexPrefix(s string) string {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// NewVar returns a variable expression referring to the index-th input
// pin of the enclosing gate.
func NewVar(index int) *VarExpr { return &VarExpr{Index: index} }

// NewBinOp returns a binary expression combining left and right with op.
func NewBinOp(op BinOp, left, right Expr) *BinExpr {
	return &BinExpr{Op: op, Left: left, Right: right}
}

// NewUnOp returns a unary expression applying op to inner.
func NewUnOp(op UnOp, inner Expr) *UnExpr { return &UnExpr{Op: op, Inner: inner} }

// NewUnConstOp returns a unary-constant expression applying op, parameterized
// by constant, to inner.
func NewUnConstOp(op UnConstOp, constant int, inner Expr) *UnConstExpr {
	return &UnConstExpr{Op: op, Const: constant, Inner: inner}
}

// NewSlice returns an expression extracting the [begin, end) subword of
// inner.
func NewSlice(inner Expr, begin, end int) *SliceExpr {
	return &SliceExpr{Inner: inner, Begin: begin, End: end}
}

// NewMerge returns an expression concatenating left and right.
func NewMerge(left, right Expr) *MergeExpr {
	return &MergeExpr{Left: left, Right: right}
}
