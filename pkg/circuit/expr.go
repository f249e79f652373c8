package circuit

// ExprKind tags the variant of an Expr node, per spec §3's expression table.
type ExprKind int

const (
	ExprConstant ExprKind = iota
	ExprVariable
	ExprBinary
	ExprUnary
	ExprUnaryConst
	ExprSlice
	ExprMerge
)

// BinOp is a binary expression operator. The order AND, OR, XOR, ADD, SUB,
// MUL, DIV, MOD, LSR, LSL, ASR is bit-exact with spec §6's enumeration and
// must not be reordered.
type BinOp int

const (
	BinAnd BinOp = iota
	BinOr
	BinXor
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
	BinLsr
	BinLsl
	BinAsr
)

// commutative reports whether equivalent operands in either order yield the
// same result, per spec §4.A: AND, OR, XOR, ADD, MUL track operand order
// symmetrically (signature combines by sum, and Equals accepts either operand
// order); the rest track order (signature combines by difference).
func (op BinOp) commutative() bool {
	switch op {
	case BinAnd, BinOr, BinXor, BinAdd, BinMul:
		return true
	default:
		return false
	}
}

// UnOp is a unary expression operator.
type UnOp int

const (
	UnNot UnOp = iota
)

// UnConstOp is a unary operator parameterized by an integer constant.
type UnConstOp int

const (
	UnConstLsr UnConstOp = iota
	UnConstLsl
	UnConstAsr
)

// Expr is an immutable node of the combinational expression tree (spec
// §3/§4.A). Expressions are owned exclusively by the gate that references
// them; destroying a gate destroys its expressions.
type Expr interface {
	Kind() ExprKind
	// Sign returns the expression's 64-bit structural signature. Unlike
	// gate signatures it takes no level: expressions have no neighborhood
	// to expand into, only their own subtree.
	Sign() uint64
	// Equals is total structural equality: same variant tag, same
	// primitive fields, and recursively equal sub-expressions. The only
	// latitude is that the two operands of a commutative binary operator
	// may appear in either order; no other algebraic normalization is
	// performed.
	Equals(other Expr) bool
}

// ConstExpr is an unsigned integer literal.
type ConstExpr struct {
	Value uint64
}

func (e *ConstExpr) Kind() ExprKind { return ExprConstant }
func (e *ConstExpr) Sign() uint64   { return mixSalt(saltConst, e.Value) }
func (e *ConstExpr) Equals(other Expr) bool {
	o, ok := other.(*ConstExpr)
	return ok && e.Value == o.Value
}

// VarExpr refers to the index-th input pin of the enclosing gate.
type VarExpr struct {
	Index int
}

func (e *VarExpr) Kind() ExprKind { return ExprVariable }
func (e *VarExpr) Sign() uint64   { return mixSalt(saltVar, uint64(e.Index)) }
func (e *VarExpr) Equals(other Expr) bool {
	o, ok := other.(*VarExpr)
	return ok && e.Index == o.Index
}

// BinExpr applies a binary operator to two sub-expressions.
type BinExpr struct {
	Op          BinOp
	Left, Right Expr
}

func (e *BinExpr) Kind() ExprKind { return ExprBinary }

func (e *BinExpr) Sign() uint64 {
	l, r := e.Left.Sign(), e.Right.Sign()
	if e.Op.commutative() {
		return mixSalt(binOpSalt[e.Op], l+r)
	}
	return mixSalt(binOpSalt[e.Op], l-r)
}

func (e *BinExpr) Equals(other Expr) bool {
	o, ok := other.(*BinExpr)
	if !ok || e.Op != o.Op {
		return false
	}
	if e.Left.Equals(o.Left) && e.Right.Equals(o.Right) {
		return true
	}
	return e.Op.commutative() && e.Left.Equals(o.Right) && e.Right.Equals(o.Left)
}

// UnExpr applies a unary operator to one sub-expression.
type UnExpr struct {
	Op    UnOp
	Inner Expr
}

func (e *UnExpr) Kind() ExprKind { return ExprUnary }
func (e *UnExpr) Sign() uint64   { return mixSalt(unOpSalt[e.Op], e.Inner.Sign()) }
func (e *UnExpr) Equals(other Expr) bool {
	o, ok := other.(*UnExpr)
	return ok && e.Op == o.Op && e.Inner.Equals(o.Inner)
}

// UnConstExpr applies a unary operator parameterized by an integer
// constant (e.g. a fixed-width shift) to one sub-expression.
type UnConstExpr struct {
	Op    UnConstOp
	Const int
	Inner Expr
}

func (e *UnConstExpr) Kind() ExprKind { return ExprUnaryConst }
func (e *UnConstExpr) Sign() uint64 {
	return mixSalt(unConstOpSalt[e.Op], e.Inner.Sign()-mixSalt(saltConstParam, uint64(e.Const)))
}
func (e *UnConstExpr) Equals(other Expr) bool {
	o, ok := other.(*UnConstExpr)
	return ok && e.Op == o.Op && e.Const == o.Const && e.Inner.Equals(o.Inner)
}

// SliceExpr extracts the [Begin, End) subword of its sub-expression.
type SliceExpr struct {
	Inner      Expr
	Begin, End int
}

func (e *SliceExpr) Kind() ExprKind { return ExprSlice }
func (e *SliceExpr) Sign() uint64 {
	bounds := mixSalt(saltSliceBounds, uint64(e.End)*sliceIndexMultiplier-uint64(e.Begin))
	return mixSalt(saltSlice, e.Inner.Sign()-bounds)
}
func (e *SliceExpr) Equals(other Expr) bool {
	o, ok := other.(*SliceExpr)
	return ok && e.Begin == o.Begin && e.End == o.End && e.Inner.Equals(o.Inner)
}

// MergeExpr concatenates two sub-expressions into a longer word.
type MergeExpr struct {
	Left, Right Expr
}

func (e *MergeExpr) Kind() ExprKind { return ExprMerge }
func (e *MergeExpr) Sign() uint64 {
	return mixSalt(saltMerge, e.Left.Sign()-e.Right.Sign())
}
func (e *MergeExpr) Equals(other Expr) bool {
	o, ok := other.(*MergeExpr)
	return ok && e.Left.Equals(o.Left) && e.Right.Equals(o.Right)
}
