package circuit

// Assert is a verification predicate gate: a named expression over ordered
// input wires, with no outputs (spec §3's Assert variant).
type Assert struct {
	base

	name   string
	expr   Expr
	inputs []*Wire
}

var _ Gate = (*Assert)(nil)

// NewAssert constructs an assert gate over inputs, eagerly registering
// itself on each one's adjacency list.
func NewAssert(name string, expr Expr, inputs []*Wire) *Assert {
	a := &Assert{
		name:   name,
		expr:   expr,
		inputs: append([]*Wire(nil), inputs...),
		base:   newBase(),
	}
	for _, w := range a.inputs {
		w.connectGate(a)
	}
	return a
}

func (a *Assert) Kind() Kind          { return KindAssert }
func (a *Assert) Name() string        { return a.name }
func (a *Assert) Expression() Expr    { return a.expr }
func (a *Assert) Inputs() []*Wire     { return a.inputs }
func (a *Assert) Outputs() []*Wire    { return nil }

// Freeze transitions the gate to immutable. Idempotent.
func (a *Assert) Freeze() error {
	a.frozen = true
	return nil
}

func (a *Assert) innerSignature(_ int) (uint64, error) {
	tag := mixSalt(saltAssert, uint64(len(a.inputs)))
	return tag ^ a.expr.Sign(), nil
}

// Sign returns the gate's memoized signature at the given level.
func (a *Assert) Sign(level int) (uint64, error) {
	return signGeneric(a, &a.base, level)
}
