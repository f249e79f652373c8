package circuit

// Tristate is a conditional pass-through gate: from is driven to to
// whenever enable is asserted. Its three wires are fixed at construction
// (spec §3's Tristate variant). The I/O ordering is from, enable, to --
// from and enable are inputs, to is the sole output -- matching the table
// in spec §3 exactly.
type Tristate struct {
	base

	from, to, enable *Wire
}

var _ Gate = (*Tristate)(nil)

// NewTristate constructs a tristate gate, eagerly registering itself on
// all three wires' adjacency lists.
func NewTristate(from, to, enable *Wire) *Tristate {
	t := &Tristate{base: newBase(), from: from, to: to, enable: enable}
	from.connectGate(t)
	enable.connectGate(t)
	to.connectGate(t)
	return t
}

func (t *Tristate) Kind() Kind    { return KindTristate }
func (t *Tristate) From() *Wire   { return t.from }
func (t *Tristate) To() *Wire     { return t.to }
func (t *Tristate) Enable() *Wire { return t.enable }

func (t *Tristate) Inputs() []*Wire  { return []*Wire{t.from, t.enable} }
func (t *Tristate) Outputs() []*Wire { return []*Wire{t.to} }

// Freeze transitions the gate to immutable. Idempotent.
func (t *Tristate) Freeze() error {
	t.frozen = true
	return nil
}

func (t *Tristate) innerSignature(_ int) (uint64, error) {
	return leafInnerSignature(saltLeafTristate, 2, 1), nil
}

// Sign returns the gate's memoized signature at the given level.
func (t *Tristate) Sign(level int) (uint64, error) {
	return signGeneric(t, &t.base, level)
}
