package circuit

// Combinational is a gate with parallel ordered input wires and output
// wires, each output driven by an expression over the inputs (spec §3's
// Combinational variant).
type Combinational struct {
	base

	inputs  []*Wire
	outputs []*Wire
	exprs   []Expr
}

var _ Gate = (*Combinational)(nil)

// NewCombinational creates an empty, unfrozen combinational gate.
func NewCombinational() *Combinational {
	return &Combinational{base: newBase()}
}

func (c *Combinational) Kind() Kind          { return KindCombinational }
func (c *Combinational) Inputs() []*Wire     { return c.inputs }
func (c *Combinational) Outputs() []*Wire    { return c.outputs }
func (c *Combinational) Expressions() []Expr { return c.exprs }

// AddInput appends w as the next input wire. Requires the gate to be
// unfrozen. The declaration order of inputs is what Expr's VarExpr.Index
// refers to.
func (c *Combinational) AddInput(w *Wire) error {
	if err := c.failIfFrozen(); err != nil {
		return err
	}
	c.inputs = append(c.inputs, w)
	w.connectGate(c)
	return nil
}

// AddOutput appends w and expr in lockstep to the parallel output-wire and
// output-expression vectors. Requires the gate to be unfrozen.
func (c *Combinational) AddOutput(w *Wire, expr Expr) error {
	if err := c.failIfFrozen(); err != nil {
		return err
	}
	c.outputs = append(c.outputs, w)
	c.exprs = append(c.exprs, expr)
	w.connectGate(c)
	return nil
}

// Freeze transitions the gate to immutable. Idempotent.
func (c *Combinational) Freeze() error {
	c.frozen = true
	return nil
}

func (c *Combinational) innerSignature(_ int) (uint64, error) {
	var exprXor uint64
	for _, e := range c.exprs {
		exprXor ^= e.Sign()
	}
	tag := mixSalt(saltCombinational, uint64(len(c.inputs)))
	outc := mixSalt(saltOutputCount, uint64(len(c.outputs)))
	return (tag ^ outc) ^ exprXor, nil
}

// Sign returns the gate's memoized signature at the given level.
func (c *Combinational) Sign(level int) (uint64, error) {
	return signGeneric(c, &c.base, level)
}
