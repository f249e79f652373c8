package circuit

// Delay is an edge-triggered pass-through gate with one input and one
// output wire, fixed at construction (spec §3's Delay variant).
type Delay struct {
	base

	input, output *Wire
}

var _ Gate = (*Delay)(nil)

// NewDelay constructs a delay gate from input to output, eagerly
// registering itself on both wires' adjacency lists.
func NewDelay(input, output *Wire) *Delay {
	d := &Delay{base: newBase(), input: input, output: output}
	input.connectGate(d)
	output.connectGate(d)
	return d
}

func (d *Delay) Kind() Kind        { return KindDelay }
func (d *Delay) Input() *Wire      { return d.input }
func (d *Delay) Output() *Wire     { return d.output }
func (d *Delay) Inputs() []*Wire   { return []*Wire{d.input} }
func (d *Delay) Outputs() []*Wire  { return []*Wire{d.output} }

// Freeze transitions the gate to immutable. Idempotent.
func (d *Delay) Freeze() error {
	d.frozen = true
	return nil
}

func (d *Delay) innerSignature(_ int) (uint64, error) {
	return leafInnerSignature(saltLeafDelay, 1, 1), nil
}

// Sign returns the gate's memoized signature at the given level.
func (d *Delay) Sign(level int) (uint64, error) {
	return signGeneric(d, &d.base, level)
}

// leafInnerSignature mixes a leaf gate's tag with its fan-in/fan-out
// counts, per spec §4.D: "Leaf gates (Delay, Tristate) mix only their tag
// and fan-in/fan-out counts through a fixed per-tag leaf-type transform."
func leafInnerSignature(tagSalt uint64, fanIn, fanOut int) uint64 {
	tag := mixSalt(tagSalt, uint64(fanIn))
	outc := mixSalt(saltOutputCount, uint64(fanOut))
	return tag ^ outc
}
