package circuit

// pinPositionPrime is the fixed 32-bit prime spec §4.D calls for: each half
// of a pin-position signature is Σ 2^i mod P over the pin indices of that
// role. 4294967291 is the largest prime below 2^32.
const pinPositionPrime uint64 = 4294967291

func pow2ModPinPositionPrime(i int) uint64 {
	result := uint64(1)
	base := uint64(2) % pinPositionPrime
	for e := i; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = (result * base) % pinPositionPrime
		}
		base = (base * base) % pinPositionPrime
	}
	return result
}

// Group is a composite gate with its own wire naming scope and I/O pins
// (spec §3's Group variant).
type Group struct {
	base

	name     string
	children []Gate
	inputs   []*IOPin
	outputs  []*IOPin
	registry *WireRegistry

	pinPosSig map[*Wire]uint64
}

var _ Gate = (*Group)(nil)

// NewGroup creates an empty, unfrozen group named name, with its own fresh
// wire registry (spec §3's "owned wire registry").
func NewGroup(name string) *Group {
	return &Group{base: newBase(), name: name, registry: NewWireRegistry()}
}

func (g *Group) Kind() Kind              { return KindGroup }
func (g *Group) Name() string            { return g.name }
func (g *Group) Registry() *WireRegistry { return g.registry }
func (g *Group) Children() []Gate        { return g.children }
func (g *Group) InputPins() []*IOPin     { return g.inputs }
func (g *Group) OutputPins() []*IOPin    { return g.outputs }

// Inputs returns the formal (outer, ancestor-registry) wires of this
// group's input pins, in declaration order -- this is what a group exposes
// to signature/equality/matcher code walking it as a child gate of its
// ancestor.
func (g *Group) Inputs() []*Wire {
	out := make([]*Wire, len(g.inputs))
	for i, p := range g.inputs {
		out[i] = p.formal
	}
	return out
}

// Outputs returns the formal wires of this group's output pins, in
// declaration order.
func (g *Group) Outputs() []*Wire {
	out := make([]*Wire, len(g.outputs))
	for i, p := range g.outputs {
		out[i] = p.formal
	}
	return out
}

// AddChild attaches child to this group. Requires the group to be
// unfrozen and the child to have no existing ancestor. If child is itself
// a group with deferred pins (added via AddInputDeferred/AddOutputDeferred),
// each is resolved through this group's own wire registry before the
// attachment completes.
func (g *Group) AddChild(child Gate) error {
	if err := g.failIfFrozen(); err != nil {
		return err
	}
	if child.Ancestor() != nil {
		return ErrHasAncestor
	}

	if childGroup, ok := child.(*Group); ok {
		for _, p := range childGroup.inputs {
			if p.Deferred() {
				w, err := g.registry.Lookup(p.formalName, false)
				if err != nil {
					return err
				}
				if err := p.Connect(w); err != nil {
					return err
				}
			}
		}
		for _, p := range childGroup.outputs {
			if p.Deferred() {
				w, err := g.registry.Lookup(p.formalName, false)
				if err != nil {
					return err
				}
				if err := p.Connect(w); err != nil {
					return err
				}
			}
		}
	}

	child.setAncestor(g)
	g.children = append(g.children, child)
	return nil
}

// AddInput adds a fully-formed input pin linking formal (an outer wire,
// normally in this group's eventual ancestor's registry) to actual (an
// inner wire in this group's own registry).
func (g *Group) AddInput(formal, actual *Wire) (*IOPin, error) {
	return g.addPin(&g.inputs, formal, "", actual)
}

// AddInputDeferred adds an input pin whose formal side is not yet known;
// it is resolved by name through the ancestor's registry when this group
// is later attached via AddChild.
func (g *Group) AddInputDeferred(formalName string, actual *Wire) (*IOPin, error) {
	return g.addDeferredPin(&g.inputs, formalName, actual)
}

// AddOutput adds a fully-formed output pin.
func (g *Group) AddOutput(formal, actual *Wire) (*IOPin, error) {
	return g.addPin(&g.outputs, formal, "", actual)
}

// AddOutputDeferred adds an output pin whose formal side is resolved later.
func (g *Group) AddOutputDeferred(formalName string, actual *Wire) (*IOPin, error) {
	return g.addDeferredPin(&g.outputs, formalName, actual)
}

func (g *Group) addPin(list *[]*IOPin, formal *Wire, formalName string, actual *Wire) (*IOPin, error) {
	if err := g.failIfFrozen(); err != nil {
		return nil, err
	}
	p := &IOPin{actual: actual, group: g, formalName: formalName}
	if err := p.Connect(formal); err != nil {
		return nil, err
	}
	*list = append(*list, p)
	return p, nil
}

func (g *Group) addDeferredPin(list *[]*IOPin, formalName string, actual *Wire) (*IOPin, error) {
	if err := g.failIfFrozen(); err != nil {
		return nil, err
	}
	p := &IOPin{formalName: formalName, actual: actual, group: g}
	*list = append(*list, p)
	return p, nil
}

// Freeze freezes this group as Gate.Freeze does, but first recurses into
// every child (spec §4.C: "for groups, recurses into children first, then
// computes pin-position signatures"). Idempotent.
func (g *Group) Freeze() error {
	if g.frozen {
		return nil
	}
	for _, c := range g.children {
		if err := c.Freeze(); err != nil {
			return err
		}
	}
	g.frozen = true
	g.computePinPositionSignatures()
	return nil
}

// PinPositionSignature returns the 64-bit value reflecting which of this
// group's own input/output pin indices w (a wire of this group's own
// registry) is bound to, per spec §4.D. A wire bound to no pin of this
// group returns 0.
func (g *Group) PinPositionSignature(w *Wire) uint64 {
	return g.pinPosSig[w.canonical()]
}

func (g *Group) computePinPositionSignatures() {
	low := map[*Wire]uint64{}
	high := map[*Wire]uint64{}
	for i, p := range g.inputs {
		c := p.actual.canonical()
		low[c] = (low[c] + pow2ModPinPositionPrime(i)) % pinPositionPrime
	}
	for j, p := range g.outputs {
		c := p.actual.canonical()
		high[c] = (high[c] + pow2ModPinPositionPrime(j)) % pinPositionPrime
	}

	seen := make(map[*Wire]struct{}, len(low)+len(high))
	for w := range low {
		seen[w] = struct{}{}
	}
	for w := range high {
		seen[w] = struct{}{}
	}

	g.pinPosSig = make(map[*Wire]uint64, len(seen))
	for w := range seen {
		g.pinPosSig[w] = (high[w] << 32) | low[w]
	}
}

func (g *Group) innerSignature(level int) (uint64, error) {
	var childSum uint64
	for _, c := range g.children {
		s, err := c.Sign(level)
		if err != nil {
			return 0, err
		}
		childSum += s
	}
	tag := mixSalt(saltGroup, uint64(len(g.inputs)))
	outc := mixSalt(saltOutputCount, uint64(len(g.outputs)))
	return (tag ^ outc) + childSum, nil
}

func (g *Group) Sign(level int) (uint64, error) {
	return signGeneric(g, &g.base, level)
}
