package circuit

// Kind tags the variant of a Gate, per spec §3's gate table.
type Kind int

const (
	KindGroup Kind = iota
	KindCombinational
	KindDelay
	KindTristate
	KindAssert
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindCombinational:
		return "comb"
	case KindDelay:
		return "delay"
	case KindTristate:
		return "tristate"
	case KindAssert:
		return "assert"
	default:
		return "unknown"
	}
}

// Gate is the common interface of the five gate variants (spec §3/§4.C).
// Rather than the source's runtime polymorphism with virtual iterator inner
// classes, gates here are a tagged variant: one concrete struct per kind,
// sharing behavior through the embedded base and a handful of free
// functions (signGeneric, IO, and package equality's Equals) that
// take the Gate interface rather than being dispatched to virtually.
type Gate interface {
	// Kind reports which of the five variants this gate is.
	Kind() Kind
	// ID returns the gate's globally unique, monotonically assigned id.
	ID() uint64
	// Frozen reports whether Freeze has been called on this gate (or an
	// ancestor group that recursively froze it).
	Frozen() bool
	// Freeze transitions the gate from mutable to immutable. Idempotent;
	// for groups, recurses into children first, then computes pin-position
	// signatures.
	Freeze() error
	// Ancestor returns the group that owns this gate as a child, or nil if
	// it has none (yet).
	Ancestor() *Group
	setAncestor(g *Group)

	// Inputs returns this gate's ordered input wires, per the table in
	// spec §3 (formal/outer wires for a group, direct wires otherwise).
	// The returned slice must not be mutated.
	Inputs() []*Wire
	// Outputs returns this gate's ordered output wires. The returned slice
	// must not be mutated.
	Outputs() []*Wire

	// Sign returns the gate's memoized 64-bit signature at the given
	// neighborhood level. The gate must be frozen.
	Sign(level int) (uint64, error)

	// innerSignature is the variant-specific contribution to Sign, before
	// neighborhood and pin-position terms are added. It is itself
	// level-dependent only for Group (whose children are summed at the
	// same level), but every variant takes level for interface uniformity.
	innerSignature(level int) (uint64, error)
}

// IO returns a gate's inputs followed by its outputs: the "inputs then
// outputs" walk order common to every variant except Assert (inputs only,
// which IO still reports correctly since Outputs is empty) and Tristate
// (from, enable as inputs, to as output -- see tristate.go).
func IO(g Gate) []*Wire {
	in := g.Inputs()
	out := g.Outputs()
	if len(out) == 0 {
		return in
	}
	if len(in) == 0 {
		return out
	}
	all := make([]*Wire, 0, len(in)+len(out))
	all = append(all, in...)
	all = append(all, out...)
	return all
}

// sigSlot remembers whether a memoized signature is present, since 0 is a
// valid signature value and cannot serve as its own "absent" sentinel.
type sigSlot struct {
	value   uint64
	present bool
}

// base carries the fields and memoization table shared by every gate
// variant (spec §3's "Common fields").
type base struct {
	id       uint64
	frozen   bool
	ancestor *Group
	memo     []sigSlot
}

func newBase() base {
	return base{id: allocGateID()}
}

func (b *base) ID() uint64       { return b.id }
func (b *base) Frozen() bool     { return b.frozen }
func (b *base) Ancestor() *Group { return b.ancestor }

func (b *base) setAncestor(g *Group) { b.ancestor = g }

func (b *base) failIfFrozen() error {
	if b.frozen {
		return ErrFrozen
	}
	return nil
}

func (b *base) failIfNotFrozen() error {
	if !b.frozen {
		return ErrNotFrozen
	}
	return nil
}

func (b *base) getMemo(level int) (uint64, bool) {
	if level < 0 || level >= len(b.memo) {
		return 0, false
	}
	slot := b.memo[level]
	return slot.value, slot.present
}

func (b *base) setMemo(level int, value uint64) {
	for len(b.memo) <= level {
		b.memo = append(b.memo, sigSlot{})
	}
	b.memo[level] = sigSlot{value: value, present: true}
}

// signGeneric implements the common Sign(level) memoization and
// neighborhood-expansion logic of spec §4.D, shared by every variant. g
// must be the gate b is embedded in (each variant's Sign method delegates
// here passing itself).
func signGeneric(g Gate, b *base, level int) (uint64, error) {
	if err := b.failIfNotFrozen(); err != nil {
		return 0, err
	}
	if v, ok := b.getMemo(level); ok {
		return v, nil
	}

	inner, err := g.innerSignature(level)
	if err != nil {
		return 0, err
	}

	var result uint64
	if level == 0 {
		result = inner
	} else {
		inpSig, err := neighborSignatureSum(g.Inputs(), level-1)
		if err != nil {
			return 0, err
		}
		outSig, err := neighborSignatureSum(g.Outputs(), level-1)
		if err != nil {
			return 0, err
		}
		var ioSig uint64
		if anc := g.Ancestor(); anc != nil {
			for _, w := range IO(g) {
				ioSig += anc.PinPositionSignature(w)
			}
		}
		result = inner + ioSig + inpSig - outSig
	}

	b.setMemo(level, result)
	return result, nil
}

// neighborSignatureSum sums sign(level) over every gate adjacent to every
// wire in wires, per spec §4.D's inp_sig/out_sig definition.
func neighborSignatureSum(wires []*Wire, level int) (uint64, error) {
	var sum uint64
	for _, w := range wires {
		for _, adj := range w.ConnectedGates() {
			s, err := adj.Sign(level)
			if err != nil {
				return 0, err
			}
			sum += s
		}
	}
	return sum, nil
}
