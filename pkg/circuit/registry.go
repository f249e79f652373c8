package circuit

// WireRegistry is the per-group name-to-wire mapping of spec §3/§4.B. Each
// registry has a globally unique id drawn from the process-wide monotonic
// counter.
type WireRegistry struct {
	id     uint64
	byName map[string]*Wire
	all    []*Wire
	nextID uint64
}

// NewWireRegistry allocates a fresh, empty wire registry with a new
// globally unique id.
func NewWireRegistry() *WireRegistry {
	return &WireRegistry{
		id:     allocRegistryID(),
		byName: make(map[string]*Wire),
	}
}

// ID returns this registry's globally unique id.
func (r *WireRegistry) ID() uint64 { return r.id }

func (r *WireRegistry) newWire(name string) *Wire {
	w := &Wire{rec: &wireRecord{
		registryID: r.id,
		id:         r.nextID,
		name:       name,
	}}
	r.nextID++
	r.all = append(r.all, w)
	return w
}

// Fresh allocates a new wire under name, failing with ErrAlreadyDefined if
// the name is already registered.
func (r *WireRegistry) Fresh(name string) (*Wire, error) {
	if _, ok := r.byName[name]; ok {
		return nil, wireNameError(ErrAlreadyDefined, name)
	}
	w := r.newWire(name)
	r.byName[name] = w
	return w, nil
}

// FreshInsulated allocates a new wire without registering it under any
// name, so later lookups by name can never find it.
func (r *WireRegistry) FreshInsulated(name string) *Wire {
	return r.newWire(name)
}

// Lookup resolves name to a wire. If dontCreate is false (the default
// builder behavior), an absent name is created on demand; if true, an
// absent name fails with ErrNotDefined.
func (r *WireRegistry) Lookup(name string, dontCreate bool) (*Wire, error) {
	if w, ok := r.byName[name]; ok {
		return w, nil
	}
	if dontCreate {
		return nil, wireNameError(ErrNotDefined, name)
	}
	w := r.newWire(name)
	r.byName[name] = w
	return w, nil
}

// HasName reports whether name is currently registered.
func (r *WireRegistry) HasName(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Rename changes w's display name, keeping the name-to-wire map in sync if
// w was registered under its previous name.
func (r *WireRegistry) Rename(w *Wire, name string) {
	c := w.canonical()
	old := c.rec.name
	if existing, ok := r.byName[old]; ok && existing.canonical() == c {
		delete(r.byName, old)
		r.byName[name] = c
	}
	c.rec.name = name
}

// Enumerate returns every wire handle this registry has ever allocated, in
// allocation order. Handles that have since been merged away still appear,
// but resolve through canonicalization to their surviving record.
func (r *WireRegistry) Enumerate() []*Wire {
	out := make([]*Wire, len(r.all))
	copy(out, r.all)
	return out
}

// Merge unions two wires by rank. The loser's inner record is destroyed
// and forwards to the winner; both input handles, and any handle obtained
// from either before or after the call, resolve to the same (the winner's)
// canonical record from then on. Adjacency lists are combined onto the
// winner. Returns the surviving canonical wire.
func (r *WireRegistry) Merge(a, b *Wire) *Wire {
	ca, cb := a.canonical(), b.canonical()
	if ca == cb {
		return ca
	}
	if ca.rec.rank < cb.rec.rank {
		ca, cb = cb, ca
	}
	ca.rec.gates = append(ca.rec.gates, cb.rec.gates...)
	ca.rec.pins = append(ca.rec.pins, cb.rec.pins...)
	if ca.rec.rank == cb.rec.rank {
		ca.rec.rank++
	}
	cb.parent = ca
	cb.rec = nil
	return ca
}
