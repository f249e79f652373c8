package circuit

import "fmt"

// WireKey is the canonical (registry-id, wire-id) pair spec §3/§4.B uses
// for wire equality and hashing.
type WireKey struct {
	RegistryID uint64
	WireID     uint64
}

// PinConnection links a wire to an outer wire through an I/O pin of a
// subgroup, per spec §3's wire adjacency-to-pins list.
type PinConnection struct {
	Pin   *IOPin
	Other *Wire
}

// wireRecord is the canonical, union-find "root" state for one or more
// merged Wire handles. Only the winning side of a merge keeps a non-nil
// record; the losing side forwards to the winner (see Wire.canonical).
type wireRecord struct {
	registryID uint64
	id         uint64
	name       string
	gates      []Gate
	pins       []PinConnection
	rank       int
}

// Wire is a named node in one group's wire registry. A Wire handle always
// resolves to exactly one canonical record via union-find; merging two
// handles makes one forward to the other. Wires are mutated only while the
// owning group is unfrozen (spec §3).
type Wire struct {
	parent *Wire
	rec    *wireRecord
}

// canonical returns the current canonical handle for w, applying path
// compression as it walks.
func (w *Wire) canonical() *Wire {
	root := w
	for root.parent != nil {
		root = root.parent
	}
	for w.parent != nil && w.parent != root {
		next := w.parent
		w.parent = root
		w = next
	}
	return root
}

// Key returns the (registry-id, wire-id) pair used for equality/hashing.
func (w *Wire) Key() WireKey {
	c := w.canonical()
	return WireKey{RegistryID: c.rec.registryID, WireID: c.rec.id}
}

// Equal reports whether two wire handles resolve to the same canonical
// record.
func (w *Wire) Equal(other *Wire) bool {
	if w == nil || other == nil {
		return w == other
	}
	return w.canonical() == other.canonical()
}

// RegistryID returns the id of the registry this wire belongs to.
func (w *Wire) RegistryID() uint64 { return w.canonical().rec.registryID }

// ID returns the wire's stable integer id, unique within its registry.
func (w *Wire) ID() uint64 { return w.canonical().rec.id }

// Name returns the wire's current display name.
func (w *Wire) Name() string { return w.canonical().rec.name }

// UniqueName returns the stable "{role}_{registry-id}_{wire-id}" form used
// by the dot/JSON emitter (see SPEC_FULL.md's
// supplemented-features note on wireId.h's uniqueName()).
func (w *Wire) UniqueName() string {
	c := w.canonical()
	return fmt.Sprintf("wire_%d_%d", c.rec.registryID, c.rec.id)
}

// ConnectedGates returns the gates directly adjacent to this wire, in
// connection order. The returned slice must not be mutated by the caller.
func (w *Wire) ConnectedGates() []Gate {
	return w.canonical().rec.gates
}

// ConnectedPins returns the pin connections reaching outward from this
// wire, in connection order. The returned slice must not be mutated by the
// caller.
func (w *Wire) ConnectedPins() []PinConnection {
	return w.canonical().rec.pins
}

// TransitiveGates walks through pin connections and returns every gate
// reachable from this wire, each once, in discovery order. This is the
// supplemented connected()-equivalent from the original wireId.h: it is
// O(wires reachable) and is not used on any matcher or signature hot path;
// nothing else in this module calls it.
func (w *Wire) TransitiveGates() []Gate {
	seenWires := map[*Wire]bool{}
	seenGates := map[Gate]bool{}
	var out []Gate
	var walk func(cur *Wire)
	walk = func(cur *Wire) {
		c := cur.canonical()
		if seenWires[c] {
			return
		}
		seenWires[c] = true
		for _, g := range c.rec.gates {
			if !seenGates[g] {
				seenGates[g] = true
				out = append(out, g)
			}
		}
		for _, pc := range c.rec.pins {
			walk(pc.Other)
		}
	}
	walk(w)
	return out
}

func (w *Wire) connectGate(g Gate) {
	c := w.canonical()
	c.rec.gates = append(c.rec.gates, g)
}

func (w *Wire) connectPin(pc PinConnection) {
	c := w.canonical()
	c.rec.pins = append(c.rec.pins, pc)
}
