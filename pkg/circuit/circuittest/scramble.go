// Package circuittest provides a test-only helper that rebuilds a frozen
// circuit with its internal wires renamed and each group's child order
// permuted, without changing structure -- the in-process analogue of the
// original's external scramble.cpp tool (out of scope per spec §1), kept
// here because the property it exists to exercise, spec §8's "scramble
// invariance", is squarely in scope.
package circuittest

import (
	"fmt"

	"github.com/tobast/circuit-isomatch/pkg/circuit"
)

// Scramble returns a frozen copy of src that is formally equal to it (spec
// §4.E: isomorphic modulo wire renaming and child-order permutation) but
// shares no wire identity and, where a group has more than one child, has
// that group's child order rotated by salt (unchanged when salt is a
// multiple of the child count). src's own declared input/output pin order and
// formal (outer) wires are left untouched -- those are its external
// interface, not the internal structure equals' invariance is over. salt
// both renames wires and picks the (cyclic) child-order rotation, so
// different salts exercise different permutations deterministically.
func Scramble(src *circuit.Group, salt int) (*circuit.Group, error) {
	return scrambleGroup(src, salt)
}

func scrambledName(salt int, k circuit.WireKey) string {
	return fmt.Sprintf("scr%d_%d_%d", salt, k.RegistryID, k.WireID)
}

func rotate(i, n, salt int) int {
	if n == 0 {
		return i
	}
	shift := salt % n
	if shift < 0 {
		shift += n
	}
	return (i + shift) % n
}

// scrambleGroup rebuilds src as a root (or standalone) group: its own
// pins' formal side, if present, is carried over unchanged since it
// belongs to a registry this call does not rebuild.
func scrambleGroup(src *circuit.Group, salt int) (*circuit.Group, error) {
	dst := circuit.NewGroup(src.Name())
	wire := localWireFunc(dst, salt)

	for _, p := range src.InputPins() {
		actual, err := wire(p.Actual())
		if err != nil {
			return nil, err
		}
		if p.Deferred() {
			if _, err := dst.AddInputDeferred(p.FormalName(), actual); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := dst.AddInput(p.Formal(), actual); err != nil {
			return nil, err
		}
	}
	for _, p := range src.OutputPins() {
		actual, err := wire(p.Actual())
		if err != nil {
			return nil, err
		}
		if p.Deferred() {
			if _, err := dst.AddOutputDeferred(p.FormalName(), actual); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := dst.AddOutput(p.Formal(), actual); err != nil {
			return nil, err
		}
	}

	if err := scrambleChildren(dst, src, salt, wire); err != nil {
		return nil, err
	}
	if err := dst.Freeze(); err != nil {
		return nil, err
	}
	return dst, nil
}

// scrambleNestedGroup rebuilds a group that is itself a child of another
// group: its pins are rebuilt deferred, under the scrambled name of their
// old formal wire, so the parent's AddChild resolves them to the same new
// wire every other reference to that old formal wire uses.
func scrambleNestedGroup(src *circuit.Group, salt int) (*circuit.Group, error) {
	dst := circuit.NewGroup(src.Name())
	wire := localWireFunc(dst, salt)

	for _, p := range src.InputPins() {
		if p.Formal() == nil {
			return nil, fmt.Errorf("circuittest: attached group %q has an unresolved input pin", src.Name())
		}
		actual, err := wire(p.Actual())
		if err != nil {
			return nil, err
		}
		if _, err := dst.AddInputDeferred(scrambledName(salt, p.Formal().Key()), actual); err != nil {
			return nil, err
		}
	}
	for _, p := range src.OutputPins() {
		if p.Formal() == nil {
			return nil, fmt.Errorf("circuittest: attached group %q has an unresolved output pin", src.Name())
		}
		actual, err := wire(p.Actual())
		if err != nil {
			return nil, err
		}
		if _, err := dst.AddOutputDeferred(scrambledName(salt, p.Formal().Key()), actual); err != nil {
			return nil, err
		}
	}

	return dst, scrambleChildren(dst, src, salt, wire)
}

func localWireFunc(dst *circuit.Group, salt int) func(*circuit.Wire) (*circuit.Wire, error) {
	reg := dst.Registry()
	return func(old *circuit.Wire) (*circuit.Wire, error) {
		return reg.Lookup(scrambledName(salt, old.Key()), false)
	}
}

func scrambleChildren(dst, src *circuit.Group, salt int, wire func(*circuit.Wire) (*circuit.Wire, error)) error {
	children := src.Children()
	n := len(children)
	for i := 0; i < n; i++ {
		child := children[rotate(i, n, salt)]
		nc, err := scrambleGate(child, salt, wire)
		if err != nil {
			return err
		}
		if err := dst.AddChild(nc); err != nil {
			return err
		}
	}
	return nil
}

func scrambleGate(g circuit.Gate, salt int, wire func(*circuit.Wire) (*circuit.Wire, error)) (circuit.Gate, error) {
	switch c := g.(type) {
	case *circuit.Group:
		return scrambleNestedGroup(c, salt)

	case *circuit.Combinational:
		nc := circuit.NewCombinational()
		for _, w := range c.Inputs() {
			nw, err := wire(w)
			if err != nil {
				return nil, err
			}
			if err := nc.AddInput(nw); err != nil {
				return nil, err
			}
		}
		for i, w := range c.Outputs() {
			nw, err := wire(w)
			if err != nil {
				return nil, err
			}
			if err := nc.AddOutput(nw, c.Expressions()[i]); err != nil {
				return nil, err
			}
		}
		return nc, nil

	case *circuit.Delay:
		in, err := wire(c.Input())
		if err != nil {
			return nil, err
		}
		out, err := wire(c.Output())
		if err != nil {
			return nil, err
		}
		return circuit.NewDelay(in, out), nil

	case *circuit.Tristate:
		from, err := wire(c.From())
		if err != nil {
			return nil, err
		}
		to, err := wire(c.To())
		if err != nil {
			return nil, err
		}
		en, err := wire(c.Enable())
		if err != nil {
			return nil, err
		}
		return circuit.NewTristate(from, to, en), nil

	case *circuit.Assert:
		ins := make([]*circuit.Wire, len(c.Inputs()))
		for i, w := range c.Inputs() {
			nw, err := wire(w)
			if err != nil {
				return nil, err
			}
			ins[i] = nw
		}
		return circuit.NewAssert(c.Name(), c.Expression(), ins), nil

	default:
		return nil, fmt.Errorf("circuittest: unhandled gate kind %v", g.Kind())
	}
}
