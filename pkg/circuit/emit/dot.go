// Package emit implements the Dot/JSON emitter of spec §4.H: a pure,
// non-mutating depth-first traversal of a frozen tree that type-switches
// over the concrete gate variants rather than dispatching through an
// emitDot method on the Gate interface -- an unexported interface method
// could not be implemented from outside package circuit, so the emitter
// lives here and reads gates through their exported accessors instead.
package emit

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tobast/circuit-isomatch/pkg/circuit"
)

// WriteDot writes a deterministic Dot dump of root to w, per spec §6: the
// root group produces "digraph {...}", nested groups produce
// "subgraph cluster_... {...}", wires are shape=plain nodes, and gates are
// nodes with a per-variant shape (octagon for combinational, triangle for
// delay and tristate, plain label for assert).
func WriteDot(w io.Writer, root *circuit.Group) error {
	buf := bufio.NewWriter(w)
	fmt.Fprintln(buf, "digraph {")
	if err := writeGroupDot(buf, root, true); err != nil {
		return err
	}
	fmt.Fprintln(buf, "}")
	return buf.Flush()
}

func writeGroupDot(buf *bufio.Writer, g *circuit.Group, isRoot bool) error {
	if !isRoot {
		fmt.Fprintf(buf, "subgraph cluster_%s_%d {\n", g.Name(), g.ID())
	}

	seen := map[circuit.WireKey]bool{}
	for _, w := range g.Registry().Enumerate() {
		k := w.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		fmt.Fprintf(buf, "  %q [shape=plain];\n", w.UniqueName())
	}

	for _, child := range g.Children() {
		if err := writeGateDot(buf, child); err != nil {
			return err
		}
	}

	if !isRoot {
		fmt.Fprintln(buf, "}")
	}
	return nil
}

func writeGateDot(buf *bufio.Writer, g circuit.Gate) error {
	switch c := g.(type) {
	case *circuit.Group:
		return writeGroupDot(buf, c, false)
	case *circuit.Combinational:
		fmt.Fprintf(buf, "  %q [shape=octagon];\n", gateNodeName(c))
		writeEdges(buf, c)
	case *circuit.Delay:
		fmt.Fprintf(buf, "  %q [shape=triangle];\n", gateNodeName(c))
		writeEdges(buf, c)
	case *circuit.Tristate:
		fmt.Fprintf(buf, "  %q [shape=triangle];\n", gateNodeName(c))
		writeEdges(buf, c)
	case *circuit.Assert:
		fmt.Fprintf(buf, "  %q [label=%q];\n", gateNodeName(c), c.Name())
		writeEdges(buf, c)
	default:
		return fmt.Errorf("emit: unhandled gate kind %v", g.Kind())
	}
	return nil
}

func writeEdges(buf *bufio.Writer, g circuit.Gate) {
	name := gateNodeName(g)
	for _, in := range g.Inputs() {
		fmt.Fprintf(buf, "  %q -> %q;\n", in.UniqueName(), name)
	}
	for _, out := range g.Outputs() {
		fmt.Fprintf(buf, "  %q -> %q;\n", name, out.UniqueName())
	}
}

// gateNodeName is the stable "{role}_{id}"-shaped node name spec §4.H asks
// for, the gate-side analogue of Wire.UniqueName.
func gateNodeName(g circuit.Gate) string {
	return fmt.Sprintf("%s_%d", g.Kind(), g.ID())
}
