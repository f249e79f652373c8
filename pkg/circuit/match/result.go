package match

import "github.com/tobast/circuit-isomatch/pkg/circuit"

// Result is one occurrence of a needle inside a haystack (spec §4.F): the
// haystack gates corresponding to the needle's children, in the needle's
// declaration order, and the haystack wires corresponding to the needle's
// input and output pins, in declaration order.
type Result struct {
	Parts   []circuit.Gate
	Inputs  []*circuit.Wire
	Outputs []*circuit.Wire
}
