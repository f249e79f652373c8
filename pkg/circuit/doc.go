// Package circuit is the circuit intermediate representation: wires, wire
// registries, the expression tree, and the five gate variants (group,
// combinational, delay, tristate, assert), together with the builder
// operations used to construct them and the signature engine used to
// compare them.
//
// The package keeps these together in one unit rather than splitting each
// concern into its own package because they are, as built here, a single
// tightly coupled subsystem: a gate's signature needs its ancestor's
// pin-position table, a group's freeze needs to recurse into children of
// every other variant, and the builder operations are just the mutating
// methods of the gate types themselves. Formal equality (package
// equality), subcircuit matching (package match), and the dot/JSON dumper
// (package emit) are kept separate because they are read-only consumers of
// a frozen tree rather than part of the tree itself.
package circuit
