package match_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tobast/circuit-isomatch/pkg/circuit"
	"github.com/tobast/circuit-isomatch/pkg/circuit/circuittest"
	"github.com/tobast/circuit-isomatch/pkg/circuit/match"
)

// resultShapes summarizes each result as a sorted "kind:count" fingerprint
// of its matched parts -- invariant under wire renaming and child-order
// permutation, unlike the parts/wires themselves -- so two match.Result
// slices from a haystack and its scrambled copy can be diffed structurally
// with go-cmp instead of comparing wire identities that scrambling
// deliberately changes.
func resultShapes(results []match.Result) []string {
	shapes := make([]string, len(results))
	for i, r := range results {
		counts := map[string]int{}
		for _, p := range r.Parts {
			counts[p.Kind().String()]++
		}
		kinds := make([]string, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		shape := ""
		for _, k := range kinds {
			shape += fmt.Sprintf("%s:%d;", k, counts[k])
		}
		shapes[i] = shape
	}
	sort.Strings(shapes)
	return shapes
}

func TestMatch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Match Suite")
}

// muxNeedle builds spec §8 scenario 1's needle: inputs {a, b, sel}, output
// {out}, three children -- a NOT gate producing nsel, and two tristates
// both driving out, gated by sel and nsel respectively.
func muxNeedle() *circuit.Group {
	g := circuit.NewGroup("mux")
	reg := g.Registry()

	a, _ := reg.Fresh("a")
	b, _ := reg.Fresh("b")
	sel, _ := reg.Fresh("sel")
	nsel, _ := reg.Fresh("nsel")
	out, _ := reg.Fresh("out")

	Expect(firstErr(g.AddInputDeferred("a", a))).To(Succeed())
	Expect(firstErr(g.AddInputDeferred("b", b))).To(Succeed())
	Expect(firstErr(g.AddInputDeferred("sel", sel))).To(Succeed())
	Expect(firstErr(g.AddOutputDeferred("out", out))).To(Succeed())

	notGate := circuit.NewCombinational()
	Expect(notGate.AddInput(sel)).To(Succeed())
	Expect(notGate.AddOutput(nsel, circuit.NewUnOp(circuit.UnNot, circuit.NewVar(0)))).To(Succeed())
	Expect(g.AddChild(notGate)).To(Succeed())

	Expect(g.AddChild(circuit.NewTristate(a, out, sel))).To(Succeed())
	Expect(g.AddChild(circuit.NewTristate(b, out, nsel))).To(Succeed())

	Expect(g.Freeze()).To(Succeed())
	return g
}

func firstErr(_ *circuit.IOPin, err error) error { return err }

// muxHaystack builds spec §8 scenario 1's haystack: a top-level group with
// pins {p1, p2, p3}, output {out, mux1out}, containing a nested subgroup
// computing sub_out = XOR(NOT(v0), v0) from p1, plus the gates that wire
// two independent copies of the mux pattern -- one on "out" driven through
// the subgroup and a delay, one directly on "mux1out".
func muxHaystack() *circuit.Group {
	top := circuit.NewGroup("top")
	reg := top.Registry()

	p1, _ := reg.Fresh("p1")
	p2, _ := reg.Fresh("p2")
	p3, _ := reg.Fresh("p3")
	subOut, _ := reg.Fresh("sub_out")
	delayOut, _ := reg.Fresh("delay_out")
	delayOutNot, _ := reg.Fresh("delay_out_not")
	np1, _ := reg.Fresh("np1")
	out, _ := reg.Fresh("out")
	mux1out, _ := reg.Fresh("mux1out")

	Expect(firstErr(top.AddInputDeferred("p1", p1))).To(Succeed())
	Expect(firstErr(top.AddInputDeferred("p2", p2))).To(Succeed())
	Expect(firstErr(top.AddInputDeferred("p3", p3))).To(Succeed())
	Expect(firstErr(top.AddOutputDeferred("out", out))).To(Succeed())
	Expect(firstErr(top.AddOutputDeferred("mux1out", mux1out))).To(Succeed())

	sub := circuit.NewGroup("sub")
	subReg := sub.Registry()
	subP1, _ := subReg.Fresh("p1")
	subOutInner, _ := subReg.Fresh("sub_out")
	Expect(firstErr(sub.AddInputDeferred("p1", subP1))).To(Succeed())
	Expect(firstErr(sub.AddOutputDeferred("sub_out", subOutInner))).To(Succeed())
	xorGate := circuit.NewCombinational()
	Expect(xorGate.AddInput(subP1)).To(Succeed())
	Expect(xorGate.AddOutput(subOutInner, circuit.NewBinOp(
		circuit.BinXor,
		circuit.NewUnOp(circuit.UnNot, circuit.NewVar(0)),
		circuit.NewVar(0),
	))).To(Succeed())
	Expect(sub.AddChild(xorGate)).To(Succeed())
	Expect(sub.Freeze()).To(Succeed())

	Expect(top.AddChild(sub)).To(Succeed())

	Expect(top.AddChild(circuit.NewDelay(subOut, delayOut))).To(Succeed())
	Expect(top.AddChild(circuit.NewTristate(subOut, out, delayOut))).To(Succeed())

	delayNotGate := circuit.NewCombinational()
	Expect(delayNotGate.AddInput(delayOut)).To(Succeed())
	Expect(delayNotGate.AddOutput(delayOutNot, circuit.NewUnOp(circuit.UnNot, circuit.NewVar(0)))).To(Succeed())
	Expect(top.AddChild(delayNotGate)).To(Succeed())

	Expect(top.AddChild(circuit.NewTristate(p2, out, delayOutNot))).To(Succeed())

	np1Gate := circuit.NewCombinational()
	Expect(np1Gate.AddInput(p1)).To(Succeed())
	Expect(np1Gate.AddOutput(np1, circuit.NewUnOp(circuit.UnNot, circuit.NewVar(0)))).To(Succeed())
	Expect(top.AddChild(np1Gate)).To(Succeed())

	Expect(top.AddChild(circuit.NewTristate(p2, mux1out, p1))).To(Succeed())
	Expect(top.AddChild(circuit.NewTristate(p3, mux1out, np1))).To(Succeed())

	Expect(top.Freeze()).To(Succeed())
	return top
}

var _ = Describe("MatchSubcircuit", func() {
	It("finds two occurrences of the mux pattern", func() {
		needle := muxNeedle()
		haystack := muxHaystack()

		results, err := match.MatchSubcircuit(needle, haystack, match.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))

		var outs []string
		for _, r := range results {
			Expect(r.Outputs).To(HaveLen(1))
			outs = append(outs, r.Outputs[0].UniqueName())
		}

		wantOut, err := haystack.Registry().Lookup("out", true)
		Expect(err).NotTo(HaveOccurred())
		wantMux1out, err := haystack.Registry().Lookup("mux1out", true)
		Expect(err).NotTo(HaveOccurred())
		Expect(outs).To(ConsistOf(wantOut.UniqueName(), wantMux1out.UniqueName()))
	})

	It("finds nothing when a needle gate has no viable candidate", func() {
		needle := muxNeedle()

		empty := circuit.NewGroup("empty")
		reg := empty.Registry()
		x, _ := reg.Fresh("x")
		y, _ := reg.Fresh("y")
		Expect(firstErr(empty.AddInputDeferred("x", x))).To(Succeed())
		Expect(firstErr(empty.AddOutputDeferred("y", y))).To(Succeed())
		Expect(empty.AddChild(circuit.NewDelay(x, y))).To(Succeed())
		Expect(empty.Freeze()).To(Succeed())

		results, err := match.MatchSubcircuit(needle, empty, match.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(BeEmpty())
	})

	It("still matches a scrambled (renamed, reordered) copy of the haystack", func() {
		needle := muxNeedle()
		haystack := muxHaystack()
		scrambled, err := circuittest.Scramble(haystack, 3)
		Expect(err).NotTo(HaveOccurred())

		original, err := match.MatchSubcircuit(needle, haystack, match.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		results, err := match.MatchSubcircuit(needle, scrambled, match.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))

		if diff := cmp.Diff(resultShapes(original), resultShapes(results)); diff != "" {
			Fail(fmt.Sprintf("match shapes differ after scrambling (-original +scrambled):\n%s", diff))
		}
	})

	It("requires both needle and haystack to be frozen", func() {
		needle := circuit.NewGroup("unfrozen")
		haystack := muxHaystack()
		_, err := match.MatchSubcircuit(needle, haystack, match.DefaultOptions())
		Expect(err).To(MatchError(circuit.ErrNotFrozen))
	})
})
