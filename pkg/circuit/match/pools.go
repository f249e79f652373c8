package match

import "github.com/tobast/circuit-isomatch/pkg/circuit"

// connKey is one entry of a wire's connection multiset (spec §4.F step 3):
// the level-0 signature of an adjacent gate, refined by which role (input
// or output) the wire plays at that gate.
type connKey struct {
	sig     uint64
	isInput bool
}

// fitnessCache memoizes each wire's connection multiset within one
// buildCandidatePools call, since every candidate check against the same
// haystack wire recomputes the same counts otherwise.
type fitnessCache struct {
	counts map[*circuit.Wire]map[connKey]int
}

func newFitnessCache() *fitnessCache {
	return &fitnessCache{counts: map[*circuit.Wire]map[connKey]int{}}
}

func (fc *fitnessCache) multiset(w *circuit.Wire) (map[connKey]int, error) {
	if m, ok := fc.counts[w]; ok {
		return m, nil
	}
	m := map[connKey]int{}
	seen := map[circuit.Gate]bool{}
	for _, g := range w.ConnectedGates() {
		if seen[g] {
			continue
		}
		seen[g] = true
		sig, err := g.Sign(0)
		if err != nil {
			return nil, err
		}
		inCount, outCount := 0, 0
		for _, iw := range g.Inputs() {
			if iw.Equal(w) {
				inCount++
			}
		}
		for _, ow := range g.Outputs() {
			if ow.Equal(w) {
				outCount++
			}
		}
		if inCount > 0 {
			m[connKey{sig, true}] += inCount
		}
		if outCount > 0 {
			m[connKey{sig, false}] += outCount
		}
	}
	fc.counts[w] = m
	return m, nil
}

// fitFor reports whether haystackWire is fit for needleWire (spec §4.F step
// 3): for every key of needleWire's connection multiset, haystackWire's
// count at that key is at least as large.
func (fc *fitnessCache) fitFor(haystackWire, needleWire *circuit.Wire) (bool, error) {
	hCounts, err := fc.multiset(haystackWire)
	if err != nil {
		return false, err
	}
	nCounts, err := fc.multiset(needleWire)
	if err != nil {
		return false, err
	}
	for k, v := range nCounts {
		if hCounts[k] < v {
			return false, nil
		}
	}
	return true, nil
}

// buildCandidatePools computes S(n) for every child n of needle (spec §4.F
// steps 2-3): haystack children of the same level-0 signature, not already
// implied by a nested match, surviving lockstep wire-fitness pruning against
// n's own I/O wires.
func buildCandidatePools(needle, haystack *circuit.Group, implied map[circuit.Gate]bool) (map[circuit.Gate][]circuit.Gate, error) {
	fc := newFitnessCache()
	pools := make(map[circuit.Gate][]circuit.Gate, len(needle.Children()))

	for _, n := range needle.Children() {
		nSig, err := n.Sign(0)
		if err != nil {
			return nil, err
		}
		nio := circuit.IO(n)

		var pool []circuit.Gate
		for _, h := range haystack.Children() {
			if implied[h] {
				continue
			}
			hSig, err := h.Sign(0)
			if err != nil {
				return nil, err
			}
			if hSig != nSig {
				continue
			}
			hio := circuit.IO(h)
			if len(hio) != len(nio) {
				continue
			}
			fit := true
			for i := range nio {
				ok, err := fc.fitFor(hio[i], nio[i])
				if err != nil {
					return nil, err
				}
				if !ok {
					fit = false
					break
				}
			}
			if !fit {
				continue
			}
			pool = append(pool, h)
		}
		pools[n] = pool
	}
	return pools, nil
}
