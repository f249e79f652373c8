package match

import (
	"github.com/tobast/circuit-isomatch/internal/bitset"
	"github.com/tobast/circuit-isomatch/pkg/circuit"
)

// bijection is the partial node_map/edge_map pair of spec §4.F step 6,
// together with the reverse lookups needed for injectivity and "already
// used" checks. All mutation goes through assignNode/assignEdge so a frame
// can record exactly what it added and revert can undo exactly that --
// the "explicit stack of frames" spec §9 asks for in place of the
// original's setjmp/longjmp backtracking. haystackUsed is keyed by gate ID
// rather than the gate itself: a bitset is cheaper to flip on every
// assign/revert than a map entry over the lifetime of a search.
type bijection struct {
	nodeMap      map[circuit.Gate]circuit.Gate
	haystackUsed *bitset.Set
	edgeMap      map[circuit.WireKey]*circuit.Wire
	wireUsed     map[circuit.WireKey]bool
}

func newBijection() *bijection {
	return &bijection{
		nodeMap:      map[circuit.Gate]circuit.Gate{},
		haystackUsed: bitset.New(64),
		edgeMap:      map[circuit.WireKey]*circuit.Wire{},
		wireUsed:     map[circuit.WireKey]bool{},
	}
}

func (b *bijection) isHaystackUsed(hg circuit.Gate) bool {
	return b.haystackUsed.Test(int(hg.ID()))
}

// frame records the node/edge additions made during one candidate-pairing
// attempt, so a failed attempt can be reverted in one step.
type frame struct {
	nodes []circuit.Gate
	edges []circuit.WireKey
}

func (b *bijection) push() *frame { return &frame{} }

func (b *bijection) assignNode(f *frame, ng, hg circuit.Gate) {
	b.nodeMap[ng] = hg
	b.haystackUsed.Set(int(hg.ID()))
	f.nodes = append(f.nodes, ng)
}

func (b *bijection) assignEdge(f *frame, nk circuit.WireKey, hw *circuit.Wire) {
	b.edgeMap[nk] = hw
	b.wireUsed[hw.Key()] = true
	f.edges = append(f.edges, nk)
}

func (b *bijection) revert(f *frame) {
	for _, ng := range f.nodes {
		hg := b.nodeMap[ng]
		delete(b.nodeMap, ng)
		b.haystackUsed.Clear(int(hg.ID()))
	}
	for _, nk := range f.edges {
		hw := b.edgeMap[nk]
		delete(b.edgeMap, nk)
		delete(b.wireUsed, hw.Key())
	}
}

// searcher holds the fixed context of one matchInGroup invocation: the
// needle/haystack pair, the signature-and-fitness candidate pools, a
// per-needle-gate exclusion set fed by failed acceptance checks (spec §4.F
// step 7's "on failure, prune that candidate from S(.)"), and the working
// bijection for the attempt currently in progress.
type searcher struct {
	needle, haystack *circuit.Group
	pools            map[circuit.Gate][]circuit.Gate
	excluded         map[circuit.Gate]map[circuit.Gate]bool
	bij              *bijection
	opts             Options
}

func newSearcher(needle, haystack *circuit.Group, pools map[circuit.Gate][]circuit.Gate, excluded map[circuit.Gate]map[circuit.Gate]bool, opts Options) *searcher {
	return &searcher{
		needle:   needle,
		haystack: haystack,
		pools:    pools,
		excluded: excluded,
		bij:      newBijection(),
		opts:     opts,
	}
}

func (s *searcher) isExcluded(ng, hg circuit.Gate) bool {
	return s.excluded[ng] != nil && s.excluded[ng][hg]
}

func (s *searcher) exclude(ng, hg circuit.Gate) {
	if s.excluded[ng] == nil {
		s.excluded[ng] = map[circuit.Gate]bool{}
	}
	s.excluded[ng][hg] = true
}

// inPool reports whether hg is a member of ng's candidate pool and has not
// been excluded by a prior failed acceptance check.
func (s *searcher) inPool(ng, hg circuit.Gate) bool {
	if s.isExcluded(ng, hg) {
		return false
	}
	for _, c := range s.pools[ng] {
		if c == hg {
			return true
		}
	}
	return false
}

// tryAssign implements the node step and edge step of spec §4.F step 6 as
// one atomic, all-or-nothing extension of the bijection: pairing (ng, hg),
// extending edge_map in lockstep over their I/O, then recursively resolving
// every needle gate newly reachable through those edges, all within frame f
// so a single failure anywhere in the transitive closure can be undone by
// one revert(f).
func (s *searcher) tryAssign(f *frame, ng, hg circuit.Gate) (bool, error) {
	if existing, mapped := s.bij.nodeMap[ng]; mapped {
		return existing == hg, nil
	}
	if s.bij.isHaystackUsed(hg) {
		return false, nil
	}
	if !s.inPool(ng, hg) {
		return false, nil
	}

	nio := circuit.IO(ng)
	hio := circuit.IO(hg)
	if len(nio) != len(hio) {
		return false, nil
	}

	for i := range nio {
		nk := nio[i].Key()
		if existing, ok := s.bij.edgeMap[nk]; ok {
			if !existing.Equal(hio[i]) {
				return false, nil
			}
			continue
		}
		if s.bij.wireUsed[hio[i].Key()] {
			return false, nil
		}
	}

	s.opts.tracer().TryNode(ng, hg)
	s.bij.assignNode(f, ng, hg)

	var newEdges []circuit.WireKey
	for i := range nio {
		nk := nio[i].Key()
		if _, ok := s.bij.edgeMap[nk]; ok {
			continue
		}
		if s.bij.wireUsed[hio[i].Key()] {
			return false, nil
		}
		s.bij.assignEdge(f, nk, hio[i])
		newEdges = append(newEdges, nk)
	}

	for _, nk := range newEdges {
		hw := s.bij.edgeMap[nk]
		nw := nio[indexOfKey(nio, nk)]
		for _, ng2 := range nw.ConnectedGates() {
			if ng2 == ng {
				continue
			}
			if existingHg, mapped := s.bij.nodeMap[ng2]; mapped {
				if !gateConnectedTo(existingHg, hw) {
					return false, nil
				}
				continue
			}
			candidates := intersectConnected(s.pools[ng2], hw)
			ok, err := s.tryCandidates(f, ng2, candidates)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// tryCandidates attempts each candidate in order (deterministic, following
// pool order) until one extends the bijection successfully. Each attempt
// runs in its own frame, reverted on failure before the next candidate.
func (s *searcher) tryCandidates(f *frame, ng circuit.Gate, candidates []circuit.Gate) (bool, error) {
	for _, hg := range candidates {
		if s.bij.isHaystackUsed(hg) {
			continue
		}
		sub := s.bij.push()
		ok, err := s.tryAssign(sub, ng, hg)
		if err != nil {
			return false, err
		}
		if ok {
			f.nodes = append(f.nodes, sub.nodes...)
			f.edges = append(f.edges, sub.edges...)
			return true, nil
		}
		s.bij.revert(sub)
	}
	return false, nil
}

// completeRemaining resolves any needle gate not reached transitively from
// the seed (a needle group with more than one wire-connected component),
// trying each of its pool candidates against the current bijection.
func (s *searcher) completeRemaining(f *frame) (bool, error) {
	for _, ng := range s.needle.Children() {
		if _, mapped := s.bij.nodeMap[ng]; mapped {
			continue
		}
		ok, err := s.tryCandidates(f, ng, s.pools[ng])
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func indexOfKey(wires []*circuit.Wire, k circuit.WireKey) int {
	for i, w := range wires {
		if w.Key() == k {
			return i
		}
	}
	return -1
}

func gateConnectedTo(g circuit.Gate, w *circuit.Wire) bool {
	for _, adj := range w.ConnectedGates() {
		if adj == g {
			return true
		}
	}
	return false
}

// intersectConnected filters pool, preserving its (deterministic) order, to
// the gates also adjacent to w -- the candidate set for a needle gate
// reached via a specific haystack wire. Adjacency is tested through a
// bitset keyed by gate ID rather than a map, following the same
// forced-assignment shortcut as the original's dyn_bitset::whichBit: once
// the intersection is down to a single candidate, WhichBit recovers it in
// one pass instead of a second scan over pool.
func intersectConnected(pool []circuit.Gate, w *circuit.Wire) []circuit.Gate {
	if len(pool) == 0 {
		return nil
	}
	adjacent := bitset.New(64)
	for _, g := range w.ConnectedGates() {
		adjacent.Set(int(g.ID()))
	}

	byID := make(map[int]circuit.Gate, len(pool))
	members := bitset.New(64)
	for _, c := range pool {
		if adjacent.Test(int(c.ID())) {
			members.Set(int(c.ID()))
			byID[int(c.ID())] = c
		}
	}

	switch members.Count() {
	case 0:
		return nil
	case 1:
		return []circuit.Gate{byID[members.WhichBit()]}
	}

	var out []circuit.Gate
	for _, c := range pool {
		if members.Test(int(c.ID())) {
			out = append(out, c)
		}
	}
	return out
}
