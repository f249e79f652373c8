package match

import (
	"github.com/tobast/circuit-isomatch/pkg/circuit"
	"github.com/tobast/circuit-isomatch/pkg/circuit/equality"
)

// MatchSubcircuit finds every occurrence of needle inside haystack (spec
// §4.F). Both must already be frozen. Results are returned in a
// deterministic order for a given frozen input (spec §5's ordering
// guarantee): inner-to-outer by nesting depth (a nested group's matches
// precede those of the group containing it), and within one group, in the
// order matches are accepted by the backtracking search.
func MatchSubcircuit(needle, haystack *circuit.Group, opts Options) ([]Result, error) {
	if !needle.Frozen() || !haystack.Frozen() {
		return nil, circuit.ErrNotFrozen
	}

	implied := map[circuit.Gate]bool{}
	return matchRecursive(needle, haystack, implied, opts)
}

// matchRecursive implements step 1: recurse into every haystack child that
// is itself a group before matching at this level, so matches found inside
// a nested group mark that group's gates as already-implied and those
// gates are skipped here.
func matchRecursive(needle, haystack *circuit.Group, implied map[circuit.Gate]bool, opts Options) ([]Result, error) {
	var results []Result

	for _, child := range haystack.Children() {
		childGroup, ok := child.(*circuit.Group)
		if !ok {
			continue
		}
		sub, err := matchRecursive(needle, childGroup, implied, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, sub...)
	}

	here, err := matchInGroup(needle, haystack, implied, opts)
	if err != nil {
		return nil, err
	}
	results = append(results, here...)
	return results, nil
}

// matchInGroup implements spec §4.F steps 2-8 at a single haystack group:
// repeatedly pick the smallest candidate pool as a seed and search for a
// match, marking its parts implied and retrying, until either a pool goes
// empty (step 4) or the chosen seed's candidates are exhausted without a
// match (step 8).
func matchInGroup(needle, haystack *circuit.Group, implied map[circuit.Gate]bool, opts Options) ([]Result, error) {
	var results []Result
	if len(needle.Children()) == 0 {
		return results, nil
	}

	excluded := map[circuit.Gate]map[circuit.Gate]bool{}
	log := opts.logger().WithField("haystack_group", haystack.Name())

	for {
		pools, err := buildCandidatePools(needle, haystack, implied)
		if err != nil {
			return results, err
		}

		empty := false
		for _, p := range pools {
			if len(p) == 0 {
				empty = true
				break
			}
		}
		if empty {
			log.Debug("match: a needle child's candidate pool is empty, stopping")
			break
		}

		seed := pickSeed(needle.Children(), pools)
		opts.tracer().Seed(seed, len(pools[seed]))
		log.WithField("pool_size", len(pools[seed])).Debug("match: seed selected")

		found := false
		for _, c := range pools[seed] {
			if excluded[seed] != nil && excluded[seed][c] {
				continue
			}
			s := newSearcher(needle, haystack, pools, excluded, opts)
			f := s.bij.push()

			ok, err := s.tryAssign(f, seed, c)
			if err == nil && ok {
				ok, err = s.completeRemaining(f)
			}
			if err != nil {
				return results, err
			}
			if !ok {
				s.bij.revert(f)
				opts.tracer().Backtrack(seed, c)
				continue
			}

			result, accepted, err := s.accept()
			if err != nil {
				return results, err
			}
			if !accepted {
				s.bij.revert(f)
				opts.tracer().Backtrack(seed, c)
				continue
			}

			opts.tracer().Accept(len(result.Parts))
			log.WithField("parts", len(result.Parts)).Debug("match: accepted")
			results = append(results, result)
			for _, g := range result.Parts {
				implied[g] = true
			}
			found = true
			break
		}
		if !found {
			break
		}
	}
	return results, nil
}

// pickSeed returns the needle child with the smallest candidate pool (spec
// §4.F step 5), breaking ties by needle declaration order.
func pickSeed(children []circuit.Gate, pools map[circuit.Gate][]circuit.Gate) circuit.Gate {
	best := children[0]
	for _, c := range children[1:] {
		if len(pools[c]) < len(pools[best]) {
			best = c
		}
	}
	return best
}

// accept implements spec §4.F step 7: every paired gate must satisfy
// equals recursively (a failure excludes that haystack gate from future
// attempts at the same needle gate, within this group), the lockstep I/O
// walk of every pair must agree with edge_map, and node_map/edge_map must
// both be injective -- the latter is already guaranteed by construction via
// haystackUsed/wireUsed, so only re-verified implicitly.
func (s *searcher) accept() (Result, bool, error) {
	for ng, hg := range s.bij.nodeMap {
		ok, err := equality.Equals(ng, hg, s.opts.Equality)
		if err != nil {
			return Result{}, false, err
		}
		if !ok {
			s.exclude(ng, hg)
			return Result{}, false, nil
		}
	}

	for ng, hg := range s.bij.nodeMap {
		nio := circuit.IO(ng)
		hio := circuit.IO(hg)
		if len(nio) != len(hio) {
			return Result{}, false, nil
		}
		for i := range nio {
			want, ok := s.bij.edgeMap[nio[i].Key()]
			if !ok || !want.Equal(hio[i]) {
				return Result{}, false, nil
			}
		}
	}

	return s.buildResult(), true, nil
}

func (s *searcher) buildResult() Result {
	children := s.needle.Children()
	parts := make([]circuit.Gate, len(children))
	for i, ng := range children {
		parts[i] = s.bij.nodeMap[ng]
	}

	inputs := make([]*circuit.Wire, len(s.needle.InputPins()))
	for i, p := range s.needle.InputPins() {
		inputs[i] = s.bij.edgeMap[p.Actual().Key()]
	}
	outputs := make([]*circuit.Wire, len(s.needle.OutputPins()))
	for i, p := range s.needle.OutputPins() {
		outputs[i] = s.bij.edgeMap[p.Actual().Key()]
	}

	return Result{Parts: parts, Inputs: inputs, Outputs: outputs}
}
