package equality

import (
	"github.com/google/btree"
	"github.com/pkg/errors"

	"github.com/tobast/circuit-isomatch/pkg/circuit"
)

// Equals reports whether a and b are formally equal (spec §4.E): same
// variant, and recursively isomorphic under permutation of a group's
// children and renaming of its wires. Both gates must already be frozen.
func Equals(a, b circuit.Gate, opts Options) (bool, error) {
	if !a.Frozen() || !b.Frozen() {
		return false, circuit.ErrNotFrozen
	}
	return equals(a, b, opts)
}

func equals(a, b circuit.Gate, opts Options) (bool, error) {
	if a.Kind() != b.Kind() {
		return false, nil
	}

	switch av := a.(type) {
	case *circuit.Delay:
		return true, nil
	case *circuit.Tristate:
		return true, nil
	case *circuit.Assert:
		bv := b.(*circuit.Assert)
		if len(av.Inputs()) != len(bv.Inputs()) {
			return false, nil
		}
		return av.Expression().Equals(bv.Expression()), nil
	case *circuit.Combinational:
		bv := b.(*circuit.Combinational)
		if len(av.Inputs()) != len(bv.Inputs()) || len(av.Outputs()) != len(bv.Outputs()) {
			return false, nil
		}
		for i, e := range av.Expressions() {
			if !e.Equals(bv.Expressions()[i]) {
				return false, nil
			}
		}
		return true, nil
	case *circuit.Group:
		bv := b.(*circuit.Group)
		return groupEquals(av, bv, opts)
	default:
		return false, errors.Errorf("equality: unhandled gate kind %v", a.Kind())
	}
}

// sigBucket is a btree.Item grouping every child gate sharing a signature
// at a given precision level, kept in signature order so both sides of a
// comparison enumerate their buckets identically (spec §4.E: "bucket keys
// are iterated in deterministic signature order").
type sigBucket struct {
	sig     uint64
	members []circuit.Gate
}

func (s *sigBucket) Less(than btree.Item) bool {
	return s.sig < than.(*sigBucket).sig
}

func bucketize(children []circuit.Gate, level int) (*btree.BTree, error) {
	t := btree.New(32)
	for _, c := range children {
		sig, err := c.Sign(level)
		if err != nil {
			return nil, err
		}
		key := &sigBucket{sig: sig}
		if existing := t.Get(key); existing != nil {
			eb := existing.(*sigBucket)
			eb.members = append(eb.members, c)
			continue
		}
		key.members = []circuit.Gate{c}
		t.ReplaceOrInsert(key)
	}
	return t, nil
}

func orderedBuckets(t *btree.BTree) []*sigBucket {
	out := make([]*sigBucket, 0, t.Len())
	t.Ascend(func(i btree.Item) bool {
		out = append(out, i.(*sigBucket))
		return true
	})
	return out
}

func bucketsMatch(left, right []*sigBucket) bool {
	if len(left) != len(right) {
		return false
	}
	for i, lb := range left {
		rb := right[i]
		if lb.sig != rb.sig || len(lb.members) != len(rb.members) {
			return false
		}
	}
	return true
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
		if f > 1<<40 {
			return f
		}
	}
	return f
}

func permutationCost(buckets []*sigBucket) int {
	cost := 1
	for _, b := range buckets {
		cost *= factorial(len(b.members))
		if cost > 1<<40 {
			return cost
		}
	}
	return cost
}

// groupEquals implements spec §4.E's group-vs-group comparison: bucket the
// children by signature at an escalating precision level until either the
// bucket-key sequences diverge (reject) or the estimated permutation cost
// is small enough (or precision has hit its cap), then enumerate candidate
// bijections bucket by bucket until one satisfies both recursive equality
// of every paired child and a functional bijection of the induced wire
// mapping.
func groupEquals(a, b *circuit.Group, opts Options) (bool, error) {
	if len(a.Children()) != len(b.Children()) {
		return false, nil
	}
	if len(a.InputPins()) != len(b.InputPins()) || len(a.OutputPins()) != len(b.OutputPins()) {
		return false, nil
	}

	log := opts.logger().WithField("left", a.Name()).WithField("right", b.Name())

	precision := opts.BasePrecision
	if precision < 0 {
		precision = 0
	}
	precisionCap := opts.PrecisionCap
	threshold := opts.PermutationThreshold

	var leftBuckets, rightBuckets []*sigBucket
	for {
		lt, err := bucketize(a.Children(), precision)
		if err != nil {
			return false, err
		}
		rt, err := bucketize(b.Children(), precision)
		if err != nil {
			return false, err
		}
		leftBuckets = orderedBuckets(lt)
		rightBuckets = orderedBuckets(rt)

		if !bucketsMatch(leftBuckets, rightBuckets) {
			log.WithField("precision", precision).Debug("equality: bucket keys diverge, rejecting")
			return false, nil
		}

		cost := permutationCost(leftBuckets)
		if cost <= threshold || precision >= precisionCap {
			break
		}
		log.WithField("precision", precision).WithField("cost", cost).Debug("equality: escalating precision")
		precision++
	}

	ok, err := searchBijection(leftBuckets, rightBuckets, opts)
	if err != nil {
		return false, err
	}
	log.WithField("accepted", ok).Debug("equality: search complete")
	return ok, nil
}

// searchBijection tries, bucket by bucket, every permutation pairing left
// members to right members within each matched bucket, accepting the first
// full assignment across all buckets that checkAssignment confirms.
func searchBijection(left, right []*sigBucket, opts Options) (bool, error) {
	assign := make([]pair, 0, totalMembers(left))
	var searchErr error

	var rec func(i int) bool
	rec = func(i int) bool {
		if i == len(left) {
			ok, err := checkAssignment(assign, opts)
			if err != nil {
				searchErr = err
				return true // unwind; searchErr will be surfaced by caller
			}
			return ok
		}
		lb, rb := left[i], right[i]
		n := len(lb.members)
		found := permuteIndices(n, func(perm []int) bool {
			base := len(assign)
			for pos, ri := range perm {
				assign = append(assign, pair{lb.members[pos], rb.members[ri]})
			}
			ok := rec(i + 1)
			if !ok {
				assign = assign[:base]
			}
			return ok
		})
		return found
	}

	accepted := rec(0)
	if searchErr != nil {
		return false, searchErr
	}
	return accepted, nil
}

type pair struct {
	left, right circuit.Gate
}

func totalMembers(buckets []*sigBucket) int {
	n := 0
	for _, b := range buckets {
		n += len(b.members)
	}
	return n
}

// permuteIndices enumerates permutations of 0..n-1 in lexicographic order,
// calling visit with each; it stops and returns true as soon as visit
// returns true, or returns false once every permutation has been tried.
func permuteIndices(n int, visit func(perm []int) bool) bool {
	used := make([]bool, n)
	perm := make([]int, n)

	var rec func(pos int) bool
	rec = func(pos int) bool {
		if pos == n {
			return visit(perm)
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			perm[pos] = i
			if rec(pos + 1) {
				used[i] = false
				return true
			}
			used[i] = false
		}
		return false
	}
	return rec(0)
}

// checkAssignment verifies a full, bucket-respecting pairing: every paired
// child must satisfy Equals recursively, and the induced wire mapping,
// built by walking each pair's I/O in lockstep, must be a functional
// bijection -- no left wire maps to two different right wires, and no
// right wire is the image of two distinct left wires (spec §4.E).
func checkAssignment(assign []pair, opts Options) (bool, error) {
	wireMap := make(map[circuit.WireKey]*circuit.Wire, len(assign)*2)
	usedRight := make(map[circuit.WireKey]struct{}, len(assign)*2)

	for _, p := range assign {
		ok, err := equals(p.left, p.right, opts)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}

		lio := circuit.IO(p.left)
		rio := circuit.IO(p.right)
		if len(lio) != len(rio) {
			return false, nil
		}
		for i, lw := range lio {
			rw := rio[i]
			lk := lw.Key()
			rk := rw.Key()
			if existing, seen := wireMap[lk]; seen {
				if !existing.Equal(rw) {
					return false, nil
				}
				continue
			}
			if _, taken := usedRight[rk]; taken {
				return false, nil
			}
			wireMap[lk] = rw
			usedRight[rk] = struct{}{}
		}
	}
	return true, nil
}
