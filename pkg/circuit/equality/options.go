// Package equality implements formal equality between two frozen circuits
// (spec §4.E): recursive isomorphism under permutation of a group's
// children and renaming of its wires, built on top of the signature engine
// for candidate bucketing.
package equality

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options tunes the precision-escalation search of groupEquals, per spec
// §4.E's suggested defaults. Following the teacher's configuration idiom
// (named tunables local to the constructor that uses them, or fields on a
// small options struct when a caller might reasonably override them), these
// are exposed rather than hard-coded so a caller comparing very large,
// densely-bucketed circuits can raise the cap or threshold.
type Options struct {
	// BasePrecision is the neighborhood level bucketing starts at.
	BasePrecision int
	// PrecisionCap is the highest level escalation will reach; at the cap,
	// the permutation search proceeds regardless of estimated cost.
	PrecisionCap int
	// PermutationThreshold is the estimated permutation-enumeration cost
	// (the product of each bucket's factorial) above which precision is
	// escalated, provided the cap hasn't been reached yet.
	PermutationThreshold int
	// Logger receives coarse progress messages (bucket-key divergence,
	// precision escalations with their estimated cost, acceptance/rejection).
	// Defaults to a discarding logger.
	Logger logrus.FieldLogger
}

// DefaultOptions returns the suggested defaults from spec §4.E: base
// precision 2, cap 15, permutation-cost threshold 4.
func DefaultOptions() Options {
	return Options{
		BasePrecision:        2,
		PrecisionCap:         15,
		PermutationThreshold: 4,
		Logger:               discardLogger,
	}
}

var discardLogger logrus.FieldLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}
