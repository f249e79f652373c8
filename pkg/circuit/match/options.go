package match

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tobast/circuit-isomatch/pkg/circuit/equality"
)

// Options tunes a MatchSubcircuit call. Equality is used at acceptance time
// (spec §4.F step 7, "every paired gate satisfies equals recursively") and
// defaults to equality.DefaultOptions().
type Options struct {
	// Equality configures the recursive equals check run at match
	// acceptance time.
	Equality equality.Options
	// Tracer receives per-step backtracking events. Defaults to
	// DefaultTracer (no-op).
	Tracer Tracer
	// Logger receives coarse progress messages (a candidate pool found
	// empty, seed picked with its pool size, match accepted). Defaults to a
	// discard logger.
	Logger logrus.FieldLogger
}

// DefaultOptions returns sensible defaults: equality.DefaultOptions(), a
// no-op Tracer, and a discard Logger.
func DefaultOptions() Options {
	return Options{
		Equality: equality.DefaultOptions(),
		Tracer:   DefaultTracer{},
		Logger:   discardLogger,
	}
}

var discardLogger logrus.FieldLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (o Options) tracer() Tracer {
	if o.Tracer != nil {
		return o.Tracer
	}
	return DefaultTracer{}
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}
