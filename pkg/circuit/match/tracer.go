package match

import (
	"fmt"
	"io"

	"github.com/tobast/circuit-isomatch/pkg/circuit"
)

// Tracer observes the backtracking search step by step, modeled directly on
// the teacher's solver.Tracer: a separate, zero-cost-by-default hook for
// deep debugging of the search itself, distinct from the coarser logrus
// progress messages Options.Logger receives.
type Tracer interface {
	// Seed is called each time a group's search round picks a seed (first,
	// and again after every accepted match), reporting the chosen seed
	// needle gate and the size of its candidate pool.
	Seed(needle circuit.Gate, poolSize int)
	// TryNode is called before attempting to extend the bijection with
	// (needleGate, haystackGate).
	TryNode(needleGate, haystackGate circuit.Gate)
	// Backtrack is called when a tentative assignment is reverted.
	Backtrack(needleGate, haystackGate circuit.Gate)
	// Accept is called when a full match is found, reporting the number of
	// parts in the result.
	Accept(parts int)
}

// DefaultTracer does nothing; it is used whenever Options.Tracer is nil.
type DefaultTracer struct{}

func (DefaultTracer) Seed(circuit.Gate, int)               {}
func (DefaultTracer) TryNode(circuit.Gate, circuit.Gate)   {}
func (DefaultTracer) Backtrack(circuit.Gate, circuit.Gate) {}
func (DefaultTracer) Accept(int)                           {}

var _ Tracer = DefaultTracer{}

// LoggingTracer writes one line per event to W, for interactive debugging
// of the search. It does not buffer or format beyond fmt.Fprintf.
type LoggingTracer struct {
	W io.Writer
}

func (t LoggingTracer) Seed(n circuit.Gate, poolSize int) {
	fmt.Fprintf(t.W, "seed: needle gate %d, pool size %d\n", n.ID(), poolSize)
}

func (t LoggingTracer) TryNode(n, h circuit.Gate) {
	fmt.Fprintf(t.W, "try: needle %d -> haystack %d\n", n.ID(), h.ID())
}

func (t LoggingTracer) Backtrack(n, h circuit.Gate) {
	fmt.Fprintf(t.W, "backtrack: needle %d -> haystack %d\n", n.ID(), h.ID())
}

func (t LoggingTracer) Accept(parts int) {
	fmt.Fprintf(t.W, "accept: match with %d parts\n", parts)
}

var _ Tracer = LoggingTracer{}
