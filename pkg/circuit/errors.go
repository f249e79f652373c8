package circuit

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for the structural, programmer-error conditions of
// spec §4.C/§4.G/§7. Algorithmic non-findings (equality returning false,
// an empty match set) are never represented as errors; only these are.
var (
	// ErrFrozen is returned by any mutating operation on a gate that has
	// already been frozen.
	ErrFrozen = errors.New("circuit: gate is frozen")

	// ErrNotFrozen is returned by a freeze-dependent query (Sign,
	// equality.Equals, match.MatchSubcircuit) issued against a gate that has
	// not been frozen.
	ErrNotFrozen = errors.New("circuit: gate is not frozen")

	// ErrNoParent is returned when an operation requires an ancestor group
	// and none exists.
	ErrNoParent = errors.New("circuit: no parent group")

	// ErrAlreadyConnected is returned by IOPin.Connect when the pin's
	// formal side is already linked.
	ErrAlreadyConnected = errors.New("circuit: pin already connected")

	// ErrAlreadyDefined is returned by WireRegistry.Fresh when the name is
	// already registered.
	ErrAlreadyDefined = errors.New("circuit: wire already defined")

	// ErrNotDefined is returned by a strict wire lookup that misses.
	ErrNotDefined = errors.New("circuit: wire not defined")

	// ErrHasAncestor is returned by Group.AddChild when the child already
	// belongs to another group.
	ErrHasAncestor = errors.New("circuit: child already has an ancestor")

	// ErrUnimplementedOperator is returned defensively by expression
	// signature/equality dispatch when a variant tag falls outside the
	// enumerated set. It should be unreachable.
	ErrUnimplementedOperator = errors.New("circuit: unimplemented operator")
)

// ErrorCode maps an error returned by this package to the stable,
// cross-binding numeric codes of spec §6. It exists for the C-ABI-style
// wrapper layer (out of scope here); pure Go callers should use errors.Is
// against the sentinels above instead.
func ErrorCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNoParent):
		return 3
	case errors.Is(err, ErrInvalidHex):
		return 4
	default:
		return 255
	}
}

// wireNameError wraps one of the sentinels above with the offending wire
// name, following the teacher's pkg/errors.Wrap-at-the-boundary style
// (queueinformer.go) so both errors.Is and a readable %v/%s keep working.
func wireNameError(sentinel error, name string) error {
	return fmt.Errorf("%s %q: %w", sentinelVerb(sentinel), name, sentinel)
}

func sentinelVerb(sentinel error) string {
	switch sentinel {
	case ErrAlreadyDefined:
		return "wire"
	case ErrNotDefined:
		return "wire"
	default:
		return "error"
	}
}
