package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	require.Equal(t, 0, ErrorCode(nil))
	require.Equal(t, 3, ErrorCode(ErrNoParent))
	require.Equal(t, 4, ErrorCode(ErrInvalidHex))
	require.Equal(t, 255, ErrorCode(ErrFrozen))
}

func TestWireNameErrorWraps(t *testing.T) {
	err := wireNameError(ErrAlreadyDefined, "a")
	require.ErrorIs(t, err, ErrAlreadyDefined)
	require.Contains(t, err.Error(), "a")
}
