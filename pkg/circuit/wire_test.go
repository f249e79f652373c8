package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWireRegistryFreshAndLookup(t *testing.T) {
	reg := NewWireRegistry()

	a, err := reg.Fresh("a")
	require.NoError(t, err)
	require.True(t, reg.HasName("a"))

	_, err = reg.Fresh("a")
	require.ErrorIs(t, err, ErrAlreadyDefined)

	got, err := reg.Lookup("a", true)
	require.NoError(t, err)
	require.True(t, got.Equal(a))

	_, err = reg.Lookup("missing", true)
	require.ErrorIs(t, err, ErrNotDefined)

	created, err := reg.Lookup("created-on-demand", false)
	require.NoError(t, err)
	require.True(t, reg.HasName("created-on-demand"))
	require.False(t, created.Equal(a))
}

func TestWireMergeUnionFind(t *testing.T) {
	reg := NewWireRegistry()
	a, err := reg.Fresh("a")
	require.NoError(t, err)
	b, err := reg.Fresh("b")
	require.NoError(t, err)
	c, err := reg.Fresh("c")
	require.NoError(t, err)

	require.False(t, a.Equal(b))

	reg.Merge(a, b)
	require.True(t, a.Equal(b))
	require.Equal(t, a.Key(), b.Key())

	reg.Merge(b, c)
	require.True(t, a.Equal(c))
	require.True(t, b.Equal(c))
}

func TestWireMergeCombinesAdjacency(t *testing.T) {
	reg := NewWireRegistry()
	a, err := reg.Fresh("a")
	require.NoError(t, err)
	b, err := reg.Fresh("b")
	require.NoError(t, err)

	in, err := reg.Fresh("in")
	require.NoError(t, err)
	out, err := reg.Fresh("out")
	require.NoError(t, err)

	d1 := NewDelay(a, out)
	d2 := NewDelay(in, b)

	reg.Merge(a, b)
	require.Len(t, a.canonical().rec.gates, 2)
	require.Contains(t, a.canonical().rec.gates, Gate(d1))
	require.Contains(t, a.canonical().rec.gates, Gate(d2))
}

func TestWireUniqueName(t *testing.T) {
	reg := NewWireRegistry()
	a, err := reg.Fresh("a")
	require.NoError(t, err)
	require.Contains(t, a.UniqueName(), "wire_")
}

func TestRegistryRenameKeepsLookupInSync(t *testing.T) {
	reg := NewWireRegistry()
	a, err := reg.Fresh("a")
	require.NoError(t, err)

	reg.Rename(a, "renamed")
	require.False(t, reg.HasName("a"))
	require.True(t, reg.HasName("renamed"))

	got, err := reg.Lookup("renamed", true)
	require.NoError(t, err)
	require.True(t, got.Equal(a))
}

func TestRegistryEnumerateSurvivesMerge(t *testing.T) {
	reg := NewWireRegistry()
	a, _ := reg.Fresh("a")
	b, _ := reg.Fresh("b")
	reg.Merge(a, b)

	all := reg.Enumerate()
	require.Len(t, all, 2)
	for _, w := range all {
		require.True(t, w.Equal(a))
	}
}

func TestFreshInsulatedNotFoundByName(t *testing.T) {
	reg := NewWireRegistry()
	w := reg.FreshInsulated("shadow")
	require.False(t, reg.HasName("shadow"))
	require.NotNil(t, w)
}
