package emit_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tobast/circuit-isomatch/pkg/circuit"
	"github.com/tobast/circuit-isomatch/pkg/circuit/emit"
)

func buildSimpleGroup(t *testing.T) *circuit.Group {
	t.Helper()
	g := circuit.NewGroup("top")
	reg := g.Registry()

	in, err := reg.Fresh("in")
	require.NoError(t, err)
	out, err := reg.Fresh("out")
	require.NoError(t, err)

	_, err = g.AddInput(in, in)
	require.NoError(t, err)
	_, err = g.AddOutput(out, out)
	require.NoError(t, err)

	require.NoError(t, g.AddChild(circuit.NewDelay(in, out)))
	require.NoError(t, g.Freeze())
	return g
}

func TestWriteDotProducesValidGraph(t *testing.T) {
	g := buildSimpleGroup(t)

	var buf bytes.Buffer
	require.NoError(t, emit.WriteDot(&buf, g))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "digraph {"))
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
	require.Contains(t, out, "shape=triangle")
	require.Contains(t, out, "shape=plain")
}

func TestWriteDotNestsSubgraphs(t *testing.T) {
	inner := circuit.NewGroup("inner")
	innerReg := inner.Registry()
	iin, err := innerReg.Fresh("iin")
	require.NoError(t, err)
	iout, err := innerReg.Fresh("iout")
	require.NoError(t, err)
	_, err = inner.AddInputDeferred("x", iin)
	require.NoError(t, err)
	_, err = inner.AddOutputDeferred("y", iout)
	require.NoError(t, err)
	require.NoError(t, inner.AddChild(circuit.NewDelay(iin, iout)))
	require.NoError(t, inner.Freeze())

	top := circuit.NewGroup("top")
	reg := top.Registry()
	x, err := reg.Fresh("x")
	require.NoError(t, err)
	y, err := reg.Fresh("y")
	require.NoError(t, err)
	_, err = top.AddInput(x, x)
	require.NoError(t, err)
	_, err = top.AddOutput(y, y)
	require.NoError(t, err)
	require.NoError(t, top.AddChild(inner))
	require.NoError(t, top.Freeze())

	var buf bytes.Buffer
	require.NoError(t, emit.WriteDot(&buf, top))
	require.Contains(t, buf.String(), "subgraph cluster_inner_")
}

func TestWriteJSONRoundTripsStructure(t *testing.T) {
	g := buildSimpleGroup(t)

	var buf bytes.Buffer
	require.NoError(t, emit.WriteJSON(&buf, g))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Equal(t, "group", decoded["kind"])
	require.Equal(t, "top", decoded["name"])
	children, ok := decoded["children"].([]interface{})
	require.True(t, ok)
	require.Len(t, children, 1)

	child := children[0].(map[string]interface{})
	require.Equal(t, "delay", child["kind"])
}
