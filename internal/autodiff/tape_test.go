package autodiff_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGradientTape_Reuse tests backward, reset and backward again on one tape.
func TestGradientTape_Reuse(t *testing.T) {
	x := autodiff.NewLeaf(3)
	y := autodiff.NewLeaf(4)
	p := autodiff.Mul(x, y)
	h := autodiff.Add(p, x)

	tape, err := autodiff.NewGradientTape(h)
	require.NoError(t, err)
	assert.Same(t, h, tape.Root())
	assert.Equal(t, 2, tape.NumOps())
	assert.Len(t, tape.Nodes(), 4)
	assert.ElementsMatch(t, []*autodiff.Node{x, y}, tape.Leaves())

	for i := 0; i < 3; i++ {
		require.NoError(t, tape.Backward(autodiff.BackwardOptions{}))
		assert.Equal(t, 5.0, x.Grad(), "iteration %d", i)
		assert.Equal(t, 3.0, y.Grad(), "iteration %d", i)

		require.ErrorIs(t, tape.Backward(autodiff.BackwardOptions{}), autodiff.ErrStaleGradient)
		tape.ZeroGrad()
		for _, n := range tape.Nodes() {
			assert.Zero(t, n.Grad())
		}
	}
}

// TestWriteDot tests the Graphviz export.
func TestWriteDot(t *testing.T) {
	a := autodiff.NewNamedLeaf(2, "a")
	b := autodiff.NewNamedLeaf(-3, "b")
	c := autodiff.Mul(a, b)
	require.NoError(t, autodiff.Backward(c))

	var buf bytes.Buffer
	require.NoError(t, autodiff.WriteDot(&buf, c))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "digraph G {"))
	assert.Contains(t, out, "rankdir=LR;")
	assert.Contains(t, out, "{ a | data 2.0000 | grad -3.0000 }")
	assert.Contains(t, out, "{ b | data -3.0000 | grad 2.0000 }")
	assert.Contains(t, out, `n0_op [label="*"];`)
	assert.Contains(t, out, "n0_op -> n0;")
	assert.Equal(t, 2, strings.Count(out, "-> n0_op;"))
}

// TestWriteDot_EscapesNames tests that record-structural characters in node
// names are quoted.
func TestWriteDot_EscapesNames(t *testing.T) {
	a := autodiff.NewNamedLeaf(1, `w|{0}"<x>`)
	b := autodiff.NewNamedLeaf(2, `back\slash`)
	c := autodiff.Add(a, b)

	var buf bytes.Buffer
	require.NoError(t, autodiff.WriteDot(&buf, c))
	out := buf.String()

	assert.Contains(t, out, `{ w\|\{0\}\"\<x\> | data 1.0000 | grad 0.0000 }`)
	assert.Contains(t, out, `{ back\\slash | data 2.0000`)
	assert.NotContains(t, out, `w|{0}`)
}
