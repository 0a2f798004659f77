// SPDX-License-Identifier: MIT

package egm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dcegm/egm"
	"github.com/katalvlaran/dcegm/matrix"
)

// TestExpectedValue_Constant: weights summing to one and a constant next
// value give that constant at every savings point.
func TestExpectedValue_Constant(t *testing.T) {
	t.Parallel()

	wealth := mat.NewDense(4, 3, nil)
	next, err := matrix.Filled(2, 12, -7.25)
	require.NoError(t, err)

	for _, w := range [][]float64{
		{0.25, 0.25, 0.25, 0.25},
		{0.1, 0.2, 0.3, 0.4},
		{1, 0, 0, 0},
	} {
		got, err := egm.ExpectedValue(next, wealth, w)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for s, v := range got {
			assert.InDelta(t, -7.25, v, 1e-12, "weights %v, s=%d", w, s)
		}
	}
}

// TestExpectedValue_OrderConvention: row 0 is read column-major and only
// row 0 is used.
func TestExpectedValue_OrderConvention(t *testing.T) {
	t.Parallel()

	// V[q, s] for 2 quadrature points and 3 savings points.
	v := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		10, 20, 30,
	})
	flat, err := matrix.FlattenColMajor(v)
	require.NoError(t, err)

	next := mat.NewDense(2, 6, nil)
	next.SetRow(0, flat)
	next.SetRow(1, []float64{99, 99, 99, 99, 99, 99})

	w := []float64{0.75, 0.25}
	got, err := egm.ExpectedValue(next, mat.NewDense(2, 3, nil), w)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3.25, 6.5, 9.75}, got, 1e-12)
}

func TestExpectedValue_Errors(t *testing.T) {
	t.Parallel()

	wealth := mat.NewDense(2, 3, nil)
	_, err := egm.ExpectedValue(mat.NewDense(1, 5, nil), wealth, []float64{0.5, 0.5})
	assert.ErrorIs(t, err, egm.ErrShapeMismatch)

	_, err = egm.ExpectedValue(mat.NewDense(1, 6, nil), wealth, []float64{1})
	assert.ErrorIs(t, err, egm.ErrShapeMismatch)

	_, err = egm.ExpectedValue(nil, wealth, []float64{0.5, 0.5})
	assert.ErrorIs(t, err, egm.ErrShapeMismatch)
}
