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

func linear(v float64) float64 { return 2 + 0.5*v }

// linearPolicy stores c(M) = 2 + M/2 on an uneven grid in period 1 of every
// slot, with a slot-specific shift so rows can be told apart.
func linearPolicy(t *testing.T, slots int) *egm.Container {
	t.Helper()

	c, err := egm.NewContainer(2, slots, 4)
	require.NoError(t, err)
	grid := []float64{0, 0.5, 1.5, 3, 4}
	for ch := 0; ch < slots; ch++ {
		vals := make([]float64, len(grid))
		for i, g := range grid {
			vals[i] = linear(g) + float64(ch)
		}
		f, err := c.At(1, ch)
		require.NoError(t, err)
		require.NoError(t, f.Set(grid, vals))
	}

	return c
}

// TestNextPeriodConsumption_LinearExactness: a linear policy is reproduced
// exactly inside and outside its grid.
func TestNextPeriodConsumption_LinearExactness(t *testing.T) {
	t.Parallel()

	policy := linearPolicy(t, 2)
	wealth := mat.NewDense(2, 3, []float64{
		-3, 0.25, 4,
		1, 7.5, 100,
	})
	o := egm.Options{GridPointsWealth: 3, QuadraturePointsStochastic: 2, NDiscreteChoices: 2}

	got, err := egm.NextPeriodConsumption(0, policy, wealth, o)
	require.NoError(t, err)
	r, c := got.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 6, c)

	for ch := 0; ch < 2; ch++ {
		for q := 0; q < 2; q++ {
			for s := 0; s < 3; s++ {
				want := linear(wealth.At(q, s)) + float64(ch)
				assert.InDelta(t, want, got.At(ch, matrix.ColMajorIndex(q, s, 2)), 1e-12,
					"choice %d, q=%d, s=%d", ch, q, s)
			}
		}
	}
}

// TestNextPeriodConsumption_OrderConvention pins the flattened order: the
// quadrature index varies fastest along each row.
func TestNextPeriodConsumption_OrderConvention(t *testing.T) {
	t.Parallel()

	policy := linearPolicy(t, 1)
	wealth := mat.NewDense(2, 2, []float64{
		0, 2,
		4, 6,
	})
	o := egm.Options{GridPointsWealth: 2, QuadraturePointsStochastic: 2, NDiscreteChoices: 1}

	got, err := egm.NextPeriodConsumption(0, policy, wealth, o)
	require.NoError(t, err)
	// Column-major walk of wealth: 0, 4, 2, 6.
	assert.InDeltaSlice(t, []float64{linear(0), linear(4), linear(2), linear(6)}, got.RawRowView(0), 1e-12)
}

// TestNextPeriodConsumption_SingleChoice: fewer than two choices means one
// row from slot 0.
func TestNextPeriodConsumption_SingleChoice(t *testing.T) {
	t.Parallel()

	policy := linearPolicy(t, 1)
	wealth := mat.NewDense(1, 2, []float64{1, 2})
	for _, n := range []int{0, 1} {
		o := egm.Options{GridPointsWealth: 2, QuadraturePointsStochastic: 1, NDiscreteChoices: n}
		got, err := egm.NextPeriodConsumption(0, policy, wealth, o)
		require.NoError(t, err)
		r, _ := got.Dims()
		assert.Equal(t, 1, r)
	}
}

func TestNextPeriodConsumption_Errors(t *testing.T) {
	t.Parallel()

	policy, err := egm.NewContainer(2, 1, 2)
	require.NoError(t, err)
	wealth := mat.NewDense(1, 2, []float64{1, 2})
	o := egm.Options{GridPointsWealth: 2, QuadraturePointsStochastic: 1, NDiscreteChoices: 1}

	// Period 1 was never written: a single boundary point cannot be
	// interpolated.
	_, err = egm.NextPeriodConsumption(0, policy, wealth, o)
	assert.ErrorIs(t, err, egm.ErrShapeMismatch)

	// No period 2.
	_, err = egm.NextPeriodConsumption(1, policy, wealth, o)
	assert.ErrorIs(t, err, egm.ErrShapeMismatch)

	_, err = egm.NextPeriodConsumption(0, policy, nil, o)
	assert.ErrorIs(t, err, egm.ErrShapeMismatch)
}

func TestFunction_EvaluateTo_Unsorted(t *testing.T) {
	t.Parallel()

	f := egm.NewFunction(3)
	require.NoError(t, f.Set([]float64{0, 3, 1, 2}, []float64{0, 6, 2, 4}))

	dst := make([]float64, 3)
	require.NoError(t, f.EvaluateTo(dst, []float64{-1, 1.5, 5}))
	assert.InDeltaSlice(t, []float64{-2, 3, 10}, dst, 1e-12)
	assert.Equal(t, []float64{0, 3, 1, 2}, f.Grid(), "evaluation must not reorder storage")
}
