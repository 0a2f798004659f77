// SPDX-License-Identifier: MIT

package interp_test

import (
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dcegm/interp"
)

// naive is a brute-force reference: it scans every segment of sorted,
// distinct knots and extrapolates with the outermost ones.
func naive(x, y []float64, v float64) float64 {
	n := len(x)
	seg := 0
	switch {
	case v <= x[0]:
		seg = 0
	case v >= x[n-1]:
		seg = n - 2
	default:
		for k := 0; k < n-1; k++ {
			if x[k] <= v && v <= x[k+1] {
				seg = k
				break
			}
		}
	}
	t := (v - x[seg]) / (x[seg+1] - x[seg])
	return y[seg] + t*(y[seg+1]-y[seg])
}

// randomData draws sorted distinct knots in [0,1) and queries in [0,2), so
// roughly half of the queries extrapolate.
func randomData(r *rand.Rand, n, m int) (x, y, xNew []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	xNew = make([]float64, m)
	for i := range x {
		x[i] = r.Float64()
		y[i] = r.Float64()
	}
	for i := range xNew {
		xNew[i] = r.Float64() * 2
	}
	sort.Float64s(x)

	return x, y, xNew
}

func TestLinear_MatchesReference(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 50; trial++ {
		x, y, xNew := randomData(r, 5, 7)

		got, err := interp.Linear(x, y, xNew)
		require.NoError(t, err)
		for k, v := range xNew {
			assert.InDelta(t, naive(x, y, v), got[k], 1e-9, "trial %d, x_new=%g", trial, v)
		}
	}
}

// TestLinear_ExactOnLinearFunction checks that extrapolation reproduces a
// linear function exactly on both sides of the grid.
func TestLinear_ExactOnLinearFunction(t *testing.T) {
	t.Parallel()

	f := func(v float64) float64 { return 2.5*v - 1 }
	x := []float64{0, 0.5, 1.5, 3, 4}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = f(v)
	}
	xNew := []float64{-10, -0.1, 0, 0.25, 1, 3, 4, 4.0001, 7, 1e3}

	got, err := interp.Linear(x, y, xNew)
	require.NoError(t, err)
	for k, v := range xNew {
		assert.InDelta(t, f(v), got[k], 1e-9, "x_new=%g", v)
	}
}

func TestLinear_UnsortedInput(t *testing.T) {
	t.Parallel()

	x := []float64{3, 1, 2}
	y := []float64{30, 10, 20}

	got, err := interp.Linear(x, y, []float64{0, 1.5, 2.5, 4})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 15, 25, 40}, got, 1e-12)

	// Inputs are not mutated.
	assert.Equal(t, []float64{3, 1, 2}, x)
	assert.Equal(t, []float64{30, 10, 20}, y)
}

func TestLinear_RepeatedKnots(t *testing.T) {
	t.Parallel()

	// A terminal-period policy: grid [0, 0, 1, 2] with c(M) = M.
	x := []float64{0, 0, 1, 2}
	y := []float64{0, 0, 1, 2}

	got, err := interp.Linear(x, y, []float64{-1, 0, 0.5, 2, 3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, 0, 0.5, 2, 3}, got, 1e-12)

	// Exact hit on a duplicated knot takes the right-most copy.
	assert.Equal(t, 7.0, interp.LinearAt([]float64{0, 1, 1, 2}, []float64{0, 5, 7, 8}, 1))
}

func TestLinearTo(t *testing.T) {
	t.Parallel()

	x := []float64{0, 1}
	y := []float64{1, 3}
	dst := make([]float64, 3)
	require.NoError(t, interp.LinearTo(dst, x, y, []float64{-1, 0.5, 2}))
	assert.InDeltaSlice(t, []float64{-1, 2, 5}, dst, 1e-12)

	assert.ErrorIs(t, interp.LinearTo(make([]float64, 1), x, y, []float64{1, 2}), interp.ErrLengthMismatch)
	assert.ErrorIs(t, interp.LinearTo(dst, []float64{1, 1}, y, []float64{1, 2, 3}), interp.ErrTooFewPoints)
}

func TestLinearWithFill(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(3, 5))
	x, y, xNew := randomData(r, 5, 7)
	fill := r.Float64()

	got, err := interp.LinearWithFill(x, y, xNew, fill)
	require.NoError(t, err)
	for k, v := range xNew {
		if v < x[0] || v > x[len(x)-1] {
			assert.Equal(t, fill, got[k])
			continue
		}
		assert.InDelta(t, naive(x, y, v), got[k], 1e-9)
	}
}

func TestLinear_Errors(t *testing.T) {
	t.Parallel()

	_, err := interp.Linear([]float64{1}, []float64{1}, []float64{0})
	assert.ErrorIs(t, err, interp.ErrTooFewPoints)

	_, err = interp.Linear([]float64{1, 2}, []float64{1}, []float64{0})
	assert.ErrorIs(t, err, interp.ErrLengthMismatch)

	_, err = interp.Linear([]float64{2, 2, 2}, []float64{1, 2, 3}, []float64{0})
	assert.ErrorIs(t, err, interp.ErrTooFewPoints)
}

func TestLinear_NaNQuery(t *testing.T) {
	t.Parallel()

	got, err := interp.Linear([]float64{0, 1}, []float64{0, 1}, []float64{math.NaN()})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got[0]))
}

func BenchmarkLinear(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 2))
	x, y, _ := randomData(r, 501, 0)
	xNew := make([]float64, 5*500)
	for i := range xNew {
		xNew[i] = r.Float64() * 1.5
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := interp.Linear(x, y, xNew); err != nil {
			b.Fatalf("Linear failed: %v", err)
		}
	}
}
