// SPDX-License-Identifier: MIT

package final_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dcegm/egm"
	"github.com/katalvlaran/dcegm/final"
	"github.com/katalvlaran/dcegm/utility"
)

func TestSolve(t *testing.T) {
	t.Parallel()

	p := &egm.Params{Utility: egm.UtilityParams{Theta: 1, Delta: 0.35}}
	c, v, mu := final.Solve(math.E, 0, p, utility.CRRA{})
	assert.Equal(t, math.E, c)
	assert.InDelta(t, 1-0.35, v, 1e-15)
	assert.InDelta(t, 1/math.E, mu, 1e-15)
}

func TestSeed(t *testing.T) {
	t.Parallel()

	p := &egm.Params{Utility: egm.UtilityParams{Theta: 1, Delta: 0.5}}
	savings := []float64{1, 2, math.E}
	policy, err := egm.NewContainer(3, 2, len(savings))
	require.NoError(t, err)
	value, err := egm.NewContainer(3, 2, len(savings))
	require.NoError(t, err)

	// Slot s receives the retirement indicator 1-s.
	flip := func(slot int) int { return 1 - slot }
	require.NoError(t, final.Seed(policy, value, 2, savings, p, utility.CRRA{}, flip))

	for slot, penalty := range []float64{0, 0.5} {
		pf, err := policy.At(2, slot)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 2, math.E}, pf.Grid())
		assert.Equal(t, pf.Grid(), pf.Values())

		vf, err := value.At(2, slot)
		require.NoError(t, err)
		assert.Equal(t, pf.Grid(), vf.Grid())
		want := []float64{0, 0 - penalty, math.Log(2) - penalty, 1 - penalty}
		assert.InDeltaSlice(t, want, vf.Values(), 1e-15, "slot %d", slot)
	}

	// Earlier periods are untouched.
	pf, err := policy.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, pf.Len())
}

func TestSeed_Errors(t *testing.T) {
	t.Parallel()

	p := &egm.Params{Utility: egm.UtilityParams{Theta: 2}}
	c, err := egm.NewContainer(2, 1, 3)
	require.NoError(t, err)

	assert.ErrorIs(t, final.Seed(c, c, 1, []float64{1, 2}, p, utility.CRRA{}, nil), egm.ErrShapeMismatch)
	assert.ErrorIs(t, final.Seed(c, c, 2, []float64{1, 2, 3}, p, utility.CRRA{}, nil), egm.ErrShapeMismatch)
	assert.ErrorIs(t, final.Seed(nil, c, 1, []float64{1, 2, 3}, p, utility.CRRA{}, nil), egm.ErrShapeMismatch)
}
