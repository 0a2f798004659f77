// SPDX-License-Identifier: MIT

package egm_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dcegm/egm"
	"github.com/katalvlaran/dcegm/quadrature"
	"github.com/katalvlaran/dcegm/utility"
)

// fixture is a small, fully seeded problem: the last period of every slot
// holds c(M) = M and v(M) = M on [0, 2·maxWealth].
type fixture struct {
	p       *egm.Params
	o       egm.Options
	savings []float64
	scheme  quadrature.Scheme
	policy  *egm.Container
	value   *egm.Container
	model   egm.Model
}

func newFixture(t testing.TB, nChoices int) *fixture {
	t.Helper()

	p := &egm.Params{
		Assets:  egm.Assets{InterestRate: 0.05, ConsumptionFloor: 0.001, MaxWealth: 10},
		Shocks:  egm.Shocks{Sigma: 0.2, Lambda: 1},
		Beta:    0.95,
		Utility: egm.UtilityParams{Theta: 2, Delta: 0.35},
		Wage:    []float64{0.5},
	}
	o := egm.Options{
		GridPointsWealth:           5,
		QuadraturePointsStochastic: 3,
		NDiscreteChoices:           nChoices,
		MinAge:                     20,
		NPeriods:                   3,
	}
	return seed(t, p, o)
}

func seed(t testing.TB, p *egm.Params, o egm.Options) *fixture {
	t.Helper()

	savings := make([]float64, o.GridPointsWealth)
	floats.Span(savings, 0, p.Assets.MaxWealth)

	scheme, err := quadrature.GaussHermite(o.QuadraturePointsStochastic)
	require.NoError(t, err)

	policy, err := egm.NewContainer(o.NPeriods, o.ChoiceSlots(), o.GridPointsWealth)
	require.NoError(t, err)
	value, err := egm.NewContainer(o.NPeriods, o.ChoiceSlots(), o.GridPointsWealth)
	require.NoError(t, err)

	grid := make([]float64, 1+o.GridPointsWealth)
	floats.Span(grid, 0, 2*p.Assets.MaxWealth)
	for ch := 0; ch < o.ChoiceSlots(); ch++ {
		f, err := policy.At(o.NPeriods-1, ch)
		require.NoError(t, err)
		require.NoError(t, f.Set(grid, grid))
		f, err = value.At(o.NPeriods-1, ch)
		require.NoError(t, err)
		require.NoError(t, f.Set(grid, grid))
	}

	return &fixture{
		p: p, o: o, savings: savings, scheme: scheme,
		policy: policy, value: value,
		model: plainModel(),
	}
}

// plainModel is a one-choice consumption-savings model: marginal utility of
// the state's own slot, interpolated next-period values, u(c) + β·EV.
func plainModel() egm.Model {
	u := utility.CRRA{}
	return egm.Model{
		Utility: u,
		NextPeriodMarginalUtility: func(state int, nextC, _ *mat.Dense, p *egm.Params, o egm.Options) ([]float64, error) {
			row := nextC.RawRowView(o.StateIndex(state))
			out := make([]float64, len(row))
			utility.ApplyMarginal(u, out, row, p)
			return out, nil
		},
		NextPeriodValue: func(period int, value *egm.Container, wealth *mat.Dense, _ *egm.Params, o egm.Options, _ egm.Utility) (*mat.Dense, error) {
			return egm.Interpolate(value, period+1, wealth, o)
		},
		CurrentPeriodValue: func(_ int, c, ev []float64, p *egm.Params, u egm.Utility) ([]float64, error) {
			out := make([]float64, len(c))
			for s := range c {
				out[s] = u.Utility(c[s], 1, p) + p.Beta*ev[s]
			}
			return out, nil
		},
	}
}

func (f *fixture) input(period, state int) egm.StepInput {
	return egm.StepInput{
		Period:  period,
		State:   state,
		Policy:  f.policy,
		Value:   f.value,
		Savings: f.savings,
		Scheme:  f.scheme,
		Params:  f.p,
		Options: f.o,
		Model:   f.model,
	}
}
