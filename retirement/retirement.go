// SPDX-License-Identifier: MIT
// Package retirement is the consumption-retirement model: an agent works or
// retires each period, retirement is absorbing, and the discrete choice is
// smoothed by extreme-value taste shocks of scale Params.Shocks.Lambda.
//
// Slot encoding follows package statespace: slot Retired (0) earns no labor
// income, slot Working (1) does. The CRRA utility's choice argument is the
// retirement indicator, so slot s is evaluated with 1-s and only work carries
// the disutility δ.

package retirement

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dcegm/egm"
	"github.com/katalvlaran/dcegm/matrix"
	"github.com/katalvlaran/dcegm/statespace"
	"github.com/katalvlaran/dcegm/utility"
)

// Model returns the retirement model's callbacks with CRRA utility.
func Model() egm.Model {
	return egm.Model{
		Utility:                   utility.CRRA{},
		NextPeriodMarginalUtility: NextPeriodMarginalUtility,
		NextPeriodValue:           NextPeriodValue,
		CurrentPeriodValue:        CurrentPeriodValue,
		ExpectedValue:             ExpectedValue,
	}
}

// UtilityChoice maps a slot to the utility's retirement indicator.
func UtilityChoice(slot int) int {
	if slot == statespace.Retired {
		return 1
	}

	return 0
}

// NextPeriodValue evaluates every slot's period+1 value function at the
// column-major flattening of wealth.
//
// In the last period the value is u(M', choice) directly. Before that, wealth
// below the first endogenous grid point is credit constrained: the agent
// consumes everything and the value is u(M', choice) + β·v[0], where v[0] is
// the stored expected value at zero savings. Elsewhere the stored function is
// interpolated.
//
// Errors: egm.ErrShapeMismatch.
func NextPeriodValue(period int, value *egm.Container, wealth *mat.Dense, p *egm.Params, o egm.Options, u egm.Utility) (*mat.Dense, error) {
	if value == nil {
		return nil, fmt.Errorf("retirement: NextPeriodValue: %w: nil value container", egm.ErrShapeMismatch)
	}
	flat, err := matrix.FlattenColMajor(wealth)
	if err != nil {
		return nil, fmt.Errorf("retirement: NextPeriodValue: %w: %w", egm.ErrShapeMismatch, err)
	}
	slots := o.ChoiceSlots()
	out := mat.NewDense(slots, len(flat), nil)
	last := period+1 == value.Periods()-1

	for slot := 0; slot < slots; slot++ {
		row := out.RawRowView(slot)
		d := UtilityChoice(slot)
		if last {
			for i, w := range flat {
				row[i] = u.Utility(w, d, p)
			}
			continue
		}

		f, err := value.At(period+1, slot)
		if err != nil {
			return nil, fmt.Errorf("retirement: NextPeriodValue: %w", err)
		}
		if err = f.EvaluateTo(row, flat); err != nil {
			return nil, fmt.Errorf("retirement: NextPeriodValue: slot %d: %w: %w", slot, egm.ErrShapeMismatch, err)
		}
		grid, vals := f.Grid(), f.Values()
		for i, w := range flat {
			if w < grid[1] {
				row[i] = u.Utility(w, d, p) + p.Beta*vals[0]
			}
		}
	}

	return out, nil
}

// NextPeriodMarginalUtility returns u'(c') for a retired agent, whose only
// next choice is retirement, and the choice-probability weighted
// Σ_d P(d)·u'(c'_d) for a worker. Marginal utility is CRRA, the family
// Model uses.
//
// Errors: egm.ErrConfiguration (non-positive lambda), egm.ErrShapeMismatch.
func NextPeriodMarginalUtility(state int, nextConsumption, nextValue *mat.Dense, p *egm.Params, o egm.Options) ([]float64, error) {
	u := utility.CRRA{}
	slots := o.ChoiceSlots()
	if r, _ := nextConsumption.Dims(); r != slots {
		return nil, fmt.Errorf("retirement: NextPeriodMarginalUtility: %w: %d consumption rows for %d slots",
			egm.ErrShapeMismatch, r, slots)
	}
	_, n := nextConsumption.Dims()
	out := make([]float64, n)

	if slots < 2 || state == statespace.Retired {
		utility.ApplyMarginal(u, out, nextConsumption.RawRowView(0), p)
		return out, nil
	}

	mu := make([]float64, n)
	for d := 0; d < slots; d++ {
		prob, err := ChoiceProbabilities(nextValue, d, p.Shocks.Lambda)
		if err != nil {
			return nil, fmt.Errorf("retirement: NextPeriodMarginalUtility: %w", err)
		}
		utility.ApplyMarginal(u, mu, nextConsumption.RawRowView(d), p)
		for i := range out {
			out[i] += prob[i] * mu[i]
		}
	}

	return out, nil
}

// ExpectedValue integrates the next-period value over the income shock. A
// retired agent's continuation is the Retired slot; a worker's is the logsum
// λ·log Σ_d exp(v_d/λ) over the open choices.
//
// Errors: egm.ErrConfiguration, egm.ErrShapeMismatch.
func ExpectedValue(state int, nextValue, wealth *mat.Dense, weights []float64, p *egm.Params, o egm.Options) ([]float64, error) {
	if o.ChoiceSlots() < 2 || state == statespace.Retired {
		return egm.ExpectedValue(nextValue, wealth, weights)
	}
	ls, err := LogSum(nextValue, p.Shocks.Lambda)
	if err != nil {
		return nil, fmt.Errorf("retirement: ExpectedValue: %w", err)
	}

	return egm.ExpectedValue(mat.NewDense(1, len(ls), ls), wealth, weights)
}

// CurrentPeriodValue returns u(c, choice) + β·EV per savings point.
//
// Errors: egm.ErrShapeMismatch.
func CurrentPeriodValue(state int, consumption, expected []float64, p *egm.Params, u egm.Utility) ([]float64, error) {
	if len(consumption) != len(expected) {
		return nil, fmt.Errorf("retirement: CurrentPeriodValue: %w: %d consumption values, %d expected values",
			egm.ErrShapeMismatch, len(consumption), len(expected))
	}
	out := make([]float64, len(consumption))
	utility.Apply(u, out, consumption, UtilityChoice(state), p)
	floats.AddScaled(out, p.Beta, expected)

	return out, nil
}

// LogSum returns, per column of nextValue, λ·log Σ_d exp(v[d]/λ): the
// expected maximum over choices under extreme-value taste shocks.
//
// Errors: egm.ErrConfiguration (lambda <= 0).
func LogSum(nextValue *mat.Dense, lambda float64) ([]float64, error) {
	if !(lambda > 0) {
		return nil, fmt.Errorf("retirement: LogSum: %w: lambda %g must be > 0", egm.ErrConfiguration, lambda)
	}
	r, c := nextValue.Dims()
	out := make([]float64, c)
	col := make([]float64, r)
	for i := 0; i < c; i++ {
		mat.Col(col, i, nextValue)
		floats.Scale(1/lambda, col)
		out[i] = lambda * floats.LogSumExp(col)
	}

	return out, nil
}

// ChoiceProbabilities returns, per column of nextValue, the logit probability
// exp((v[choice] - logsum)/λ) of choice. Columns where every choice is
// worth -Inf get uniform probabilities.
//
// Errors: egm.ErrConfiguration (lambda <= 0), egm.ErrShapeMismatch (choice
// out of range).
func ChoiceProbabilities(nextValue *mat.Dense, choice int, lambda float64) ([]float64, error) {
	r, _ := nextValue.Dims()
	if choice < 0 || choice >= r {
		return nil, fmt.Errorf("retirement: ChoiceProbabilities: %w: choice %d of %d",
			egm.ErrShapeMismatch, choice, r)
	}
	ls, err := LogSum(nextValue, lambda)
	if err != nil {
		return nil, err
	}
	v := nextValue.RawRowView(choice)
	out := make([]float64, len(ls))
	for i := range out {
		if math.IsInf(ls[i], -1) {
			out[i] = 1 / float64(r)
			continue
		}
		out[i] = math.Exp((v[i] - ls[i]) / lambda)
	}

	return out, nil
}
