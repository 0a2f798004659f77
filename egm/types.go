// SPDX-License-Identifier: MIT
// Package: egm
//
// Purpose:
//   - Typed, validated-once parameter and option sets consumed by the step.
//
// Notes:
//   - Params replaces a (category, name) keyed table. Presence of required
//     keys is checked by the loader (package config); Validate here checks
//     the values themselves.

package egm

import (
	"fmt"
	"math"
)

// Assets groups the asset-market parameters.
type Assets struct {
	// InterestRate is r in M' = income·state + (1+r)·savings.
	InterestRate float64 `json:"interest_rate" yaml:"interest_rate"`

	// ConsumptionFloor is the retirement safety net. Next-period wealth below
	// it is raised to it. Inactive when <= 0.
	ConsumptionFloor float64 `json:"consumption_floor" yaml:"consumption_floor"`

	// MaxWealth is the upper end of the exogenous savings grid.
	MaxWealth float64 `json:"max_wealth" yaml:"max_wealth"`
}

// Shocks groups the stochastic parameters.
type Shocks struct {
	// Sigma is the standard deviation of the log-income shock.
	Sigma float64 `json:"sigma" yaml:"sigma"`

	// Lambda is the scale of the extreme-value taste shocks on the discrete
	// choice.
	Lambda float64 `json:"lambda" yaml:"lambda"`
}

// UtilityParams groups the parameters of the CRRA utility family.
type UtilityParams struct {
	// Theta is the coefficient of relative risk aversion.
	Theta float64 `json:"theta" yaml:"theta"`

	// Delta is the disutility of work.
	Delta float64 `json:"delta" yaml:"delta"`
}

// Params is the immutable parameter set of one solve.
type Params struct {
	Assets  Assets        `json:"assets" yaml:"assets"`
	Shocks  Shocks        `json:"shocks" yaml:"shocks"`
	Beta    float64       `json:"beta" yaml:"beta"`
	Utility UtilityParams `json:"utility" yaml:"utility"`

	// Wage holds the wage-equation coefficients, constant first:
	// log income = Σ_k Wage[k]·age^k.
	Wage []float64 `json:"wage" yaml:"wage"`
}

// Validate checks the values the core relies on.
//
// Errors: ErrConfiguration.
func (p *Params) Validate() error {
	if p == nil {
		return egmErrorf("Params.Validate", fmt.Errorf("%w: nil params", ErrConfiguration))
	}
	checks := []struct {
		name string
		v    float64
	}{
		{"assets.interest_rate", p.Assets.InterestRate},
		{"assets.consumption_floor", p.Assets.ConsumptionFloor},
		{"assets.max_wealth", p.Assets.MaxWealth},
		{"shocks.sigma", p.Shocks.Sigma},
		{"shocks.lambda", p.Shocks.Lambda},
		{"beta.beta", p.Beta},
		{"utility.theta", p.Utility.Theta},
		{"delta.delta", p.Utility.Delta},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return egmErrorf("Params.Validate", fmt.Errorf("%w: %s is not finite", ErrConfiguration, c.name))
		}
	}
	if len(p.Wage) == 0 {
		return egmErrorf("Params.Validate", fmt.Errorf("%w: wage.value has no coefficients", ErrConfiguration))
	}
	for k, w := range p.Wage {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return egmErrorf("Params.Validate", fmt.Errorf("%w: wage.value[%d] is not finite", ErrConfiguration, k))
		}
	}
	if p.Assets.InterestRate <= -1 {
		return egmErrorf("Params.Validate", fmt.Errorf("%w: assets.interest_rate must be > -1", ErrConfiguration))
	}
	if p.Shocks.Sigma < 0 {
		return egmErrorf("Params.Validate", fmt.Errorf("%w: shocks.sigma must be >= 0", ErrConfiguration))
	}
	if p.Beta <= 0 {
		return egmErrorf("Params.Validate", fmt.Errorf("%w: beta.beta must be > 0", ErrConfiguration))
	}

	return nil
}

// Options is the immutable integer option set of one solve.
type Options struct {
	GridPointsWealth           int `json:"grid_points_wealth" yaml:"grid_points_wealth"`
	QuadraturePointsStochastic int `json:"quadrature_points_stochastic" yaml:"quadrature_points_stochastic"`
	NDiscreteChoices           int `json:"n_discrete_choices" yaml:"n_discrete_choices"`
	MinAge                     int `json:"min_age" yaml:"min_age"`

	// NPeriods and NExogProcesses are used by the backward-induction driver
	// and the state space, not by the step itself.
	NPeriods       int `json:"n_periods" yaml:"n_periods"`
	NExogProcesses int `json:"n_exog_processes" yaml:"n_exog_processes"`
}

// Validate checks the options the step relies on.
//
// Errors: ErrConfiguration.
func (o Options) Validate() error {
	switch {
	case o.GridPointsWealth < 1:
		return egmErrorf("Options.Validate", fmt.Errorf("%w: grid_points_wealth must be >= 1", ErrConfiguration))
	case o.QuadraturePointsStochastic < 1:
		return egmErrorf("Options.Validate", fmt.Errorf("%w: quadrature_points_stochastic must be >= 1", ErrConfiguration))
	case o.NDiscreteChoices < 1:
		return egmErrorf("Options.Validate", fmt.Errorf("%w: n_discrete_choices must be >= 1", ErrConfiguration))
	case o.MinAge < 0:
		return egmErrorf("Options.Validate", fmt.Errorf("%w: min_age must be >= 0", ErrConfiguration))
	case o.NExogProcesses < 0:
		return egmErrorf("Options.Validate", fmt.Errorf("%w: n_exog_processes must be >= 0", ErrConfiguration))
	}

	return nil
}

// ValidateHorizon additionally checks the options of a full backward
// induction.
//
// Errors: ErrConfiguration.
func (o Options) ValidateHorizon() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.NPeriods < 1 {
		return egmErrorf("Options.ValidateHorizon", fmt.Errorf("%w: n_periods must be >= 1", ErrConfiguration))
	}

	return nil
}

// ChoiceSlots is the number of (period, choice) slots per period: one when
// the model has fewer than two discrete choices.
func (o Options) ChoiceSlots() int {
	if o.NDiscreteChoices < 2 {
		return 1
	}

	return o.NDiscreteChoices
}

// StateIndex maps a state to the container slot it writes: always 0 when the
// model has fewer than two discrete choices, the state itself otherwise.
func (o Options) StateIndex(state int) int {
	if o.NDiscreteChoices < 2 {
		return 0
	}

	return state
}

// ExogProcesses returns NExogProcesses, defaulting to 1.
func (o Options) ExogProcesses() int {
	if o.NExogProcesses < 1 {
		return 1
	}

	return o.NExogProcesses
}
