// SPDX-License-Identifier: MIT
// Package: egm
//
// Purpose:
//   - One EGM step for a (period, state): derive current consumption from the
//     Euler equation, then the current value, and store both on the
//     endogenous grid.
//
// Contract:
//   - Two transitions, always in this order: consumption, then value.
//   - Only the [period][StateIndex(state)] slots of Policy and Value are
//     written. period+1 slots are read-only inputs and must be complete.
//   - Deterministic; no goroutines, no I/O.

package egm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dcegm/quadrature"
)

// StepInput bundles everything one step reads.
type StepInput struct {
	Period int
	// State gates income in the wealth transition and selects the slot to
	// write (see Options.StateIndex).
	State int

	Policy *Container
	Value  *Container

	// Savings is the exogenous savings grid, length Options.GridPointsWealth.
	Savings []float64
	// Scheme holds standard-normal quadrature points and weights, length
	// Options.QuadraturePointsStochastic.
	Scheme quadrature.Scheme

	Params  *Params
	Options Options
	Model   Model
}

// StepResult reports what a step computed and where it was stored.
type StepResult struct {
	// StateIndex is the container slot that was written.
	StateIndex int

	EndogenousGrid []float64
	Consumption    []float64
	Value          []float64

	// Expected is the expected next-period value per savings point;
	// Expected[0] is also the value function's boundary entry.
	Expected []float64
}

// Step runs one EGM step and writes its results into the policy and value
// containers.
//
// Errors: ErrConfiguration, ErrShapeMismatch, ErrNumericDomain, or any error
// returned by a Model callback, wrapped with the (period, state) context.
func Step(in StepInput) (StepResult, error) {
	op := fmt.Sprintf("Step(period=%d, state=%d)", in.Period, in.State)

	policySlot, valueSlot, err := in.validate()
	if err != nil {
		return StepResult{}, egmErrorf(op, err)
	}
	p, o, m := in.Params, in.Options, in.Model
	weights := in.Scheme.Weights

	// Transition 1: current consumption.
	wealth, err := NextPeriodWealth(in.Period, in.State, in.Savings, in.Scheme.Points, p, o)
	if err != nil {
		return StepResult{}, egmErrorf(op, err)
	}
	marginalWealth := MarginalWealth(p, o)

	nextConsumption, err := NextPeriodConsumption(in.Period, in.Policy, wealth, o)
	if err != nil {
		return StepResult{}, egmErrorf(op, err)
	}
	nextValue, err := m.NextPeriodValue(in.Period, in.Value, wealth, p, o, m.Utility)
	if err != nil {
		return StepResult{}, egmErrorf(op, fmt.Errorf("next-period value: %w", err))
	}
	if err = checkNextValue(nextValue, o); err != nil {
		return StepResult{}, egmErrorf(op, err)
	}
	nextMU, err := m.NextPeriodMarginalUtility(in.State, nextConsumption, nextValue, p, o)
	if err != nil {
		return StepResult{}, egmErrorf(op, fmt.Errorf("next-period marginal utility: %w", err))
	}
	consumption, err := CurrentConsumption(nextMU, wealth, marginalWealth, weights, p, m.Utility.InverseMarginalUtility)
	if err != nil {
		return StepResult{}, egmErrorf(op, err)
	}

	// Transition 2: current value.
	expected, err := m.expectedValue()(in.State, nextValue, wealth, weights, p, o)
	if err != nil {
		return StepResult{}, egmErrorf(op, fmt.Errorf("expected value: %w", err))
	}
	if len(expected) != o.GridPointsWealth {
		return StepResult{}, egmErrorf(op, fmt.Errorf("%w: expected value has %d entries, want %d",
			ErrShapeMismatch, len(expected), o.GridPointsWealth))
	}
	current, err := m.CurrentPeriodValue(in.State, consumption, expected, p, m.Utility)
	if err != nil {
		return StepResult{}, egmErrorf(op, fmt.Errorf("current-period value: %w", err))
	}

	endog, err := EndogenousGrid(in.Savings, consumption)
	if err != nil {
		return StepResult{}, egmErrorf(op, err)
	}
	if err = WriteStep(policySlot, valueSlot, endog, consumption, current, expected); err != nil {
		return StepResult{}, egmErrorf(op, err)
	}

	return StepResult{
		StateIndex:     o.StateIndex(in.State),
		EndogenousGrid: endog,
		Consumption:    consumption,
		Value:          current,
		Expected:       expected,
	}, nil
}

// validate checks the input once and resolves the slots to write.
func (in StepInput) validate() (*Function, *Function, error) {
	if err := in.Params.Validate(); err != nil {
		return nil, nil, err
	}
	if err := in.Options.Validate(); err != nil {
		return nil, nil, err
	}
	if err := in.Model.Validate(); err != nil {
		return nil, nil, err
	}
	if err := in.Scheme.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	o := in.Options
	for _, c := range []*Container{in.Policy, in.Value} {
		if c == nil {
			return nil, nil, fmt.Errorf("%w: nil container", ErrShapeMismatch)
		}
		if c.GridPoints() != o.GridPointsWealth || c.Choices() != o.ChoiceSlots() {
			return nil, nil, fmt.Errorf("%w: container is %d slots x %d points, options want %d x %d",
				ErrShapeMismatch, c.Choices(), c.GridPoints(), o.ChoiceSlots(), o.GridPointsWealth)
		}
		if in.Period+1 >= c.Periods() {
			return nil, nil, fmt.Errorf("%w: period %d has no successor in a %d-period container",
				ErrShapeMismatch, in.Period, c.Periods())
		}
	}

	idx := o.StateIndex(in.State)
	policySlot, err := in.Policy.At(in.Period, idx)
	if err != nil {
		return nil, nil, err
	}
	valueSlot, err := in.Value.At(in.Period, idx)
	if err != nil {
		return nil, nil, err
	}

	return policySlot, valueSlot, nil
}

// checkNextValue verifies the shape a NextPeriodValue callback returned.
func checkNextValue(v *mat.Dense, o Options) error {
	if v == nil {
		return fmt.Errorf("%w: next-period value callback returned nil", ErrShapeMismatch)
	}
	r, c := v.Dims()
	if r != o.ChoiceSlots() || c != o.QuadraturePointsStochastic*o.GridPointsWealth {
		return fmt.Errorf("%w: next-period value is %dx%d, want %dx%d", ErrShapeMismatch,
			r, c, o.ChoiceSlots(), o.QuadraturePointsStochastic*o.GridPointsWealth)
	}

	return nil
}
