// SPDX-License-Identifier: MIT

package egm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Utility is the numeric-function contract of a utility family. The core
// depends only on this interface.
type Utility interface {
	// Utility returns u(c, choice).
	Utility(c float64, choice int, p *Params) float64

	// MarginalUtility returns u'(c).
	MarginalUtility(c float64, p *Params) float64

	// InverseMarginalUtility returns (u')⁻¹(mu). A non-positive or NaN mu
	// must fail with ErrNumericDomain.
	InverseMarginalUtility(mu float64, p *Params) (float64, error)
}

// InverseMarginalUtilityFunc is the signature of Utility.InverseMarginalUtility.
type InverseMarginalUtilityFunc func(mu float64, p *Params) (float64, error)

// NextPeriodMarginalUtilityFunc returns the next-period marginal utility for
// a state, flattened column-major like nextConsumption's rows.
// nextConsumption and nextValue have shape (choice slots, nQuad·nGrid).
type NextPeriodMarginalUtilityFunc func(state int, nextConsumption, nextValue *mat.Dense, p *Params, o Options) ([]float64, error)

// NextPeriodValueFunc evaluates the next-period choice-specific value
// functions at every entry of wealth. The result has shape
// (choice slots, nQuad·nGrid), each row flattened column-major.
type NextPeriodValueFunc func(period int, value *Container, wealth *mat.Dense, p *Params, o Options, u Utility) (*mat.Dense, error)

// CurrentPeriodValueFunc returns the current-period value per savings point.
type CurrentPeriodValueFunc func(state int, consumption, expected []float64, p *Params, u Utility) ([]float64, error)

// ExpectedValueFunc integrates the next-period value over the income shock,
// one entry per savings point.
type ExpectedValueFunc func(state int, nextValue, wealth *mat.Dense, weights []float64, p *Params, o Options) ([]float64, error)

// Model bundles the callbacks the step consumes opaquely.
type Model struct {
	Utility                   Utility
	NextPeriodMarginalUtility NextPeriodMarginalUtilityFunc
	NextPeriodValue           NextPeriodValueFunc
	CurrentPeriodValue        CurrentPeriodValueFunc

	// ExpectedValue may be nil; the step then uses ExpectedValue (row 0 of
	// the next-period value).
	ExpectedValue ExpectedValueFunc
}

// Validate reports a missing required callback.
//
// Errors: ErrConfiguration.
func (m Model) Validate() error {
	switch {
	case m.Utility == nil:
		return egmErrorf("Model.Validate", fmt.Errorf("%w: nil utility", ErrConfiguration))
	case m.NextPeriodMarginalUtility == nil:
		return egmErrorf("Model.Validate", fmt.Errorf("%w: nil next-period marginal utility", ErrConfiguration))
	case m.NextPeriodValue == nil:
		return egmErrorf("Model.Validate", fmt.Errorf("%w: nil next-period value", ErrConfiguration))
	case m.CurrentPeriodValue == nil:
		return egmErrorf("Model.Validate", fmt.Errorf("%w: nil current-period value", ErrConfiguration))
	}

	return nil
}

// expectedValue returns the configured expectation callback or the default.
func (m Model) expectedValue() ExpectedValueFunc {
	if m.ExpectedValue != nil {
		return m.ExpectedValue
	}

	return func(_ int, nextValue, wealth *mat.Dense, weights []float64, _ *Params, _ Options) ([]float64, error) {
		return ExpectedValue(nextValue, wealth, weights)
	}
}
