// SPDX-License-Identifier: MIT
// Package: egm
//
// Purpose:
//   - Invert the Euler equation u'(c) = β·E[u'(c')·∂M'/∂a] for current
//     consumption, one value per savings point.
//
// Order convention:
//   - nextMU is flat column-major over (nQuad, nGrid), as produced from the
//     rows of NextPeriodConsumption.

package egm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dcegm/matrix"
)

// EulerRHS returns the expected marginal value of one more unit of savings:
// nextMU reshaped to wealth's shape, multiplied element-wise by
// marginalWealth, and reduced over quadrature rows with weights.
//
// Errors: ErrShapeMismatch.
func EulerRHS(nextMU []float64, wealth, marginalWealth *mat.Dense, weights []float64) ([]float64, error) {
	const op = "EulerRHS"
	if err := matrix.ValidateNotNil(wealth); err != nil {
		return nil, shapeErrorf(op, err)
	}
	if err := matrix.ValidateSameShape(wealth, marginalWealth); err != nil {
		return nil, shapeErrorf(op, err)
	}
	r, c := wealth.Dims()
	if len(weights) != r {
		return nil, egmErrorf(op, fmt.Errorf("%w: %d weights for %d quadrature points", ErrShapeMismatch, len(weights), r))
	}
	mu, err := matrix.ReshapeColMajor(nextMU, r, c)
	if err != nil {
		return nil, shapeErrorf(op, err)
	}
	scaled, err := matrix.Hadamard(mu, marginalWealth)
	if err != nil {
		return nil, shapeErrorf(op, err)
	}
	rhs, err := matrix.WeightedColSums(scaled, weights)
	if err != nil {
		return nil, shapeErrorf(op, err)
	}

	return rhs, nil
}

// CurrentConsumption computes EulerRHS, discounts it by beta and passes each
// entry through inv.
//
// A non-positive or NaN discounted marginal utility is reported as
// ErrNumericDomain naming the savings index; it is never clamped.
//
// Errors: ErrShapeMismatch, ErrNumericDomain, ErrConfiguration (nil inv).
func CurrentConsumption(nextMU []float64, wealth, marginalWealth *mat.Dense, weights []float64,
	p *Params, inv InverseMarginalUtilityFunc) ([]float64, error) {
	const op = "CurrentConsumption"
	if inv == nil || p == nil {
		return nil, egmErrorf(op, fmt.Errorf("%w: nil params or inverse marginal utility", ErrConfiguration))
	}
	rhs, err := EulerRHS(nextMU, wealth, marginalWealth, weights)
	if err != nil {
		return nil, egmErrorf(op, err)
	}

	out := make([]float64, len(rhs))
	for s, v := range rhs {
		mu := p.Beta * v
		if !(mu > 0) {
			return nil, egmErrorf(op, fmt.Errorf("%w: discounted marginal utility %g at savings index %d",
				ErrNumericDomain, mu, s))
		}
		c, err := inv(mu, p)
		if err != nil {
			if !errors.Is(err, ErrNumericDomain) {
				err = fmt.Errorf("%w: %w", ErrNumericDomain, err)
			}
			return nil, egmErrorf(op, fmt.Errorf("savings index %d: %w", s, err))
		}
		if math.IsNaN(c) {
			return nil, egmErrorf(op, fmt.Errorf("%w: inverse marginal utility of %g is NaN", ErrNumericDomain, mu))
		}
		out[s] = c
	}

	return out, nil
}
