// SPDX-License-Identifier: MIT
// Package: egm
//
// Purpose:
//   - Next-period wealth realizations and their derivative w.r.t. savings.
//
// Shape:
//   - Both matrices are (nQuad, nGrid): rows are quadrature points, columns
//     savings grid points.

package egm

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dcegm/matrix"
)

// NextPeriodWealth returns the matrix of next-period wealth
//
//	wealth[q, s] = income[q]·state + savings[s]·(1+r),
//
// where income is StochasticIncome(period+1, quadPoints·sigma). state gates
// income: 0 for no labor income, 1 for full. When the consumption floor is
// positive, entries below it are raised to it and all others are untouched.
//
// Errors: ErrConfiguration (nil params, no wage coefficients),
// ErrShapeMismatch (savings or quadPoints of the wrong length).
// Complexity: O(nQuad·nGrid).
func NextPeriodWealth(period, state int, savings, quadPoints []float64, p *Params, o Options) (*mat.Dense, error) {
	const op = "NextPeriodWealth"
	if p == nil {
		return nil, egmErrorf(op, fmt.Errorf("%w: nil params", ErrConfiguration))
	}
	if len(p.Wage) == 0 {
		return nil, egmErrorf(op, fmt.Errorf("%w: wage.value has no coefficients", ErrConfiguration))
	}
	nQuad, nGrid := o.QuadraturePointsStochastic, o.GridPointsWealth
	if nQuad < 1 || nGrid < 1 {
		return nil, egmErrorf(op, fmt.Errorf("%w: options give a %dx%d wealth matrix", ErrConfiguration, nQuad, nGrid))
	}
	if len(savings) != nGrid {
		return nil, egmErrorf(op, fmt.Errorf("%w: %d savings points, want %d", ErrShapeMismatch, len(savings), nGrid))
	}
	if len(quadPoints) != nQuad {
		return nil, egmErrorf(op, fmt.Errorf("%w: %d quadrature points, want %d", ErrShapeMismatch, len(quadPoints), nQuad))
	}

	shocks := make([]float64, nQuad)
	copy(shocks, quadPoints)
	floats.Scale(p.Shocks.Sigma, shocks)
	income := StochasticIncome(period+1, shocks, p, o)

	gate := float64(state)
	growth := 1 + p.Assets.InterestRate
	data := make([]float64, nQuad*nGrid)
	for q := 0; q < nQuad; q++ {
		base := q * nGrid
		labor := income[q] * gate
		for s, a := range savings {
			data[base+s] = labor + a*growth
		}
	}
	wealth := mat.NewDense(nQuad, nGrid, data)

	if floor := p.Assets.ConsumptionFloor; floor > 0 {
		if _, err := matrix.ClampBelow(wealth, floor); err != nil {
			return nil, shapeErrorf(op, err)
		}
	}

	return wealth, nil
}

// MarginalWealth returns the (nQuad, nGrid) matrix filled with 1+r, the
// derivative of NextPeriodWealth with respect to savings. It panics, like
// mat.NewDense, on a non-positive dimension or a non-finite rate; Step
// validates params and options before calling it.
func MarginalWealth(p *Params, o Options) *mat.Dense {
	m, err := matrix.Filled(o.QuadraturePointsStochastic, o.GridPointsWealth, 1+p.Assets.InterestRate)
	if err != nil {
		panic(fmt.Sprintf("egm: MarginalWealth: %v", err))
	}

	return m
}
