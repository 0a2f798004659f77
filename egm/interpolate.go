// SPDX-License-Identifier: MIT
// Package: egm
//
// Purpose:
//   - Evaluate stored choice-specific functions off-grid at every next-period
//     wealth realization.
//
// Order convention:
//   - The (nQuad, nGrid) wealth matrix is flattened column-major: the
//     quadrature index varies fastest. Every row of the returned
//     (choice slots, nQuad·nGrid) matrix follows the same order, and every
//     consumer reshapes it back with matrix.ReshapeColMajor.

package egm

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dcegm/interp"
	"github.com/katalvlaran/dcegm/matrix"
)

// NextPeriodConsumption evaluates the period+1 consumption policies at every
// entry of wealth. Outside a policy's grid the boundary segment is extended
// linearly; out-of-range wealth is never an error.
//
// Output shape: (Options.ChoiceSlots(), nQuad·nGrid), rows flattened
// column-major.
//
// Errors: ErrShapeMismatch (missing slot, degenerate policy grid).
func NextPeriodConsumption(period int, policy *Container, wealth *mat.Dense, o Options) (*mat.Dense, error) {
	out, err := Interpolate(policy, period+1, wealth, o)
	if err != nil {
		return nil, egmErrorf("NextPeriodConsumption", err)
	}

	return out, nil
}

// Interpolate evaluates the functions of every choice slot of period at the
// column-major flattening of wealth.
//
// Errors: ErrShapeMismatch.
// Complexity: O(slots · nQuad·nGrid · log n) with n the function length.
func Interpolate(c *Container, period int, wealth *mat.Dense, o Options) (*mat.Dense, error) {
	const op = "Interpolate"
	flat, err := matrix.FlattenColMajor(wealth)
	if err != nil {
		return nil, shapeErrorf(op, err)
	}

	slots := o.ChoiceSlots()
	out := mat.NewDense(slots, len(flat), nil)
	for ch := 0; ch < slots; ch++ {
		f, err := c.At(period, ch)
		if err != nil {
			return nil, egmErrorf(op, err)
		}
		row, err := matrix.RowView(out, ch)
		if err != nil {
			return nil, shapeErrorf(op, err)
		}
		if err = f.EvaluateTo(row, flat); err != nil {
			return nil, shapeErrorf(op, err)
		}
	}

	return out, nil
}

// EvaluateTo writes the piecewise-linear interpolant of f at every xs into
// dst, extrapolating linearly outside the grid. dst must have len(xs).
//
// Errors: interp.ErrTooFewPoints (fewer than two distinct grid points),
// interp.ErrLengthMismatch.
func (f *Function) EvaluateTo(dst, xs []float64) error {
	grid, values := f.Grid(), f.Values()
	if sort.Float64sAreSorted(grid) {
		return interp.LinearTo(dst, grid, values, xs)
	}
	if len(dst) != len(xs) {
		return interp.ErrLengthMismatch
	}
	y, err := interp.Linear(grid, values, xs)
	if err != nil {
		return err
	}
	copy(dst, y)

	return nil
}
