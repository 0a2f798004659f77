// SPDX-License-Identifier: MIT

package egm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dcegm/matrix"
)

// ExpectedValue integrates row 0 of nextValue over the income shock:
// the row is reshaped column-major to the (nQuad, nGrid) shape of wealth and
// reduced over quadrature rows with weights, giving one value per savings
// point.
//
// Errors: ErrShapeMismatch.
// Complexity: O(nQuad·nGrid).
func ExpectedValue(nextValue, wealth *mat.Dense, weights []float64) ([]float64, error) {
	const op = "ExpectedValue"
	if err := matrix.ValidateNotNil(nextValue); err != nil {
		return nil, shapeErrorf(op, err)
	}
	if err := matrix.ValidateNotNil(wealth); err != nil {
		return nil, shapeErrorf(op, err)
	}
	row, err := matrix.RowView(nextValue, 0)
	if err != nil {
		return nil, shapeErrorf(op, err)
	}

	return integrate(op, row, wealth, weights)
}

// integrate reshapes a column-major flat vector to wealth's shape and takes
// the weights-weighted sum over rows.
func integrate(op string, flat []float64, wealth *mat.Dense, weights []float64) ([]float64, error) {
	r, c := wealth.Dims()
	if len(weights) != r {
		return nil, egmErrorf(op, fmt.Errorf("%w: %d weights for %d quadrature points", ErrShapeMismatch, len(weights), r))
	}
	m, err := matrix.ReshapeColMajor(flat, r, c)
	if err != nil {
		return nil, shapeErrorf(op, err)
	}
	out, err := matrix.WeightedColSums(m, weights)
	if err != nil {
		return nil, shapeErrorf(op, err)
	}

	return out, nil
}
