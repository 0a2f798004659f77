// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Small element-wise and reduction kernels needed by the EGM step:
//     constant fill, floor clamping, Hadamard product, weighted column sums.
//
// Determinism & Performance:
//   - Fixed loop orders; reductions delegate to gonum's MulVec on the
//     transposed view, so no intermediate transpose is materialized.

package matrix

import "gonum.org/v1/gonum/mat"

// Filled returns a rows×cols matrix with every entry equal to v.
//
// Errors: ErrInvalidDimensions, ErrNaNInf (v must be finite).
// Complexity: O(r*c).
func Filled(rows, cols int, v float64) (*mat.Dense, error) {
	if err := ValidateDims(rows, cols); err != nil {
		return nil, matrixErrorf("Filled", err)
	}
	if isNonFinite(v) {
		return nil, matrixErrorf("Filled", ErrNaNInf)
	}
	data := make([]float64, rows*cols)
	for k := range data {
		data[k] = v
	}

	return mat.NewDense(rows, cols, data), nil
}

// ClampBelow raises, in place, every entry of m strictly below floor to floor
// and returns how many entries were raised. Entries at or above the floor are
// left untouched bit-for-bit.
//
// Errors: ErrNilMatrix, ErrNaNInf (floor must be finite).
// Complexity: O(r*c), no allocations.
func ClampBelow(m *mat.Dense, floor float64) (int, error) {
	if m == nil {
		return 0, matrixErrorf("ClampBelow", ErrNilMatrix)
	}
	if isNonFinite(floor) {
		return 0, matrixErrorf("ClampBelow", ErrNaNInf)
	}

	raised := 0
	raw := m.RawMatrix()
	var i, j int
	for i = 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j = range row {
			if row[j] < floor {
				row[j] = floor
				raised++
			}
		}
	}

	return raised, nil
}

// Hadamard returns the element-wise product a ⊙ b as a new matrix.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Hadamard(a, b mat.Matrix) (*mat.Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf("Hadamard", err)
	}
	var out mat.Dense
	out.MulElem(a, b)

	return &out, nil
}

// WeightedColSums returns out[j] = Σ_i w[i]·m[i,j], i.e. wᵀ·m. With
// quadrature weights on the rows this integrates the shock out of every
// grid column.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(w) != rows).
// Complexity: O(r*c).
func WeightedColSums(m mat.Matrix, w []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("WeightedColSums", err)
	}
	r, c := m.Dims()
	if err := ValidateVecLen(w, r); err != nil {
		return nil, matrixErrorf("WeightedColSums", err)
	}

	out := make([]float64, c)
	dst := mat.NewVecDense(c, out)            // writes land in out
	dst.MulVec(m.T(), mat.NewVecDense(r, w)) // (c×r)·(r) = c

	return out, nil
}

// RowView returns row i of a dense matrix as a slice aliasing its storage.
// Mutations through the slice are visible in m.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (i out of range).
// Complexity: O(1).
func RowView(m *mat.Dense, i int) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf("RowView", ErrNilMatrix)
	}
	raw := m.RawMatrix()
	if i < 0 || i >= raw.Rows {
		return nil, matrixErrorf("RowView", ErrDimensionMismatch)
	}

	return raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols], nil
}
