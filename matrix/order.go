// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Own the order convention between (nQuad, nGrid) matrices and their flat
//     column-major vectors: flat[j*rows + i] == M[i, j].
//
// Determinism & Performance:
//   - Fixed j→i loops (column outer, row inner) so writes to the flat buffer
//     are sequential.
//   - *mat.Dense fast-path reads the raw row-major buffer with its stride.

package matrix

import "gonum.org/v1/gonum/mat"

// ColMajorIndex returns the flat offset of (i, j) in a column-major vector of
// a matrix with the given row count.
// Complexity: O(1).
func ColMajorIndex(i, j, rows int) int { return j*rows + i }

// FlattenColMajor returns a new vector holding m in column-major order
// (row index fastest).
//
// Errors: ErrNilMatrix.
// Complexity: O(r*c) time and space.
func FlattenColMajor(m mat.Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("FlattenColMajor", err)
	}
	r, c := m.Dims()
	dst := make([]float64, r*c)
	if err := FlattenColMajorTo(dst, m); err != nil {
		return nil, matrixErrorf("FlattenColMajor", err)
	}

	return dst, nil
}

// FlattenColMajorTo writes m into dst in column-major order. dst must have
// length rows*cols; it is typically a row of a preallocated (nChoices, r*c)
// buffer.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c), no allocations.
func FlattenColMajorTo(dst []float64, m mat.Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf("FlattenColMajorTo", err)
	}
	r, c := m.Dims()
	if err := ValidateVecLen(dst, r*c); err != nil {
		return matrixErrorf("FlattenColMajorTo", err)
	}

	var i, j int
	// Dense fast-path: index the raw row-major buffer directly.
	if d, ok := m.(*mat.Dense); ok {
		raw := d.RawMatrix()
		for j = 0; j < c; j++ {
			base := j * r // start of column j in the flat vector
			for i = 0; i < r; i++ {
				dst[base+i] = raw.Data[i*raw.Stride+j]
			}
		}
		return nil
	}

	// Generic fallback via At (still deterministic).
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			dst[j*r+i] = m.At(i, j)
		}
	}

	return nil
}

// ReshapeColMajor is the inverse of FlattenColMajor: it builds a rows×cols
// matrix from a column-major vector. The input slice is not retained.
//
// Errors: ErrInvalidDimensions, ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c) time and space.
func ReshapeColMajor(flat []float64, rows, cols int) (*mat.Dense, error) {
	if err := ValidateDims(rows, cols); err != nil {
		return nil, matrixErrorf("ReshapeColMajor", err)
	}
	if err := ValidateVecLen(flat, rows*cols); err != nil {
		return nil, matrixErrorf("ReshapeColMajor", err)
	}

	data := make([]float64, rows*cols) // row-major backing store for gonum
	var i, j int
	for i = 0; i < rows; i++ {
		base := i * cols
		for j = 0; j < cols; j++ {
			data[base+j] = flat[j*rows+i]
		}
	}

	return mat.NewDense(rows, cols, data), nil
}
