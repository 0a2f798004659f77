// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for shape/nil/length checks used by the EGM core.
//  - Validators return tagged sentinels so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are O(1) and allocate nothing.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return matrixErrorf(tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil, including a typed
// nil *mat.Dense hidden behind the mat.Matrix interface.
// Complexity: O(1).
func ValidateNotNil(m mat.Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*mat.Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateShape ensures m is non-nil and exactly rows×cols.
// Complexity: O(1).
func ValidateShape(m mat.Matrix, rows, cols int) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateShape", err)
	}
	r, c := m.Dims()
	if r != rows {
		return validatorErrorf("ValidateShape: Rows", ErrDimensionMismatch)
	}
	if c != cols {
		return validatorErrorf("ValidateShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil with equal dimensions.
// Complexity: O(1).
func ValidateSameShape(a, b mat.Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}
	r, c := a.Dims()
	if err := ValidateShape(b, r, c); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}

	return nil
}

// ValidateVecLen ensures the vector is non-nil and has length n.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	// Disallow nil vectors; an empty grid is never a legal operand.
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateDims ensures rows and cols are strictly positive. gonum panics on
// zero-sized dense matrices, so every constructor in this package checks first.
// Complexity: O(1).
func ValidateDims(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return validatorErrorf("ValidateDims", ErrInvalidDimensions)
	}

	return nil
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
