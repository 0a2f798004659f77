// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions in this package return these sentinels (wrapped with a call-site
// tag) and tests match them via errors.Is. Nothing here panics on user input.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping across logs.
// Wrap with fmt.Errorf("ctx: %w", ErrX) when context is needed; callers keep
// using errors.Is.

var (
	// ErrNilMatrix indicates that a nil matrix argument was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. a flat vector whose length is not rows*cols, or a weight vector
	// whose length differs from the row count.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrNaNInf signals a NaN or ±Inf where a finite value is required
	// (e.g. a clamp floor).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)

// matrixErrorf wraps err with the call-site tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
