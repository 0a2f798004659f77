// SPDX-License-Identifier: MIT
// Package egm: sentinel error set.
// Every failure of the EGM step is one of three kinds. Call sites wrap the
// sentinel with an operation tag; callers match with errors.Is.

package egm

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dcegm/interp"
	"github.com/katalvlaran/dcegm/matrix"
)

var (
	// ErrConfiguration indicates a missing or invalid parameter or option.
	// It is fatal for the solve and never recovered internally.
	ErrConfiguration = errors.New("egm: invalid configuration")

	// ErrShapeMismatch indicates grids or arrays of inconsistent length passed
	// between components, or an out-of-range container index.
	ErrShapeMismatch = errors.New("egm: shape mismatch")

	// ErrNumericDomain indicates a value outside the domain of a numeric
	// callback, most notably a non-positive or NaN discounted marginal utility
	// handed to the inverse marginal utility.
	ErrNumericDomain = errors.New("egm: numeric domain error")
)

// egmErrorf wraps err with the operation tag.
func egmErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// shapeErrorf wraps a lower-level shape failure (matrix dimension errors,
// interpolation knot errors) so that it also matches ErrShapeMismatch.
// Errors that already carry an egm sentinel are only tagged.
func shapeErrorf(op string, err error) error {
	switch {
	case errors.Is(err, ErrShapeMismatch),
		errors.Is(err, ErrConfiguration),
		errors.Is(err, ErrNumericDomain):
		return egmErrorf(op, err)
	case errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrNilMatrix),
		errors.Is(err, matrix.ErrInvalidDimensions),
		errors.Is(err, interp.ErrTooFewPoints),
		errors.Is(err, interp.ErrLengthMismatch):
		return fmt.Errorf("%s: %w: %w", op, ErrShapeMismatch, err)
	default:
		return egmErrorf(op, err)
	}
}
