// SPDX-License-Identifier: MIT

// Package matrix holds the dense-array plumbing shared by the EGM core.
//
// The EGM step moves data back and forth between two representations of the
// same quadrature×grid array:
//
//   - a 2-D *mat.Dense of shape (nQuad, nGrid), rows = quadrature points,
//     columns = savings grid points;
//   - a flat []float64 of length nQuad*nGrid in COLUMN-MAJOR order, i.e. the
//     quadrature index varies fastest: flat[s*nQuad + q] == M[q, s].
//
// The order convention is the contract. Every function that crosses between
// the two shapes lives here (FlattenColMajor, ReshapeColMajor) so callers never
// hand-roll index arithmetic. Mixing up row-major and column-major order does
// not crash; it silently permutes expectations across grid points.
//
// Besides the order contract the package provides:
//
//   - WeightedColSums: wᵀ·M, the quadrature reduction over the row axis;
//   - Filled, ClampBelow, Hadamard: the element-wise kernels the step needs;
//   - validators and sentinel errors used across the module.
//
// Storage is gonum's row-major *mat.Dense; this package never copies data it
// does not have to.
package matrix
