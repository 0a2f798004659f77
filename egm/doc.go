// SPDX-License-Identifier: MIT

// Package egm implements the single-period step of the Endogenous Grid Method
// for a life-cycle consumption-savings model with a discrete choice.
//
// Given next period's choice-specific consumption and value functions, Step
// computes this period's consumption policy and value function for one
// (period, state) on a wealth grid derived from the exogenous savings grid:
//
//	M'[q, s]   = y(period+1, σ·z_q)·state + (1+r)·a_s        (NextPeriodWealth)
//	rhs[s]     = Σ_q w_q · u'(c'(M'[q, s])) · (1+r)          (EulerRHS)
//	c[s]       = (u')⁻¹(β · rhs[s])                           (CurrentConsumption)
//	M[s]       = a_s + c[s]                                   (EndogenousGrid)
//	EV[s]      = Σ_q w_q · v'(M'[q, s])                       (ExpectedValue)
//
// Order convention: whenever a (nQuad, nGrid) matrix crosses a boundary as a
// flat vector it is flattened column-major, quadrature index fastest
// (see package matrix). A row-major read of such a vector is a silent bug.
//
// Storage: policy and value functions live in a Container of fixed-capacity
// Functions, one per (period, choice slot). Position 0 of each grid is the
// wealth floor 0. The value function's entry 0 holds the expected value at
// zero savings, not a utility level.
//
// Errors: ErrConfiguration, ErrShapeMismatch and ErrNumericDomain, matched
// with errors.Is. Interpolation outside a grid extrapolates and never errors.
//
// The model-specific parts (utility family, marginal utility and value of the
// next period, expectation over discrete choices) are callbacks bundled in a
// Model; package retirement provides one.
package egm
