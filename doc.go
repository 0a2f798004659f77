// Package dcegm solves discrete-continuous life-cycle models with the
// Endogenous Grid Method: each period an agent picks consumption (continuous)
// and whether to keep working (discrete), and the model is solved backward
// from the last period.
//
// What is in the box?
//
//	egm/          the single-period step: wealth transition, income model,
//	              next-period interpolation, expectation, Euler inversion,
//	              endogenous grid, and the Step orchestrator
//	matrix/       flatten/reshape order contract and quadrature reductions
//	interp/       piecewise-linear interpolation with linear extrapolation
//	utility/      CRRA utility, marginal utility and its inverse
//	quadrature/   Gauss-Hermite and Monte Carlo schemes for a N(0,1) shock
//	statespace/   (period, lagged choice, exogenous process) enumeration
//	final/        closed-form terminal period
//	retirement/   the consumption-retirement model's step callbacks
//	solve/        backward induction over the whole horizon
//	config/       YAML parameter and option tables
//	report/       CSV export and PNG plots
//	server/       HTTP JSON API
//	cmd/dcegm/    command-line front end
//
// One step, in short:
//
//	M'[q,s]  = y(t+1, z_q)·state + a_s·(1+r)        wealth on (shock, savings)
//	c'       = interpolate c_{t+1} at M'            per next-period choice
//	c_t[s]   = (u')⁻¹(β·Σ_q w_q·u'(c')·(1+r))       Euler inversion
//	M_t[s]   = a_s + c_t[s]                          endogenous grid
//	v_t[s]   = u(c_t[s]) + β·EV[s]
//
// Quick start:
//
//	go run ./cmd/dcegm solve --config examples/retirement.yaml --period 0
//
//	go get github.com/katalvlaran/dcegm
package dcegm
