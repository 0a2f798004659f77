// SPDX-License-Identifier: MIT

// Package utility provides utility families for the EGM step.
//
// CRRA reads Params.Utility:
//
//	u(c, d)    = ln c - (1-d)·δ                      θ == 1
//	u(c, d)    = (c^(1-θ) - 1)/(1-θ) - (1-d)·δ      otherwise
//	u'(c)      = c^(-θ)
//	(u')⁻¹(m)  = m^(-1/θ)
//
// The choice argument d is the retirement indicator: d = 1 carries no work
// disutility.
package utility

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dcegm/egm"
)

// CRRA is the constant-relative-risk-aversion family with a work
// disutility shift.
type CRRA struct{}

var _ egm.Utility = CRRA{}

// Utility returns u(c, choice).
func (CRRA) Utility(c float64, choice int, p *egm.Params) float64 {
	theta := p.Utility.Theta
	var u float64
	if theta == 1 {
		u = math.Log(c)
	} else {
		u = (math.Pow(c, 1-theta) - 1) / (1 - theta)
	}

	return u - float64(1-choice)*p.Utility.Delta
}

// MarginalUtility returns c^(-θ).
func (CRRA) MarginalUtility(c float64, p *egm.Params) float64 {
	return math.Pow(c, -p.Utility.Theta)
}

// InverseMarginalUtility returns mu^(-1/θ).
//
// Errors: egm.ErrNumericDomain for mu <= 0, NaN mu, or θ <= 0.
func (CRRA) InverseMarginalUtility(mu float64, p *egm.Params) (float64, error) {
	if !(mu > 0) {
		return 0, fmt.Errorf("utility: inverse marginal utility of %g: %w", mu, egm.ErrNumericDomain)
	}
	if !(p.Utility.Theta > 0) {
		return 0, fmt.Errorf("utility: theta %g: %w", p.Utility.Theta, egm.ErrNumericDomain)
	}

	return math.Pow(mu, -1/p.Utility.Theta), nil
}

// Apply writes u(c[i], choice) into dst[i]. dst and c must have equal length.
func Apply(u egm.Utility, dst, c []float64, choice int, p *egm.Params) {
	for i, v := range c {
		dst[i] = u.Utility(v, choice, p)
	}
}

// ApplyMarginal writes u'(c[i]) into dst[i].
func ApplyMarginal(u egm.Utility, dst, c []float64, p *egm.Params) {
	for i, v := range c {
		dst[i] = u.MarginalUtility(v, p)
	}
}

// ApplyInverse writes (u')⁻¹(mu[i]) into dst[i], stopping at the first
// error.
func ApplyInverse(u egm.Utility, dst, mu []float64, p *egm.Params) error {
	for i, v := range mu {
		c, err := u.InverseMarginalUtility(v, p)
		if err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
		dst[i] = c
	}

	return nil
}
