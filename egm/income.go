// SPDX-License-Identifier: MIT

package egm

import "math"

// DeterministicLogIncome evaluates the wage equation Σ_k coeffs[k]·age^k
// (constant first) by Horner's rule. An empty coefficient list yields 0.
func DeterministicLogIncome(age float64, coeffs []float64) float64 {
	var acc float64
	for k := len(coeffs) - 1; k >= 0; k-- {
		acc = acc*age + coeffs[k]
	}

	return acc
}

// StochasticIncome returns exp(log income + shock) for every shock, with age
// = period + MinAge. Income is paid at the end of the period, so callers pass
// period+1 when building next-period wealth.
func StochasticIncome(period int, shocks []float64, p *Params, o Options) []float64 {
	age := float64(period + o.MinAge)
	base := DeterministicLogIncome(age, p.Wage)

	out := make([]float64, len(shocks))
	for i, z := range shocks {
		out[i] = math.Exp(base + z)
	}

	return out
}
