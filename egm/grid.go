// SPDX-License-Identifier: MIT

package egm

import "fmt"

// EndogenousGrid returns savings[s] + consumption[s]: the wealth at which
// consuming consumption[s] leaves savings[s].
//
// Errors: ErrShapeMismatch.
func EndogenousGrid(savings, consumption []float64) ([]float64, error) {
	if len(savings) != len(consumption) {
		return nil, egmErrorf("EndogenousGrid", fmt.Errorf("%w: %d savings points, %d consumption values",
			ErrShapeMismatch, len(savings), len(consumption)))
	}
	out := make([]float64, len(savings))
	for s := range savings {
		out[s] = savings[s] + consumption[s]
	}

	return out, nil
}

// WriteStep stores one step's results in the policy and value slots:
//
//	policy: grid[1:] = endog, values[1:] = consumption
//	value:  grid[1:] = endog, values[1:] = currentValue, values[0] = expected[0]
//
// grid[0] and the policy's values[0] are left as they are. The value
// function's boundary entry holds the expected value at zero savings, which
// credit-constrained evaluations in the previous period read back. Both slots
// end with valid length 1+len(endog).
//
// Errors: ErrShapeMismatch.
func WriteStep(policy, value *Function, endog, consumption, currentValue, expected []float64) error {
	const op = "WriteStep"
	if policy == nil || value == nil {
		return egmErrorf(op, fmt.Errorf("%w: nil slot", ErrShapeMismatch))
	}
	n := len(endog)
	if len(consumption) != n || len(currentValue) != n || len(expected) == 0 {
		return egmErrorf(op, fmt.Errorf("%w: endog %d, consumption %d, value %d, expected %d",
			ErrShapeMismatch, n, len(consumption), len(currentValue), len(expected)))
	}
	if policy.Cap() != 1+n || value.Cap() != 1+n {
		return egmErrorf(op, fmt.Errorf("%w: slot capacity %d/%d, want %d",
			ErrShapeMismatch, policy.Cap(), value.Cap(), 1+n))
	}

	copy(policy.grid[1:], endog)
	copy(policy.values[1:], consumption)
	policy.n = 1 + n

	copy(value.grid[1:], endog)
	copy(value.values[1:], currentValue)
	value.values[0] = expected[0]
	value.n = 1 + n

	return nil
}
