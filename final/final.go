// SPDX-License-Identifier: MIT

// Package final solves the terminal period in closed form: the agent
// consumes all available resources.
package final

import (
	"fmt"

	"github.com/katalvlaran/dcegm/egm"
)

// Solve returns consumption, value and marginal utility of the last period
// for the given begin-of-period resources.
func Solve(resources float64, choice int, p *egm.Params, u egm.Utility) (consumption, value, marginalUtility float64) {
	return resources, u.Utility(resources, choice, p), u.MarginalUtility(resources, p)
}

// Seed fills every choice slot of period in policy and value with the
// terminal solution on grid [0, savings...]:
//
//	policy values = grid                       (consume everything)
//	value values  = [0, u(savings[s], choice)]  (no continuation)
//
// choiceOf maps a slot to the utility's choice argument; nil means the
// identity.
//
// Errors: egm.ErrShapeMismatch.
func Seed(policy, value *egm.Container, period int, savings []float64, p *egm.Params, u egm.Utility,
	choiceOf func(slot int) int) error {
	if policy == nil || value == nil {
		return fmt.Errorf("final: Seed: %w: nil container", egm.ErrShapeMismatch)
	}
	if len(savings) != policy.GridPoints() || len(savings) != value.GridPoints() {
		return fmt.Errorf("final: Seed: %w: %d savings points for containers of %d/%d",
			egm.ErrShapeMismatch, len(savings), policy.GridPoints(), value.GridPoints())
	}
	if choiceOf == nil {
		choiceOf = func(slot int) int { return slot }
	}

	grid := make([]float64, 1+len(savings))
	copy(grid[1:], savings)
	values := make([]float64, len(grid))

	for slot := 0; slot < policy.Choices(); slot++ {
		pf, err := policy.At(period, slot)
		if err != nil {
			return fmt.Errorf("final: Seed: %w", err)
		}
		if err = pf.Set(grid, grid); err != nil {
			return fmt.Errorf("final: Seed: %w", err)
		}

		vf, err := value.At(period, slot)
		if err != nil {
			return fmt.Errorf("final: Seed: %w", err)
		}
		values[0] = 0
		choice := choiceOf(slot)
		for s, a := range savings {
			_, values[1+s], _ = Solve(a, choice, p, u)
		}
		if err = vf.Set(grid, values); err != nil {
			return fmt.Errorf("final: Seed: %w", err)
		}
	}

	return nil
}
