// SPDX-License-Identifier: MIT

package solve_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dcegm/egm"
	"github.com/katalvlaran/dcegm/retirement"
	"github.com/katalvlaran/dcegm/solve"
	"github.com/katalvlaran/dcegm/statespace"
)

// ExampleRun solves a four-period retirement model and reads back the
// policy of a worker in the first period.
func ExampleRun() {
	p := &egm.Params{
		Assets:  egm.Assets{InterestRate: 0.05, ConsumptionFloor: 0.001, MaxWealth: 50},
		Shocks:  egm.Shocks{Sigma: 0.35, Lambda: 0.1},
		Beta:    0.95,
		Utility: egm.UtilityParams{Theta: 1.95, Delta: 0.35},
		Wage:    []float64{0.75, 0.04, -0.0002},
	}
	o := egm.Options{
		GridPointsWealth:           50,
		QuadraturePointsStochastic: 5,
		NDiscreteChoices:           2,
		MinAge:                     20,
		NPeriods:                   4,
	}

	res, err := solve.Run(context.Background(), p, o, retirement.Model())
	if err != nil {
		fmt.Println(err)
		return
	}
	f, _ := res.Policy.At(0, statespace.Working)
	c, _ := res.Consumption(0, statespace.Working, []float64{10})
	fmt.Println(f.Len(), len(res.Expected), c[0] > 0 && c[0] <= 10)
	// Output: 51 3 true
}
