// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dcegm/quadrature"
)

func newQuadratureCmd() *cobra.Command {
	var (
		points int
		method string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "quadrature",
		Short: "Print the nodes and weights of a standard-normal quadrature scheme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := quadrature.New(method, points, seed)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "i\tpoint\tweight\t")
			for i := range s.Points {
				fmt.Fprintf(tw, "%d\t%.12f\t%.12f\t\n", i, s.Points[i], s.Weights[i])
			}

			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&points, "points", "n", 5, "Number of points")
	cmd.Flags().StringVarP(&method, "method", "m", quadrature.MethodGaussHermite,
		fmt.Sprintf("Scheme: %s or %s", quadrature.MethodGaussHermite, quadrature.MethodMonteCarlo))
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed of the monte-carlo scheme")

	return cmd
}
