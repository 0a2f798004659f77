// SPDX-License-Identifier: MIT

// Command dcegm solves the consumption-retirement model by backward
// induction with the endogenous grid method.
//
//	dcegm solve --config examples/retirement.yaml --period 0 --csv out.csv --plot-dir plots
//	dcegm serve --addr :8080
//	dcegm quadrature --points 7 --method gauss-hermite
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is built by the root command before any subcommand runs.
var logger = zap.NewNop()

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "dcegm",
		Short: "Life-cycle consumption and retirement solver (endogenous grid method)",
		Long: `dcegm solves a discrete-continuous life-cycle model: each period an agent
chooses consumption and whether to keep working, retirement is absorbing, and
income carries a log-normal shock. The model is solved backward from the last
period with the endogenous grid method.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newQuadratureCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
