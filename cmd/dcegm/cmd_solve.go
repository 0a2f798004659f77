// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/dcegm/config"
	"github.com/katalvlaran/dcegm/report"
	"github.com/katalvlaran/dcegm/retirement"
	"github.com/katalvlaran/dcegm/solve"
)

type solveFlags struct {
	config      string
	period      int
	csv         string
	plotDir     string
	concurrency int
}

func newSolveCmd() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the retirement model described by a config file",
		Example: `  dcegm solve --config examples/retirement.yaml
  dcegm solve --config examples/retirement.yaml --period 10 --csv -
  dcegm solve --config examples/retirement.yaml --plot-dir plots`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "YAML config file (required)")
	cmd.Flags().IntVarP(&f.period, "period", "p", 0, "Period to report")
	cmd.Flags().StringVar(&f.csv, "csv", "", "Write the period's functions as CSV to this file (- for stdout)")
	cmd.Flags().StringVar(&f.plotDir, "plot-dir", "", "Write policy and value PNG plots of the period to this directory")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "States solved at once within a period (0: GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runSolve(cmd *cobra.Command, f solveFlags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	p, o, err := cfg.Resolve()
	if err != nil {
		return err
	}
	if f.period < 0 || f.period >= o.NPeriods {
		return fmt.Errorf("period %d outside [0, %d)", f.period, o.NPeriods)
	}
	if f.concurrency < 0 {
		return fmt.Errorf("concurrency %d must be >= 0", f.concurrency)
	}
	scheme, err := cfg.Scheme(o)
	if err != nil {
		return err
	}

	res, err := solve.Run(cmd.Context(), p, o, retirement.Model(),
		solve.WithLogger(logger),
		solve.WithQuadrature(scheme),
		solve.WithConcurrency(f.concurrency))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err = summary(out, res, f.period); err != nil {
		return err
	}
	if f.csv != "" {
		if err = writeCSV(out, f.csv, res, f.period); err != nil {
			return err
		}
	}
	if f.plotDir != "" {
		if err = writePlots(f.plotDir, res, f.period); err != nil {
			return err
		}
	}

	return nil
}

func summary(w io.Writer, res *solve.Result, period int) error {
	fmt.Fprintf(w, "run %s, period %d\n", res.ID, period)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "choice\tpoints\twealth min\twealth max\tconsumption max")
	for slot := 0; slot < res.Policy.Choices(); slot++ {
		f, err := res.Policy.At(period, slot)
		if err != nil {
			return err
		}
		grid, c := f.Grid(), f.Values()
		fmt.Fprintf(tw, "%d\t%d\t%.4g\t%.4g\t%.4g\n", slot, f.Len(), grid[0], grid[len(grid)-1], c[len(c)-1])
	}

	return tw.Flush()
}

func writeCSV(stdout io.Writer, path string, res *solve.Result, period int) error {
	if path == "-" {
		return report.WriteCSV(stdout, res, period)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = report.WriteCSV(file, res, period); err != nil {
		file.Close()
		return err
	}
	logger.Info("wrote csv", zap.String("path", path))

	return file.Close()
}

func writePlots(dir string, res *solve.Result, period int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	plots := []struct {
		name   string
		render func(*solve.Result, int, io.Writer) error
	}{
		{"policy", report.PlotPolicy},
		{"value", report.PlotValue},
	}
	for _, pl := range plots {
		path := filepath.Join(dir, fmt.Sprintf("%s_period_%d.png", pl.name, period))
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if err = pl.render(res, period, file); err != nil {
			file.Close()
			return err
		}
		if err = file.Close(); err != nil {
			return err
		}
		logger.Info("wrote plot", zap.String("path", path))
	}

	return nil
}
