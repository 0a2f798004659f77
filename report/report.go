// SPDX-License-Identifier: MIT

// Package report exports solved policy and value functions: a long-format CSV
// table and PNG line plots, one line per choice slot.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/dcegm/egm"
	"github.com/katalvlaran/dcegm/solve"
	"github.com/katalvlaran/dcegm/statespace"
)

// Kinds of function written by WriteCSV.
const (
	KindPolicy = "policy"
	KindValue  = "value"
)

// Plot size.
var (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// ErrNothingToPlot is returned when every point of every slot is non-finite.
var ErrNothingToPlot = errors.New("report: no finite points to plot")

// Header is the CSV header row.
var Header = []string{"period", "choice", "kind", "index", "wealth", "value"}

// WriteCSV writes the policy and value functions of period, every choice
// slot, one row per grid point. Non-finite values are written as Go formats
// them ("-Inf", "NaN").
//
// Errors: egm.ErrShapeMismatch for a period outside the solved horizon, or
// the writer's error.
func WriteCSV(w io.Writer, res *solve.Result, period int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	p := strconv.Itoa(period)
	for slot := 0; slot < res.Policy.Choices(); slot++ {
		for _, part := range []struct {
			kind string
			c    *egm.Container
		}{{KindPolicy, res.Policy}, {KindValue, res.Value}} {
			f, err := part.c.At(period, slot)
			if err != nil {
				return fmt.Errorf("report: WriteCSV: %w", err)
			}
			grid, vals := f.Grid(), f.Values()
			for i := range grid {
				row := []string{
					p, strconv.Itoa(slot), part.kind, strconv.Itoa(i),
					strconv.FormatFloat(grid[i], 'g', -1, 64),
					strconv.FormatFloat(vals[i], 'g', -1, 64),
				}
				if err = cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()

	return cw.Error()
}

// PlotPolicy renders the consumption policies of period as PNG.
func PlotPolicy(res *solve.Result, period int, w io.Writer) error {
	return render(res.Policy, period, fmt.Sprintf("Consumption, period %d", period), "consumption", w)
}

// PlotValue renders the value functions of period as PNG. The boundary
// entry at grid index 0 (the expected value at zero savings) is left out,
// as are non-finite values.
func PlotValue(res *solve.Result, period int, w io.Writer) error {
	return render(res.Value, period, fmt.Sprintf("Value, period %d", period), "value", w)
}

func render(c *egm.Container, period int, title, ylabel string, w io.Writer) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "wealth"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	lines := 0
	for slot := 0; slot < c.Choices(); slot++ {
		f, err := c.At(period, slot)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		xys := points(f)
		if len(xys) < 2 {
			continue
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("report: slot %d: %w", slot, err)
		}
		l.Color = plotutil.Color(slot)
		l.Dashes = plotutil.Dashes(slot)
		p.Add(l)
		p.Legend.Add(slotName(c.Choices(), slot), l)
		lines++
	}
	if lines == 0 {
		return ErrNothingToPlot
	}

	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	_, err = wt.WriteTo(w)

	return err
}

// points returns the finite (wealth, value) pairs of f from index 1 on.
func points(f *egm.Function) plotter.XYs {
	grid, vals := f.Grid(), f.Values()
	out := make(plotter.XYs, 0, len(grid))
	for i := 1; i < len(grid); i++ {
		x, y := grid[i], vals[i]
		if math.IsNaN(y) || math.IsInf(y, 0) || math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		out = append(out, plotter.XY{X: x, Y: y})
	}

	return out
}

func slotName(slots, slot int) string {
	if slots < 2 {
		return "all"
	}
	switch slot {
	case statespace.Retired:
		return "retired"
	case statespace.Working:
		return "working"
	}

	return "choice " + strconv.Itoa(slot)
}
