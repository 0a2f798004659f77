// SPDX-License-Identifier: MIT
// Package: solve
//
// Purpose:
//   - Backward induction over the whole horizon: allocate the containers,
//     seed the terminal period in closed form, then run egm.Step for every
//     (period, state) from NPeriods-2 down to 0.
//
// Concurrency:
//   - Periods run strictly in order; period t reads period t+1.
//   - Within a period, states write distinct slots when the model has at
//     least two choices and are solved on an errgroup bounded by
//     Options.Concurrency. Otherwise states share slot 0 and run in order.
//   - ctx is checked between periods and before every state.

package solve

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/dcegm/egm"
	"github.com/katalvlaran/dcegm/final"
	"github.com/katalvlaran/dcegm/quadrature"
	"github.com/katalvlaran/dcegm/retirement"
	"github.com/katalvlaran/dcegm/statespace"
)

var defaultChoiceOf = retirement.UtilityChoice

// Result is a solved model.
type Result struct {
	// ID identifies the run in logs and server responses.
	ID uuid.UUID

	Params  *egm.Params
	Options egm.Options

	Policy *egm.Container
	Value  *egm.Container

	Savings []float64
	Scheme  quadrature.Scheme

	// Expected[period][state] is the expected next-period value per savings
	// point returned by that step.
	Expected map[int]map[int][]float64
}

// Run solves the model by backward induction.
//
// Errors: egm.ErrConfiguration for invalid inputs, the first step error of a
// period (wrapped with its (period, state)), or ctx.Err().
func Run(ctx context.Context, p *egm.Params, o egm.Options, model egm.Model, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.Logger

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := o.ValidateHorizon(); err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	savings, err := Savings(p, o)
	if err != nil {
		return nil, err
	}
	scheme, err := schemeFor(cfg, o)
	if err != nil {
		return nil, err
	}
	space, err := statespace.New(o)
	if err != nil {
		return nil, err
	}

	slots := o.ChoiceSlots()
	policy, err := egm.NewContainer(o.NPeriods, slots, o.GridPointsWealth)
	if err != nil {
		return nil, err
	}
	value, err := egm.NewContainer(o.NPeriods, slots, o.GridPointsWealth)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ID:       uuid.New(),
		Params:   p,
		Options:  o,
		Policy:   policy,
		Value:    value,
		Savings:  savings,
		Scheme:   scheme,
		Expected: make(map[int]map[int][]float64, o.NPeriods),
	}
	log = log.With(zap.String("run", res.ID.String()))
	start := time.Now()

	if err = final.Seed(policy, value, o.NPeriods-1, savings, p, model.Utility, cfg.ChoiceOf); err != nil {
		return nil, fmt.Errorf("solve: terminal period: %w", err)
	}

	base := egm.StepInput{
		Policy:  policy,
		Value:   value,
		Savings: savings,
		Scheme:  scheme,
		Params:  p,
		Options: o,
		Model:   model,
	}
	for period := o.NPeriods - 2; period >= 0; period-- {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		states, err := space.States(period)
		if err != nil {
			return nil, fmt.Errorf("solve: %w", err)
		}
		expected, err := runPeriod(ctx, base, period, states, cfg, log)
		if err != nil {
			return nil, err
		}
		res.Expected[period] = expected
	}

	log.Info("solved",
		zap.Int("periods", o.NPeriods),
		zap.Int("choices", o.NDiscreteChoices),
		zap.Int("grid_points", o.GridPointsWealth),
		zap.Duration("elapsed", time.Since(start)))

	return res, nil
}

// runPeriod solves every state of one period and returns their expected
// values keyed by state.
func runPeriod(ctx context.Context, base egm.StepInput, period int, states []int, cfg Options,
	log *zap.Logger) (map[int][]float64, error) {
	out := make(map[int][]float64, len(states))
	var mu sync.Mutex

	step := func(state int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		in := base
		in.Period, in.State = period, state
		r, err := egm.Step(in)
		if err != nil {
			return err
		}
		mu.Lock()
		out[state] = r.Expected
		mu.Unlock()
		log.Debug("step",
			zap.Int("period", period),
			zap.Int("state", state),
			zap.Int("slot", r.StateIndex))

		return nil
	}

	if base.Options.NDiscreteChoices < 2 || cfg.workers() == 1 {
		for _, s := range states {
			if err := step(s); err != nil {
				return nil, err
			}
		}

		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())
	ctx = gctx
	for _, s := range states {
		s := s
		g.Go(func() error { return step(s) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Savings returns the exogenous savings grid: GridPointsWealth points evenly
// spaced on [0, MaxWealth].
//
// Errors: egm.ErrConfiguration when MaxWealth <= 0 or the grid has fewer than
// two points (a single savings point gives a degenerate policy grid).
func Savings(p *egm.Params, o egm.Options) ([]float64, error) {
	if p == nil || !(p.Assets.MaxWealth > 0) {
		return nil, fmt.Errorf("solve: %w: assets.max_wealth must be > 0", egm.ErrConfiguration)
	}
	if o.GridPointsWealth < 2 {
		return nil, fmt.Errorf("solve: %w: grid_points_wealth must be >= 2, got %d",
			egm.ErrConfiguration, o.GridPointsWealth)
	}

	return floats.Span(make([]float64, o.GridPointsWealth), 0, p.Assets.MaxWealth), nil
}

func schemeFor(cfg Options, o egm.Options) (quadrature.Scheme, error) {
	if cfg.Scheme == nil {
		s, err := quadrature.GaussHermite(o.QuadraturePointsStochastic)
		if err != nil {
			return quadrature.Scheme{}, fmt.Errorf("solve: %w: %w", egm.ErrConfiguration, err)
		}
		return s, nil
	}
	s := *cfg.Scheme
	if err := s.Validate(); err != nil {
		return quadrature.Scheme{}, fmt.Errorf("solve: %w: %w", egm.ErrConfiguration, err)
	}
	if s.Len() != o.QuadraturePointsStochastic {
		return quadrature.Scheme{}, fmt.Errorf("solve: %w: scheme has %d points, options ask for %d",
			egm.ErrConfiguration, s.Len(), o.QuadraturePointsStochastic)
	}

	return s, nil
}

// Consumption evaluates the solved policy of (period, choice) at wealth.
//
// Errors: egm.ErrShapeMismatch for an unknown slot or a slot that was never
// solved.
func (r *Result) Consumption(period, choice int, wealth []float64) ([]float64, error) {
	return r.evaluate(r.Policy, period, choice, wealth)
}

// ValueAt evaluates the solved value function of (period, choice) at wealth
// by plain interpolation; the credit-constrained correction of the model's
// NextPeriodValue is not applied.
//
// Errors: egm.ErrShapeMismatch.
func (r *Result) ValueAt(period, choice int, wealth []float64) ([]float64, error) {
	return r.evaluate(r.Value, period, choice, wealth)
}

func (r *Result) evaluate(c *egm.Container, period, choice int, wealth []float64) ([]float64, error) {
	f, err := c.At(period, choice)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(wealth))
	if err = f.EvaluateTo(out, wealth); err != nil {
		return nil, fmt.Errorf("solve: period %d, choice %d: %w: %w", period, choice, egm.ErrShapeMismatch, err)
	}

	return out, nil
}
