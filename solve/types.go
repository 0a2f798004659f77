// SPDX-License-Identifier: MIT

package solve

import (
	"errors"
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/dcegm/quadrature"
)

var (
	// ErrBadConcurrency is the panic message of WithConcurrency for a
	// negative worker count.
	ErrBadConcurrency = errors.New("solve: concurrency must be >= 0")

	// ErrNilLogger is the panic message of WithLogger for a nil logger.
	ErrNilLogger = errors.New("solve: logger must not be nil")
)

// Options configures Run.
//
// Logger      – receives one debug line per (period, state) and an info line
//
//	per solve. Default zap.NewNop().
//
// Scheme      – shock quadrature. Default Gauss-Hermite with
//
//	QuadraturePointsStochastic points.
//
// Concurrency – maximum number of states solved at once within a period.
//
//	0 means runtime.GOMAXPROCS(0). States share slots when the model has
//	fewer than two choices, so such models always run sequentially.
//
// ChoiceOf    – maps a slot to the utility's choice argument when seeding the
//
//	terminal period. Default retirement.UtilityChoice.
type Options struct {
	Logger      *zap.Logger
	Scheme      *quadrature.Scheme
	Concurrency int
	ChoiceOf    func(slot int) int
}

// Option represents a functional option for configuring Run.
type Option func(*Options)

// WithLogger sets the logger. A nil logger panics with ErrNilLogger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			panic(ErrNilLogger.Error())
		}
		o.Logger = l
	}
}

// WithQuadrature replaces the default Gauss-Hermite scheme. The scheme must
// have QuadraturePointsStochastic points; Run rejects it otherwise.
func WithQuadrature(s quadrature.Scheme) Option {
	return func(o *Options) {
		o.Scheme = &s
	}
}

// WithConcurrency bounds the per-period fan-out. 1 solves states one after
// the other; negative values panic with ErrBadConcurrency.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadConcurrency.Error())
		}
		o.Concurrency = n
	}
}

// WithTerminalChoice overrides the slot to utility-choice mapping used by
// final.Seed. nil restores the identity mapping.
func WithTerminalChoice(f func(slot int) int) Option {
	return func(o *Options) {
		o.ChoiceOf = f
	}
}

// DefaultOptions returns the options Run starts from.
func DefaultOptions() Options {
	return Options{
		Logger:      zap.NewNop(),
		Concurrency: 0,
		ChoiceOf:    defaultChoiceOf,
	}
}

func (o Options) workers() int {
	if o.Concurrency == 0 {
		return runtime.GOMAXPROCS(0)
	}

	return o.Concurrency
}
