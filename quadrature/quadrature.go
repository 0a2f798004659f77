// SPDX-License-Identifier: MIT

// Package quadrature builds integration schemes over a standard-normal shock.
//
// A Scheme pairs sample points z_i with weights w_i (Σ w_i = 1) such that
//
//	E[f(Z)] ≈ Σ_i w_i · f(z_i),  Z ~ N(0, 1).
//
// Callers scale the points by the shock standard deviation themselves; the
// EGM step does exactly that when it builds the next-period wealth matrix.
package quadrature

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

// WeightTolerance is the accepted |Σw - 1| for a valid scheme.
const WeightTolerance = 1e-9

var (
	// ErrInvalidSize is returned for a non-positive number of points.
	ErrInvalidSize = errors.New("quadrature: number of points must be > 0")

	// ErrInvalidScheme is returned by Validate for mismatched lengths,
	// non-finite entries, or weights that do not sum to one.
	ErrInvalidScheme = errors.New("quadrature: invalid scheme")
)

// Scheme holds quadrature points and weights of equal length.
type Scheme struct {
	Points  []float64 `json:"points" yaml:"points"`
	Weights []float64 `json:"weights" yaml:"weights"`
}

// Len returns the number of quadrature points.
func (s Scheme) Len() int { return len(s.Points) }

// Validate checks the scheme invariants.
func (s Scheme) Validate() error {
	if len(s.Points) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidScheme)
	}
	if len(s.Points) != len(s.Weights) {
		return fmt.Errorf("%w: %d points vs %d weights", ErrInvalidScheme, len(s.Points), len(s.Weights))
	}
	for i := range s.Points {
		if !finite(s.Points[i]) || !finite(s.Weights[i]) {
			return fmt.Errorf("%w: non-finite entry at %d", ErrInvalidScheme, i)
		}
	}
	if sum := floats.Sum(s.Weights); math.Abs(sum-1) > WeightTolerance {
		return fmt.Errorf("%w: weights sum to %g", ErrInvalidScheme, sum)
	}

	return nil
}

// Expect returns Σ_i w_i · f(z_i).
func (s Scheme) Expect(f func(z float64) float64) float64 {
	var total float64
	for i, z := range s.Points {
		total += s.Weights[i] * f(z)
	}

	return total
}

// GaussHermite returns the n-point Gauss-Hermite rule for N(0, 1).
//
// gonum's quad.Hermite integrates against e^{-x²}; substituting z = √2·x
// gives nodes √2·x_i and weights w_i/√π.
func GaussHermite(n int) (Scheme, error) {
	if n <= 0 {
		return Scheme{}, ErrInvalidSize
	}
	x := make([]float64, n)
	w := make([]float64, n)
	quad.Hermite{}.FixedLocations(x, w, math.Inf(-1), math.Inf(1))

	floats.Scale(math.Sqrt2, x)
	floats.Scale(1/math.Sqrt(math.Pi), w)

	return Scheme{Points: x, Weights: w}, nil
}

// MonteCarlo returns n standard-normal draws with equal weights 1/n. The
// draws are reproducible for a given seed.
func MonteCarlo(n int, seed uint64) (Scheme, error) {
	if n <= 0 {
		return Scheme{}, ErrInvalidSize
	}
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
	x := make([]float64, n)
	w := make([]float64, n)
	for i := range x {
		x[i] = dist.Rand()
		w[i] = 1 / float64(n)
	}

	return Scheme{Points: x, Weights: w}, nil
}

// Method names accepted by New.
const (
	MethodGaussHermite = "gauss-hermite"
	MethodMonteCarlo   = "monte-carlo"
)

// New builds a scheme by method name. seed is ignored by deterministic rules.
func New(method string, n int, seed uint64) (Scheme, error) {
	switch method {
	case MethodGaussHermite, "":
		return GaussHermite(n)
	case MethodMonteCarlo:
		return MonteCarlo(n, seed)
	default:
		return Scheme{}, fmt.Errorf("quadrature: unknown method %q", method)
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
