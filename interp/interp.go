// SPDX-License-Identifier: MIT

// Package interp evaluates piecewise-linear functions given as (x, y) pairs.
//
// Two out-of-range policies are offered:
//
//   - Linear / LinearAt extrapolate with the slope of the boundary segment.
//     Out-of-range input is not an error.
//   - LinearWithFill writes a caller-supplied fill value outside [x0, xn].
//
// Duplicated x (zero-width segments) are legal: a query that lands exactly on a
// repeated knot returns the y of the right-most copy, and extrapolation uses
// the first/last segment with positive width.
package interp

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrTooFewPoints is returned when fewer than two knots are supplied, or
	// when all knots share the same x so that no segment has positive width.
	ErrTooFewPoints = errors.New("interp: need at least two distinct knots")

	// ErrLengthMismatch is returned when len(x) != len(y).
	ErrLengthMismatch = errors.New("interp: x and y lengths differ")
)

// Linear evaluates the piecewise-linear interpolant of (x, y) at every xNew,
// extrapolating linearly beyond both ends. x need not be sorted; unsorted
// input is sorted (stably, together with y) on a copy.
//
// Complexity: O(n log n) for unsorted x, then O(m log n).
func Linear(x, y, xNew []float64) ([]float64, error) {
	xs, ys, err := prepare(x, y)
	if err != nil {
		return nil, err
	}
	lo, hi, _ := outerSegments(xs)
	out := make([]float64, len(xNew))
	for k, v := range xNew {
		out[k] = eval(xs, ys, lo, hi, v)
	}

	return out, nil
}

// LinearTo is Linear writing into dst, which must have len(xNew). x must be
// sorted in non-decreasing order; no copy is made.
func LinearTo(dst, x, y, xNew []float64) error {
	if len(x) != len(y) {
		return ErrLengthMismatch
	}
	if len(dst) != len(xNew) {
		return ErrLengthMismatch
	}
	lo, hi, ok := outerSegments(x)
	if !ok {
		return ErrTooFewPoints
	}
	for k, v := range xNew {
		dst[k] = eval(x, y, lo, hi, v)
	}

	return nil
}

// LinearAt evaluates one point on sorted knots. It assumes len(x) == len(y) and
// at least one positive-width segment; callers that cannot guarantee this
// should use Linear.
func LinearAt(x, y []float64, v float64) float64 {
	lo, hi, _ := outerSegments(x)
	return eval(x, y, lo, hi, v)
}

// eval is LinearAt with the boundary segments lo/hi precomputed.
func eval(x, y []float64, lo, hi int, v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	n := len(x)
	switch {
	case v < x[0]:
		return along(x, y, lo, v)
	case v > x[n-1]:
		return along(x, y, hi, v)
	}

	// First knot strictly greater than v; the segment is [i-1, i].
	i := sort.Search(n, func(k int) bool { return x[k] > v })
	if i == n {
		// v == x[n-1]; take the last knot exactly.
		return y[n-1]
	}
	if x[i-1] == v {
		// Exact hit on a (possibly repeated) knot: right-most copy wins.
		return y[i-1]
	}

	return along(x, y, i-1, v)
}

// LinearWithFill evaluates the interpolant inside [min(x), max(x)] and writes
// fill outside it.
func LinearWithFill(x, y, xNew []float64, fill float64) ([]float64, error) {
	xs, ys, err := prepare(x, y)
	if err != nil {
		return nil, err
	}
	first, last, _ := outerSegments(xs)
	lo, hi := xs[0], xs[len(xs)-1]
	out := make([]float64, len(xNew))
	for k, v := range xNew {
		if v < lo || v > hi {
			out[k] = fill
			continue
		}
		out[k] = eval(xs, ys, first, last, v)
	}

	return out, nil
}

// along evaluates the line through knots seg and seg+1 at v.
func along(x, y []float64, seg int, v float64) float64 {
	slope := (y[seg+1] - y[seg]) / (x[seg+1] - x[seg])
	return y[seg] + slope*(v-x[seg])
}

// outerSegments returns the indices of the first and last segments with
// positive width.
func outerSegments(x []float64) (first, last int, ok bool) {
	first, last = -1, -1
	for k := 0; k+1 < len(x); k++ {
		if x[k+1] > x[k] {
			first = k
			break
		}
	}
	for k := len(x) - 2; k >= 0; k-- {
		if x[k+1] > x[k] {
			last = k
			break
		}
	}

	return first, last, first >= 0
}

// prepare validates inputs and returns sorted copies only when needed.
func prepare(x, y []float64) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, ErrLengthMismatch
	}
	if len(x) < 2 {
		return nil, nil, ErrTooFewPoints
	}
	if !sort.Float64sAreSorted(x) {
		x, y = sortedPairs(x, y)
	}
	if _, _, ok := outerSegments(x); !ok {
		return nil, nil, ErrTooFewPoints
	}

	return x, y, nil
}

type pairs struct{ x, y []float64 }

func (p pairs) Len() int           { return len(p.x) }
func (p pairs) Less(i, j int) bool { return p.x[i] < p.x[j] }
func (p pairs) Swap(i, j int) {
	p.x[i], p.x[j] = p.x[j], p.x[i]
	p.y[i], p.y[j] = p.y[j], p.y[i]
}

func sortedPairs(x, y []float64) ([]float64, []float64) {
	p := pairs{x: append([]float64(nil), x...), y: append([]float64(nil), y...)}
	sort.Stable(p)

	return p.x, p.y
}
