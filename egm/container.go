// SPDX-License-Identifier: MIT
// Package: egm
//
// Purpose:
//   - Fixed-capacity storage of choice-specific policy and value functions.
//
// Layout:
//   - A Function owns two buffers of capacity 1+nGrid and a valid-length
//     marker. Position 0 is the boundary point; the EGM step fills positions
//     1..nGrid.
//   - A Container holds one Function per (period, choice slot), all
//     allocated up front. Nothing in this package reallocates a slot.

package egm

import "fmt"

// Function is a piecewise-linear function given by (grid, values) pairs.
// Grid()[0] is the wealth floor 0; for value functions Values()[0] holds the
// expected value at zero savings.
type Function struct {
	grid   []float64
	values []float64
	n      int // valid length, 1 <= n <= cap
}

// NewFunction allocates a Function for nGrid savings points. Its valid length
// starts at 1: the boundary point (0, 0).
func NewFunction(nGrid int) *Function {
	return &Function{
		grid:   make([]float64, 1+nGrid),
		values: make([]float64, 1+nGrid),
		n:      1,
	}
}

// Grid returns the valid prefix of the wealth grid. The slice aliases the
// Function's storage.
func (f *Function) Grid() []float64 { return f.grid[:f.n] }

// Values returns the valid prefix of the function values. The slice aliases
// the Function's storage.
func (f *Function) Values() []float64 { return f.values[:f.n] }

// Len returns the valid length.
func (f *Function) Len() int { return f.n }

// Cap returns the fixed capacity 1+nGrid.
func (f *Function) Cap() int { return len(f.grid) }

// SetLen moves the valid-length marker, e.g. after a downstream pass drops
// points. n must lie in [1, Cap()].
//
// Errors: ErrShapeMismatch.
func (f *Function) SetLen(n int) error {
	if n < 1 || n > len(f.grid) {
		return egmErrorf("Function.SetLen", fmt.Errorf("%w: length %d outside [1, %d]", ErrShapeMismatch, n, len(f.grid)))
	}
	f.n = n

	return nil
}

// Set copies grid and values into the Function and sets the valid length.
//
// Errors: ErrShapeMismatch.
func (f *Function) Set(grid, values []float64) error {
	if len(grid) != len(values) {
		return egmErrorf("Function.Set", fmt.Errorf("%w: grid has %d points, values %d", ErrShapeMismatch, len(grid), len(values)))
	}
	if err := f.SetLen(len(grid)); err != nil {
		return egmErrorf("Function.Set", err)
	}
	copy(f.grid, grid)
	copy(f.values, values)

	return nil
}

// Container holds the Functions of every (period, choice slot).
type Container struct {
	nGrid int
	slots [][]*Function
}

// NewContainer allocates nPeriods × nChoices Functions for nGrid savings
// points.
//
// Errors: ErrConfiguration for non-positive sizes.
func NewContainer(nPeriods, nChoices, nGrid int) (*Container, error) {
	if nPeriods < 1 || nChoices < 1 || nGrid < 1 {
		return nil, egmErrorf("NewContainer", fmt.Errorf("%w: sizes (%d, %d, %d) must be > 0",
			ErrConfiguration, nPeriods, nChoices, nGrid))
	}
	slots := make([][]*Function, nPeriods)
	for t := range slots {
		slots[t] = make([]*Function, nChoices)
		for c := range slots[t] {
			slots[t][c] = NewFunction(nGrid)
		}
	}

	return &Container{nGrid: nGrid, slots: slots}, nil
}

// At returns the Function of (period, choice).
//
// Errors: ErrShapeMismatch for out-of-range indices.
func (c *Container) At(period, choice int) (*Function, error) {
	if c == nil {
		return nil, egmErrorf("Container.At", fmt.Errorf("%w: nil container", ErrShapeMismatch))
	}
	if period < 0 || period >= len(c.slots) {
		return nil, egmErrorf("Container.At", fmt.Errorf("%w: period %d outside [0, %d)", ErrShapeMismatch, period, len(c.slots)))
	}
	if choice < 0 || choice >= len(c.slots[period]) {
		return nil, egmErrorf("Container.At", fmt.Errorf("%w: choice %d outside [0, %d)", ErrShapeMismatch, choice, len(c.slots[period])))
	}

	return c.slots[period][choice], nil
}

// Periods returns the number of periods.
func (c *Container) Periods() int { return len(c.slots) }

// Choices returns the number of choice slots per period.
func (c *Container) Choices() int {
	if len(c.slots) == 0 {
		return 0
	}

	return len(c.slots[0])
}

// GridPoints returns the savings grid size the Container was built for.
func (c *Container) GridPoints() int { return c.nGrid }
