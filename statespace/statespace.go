// SPDX-License-Identifier: MIT
// Package statespace enumerates the discrete states of the life-cycle model
// and their feasible choice sets.
//
// A state is (period, lagged choice, exogenous process). States are numbered
// period-major, then lagged choice, then exogenous process, so the states of
// one period are contiguous.
//
// Choice encoding: Retired = 0, Working = 1. The lagged choice doubles as the
// EGM state: it gates labor income and selects the container slot.
// Retirement is absorbing.
package statespace

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dcegm/egm"
)

// Discrete choices of the retirement model.
const (
	Retired = 0
	Working = 1
)

// ErrOutOfRange is returned for a state or index outside the space.
var ErrOutOfRange = errors.New("statespace: index out of range")

// State is one row of the state space.
type State struct {
	Period       int `json:"period"`
	LaggedChoice int `json:"lagged_choice"`
	Exog         int `json:"exog"`
}

// Space is an immutable state space with its (period, choice, exog) → index
// map.
type Space struct {
	nPeriods, nChoices, nExog int
	states                    []State
}

// New enumerates the state space for o.NPeriods periods,
// o.NDiscreteChoices lagged choices and o.ExogProcesses() exogenous
// processes.
//
// Errors: egm.ErrConfiguration.
func New(o egm.Options) (*Space, error) {
	if o.NPeriods < 1 || o.NDiscreteChoices < 1 {
		return nil, fmt.Errorf("statespace: New: %w: need n_periods >= 1 and n_discrete_choices >= 1, got %d and %d",
			egm.ErrConfiguration, o.NPeriods, o.NDiscreteChoices)
	}
	s := &Space{nPeriods: o.NPeriods, nChoices: o.NDiscreteChoices, nExog: o.ExogProcesses()}
	s.states = make([]State, 0, s.nPeriods*s.nChoices*s.nExog)
	for t := 0; t < s.nPeriods; t++ {
		for c := 0; c < s.nChoices; c++ {
			for e := 0; e < s.nExog; e++ {
				s.states = append(s.states, State{Period: t, LaggedChoice: c, Exog: e})
			}
		}
	}

	return s, nil
}

// Len returns the number of states.
func (s *Space) Len() int { return len(s.states) }

// Index returns the position of (period, choice, exog).
//
// Errors: ErrOutOfRange.
func (s *Space) Index(period, choice, exog int) (int, error) {
	if period < 0 || period >= s.nPeriods || choice < 0 || choice >= s.nChoices || exog < 0 || exog >= s.nExog {
		return 0, fmt.Errorf("statespace: Index(%d, %d, %d): %w", period, choice, exog, ErrOutOfRange)
	}

	return (period*s.nChoices+choice)*s.nExog + exog, nil
}

// State returns the i-th state.
//
// Errors: ErrOutOfRange.
func (s *Space) State(i int) (State, error) {
	if i < 0 || i >= len(s.states) {
		return State{}, fmt.Errorf("statespace: State(%d): %w", i, ErrOutOfRange)
	}

	return s.states[i], nil
}

// FeasibleChoices returns the choices open in st. Once retired, an agent can
// only stay retired; otherwise every choice is open.
func (s *Space) FeasibleChoices(st State) []int {
	if s.nChoices >= 2 && st.LaggedChoice == Retired {
		return []int{Retired}
	}
	out := make([]int, s.nChoices)
	for c := range out {
		out[c] = c
	}

	return out
}

// States returns the distinct lagged choices of period in ascending order:
// the state values the EGM step is called with.
//
// Errors: ErrOutOfRange.
func (s *Space) States(period int) ([]int, error) {
	if period < 0 || period >= s.nPeriods {
		return nil, fmt.Errorf("statespace: States(%d): %w", period, ErrOutOfRange)
	}
	out := make([]int, 0, s.nChoices)
	first := period * s.nChoices * s.nExog
	for _, st := range s.states[first : first+s.nChoices*s.nExog] {
		if n := len(out); n == 0 || out[n-1] != st.LaggedChoice {
			out = append(out, st.LaggedChoice)
		}
	}

	return out, nil
}
