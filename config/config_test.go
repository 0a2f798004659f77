// SPDX-License-Identifier: MIT

package config_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dcegm/config"
	"github.com/katalvlaran/dcegm/egm"
	"github.com/katalvlaran/dcegm/quadrature"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := config.Load(filepath.Join("testdata", "retirement.yaml"))
	require.NoError(t, err)

	p, o, err := c.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0.05, p.Assets.InterestRate)
	assert.Equal(t, 0.001, p.Assets.ConsumptionFloor)
	assert.Equal(t, 75.0, p.Assets.MaxWealth)
	assert.Equal(t, 0.35, p.Shocks.Sigma)
	assert.Equal(t, 1.0e-5, p.Shocks.Lambda)
	assert.Equal(t, 0.95, p.Beta)
	assert.Equal(t, 1.95, p.Utility.Theta)
	assert.Equal(t, 0.35, p.Utility.Delta)
	assert.Equal(t, []float64{0.75, 0.04, -0.0002}, p.Wage)

	assert.Equal(t, egm.Options{
		GridPointsWealth:           100,
		QuadraturePointsStochastic: 5,
		NDiscreteChoices:           2,
		MinAge:                     20,
		NPeriods:                   25,
		NExogProcesses:             1,
	}, o)

	s, err := c.Scheme(o)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join("testdata", "missing_beta.yaml"))
	require.ErrorIs(t, err, egm.ErrConfiguration)
	assert.Contains(t, err.Error(), "beta.beta")

	_, err = config.Load(filepath.Join("testdata", "does_not_exist.yaml"))
	assert.Error(t, err)

	c, err := config.LoadUnchecked(filepath.Join("testdata", "missing_beta.yaml"))
	require.NoError(t, err, "unchecked load must not validate")
	assert.Equal(t, 5, c.Options["n_periods"])
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
  "params": {
    "assets": {"interest_rate": 0.05, "max_wealth": 10},
    "shocks": {"sigma": 0.2},
    "beta": {"beta": 0.95},
    "delta": {"delta": 0.35},
    "utility": {"theta": 1},
    "wage": {"value": 0.5}
  },
  "options": {
    "n_periods": 3, "min_age": 20, "n_discrete_choices": 1,
    "grid_points_wealth": 4, "quadrature_points_stochastic": 2
  },
  "quadrature": {"method": "monte-carlo", "seed": 7}
}`)
	c, err := config.Parse(raw)
	require.NoError(t, err)

	p, o, err := c.Resolve()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, p.Wage, "a scalar wage is a one-coefficient polynomial")
	assert.Equal(t, 1, o.NDiscreteChoices)
	assert.Zero(t, p.Shocks.Lambda, "lambda is optional with a single choice")
	assert.Equal(t, quadrature.MethodMonteCarlo, c.Quadrature.Method)
	assert.Equal(t, uint64(7), c.Quadrature.Seed)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	base := `
params:
  assets: {interest_rate: 0.05, max_wealth: 10}
  shocks: {sigma: 0.2, lambda: 1}
  beta: {beta: 0.95}
  delta: {delta: 0.35}
  utility: {theta: 2}
  wage: {value: [0.5]}
options:
  n_periods: 3
  min_age: 20
  n_discrete_choices: 2
  grid_points_wealth: 4
  quadrature_points_stochastic: 2
`
	_, err := config.Parse([]byte(base))
	require.NoError(t, err)

	cases := map[string]struct {
		doc  string
		want string
	}{
		"syntax":          {"params: [", ""},
		"mapping value":   {"params:\n  beta: {beta: {x: 1}}\n", ""},
		"no lambda":       {strings.Replace(base, "lambda: 1", "mu: 1", 1), "shocks.lambda"},
		"no theta":        {strings.Replace(base, "theta: 2", "eta: 2", 1), "utility.theta"},
		"no max wealth":   {strings.Replace(base, "max_wealth: 10", "floor: 1", 1), "assets.max_wealth"},
		"zero max wealth": {strings.Replace(base, "max_wealth: 10", "max_wealth: 0", 1), "assets.max_wealth"},
		"vector rate":     {strings.Replace(base, "interest_rate: 0.05", "interest_rate: [0.05, 0.1]", 1), "assets.interest_rate"},
		"no wage":         {strings.Replace(base, "wage: {value: [0.5]}", "wage: {}", 1), "wage.value"},
		"empty wage":      {strings.Replace(base, "value: [0.5]", "value: []", 1), "wage.value"},
		"no periods":      {strings.Replace(base, "n_periods: 3", "n_periods: 0", 1), "n_periods"},
		"missing option":  {strings.Replace(base, "min_age: 20", "max_age: 20", 1), "min_age"},
		"negative grid":   {strings.Replace(base, "grid_points_wealth: 4", "grid_points_wealth: -1", 1), "grid_points_wealth"},
		"bad method":      {base + "quadrature: {method: simpson}\n", "simpson"},
	}
	for name, tc := range cases {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := config.Parse([]byte(tc.doc))
			require.ErrorIs(t, err, egm.ErrConfiguration)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestTableParams(t *testing.T) {
	t.Parallel()

	table := config.Table{
		{Category: "assets", Name: "interest_rate"}: {0.03},
		{Category: "shocks", Name: "sigma"}:         {0.1},
		{Category: "beta", Name: "beta"}:            {0.9},
		{Category: "wage", Name: "value"}:           {1, 0.1},
	}
	p, err := table.Params()
	require.NoError(t, err)
	assert.Equal(t, 0.03, p.Assets.InterestRate)
	assert.Zero(t, p.Assets.ConsumptionFloor)
	assert.Equal(t, []float64{1, 0.1}, p.Wage)

	// The returned wage does not alias the table.
	p.Wage[0] = 9
	assert.Equal(t, 1.0, table[config.Key{Category: "wage", Name: "value"}][0])

	for _, k := range []config.Key{
		{Category: "assets", Name: "interest_rate"},
		{Category: "shocks", Name: "sigma"},
		{Category: "beta", Name: "beta"},
	} {
		partial := config.Table{}
		for kk, v := range table {
			if kk != k {
				partial[kk] = v
			}
		}
		_, err := partial.Params()
		require.ErrorIs(t, err, egm.ErrConfiguration, k.String())
		assert.Contains(t, err.Error(), k.String())
	}
}

func TestOptionTable(t *testing.T) {
	t.Parallel()

	o, err := config.OptionTable{
		"grid_points_wealth":           3,
		"quadrature_points_stochastic": 2,
		"n_discrete_choices":           1,
		"min_age":                      30,
	}.Options()
	require.NoError(t, err)
	assert.Equal(t, 3, o.GridPointsWealth)
	assert.Zero(t, o.NPeriods)
	assert.Equal(t, 1, o.ExogProcesses())

	_, err = config.OptionTable{
		"grid_points_wealth":           3,
		"quadrature_points_stochastic": 2,
		"n_discrete_choices":           1,
		"min_age":                      30,
		"n_choices":                    2,
	}.Options()
	require.ErrorIs(t, err, egm.ErrConfiguration)
	assert.Contains(t, err.Error(), "n_choices")
}

func TestValues_YAML(t *testing.T) {
	t.Parallel()

	var doc struct {
		A config.Values `yaml:"a"`
		B config.Values `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 1.5\nb: [1, 2]\n"), &doc))
	assert.Equal(t, config.Values{1.5}, doc.A)
	assert.Equal(t, config.Values{1, 2}, doc.B)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a: 1.5")
	assert.Contains(t, string(out), "- 2")

	assert.Error(t, yaml.Unmarshal([]byte("a: {x: 1}\n"), &doc))
	assert.Error(t, yaml.Unmarshal([]byte("a: abc\n"), &doc))
}
