// SPDX-License-Identifier: MIT
// Package config loads model parameters and options from YAML into the typed
// egm.Params and egm.Options.
//
// Parameters are a (category, name) table; every entry holds a scalar or a
// sequence (the wage equation). Options are integers. Required keys are
// checked here, once, so the solver never looks a key up at run time.
//
//	params:
//	  assets:  {interest_rate: 0.05, consumption_floor: 0.001, max_wealth: 75}
//	  shocks:  {sigma: 0.35, lambda: 1.0e-5}
//	  beta:    {beta: 0.95}
//	  delta:   {delta: 0.35}
//	  utility: {theta: 1.95}
//	  wage:    {value: [0.75, 0.04, -0.0002]}
//	options:
//	  n_periods: 25
//	  min_age: 20
//	  n_discrete_choices: 2
//	  grid_points_wealth: 100
//	  quadrature_points_stochastic: 5
//	  n_exog_processes: 1
//	quadrature:               # optional
//	  method: gauss-hermite   # or monte-carlo
//	  seed: 0
//
// JSON is a subset of YAML, so Parse also accepts the same document as JSON.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dcegm/egm"
	"github.com/katalvlaran/dcegm/quadrature"
)

// Config is the on-disk configuration shape.
type Config struct {
	Params     map[string]map[string]Values `yaml:"params" json:"params"`
	Options    OptionTable                  `yaml:"options" json:"options"`
	Quadrature QuadratureConfig             `yaml:"quadrature" json:"quadrature"`
}

// QuadratureConfig selects the shock integration scheme. The number of
// points is options.quadrature_points_stochastic.
type QuadratureConfig struct {
	Method string `yaml:"method" json:"method"`
	Seed   uint64 `yaml:"seed" json:"seed"`
}

// Load reads, parses and validates the file at path.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return c, nil
}

// LoadUnchecked reads and parses the file at path without validating it.
// Useful for printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseUnchecked(raw)
}

// Parse parses and validates a YAML or JSON document.
func Parse(raw []byte) (*Config, error) {
	c, err := ParseUnchecked(raw)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// ParseUnchecked parses a YAML or JSON document without validating it.
// Syntax errors are reported as egm.ErrConfiguration.
func ParseUnchecked(raw []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", egm.ErrConfiguration, err)
	}

	return &c, nil
}

// Validate checks that both tables convert and that the keys the retirement
// model needs on top of the core are present.
//
// Errors: egm.ErrConfiguration naming the offending key.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", egm.ErrConfiguration)
	}
	p, err := c.ParamsTable().Params()
	if err != nil {
		return err
	}
	o, err := c.Options.Options()
	if err != nil {
		return err
	}
	if err := o.ValidateHorizon(); err != nil {
		return err
	}

	t := c.ParamsTable()
	required := []Key{{"assets", "max_wealth"}, {"utility", "theta"}, {"delta", "delta"}}
	if o.NDiscreteChoices >= 2 {
		required = append(required, Key{"shocks", "lambda"})
	}
	for _, k := range required {
		if _, ok := t[k]; !ok {
			return fmt.Errorf("%w: missing parameter %s", egm.ErrConfiguration, k)
		}
	}
	if p.Assets.MaxWealth <= 0 {
		return fmt.Errorf("%w: assets.max_wealth must be > 0", egm.ErrConfiguration)
	}
	if p.Utility.Theta <= 0 {
		return fmt.Errorf("%w: utility.theta must be > 0", egm.ErrConfiguration)
	}
	if o.NDiscreteChoices >= 2 && p.Shocks.Lambda <= 0 {
		return fmt.Errorf("%w: shocks.lambda must be > 0", egm.ErrConfiguration)
	}
	if _, err := c.Scheme(o); err != nil {
		return fmt.Errorf("%w: %w", egm.ErrConfiguration, err)
	}

	return nil
}

// ParamsTable flattens the nested params section into a (category, name)
// table.
func (c *Config) ParamsTable() Table {
	t := make(Table)
	for cat, names := range c.Params {
		for name, v := range names {
			t[Key{Category: cat, Name: name}] = v
		}
	}

	return t
}

// Resolve converts both tables.
func (c *Config) Resolve() (*egm.Params, egm.Options, error) {
	p, err := c.ParamsTable().Params()
	if err != nil {
		return nil, egm.Options{}, err
	}
	o, err := c.Options.Options()
	if err != nil {
		return nil, egm.Options{}, err
	}

	return p, o, nil
}

// Scheme builds the quadrature scheme for o.
func (c *Config) Scheme(o egm.Options) (quadrature.Scheme, error) {
	return quadrature.New(c.Quadrature.Method, o.QuadraturePointsStochastic, c.Quadrature.Seed)
}

// Key addresses one parameter.
type Key struct {
	Category string
	Name     string
}

// String returns "category.name".
func (k Key) String() string { return k.Category + "." + k.Name }

// Values holds one parameter: a scalar is a one-element Values.
type Values []float64

// UnmarshalYAML accepts a scalar or a sequence of numbers.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*v = Values{f}
	case yaml.SequenceNode:
		var fs []float64
		if err := node.Decode(&fs); err != nil {
			return err
		}
		*v = fs
	default:
		return fmt.Errorf("line %d: parameter must be a number or a list of numbers", node.Line)
	}

	return nil
}

// MarshalYAML writes a one-element Values as a scalar.
func (v Values) MarshalYAML() (interface{}, error) {
	if len(v) == 1 {
		return v[0], nil
	}

	return []float64(v), nil
}

// Table is the (category, name) parameter table.
type Table map[Key]Values

// Params converts the table, validating once.
//
// Required: assets.interest_rate, shocks.sigma, beta.beta, wage.value.
// Optional (zero when absent): assets.consumption_floor, assets.max_wealth,
// shocks.lambda, utility.theta, delta.delta.
//
// Errors: egm.ErrConfiguration naming the missing or malformed key.
func (t Table) Params() (*egm.Params, error) {
	var err error
	scalar := func(cat, name string, required bool) float64 {
		if err != nil {
			return 0
		}
		k := Key{cat, name}
		v, ok := t[k]
		switch {
		case !ok && required:
			err = fmt.Errorf("%w: missing parameter %s", egm.ErrConfiguration, k)
		case !ok:
			return 0
		case len(v) != 1:
			err = fmt.Errorf("%w: parameter %s must be a scalar, got %d values", egm.ErrConfiguration, k, len(v))
		default:
			return v[0]
		}
		return 0
	}

	p := &egm.Params{
		Assets: egm.Assets{
			InterestRate:     scalar("assets", "interest_rate", true),
			ConsumptionFloor: scalar("assets", "consumption_floor", false),
			MaxWealth:        scalar("assets", "max_wealth", false),
		},
		Shocks: egm.Shocks{
			Sigma:  scalar("shocks", "sigma", true),
			Lambda: scalar("shocks", "lambda", false),
		},
		Beta: scalar("beta", "beta", true),
		Utility: egm.UtilityParams{
			Theta: scalar("utility", "theta", false),
			Delta: scalar("delta", "delta", false),
		},
	}
	if err != nil {
		return nil, err
	}
	wage, ok := t[Key{"wage", "value"}]
	if !ok {
		return nil, fmt.Errorf("%w: missing parameter wage.value", egm.ErrConfiguration)
	}
	p.Wage = append([]float64(nil), wage...)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// OptionTable is the integer option table.
type OptionTable map[string]int

var (
	requiredOptions = []string{"grid_points_wealth", "quadrature_points_stochastic", "n_discrete_choices", "min_age"}
	knownOptions    = map[string]bool{
		"grid_points_wealth": true, "quadrature_points_stochastic": true, "n_discrete_choices": true,
		"min_age": true, "n_periods": true, "n_exog_processes": true,
	}
)

// Options converts the table. n_periods and n_exog_processes are optional
// here; unknown keys are rejected.
//
// Errors: egm.ErrConfiguration.
func (t OptionTable) Options() (egm.Options, error) {
	for _, k := range requiredOptions {
		if _, ok := t[k]; !ok {
			return egm.Options{}, fmt.Errorf("%w: missing option %s", egm.ErrConfiguration, k)
		}
	}
	var unknown []string
	for k := range t {
		if !knownOptions[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return egm.Options{}, fmt.Errorf("%w: unknown options %v", egm.ErrConfiguration, unknown)
	}

	o := egm.Options{
		GridPointsWealth:           t["grid_points_wealth"],
		QuadraturePointsStochastic: t["quadrature_points_stochastic"],
		NDiscreteChoices:           t["n_discrete_choices"],
		MinAge:                     t["min_age"],
		NPeriods:                   t["n_periods"],
		NExogProcesses:             t["n_exog_processes"],
	}
	if err := o.Validate(); err != nil {
		return egm.Options{}, err
	}

	return o, nil
}
