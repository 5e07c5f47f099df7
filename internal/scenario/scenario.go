// Package scenario loads simulation setups from YAML files: grid shape,
// rule, seeding and display hints in one document.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ndca/pkg/engine"
	"ndca/pkg/grid"
	"ndca/pkg/notation"
	"ndca/pkg/rules"
)

// ErrInvalidScenario reports a scenario document that cannot build a
// simulation.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Scenario describes one simulation setup.
type Scenario struct {
	Name   string  `yaml:"name"`
	Shape  []int   `yaml:"shape"`
	Rule   string  `yaml:"rule"`
	Seed   int64   `yaml:"seed"`
	Random bool    `yaml:"random"`
	Cells  [][]int `yaml:"cells"`
	TPS    int     `yaml:"tps"`
	Scale  int     `yaml:"scale"`
}

// Default returns the scenario used when no file is given: random life on a
// 100x100 torus.
func Default() *Scenario {
	return &Scenario{
		Name:   "life",
		Shape:  []int{100, 100},
		Rule:   "life",
		Seed:   1,
		Random: true,
		TPS:    10,
		Scale:  4,
	}
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %q: %w", path, err)
	}
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) validate() error {
	if len(s.Shape) == 0 {
		return fmt.Errorf("%w: missing shape", ErrInvalidScenario)
	}
	for _, d := range s.Shape {
		if d <= 0 {
			return fmt.Errorf("%w: shape %v", ErrInvalidScenario, s.Shape)
		}
	}
	if s.Rule == "" {
		return fmt.Errorf("%w: missing rule", ErrInvalidScenario)
	}
	for _, c := range s.Cells {
		if len(c) != len(s.Shape) {
			return fmt.Errorf("%w: cell %v does not match shape %v", ErrInvalidScenario, c, s.Shape)
		}
	}
	if s.TPS <= 0 {
		s.TPS = 10
	}
	if s.Scale <= 0 {
		s.Scale = 4
	}
	return nil
}

// Build assembles the scenario into a ready engine: grid allocated and
// seeded, rule resolved by registry name first, then as notation.
func (s *Scenario) Build() (*engine.Engine, error) {
	g, err := grid.New(s.Shape...)
	if err != nil {
		return nil, err
	}
	if s.Random {
		g.Randomize(grid.NewRNG(s.Seed))
	}
	for _, c := range s.Cells {
		g.Set(c, true)
	}

	rs, err := rules.New(s.Rule, s.Shape)
	if errors.Is(err, rules.ErrUnknownRule) {
		r, perr := notation.Parse(s.Rule)
		if perr != nil {
			return nil, fmt.Errorf("%w: rule %q is neither registered nor valid notation", ErrInvalidScenario, s.Rule)
		}
		rs, err = r.Ruleset(len(s.Shape))
	}
	if err != nil {
		return nil, err
	}
	return engine.New(g, rs)
}
