// Package rule evaluates neighborhood-expectation rules against a grid. A
// Configuration pairs expected neighbor states with the state a matching
// cell takes next; a Ruleset applies an ordered list of Configurations under
// one matching method, first match wins.
package rule

import (
	"errors"

	"ndca/pkg/grid"
	"ndca/pkg/neighborhood"
)

var (
	// ErrInvalidTolerance reports a tolerance outside [0, 1].
	ErrInvalidTolerance = errors.New("rule: tolerance must be in [0, 1]")
	// ErrNilPredicate reports a Satisfy method built without a predicate.
	ErrNilPredicate = errors.New("rule: satisfy method requires a predicate")
	// ErrDimensionMismatch reports configurations or grids of unequal rank.
	ErrDimensionMismatch = errors.New("rule: dimension mismatch")
	// ErrEmptyConfiguration reports a tolerance-matched configuration with
	// no cells; its match ratio would divide by zero.
	ErrEmptyConfiguration = errors.New("rule: tolerate requires a non-empty configuration")
)

// NextState computes a cell's next state from the grid snapshot and the
// cell's neighborhood view.
type NextState func(g *grid.Grid, n *neighborhood.Neighborhood) bool

// Predicate decides whether a configuration passes for the focus cell.
type Predicate func(g *grid.Grid, n *neighborhood.Neighborhood) bool

// Cell is one neighborhood expectation: the state the cell at Offset should
// hold for the expectation to count as a match.
type Cell struct {
	Offset   neighborhood.Offset
	Expected bool
}

// Expect builds a Cell expecting the given state at the given offset.
func Expect(state bool, offset ...int) Cell {
	return Cell{Offset: neighborhood.Offset(offset), Expected: state}
}

// Configuration owns an ordered set of neighborhood expectations and the
// next state a passing cell resolves to, either a constant or a NextState
// function.
type Configuration struct {
	cells   []Cell
	offsets []neighborhood.Offset
	state   bool
	fn      NextState
}

// NewConfiguration builds a configuration resolving to a constant next
// state.
func NewConfiguration(next bool, cells ...Cell) *Configuration {
	return build(next, nil, cells)
}

// NewConfigurationFunc builds a configuration whose next state is computed
// per cell. The expectations may carry dummy Expected values when the
// matching method ignores them (ALWAYS_PASS and SATISFY rules typically only
// need the offsets).
func NewConfigurationFunc(next NextState, cells ...Cell) *Configuration {
	return build(false, next, cells)
}

func build(state bool, fn NextState, cells []Cell) *Configuration {
	c := &Configuration{
		cells:   append([]Cell(nil), cells...),
		offsets: make([]neighborhood.Offset, len(cells)),
		state:   state,
		fn:      fn,
	}
	for i, cell := range c.cells {
		c.offsets[i] = cell.Offset
	}
	return c
}

// Rank returns the dimensionality of the configuration's offsets, or -1 for
// an empty configuration (which attaches to a grid of any rank).
func (c *Configuration) Rank() int {
	if len(c.offsets) == 0 {
		return -1
	}
	return len(c.offsets[0])
}

// Offsets returns the configured offsets in declaration order.
func (c *Configuration) Offsets() []neighborhood.Offset { return c.offsets }

// Len returns the number of expectations.
func (c *Configuration) Len() int { return len(c.cells) }

// Matches reports whether every expectation holds exactly around the focus
// cell. An empty configuration matches trivially.
func (c *Configuration) Matches(g *grid.Grid, focus int) bool {
	for _, cell := range c.cells {
		if g.Bit(g.Neighbor(focus, cell.Offset)) != cell.Expected {
			return false
		}
	}
	return true
}

// Tolerates reports whether the fraction of expectations holding around the
// focus cell is at least tolerance. Tolerance range and non-emptiness are
// enforced when the configuration joins a ruleset, not here.
func (c *Configuration) Tolerates(g *grid.Grid, focus int, tolerance float64) bool {
	matched := 0
	for _, cell := range c.cells {
		if g.Bit(g.Neighbor(focus, cell.Offset)) == cell.Expected {
			matched++
		}
	}
	return float64(matched)/float64(len(c.cells)) >= tolerance
}

// Satisfies delegates the pass decision to the caller-supplied predicate.
func (c *Configuration) Satisfies(g *grid.Grid, focus int, p Predicate) bool {
	return p(g, neighborhood.At(g, focus, c.offsets))
}

// Passes applies the method's pass test and, on success, resolves the next
// state. ok is false when the configuration does not pass.
func (c *Configuration) Passes(g *grid.Grid, focus int, m Method) (next bool, ok bool) {
	switch m.kind {
	case methodMatch:
		if !c.Matches(g, focus) {
			return false, false
		}
	case methodTolerate:
		if !c.Tolerates(g, focus, m.tolerance) {
			return false, false
		}
	case methodSatisfy:
		n := neighborhood.At(g, focus, c.offsets)
		if !m.predicate(g, n) {
			return false, false
		}
		return c.resolve(g, n), true
	case methodAlwaysPass:
	}
	return c.resolveAt(g, focus), true
}

// resolveAt produces the next state once a configuration has passed. The
// neighborhood view is only built when the next state is a function, so
// constant configurations stay allocation-free on the hot path.
func (c *Configuration) resolveAt(g *grid.Grid, focus int) bool {
	if c.fn == nil {
		return c.state
	}
	return c.fn(g, neighborhood.At(g, focus, c.offsets))
}

// resolve is resolveAt with a neighborhood the caller already built.
func (c *Configuration) resolve(g *grid.Grid, n *neighborhood.Neighborhood) bool {
	if c.fn == nil {
		return c.state
	}
	return c.fn(g, n)
}
