package rule

import (
	"runtime"
	"sync"

	"ndca/pkg/grid"
	"ndca/pkg/neighborhood"
)

// Grids below this cell count are applied serially; goroutine fan-out costs
// more than it saves.
const parallelThreshold = 1 << 14

type methodKind uint8

const (
	methodMatch methodKind = iota
	methodTolerate
	methodSatisfy
	methodAlwaysPass
)

// Method selects the pass test a ruleset applies uniformly to its
// configurations. It is a tagged variant: Tolerate carries its threshold and
// Satisfy its predicate, so no per-tick arguments exist.
type Method struct {
	kind      methodKind
	tolerance float64
	predicate Predicate
}

// Match passes only when every expectation holds exactly.
func Match() Method { return Method{kind: methodMatch} }

// Tolerate passes when the fraction of holding expectations reaches t.
// t must be in [0, 1]; Tolerate(1) behaves exactly like Match.
func Tolerate(t float64) Method { return Method{kind: methodTolerate, tolerance: t} }

// Satisfy passes when the supplied predicate does.
func Satisfy(p Predicate) Method { return Method{kind: methodSatisfy, predicate: p} }

// AlwaysPass passes unconditionally. Rules of the form "every cell's next
// state is one formula of its neighborhood" are a single AlwaysPass
// configuration with a NextState function.
func AlwaysPass() Method { return Method{kind: methodAlwaysPass} }

func (m Method) validate() error {
	switch m.kind {
	case methodTolerate:
		if m.tolerance < 0 || m.tolerance > 1 {
			return ErrInvalidTolerance
		}
	case methodSatisfy:
		if m.predicate == nil {
			return ErrNilPredicate
		}
	}
	return nil
}

// Ruleset is an ordered, method-tagged collection of configurations. Order
// is significant: the first passing configuration decides a cell's next
// state and later ones are never consulted.
type Ruleset struct {
	method  Method
	configs []*Configuration
	rank    int
}

// New constructs an empty ruleset. The method is fixed for the ruleset's
// lifetime; its arguments are validated here, once, rather than per cell.
func New(m Method) (*Ruleset, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &Ruleset{method: m, rank: -1}, nil
}

// Add appends a configuration. Every configuration in a ruleset must share
// one rank, and tolerance-matched configurations must be non-empty; both are
// rejected here, at attachment time, never at tick time.
func (r *Ruleset) Add(c *Configuration) error {
	if r.method.kind == methodTolerate && c.Len() == 0 {
		return ErrEmptyConfiguration
	}
	if cr := c.Rank(); cr >= 0 {
		if r.rank >= 0 && cr != r.rank {
			return ErrDimensionMismatch
		}
		r.rank = cr
	}
	r.configs = append(r.configs, c)
	return nil
}

// Rank returns the dimensionality the ruleset is bound to, or -1 while no
// added configuration has pinned one.
func (r *Ruleset) Rank() int { return r.rank }

// Len returns the number of configurations.
func (r *Ruleset) Len() int { return len(r.configs) }

// Apply computes the next grid from the current one. It is a pure function:
// the input grid is never written, every cell's next state is derived from
// the input alone, and results land in a private output buffer. A cell with
// no passing configuration keeps its current state.
func (r *Ruleset) Apply(g *grid.Grid) (*grid.Grid, error) {
	if r.rank >= 0 && r.rank != g.Rank() {
		return nil, ErrDimensionMismatch
	}

	next := g.Clone()
	if len(r.configs) == 0 {
		return next, nil
	}

	eval := r.evaluator(g)
	size := g.Size()
	if size < parallelThreshold {
		applyRange(g, next, eval, 0, size)
		return next, nil
	}

	// Chunk starts are multiples of 64 so no two workers ever touch the
	// same output word.
	workers := runtime.GOMAXPROCS(0)
	chunk := (size/workers + 64) &^ 63
	var wg sync.WaitGroup
	for start := 0; start < size; start += chunk {
		end := start + chunk
		if end > size {
			end = size
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			applyRange(g, next, eval, start, end)
		}(start, end)
	}
	wg.Wait()
	return next, nil
}

func applyRange(g, next *grid.Grid, eval func(focus int) (bool, bool), start, end int) {
	for i := start; i < end; i++ {
		if state, ok := eval(i); ok && state != g.Bit(i) {
			next.SetBit(i, state)
		}
	}
}

// evaluator dispatches on the method once per Apply and returns the per-cell
// evaluation: configurations in declaration order, first pass wins.
func (r *Ruleset) evaluator(g *grid.Grid) func(focus int) (bool, bool) {
	// Count-only rules (one AlwaysPass configuration computing its state
	// from the neighborhood) get their totals in one batch pass.
	if r.method.kind == methodAlwaysPass && len(r.configs) == 1 {
		if c := r.configs[0]; c.fn != nil && len(c.offsets) > 0 {
			totals := neighborhood.Totals(g, c.offsets)
			return func(focus int) (bool, bool) {
				n := neighborhood.WithTotal(g, focus, c.offsets, totals[focus])
				return c.resolve(g, n), true
			}
		}
	}

	return func(focus int) (bool, bool) {
		for _, c := range r.configs {
			if state, ok := c.Passes(g, focus, r.method); ok {
				return state, true
			}
		}
		return false, false
	}
}
