// Package engine drives repeated ruleset application over a grid. The engine
// owns the current generation; each tick computes the whole next generation
// from it and swaps at the tick boundary, so no caller ever observes a
// half-updated grid.
package engine

import (
	"context"
	"time"

	"ndca/pkg/grid"
	"ndca/pkg/rule"
)

// Engine advances a grid through discrete ticks of one ruleset.
type Engine struct {
	grid       *grid.Grid
	rules      *rule.Ruleset
	generation int
}

// New binds a grid to a ruleset. Binding is the attachment point for
// dimension checks: a ruleset pinned to a different rank than the grid is
// rejected here, before any tick runs.
func New(g *grid.Grid, rs *rule.Ruleset) (*Engine, error) {
	if r := rs.Rank(); r >= 0 && r != g.Rank() {
		return nil, rule.ErrDimensionMismatch
	}
	return &Engine{grid: g, rules: rs}, nil
}

// Grid returns the current generation. It is logically immutable until the
// next Tick call; display layers may read it freely between ticks.
func (e *Engine) Grid() *grid.Grid { return e.grid }

// Generation returns the number of completed ticks.
func (e *Engine) Generation() int { return e.generation }

// Tick advances the simulation by one generation. The next grid is fully
// computed before it replaces the current one.
func (e *Engine) Tick() error {
	next, err := e.rules.Apply(e.grid)
	if err != nil {
		return err
	}
	e.grid = next
	e.generation++
	return nil
}

// Run drives ticks consecutive ticks, invoking onTick with the post-tick
// grid after each. A negative ticks runs until ctx is cancelled.
// Cancellation is checked once per tick boundary; a tick in progress always
// completes.
func (e *Engine) Run(ctx context.Context, ticks int, onTick func(*grid.Grid)) error {
	for i := 0; ticks < 0 || i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Tick(); err != nil {
			return err
		}
		if onTick != nil {
			onTick(e.grid)
		}
	}
	return nil
}

// RunClock ticks at the given interval until ctx is cancelled, invoking
// onTick after each generation. Display drivers use it as their animation
// loop.
func (e *Engine) RunClock(ctx context.Context, interval time.Duration, onTick func(*grid.Grid)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := e.Tick(); err != nil {
				return err
			}
			if onTick != nil {
				onTick(e.grid)
			}
		}
	}
}
