// Package neighborhood enumerates relative cell offsets (Moore, von Neumann,
// or custom sets) and aggregates the states found at those offsets around a
// focus cell.
package neighborhood

import (
	"errors"

	"ndca/pkg/grid"
)

// ErrDimensionMismatch reports offsets whose rank disagrees with each other
// or with the grid they are applied to.
var ErrDimensionMismatch = errors.New("neighborhood: offset rank mismatch")

// Offset is a relative coordinate from a focus cell, one signed component
// per dimension.
type Offset []int

// IsZero reports whether every component is zero.
func (o Offset) IsZero() bool {
	for _, c := range o {
		if c != 0 {
			return false
		}
	}
	return true
}

// Moore returns the 3^rank - 1 offsets within distance one of the focus on
// every axis, excluding the focus itself. The order is deterministic:
// odometer order with the last axis varying fastest.
func Moore(rank int) []Offset {
	if rank <= 0 {
		return nil
	}
	offsets := make([]Offset, 0, pow3(rank)-1)
	cur := make([]int, rank)
	for i := range cur {
		cur[i] = -1
	}
	for {
		o := make(Offset, rank)
		copy(o, cur)
		if !o.IsZero() {
			offsets = append(offsets, o)
		}

		// Advance the odometer; done once every digit has wrapped.
		d := rank - 1
		for ; d >= 0; d-- {
			cur[d]++
			if cur[d] <= 1 {
				break
			}
			cur[d] = -1
		}
		if d < 0 {
			return offsets
		}
	}
}

// VonNeumann returns the 2*rank face-adjacent unit offsets: ±1 on exactly
// one axis.
func VonNeumann(rank int) []Offset {
	if rank <= 0 {
		return nil
	}
	offsets := make([]Offset, 0, 2*rank)
	for d := 0; d < rank; d++ {
		for _, step := range [2]int{-1, 1} {
			o := make(Offset, rank)
			o[d] = step
			offsets = append(offsets, o)
		}
	}
	return offsets
}

// Custom validates a user-supplied offset set: every offset must share the
// same rank. The returned slice is a copy.
func Custom(offsets []Offset) ([]Offset, error) {
	if len(offsets) == 0 {
		return nil, nil
	}
	rank := len(offsets[0])
	out := make([]Offset, len(offsets))
	for i, o := range offsets {
		if len(o) != rank {
			return nil, ErrDimensionMismatch
		}
		out[i] = append(Offset(nil), o...)
	}
	return out, nil
}

// Total counts the live cells at the given offsets relative to focus, with
// toroidal wraparound. It is the reference aggregation every batching
// strategy must agree with.
func Total(g *grid.Grid, focus int, offsets []Offset) int {
	total := 0
	for _, o := range offsets {
		if g.Bit(g.Neighbor(focus, o)) {
			total++
		}
	}
	return total
}

// Totals computes Total for every cell of the grid in one pass. Rulesets use
// it to prime count-only neighborhoods in batch.
func Totals(g *grid.Grid, offsets []Offset) []int {
	totals := make([]int, g.Size())
	for _, o := range offsets {
		for i := range totals {
			if g.Bit(g.Neighbor(i, o)) {
				totals[i]++
			}
		}
	}
	return totals
}

// Neighborhood is an ephemeral per-cell view of the cells at a configured
// offset set, valid only while the underlying grid is quiescent. States and
// the live total are computed lazily on first use.
type Neighborhood struct {
	grid    *grid.Grid
	focus   int
	offsets []Offset

	total    int
	hasTotal bool
	states   []bool
}

// At builds a lazy neighborhood view around the focus cell.
func At(g *grid.Grid, focus int, offsets []Offset) *Neighborhood {
	return &Neighborhood{grid: g, focus: focus, offsets: offsets}
}

// WithTotal builds a neighborhood whose live total was already computed in
// batch, so Total costs nothing.
func WithTotal(g *grid.Grid, focus int, offsets []Offset, total int) *Neighborhood {
	return &Neighborhood{grid: g, focus: focus, offsets: offsets, total: total, hasTotal: true}
}

// Focus returns the flat index of the focus cell.
func (n *Neighborhood) Focus() int { return n.focus }

// Offsets returns the offset set the neighborhood was built over.
func (n *Neighborhood) Offsets() []Offset { return n.offsets }

// Total returns the number of live cells at the configured offsets.
func (n *Neighborhood) Total() int {
	if !n.hasTotal {
		n.total = Total(n.grid, n.focus, n.offsets)
		n.hasTotal = true
	}
	return n.total
}

// States returns the actual cell states at the configured offsets, in offset
// order.
func (n *Neighborhood) States() []bool {
	if n.states == nil {
		n.states = make([]bool, len(n.offsets))
		for i, o := range n.offsets {
			n.states[i] = n.grid.Bit(n.grid.Neighbor(n.focus, o))
		}
	}
	return n.states
}

func pow3(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 3
	}
	return p
}
