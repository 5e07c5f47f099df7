// Package grid provides a bit-packed N-dimensional toroidal array of cell
// states. Coordinates wrap modulo each dimension, so the grid has no edges:
// (-1, -1) on a 5x5 grid is the same cell as (4, 4).
package grid

import (
	"errors"
	"math/bits"
	"math/rand/v2"
)

// ErrInvalidShape reports a grid shape with a non-positive dimension.
var ErrInvalidShape = errors.New("grid: shape dimensions must be positive")

// Grid is an N-dimensional toroidal array of boolean cell states packed into
// 64-bit words. Cells are addressed either by coordinate (one component per
// dimension) or by flat row-major index.
type Grid struct {
	shape   []int
	strides []int
	size    int
	words   []uint64
}

// New allocates an all-false grid with the given shape. The number of shape
// components is the grid's rank; every component must be positive.
func New(shape ...int) (*Grid, error) {
	if len(shape) == 0 {
		return nil, ErrInvalidShape
	}
	size := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, ErrInvalidShape
		}
		size *= d
	}

	// Row-major strides: stride[i] = product of shape[i+1:].
	strides := make([]int, len(shape))
	prod := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = prod
		prod *= shape[i]
	}

	return &Grid{
		shape:   append([]int(nil), shape...),
		strides: strides,
		size:    size,
		words:   make([]uint64, (size+63)/64),
	}, nil
}

// Shape returns a copy of the grid's dimension sizes.
func (g *Grid) Shape() []int { return append([]int(nil), g.shape...) }

// Rank returns the number of dimensions.
func (g *Grid) Rank() int { return len(g.shape) }

// Size returns the total cell count (the product of the shape).
func (g *Grid) Size() int { return g.size }

// Bit reports the state of the cell at flat index i. The index must be in
// [0, Size); use Flatten or Neighbor to produce canonical indices.
func (g *Grid) Bit(i int) bool {
	return g.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// SetBit assigns the state of the cell at flat index i.
func (g *Grid) SetBit(i int, v bool) {
	if v {
		g.words[i>>6] |= 1 << (uint(i) & 63)
		return
	}
	g.words[i>>6] &^= 1 << (uint(i) & 63)
}

// Get reports the state of the cell at the given coordinate. Each component
// wraps modulo its own dimension, so any integer coordinate is valid.
func (g *Grid) Get(coord []int) bool { return g.Bit(g.Flatten(coord)) }

// Set assigns the state of the cell at the given coordinate, wrapping each
// component modulo its own dimension.
func (g *Grid) Set(coord []int, v bool) { g.SetBit(g.Flatten(coord), v) }

// Flatten converts a coordinate to its flat row-major index. Components are
// canonicalized per dimension first, so the result is always in [0, Size).
// The coordinate's rank must match the grid's.
func (g *Grid) Flatten(coord []int) int {
	if len(coord) != len(g.shape) {
		panic("grid: coordinate rank does not match grid rank")
	}
	idx := 0
	for d, c := range coord {
		n := g.shape[d]
		c %= n
		if c < 0 {
			c += n
		}
		idx += c * g.strides[d]
	}
	return idx
}

// Unflatten converts a flat index in [0, Size) back to its coordinate. It is
// the inverse of Flatten over canonical coordinates.
func (g *Grid) Unflatten(i int) []int {
	coord := make([]int, len(g.shape))
	for d, stride := range g.strides {
		coord[d] = i / stride
		i %= stride
	}
	return coord
}

// Neighbor returns the flat index of the cell at focus plus the given offset,
// wrapping each component modulo its own dimension. It allocates nothing and
// is the hot path of neighborhood enumeration.
func (g *Grid) Neighbor(focus int, offset []int) int {
	idx := 0
	for d, stride := range g.strides {
		n := g.shape[d]
		c := focus/stride + offset[d]
		focus %= stride
		c %= n
		if c < 0 {
			c += n
		}
		idx += c * stride
	}
	return idx
}

// Randomize sets every cell to an independent uniformly random state.
func (g *Grid) Randomize(rng *rand.Rand) {
	for i := range g.words {
		g.words[i] = rng.Uint64()
	}
	g.maskTail()
}

// Clear sets every cell to false.
func (g *Grid) Clear() {
	for i := range g.words {
		g.words[i] = 0
	}
}

// Clone returns a deep copy sharing no storage with the receiver. Rulesets
// use it to build the next-state buffer.
func (g *Grid) Clone() *Grid {
	clone := *g
	clone.shape = append([]int(nil), g.shape...)
	clone.strides = append([]int(nil), g.strides...)
	clone.words = append([]uint64(nil), g.words...)
	return &clone
}

// Count returns the number of live cells.
func (g *Grid) Count() int {
	total := 0
	for _, w := range g.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// Snapshot copies the grid into a 0/1 byte per cell, flat row-major. Display
// layers consume this; it is never used for simulation.
func (g *Grid) Snapshot() []uint8 {
	cells := make([]uint8, g.size)
	for i := range cells {
		if g.Bit(i) {
			cells[i] = 1
		}
	}
	return cells
}

// Unused bits past Size in the last word stay zero so Count can be a
// straight popcount.
func (g *Grid) maskTail() {
	if rem := uint(g.size) & 63; rem != 0 {
		g.words[len(g.words)-1] &= (1 << rem) - 1
	}
}
