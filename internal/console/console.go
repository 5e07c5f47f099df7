// Package console renders grid snapshots as text for headless runs.
package console

import (
	"fmt"
	"io"
	"strings"

	"ndca/pkg/grid"
)

const (
	liveRune = '█'
	deadRune = '·'
)

// Render writes a textual view of the grid. Rank-1 grids render as a single
// line, rank-2 grids as a block; higher ranks fall back to a population
// summary, which is all a terminal can honestly show of a 100^3 torus.
func Render(w io.Writer, g *grid.Grid) {
	shape := g.Shape()
	var b strings.Builder
	switch len(shape) {
	case 1:
		for x := 0; x < shape[0]; x++ {
			b.WriteRune(cell(g.Get([]int{x})))
		}
		b.WriteByte('\n')
	case 2:
		for r := 0; r < shape[0]; r++ {
			for c := 0; c < shape[1]; c++ {
				b.WriteRune(cell(g.Get([]int{r, c})))
			}
			b.WriteByte('\n')
		}
	default:
		fmt.Fprintf(&b, "shape %v: %d of %d cells alive\n", shape, g.Count(), g.Size())
	}
	io.WriteString(w, b.String())
}

// Clear emits the ANSI sequence that repositions the cursor at the top left
// and wipes the screen, so successive frames overdraw in place.
func Clear(w io.Writer) {
	io.WriteString(w, "\x1b[2J\x1b[H")
}

func cell(alive bool) rune {
	if alive {
		return liveRune
	}
	return deadRune
}
