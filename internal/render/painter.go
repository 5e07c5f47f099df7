//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"ndca/pkg/grid"
)

// GridPainter updates a single RGBA image from a rank-2 grid each frame.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid with h rows and w columns.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the grid into the painter image and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *grid.Grid, on, off color.Color, scale int) {
	if g.Size() != gp.w*gp.h {
		return
	}
	fillGridRGBA(gp.buf, g, on, off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
