package render

import (
	"image/color"

	"ndca/pkg/grid"
)

// fillGridRGBA paints one RGBA pixel per cell into buf, reading the grid's
// bits directly so no intermediate snapshot is allocated per frame.
func fillGridRGBA(buf []byte, g *grid.Grid, on, off color.Color) {
	onPx := pixel(on)
	offPx := pixel(off)
	for i, size := 0, g.Size(); i < size; i++ {
		px := offPx
		if g.Bit(i) {
			px = onPx
		}
		copy(buf[i*4:], px[:])
	}
}

func pixel(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
