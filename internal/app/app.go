//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ndca/internal/render"
	"ndca/pkg/engine"
)

// Game adapts an engine to the ebiten.Game interface.
type Game struct {
	eng     *engine.Engine
	painter *render.GridPainter
	timer   *FixedStep
	opts    Options

	onColor  color.Color
	offColor color.Color

	rows, cols int
	paused     bool
	tickOnce   bool
	err        error
}

// Run opens a window and drives the engine until the user quits. Only
// rank-2 grids can be painted.
func Run(eng *engine.Engine, opts Options) error {
	shape := eng.Grid().Shape()
	if len(shape) != 2 {
		return fmt.Errorf("app: GUI supports rank-2 grids, got shape %v", shape)
	}
	if opts.Scale <= 0 {
		opts.Scale = 4
	}

	g := &Game{
		eng:      eng,
		painter:  render.NewGridPainter(shape[1], shape[0]),
		timer:    NewFixedStep(opts.TPS),
		opts:     opts,
		onColor:  color.White,
		offColor: color.Black,
		rows:     shape[0],
		cols:     shape[1],
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(g.cols*opts.Scale, g.rows*opts.Scale)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Reset swaps in a freshly built engine for the provided seed.
func (g *Game) Reset(seed int64) {
	if g.opts.Rebuild == nil {
		return
	}
	eng, err := g.opts.Rebuild(seed)
	if err != nil {
		g.err = err
		return
	}
	g.eng = eng
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation on its clock.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.opts.Seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	steps := 0
	if g.tickOnce {
		steps = 1
		g.tickOnce = false
	} else if !g.paused {
		steps = g.timer.Steps()
	}
	for i := 0; i < steps; i++ {
		if err := g.eng.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the current generation plus a small status line.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.eng.Grid(), g.onColor, g.offColor, g.opts.Scale)

	status := fmt.Sprintf("gen %d  pop %d", g.eng.Generation(), g.eng.Grid().Count())
	if g.paused {
		status += "  [paused]"
	}
	ebitenutil.DebugPrint(screen, status)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cols * g.opts.Scale, g.rows * g.opts.Scale
}
