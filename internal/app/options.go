// Package app adapts a simulation engine to the ebiten game loop. Builds
// without the ebiten tag get a stub that reports the GUI as unavailable.
package app

import "ndca/pkg/engine"

// Options configures the GUI driver.
type Options struct {
	Title string
	Scale int
	TPS   int
	Seed  int64

	// Rebuild constructs a fresh engine for the given seed; the R and S
	// keys use it to restart the simulation.
	Rebuild func(seed int64) (*engine.Engine, error)
}
