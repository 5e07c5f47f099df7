//go:build !ebiten

package app

import (
	"errors"

	"ndca/pkg/engine"
)

// ErrNoGUI reports a GUI request against a binary built without the ebiten
// tag.
var ErrNoGUI = errors.New("app: GUI requires building with the 'ebiten' tag")

// Run reports that the GUI build tag is missing.
func Run(*engine.Engine, Options) error { return ErrNoGUI }
