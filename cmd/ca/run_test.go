package main

import (
	"strings"
	"testing"
)

func resetRunFlags(t *testing.T) {
	t.Helper()
	saved := runFlags
	t.Cleanup(func() { runFlags = saved })
}

func TestRunRejectsWatchWithSteps(t *testing.T) {
	resetRunFlags(t)
	runFlags.watch = true
	runFlags.steps = 5

	err := runSimulation(runCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "--watch") {
		t.Fatalf("err = %v, want a --watch rejection", err)
	}
}

func TestRunRejectsWatchWithGUI(t *testing.T) {
	resetRunFlags(t)
	runFlags.watch = true
	runFlags.gui = true

	err := runSimulation(runCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "--watch") {
		t.Fatalf("err = %v, want a --watch rejection", err)
	}
}
