package app

import (
	"testing"
	"time"
)

func TestFixedStepFirstCallSteps(t *testing.T) {
	fs := NewFixedStep(10)
	if fs.Steps() < 1 {
		t.Fatal("a fresh controller should allow an immediate step")
	}
}

func TestFixedStepPacesSteps(t *testing.T) {
	fs := NewFixedStep(20) // 50ms per tick
	fs.Steps()
	if fs.Steps() != 0 {
		t.Fatal("stepped again with no time elapsed")
	}
	time.Sleep(60 * time.Millisecond)
	if fs.Steps() < 1 {
		t.Fatal("did not step after a full interval elapsed")
	}
}

func TestFixedStepCapsCatchUp(t *testing.T) {
	fs := NewFixedStep(1000) // 1ms per tick
	fs.Steps()
	time.Sleep(50 * time.Millisecond)

	if got := fs.Steps(); got > maxCatchUp {
		t.Fatalf("Steps after a stall = %d, want at most %d", got, maxCatchUp)
	}
	// The backlog is dropped with the cap, not replayed on the next call.
	if got := fs.Steps(); got > 1 {
		t.Fatalf("Steps immediately after catch-up = %d, want the backlog gone", got)
	}
}

func TestSetTPSRejectsNonPositive(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.interval <= 0 {
		t.Fatalf("interval = %v after defaulting", fs.interval)
	}
}
