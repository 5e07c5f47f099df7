package app

import "time"

// A stalled frame (window drag, debugger pause) must not trigger a burst of
// catch-up ticks; anything beyond this many owed steps is dropped.
const maxCatchUp = 4

// FixedStep converts wall-clock time into whole simulation ticks so the
// tick rate stays steady regardless of the frame rate of the loop driving
// it.
type FixedStep struct {
	interval time.Duration
	carry    time.Duration
	last     time.Time
}

// NewFixedStep constructs a controller targeting the given TPS. The first
// Steps call reports at least one tick, so a fresh simulation moves
// immediately.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.carry = fs.interval
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 10
	}
	f.interval = time.Second / time.Duration(tps)
}

// Steps returns how many whole ticks have come due since the previous call.
// Time left over carries into the next call; time beyond the catch-up cap
// is discarded.
func (f *FixedStep) Steps() int {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	f.carry += now.Sub(f.last)
	f.last = now

	steps := int(f.carry / f.interval)
	if steps <= 0 {
		return 0
	}
	if steps > maxCatchUp {
		f.carry = 0
		return maxCatchUp
	}
	f.carry -= time.Duration(steps) * f.interval
	return steps
}
