package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"ndca/pkg/grid"
	"ndca/pkg/neighborhood"
	"ndca/pkg/rule"
)

func lifeRuleset(t *testing.T) *rule.Ruleset {
	t.Helper()
	offsets := neighborhood.Moore(2)
	cells := make([]rule.Cell, len(offsets))
	for i, o := range offsets {
		cells[i] = rule.Cell{Offset: o}
	}
	next := func(g *grid.Grid, n *neighborhood.Neighborhood) bool {
		total := n.Total()
		if g.Bit(n.Focus()) {
			return total == 2 || total == 3
		}
		return total == 3
	}
	rs, err := rule.New(rule.AlwaysPass())
	if err != nil {
		t.Fatal(err)
	}
	if err := rs.Add(rule.NewConfigurationFunc(next, cells...)); err != nil {
		t.Fatal(err)
	}
	return rs
}

func TestNewRejectsRankMismatch(t *testing.T) {
	g, err := grid.New(4, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(g, lifeRuleset(t)); !errors.Is(err, rule.ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestGliderTranslatesAfterFourTicks(t *testing.T) {
	g, err := grid.New(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	glider := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	for _, c := range glider {
		g.Set([]int{c[0], c[1]}, true)
	}

	e, err := New(g, lifeRuleset(t))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if err := e.Tick(); err != nil {
			t.Fatal(err)
		}
	}

	// The glider period is 4; it reappears shifted by (1,1) on the torus.
	want := map[[2]int]bool{}
	for _, c := range glider {
		want[[2]int{(c[0] + 1) % 5, (c[1] + 1) % 5}] = true
	}
	out := e.Grid()
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			alive := out.Get([]int{r, c})
			if alive != want[[2]int{r, c}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", r, c, alive, want[[2]int{r, c}])
			}
		}
	}
	if e.Generation() != 4 {
		t.Fatalf("Generation = %d, want 4", e.Generation())
	}
}

func TestRunInvokesCallbackPerTick(t *testing.T) {
	g, err := grid.New(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	g.Randomize(grid.NewRNG(1))

	e, err := New(g, lifeRuleset(t))
	if err != nil {
		t.Fatal(err)
	}

	var snapshots int
	err = e.Run(context.Background(), 10, func(cur *grid.Grid) {
		snapshots++
		if cur != e.Grid() {
			t.Fatal("callback grid is not the committed generation")
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if snapshots != 10 {
		t.Fatalf("callback ran %d times, want 10", snapshots)
	}
}

func TestRunStopsAtTickBoundaryOnCancel(t *testing.T) {
	g, err := grid.New(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	e, err := New(g, lifeRuleset(t))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err = e.Run(ctx, -1, func(*grid.Grid) {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if ticks != 3 {
		t.Fatalf("ran %d ticks after cancel at 3", ticks)
	}
	if e.Generation() != 3 {
		t.Fatalf("Generation = %d, want 3", e.Generation())
	}
}

func TestRunClockHonorsContext(t *testing.T) {
	g, err := grid.New(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	e, err := New(g, lifeRuleset(t))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	err = e.RunClock(ctx, time.Millisecond, func(*grid.Grid) {
		if e.Generation() >= 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if e.Generation() < 3 {
		t.Fatalf("Generation = %d, want >= 3", e.Generation())
	}
}
