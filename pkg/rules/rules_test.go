package rules

import (
	"errors"
	"testing"

	"ndca/pkg/grid"
	"ndca/pkg/rule"
)

func TestRegistryHasClassics(t *testing.T) {
	names := Names()
	want := []string{"elementary", "highlife", "life", "life-without-death", "morley", "replicator", "seeds"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNewUnknownRule(t *testing.T) {
	if _, err := New("langton", []int{10, 10}); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("err = %v, want ErrUnknownRule", err)
	}
}

func TestClassicsBuildForTwoAndThreeDimensions(t *testing.T) {
	for name := range classics {
		for _, shape := range [][]int{{10, 10}, {6, 6, 6}} {
			rs, err := New(name, shape)
			if err != nil {
				t.Fatalf("New(%q, %v): %v", name, shape, err)
			}
			if rs.Rank() != len(shape) {
				t.Fatalf("New(%q, %v) rank = %d", name, shape, rs.Rank())
			}
		}
	}
}

func TestLifeBlockIsStill(t *testing.T) {
	g, err := grid.New(6, 6)
	if err != nil {
		t.Fatal(err)
	}
	block := [][]int{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
	for _, c := range block {
		g.Set(c, true)
	}

	rs, err := New("life", g.Shape())
	if err != nil {
		t.Fatal(err)
	}
	next, err := rs.Apply(g)
	if err != nil {
		t.Fatal(err)
	}
	if next.Count() != 4 {
		t.Fatalf("block population = %d, want 4", next.Count())
	}
	for _, c := range block {
		if !next.Get(c) {
			t.Fatalf("block cell %v died", c)
		}
	}
}

func TestElementaryRejectsHigherRank(t *testing.T) {
	if _, err := Elementary(110)([]int{8, 8}); !errors.Is(err, rule.ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestElementaryRule110Step(t *testing.T) {
	// One live cell under rule 110: patterns 001 and 010 map to 1, 100
	// maps to 0, so the next generation is the cell plus its left
	// neighbor.
	g, err := grid.New(11)
	if err != nil {
		t.Fatal(err)
	}
	g.Set([]int{5}, true)

	rs, err := New("elementary", g.Shape())
	if err != nil {
		t.Fatal(err)
	}
	next, err := rs.Apply(g)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 11; x++ {
		want := x == 4 || x == 5
		if next.Get([]int{x}) != want {
			t.Fatalf("cell %d = %v, want %v", x, next.Get([]int{x}), want)
		}
	}
}

func TestElementaryRule90IsXOR(t *testing.T) {
	g, err := grid.New(16)
	if err != nil {
		t.Fatal(err)
	}
	g.Randomize(grid.NewRNG(8))

	rs, err := Elementary(90)(g.Shape())
	if err != nil {
		t.Fatal(err)
	}
	next, err := rs.Apply(g)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 16; x++ {
		left := g.Get([]int{x - 1})
		right := g.Get([]int{x + 1})
		if next.Get([]int{x}) != (left != right) {
			t.Fatalf("rule 90 at %d: got %v, want xor of neighbors", x, next.Get([]int{x}))
		}
	}
}
