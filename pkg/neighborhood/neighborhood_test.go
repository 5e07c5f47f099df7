package neighborhood

import (
	"errors"
	"testing"

	"ndca/pkg/grid"
)

func TestMooreCardinality(t *testing.T) {
	for rank, want := range map[int]int{1: 2, 2: 8, 3: 26, 4: 80} {
		offsets := Moore(rank)
		if len(offsets) != want {
			t.Fatalf("Moore(%d) yields %d offsets, want %d", rank, len(offsets), want)
		}
		seen := map[string]bool{}
		for _, o := range offsets {
			if o.IsZero() {
				t.Fatalf("Moore(%d) contains the zero offset", rank)
			}
			key := ""
			for _, c := range o {
				key += string(rune('1' + c))
			}
			if seen[key] {
				t.Fatalf("Moore(%d) contains duplicate offset %v", rank, o)
			}
			seen[key] = true
		}
	}
}

func TestMooreOrderIsStable(t *testing.T) {
	a, b := Moore(3), Moore(3)
	for i := range a {
		for d := range a[i] {
			if a[i][d] != b[i][d] {
				t.Fatalf("Moore order differs at %d: %v vs %v", i, a[i], b[i])
			}
		}
	}
}

func TestVonNeumannCardinality(t *testing.T) {
	for rank := 1; rank <= 4; rank++ {
		offsets := VonNeumann(rank)
		if len(offsets) != 2*rank {
			t.Fatalf("VonNeumann(%d) yields %d offsets, want %d", rank, len(offsets), 2*rank)
		}
		for _, o := range offsets {
			nonzero := 0
			for _, c := range o {
				if c == 1 || c == -1 {
					nonzero++
				} else if c != 0 {
					t.Fatalf("VonNeumann(%d) offset %v has component %d", rank, o, c)
				}
			}
			if nonzero != 1 {
				t.Fatalf("VonNeumann(%d) offset %v is not a unit step", rank, o)
			}
		}
	}
}

func TestCustomRejectsMixedRanks(t *testing.T) {
	_, err := Custom([]Offset{{1, 0}, {0, 1, 0}})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestCustomCopiesInput(t *testing.T) {
	in := []Offset{{1, 0}, {0, -1}}
	out, err := Custom(in)
	if err != nil {
		t.Fatal(err)
	}
	in[0][0] = 99
	if out[0][0] != 1 {
		t.Fatal("Custom aliases caller storage")
	}
}

// naiveTotal is the per-cell reference sum from the aggregation contract.
func naiveTotal(g *grid.Grid, focus int, offsets []Offset) int {
	coord := g.Unflatten(focus)
	total := 0
	for _, o := range offsets {
		sum := make([]int, len(coord))
		for d := range coord {
			sum[d] = coord[d] + o[d]
		}
		if g.Get(sum) {
			total++
		}
	}
	return total
}

func TestTotalMatchesNaiveSum(t *testing.T) {
	rng := grid.NewRNG(99)
	shapes := [][]int{{13}, {7, 9}, {4, 5, 6}}
	for _, shape := range shapes {
		g, err := grid.New(shape...)
		if err != nil {
			t.Fatal(err)
		}
		g.Randomize(rng)

		sets := [][]Offset{Moore(len(shape)), VonNeumann(len(shape))}
		// A lopsided custom set, including a long reach past the wrap.
		custom := make([]Offset, 0, 3)
		for _, span := range []int{2, -3, 5} {
			o := make(Offset, len(shape))
			o[0] = span
			if len(shape) > 1 {
				o[len(shape)-1] = -span
			}
			custom = append(custom, o)
		}
		sets = append(sets, custom)

		for _, offsets := range sets {
			for i := 0; i < g.Size(); i++ {
				if got, want := Total(g, i, offsets), naiveTotal(g, i, offsets); got != want {
					t.Fatalf("shape %v: Total(%d) = %d, want %d", shape, i, got, want)
				}
			}
		}
	}
}

func TestTotalsMatchesTotalPerCell(t *testing.T) {
	g, err := grid.New(9, 11)
	if err != nil {
		t.Fatal(err)
	}
	g.Randomize(grid.NewRNG(3))

	offsets := Moore(2)
	totals := Totals(g, offsets)
	for i := 0; i < g.Size(); i++ {
		if totals[i] != Total(g, i, offsets) {
			t.Fatalf("Totals[%d] = %d, Total = %d", i, totals[i], Total(g, i, offsets))
		}
	}
}

func TestNeighborhoodStatesFollowOffsetOrder(t *testing.T) {
	g, err := grid.New(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	g.Set([]int{1, 2}, true) // north of focus (2,2)

	offsets := []Offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	n := At(g, g.Flatten([]int{2, 2}), offsets)

	states := n.States()
	want := []bool{true, false, false, false}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("states[%d] = %v, want %v", i, states[i], want[i])
		}
	}
	if n.Total() != 1 {
		t.Fatalf("Total = %d, want 1", n.Total())
	}
}

func TestWithTotalSkipsRecount(t *testing.T) {
	g, err := grid.New(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	n := WithTotal(g, 0, Moore(2), 5)
	if n.Total() != 5 {
		t.Fatalf("Total = %d, want the primed 5", n.Total())
	}
}
