package segment

import (
	"testing"

	"github.com/fogbanklabs/fogbank/pkg/grid"
)

func cellSet(creator string, coords ...grid.Coord) map[grid.Coord]string {
	cells := make(map[grid.Coord]string, len(coords))
	for _, c := range coords {
		cells[c] = creator
	}
	return cells
}

func TestRegionsSplitsDisconnectedClusters(t *testing.T) {
	cells := cellSet("alice",
		grid.Coord{Col: 0, Row: 0},
		grid.Coord{Col: 1, Row: 0},
		grid.Coord{Col: 0, Row: 1},
		grid.Coord{Col: 5, Row: 5},
	)

	regions := Regions(cells)
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}

	// Seed order is canonical, so the L-cluster comes first.
	l, dot := regions[0], regions[1]
	if l.Size() != 3 {
		t.Errorf("first region size = %d, want 3", l.Size())
	}
	if want := (grid.Rect{MinCol: 0, MinRow: 0, MaxCol: 1, MaxRow: 1}); l.Bounds != want {
		t.Errorf("first region bounds = %v, want %v", l.Bounds, want)
	}
	if dot.Size() != 1 {
		t.Errorf("second region size = %d, want 1", dot.Size())
	}
	if want := (grid.Rect{MinCol: 5, MinRow: 5, MaxCol: 5, MaxRow: 5}); dot.Bounds != want {
		t.Errorf("second region bounds = %v, want %v", dot.Bounds, want)
	}
}

func TestDiagonalContactDoesNotConnect(t *testing.T) {
	cells := cellSet("alice",
		grid.Coord{Col: 0, Row: 0},
		grid.Coord{Col: 1, Row: 1},
	)
	if regions := Regions(cells); len(regions) != 2 {
		t.Errorf("diagonal cells should form 2 regions, got %d", len(regions))
	}
}

func TestSingleCellRegion(t *testing.T) {
	regions := Regions(cellSet("alice", grid.Coord{Col: -3, Row: 7}))
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	r := regions[0]
	if r.Size() != 1 || r.Bounds.Width() != 1 || r.Bounds.Height() != 1 {
		t.Errorf("isolated cell should be a 1x1 region, got size %d bounds %v", r.Size(), r.Bounds)
	}
}

func TestEmptyCellSet(t *testing.T) {
	if regions := Regions(nil); regions != nil {
		t.Errorf("empty cell set should yield no regions, got %d", len(regions))
	}
}

func TestCreatorInheritedFromSeedCell(t *testing.T) {
	// Two painters' areas merged into one region. The seed is the first
	// cell in scan order: row 0 before row 1, so bob's cell wins even
	// though alice painted more cells.
	cells := map[grid.Coord]string{
		{Col: 4, Row: 0}: "bob",
		{Col: 4, Row: 1}: "alice",
		{Col: 3, Row: 1}: "alice",
		{Col: 5, Row: 1}: "alice",
	}

	regions := Regions(cells)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	if regions[0].Creator != "bob" {
		t.Errorf("creator = %q, want bob (seed cell owner)", regions[0].Creator)
	}
}

func TestDeterministicAcrossRecomputation(t *testing.T) {
	cells := map[grid.Coord]string{}
	// A snake plus scattered singles, painted by several users.
	for col := 0; col < 10; col++ {
		cells[grid.Coord{Col: col, Row: 0}] = "alice"
	}
	cells[grid.Coord{Col: 9, Row: 1}] = "bob"
	cells[grid.Coord{Col: 20, Row: 20}] = "carol"
	cells[grid.Coord{Col: -5, Row: -5}] = "dave"

	first := Regions(cells)
	second := Regions(cells)

	if len(first) != len(second) {
		t.Fatalf("region counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Creator != second[i].Creator {
			t.Errorf("region %d creator differs: %q vs %q", i, first[i].Creator, second[i].Creator)
		}
		if first[i].Bounds != second[i].Bounds {
			t.Errorf("region %d bounds differ: %v vs %v", i, first[i].Bounds, second[i].Bounds)
		}
		a, b := first[i].Coords(), second[i].Coords()
		for j := range a {
			if a[j] != b[j] {
				t.Errorf("region %d cell %d differs: %v vs %v", i, j, a[j], b[j])
			}
		}
	}
}

func TestEveryCellInExactlyOneRegion(t *testing.T) {
	cells := cellSet("alice",
		grid.Coord{Col: 0, Row: 0}, grid.Coord{Col: 1, Row: 0},
		grid.Coord{Col: 3, Row: 0}, grid.Coord{Col: 3, Row: 1},
		grid.Coord{Col: 0, Row: 3},
	)

	regions := Regions(cells)
	seen := map[grid.Coord]int{}
	for _, r := range regions {
		for c := range r.Cells {
			seen[c]++
		}
	}
	if len(seen) != len(cells) {
		t.Errorf("regions cover %d cells, want %d", len(seen), len(cells))
	}
	for c, n := range seen {
		if n != 1 {
			t.Errorf("cell %v appears in %d regions", c, n)
		}
	}
}
