package regiongraph_test

import (
	"strings"
	"testing"

	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/grid"
	"github.com/fogbanklabs/fogbank/pkg/pipeline"
	"github.com/fogbanklabs/fogbank/pkg/render/regiongraph"
	"github.com/fogbanklabs/fogbank/pkg/scene"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	store := fog.NewStore()
	store.Paint(grid.Coord{Col: 0, Row: 0}, "alice")
	store.Paint(grid.Coord{Col: 1, Row: 0}, "alice")
	store.Paint(grid.Coord{Col: 0, Row: 1}, "alice")
	store.Paint(grid.Coord{Col: 5, Row: 5}, "bob")

	sc, err := pipeline.BuildScene(store, 50)
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	return sc
}

func TestToDOTClusters(t *testing.T) {
	dot := regiongraph.ToDOT(testScene(t), regiongraph.Options{})

	if !strings.HasPrefix(dot, "graph fog {") || !strings.HasSuffix(dot, "}\n") {
		t.Fatal("output should be a complete undirected graph document")
	}
	if got := strings.Count(dot, "subgraph cluster_"); got != 2 {
		t.Errorf("clusters = %d, want 2", got)
	}
	for _, want := range []string{`"alice (3 cells)"`, `"bob (1 cells)"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing cluster label %s", want)
		}
	}
}

func TestToDOTNodesAndEdges(t *testing.T) {
	dot := regiongraph.ToDOT(testScene(t), regiongraph.Options{})

	for _, key := range []string{`"0,0"`, `"1,0"`, `"0,1"`, `"5,5"`} {
		if !strings.Contains(dot, key+" [") {
			t.Errorf("DOT missing node %s", key)
		}
	}

	// The L has exactly two adjacencies; each is emitted once.
	if got := strings.Count(dot, " -- "); got != 2 {
		t.Errorf("edges = %d, want 2", got)
	}
	if !strings.Contains(dot, `"0,0" -- "1,0"`) {
		t.Error("DOT missing horizontal edge")
	}
	if !strings.Contains(dot, `"0,0" -- "0,1"`) {
		t.Error("DOT missing vertical edge")
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	plain := regiongraph.ToDOT(testScene(t), regiongraph.Options{})
	detailed := regiongraph.ToDOT(testScene(t), regiongraph.Options{Detailed: true})

	// 1,0 exposes top, right, and bottom; letters come out in TRBL order.
	if !strings.Contains(detailed, `"1,0\nTRB"`) {
		t.Error("detailed label for 1,0 should read TRB")
	}
	if strings.Contains(plain, `\nTRB`) {
		t.Error("plain output should not carry exposure labels")
	}
}

func TestToDOTBoundaryFill(t *testing.T) {
	dot := regiongraph.ToDOT(testScene(t), regiongraph.Options{})

	// Every cell in this scene is a boundary cell.
	if got := strings.Count(dot, "fillcolor=lightgrey"); got != 4 {
		t.Errorf("boundary fills = %d, want 4", got)
	}
}

func TestToDOTEmptyScene(t *testing.T) {
	dot := regiongraph.ToDOT(&scene.Scene{CellSize: 50}, regiongraph.Options{})
	if !strings.HasPrefix(dot, "graph fog {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty scene should yield a valid document: %s", dot)
	}
	if strings.Contains(dot, "subgraph") {
		t.Error("empty scene should have no clusters")
	}
}
