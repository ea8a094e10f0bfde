package sink_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/grid"
	"github.com/fogbanklabs/fogbank/pkg/pipeline"
	"github.com/fogbanklabs/fogbank/pkg/render/cloud/sink"
	"github.com/fogbanklabs/fogbank/pkg/render/cloud/styles"
	"github.com/fogbanklabs/fogbank/pkg/scene"
)

func testFrame(t *testing.T, viewer scene.Viewer) *scene.Frame {
	t.Helper()
	store := fog.NewStore()
	store.PaintRect(grid.RectBetween(grid.Coord{Col: 0, Row: 0}, grid.Coord{Col: 1, Row: 1}), "alice")
	store.Paint(grid.Coord{Col: 5, Row: 5}, "bob")

	sc, err := pipeline.BuildScene(store, 50)
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	return pipeline.ComposeFrame(sc, viewer)
}

func TestRenderSVGStructure(t *testing.T) {
	out := string(sink.RenderSVG(testFrame(t, scene.Viewer{ID: "carol"})))

	if !strings.HasPrefix(out, "<svg xmlns=") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatal("output should be a complete SVG document")
	}
	for _, want := range []string{"viewBox=", "fog-cell", "fog-fluff", "fog-glow", "fog-puff-blur"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}

	// 5 cells total across both regions.
	if got := strings.Count(out, `class="fog-cell"`); got != 5 {
		t.Errorf("cell fills = %d, want 5", got)
	}
}

func TestRenderSVGPassOrder(t *testing.T) {
	out := string(sink.RenderSVG(testFrame(t, scene.Viewer{ID: "carol"})))

	lastCell := strings.LastIndex(out, `class="fog-cell"`)
	firstFluff := strings.Index(out, `class="fog-fluff"`)
	lastFluff := strings.LastIndex(out, `class="fog-fluff"`)
	firstGlow := strings.Index(out, `class="fog-glow"`)

	if lastCell > firstFluff {
		t.Error("all cell fills should precede cloud decoration")
	}
	if lastFluff > firstGlow {
		t.Error("all cloud decoration should precede edge glow")
	}
}

func TestRenderSVGPlainStyleHasNoFilters(t *testing.T) {
	out := string(sink.RenderSVG(testFrame(t, scene.Viewer{ID: "carol"}), sink.WithStyle(styles.Plain{})))

	if strings.Contains(out, "filter=") || strings.Contains(out, "<defs>") {
		t.Error("plain style should emit no filters or defs")
	}
}

func TestRenderSVGBackground(t *testing.T) {
	withBg := string(sink.RenderSVG(testFrame(t, scene.Viewer{ID: "carol"}), sink.WithBackground("#1a1a2e")))
	if !strings.Contains(withBg, `fill="#1a1a2e"`) {
		t.Error("background rect missing")
	}

	without := string(sink.RenderSVG(testFrame(t, scene.Viewer{ID: "carol"})))
	if strings.Contains(without, `fill="#1a1a2e"`) {
		t.Error("default output should have no background rect")
	}
}

func TestRenderSVGViewerDependent(t *testing.T) {
	own := sink.RenderSVG(testFrame(t, scene.Viewer{ID: "alice"}))
	foreign := sink.RenderSVG(testFrame(t, scene.Viewer{ID: "carol"}))

	if bytes.Equal(own, foreign) {
		t.Error("the painter and a stranger should see different output")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := sink.RenderSVG(testFrame(t, scene.Viewer{ID: "carol"}))
	b := sink.RenderSVG(testFrame(t, scene.Viewer{ID: "carol"}))
	if !bytes.Equal(a, b) {
		t.Error("rendering is not deterministic")
	}
}

func TestRenderSVGEmptyFrame(t *testing.T) {
	out := string(sink.RenderSVG(&scene.Frame{CellSize: 50, Viewer: scene.Viewer{ID: "alice"}}))
	if !strings.Contains(out, "<svg") || strings.Contains(out, "fog-cell") {
		t.Errorf("empty frame should render an empty document: %s", out)
	}
}

func TestRenderJSONRoundTrips(t *testing.T) {
	frame := testFrame(t, scene.Viewer{ID: "alice"})
	data, err := sink.RenderJSON(frame)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	restored, err := scene.UnmarshalFrame(data)
	if err != nil {
		t.Fatalf("UnmarshalFrame: %v", err)
	}
	if len(restored.Regions) != len(frame.Regions) {
		t.Errorf("regions = %d, want %d", len(restored.Regions), len(frame.Regions))
	}
	if restored.Viewer != frame.Viewer {
		t.Errorf("viewer = %+v, want %+v", restored.Viewer, frame.Viewer)
	}
}
