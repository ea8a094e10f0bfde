package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestForName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"soft", "soft", false},
		{"plain", "plain", false},
		{"", "soft", false},
		{"neon", "", true},
	}
	for _, tt := range tests {
		s, err := ForName(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ForName(%q) should fail", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForName(%q): %v", tt.name, err)
			continue
		}
		if s.Name() != tt.want {
			t.Errorf("ForName(%q).Name() = %q, want %q", tt.name, s.Name(), tt.want)
		}
	}
}

func TestPlainRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Plain{}.RenderDefs(&buf)

	// Plain style has no defs
	if buf.Len() != 0 {
		t.Errorf("RenderDefs() wrote %d bytes, want 0", buf.Len())
	}
}

func TestSoftRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Soft{}.RenderDefs(&buf)
	out := buf.String()

	for _, want := range []string{"<defs>", "fog-puff-blur", "fog-glow-blur", "feGaussianBlur"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderDefs() output missing %q", want)
		}
	}
}

func TestRenderCell(t *testing.T) {
	c := Cell{
		X: 10, Y: 20, W: 56, H: 56,
		Radii:   [4]float64{16, 0, 8, 0},
		Fill:    "#52525b",
		Opacity: 1.0,
	}

	for _, s := range []Style{Plain{}, Soft{}} {
		var buf bytes.Buffer
		s.RenderCell(&buf, c)
		out := buf.String()

		for _, want := range []string{`<path`, `class="fog-cell"`, `fill="#52525b"`, "A 16.00", "A 8.00"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s RenderCell() output missing %q\nGot: %s", s.Name(), want, out)
			}
		}
	}
}

func TestRenderFluff(t *testing.T) {
	f := Fluff{X: 25, Y: 0, Radius: 9.5, Fill: "#cdcdc1", Opacity: 0.35}

	var buf bytes.Buffer
	Soft{}.RenderFluff(&buf, f)
	out := buf.String()

	for _, want := range []string{`<circle`, `cx="25.00"`, `r="9.50"`, `fill-opacity="0.35"`, `filter="url(#fog-puff-blur)"`} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderFluff() output missing %q\nGot: %s", want, out)
		}
	}

	buf.Reset()
	Plain{}.RenderFluff(&buf, f)
	if strings.Contains(buf.String(), "filter=") {
		t.Error("plain fluff should not reference filters")
	}
}

func TestRenderGlow(t *testing.T) {
	g := Glow{X1: 0, Y1: 0, X2: 50, Y2: 0, Width: 12, Color: "#52525b", Opacity: 0.6}

	var buf bytes.Buffer
	Soft{}.RenderGlow(&buf, g)
	out := buf.String()

	for _, want := range []string{`<line`, `stroke-width="12.00"`, `stroke-opacity="0.60"`, `url(#fog-glow-blur)`} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderGlow() output missing %q\nGot: %s", want, out)
		}
	}
}

func TestCellPathSquareCorners(t *testing.T) {
	c := Cell{X: 0, Y: 0, W: 50, H: 50}
	path := cellPath(c)

	if strings.Contains(path, "A ") {
		t.Errorf("all-square cell should contain no arcs: %s", path)
	}
	if !strings.HasPrefix(path, "M ") || !strings.HasSuffix(path, "Z") {
		t.Errorf("path should be closed: %s", path)
	}
}

func TestCellPathAllRounded(t *testing.T) {
	c := Cell{X: 0, Y: 0, W: 50, H: 50, Radii: [4]float64{10, 10, 10, 10}}
	path := cellPath(c)

	if got := strings.Count(path, "A "); got != 4 {
		t.Errorf("fully rounded cell should have 4 arcs, got %d: %s", got, path)
	}
}
