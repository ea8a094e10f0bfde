package styles

import (
	"bytes"
	"fmt"
)

// Plain renders flat shapes with no filters. Fast, dependency-free output
// for debugging and diff-friendly golden files.
type Plain struct{}

// Name returns the style identifier.
func (Plain) Name() string { return "plain" }

// RenderDefs writes nothing; the plain style needs no defs.
func (Plain) RenderDefs(buf *bytes.Buffer) {}

// RenderCell writes a flat corner-rounded cell fill.
func (Plain) RenderCell(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `  <path class="fog-cell" d="%s" fill="%s" fill-opacity="%.2f"/>`+"\n",
		cellPath(c), c.Fill, c.Opacity)
}

// RenderFluff writes a flat puff circle.
func (Plain) RenderFluff(buf *bytes.Buffer, f Fluff) {
	fmt.Fprintf(buf, `  <circle class="fog-fluff" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f"/>`+"\n",
		f.X, f.Y, f.Radius, f.Fill, f.Opacity)
}

// RenderGlow writes a plain edge line; without filters the glow degrades
// to a thin border.
func (Plain) RenderGlow(buf *bytes.Buffer, g Glow) {
	fmt.Fprintf(buf, `  <line class="fog-glow" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f" stroke-linecap="round"/>`+"\n",
		g.X1, g.Y1, g.X2, g.Y2, g.Color, g.Width/3, g.Opacity)
}

// Ensure Plain implements Style.
var _ Style = Plain{}
