package styles

import (
	"bytes"
	"fmt"
)

// Soft is the default style: blurred puffs and a feathered edge glow that
// make regions read as fog banks instead of tile sets.
type Soft struct{}

// Name returns the style identifier.
func (Soft) Name() string { return "soft" }

// RenderDefs writes the blur filters shared by puffs and glows.
func (Soft) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <filter id="fog-puff-blur" x="-50%" y="-50%" width="200%" height="200%">
      <feGaussianBlur stdDeviation="1.6"/>
    </filter>
    <filter id="fog-glow-blur" x="-100%" y="-100%" width="300%" height="300%">
      <feGaussianBlur stdDeviation="4"/>
    </filter>
  </defs>
`)
}

// RenderCell writes a corner-rounded cell fill with a hairline border in
// the fill tone, which hides the seams between stitched cells.
func (Soft) RenderCell(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `  <path class="fog-cell" d="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-opacity="%.2f" stroke-width="1"/>`+"\n",
		cellPath(c), c.Fill, c.Opacity, c.Fill, c.Opacity)
}

// RenderFluff writes a softly blurred puff circle.
func (Soft) RenderFluff(buf *bytes.Buffer, f Fluff) {
	fmt.Fprintf(buf, `  <circle class="fog-fluff" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f" filter="url(#fog-puff-blur)"/>`+"\n",
		f.X, f.Y, f.Radius, f.Fill, f.Opacity)
}

// RenderGlow writes a blurred stroke along an exposed edge, fading
// outward.
func (Soft) RenderGlow(buf *bytes.Buffer, g Glow) {
	fmt.Fprintf(buf, `  <line class="fog-glow" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f" stroke-linecap="round" filter="url(#fog-glow-blur)"/>`+"\n",
		g.X1, g.Y1, g.X2, g.Y2, g.Color, g.Width, g.Opacity)
}

// Ensure Soft implements Style.
var _ Style = Soft{}
