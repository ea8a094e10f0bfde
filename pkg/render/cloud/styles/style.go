package styles

import "bytes"

// Style defines the visual appearance for fog rendering.
// Implementations control how cell fills, cloud fluffs, and edge glows are
// drawn; the sink decides what to draw and where.
type Style interface {
	// Name returns the style identifier used in cache keys and flags.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderCell writes the SVG for one padded, corner-rounded cell fill.
	RenderCell(buf *bytes.Buffer, c Cell)
	// RenderFluff writes the SVG for one cloud puff circle.
	RenderFluff(buf *bytes.Buffer, f Fluff)
	// RenderGlow writes the SVG for one exposed-edge glow segment.
	RenderGlow(buf *bytes.Buffer, g Glow)
}

// Cell contains all data needed to render a single cell fill.
// X, Y, W, H describe the padded box; Radii are the corner radii in
// pixels, clockwise from top-left (zero for a square corner).
type Cell struct {
	X, Y, W, H float64
	Radii      [4]float64
	Fill       string
	Opacity    float64
}

// Fluff contains positioning data for one cloud puff.
type Fluff struct {
	X, Y, Radius float64
	Fill         string
	Opacity      float64
}

// Glow contains positioning data for one exposed-edge glow segment.
type Glow struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          string
	Opacity        float64
}
