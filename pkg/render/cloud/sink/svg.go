package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogbanklabs/fogbank/pkg/fog/boundary"
	"github.com/fogbanklabs/fogbank/pkg/render/cloud/styles"
	"github.com/fogbanklabs/fogbank/pkg/scene"
)

// Geometry fractions of the cell size. The pad stitches adjacent cells
// together so shared edges have no visible seam; the radii realize the
// corner tiers from boundary classification.
const (
	cellPadFrac    = 0.06
	fullCornerFrac = 0.32
	halfCornerFrac = 0.16
	glowWidthFrac  = 0.22
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	margin     float64
	background string
}

// WithStyle sets the visual style (default soft).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithMargin sets the whitespace around the fogged area in pixels.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithBackground sets a background fill color. The default is transparent,
// since fog is composited over a map by the host.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG renders a composed frame as standalone SVG.
//
// Regions are drawn in three passes across the whole frame: base cell
// fills, cloud puffs, then edge glows, so decoration never hides another
// region's fill. An empty frame yields a minimal valid document.
func RenderSVG(f *scene.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Soft{}, margin: f.CellSize}
	for _, opt := range opts {
		opt(&r)
	}

	minX, minY, maxX, maxY := frameExtent(f, r.margin)
	width, height := maxX-minX, maxY-minY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, width, height, width, height)

	r.style.RenderDefs(&buf)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			minX, minY, width, height, r.background)
	}

	for _, region := range f.Regions {
		renderCellPass(&buf, &r, f.CellSize, region)
	}
	for _, region := range f.Regions {
		renderCloudPass(&buf, &r, region)
	}
	for _, region := range f.Regions {
		renderGlowPass(&buf, &r, f.CellSize, region)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCellPass(buf *bytes.Buffer, r *svgRenderer, cellSize float64, region scene.FrameRegion) {
	pad := cellPadFrac * cellSize
	for _, cell := range region.Cells {
		c, err := cell.Coord()
		if err != nil {
			continue
		}
		x, y := c.PixelOrigin(cellSize)
		shape := styles.Cell{
			X: x - pad, Y: y - pad,
			W: cellSize + 2*pad, H: cellSize + 2*pad,
			Fill:    region.Treatment.FillColor,
			Opacity: region.Treatment.FillOpacity,
		}
		for corner, tier := range cell.Exposure.Corners {
			switch tier {
			case boundary.TierFull:
				shape.Radii[corner] = fullCornerFrac * cellSize
			case boundary.TierHalf:
				shape.Radii[corner] = halfCornerFrac * cellSize
			}
		}
		r.style.RenderCell(buf, shape)
	}
}

func renderCloudPass(buf *bytes.Buffer, r *svgRenderer, region scene.FrameRegion) {
	for _, f := range region.Cloud.Fluffs {
		r.style.RenderFluff(buf, styles.Fluff{
			X: f.X, Y: f.Y, Radius: f.Radius,
			Fill:    region.Treatment.FillColor,
			Opacity: region.Treatment.CloudOpacity,
		})
	}
}

func renderGlowPass(buf *bytes.Buffer, r *svgRenderer, cellSize float64, region scene.FrameRegion) {
	for _, cell := range region.Cells {
		c, err := cell.Coord()
		if err != nil {
			continue
		}
		x, y := c.PixelOrigin(cellSize)
		glow := func(x1, y1, x2, y2 float64) {
			r.style.RenderGlow(buf, styles.Glow{
				X1: x1, Y1: y1, X2: x2, Y2: y2,
				Width:   glowWidthFrac * cellSize,
				Color:   region.Treatment.FillColor,
				Opacity: region.Treatment.GlowOpacity,
			})
		}
		if cell.Exposure.Top {
			glow(x, y, x+cellSize, y)
		}
		if cell.Exposure.Right {
			glow(x+cellSize, y, x+cellSize, y+cellSize)
		}
		if cell.Exposure.Bottom {
			glow(x, y+cellSize, x+cellSize, y+cellSize)
		}
		if cell.Exposure.Left {
			glow(x, y, x, y+cellSize)
		}
	}
}

// frameExtent computes the pixel bounding box of everything the frame
// draws: padded cells and every puff circle, grown by the margin.
func frameExtent(f *scene.Frame, margin float64) (minX, minY, maxX, maxY float64) {
	if len(f.Regions) == 0 {
		return 0, 0, 2 * margin, 2 * margin
	}

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	pad := cellPadFrac * f.CellSize

	for _, region := range f.Regions {
		b := region.Bounds
		minX = math.Min(minX, float64(b.MinCol)*f.CellSize-pad)
		minY = math.Min(minY, float64(b.MinRow)*f.CellSize-pad)
		maxX = math.Max(maxX, float64(b.MaxCol+1)*f.CellSize+pad)
		maxY = math.Max(maxY, float64(b.MaxRow+1)*f.CellSize+pad)

		for _, fl := range region.Cloud.Fluffs {
			minX = math.Min(minX, fl.X-fl.Radius)
			minY = math.Min(minY, fl.Y-fl.Radius)
			maxX = math.Max(maxX, fl.X+fl.Radius)
			maxY = math.Max(maxY, fl.Y+fl.Radius)
		}
	}

	return minX - margin, minY - margin, maxX + margin, maxY + margin
}
