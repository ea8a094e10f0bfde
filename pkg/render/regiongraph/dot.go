// Package regiongraph renders a scene's region structure as a Graphviz
// diagram: one cluster per region, one node per cell, edges between
// 4-connected neighbors. It is a debugging view for inspecting how a cell
// set segments, not part of the table-facing render path.
package regiongraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/fogbanklabs/fogbank/pkg/grid"
	"github.com/fogbanklabs/fogbank/pkg/render"
	"github.com/fogbanklabs/fogbank/pkg/scene"
)

// Options configures region graph rendering.
type Options struct {
	// Detailed includes boundary exposure in node labels.
	// When false, only the cell coordinate is shown.
	Detailed bool
}

// ToDOT converts a scene to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Each region becomes a cluster labeled with its creator and cell count;
// boundary cells are filled darker than interior cells.
func ToDOT(sc *scene.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph fog {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.1,0.05\"];\n")
	buf.WriteString("\n")

	for i, region := range sc.Regions {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("%s (%d cells)", region.Creator, len(region.Cells)))
		buf.WriteString("    style=dashed;\n")

		members := make(map[grid.Coord]bool, len(region.Cells))
		for _, cell := range region.Cells {
			c, err := cell.Coord()
			if err != nil {
				continue
			}
			members[c] = true
			fmt.Fprintf(&buf, "    %q [%s];\n", cell.Key, cellAttrs(cell, opts.Detailed))
		}

		// Undirected edges between 4-connected neighbors; emit each pair
		// once by only looking right and down.
		for _, cell := range region.Cells {
			c, err := cell.Coord()
			if err != nil {
				continue
			}
			if right := c.Offset(1, 0); members[right] {
				fmt.Fprintf(&buf, "    %q -- %q;\n", c.Key(), right.Key())
			}
			if down := c.Offset(0, 1); members[down] {
				fmt.Fprintf(&buf, "    %q -- %q;\n", c.Key(), down.Key())
			}
		}

		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func cellAttrs(cell scene.Cell, detailed bool) string {
	label := cell.Key
	if detailed && cell.Exposure.AnyExposed() {
		label += "\n" + exposureLabel(cell)
	}
	attrs := fmt.Sprintf("label=%q", label)
	if cell.Exposure.AnyExposed() {
		attrs += ", fillcolor=lightgrey"
	}
	return attrs
}

func exposureLabel(cell scene.Cell) string {
	var out []byte
	if cell.Exposure.Top {
		out = append(out, 'T')
	}
	if cell.Exposure.Right {
		out = append(out, 'R')
	}
	if cell.Exposure.Bottom {
		out = append(out, 'B')
	}
	if cell.Exposure.Left {
		out = append(out, 'L')
	}
	return string(out)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
