package sink

import (
	"github.com/fogbanklabs/fogbank/pkg/render"
	"github.com/fogbanklabs/fogbank/pkg/scene"
)

// RenderPDF renders the frame as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(f *scene.Frame, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(f, opts...)
	return render.ToPDF(svg)
}
