package pipeline

import (
	"context"
	"time"

	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/fog/boundary"
	"github.com/fogbanklabs/fogbank/pkg/fog/contour"
	"github.com/fogbanklabs/fogbank/pkg/fog/segment"
	"github.com/fogbanklabs/fogbank/pkg/fog/visibility"
	"github.com/fogbanklabs/fogbank/pkg/grid"
	"github.com/fogbanklabs/fogbank/pkg/observability"
	"github.com/fogbanklabs/fogbank/pkg/render/cloud/sink"
	"github.com/fogbanklabs/fogbank/pkg/render/cloud/styles"
	"github.com/fogbanklabs/fogbank/pkg/scene"
)

// BuildScene computes the viewer-independent geometry of a cell store:
// segmentation, per-cell boundary classification, and cloud contours.
// It is a pure function of the cell set and cell size; equal inputs give
// byte-identical scenes, which is what makes scene caching safe.
func BuildScene(store *fog.Store, cellSize float64) (*scene.Scene, error) {
	return buildScene(context.Background(), store, cellSize)
}

// buildScene carries the caller's context into the engine hooks. The two
// phases (segmentation, then classification and contouring) each emit a
// start/complete event pair.
func buildScene(ctx context.Context, store *fog.Store, cellSize float64) (*scene.Scene, error) {
	if err := grid.ValidateCellSize(cellSize); err != nil {
		return nil, err
	}

	sc := &scene.Scene{
		CellSize:  cellSize,
		CellsHash: store.Hash(),
	}

	segStart := time.Now()
	observability.Engine().OnSegmentStart(ctx, store.Len())
	regions := segment.Regions(store.Cells())
	observability.Engine().OnSegmentComplete(ctx, store.Len(), len(regions), time.Since(segStart))

	contourStart := time.Now()
	observability.Engine().OnContourStart(ctx, len(regions))
	for _, region := range regions {
		sr := scene.Region{
			Creator: region.Creator,
			Bounds:  region.Bounds,
			Cloud:   contour.Generate(region, cellSize),
		}
		for _, c := range region.Coords() {
			sr.Cells = append(sr.Cells, scene.Cell{
				Key:      c.Key(),
				Exposure: boundary.Classify(region, c),
			})
		}
		sc.Regions = append(sc.Regions, sr)
	}
	observability.Engine().OnContourComplete(ctx, len(regions), sc.FluffCount(), time.Since(contourStart))

	return sc, nil
}

// ComposeFrame applies the visibility policy to a scene for one viewer.
// Composition is cheap relative to scene building; it never touches
// geometry, only attaches a treatment per region.
func ComposeFrame(sc *scene.Scene, viewer scene.Viewer) *scene.Frame {
	frame := &scene.Frame{
		CellSize: sc.CellSize,
		Viewer:   viewer,
	}
	for _, region := range sc.Regions {
		frame.Regions = append(frame.Regions, scene.FrameRegion{
			Region:    region,
			Treatment: visibility.Resolve(region.Creator, viewer.ID, viewer.Privileged, viewer.Solo),
		})
	}
	return frame
}

// RenderFrame renders a frame into every requested format.
func RenderFrame(frame *scene.Frame, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	style, err := styles.ForName(opts.Style)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderSVG(frame, sink.WithStyle(style))
		case FormatJSON:
			data, err := sink.RenderJSON(frame)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatPNG:
			data, err := sink.RenderPNG(frame, sink.WithPNGSVGOptions(sink.WithStyle(style)))
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := sink.RenderPDF(frame, sink.WithStyle(style))
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		default:
			return nil, ValidateFormat(format)
		}
	}
	return artifacts, nil
}
