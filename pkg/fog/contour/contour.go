// Package contour turns a fog region's exposed boundary into a
// cloud-like decoration: a list of overlapping circles ("fluffs") placed
// along exposed edges and convex corners.
//
// Output is bit-identical for identical (cell set, cell size) input. All
// variation comes from seeded draws keyed on cell coordinates; no clock,
// iteration order, or shared generator state is involved, so any two
// clients derive the same contour independently.
package contour

import (
	"math"

	"github.com/fogbanklabs/fogbank/pkg/fog/boundary"
	"github.com/fogbanklabs/fogbank/pkg/fog/segment"
	"github.com/fogbanklabs/fogbank/pkg/grid"
)

// Fluff is one decorative circle, in pixel space relative to the grid
// origin.
type Fluff struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Cloud is the full contour decoration of one region: the concatenated
// fluffs of all its cells' exposed edges and corners, plus the region's
// vertical pixel span for an optional top-to-bottom gradient.
type Cloud struct {
	Fluffs     []Fluff `json:"fluffs"`
	SpanTop    float64 `json:"span_top"`
	SpanBottom float64 `json:"span_bottom"`
}

// Radius fractions of the cell size, and the chained-puff offset range.
const (
	centralRadiusMin = 0.14
	centralRadiusMax = 0.20
	chainRadiusMin   = 0.08
	chainRadiusMax   = 0.14
	cornerRadiusMin  = 0.10
	cornerRadiusMax  = 0.18
	nudgeMin         = 0.02
	nudgeMax         = 0.06
	chainOffsetMin   = 2
	chainOffsetMax   = 6
)

// Draw channels, per cell. Each side owns a block wide enough for its
// central puff and up to three chained puffs; corners follow after.
const (
	sideChannelStride = 16
	chanRadius        = 0
	chanNudge         = 1
	chanCount         = 2
	chanChainBase     = 3
	cornerChannelBase = 4 * sideChannelStride
)

// Generate derives the cloud contour of a region at the given cell size.
// Cells are processed in canonical scan order and sides in fixed
// top/right/bottom/left order, so the fluff list is fully deterministic.
// Interior cells contribute nothing; a region with no exposed edges (which
// cannot happen for finite regions) would yield an empty fluff list.
func Generate(region *segment.Region, cellSize float64) Cloud {
	cloud := Cloud{
		SpanTop:    float64(region.Bounds.MinRow) * cellSize,
		SpanBottom: float64(region.Bounds.MaxRow+1) * cellSize,
	}

	for _, c := range region.Coords() {
		e := boundary.Classify(region, c)
		if !e.AnyExposed() && !hasRoundedCorner(e) {
			continue
		}
		for _, side := range []boundary.Side{boundary.SideTop, boundary.SideRight, boundary.SideBottom, boundary.SideLeft} {
			if e.Exposed(side) {
				cloud.Fluffs = append(cloud.Fluffs, edgeCloud(c, side, cellSize)...)
			}
		}
		for corner, tier := range e.Corners {
			if tier == boundary.TierFull {
				cloud.Fluffs = append(cloud.Fluffs, cornerPuff(c, boundary.Corner(corner), cellSize))
			}
		}
	}

	return cloud
}

func hasRoundedCorner(e boundary.Exposure) bool {
	for _, tier := range e.Corners {
		if tier == boundary.TierFull {
			return true
		}
	}
	return false
}

// edgeCloud builds one edge's puff chain: a large central puff at the edge
// midpoint, nudged outward, followed by 2-3 smaller puffs chained off it
// via circle tangency. The chain walks alternately sideways along the edge
// axis; each step depends on the previous puff, so the chain is sequential
// by construction.
func edgeCloud(c grid.Coord, side boundary.Side, cellSize float64) []Fluff {
	base := int(side) * sideChannelStride
	seed := func(channel int) int { return cellSeed(c.Col, c.Row, base+channel) }

	midX, midY, outX, outY := edgeMidpoint(c, side, cellSize)
	nudge := Float(seed(chanNudge), nudgeMin*cellSize, nudgeMax*cellSize)

	central := Fluff{
		X:      midX + outX*nudge,
		Y:      midY + outY*nudge,
		Radius: Float(seed(chanRadius), centralRadiusMin*cellSize, centralRadiusMax*cellSize),
	}
	fluffs := []Fluff{central}

	prev := central
	count := Int(seed(chanCount), 2, 3)
	for k := 0; k < count; k++ {
		radius := Float(seed(chanChainBase+2*k), chainRadiusMin*cellSize, chainRadiusMax*cellSize)
		offset := Int(seed(chanChainBase+2*k+1), chainOffsetMin, chainOffsetMax)

		a := prev.Radius - radius - float64(offset)
		sum := prev.Radius + radius
		b := math.Sqrt(math.Max(0, sum*sum-a*a))
		if k%2 == 1 {
			b = -b
		}

		next := Fluff{Radius: radius}
		if side == boundary.SideTop || side == boundary.SideBottom {
			next.X = prev.X + b
			next.Y = prev.Y + a
		} else {
			next.X = prev.X + a
			next.Y = prev.Y + b
		}
		fluffs = append(fluffs, next)
		prev = next
	}

	return fluffs
}

func cornerPuff(c grid.Coord, corner boundary.Corner, cellSize float64) Fluff {
	x, y := boundary.CornerPoint(c, corner, cellSize)
	seed := cellSeed(c.Col, c.Row, cornerChannelBase+int(corner))
	return Fluff{
		X:      x,
		Y:      y,
		Radius: Float(seed, cornerRadiusMin*cellSize, cornerRadiusMax*cellSize),
	}
}

// edgeMidpoint returns the midpoint of the named edge of cell c plus the
// outward unit direction (away from the region interior).
func edgeMidpoint(c grid.Coord, side boundary.Side, cellSize float64) (x, y, outX, outY float64) {
	x0 := float64(c.Col) * cellSize
	y0 := float64(c.Row) * cellSize
	half := cellSize / 2

	switch side {
	case boundary.SideTop:
		return x0 + half, y0, 0, -1
	case boundary.SideRight:
		return x0 + cellSize, y0 + half, 1, 0
	case boundary.SideBottom:
		return x0 + half, y0 + cellSize, 0, 1
	default:
		return x0, y0 + half, -1, 0
	}
}
