// Package boundary classifies the edges and corners of cells inside a
// fog region.
//
// Classification is region-local: a cell's edge counts as exposed when no
// cell of the same region lies across it, even if a cell of a different
// region does. The classifier is a pure derivation over the region's
// membership set; nothing is stored.
package boundary

import "github.com/fogbanklabs/fogbank/pkg/grid"

// Side identifies one of a cell's four edges.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// String returns the lowercase side name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	}
	return "unknown"
}

// Corner identifies one of a cell's four corners, clockwise from top-left.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
)

// String returns the lowercase corner name.
func (c Corner) String() string {
	switch c {
	case CornerTopLeft:
		return "top-left"
	case CornerTopRight:
		return "top-right"
	case CornerBottomRight:
		return "bottom-right"
	case CornerBottomLeft:
		return "bottom-left"
	}
	return "unknown"
}

// Tier is the rounding decision for a single corner.
type Tier int

const (
	// TierNone: a straight edge continues through the corner.
	TierNone Tier = iota

	// TierHalf: concave notch. Both adjacent neighbors exist but the
	// diagonal one is missing, leaving a re-entrant corner.
	TierHalf

	// TierFull: exterior convex corner. Both adjacent edges are exposed.
	TierFull
)

// Exposure is the classification of a single cell: which edges face out
// of the region, and the rounding tier of each corner.
type Exposure struct {
	Top    bool `json:"top,omitempty"`
	Right  bool `json:"right,omitempty"`
	Bottom bool `json:"bottom,omitempty"`
	Left   bool `json:"left,omitempty"`

	// Corners is indexed by Corner, clockwise from top-left.
	Corners [4]Tier `json:"corners"`
}

// Exposed reports whether the given side faces out of the region.
func (e Exposure) Exposed(s Side) bool {
	switch s {
	case SideTop:
		return e.Top
	case SideRight:
		return e.Right
	case SideBottom:
		return e.Bottom
	case SideLeft:
		return e.Left
	}
	return false
}

// AnyExposed reports whether the cell touches the region boundary at all.
// Fully interior cells contribute nothing to the contour.
func (e Exposure) AnyExposed() bool {
	return e.Top || e.Right || e.Bottom || e.Left
}

// Membership is the region-side lookup the classifier needs. *segment.Region
// satisfies it.
type Membership interface {
	Contains(grid.Coord) bool
}

// Classify computes the edge exposure and corner tiers of cell c within the
// given region. Each corner is evaluated independently:
//
//   - both adjacent edges exposed: full rounding (exterior convex corner)
//   - both adjacent neighbors present but the diagonal absent: half
//     rounding (concave notch)
//   - otherwise: none
//
// The cell itself is assumed to be a member of the region; classifying a
// non-member yields all edges exposed, which is degenerate but harmless.
func Classify(region Membership, c grid.Coord) Exposure {
	e := Exposure{
		Top:    !region.Contains(grid.Coord{Col: c.Col, Row: c.Row - 1}),
		Right:  !region.Contains(grid.Coord{Col: c.Col + 1, Row: c.Row}),
		Bottom: !region.Contains(grid.Coord{Col: c.Col, Row: c.Row + 1}),
		Left:   !region.Contains(grid.Coord{Col: c.Col - 1, Row: c.Row}),
	}

	diag := func(dc, dr int) bool {
		return region.Contains(grid.Coord{Col: c.Col + dc, Row: c.Row + dr})
	}

	e.Corners[CornerTopLeft] = cornerTier(e.Top, e.Left, diag(-1, -1))
	e.Corners[CornerTopRight] = cornerTier(e.Top, e.Right, diag(1, -1))
	e.Corners[CornerBottomRight] = cornerTier(e.Bottom, e.Right, diag(1, 1))
	e.Corners[CornerBottomLeft] = cornerTier(e.Bottom, e.Left, diag(-1, 1))

	return e
}

func cornerTier(edgeA, edgeB, diagonalPresent bool) Tier {
	switch {
	case edgeA && edgeB:
		return TierFull
	case !edgeA && !edgeB && !diagonalPresent:
		return TierHalf
	default:
		return TierNone
	}
}

// CornerPoint returns the pixel position of the named corner of cell c for
// the given cell size. Corner puffs in the contour are centered here.
func CornerPoint(c grid.Coord, corner Corner, cellSize float64) (x, y float64) {
	x = float64(c.Col) * cellSize
	y = float64(c.Row) * cellSize
	switch corner {
	case CornerTopRight:
		x += cellSize
	case CornerBottomRight:
		x += cellSize
		y += cellSize
	case CornerBottomLeft:
		y += cellSize
	}
	return x, y
}
