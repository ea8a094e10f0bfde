// Package grid provides the coordinate primitives shared by the fog engine.
//
// A grid cell is addressed by an integer (column, row) pair. Coordinates are
// unbounded: the engine never enforces a map extent, so negative and very
// large coordinates are valid. The canonical string form of a coordinate is
// "col,row", which is used as a map key in serialized scenarios and session
// documents.
//
// Pixel-space helpers convert between world coordinates and cells given a
// cell size. These are the only functions that accept floating point input,
// and they reject non-finite values, so everything downstream can assume
// well-formed integers.
package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fogbanklabs/fogbank/pkg/errors"
)

// Coord identifies a single grid cell.
type Coord struct {
	Col int `json:"col" bson:"col"`
	Row int `json:"row" bson:"row"`
}

// Key returns the canonical "col,row" string form of the coordinate.
func (c Coord) Key() string {
	return strconv.Itoa(c.Col) + "," + strconv.Itoa(c.Row)
}

// String implements fmt.Stringer using the canonical key form.
func (c Coord) String() string { return c.Key() }

// ParseKey parses a canonical "col,row" key back into a Coord.
func ParseKey(s string) (Coord, error) {
	col, row, ok := strings.Cut(s, ",")
	if !ok {
		return Coord{}, errors.New(errors.ErrCodeInvalidCoord, "malformed cell key %q", s)
	}
	ci, err := strconv.Atoi(col)
	if err != nil {
		return Coord{}, errors.New(errors.ErrCodeInvalidCoord, "malformed column in cell key %q", s)
	}
	ri, err := strconv.Atoi(row)
	if err != nil {
		return Coord{}, errors.New(errors.ErrCodeInvalidCoord, "malformed row in cell key %q", s)
	}
	return Coord{Col: ci, Row: ri}, nil
}

// Neighbors4 returns the four axis-adjacent coordinates in fixed
// top, right, bottom, left order. The fixed order keeps flood fill and
// contour generation independent of map iteration order.
func (c Coord) Neighbors4() [4]Coord {
	return [4]Coord{
		{Col: c.Col, Row: c.Row - 1},
		{Col: c.Col + 1, Row: c.Row},
		{Col: c.Col, Row: c.Row + 1},
		{Col: c.Col - 1, Row: c.Row},
	}
}

// Offset returns the coordinate shifted by (dc, dr).
func (c Coord) Offset(dc, dr int) Coord {
	return Coord{Col: c.Col + dc, Row: c.Row + dr}
}

// Less reports whether c precedes other in canonical scan order:
// by row first, then by column. This ordering makes segmentation and
// contour output deterministic.
func (c Coord) Less(other Coord) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// Compare returns -1, 0, or 1 according to canonical scan order.
func (c Coord) Compare(other Coord) int {
	switch {
	case c.Less(other):
		return -1
	case other.Less(c):
		return 1
	default:
		return 0
	}
}

// Rect is an inclusive axis-aligned cell rectangle.
// A Rect is always normalized: MinCol <= MaxCol and MinRow <= MaxRow.
type Rect struct {
	MinCol int `json:"min_col" bson:"min_col"`
	MinRow int `json:"min_row" bson:"min_row"`
	MaxCol int `json:"max_col" bson:"max_col"`
	MaxRow int `json:"max_row" bson:"max_row"`
}

// RectBetween returns the normalized rectangle spanned by two corner cells.
// The corners may be given in any order.
func RectBetween(a, b Coord) Rect {
	return Rect{
		MinCol: min(a.Col, b.Col),
		MinRow: min(a.Row, b.Row),
		MaxCol: max(a.Col, b.Col),
		MaxRow: max(a.Row, b.Row),
	}
}

// RectAt returns the 1x1 rectangle covering a single cell.
func RectAt(c Coord) Rect {
	return Rect{MinCol: c.Col, MinRow: c.Row, MaxCol: c.Col, MaxRow: c.Row}
}

// Contains reports whether the rectangle covers the given cell.
func (r Rect) Contains(c Coord) bool {
	return c.Col >= r.MinCol && c.Col <= r.MaxCol && c.Row >= r.MinRow && c.Row <= r.MaxRow
}

// Expand grows the rectangle to cover the given cell.
func (r Rect) Expand(c Coord) Rect {
	return Rect{
		MinCol: min(r.MinCol, c.Col),
		MinRow: min(r.MinRow, c.Row),
		MaxCol: max(r.MaxCol, c.Col),
		MaxRow: max(r.MaxRow, c.Row),
	}
}

// Width returns the number of columns covered by the rectangle.
func (r Rect) Width() int { return r.MaxCol - r.MinCol + 1 }

// Height returns the number of rows covered by the rectangle.
func (r Rect) Height() int { return r.MaxRow - r.MinRow + 1 }

// Area returns the number of cells covered by the rectangle.
func (r Rect) Area() int { return r.Width() * r.Height() }

// ForEach calls fn for every cell in the rectangle, in scan order
// (row by row, left to right).
func (r Rect) ForEach(fn func(Coord)) {
	for row := r.MinRow; row <= r.MaxRow; row++ {
		for col := r.MinCol; col <= r.MaxCol; col++ {
			fn(Coord{Col: col, Row: row})
		}
	}
}

// String returns a compact "minCol,minRow..maxCol,maxRow" form for logs.
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d..%d,%d", r.MinCol, r.MinRow, r.MaxCol, r.MaxRow)
}

// ValidateCellSize checks that a cell size is a positive finite number.
func ValidateCellSize(cellSize float64) error {
	if math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		return errors.New(errors.ErrCodeInvalidCellSize, "cell size must be finite, got %v", cellSize)
	}
	if cellSize <= 0 {
		return errors.New(errors.ErrCodeInvalidCellSize, "cell size must be positive, got %v", cellSize)
	}
	return nil
}

// CellAt converts a pixel-space point to the cell containing it by floor
// division. It rejects non-finite point coordinates and invalid cell sizes
// with a domain error; nothing downstream of this boundary expects
// non-finite values.
func CellAt(x, y, cellSize float64) (Coord, error) {
	if err := ValidateCellSize(cellSize); err != nil {
		return Coord{}, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return Coord{}, errors.New(errors.ErrCodeInvalidCoord, "non-finite point (%v, %v)", x, y)
	}
	return Coord{
		Col: int(math.Floor(x / cellSize)),
		Row: int(math.Floor(y / cellSize)),
	}, nil
}

// PixelOrigin returns the pixel-space position of the cell's top-left corner.
func (c Coord) PixelOrigin(cellSize float64) (x, y float64) {
	return float64(c.Col) * cellSize, float64(c.Row) * cellSize
}

// PixelCenter returns the pixel-space position of the cell's center.
func (c Coord) PixelCenter(cellSize float64) (x, y float64) {
	return (float64(c.Col) + 0.5) * cellSize, (float64(c.Row) + 0.5) * cellSize
}
