package styles

import (
	"fmt"
	"strings"
)

// cellPath builds an SVG path for a rectangle with independent corner
// radii, clockwise from top-left. A zero radius yields a square corner, so
// the same path handles interior cells, convex corners, and notches.
func cellPath(c Cell) string {
	x, y, w, h := c.X, c.Y, c.W, c.H
	tl, tr, br, bl := c.Radii[0], c.Radii[1], c.Radii[2], c.Radii[3]

	var b strings.Builder
	seg := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
	}

	seg("M %.2f %.2f ", x+tl, y)
	seg("H %.2f ", x+w-tr)
	if tr > 0 {
		seg("A %.2f %.2f 0 0 1 %.2f %.2f ", tr, tr, x+w, y+tr)
	}
	seg("V %.2f ", y+h-br)
	if br > 0 {
		seg("A %.2f %.2f 0 0 1 %.2f %.2f ", br, br, x+w-br, y+h)
	}
	seg("H %.2f ", x+bl)
	if bl > 0 {
		seg("A %.2f %.2f 0 0 1 %.2f %.2f ", bl, bl, x, y+h-bl)
	}
	seg("V %.2f ", y+tl)
	if tl > 0 {
		seg("A %.2f %.2f 0 0 1 %.2f %.2f ", tl, tl, x+tl, y)
	}
	seg("Z")
	return b.String()
}
