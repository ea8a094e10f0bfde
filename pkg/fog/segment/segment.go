// Package segment groups painted fog cells into connected regions.
//
// A region is a maximal set of cells connected through 4-directional
// adjacency (shared edges; diagonal contact does not connect). Regions are
// recomputed from scratch on every call — they carry no identity across
// recomputations — and the result is fully deterministic: region order,
// cell enumeration, and creator inheritance all derive from canonical scan
// order rather than map iteration.
package segment

import (
	"slices"

	"github.com/fogbanklabs/fogbank/pkg/grid"
)

// Region is a maximal 4-connected cluster of painted cells.
type Region struct {
	// Cells is the membership set of the region.
	Cells map[grid.Coord]struct{}

	// Creator is the inherited owner of the region: the creator of the
	// region's seed cell, i.e. the first member cell in canonical scan
	// order. Regions need not be authorship-homogeneous; the seed rule
	// is the deterministic tie-break when painters' areas merge.
	Creator string

	// Bounds is the inclusive bounding box of the member cells.
	Bounds grid.Rect
}

// Contains reports whether c belongs to the region. Boundary
// classification is region-local, so it looks up neighbors here rather
// than in the global cell set.
func (r *Region) Contains(c grid.Coord) bool {
	_, ok := r.Cells[c]
	return ok
}

// Size returns the number of cells in the region.
func (r *Region) Size() int { return len(r.Cells) }

// Coords returns the member cells in canonical scan order.
func (r *Region) Coords() []grid.Coord {
	out := make([]grid.Coord, 0, len(r.Cells))
	for c := range r.Cells {
		out = append(out, c)
	}
	slices.SortFunc(out, grid.Coord.Compare)
	return out
}

// Regions partitions the painted cells into maximal 4-connected regions
// using breadth-first flood fill. The cost is O(N) in painted cells and
// independent of grid extent; empty cells are never visited.
//
// Regions are returned ordered by their seed cell's scan position, and a
// region's creator is its seed cell's creator, so repeated calls over the
// same cell set produce identical output.
func Regions(cells map[grid.Coord]string) []*Region {
	if len(cells) == 0 {
		return nil
	}

	seeds := make([]grid.Coord, 0, len(cells))
	for c := range cells {
		seeds = append(seeds, c)
	}
	slices.SortFunc(seeds, grid.Coord.Compare)

	visited := make(map[grid.Coord]struct{}, len(cells))
	var regions []*Region

	for _, seed := range seeds {
		if _, seen := visited[seed]; seen {
			continue
		}

		region := &Region{
			Cells:   make(map[grid.Coord]struct{}),
			Creator: cells[seed],
			Bounds:  grid.RectAt(seed),
		}

		queue := []grid.Coord{seed}
		visited[seed] = struct{}{}

		for len(queue) > 0 {
			cell := queue[0]
			queue = queue[1:]

			region.Cells[cell] = struct{}{}
			region.Bounds = region.Bounds.Expand(cell)

			for _, n := range cell.Neighbors4() {
				if _, painted := cells[n]; !painted {
					continue
				}
				if _, seen := visited[n]; seen {
					continue
				}
				visited[n] = struct{}{}
				queue = append(queue, n)
			}
		}

		regions = append(regions, region)
	}

	return regions
}
