// Package scene defines the serializable geometry types flowing through
// the fog pipeline.
//
// A Scene is the viewer-independent geometry of a cell set: connected
// regions with per-cell boundary classification and cloud contours. A
// Frame is a Scene composed for one viewer, with a render treatment
// attached to each region. Scenes are expensive and cache well (they are
// pure functions of the cell set and cell size); frames are cheap and
// derived per viewer.
//
// All types round-trip through JSON, which is both the cache encoding and
// the machine-readable render format.
package scene

import (
	"encoding/json"
	"fmt"

	"github.com/fogbanklabs/fogbank/pkg/fog/boundary"
	"github.com/fogbanklabs/fogbank/pkg/fog/contour"
	"github.com/fogbanklabs/fogbank/pkg/fog/visibility"
	"github.com/fogbanklabs/fogbank/pkg/grid"
)

// Cell is one painted cell of a region with its boundary classification.
type Cell struct {
	// Key is the canonical "col,row" form of the cell coordinate.
	Key string `json:"key"`

	Exposure boundary.Exposure `json:"exposure"`
}

// Coord parses the cell's canonical key.
func (c Cell) Coord() (grid.Coord, error) {
	return grid.ParseKey(c.Key)
}

// Region is one connected fog region with its contour geometry.
// Cells are ordered canonically (row, then column).
type Region struct {
	Creator string        `json:"creator"`
	Bounds  grid.Rect     `json:"bounds"`
	Cells   []Cell        `json:"cells"`
	Cloud   contour.Cloud `json:"cloud"`
}

// Scene is the viewer-independent geometry of a full cell set.
// Regions are ordered by their seed cell's scan position.
type Scene struct {
	CellSize  float64  `json:"cell_size"`
	CellsHash string   `json:"cells_hash"`
	Regions   []Region `json:"regions"`
}

// RegionCount returns the number of regions in the scene.
func (s *Scene) RegionCount() int { return len(s.Regions) }

// CellCount returns the total number of painted cells across regions.
func (s *Scene) CellCount() int {
	n := 0
	for _, r := range s.Regions {
		n += len(r.Cells)
	}
	return n
}

// FluffCount returns the total number of contour fluffs across regions.
func (s *Scene) FluffCount() int {
	n := 0
	for _, r := range s.Regions {
		n += len(r.Cloud.Fluffs)
	}
	return n
}

// Viewer identifies who a frame is composed for.
type Viewer struct {
	ID         string `json:"id"`
	Privileged bool   `json:"privileged,omitempty"`
	Solo       bool   `json:"solo,omitempty"`
}

// FrameRegion is a scene region plus the treatment the viewer receives.
type FrameRegion struct {
	Region
	Treatment visibility.Treatment `json:"treatment"`
}

// Frame is a scene composed for one viewer: the renderer's full input.
type Frame struct {
	CellSize float64       `json:"cell_size"`
	Viewer   Viewer        `json:"viewer"`
	Regions  []FrameRegion `json:"regions"`
}

// MarshalScene encodes a scene for caching or transport.
func MarshalScene(s *Scene) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

// UnmarshalScene decodes a cached scene.
func UnmarshalScene(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal scene: %w", err)
	}
	return &s, nil
}

// MarshalFrame encodes a frame for caching or transport.
func MarshalFrame(f *Frame) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal frame: %w", err)
	}
	return data, nil
}

// UnmarshalFrame decodes a cached frame.
func UnmarshalFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal frame: %w", err)
	}
	return &f, nil
}
