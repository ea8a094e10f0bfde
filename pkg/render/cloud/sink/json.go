package sink

import (
	"encoding/json"

	"github.com/fogbanklabs/fogbank/pkg/scene"
)

// RenderJSON emits the frame as indented JSON: one entry per region with
// its treatment, cells, cloud fluffs, and vertical span. This is the
// machine-readable render contract for hosts that draw with their own
// primitives instead of consuming SVG.
func RenderJSON(f *scene.Frame) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}
