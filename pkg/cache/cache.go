// Package cache provides content-addressed caching for the fog pipeline.
//
// Scene geometry (segmentation plus contours) is expensive relative to the
// per-viewer visibility pass, and it is a pure function of the cell set and
// cell size, so it caches perfectly: keys are derived from the store's
// content hash, never from wall-clock or call order, which preserves the
// engine's determinism guarantees.
//
// Backends: a file cache for CLI usage, a Redis cache for the shared
// server, and a null cache for tests or when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Default TTLs per key type. Scene geometry and artifacts are content
// addressed, so they could live forever; the TTLs just bound disk usage.
const (
	TTLScene    = 7 * 24 * time.Hour
	TTLFrame    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SceneKeyOpts are the inputs that affect scene geometry beyond the cell
// set itself.
type SceneKeyOpts struct {
	CellSize float64 `json:"cell_size"`
}

// FrameKeyOpts are the viewer inputs that affect frame composition.
type FrameKeyOpts struct {
	ViewerID   string `json:"viewer_id"`
	Privileged bool   `json:"privileged"`
	Solo       bool   `json:"solo"`
}

// ArtifactKeyOpts are the rendering inputs that affect an exported artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style"`
}

// Keyer generates cache keys for the pipeline's stages.
type Keyer interface {
	// SceneKey generates a key for cached scene geometry, derived from
	// the cell store's content hash.
	SceneKey(cellsHash string, opts SceneKeyOpts) string

	// FrameKey generates a key for a composed per-viewer frame.
	FrameKey(sceneHash string, opts FrameKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates globally-scoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SceneKey generates a key for cached scene geometry.
func (k *DefaultKeyer) SceneKey(cellsHash string, opts SceneKeyOpts) string {
	return hashKey("scene", cellsHash, opts)
}

// FrameKey generates a key for a composed per-viewer frame.
func (k *DefaultKeyer) FrameKey(sceneHash string, opts FrameKeyOpts) string {
	return hashKey("frame", sceneHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", frameHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
