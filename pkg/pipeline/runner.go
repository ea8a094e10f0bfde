package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fogbanklabs/fogbank/pkg/cache"
	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/observability"
	"github.com/fogbanklabs/fogbank/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete scene → frame → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, store *fog.Store, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Scene
	sceneStart := time.Now()
	sc, sceneHit, err := r.BuildSceneWithCacheInfo(ctx, store, opts)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	result.Scene = sc
	result.Stats.SceneTime = time.Since(sceneStart)
	result.Stats.CellCount = sc.CellCount()
	result.Stats.RegionCount = sc.RegionCount()
	result.Stats.FluffCount = sc.FluffCount()
	result.CacheInfo.SceneHit = sceneHit

	// Compute scene hash for cache keys and API responses
	if sceneData, err := scene.MarshalScene(sc); err == nil {
		result.SceneHash = cache.Hash(sceneData)
	}

	r.Logger.Info("built scene",
		"cells", result.Stats.CellCount,
		"regions", result.Stats.RegionCount,
		"fluffs", result.Stats.FluffCount,
		"duration", result.Stats.SceneTime)

	// Stage 2: Frame
	composeStart := time.Now()
	frame, frameHit, err := r.ComposeFrameWithCacheInfo(ctx, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	result.Frame = frame
	result.Stats.ComposeTime = time.Since(composeStart)
	result.CacheInfo.FrameHit = frameHit

	r.Logger.Info("composed frame",
		"viewer", opts.Viewer.ID,
		"regions", len(frame.Regions),
		"duration", result.Stats.ComposeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, frame, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildSceneWithCacheInfo builds scene geometry with caching and returns cache hit info.
func (r *Runner) BuildSceneWithCacheInfo(ctx context.Context, store *fog.Store, opts Options) (*scene.Scene, bool, error) {
	if err := opts.ValidateForScene(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.SceneKey(store.Hash(), opts.SceneKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if sc, err := scene.UnmarshalScene(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				return sc, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	// Build. The engine hooks for segmentation and contouring fire inside.
	sc, err := buildScene(ctx, store, opts.CellSize)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := scene.MarshalScene(sc); err == nil {
			observability.Cache().OnCacheSet(ctx, "scene", len(data))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
		}
	}

	return sc, false, nil // Cache miss
}

// BuildScene is a convenience wrapper that calls BuildSceneWithCacheInfo and discards the cache hit info.
func (r *Runner) BuildScene(ctx context.Context, store *fog.Store, opts Options) (*scene.Scene, error) {
	sc, _, err := r.BuildSceneWithCacheInfo(ctx, store, opts)
	return sc, err
}

// ComposeFrameWithCacheInfo composes a frame with caching and returns cache hit info.
func (r *Runner) ComposeFrameWithCacheInfo(ctx context.Context, sc *scene.Scene, opts Options) (*scene.Frame, bool, error) {
	if err := opts.ValidateForFrame(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from scene content
	sceneData, err := scene.MarshalScene(sc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	cacheKey := r.Keyer.FrameKey(cache.Hash(sceneData), opts.FrameKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if frame, err := scene.UnmarshalFrame(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "frame")
			return frame, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "frame")

	// Compose
	start := time.Now()
	observability.Engine().OnComposeStart(ctx, opts.Viewer.ID)
	frame := ComposeFrame(sc, opts.Viewer)
	observability.Engine().OnComposeComplete(ctx, opts.Viewer.ID, len(frame.Regions), time.Since(start), nil)

	// Cache the result
	if data, err := scene.MarshalFrame(frame); err == nil {
		observability.Cache().OnCacheSet(ctx, "frame", len(data))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLFrame)
	}

	return frame, false, nil // Cache miss
}

// ComposeFrame is a convenience wrapper that calls ComposeFrameWithCacheInfo and discards the cache hit info.
func (r *Runner) ComposeFrame(ctx context.Context, sc *scene.Scene, opts Options) (*scene.Frame, error) {
	frame, _, err := r.ComposeFrameWithCacheInfo(ctx, sc, opts)
	return frame, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, frame *scene.Frame, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from frame data
	frameData, err := scene.MarshalFrame(frame)
	if err != nil {
		return nil, false, fmt.Errorf("serialize frame for cache key: %w", err)
	}
	frameHash := cache.Hash(frameData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := RenderFrame(frame, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, frame *scene.Frame, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, frame, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
