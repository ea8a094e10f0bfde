// Package pipeline provides the core fog pipeline for Fogbank.
//
// This package implements the complete scene → frame → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Scene: Segment the cell set into regions, classify boundaries, and
//     generate cloud contours (viewer-independent, cacheable)
//  2. Frame: Apply the visibility policy for one viewer
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    CellSize: 50,
//	    Viewer:   scene.Viewer{ID: "alice"},
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, store, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Scene only
//	sc, err := runner.BuildScene(ctx, store, opts)
//
//	// Frame from an existing scene
//	frame, err := runner.ComposeFrame(ctx, sc, opts)
//
//	// Render an existing frame
//	artifacts, err := runner.Render(ctx, frame, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fogbanklabs/fogbank/pkg/cache"
	"github.com/fogbanklabs/fogbank/pkg/errors"
	"github.com/fogbanklabs/fogbank/pkg/grid"
	"github.com/fogbanklabs/fogbank/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCellSize is the default cell edge length in pixels. It
	// matches the table grid most hosts draw at 100% zoom.
	DefaultCellSize = 50.0

	// DefaultStyle is the default visual style.
	DefaultStyle = "soft"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	"soft":  true,
	"plain": true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the fog pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scene options
	CellSize float64 `json:"cell_size,omitempty"`
	Refresh  bool    `json:"refresh,omitempty"`

	// Frame options
	Viewer scene.Viewer `json:"viewer"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the viewer-independent geometry.
	Scene *scene.Scene

	// SceneHash is the content hash of the serialized scene.
	SceneHash string

	// Frame is the scene composed for the requested viewer.
	Frame *scene.Frame

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount   int
	RegionCount int
	FluffCount  int
	SceneTime   time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether scene geometry came from cache
	FrameHit  bool // Whether the composed frame came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: soft, plain)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple times
// has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForScene(); err != nil {
		return err
	}
	if err := o.ValidateForFrame(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForScene checks required fields for scene building.
func (o *Options) ValidateForScene() error {
	if o.CellSize == 0 {
		o.CellSize = DefaultCellSize
	}
	if err := grid.ValidateCellSize(o.CellSize); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForFrame checks required fields for frame composition.
func (o *Options) ValidateForFrame() error {
	if err := errors.ValidateUserID(o.Viewer.ID); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// SceneKeyOpts returns cache key options for scene building.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		CellSize: o.CellSize,
	}
}

// FrameKeyOpts returns cache key options for frame composition.
func (o *Options) FrameKeyOpts() cache.FrameKeyOpts {
	return cache.FrameKeyOpts{
		ViewerID:   o.Viewer.ID,
		Privileged: o.Viewer.Privileged,
		Solo:       o.Viewer.Solo,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
	}
}
