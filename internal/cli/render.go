package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	fogio "github.com/fogbanklabs/fogbank/pkg/io"
	"github.com/fogbanklabs/fogbank/pkg/pipeline"
	"github.com/fogbanklabs/fogbank/pkg/scene"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	viewer     string   // member id the frame is composed for
	privileged bool     // player-perspective view (gamemaster)
	solo       bool     // solo mode: own fog rendered opaque too
	formats    []string // output formats: "svg", "png", "pdf", "json"
	style      string   // visual style: "soft" or "plain"
	cellSize   float64  // cell edge length override
	noCache    bool     // disable the file cache
	refresh    bool     // bypass cached scene geometry
}

// renderCommand creates the render command for generating fog frames.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		style: pipeline.DefaultStyle,
	}

	cmd := &cobra.Command{
		Use:   "render [scenario]",
		Short: "Render a fog scenario for one viewer",
		Long: `Render loads a scenario file, builds the fog scene, composes the frame for
the requested viewer, and writes the output files. The viewer's own fog is
rendered translucent; everyone else's is opaque.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.viewer, "viewer", "", "viewer id the frame is composed for (required)")
	cmd.Flags().BoolVar(&opts.privileged, "gm", false, "render the player-perspective (gamemaster) view")
	cmd.Flags().BoolVar(&opts.solo, "solo", false, "render own fog opaque too")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: soft (default), plain")
	cmd.Flags().Float64Var(&opts.cellSize, "cell-size", 0, "cell edge length in pixels (overrides the scenario)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached scene geometry")
	_ = cmd.MarkFlagRequired("viewer")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	prog := newProgress(c.Logger)

	scenario, err := fogio.ImportJSON(input)
	if err != nil {
		return err
	}
	store, err := scenario.Store()
	if err != nil {
		return err
	}
	c.Logger.Debugf("Loaded scenario: %d cells", store.Len())

	cellSize := scenario.CellSize
	if opts.cellSize != 0 {
		cellSize = opts.cellSize
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinner(cmd.Context(), "Rendering fog")
	spin.Start()

	result, err := runner.Execute(cmd.Context(), store, pipeline.Options{
		CellSize: cellSize,
		Refresh:  opts.refresh,
		Viewer: scene.Viewer{
			ID:         opts.viewer,
			Privileged: opts.privileged,
			Solo:       opts.solo,
		},
		Formats: opts.formats,
		Style:   opts.style,
	})
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		var path string
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		} else {
			path = fmt.Sprintf("%s.%s", base, format)
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(result.Stats.CellCount, result.Stats.RegionCount, result.CacheInfo.SceneHit)
	prog.done(fmt.Sprintf("Rendered %d format(s) for %s", len(opts.formats), opts.viewer))
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
