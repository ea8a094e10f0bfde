package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	fogio "github.com/fogbanklabs/fogbank/pkg/io"
	"github.com/fogbanklabs/fogbank/pkg/pipeline"
	"github.com/fogbanklabs/fogbank/pkg/render/regiongraph"
	"github.com/fogbanklabs/fogbank/pkg/scene"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	dot      string // write the region graph to this path (.dot, .svg, .png, .pdf)
	detailed bool   // include boundary exposure in the region graph
}

// inspectCommand creates the inspect command for examining scenario structure.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [scenario]",
		Short: "Show the region structure of a fog scenario",
		Long: `Inspect loads a scenario, segments it into connected regions, and prints a
summary table. With --dot it also writes a Graphviz diagram of the region
structure for debugging segmentation and boundary classification.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the region graph to a file (.dot, .svg, .png, .pdf)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include boundary exposure in the region graph")

	return cmd
}

func (c *CLI) runInspect(input string, opts *inspectOpts) error {
	scenario, err := fogio.ImportJSON(input)
	if err != nil {
		return err
	}
	store, err := scenario.Store()
	if err != nil {
		return err
	}

	sc, err := pipeline.BuildScene(store, scenario.CellSize)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(filepath.Base(input)))
	printDetail("%d cells, %d regions, cell size %g", sc.CellCount(), sc.RegionCount(), sc.CellSize)
	fmt.Println()
	fmt.Println(regionTable(sc))

	if opts.dot != "" {
		if err := writeRegionGraph(sc, opts.dot, opts.detailed); err != nil {
			return err
		}
		printFile(opts.dot)
	}

	printNextStep("Render a frame", fmt.Sprintf("fogbank render %s --viewer <id>", input))
	return nil
}

// regionTable formats the scene's regions as a bordered table.
func regionTable(sc *scene.Scene) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(sc.Regions))
	for i, region := range sc.Regions {
		exposed := 0
		for _, cell := range region.Cells {
			if cell.Exposure.AnyExposed() {
				exposed++
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			region.Creator,
			fmt.Sprintf("%d", len(region.Cells)),
			fmt.Sprintf("%d", exposed),
			fmt.Sprintf("%d", len(region.Cloud.Fluffs)),
			region.Bounds.String(),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Creator", "Cells", "Boundary", "Fluffs", "Bounds").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// writeRegionGraph renders the scene's region graph to path, choosing the
// output encoding from the file extension.
func writeRegionGraph(sc *scene.Scene, path string, detailed bool) error {
	dot := regiongraph.ToDOT(sc, regiongraph.Options{Detailed: detailed})

	var data []byte
	var err error
	switch filepath.Ext(path) {
	case ".dot":
		data = []byte(dot)
	case ".svg":
		data, err = regiongraph.RenderSVG(dot)
	case ".png":
		data, err = regiongraph.RenderPNG(dot, 2.0)
	case ".pdf":
		data, err = regiongraph.RenderPDF(dot)
	default:
		return fmt.Errorf("unknown region graph extension %q (use .dot, .svg, .png, or .pdf)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
