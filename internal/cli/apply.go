package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fogbanklabs/fogbank/pkg/fog"
	fogio "github.com/fogbanklabs/fogbank/pkg/io"
)

// applyOpts holds the command-line flags for the apply command.
type applyOpts struct {
	user       string // acting user id
	privileged bool   // erase any cell regardless of creator
	output     string // output path (defaults to overwriting the input)
}

// applyCommand creates the apply command for editing scenarios from the shell.
func (c *CLI) applyCommand() *cobra.Command {
	var opts applyOpts

	cmd := &cobra.Command{
		Use:   "apply [scenario] [op]...",
		Short: "Apply paint and erase operations to a scenario",
		Long: `Apply runs a sequence of operations against a scenario file and writes the
result back. Operations are applied in argument order.

Operation syntax:

  paint:COL,ROW              paint one cell
  erase:COL,ROW              erase one cell
  paint-rect:C1,R1:C2,R2     paint a rectangle between two corners
  erase-rect:C1,R1:C2,R2     erase own fog in a rectangle (all fog with --gm)

Example:

  fogbank apply table.json paint-rect:0,0:7,7 erase:3,3 --user alice`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runApply(args[0], args[1:], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.user, "user", "", "acting user id (required)")
	cmd.Flags().BoolVar(&opts.privileged, "gm", false, "erase any fog regardless of creator")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to overwriting the input)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func (c *CLI) runApply(input string, specs []string, opts *applyOpts) error {
	scenario, err := fogio.ImportJSON(input)
	if err != nil {
		return err
	}
	store, err := scenario.Store()
	if err != nil {
		return err
	}
	before := store.Len()

	for _, spec := range specs {
		op, err := parseOpSpec(spec, opts.user, opts.privileged)
		if err != nil {
			return err
		}
		if err := store.Apply(op); err != nil {
			return fmt.Errorf("apply %q: %w", spec, err)
		}
		c.Logger.Debugf("Applied %s", spec)
	}

	output := opts.output
	if output == "" {
		output = input
	}
	if err := fogio.ExportJSON(fogio.FromStore(store, scenario.CellSize), output); err != nil {
		return err
	}

	printSuccess("Applied %d op(s): %d cells → %d cells", len(specs), before, store.Len())
	printFile(output)
	return nil
}

// parseOpSpec parses one "kind:coords" operation argument into a fog op
// acting as the given user.
func parseOpSpec(spec, user string, privileged bool) (fog.Op, error) {
	kind, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return fog.Op{}, fmt.Errorf("invalid op %q (expected kind:coords)", spec)
	}

	switch kind {
	case "paint", "erase":
		col, row, err := parseCoord(rest)
		if err != nil {
			return fog.Op{}, fmt.Errorf("invalid op %q: %w", spec, err)
		}
		if kind == "paint" {
			return fog.Op{Kind: fog.OpPaint, Col: col, Row: row, Creator: user}, nil
		}
		return fog.Op{Kind: fog.OpErase, Col: col, Row: row}, nil

	case "paint-rect", "erase-rect":
		first, second, ok := strings.Cut(rest, ":")
		if !ok {
			return fog.Op{}, fmt.Errorf("invalid op %q (expected two corners)", spec)
		}
		col, row, err := parseCoord(first)
		if err != nil {
			return fog.Op{}, fmt.Errorf("invalid op %q: %w", spec, err)
		}
		col2, row2, err := parseCoord(second)
		if err != nil {
			return fog.Op{}, fmt.Errorf("invalid op %q: %w", spec, err)
		}
		if kind == "paint-rect" {
			return fog.Op{Kind: fog.OpPaintRect, Col: col, Row: row, Col2: col2, Row2: row2, Creator: user}, nil
		}
		return fog.Op{
			Kind: fog.OpEraseRect, Col: col, Row: row, Col2: col2, Row2: row2,
			Requester: user, Privileged: privileged,
		}, nil

	default:
		return fog.Op{}, fmt.Errorf("unknown op kind %q", kind)
	}
}

// parseCoord parses a "col,row" pair.
func parseCoord(s string) (col, row int, err error) {
	first, second, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected col,row, got %q", s)
	}
	col, err = strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, fmt.Errorf("bad column %q", first)
	}
	row, err = strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, fmt.Errorf("bad row %q", second)
	}
	return col, row, nil
}
