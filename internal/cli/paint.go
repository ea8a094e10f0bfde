package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/fog/rangeop"
	"github.com/fogbanklabs/fogbank/pkg/grid"
	fogio "github.com/fogbanklabs/fogbank/pkg/io"
	"github.com/fogbanklabs/fogbank/pkg/pipeline"
)

// paintOpts holds the command-line flags for the paint command.
type paintOpts struct {
	user       string  // acting user id
	privileged bool    // erase any cell regardless of creator
	cellSize   float64 // cell edge length for new scenarios
}

// paintCommand creates the interactive paint command.
func (c *CLI) paintCommand() *cobra.Command {
	var opts paintOpts

	cmd := &cobra.Command{
		Use:   "paint [scenario]",
		Short: "Paint fog interactively in the terminal",
		Long: `Paint opens a terminal grid editor for a scenario file. Move the cursor,
paint and erase single cells, or drag rectangular ranges the way a table
host would with a pointer. The file is created if it does not exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPaint(args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.user, "user", "", "acting user id (required)")
	cmd.Flags().BoolVar(&opts.privileged, "gm", false, "erase any fog regardless of creator")
	cmd.Flags().Float64Var(&opts.cellSize, "cell-size", pipeline.DefaultCellSize, "cell edge length for new scenarios")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func (c *CLI) runPaint(path string, opts *paintOpts) error {
	store := fog.NewStore()
	cellSize := opts.cellSize

	if _, err := os.Stat(path); err == nil {
		scenario, err := fogio.ImportJSON(path)
		if err != nil {
			return err
		}
		if store, err = scenario.Store(); err != nil {
			return err
		}
		cellSize = scenario.CellSize
	}

	model := newPaintModel(path, store, cellSize, opts.user, opts.privileged)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	m := final.(paintModel)
	if m.dirty {
		printWarning("Unsaved changes discarded")
	}
	printDetail("%d cells in %s", m.store.Len(), path)
	return nil
}

// Paint grid dimensions shown in the terminal.
const (
	paintCols = 24
	paintRows = 16
)

var (
	paintOwnStyle     = lipgloss.NewStyle().Foreground(colorCyan)
	paintForeignStyle = lipgloss.NewStyle().Foreground(colorGray)
	paintEmptyStyle   = lipgloss.NewStyle().Foreground(colorDim)
	paintPreviewStyle = lipgloss.NewStyle().Foreground(colorYellow)
	paintCursorStyle  = lipgloss.NewStyle().Reverse(true)
)

// paintModel is the bubbletea model for the grid editor.
type paintModel struct {
	path       string
	store      *fog.Store
	cellSize   float64
	user       string
	privileged bool

	cursor  grid.Coord
	mode    rangeop.Mode
	gesture *rangeop.Gesture

	dirty  bool
	status string
}

func newPaintModel(path string, store *fog.Store, cellSize float64, user string, privileged bool) paintModel {
	return paintModel{
		path:       path,
		store:      store,
		cellSize:   cellSize,
		user:       user,
		privileged: privileged,
		mode:       rangeop.ModePaint,
		status:     "ready",
	}
}

func (m paintModel) Init() tea.Cmd {
	return nil
}

// cursorPixel returns the pixel center of the cursor cell, which is what a
// pointer gesture would report.
func (m paintModel) cursorPixel() (x, y float64) {
	return m.cursor.PixelCenter(m.cellSize)
}

func (m paintModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.cursor.Row--
		m = m.trackGesture()
	case "down", "j":
		m.cursor.Row++
		m = m.trackGesture()
	case "left", "h":
		m.cursor.Col--
		m = m.trackGesture()
	case "right", "l":
		m.cursor.Col++
		m = m.trackGesture()

	case " ":
		if m.mode == rangeop.ModePaint {
			m.store.Paint(m.cursor, m.user)
		} else {
			m.store.EraseRect(grid.RectAt(m.cursor), m.user, m.privileged)
		}
		m.dirty = true
		m.status = fmt.Sprintf("%s %s", m.mode, m.cursor)

	case "m":
		if m.mode == rangeop.ModePaint {
			m.mode = rangeop.ModeErase
		} else {
			m.mode = rangeop.ModePaint
		}
		m.status = fmt.Sprintf("mode: %s", m.mode)

	case "b":
		g, err := rangeop.NewGesture(m.mode, rangeop.Actor{ID: m.user, Privileged: m.privileged}, m.cellSize)
		if err != nil {
			m.status = err.Error()
			break
		}
		x, y := m.cursorPixel()
		if err := g.Begin(x, y); err != nil {
			m.status = err.Error()
			break
		}
		m.gesture = g
		m.status = fmt.Sprintf("dragging %s range from %s", m.mode, m.cursor)

	case "enter":
		if m.gesture == nil {
			break
		}
		x, y := m.cursorPixel()
		rect, count, err := m.gesture.Release(x, y, m.store)
		if err != nil {
			m.status = err.Error()
			break
		}
		m.gesture = nil
		m.dirty = true
		m.status = fmt.Sprintf("%s %s (%d cells touched)", m.mode, rect, count)

	case "esc":
		if m.gesture != nil {
			m.gesture.Cancel()
			m.gesture = nil
			m.status = "range cancelled"
		}

	case "s":
		if err := fogio.ExportJSON(fogio.FromStore(m.store, m.cellSize), m.path); err != nil {
			m.status = err.Error()
			break
		}
		m.dirty = false
		m.status = fmt.Sprintf("saved %s", m.path)
	}

	return m, nil
}

// trackGesture feeds the cursor position into an active range drag.
func (m paintModel) trackGesture() paintModel {
	if m.gesture == nil {
		return m
	}
	x, y := m.cursorPixel()
	if err := m.gesture.Move(x, y); err != nil {
		m.status = err.Error()
	}
	return m
}

func (m paintModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Fogbank Paint"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s as %s", m.mode, m.user)))
	b.WriteString("\n\n")

	var preview grid.Rect
	havePreview := false
	if m.gesture != nil {
		preview, havePreview = m.gesture.Preview()
	}

	for row := 0; row < paintRows; row++ {
		for col := 0; col < paintCols; col++ {
			c := grid.Coord{Col: col, Row: row}

			symbol := " ·"
			style := paintEmptyStyle
			if creator, ok := m.store.Creator(c); ok {
				symbol = "██"
				if creator == m.user {
					style = paintOwnStyle
				} else {
					style = paintForeignStyle
				}
			}
			if havePreview && preview.Contains(c) {
				style = paintPreviewStyle
			}
			if c == m.cursor {
				style = paintCursorStyle
			}
			b.WriteString(style.Render(symbol))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("arrows move · space paint/erase · b drag range · ⏎ release · esc cancel · m mode · s save · q quit"))
	b.WriteString("\n")
	dirtyMark := ""
	if m.dirty {
		dirtyMark = StyleWarning.Render(" [unsaved]")
	}
	b.WriteString(StyleDim.Render(m.status) + dirtyMark)
	b.WriteString("\n")

	return b.String()
}
