package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/adapt"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/observability"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
)

// Terminal cells are roughly twice as tall as they are wide, so each cell
// covers one canvas unit horizontally and two vertically.
const cellAspect = 2

// Raster values for cells that hold no piece.
const (
	cellEmpty   = -1
	cellOutline = -2
)

var piecePalette = []lipgloss.Color{"36", "35", "220", "167", "75", "141", "209", "114", "183", "45"}

var (
	previewOutlineStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewStatusStyle  = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Command
// =============================================================================

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		input   string
		noCache bool
	)
	popts := shapeOpts{}
	var rows, cols int
	var solved bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show a puzzle in the terminal and adapt it as the window resizes",
		Long: `Preview draws a puzzle in the terminal. Every time the terminal is
resized the puzzle is adapted from its original canvas onto the new size,
the same way a host adapts it when its canvas changes.

Keys: o toggles the outline, q quits.`,
		Example: `  jigsaw preview --family cloud --rows 4 --cols 4
  jigsaw preview --input scattered.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var puzzle *pipeline.Puzzle
			if input != "" {
				doc, err := readDocument(input)
				if err != nil {
					return err
				}
				if puzzle, err = pipeline.FromDocument(doc); err != nil {
					return err
				}
			} else {
				opts := c.pipelineOptions()
				if popts.family != "" {
					opts.Family = popts.family
				}
				if popts.seed != 0 {
					opts.Seed = popts.seed
				}
				if rows != 0 {
					opts.Rows = rows
				}
				if cols != 0 {
					opts.Cols = cols
				}
				opts.Solved = solved
				res, err := runner.Execute(ctx, opts)
				if err != nil {
					return err
				}
				puzzle = res.Puzzle
			}

			aopts := c.Config.AdaptOptions()
			aopts.Hooks = observability.NoopAdaptHooks{}
			m := newPreviewModel(ctx, runner, puzzle, aopts)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "preview a puzzle document instead of generating one")
	cmd.Flags().StringVarP(&popts.family, "family", "f", "", "shape family (default from config)")
	cmd.Flags().Uint64Var(&popts.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().IntVar(&rows, "rows", 0, "grid rows (default from config)")
	cmd.Flags().IntVar(&cols, "cols", 0, "grid columns (default from config)")
	cmd.Flags().BoolVar(&solved, "solved", false, "show the pieces in their solved layout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// =============================================================================
// Model
// =============================================================================

// previewModel is the bubbletea model behind jigsaw preview.
type previewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	puzzle *pipeline.Puzzle
	opts   adapt.Options

	cols, rows  int
	view        *pipeline.View
	err         error
	showOutline bool
}

func newPreviewModel(ctx context.Context, r *pipeline.Runner, p *pipeline.Puzzle, opts adapt.Options) previewModel {
	return previewModel{ctx: ctx, runner: r, puzzle: p, opts: opts, showOutline: true}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "o":
			m.showOutline = !m.showOutline
		}
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = max(msg.Height-1, 1) // status line
		m.view, m.err = m.resize()
	}
	return m, nil
}

// resize adapts the puzzle onto the current terminal canvas.
func (m previewModel) resize() (*pipeline.View, error) {
	canvas := geometry.Size(float64(m.cols), float64(m.rows*cellAspect))
	return m.runner.Resize(m.ctx, m.puzzle, canvas, m.opts)
}

func (m previewModel) View() string {
	if m.view == nil {
		return StyleDim.Render("Waiting for terminal size…")
	}

	var outline []geometry.Point
	if m.showOutline {
		outline = m.view.Shape
	}
	raster := rasterize(m.view.Pieces, outline, m.cols, m.rows)

	var b strings.Builder
	for y, row := range raster {
		if y > 0 {
			b.WriteByte('\n')
		}
		writeRow(&b, row)
	}
	b.WriteByte('\n')
	b.WriteString(m.status())
	return b.String()
}

func (m previewModel) status() string {
	s := fmt.Sprintf("%dx%d · scale %.3f · %d pieces · o outline · q quit",
		m.cols, m.rows*cellAspect, m.view.Metrics.ScaleFactor.X, len(m.view.Pieces))
	if m.err != nil {
		return StyleWarning.Render(m.err.Error())
	}
	return previewStatusStyle.Render(s)
}

// writeRow renders one raster row, styling runs of equal cells together.
func writeRow(b *strings.Builder, row []int) {
	for start := 0; start < len(row); {
		end := start
		for end < len(row) && row[end] == row[start] {
			end++
		}
		n := end - start
		switch v := row[start]; v {
		case cellEmpty:
			b.WriteString(strings.Repeat(" ", n))
		case cellOutline:
			b.WriteString(previewOutlineStyle.Render(strings.Repeat("·", n)))
		default:
			style := lipgloss.NewStyle().Foreground(piecePalette[v%len(piecePalette)])
			b.WriteString(style.Render(strings.Repeat("█", n)))
		}
		start = end
	}
}

// rasterize maps each terminal cell to the piece covering its center, or
// to cellOutline/cellEmpty. Later pieces are drawn on top of earlier ones.
func rasterize(pieces []geometry.Piece, outline []geometry.Point, cols, rows int) [][]int {
	bounds := make([]geometry.Bounds, len(pieces))
	for i, p := range pieces {
		bounds[i] = p.RotatedBounds()
	}
	rotated := make([][]geometry.Point, len(pieces))
	for i, p := range pieces {
		rotated[i] = rotatedPoints(p)
	}

	raster := make([][]int, rows)
	for y := range raster {
		raster[y] = make([]int, cols)
		for x := range raster[y] {
			pt := geometry.Pt(float64(x)+0.5, (float64(y)+0.5)*cellAspect)
			cell := cellEmpty
			for i := len(pieces) - 1; i >= 0; i-- {
				bb := bounds[i]
				if pt.X < bb.MinX || pt.X > bb.MaxX || pt.Y < bb.MinY || pt.Y > bb.MaxY {
					continue
				}
				if geometry.PointInPolygon(pt, rotated[i]) {
					cell = i
					break
				}
			}
			if cell == cellEmpty && len(outline) > 0 && geometry.PointInPolygon(pt, outline) {
				cell = cellOutline
			}
			raster[y][x] = cell
		}
	}
	return raster
}

// rotatedPoints returns the piece polygon as it is displayed.
func rotatedPoints(p geometry.Piece) []geometry.Point {
	if p.Rotation == 0 {
		return p.Points
	}
	out := make([]geometry.Point, len(p.Points))
	for i, pt := range p.Points {
		out[i] = geometry.Rotate(pt, p.Center(), p.Rotation)
	}
	return out
}
