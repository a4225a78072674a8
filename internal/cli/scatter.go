package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/scatter"
)

// scatterOpts holds the flags of the scatter command.
type scatterOpts struct {
	width    float64
	height   float64
	mobile   bool
	portrait bool
	output   string
}

// scatterCommand creates the scatter command.
func (c *CLI) scatterCommand() *cobra.Command {
	opts := scatterOpts{}

	cmd := &cobra.Command{
		Use:   "scatter [pieces.json]",
		Short: "Scatter pieces over a canvas",
		Long: `Scatter pieces over a grid laid across the canvas, with a random offset
and a fixed rotation per piece.

The device class decides the margin, grid density and ordering. It is
derived from the canvas unless --mobile or --portrait is given.`,
		Example: `  jigsaw scatter pieces.json -o scattered.json
  jigsaw scatter pieces.json --width 390 --height 844 --mobile --portrait`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := stdio
			if len(args) == 1 {
				input = args[0]
			}
			return c.runScatter(cmd, input, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default from config)")
	cmd.Flags().BoolVar(&opts.mobile, "mobile", false, "treat the canvas as a mobile device")
	cmd.Flags().BoolVar(&opts.portrait, "portrait", false, "treat the canvas as portrait")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "scattered.json", "output file, - for stdout")

	return cmd
}

func (c *CLI) runScatter(cmd *cobra.Command, input string, opts scatterOpts) error {
	doc, err := readDocument(input)
	if err != nil {
		return err
	}
	if len(doc.Pieces) == 0 {
		return errors.New(errors.ErrCodeMissingData, "%s has no pieces to scatter", input)
	}

	canvas := canvasOr(opts.width, opts.height, c.Config.Canvas())
	if doc.Canvas != nil && opts.width == 0 && opts.height == 0 {
		canvas = *doc.Canvas
	}

	sopts := c.Config.ScatterOptions()
	if cmd.Flags().Changed("mobile") || cmd.Flags().Changed("portrait") {
		d := scatter.Classify(canvas)
		d.IsMobile = opts.mobile
		d.IsPortrait = opts.portrait
		sopts.Device = &d
	}

	prog := newProgress(loggerFromContext(cmd.Context()))
	res, err := scatter.Scatter(cmd.Context(), doc.Pieces, canvas, sopts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scattered %d pieces", len(res.Pieces)))

	if res.Skipped {
		if opts.output != stdio {
			printWarning("Some pieces have no points, nothing was scattered")
		}
		return writeDocument(doc, opts.output)
	}

	doc.Pieces = res.Pieces
	doc.Scattered = true
	doc.ScatterCanvas = &canvas
	if opts.output != stdio {
		printSuccess("Scattered %d pieces on %gx%g", len(res.Pieces), canvas.Width, canvas.Height)
		printDetail("grid %dx%d, margin %.0fpx", res.GridSize, res.GridSize, res.Margin)
		for _, f := range res.Failures {
			printWarning("Piece %d kept in place: %s", f.Index, errors.UserMessage(f.Err))
		}
	}
	return writeDocument(doc, opts.output)
}
