package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/errors"
)

// newOpts holds the flags of the new command.
type newOpts struct {
	shapeOpts
	rows, cols int
	solved     bool
}

// newCommand creates the new command, which runs the whole pipeline.
func (c *CLI) newCommand() *cobra.Command {
	opts := newOpts{}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a puzzle: generate, cut and scatter in one step",
		Long: `Build a complete puzzle. The outline is generated and cut on the canvas,
then the pieces are scattered over the same canvas.

Outlines and puzzles are cached by family, canvas, seed and grid; every
puzzle still gets a fresh ID.`,
		Example: `  jigsaw new --family cloud --rows 4 --cols 4
  jigsaw new --solved -o solved.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.family, "family", "f", "", "shape family: polygon, cloud, jagged (default from config)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default from config)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "grid rows (default from config)")
	cmd.Flags().IntVar(&opts.cols, "cols", 0, "grid columns (default from config)")
	cmd.Flags().BoolVar(&opts.solved, "solved", false, "skip scattering")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "puzzle.json", "output file, - for stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even if cached")

	return cmd
}

func (c *CLI) runNew(cmd *cobra.Command, opts newOpts) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions()
	if opts.family != "" {
		popts.Family = opts.family
	}
	if opts.seed != 0 {
		popts.Seed = opts.seed
	}
	if opts.rows != 0 {
		popts.Rows = opts.rows
	}
	if opts.cols != 0 {
		popts.Cols = opts.cols
	}
	canvas := canvasOr(opts.width, opts.height, popts.Canvas())
	popts.Width, popts.Height = canvas.Width, canvas.Height
	popts.Solved = opts.solved
	popts.Refresh = opts.refresh

	quiet := opts.output == stdio
	var spinner *Spinner
	if !quiet {
		spinner = newSpinnerWithContext(ctx, "Building puzzle...")
		spinner.Start()
	}
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		if spinner != nil {
			spinner.Stop()
		}
		return err
	}

	p := res.Puzzle
	if !quiet {
		spinner.StopWithSuccess(fmt.Sprintf("Built %s puzzle", StyleHighlight.Render(string(p.Family))))
		printStats(res.Stats.Points, res.Stats.Pieces, res.CacheInfo.PuzzleHit)
		printKeyValue("ID", p.ID)
		printKeyValue("Grid", fmt.Sprintf("%dx%d", popts.Rows, popts.Cols))
		for _, f := range res.Failures {
			printWarning("Piece %d kept in place: %s", f.Index, errors.UserMessage(f.Err))
		}
	}
	if err := writeDocument(p.Document(), opts.output); err != nil {
		return err
	}
	if !quiet {
		printNextStep("Preview it", "jigsaw preview --input "+opts.output)
	}
	return nil
}
