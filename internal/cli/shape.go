package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	jio "github.com/matzehuels/jigsaw/pkg/io"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/scatter"
	"github.com/matzehuels/jigsaw/pkg/shape"
)

// shapeOpts holds the flags of the shape command.
type shapeOpts struct {
	family  string
	width   float64
	height  float64
	seed    uint64
	output  string
	noCache bool
	refresh bool
}

// shapeCommand creates the shape command for generating an outline.
func (c *CLI) shapeCommand() *cobra.Command {
	opts := shapeOpts{}

	cmd := &cobra.Command{
		Use:   "shape",
		Short: "Generate a random puzzle outline",
		Long: `Generate a random outline of the given family, fitted and centered on the canvas.

Families:
  polygon   5 to 9 straight edges
  cloud     smooth closed curve
  jagged    spiky closed curve

The same family, canvas and seed always give the same outline.`,
		Example: `  jigsaw shape --family cloud -o cloud.json
  jigsaw shape --width 1200 --height 900 --seed 7 -o -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShape(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.family, "family", "f", "", "shape family: polygon, cloud, jagged (default from config)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default from config)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "shape.json", "output file, - for stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if cached")

	return cmd
}

func (c *CLI) runShape(cmd *cobra.Command, opts shapeOpts) error {
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
	canvas := canvasOr(opts.width, opts.height, popts.Canvas())
	popts.Width, popts.Height = canvas.Width, canvas.Height
	popts.Refresh = opts.refresh

	prog := newProgress(loggerFromContext(ctx))
	outline, cached, err := runner.ShapeWithCacheInfo(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %s outline", popts.Family))

	doc := &jio.Document{
		Family: popts.Family,
		Seed:   popts.Seed,
		Canvas: &canvas,
		Shape:  outline,
	}
	if opts.output != stdio {
		printSuccess("Generated %s outline", StyleHighlight.Render(popts.Family))
		printStats(len(outline), 0, cached)
	}
	if err := writeDocument(doc, opts.output); err != nil {
		return err
	}
	if opts.output != stdio {
		printNextStep("Cut it into pieces", "jigsaw cut "+opts.output)
	}
	return nil
}

// pipelineOptions seeds pipeline options from the loaded configuration.
func (c *CLI) pipelineOptions() pipeline.Options {
	cfg := c.Config
	opts := pipeline.Options{
		Family: cfg.Shape.Family,
		Seed:   cfg.Shape.Seed,
		Rows:   cfg.Cut.Rows,
		Cols:   cfg.Cut.Cols,
		Width:  cfg.Scatter.Width,
		Height: cfg.Scatter.Height,
		Logger: c.Logger,
	}
	so := cfg.ShapeOptions().Options
	if so != shape.DefaultOptions() {
		opts.ShapeOptions = &so
	}
	if m := cfg.Scatter.Margins; m != scatter.DefaultMargins() {
		opts.Margins = &m
	}
	return opts
}
