package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/adapt"
	"github.com/matzehuels/jigsaw/pkg/errors"
	jio "github.com/matzehuels/jigsaw/pkg/io"
	"github.com/matzehuels/jigsaw/pkg/projection"
)

// adaptOpts holds the flags of the adapt command.
type adaptOpts struct {
	width        float64
	height       float64
	mode         string
	strategy     string
	safetyMargin float64
	output       string
}

// adaptCommand creates the adapt command.
func (c *CLI) adaptCommand() *cobra.Command {
	opts := adaptOpts{}

	cmd := &cobra.Command{
		Use:   "adapt [document.json]",
		Short: "Adapt a shape or pieces to a new canvas size",
		Long: `Adapt re-projects a document onto a target canvas.

The mode is taken from the document unless --mode is given:
  shape       the document only has an outline
  puzzle      pieces that were cut but never scattered
  scattered   pieces that were scattered (needs the scatter canvas)

The output is the adaptation result as a host would receive it: the
adapted data under "adaptedData" plus metrics. A failed adaptation writes
nothing and exits non-zero.`,
		Example: `  jigsaw adapt scattered.json --width 390 --height 844
  jigsaw adapt cloud.json --width 1920 --height 1080 --strategy independent -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := stdio
			if len(args) == 1 {
				input = args[0]
			}
			return c.runAdapt(cmd, input, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", 0, "target canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "target canvas height")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "shape, puzzle or scattered (default from document)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "scaling strategy: minEdge, maxEdge, independent (default from config)")
	cmd.Flags().Float64Var(&opts.safetyMargin, "safety-margin", 0, "scattered mode edge margin in pixels (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "adapted.json", "output file, - for stdout")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func (c *CLI) runAdapt(cmd *cobra.Command, input string, opts adaptOpts) error {
	doc, err := readDocument(input)
	if err != nil {
		return err
	}
	cfg, err := adaptConfig(doc, opts.mode)
	if err != nil {
		return err
	}
	cfg.TargetCanvas.Width, cfg.TargetCanvas.Height = opts.width, opts.height
	cfg.Options = c.Config.AdaptOptions()
	if opts.strategy != "" {
		cfg.Options.Strategy = projection.Strategy(opts.strategy)
	}
	if opts.safetyMargin != 0 {
		cfg.Options.SafetyMargin = opts.safetyMargin
	}

	res := adapt.NewEngine(nil).Adapt(cmd.Context(), cfg)
	if !res.Success {
		return fmt.Errorf("adapt %s: %w", cfg.Mode, res.Err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	data = append(data, '\n')
	if opts.output == stdio {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}

	printSuccess("Adapted %s to %gx%g", cfg.Mode, opts.width, opts.height)
	printMetrics(res.Metrics)
	printFile(opts.output)
	return nil
}

// adaptConfig builds an adaptation request from a document. An empty mode
// is derived from what the document holds.
func adaptConfig(doc *jio.Document, mode string) (adapt.Config, error) {
	cfg := adapt.Config{Mode: adapt.Mode(mode)}
	if cfg.Mode == "" {
		switch {
		case len(doc.Pieces) == 0:
			cfg.Mode = adapt.ModeShape
		case doc.Scattered:
			cfg.Mode = adapt.ModeScattered
		default:
			cfg.Mode = adapt.ModePuzzle
		}
	}
	if doc.Canvas == nil {
		return cfg, errors.New(errors.ErrCodeMissingData, "document has no canvas to adapt from")
	}
	cfg.OriginalCanvas = *doc.Canvas
	cfg.ScatterCanvas = doc.ScatterCanvas

	switch cfg.Mode {
	case adapt.ModeShape:
		cfg.Shape = doc.Shape
	default:
		cfg.Pieces = doc.Pieces
	}
	return cfg, nil
}
