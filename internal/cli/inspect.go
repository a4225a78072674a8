package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/shape"
)

// inspectCommand creates the inspect command for summarizing a document.
func (c *CLI) inspectCommand() *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "inspect [document.json]",
		Short: "Summarize a shape or puzzle document",
		Long: `Inspect prints the outline's area, bounds and triangulation, flags
self-overlapping outlines, and for puzzles reports how many pieces sit in
their solved position.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := stdio
			if len(args) == 1 {
				input = args[0]
			}
			doc, err := readDocument(input)
			if err != nil {
				return err
			}

			if doc.Family != "" {
				printKeyValue("Family", doc.Family)
			}
			if doc.Canvas != nil {
				printKeyValue("Canvas", fmt.Sprintf("%gx%g", doc.Canvas.Width, doc.Canvas.Height))
			}

			if len(doc.Shape) > 0 {
				report, err := shape.Inspect(doc.Shape)
				if err != nil {
					printWarning("Triangulation failed: %v", err)
				}
				printKeyValue("Points", fmt.Sprintf("%d", report.Points))
				printKeyValue("Area", fmt.Sprintf("%.0f px²", report.Area))
				printKeyValue("Bounds", fmt.Sprintf("%.1f,%.1f → %.1f,%.1f",
					report.Bounds.MinX, report.Bounds.MinY, report.Bounds.MaxX, report.Bounds.MaxY))
				printKeyValue("Centroid", fmt.Sprintf("%.1f, %.1f", report.Centroid.X, report.Centroid.Y))
				printKeyValue("Triangles", fmt.Sprintf("%d", report.Triangles))
				if report.SelfOverlapping {
					printWarning("Outline overlaps itself")
				}
			}

			if len(doc.Pieces) == 0 {
				return nil
			}
			p, err := pipeline.FromDocument(doc)
			if err != nil {
				return err
			}
			placed := p.PlacedCount(tolerance)
			printKeyValue("Pieces", fmt.Sprintf("%d (%d placed)", len(p.Pieces), placed))
			if placed == len(p.Pieces) {
				printSuccess("Puzzle is solved")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", pipeline.DefaultPlacedTolerance, "distance in pixels a piece may be off and still count as placed")

	return cmd
}
