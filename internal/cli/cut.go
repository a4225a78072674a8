package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/cut"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

// cutCommand creates the cut command for splitting an outline into pieces.
func (c *CLI) cutCommand() *cobra.Command {
	var (
		rows, cols int
		output     string
	)

	cmd := &cobra.Command{
		Use:   "cut [shape.json]",
		Short: "Cut an outline into a grid of pieces",
		Long: `Cut an outline into a rows x cols grid of pieces.

Each piece remembers where it belongs: its solved points, center and
rotation are stored next to the live values. Cells the outline does not
touch produce no piece.`,
		Example: `  jigsaw cut cloud.json --rows 4 --cols 4 -o pieces.json
  jigsaw shape -o - | jigsaw cut - -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := stdio
			if len(args) == 1 {
				input = args[0]
			}
			if rows == 0 {
				rows = c.Config.Cut.Rows
			}
			if cols == 0 {
				cols = c.Config.Cut.Cols
			}

			doc, err := readDocument(input)
			if err != nil {
				return err
			}
			if len(doc.Shape) == 0 {
				return errors.New(errors.ErrCodeMissingData, "%s has no shape to cut", input)
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			pieces, err := cut.Grid(doc.Shape, rows, cols)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Cut %d pieces", len(pieces)))

			doc.Pieces = pieces
			doc.Scattered = false
			doc.ScatterCanvas = nil
			if output != stdio {
				printSuccess("Cut %dx%d grid", rows, cols)
				printStats(len(doc.Shape), len(pieces), false)
			}
			if err := writeDocument(doc, output); err != nil {
				return err
			}
			if output != stdio {
				printNextStep("Scatter the pieces", "jigsaw scatter "+output)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "grid rows (default from config)")
	cmd.Flags().IntVar(&cols, "cols", 0, "grid columns (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "pieces.json", "output file, - for stdout")

	return cmd
}
