package cli

import (
	"github.com/matzehuels/jigsaw/pkg/geometry"
	jio "github.com/matzehuels/jigsaw/pkg/io"
)

// stdio is the path that means standard input or output.
const stdio = "-"

// readDocument loads a document from path, or standard input for "-".
func readDocument(path string) (*jio.Document, error) {
	return jio.ImportJSON(path)
}

// writeDocument writes doc to path and reports the file. Writing to
// standard output prints nothing else so the JSON can be piped.
func writeDocument(doc *jio.Document, path string) error {
	if err := jio.ExportJSON(doc, path); err != nil {
		return err
	}
	if path != stdio {
		printFile(path)
	}
	return nil
}

// canvasOr returns w x h, taking any zero dimension from fallback.
func canvasOr(w, h float64, fallback geometry.CanvasSize) geometry.CanvasSize {
	if w == 0 {
		w = fallback.Width
	}
	if h == 0 {
		h = fallback.Height
	}
	return geometry.Size(w, h)
}
