package adapt

import (
	"encoding/json"

	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/observability"
	"github.com/matzehuels/jigsaw/pkg/projection"
)

// Mode selects what is being adapted.
type Mode string

const (
	// ModeShape adapts a bare outline.
	ModeShape Mode = "shape"
	// ModePuzzle adapts pieces still in their solved layout. The whole
	// assembly is scaled rigidly with one factor.
	ModePuzzle Mode = "puzzle"
	// ModeScattered adapts pieces laid out by scatter. Each axis is scaled
	// independently from the scatter canvas and pieces are kept inside the
	// target canvas.
	ModeScattered Mode = "scattered"
)

// Modes lists the supported modes.
var Modes = []Mode{ModeShape, ModePuzzle, ModeScattered}

// Options tunes an adaptation.
type Options struct {
	// Strategy picks the scale factor for shape and puzzle modes. Empty
	// means projection.MinEdge. Scattered mode always scales per axis.
	Strategy projection.Strategy `json:"strategy,omitempty" toml:"strategy"`

	// SafetyMargin is the minimum distance in pixels between a scattered
	// piece and the canvas edge. Zero means pieces.DefaultSafetyMargin.
	SafetyMargin float64 `json:"safetyMargin,omitempty" toml:"safety_margin"`

	// Debug attaches a stack trace to errors recovered from panics.
	Debug bool `json:"debug,omitempty" toml:"debug"`

	// Hooks overrides the engine's diagnostics hooks for this call.
	Hooks observability.AdaptHooks `json:"-" toml:"-"`
}

// Config describes one adaptation request.
//
// Shape is read in ModeShape; Pieces in ModePuzzle and ModeScattered.
// ScatterCanvas is required in ModeScattered: it is the canvas the pieces
// were scattered on, which may differ from OriginalCanvas.
type Config struct {
	Mode           Mode                 `json:"type"`
	Shape          []geometry.Point     `json:"shape,omitempty"`
	Pieces         []geometry.Piece     `json:"pieces,omitempty"`
	OriginalCanvas geometry.CanvasSize  `json:"originalCanvasSize"`
	TargetCanvas   geometry.CanvasSize  `json:"targetCanvasSize"`
	ScatterCanvas  *geometry.CanvasSize `json:"scatterCanvasSize,omitempty"`
	Options        Options              `json:"options"`
}

// UnmarshalJSON also accepts the payload under "originalData": an array of
// points in shape mode, of pieces otherwise. An explicit "shape" or "pieces"
// field wins.
func (c *Config) UnmarshalJSON(data []byte) error {
	type Alias Config
	aux := struct {
		*Alias
		OriginalData json.RawMessage `json:"originalData"`
	}{Alias: (*Alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.OriginalData) == 0 || string(aux.OriginalData) == "null" {
		return nil
	}
	if c.Mode == ModeShape {
		if c.Shape == nil {
			return json.Unmarshal(aux.OriginalData, &c.Shape)
		}
		return nil
	}
	if c.Pieces == nil {
		return json.Unmarshal(aux.OriginalData, &c.Pieces)
	}
	return nil
}

// items is the number of elements being adapted.
func (c *Config) items() int {
	if c.Mode == ModeShape {
		return len(c.Shape)
	}
	return len(c.Pieces)
}
