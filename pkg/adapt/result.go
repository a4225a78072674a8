package adapt

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/projection"
)

// Metrics describes what an adaptation did.
type Metrics struct {
	ScaleFactor projection.ScaleFactor
	// CenterOffset is the target canvas center minus the source canvas
	// center (the scatter canvas in scattered mode).
	CenterOffset   geometry.Point
	ProcessingTime time.Duration
	// InvalidPoints counts vertices degraded to the invalid sentinel.
	InvalidPoints int
	// Corrected counts pieces moved back inside the safety margin.
	Corrected int
}

// Result is returned by every adaptation, including failed ones.
//
// On failure Success is false, Err says why and Shape/Pieces hold a copy of
// the input exactly as it was passed in.
type Result struct {
	Mode    Mode
	Shape   []geometry.Point
	Pieces  []geometry.Piece
	Metrics Metrics
	Success bool
	Err     error
}

type wireMetrics struct {
	ScaleFactor    projection.ScaleFactor `json:"scaleFactor"`
	CenterOffset   geometry.Point         `json:"centerOffset"`
	ProcessingTime float64                `json:"processingTime"`
	InvalidPoints  int                    `json:"invalidPoints,omitempty"`
	Corrected      int                    `json:"corrected,omitempty"`
}

type wireResult struct {
	AdaptedData any         `json:"adaptedData"`
	Metrics     wireMetrics `json:"metrics"`
	Success     bool        `json:"success"`
	Error       string      `json:"error,omitempty"`
}

// MarshalJSON writes the result in the host wire format: the adapted shape
// or pieces under "adaptedData" and the processing time in milliseconds.
func (r Result) MarshalJSON() ([]byte, error) {
	w := wireResult{
		Metrics: wireMetrics{
			ScaleFactor:    r.Metrics.ScaleFactor,
			CenterOffset:   r.Metrics.CenterOffset,
			ProcessingTime: float64(r.Metrics.ProcessingTime) / float64(time.Millisecond),
			InvalidPoints:  r.Metrics.InvalidPoints,
			Corrected:      r.Metrics.Corrected,
		},
		Success: r.Success,
	}
	if r.Mode == ModeShape {
		w.AdaptedData = r.Shape
	} else {
		w.AdaptedData = r.Pieces
	}
	if r.Err != nil {
		w.Error = r.Err.Error()
	}
	return json.Marshal(w)
}
