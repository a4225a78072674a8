package scatter

import "github.com/matzehuels/jigsaw/pkg/geometry"

// Breakpoints used by Classify, in pixels of canvas width.
const (
	MobileMaxWidth      = 768
	SmallScreenMaxWidth = 1024
)

// Device describes the layout class the pieces are scattered for.
type Device struct {
	IsMobile      bool `json:"isMobile"`
	IsPortrait    bool `json:"isPortrait"`
	IsSmallScreen bool `json:"isSmallScreen"`
}

// PortraitMobile reports the narrow layout that gets the smallest margin, a
// denser grid and spiral ordering.
func (d Device) PortraitMobile() bool { return d.IsMobile && d.IsPortrait }

// Classify derives a device class from the canvas alone. Hosts that know
// more about the screen should build the Device themselves.
func Classify(canvas geometry.CanvasSize) Device {
	return Device{
		IsMobile:      canvas.Width <= MobileMaxWidth,
		IsPortrait:    canvas.Height > canvas.Width,
		IsSmallScreen: canvas.Width <= SmallScreenMaxWidth,
	}
}

// MarginRule is a margin expressed as a fraction of the canvas width with an
// upper bound in pixels.
type MarginRule struct {
	Ratio float64 `toml:"ratio" json:"ratio"`
	Cap   float64 `toml:"cap" json:"cap"`
}

func (r MarginRule) apply(width float64) float64 {
	return min(width*r.Ratio, r.Cap)
}

// Margins holds the margin rule for each device class.
type Margins struct {
	PortraitMobile MarginRule `toml:"portrait_mobile" json:"portraitMobile"`
	Small          MarginRule `toml:"small" json:"small"`
	Default        MarginRule `toml:"default" json:"default"`
}

// DefaultMargins returns the stock rules: 10% capped at 50px on portrait
// mobile, 12% capped at 60px on other small screens, 15% capped at 80px
// everywhere else.
func DefaultMargins() Margins {
	return Margins{
		PortraitMobile: MarginRule{Ratio: 0.10, Cap: 50},
		Small:          MarginRule{Ratio: 0.12, Cap: 60},
		Default:        MarginRule{Ratio: 0.15, Cap: 80},
	}
}

// Margin returns the global safety margin for canvas on device d.
func (m Margins) Margin(canvas geometry.CanvasSize, d Device) float64 {
	switch {
	case d.PortraitMobile():
		return m.PortraitMobile.apply(canvas.Width)
	case d.IsMobile || d.IsSmallScreen:
		return m.Small.apply(canvas.Width)
	default:
		return m.Default.apply(canvas.Width)
	}
}
