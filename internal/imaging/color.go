package imaging

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/colordiff-mcp/internal/colordiff"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a source color in several representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// DiffSample is the source color at a pixel and the gray level the channel
// difference transform writes there.
type DiffSample struct {
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`

	// Diff is clamp(R/2 - B/2 + 128, 0, 254).
	Diff uint8 `json:"diff"`

	// RedMinusBlue is the signed half-channel difference before bias and clamp.
	RedMinusBlue int `json:"red_minus_blue"`
}

// SampleDiff reports the source color and transform output at (x, y).
//
// Returns an error if the coordinates fall outside the image.
func SampleDiff(img image.Image, x, y int) (*DiffSample, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, _ := img.At(x, y).RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	return &DiffSample{
		X:            x,
		Y:            y,
		Color:        newColorResult(r8, g8, b8),
		Diff:         colordiff.Diff(r8, b8),
		RedMinusBlue: int(r8/2) - int(b8/2),
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledDiffSample is a DiffSample tagged with the caller's label.
type LabeledDiffSample struct {
	Label string `json:"label,omitempty"`
	DiffSample
}

// MultiDiffResult contains samples in the same order as the requested points.
type MultiDiffResult struct {
	Samples []LabeledDiffSample `json:"samples"`
}

// SampleDiffMulti samples several points in one call.
//
// If any point is out of bounds no partial result is returned.
//
//	points := []imaging.LabeledPoint{
//	    {X: 10, Y: 20, Label: "skin"},
//	    {X: 50, Y: 100, Label: "sky"},
//	}
//	result, err := imaging.SampleDiffMulti(img, points)
func SampleDiffMulti(img image.Image, points []LabeledPoint) (*MultiDiffResult, error) {
	results := make([]LabeledDiffSample, 0, len(points))

	for _, p := range points {
		s, err := SampleDiff(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledDiffSample{Label: p.Label, DiffSample: *s})
	}

	return &MultiDiffResult{Samples: results}, nil
}

func newColorResult(r, g, b uint8) ColorResult {
	return ColorResult{
		Hex: fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: rgbToHSL(r, g, b),
	}
}

// rgbToHSL converts 8-bit RGB to HSL with integer degrees and percentages.
// Values are truncated, not rounded.
func rgbToHSL(r, g, b uint8) HSLColor {
	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	h, s, l := c.Hsl()
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
