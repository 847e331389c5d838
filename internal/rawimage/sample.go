package rawimage

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult is the preview color at a sample, in several notations.
type ColorResult struct {
	Hex string   `json:"hex"`
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// SampleResult holds the raw channel values at one position and how that
// position looks in the preview.
type SampleResult struct {
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Values []uint16    `json:"values"`
	Color  ColorResult `json:"preview_color"`
}

// Sample reads every channel at column x, row y.
func Sample(d *Decoded, x, y int) (*SampleResult, error) {
	if !d.inBounds(x, y) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside %dx%d raw buffer", x, y, d.Cols, d.Rows)
	}

	i := y*d.Cols + x
	values := make([]uint16, len(d.Planes))
	for c, plane := range d.Planes {
		values[c] = plane[i]
	}

	r, g, b := d.rgb(i)
	white := float64(whiteLevel(d))
	c := colorful.Color{
		R: float64(r) / white,
		G: float64(g) / white,
		B: float64(b) / white,
	}.Clamped()

	return &SampleResult{
		X:      x,
		Y:      y,
		Values: values,
		Color:  colorResult(c),
	}, nil
}

// LabeledPoint is a position with an optional caller-supplied label.
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// LabeledSample pairs a sample with the label it was requested under.
type LabeledSample struct {
	Label string `json:"label,omitempty"`
	SampleResult
}

// MultiSampleResult holds samples in request order.
type MultiSampleResult struct {
	Samples []LabeledSample `json:"samples"`
}

// SampleMulti reads several positions; any out-of-bounds point fails the call.
func SampleMulti(d *Decoded, points []LabeledPoint) (*MultiSampleResult, error) {
	samples := make([]LabeledSample, 0, len(points))
	for _, p := range points {
		s, err := Sample(d, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		samples = append(samples, LabeledSample{Label: p.Label, SampleResult: *s})
	}
	return &MultiSampleResult{Samples: samples}, nil
}

func colorResult(c colorful.Color) ColorResult {
	r, g, b := c.RGB255()
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return ColorResult{
		Hex: c.Hex(),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}
