package rawimage

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// defaultGridColor is used when no grid color is given.
const defaultGridColor = "#ff0000"

// GridOverlayResult is a preview with a coordinate grid drawn over it.
type GridOverlayResult struct {
	ImageResult
	GridSpacing int `json:"grid_spacing"`
}

// GridOverlay renders the gamma-corrected preview at full resolution with a
// line every spacing pixels, so raw coordinates can be read off the image
// before calling Crop or Sample. Labels give the "x,y" of each intersection.
func GridOverlay(d *Decoded, spacing int, gamma float64, showCoordinates bool, gridColorHex string) (*GridOverlayResult, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("grid spacing must be positive, got %d", spacing)
	}
	if d.Cols == 0 || d.Rows == 0 {
		return nil, fmt.Errorf("raw buffer is empty")
	}
	if gridColorHex == "" {
		gridColorHex = defaultGridColor
	}
	gc, err := colorful.Hex(gridColorHex)
	if err != nil {
		return nil, fmt.Errorf("invalid grid color %q: %w", gridColorHex, err)
	}
	r, g, b := gc.RGB255()
	line := image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: 255})

	src := Render(d, gamma)
	bounds := src.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, src, bounds.Min, draw.Src)

	for x := spacing; x < bounds.Dx(); x += spacing {
		draw.Draw(out, image.Rect(x, 0, x+1, bounds.Dy()), line, image.Point{}, draw.Src)
	}
	for y := spacing; y < bounds.Dy(); y += spacing {
		draw.Draw(out, image.Rect(0, y, bounds.Dx(), y+1), line, image.Point{}, draw.Src)
	}

	if showCoordinates {
		for y := spacing; y < bounds.Dy(); y += spacing {
			for x := spacing; x < bounds.Dx(); x += spacing {
				drawLabel(out, x+2, y+2, strconv.Itoa(x)+","+strconv.Itoa(y))
			}
		}
	}

	encoded, err := encodePNG(out)
	if err != nil {
		return nil, err
	}
	return &GridOverlayResult{ImageResult: *encoded, GridSpacing: spacing}, nil
}

// drawLabel writes text in white on a translucent black box whose top-left
// corner is (x, y).
func drawLabel(img draw.Image, x, y int, text string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()

	box := image.Rect(x-1, y-1, x+width+1, y+height+1)
	draw.Draw(img, box, image.NewUniform(color.NRGBA{A: 180}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(text)
}
