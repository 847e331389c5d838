package rawimage

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// whiteLevel is the largest sample across all planes, never zero.
func whiteLevel(d *Decoded) uint16 {
	var white uint16 = 1
	for _, plane := range d.Planes {
		for _, v := range plane {
			if v > white {
				white = v
			}
		}
	}
	return white
}

// Preview8 renders the buffer as an 8-bit image normalised to the white level.
func Preview8(d *Decoded) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, d.Cols, d.Rows))
	white := uint32(whiteLevel(d))

	for i := 0; i < d.Cols*d.Rows; i++ {
		r, g, b := d.rgb(i)
		o := i * 4
		img.Pix[o] = uint8(uint32(r) * 255 / white)
		img.Pix[o+1] = uint8(uint32(g) * 255 / white)
		img.Pix[o+2] = uint8(uint32(b) * 255 / white)
		img.Pix[o+3] = 0xFF
	}
	return img
}

// Image16 renders the buffer at full 16-bit precision without scaling:
// *image.Gray16 for single-channel data, *image.RGBA64 otherwise.
func Image16(d *Decoded) image.Image {
	rect := image.Rect(0, 0, d.Cols, d.Rows)
	if len(d.Planes) == 1 {
		img := image.NewGray16(rect)
		for i, v := range d.Planes[0] {
			img.SetGray16(i%d.Cols, i/d.Cols, color.Gray16{Y: v})
		}
		return img
	}

	img := image.NewRGBA64(rect)
	for i := 0; i < d.Cols*d.Rows; i++ {
		r, g, b := d.rgb(i)
		img.SetRGBA64(i%d.Cols, i/d.Cols, color.RGBA64{R: r, G: g, B: b, A: 0xFFFF})
	}
	return img
}

// ImageResult is a rendered image encoded as base64 PNG.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Render returns the 8-bit preview with gamma applied. A gamma of 0 or 1
// leaves the linear preview untouched.
func Render(d *Decoded, gamma float64) image.Image {
	var img image.Image = Preview8(d)
	if gamma > 0 && gamma != 1.0 {
		img = adjust.Gamma(img, gamma)
	}
	return img
}

// Preview renders the buffer, applies gamma (skipped when gamma is 0 or 1)
// and fits it inside maxDim x maxDim (skipped when maxDim <= 0).
func Preview(d *Decoded, maxDim int, gamma float64) (*ImageResult, error) {
	if d.Cols == 0 || d.Rows == 0 {
		return nil, fmt.Errorf("raw buffer is empty")
	}

	img := Render(d, gamma)
	if maxDim > 0 && (d.Cols > maxDim || d.Rows > maxDim) {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}
	return encodePNG(img)
}

// Crop renders the region (x1,y1)-(x2,y2) of the preview, optionally scaled.
func Crop(d *Decoded, x1, y1, x2, y2 int, scale float64) (*ImageResult, error) {
	if x1 < 0 || y1 < 0 || x2 > d.Cols || y2 > d.Rows {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside raw buffer (0,0)-(%d,%d)",
			x1, y1, x2, y2, d.Cols, d.Rows)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(Preview8(d), image.Rect(x1, y1, x2, y2))

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}
	return encodePNG(cropped)
}

// CropQuadrant crops a named region: top-left, top-right, bottom-left,
// bottom-right, top-half, bottom-half, left-half, right-half or center.
func CropQuadrant(d *Decoded, region string, scale float64) (*ImageResult, error) {
	w, h := d.Cols, d.Rows
	midX, midY := w/2, h/2

	var x1, y1, x2, y2 int
	switch region {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		qW, qH := w/4, h/4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return nil, fmt.Errorf("unknown region: %s", region)
	}

	return Crop(d, x1, y1, x2, y2, scale)
}

func encodePNG(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &ImageResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
