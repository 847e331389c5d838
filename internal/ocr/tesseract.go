//go:build cgo

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// newClient creates a Tesseract client loaded with img.
// The caller must Close the client.
func newClient(img image.Image) (*gosseract.Client, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	if dir := os.Getenv(tessdataEnv); dir != "" {
		if err := client.SetTessdataPrefix(dir); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return client, nil
}

// ExtractText runs OCR over the whole of img.
//
// language is a Tesseract language code such as "eng"; its traineddata must
// be installed. If word boxes cannot be extracted the text is still returned
// with an empty Regions slice.
func ExtractText(img image.Image, language string) (*OCRResult, error) {
	client, err := newClient(img)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &OCRResult{FullText: text, Regions: []TextRegion{}}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds:     boundsOf(box.Box),
		})
	}

	return &OCRResult{FullText: text, Regions: regions}, nil
}

// ExtractTextFromRegion runs OCR over (x1,y1)-(x2,y2) of img. Returned boxes
// are in img's coordinates, not the region's.
func ExtractTextFromRegion(img image.Image, x1, y1, x2, y2 int, language string) (*OCRResult, error) {
	rect := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) does not overlap the image", x1, y1, x2, y2)
	}

	result, err := ExtractText(imaging.Crop(img, rect), language)
	if err != nil {
		return nil, err
	}
	result.offset(rect.Min.X, rect.Min.Y)
	return result, nil
}

// DetectTextRegions finds block-level text areas whose confidence is at least
// minConfidence (0.0-1.0).
func DetectTextRegions(img image.Image, minConfidence float64) (*DetectTextRegionsResult, error) {
	client, err := newClient(img)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, fmt.Errorf("failed to get text regions: %w", err)
	}

	regions := make([]TextRegionBox, 0)
	for _, box := range boxes {
		confidence := box.Confidence / 100.0
		if confidence < minConfidence {
			continue
		}
		regions = append(regions, TextRegionBox{
			Bounds:     boundsOf(box.Box),
			Confidence: confidence,
		})
	}

	return &DetectTextRegionsResult{Regions: regions, Count: len(regions)}, nil
}

// GetInfo reports the linked Tesseract version.
func GetInfo() Info {
	client := gosseract.NewClient()
	defer client.Close()

	return Info{
		Available: true,
		Version:   client.Version(),
		Backend:   "gosseract",
	}
}

func boundsOf(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}
