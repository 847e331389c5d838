package ocr

import "errors"

// ErrUnavailable is returned when the binary was built without Tesseract.
var ErrUnavailable = errors.New("ocr unavailable: built without cgo")

// tessdataEnv names the environment variable holding a tessdata directory.
const tessdataEnv = "RAW_MCP_TESSDATA"

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion is a recognised word with its location and confidence.
type TextRegion struct {
	Text string `json:"text"`

	// Confidence is Tesseract's confidence scaled to 0.0-1.0.
	Confidence float64 `json:"confidence"`

	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the text recognised in an image.
type OCRResult struct {
	FullText string `json:"full_text"`

	// Regions may be empty if word boxes could not be extracted; FullText is
	// still populated in that case.
	Regions []TextRegion `json:"regions"`
}

// TextRegionBox is a text location without its content.
type TextRegionBox struct {
	Bounds     Bounds  `json:"bounds"`
	Confidence float64 `json:"confidence"`
}

// DetectTextRegionsResult lists text block locations.
type DetectTextRegionsResult struct {
	Regions []TextRegionBox `json:"regions"`
	Count   int             `json:"count"`
}

// Info describes the OCR backend.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
	Backend   string `json:"backend"`
}

// offset shifts every region by (dx, dy).
func (r *OCRResult) offset(dx, dy int) {
	for i := range r.Regions {
		r.Regions[i].Bounds.X1 += dx
		r.Regions[i].Bounds.Y1 += dy
		r.Regions[i].Bounds.X2 += dx
		r.Regions[i].Bounds.Y2 += dy
	}
}
