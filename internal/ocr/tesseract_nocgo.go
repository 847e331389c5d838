//go:build !cgo

package ocr

import "image"

func ExtractText(image.Image, string) (*OCRResult, error) {
	return nil, ErrUnavailable
}

func ExtractTextFromRegion(image.Image, int, int, int, int, string) (*OCRResult, error) {
	return nil, ErrUnavailable
}

func DetectTextRegions(image.Image, float64) (*DetectTextRegionsResult, error) {
	return nil, ErrUnavailable
}

func GetInfo() Info {
	return Info{Available: false, Error: ErrUnavailable.Error(), Backend: "none"}
}
