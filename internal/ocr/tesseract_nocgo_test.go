//go:build !cgo

package ocr

import (
	"errors"
	"image"
	"testing"
)

func TestUnavailableWithoutCgo(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))

	if _, err := ExtractText(img, "eng"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ExtractText error = %v, want ErrUnavailable", err)
	}
	if _, err := ExtractTextFromRegion(img, 0, 0, 4, 4, "eng"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ExtractTextFromRegion error = %v, want ErrUnavailable", err)
	}
	if _, err := DetectTextRegions(img, 0.5); !errors.Is(err, ErrUnavailable) {
		t.Errorf("DetectTextRegions error = %v, want ErrUnavailable", err)
	}

	info := GetInfo()
	if info.Available {
		t.Error("GetInfo should report unavailable")
	}
}
