package rawimage

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
)

func decodeResult(t *testing.T, r *ImageResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid png: %v", err)
	}
	return img
}

func TestPreview8_Normalises(t *testing.T) {
	d := newRawDecoded(t, 2, 2, 1000) // 0, 1000, 2000, 3000
	img := Preview8(d)

	if got := img.NRGBAAt(1, 1).R; got != 255 {
		t.Errorf("brightest sample: got %d, want 255", got)
	}
	if got := img.NRGBAAt(0, 0).R; got != 0 {
		t.Errorf("darkest sample: got %d, want 0", got)
	}
	if got := img.NRGBAAt(1, 0).G; got != 85 {
		t.Errorf("1000/3000: got %d, want 85", got)
	}
}

func TestImage16_KeepsRawValues(t *testing.T) {
	d := newRawDecoded(t, 3, 2, 7)
	img, ok := Image16(d).(*image.Gray16)
	if !ok {
		t.Fatalf("single-channel data should render as *image.Gray16")
	}
	if got := img.Gray16At(2, 1).Y; got != 35 {
		t.Errorf("sample (2,1): got %d, want 35", got)
	}
}

func TestPreview(t *testing.T) {
	d := newRawDecoded(t, 40, 20, 3)

	r, err := Preview(d, 10, 2.2)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if r.Width != 10 || r.Height != 5 {
		t.Errorf("fit: got %dx%d, want 10x5", r.Width, r.Height)
	}
	if r.MimeType != "image/png" {
		t.Errorf("mime: got %s", r.MimeType)
	}
	img := decodeResult(t, r)
	if img.Bounds().Dx() != 10 {
		t.Errorf("decoded width: got %d, want 10", img.Bounds().Dx())
	}

	full, err := Preview(d, 0, 1)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if full.Width != 40 || full.Height != 20 {
		t.Errorf("unscaled: got %dx%d, want 40x20", full.Width, full.Height)
	}
}

func TestCrop(t *testing.T) {
	d := newRawDecoded(t, 20, 10, 1)

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		scale          float64
		wantW, wantH   int
		wantErr        bool
	}{
		{"simple", 0, 0, 10, 5, 1.0, 10, 5, false},
		{"scaled", 5, 5, 10, 10, 2.0, 10, 10, false},
		{"outside", 0, 0, 21, 5, 1.0, 0, 0, true},
		{"inverted", 10, 5, 5, 8, 1.0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Crop(d, tt.x1, tt.y1, tt.x2, tt.y2, tt.scale)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			if r.Width != tt.wantW || r.Height != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", r.Width, r.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCropQuadrant(t *testing.T) {
	d := newRawDecoded(t, 20, 12, 1)

	tests := []struct {
		region       string
		wantW, wantH int
	}{
		{"top-left", 10, 6},
		{"bottom-right", 10, 6},
		{"top-half", 20, 6},
		{"left-half", 10, 12},
		{"center", 10, 6},
	}
	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			r, err := CropQuadrant(d, tt.region, 1.0)
			if err != nil {
				t.Fatalf("CropQuadrant failed: %v", err)
			}
			if r.Width != tt.wantW || r.Height != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", r.Width, r.Height, tt.wantW, tt.wantH)
			}
		})
	}

	if _, err := CropQuadrant(d, "middle-ish", 1.0); err == nil {
		t.Error("expected error for unknown region")
	}
}

func TestRender_Gamma(t *testing.T) {
	d := newRawDecoded(t, 2, 2, 1000)

	linear := Render(d, 1.0)
	if _, ok := linear.(*image.NRGBA); !ok {
		t.Errorf("gamma 1.0 should return the linear preview, got %T", linear)
	}

	lifted := Render(d, 2.2)
	r, _, _, _ := lifted.At(1, 0).RGBA()
	if r>>8 <= 85 {
		t.Errorf("gamma 2.2 should brighten midtones: got %d, want > 85", r>>8)
	}
	r, _, _, _ = lifted.At(1, 1).RGBA()
	if r>>8 != 255 {
		t.Errorf("white point moved: got %d", r>>8)
	}
}
