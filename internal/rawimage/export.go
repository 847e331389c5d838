package rawimage

import (
	"fmt"
	"os"

	"golang.org/x/image/tiff"
)

// ExportResult describes a written TIFF file.
type ExportResult struct {
	Path      string `json:"path"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Channels  int    `json:"channels"`
	SizeBytes int64  `json:"size_bytes"`
}

// ExportTIFF writes the unscaled 16-bit buffer to dst as a Deflate-compressed
// TIFF: grayscale for single-channel data, otherwise RGB with an opaque alpha
// sample. Four-channel data has its two greens averaged.
func ExportTIFF(d *Decoded, dst string) (*ExportResult, error) {
	if d.Cols == 0 || d.Rows == 0 {
		return nil, fmt.Errorf("raw buffer is empty")
	}

	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dst, err)
	}

	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	if err := tiff.Encode(f, Image16(d), opts); err != nil {
		f.Close()
		os.Remove(dst)
		return nil, fmt.Errorf("failed to encode tiff: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", dst, err)
	}

	stat, err := os.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	channels := 3
	if len(d.Planes) == 1 {
		channels = 1
	}
	return &ExportResult{
		Path:      dst,
		Width:     d.Cols,
		Height:    d.Rows,
		Channels:  channels,
		SizeBytes: stat.Size(),
	}, nil
}
