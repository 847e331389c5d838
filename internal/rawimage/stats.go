package rawimage

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/histogram"
)

// histogramBuckets is the number of buckets in per-channel histograms.
const histogramBuckets = 16

// ChannelStats summarises one plane.
type ChannelStats struct {
	// Channel is "raw" for single-channel data, otherwise "c0".."c3".
	Channel string `json:"channel"`

	Min  uint16  `json:"min"`
	Max  uint16  `json:"max"`
	Mean float64 `json:"mean"`

	// Sum is the exact total of every sample in the plane.
	Sum uint64 `json:"sum"`

	// Histogram counts samples in equal-width buckets spanning 0..Max.
	Histogram []int `json:"histogram"`
}

// StatsResult holds statistics for every channel of a decoded file.
type StatsResult struct {
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	PixelType string         `json:"pixel_type"`
	Channels  []ChannelStats `json:"channels"`
}

// Stats computes min, max, mean, sum and a bucketed histogram per channel.
func Stats(d *Decoded) *StatsResult {
	result := &StatsResult{
		Width:     d.Cols,
		Height:    d.Rows,
		PixelType: d.Type.String(),
		Channels:  make([]ChannelStats, 0, len(d.Planes)),
	}
	for c, plane := range d.Planes {
		result.Channels = append(result.Channels, planeStats(channelName(d, c), plane))
	}
	return result
}

func channelName(d *Decoded, c int) string {
	if len(d.Planes) == 1 {
		return "raw"
	}
	return fmt.Sprintf("c%d", c)
}

func planeStats(name string, plane []uint16) ChannelStats {
	s := ChannelStats{
		Channel:   name,
		Histogram: make([]int, histogramBuckets),
	}
	if len(plane) == 0 {
		return s
	}

	s.Min = math.MaxUint16
	for _, v := range plane {
		s.Sum += uint64(v)
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = math.Round(float64(s.Sum)/float64(len(plane))*100) / 100

	span := uint64(s.Max) + 1
	for _, v := range plane {
		s.Histogram[uint64(v)*histogramBuckets/span]++
	}
	return s
}

// ChecksumResult is the per-channel sum of every sample, useful as a
// regression fingerprint of the whole read path.
type ChecksumResult struct {
	PixelType string   `json:"pixel_type"`
	Samples   int      `json:"samples"`
	Sums      []uint64 `json:"sums"`
	Total     uint64   `json:"total"`
}

// Checksum sums every sample of every channel.
func Checksum(d *Decoded) *ChecksumResult {
	result := &ChecksumResult{
		PixelType: d.Type.String(),
		Samples:   d.Cols * d.Rows,
		Sums:      make([]uint64, len(d.Planes)),
	}
	for c, plane := range d.Planes {
		for _, v := range plane {
			result.Sums[c] += uint64(v)
		}
		result.Total += result.Sums[c]
	}
	return result
}

// PreviewHistogram is a 256-bin histogram of the 8-bit preview.
type PreviewHistogram struct {
	R []int `json:"r"`
	G []int `json:"g"`
	B []int `json:"b"`
}

// HistogramOfPreview bins the normalised 8-bit preview per RGB channel.
func HistogramOfPreview(d *Decoded) *PreviewHistogram {
	h := histogram.NewRGBAHistogram(Preview8(d))
	return &PreviewHistogram{
		R: h.R.Bins,
		G: h.G.Bins,
		B: h.B.Bins,
	}
}
