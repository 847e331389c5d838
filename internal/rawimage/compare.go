package rawimage

import (
	"fmt"
	"math"
)

// Region is a rectangle in raw buffer coordinates; X2 and Y2 are exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (r Region) size() (w, h int) {
	return r.X2 - r.X1, r.Y2 - r.Y1
}

func (r Region) validate(d *Decoded) error {
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region (%d,%d)-(%d,%d): x1 must be < x2, y1 must be < y2", r.X1, r.Y1, r.X2, r.Y2)
	}
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > d.Cols || r.Y2 > d.Rows {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside raw buffer (0,0)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, d.Cols, d.Rows)
	}
	return nil
}

// RegionMeans is the per-channel mean of one region.
type RegionMeans struct {
	Region
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Means  []float64 `json:"means"`
}

// CompareRegionsResult compares two regions sample by sample over their
// common top-left aligned area, and by per-channel mean over each whole region.
type CompareRegionsResult struct {
	Region1 RegionMeans `json:"region1"`
	Region2 RegionMeans `json:"region2"`

	// MeanDiff is Region2's mean minus Region1's, per channel.
	MeanDiff []float64 `json:"mean_diff"`

	SameSize         bool    `json:"same_size"`
	Tolerance        int     `json:"tolerance"`
	SamplesDifferent int     `json:"samples_different"`
	TotalSamples     int     `json:"total_samples"`
	SimilarityScore  float64 `json:"similarity_score"`
}

// CompareRegions compares r1 and r2. Two samples differ when their raw values
// are more than tolerance apart; a tolerance <= 0 means 1% of the white level.
// Comparing the masked border against the active area, or two patches of a
// flat field, are typical uses.
func CompareRegions(d *Decoded, r1, r2 Region, tolerance int) (*CompareRegionsResult, error) {
	if err := r1.validate(d); err != nil {
		return nil, err
	}
	if err := r2.validate(d); err != nil {
		return nil, err
	}
	if tolerance <= 0 {
		tolerance = max(1, int(whiteLevel(d))/100)
	}

	w1, h1 := r1.size()
	w2, h2 := r2.size()
	minW, minH := min(w1, w2), min(h1, h2)

	different := 0
	for dy := 0; dy < minH; dy++ {
		for dx := 0; dx < minW; dx++ {
			i := (r1.Y1+dy)*d.Cols + r1.X1 + dx
			j := (r2.Y1+dy)*d.Cols + r2.X1 + dx
			for _, plane := range d.Planes {
				if absDiff(plane[i], plane[j]) > tolerance {
					different++
					break
				}
			}
		}
	}

	m1 := regionMeans(d, r1)
	m2 := regionMeans(d, r2)
	diff := make([]float64, len(m1.Means))
	for c := range diff {
		diff[c] = round2(m2.Means[c] - m1.Means[c])
	}

	total := minW * minH
	return &CompareRegionsResult{
		Region1:          m1,
		Region2:          m2,
		MeanDiff:         diff,
		SameSize:         w1 == w2 && h1 == h2,
		Tolerance:        tolerance,
		SamplesDifferent: different,
		TotalSamples:     total,
		SimilarityScore:  math.Round((1-float64(different)/float64(total))*1000) / 1000,
	}, nil
}

func regionMeans(d *Decoded, r Region) RegionMeans {
	w, h := r.size()
	means := make([]float64, len(d.Planes))
	for c, plane := range d.Planes {
		var sum uint64
		for y := r.Y1; y < r.Y2; y++ {
			for _, v := range plane[y*d.Cols+r.X1 : y*d.Cols+r.X2] {
				sum += uint64(v)
			}
		}
		means[c] = round2(float64(sum) / float64(w*h))
	}
	return RegionMeans{Region: r, Width: w, Height: h, Means: means}
}

func absDiff(a, b uint16) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
