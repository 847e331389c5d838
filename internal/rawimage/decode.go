package rawimage

import (
	"fmt"
	"os"

	"github.com/ironsheep/raw-tools-mcp/internal/libraw"
)

// Info describes a raw file and the buffer LibRaw unpacked from it.
type Info struct {
	// Path is the file the data was decoded from.
	Path string `json:"path"`

	// Width and Height are the raw buffer dimensions (columns and rows),
	// including any masked border LibRaw keeps.
	Width  int `json:"width"`
	Height int `json:"height"`

	// PixelType is "raw", "color3" or "color4".
	PixelType string `json:"pixel_type"`

	// Channels is the number of 16-bit values per pixel.
	Channels int `json:"channels"`

	// Make and Model identify the camera, as LibRaw normalises them.
	Make  string `json:"make"`
	Model string `json:"model"`

	// Sizes carries the full frame geometry including margins.
	Sizes libraw.Sizes `json:"sizes"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// LibRaw is the version of the engine that decoded the file.
	LibRaw string `json:"libraw_version"`
}

// Decoded is a Go-owned copy of an unpacked raw buffer.
type Decoded struct {
	Info   Info
	Cols   int
	Rows   int
	Type   libraw.PixelType
	Planes [][]uint16
}

// Decode opens path with LibRaw, unpacks it and copies the populated buffer
// into planes. The LibRaw context is released before Decode returns.
//
// LibRaw errors are returned as-is so their message reaches the caller
// unchanged.
func Decode(path string) (*Decoded, error) {
	img, err := libraw.Open(path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if err := img.Unpack(); err != nil {
		return nil, err
	}

	d, err := FromImage(img)
	if err != nil {
		return nil, err
	}

	sizes, err := img.Sizes()
	if err != nil {
		return nil, err
	}

	d.Info = Info{
		Path:          path,
		Width:         d.Cols,
		Height:        d.Rows,
		PixelType:     d.Type.String(),
		Channels:      d.Type.Channels(),
		Make:          img.Make(),
		Model:         img.Model(),
		Sizes:         sizes,
		FileSizeBytes: stat.Size(),
		LibRaw:        libraw.LibraryVersion().String(),
	}
	return d, nil
}

// FromImage copies whichever buffer img has unpacked.
func FromImage(img *libraw.Image) (*Decoded, error) {
	pt, err := img.RawPixelType()
	if err != nil {
		return nil, err
	}

	switch pt {
	case libraw.PixelRaw:
		pm, err := img.RawPixmap()
		if err != nil {
			return nil, err
		}
		return FromPixmap(pm, pt, rawChannels)
	case libraw.PixelColor3:
		pm, err := img.Color3Pixmap()
		if err != nil {
			return nil, err
		}
		return FromPixmap(pm, pt, color3Channels)
	case libraw.PixelColor4:
		pm, err := img.Color4Pixmap()
		if err != nil {
			return nil, err
		}
		return FromPixmap(pm, pt, color4Channels)
	default:
		return nil, fmt.Errorf("unsupported pixel type %s", pt)
	}
}

// FromPixmap copies every sample of pm into one plane per channel. split
// writes the channels of a sample into dst.
func FromPixmap[T libraw.Sample](pm *libraw.Pixmap[T], pt libraw.PixelType, split func(v T, dst []uint16)) (*Decoded, error) {
	channels := pt.Channels()
	if channels == 0 {
		return nil, fmt.Errorf("unsupported pixel type %s", pt)
	}

	px := pm.Pixels()
	planes := make([][]uint16, channels)
	for c := range planes {
		planes[c] = make([]uint16, 0, px.Remaining())
	}

	values := make([]uint16, channels)
	for px.Next() {
		split(px.Pixel().Value(), values)
		for c, v := range values {
			planes[c] = append(planes[c], v)
		}
	}
	if err := px.Err(); err != nil {
		return nil, err
	}

	return &Decoded{
		Cols:   pm.Cols(),
		Rows:   pm.Rows(),
		Type:   pt,
		Planes: planes,
	}, nil
}

func rawChannels(v libraw.RawPixel, dst []uint16) {
	dst[0] = v
}

func color3Channels(v libraw.Color3Pixel, dst []uint16) {
	copy(dst, v[:])
}

func color4Channels(v libraw.Color4Pixel, dst []uint16) {
	copy(dst, v[:])
}

// Channels returns the number of planes.
func (d *Decoded) Channels() int {
	return len(d.Planes)
}

// inBounds reports whether (x, y) addresses a sample.
func (d *Decoded) inBounds(x, y int) bool {
	return x >= 0 && x < d.Cols && y >= 0 && y < d.Rows
}

// rgb returns the sample at linear offset i as red, green and blue.
func (d *Decoded) rgb(i int) (r, g, b uint16) {
	switch len(d.Planes) {
	case 1:
		v := d.Planes[0][i]
		return v, v, v
	case 3:
		return d.Planes[0][i], d.Planes[1][i], d.Planes[2][i]
	default:
		g := uint16((uint32(d.Planes[1][i]) + uint32(d.Planes[3][i])) / 2)
		return d.Planes[0][i], g, d.Planes[2][i]
	}
}
