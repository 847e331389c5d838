package libraw

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"syscall"
)

// RawPixel is a single-channel raw sample.
type RawPixel = uint16

// Color3Pixel is a three-channel raw sample.
type Color3Pixel = [3]uint16

// Color4Pixel is a four-channel raw sample.
type Color4Pixel = [4]uint16

// PixelType identifies which raw buffer LibRaw populated during Unpack.
type PixelType int

const (
	// PixelNone means no buffer is populated yet.
	PixelNone PixelType = iota

	// PixelRaw means RawPixmap is available.
	PixelRaw

	// PixelColor3 means Color3Pixmap is available.
	PixelColor3

	// PixelColor4 means Color4Pixmap is available.
	PixelColor4
)

// String returns the lowercase layout name.
func (t PixelType) String() string {
	switch t {
	case PixelNone:
		return "none"
	case PixelRaw:
		return "raw"
	case PixelColor3:
		return "color3"
	case PixelColor4:
		return "color4"
	default:
		return fmt.Sprintf("PixelType(%d)", int(t))
	}
}

// Channels returns the number of 16-bit values per pixel for the layout.
func (t PixelType) Channels() int {
	switch t {
	case PixelRaw:
		return 1
	case PixelColor3:
		return 3
	case PixelColor4:
		return 4
	default:
		return 0
	}
}

// Sizes holds the frame geometry LibRaw reports for an opened file.
type Sizes struct {
	RawWidth   int `json:"raw_width"`
	RawHeight  int `json:"raw_height"`
	Width      int `json:"width"`
	Height     int `json:"height"`
	TopMargin  int `json:"top_margin"`
	LeftMargin int `json:"left_margin"`
}

// lease ties borrowed views to the state of the Image that issued them.
type lease struct {
	gen    atomic.Uint64
	closed atomic.Bool
}

func (l *lease) current() uint64 {
	return l.gen.Load()
}

func (l *lease) check(gen uint64) error {
	if l.closed.Load() || l.gen.Load() != gen {
		return ErrStaleView
	}
	return nil
}

func (l *lease) advance() {
	l.gen.Add(1)
}

func (l *lease) revoke() {
	l.closed.Store(true)
}

// bufferState is a snapshot of which raw buffers the engine holds.
type bufferState struct {
	allocated bool
	raw       bool
	color3    bool
	color4    bool
	cols      int
	rows      int
}

// layout is RawPixelType for a given buffer snapshot.
func (b bufferState) layout() (PixelType, error) {
	if !b.allocated {
		return PixelNone, newOSError(syscall.EINVAL)
	}

	t := b.pixelType()
	if t == PixelNone {
		panic("libraw: raw buffer allocated but no pixel layout is set")
	}
	return t, nil
}

// pixelType folds the buffer flags into a single layout tag.
func (b bufferState) pixelType() PixelType {
	switch {
	case b.raw:
		return PixelRaw
	case b.color3:
		return PixelColor3
	case b.color4:
		return PixelColor4
	default:
		return PixelNone
	}
}

// Image is an open LibRaw decoding session.
//
// An Image exclusively owns its engine context. Close releases it; a finalizer
// releases it as a last resort if Close is never called.
type Image struct {
	ctx   *engineContext
	lease *lease
}

// Open allocates a LibRaw context and loads the file at path.
//
// A path containing a NUL byte fails with EINVAL before the engine is touched.
// A missing or unreadable file fails with the OS error LibRaw ran into, and a
// file LibRaw cannot parse fails with the engine's own status message.
func Open(path string) (*Image, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return nil, newOSError(syscall.EINVAL)
	}

	ctx, err := newEngineContext()
	if err != nil {
		return nil, err
	}

	img := &Image{ctx: ctx, lease: &lease{}}
	runtime.SetFinalizer(img, func(i *Image) { i.Close() })

	status, errno := ctx.openFile(path)
	if err := attributeIOStatus(status, errno); err != nil {
		img.Close()
		return nil, err
	}

	return img, nil
}

// Unpack decodes the raw sensor data into one of the three raw buffers.
//
// Pixmaps issued before Unpack become stale whether or not it succeeds.
func (img *Image) Unpack() error {
	if img.ctx == nil {
		return ErrClosed
	}
	img.lease.advance()
	return checkStatus(img.ctx.unpack())
}

// RawPixelType reports which raw buffer Unpack populated.
//
// It fails with EINVAL if nothing has been unpacked. If LibRaw allocated raw
// storage but set none of the three layout pointers the engine has broken its
// own contract, and RawPixelType panics.
func (img *Image) RawPixelType() (PixelType, error) {
	if img.ctx == nil {
		return PixelNone, ErrClosed
	}

	return img.ctx.buffers().layout()
}

// RawPixmap returns a view of the single-channel raw buffer.
func (img *Image) RawPixmap() (*Pixmap[RawPixel], error) {
	if img.ctx == nil {
		return nil, ErrClosed
	}

	state := img.ctx.buffers()
	if !state.raw {
		return nil, newOSError(syscall.EINVAL)
	}
	return newPixmap(img.ctx.rawSamples(state.cols*state.rows), state.cols, state.rows, img.lease, img), nil
}

// Color3Pixmap returns a view of the three-channel raw buffer.
func (img *Image) Color3Pixmap() (*Pixmap[Color3Pixel], error) {
	if img.ctx == nil {
		return nil, ErrClosed
	}

	state := img.ctx.buffers()
	if !state.color3 {
		return nil, newOSError(syscall.EINVAL)
	}
	return newPixmap(img.ctx.color3Samples(state.cols*state.rows), state.cols, state.rows, img.lease, img), nil
}

// Color4Pixmap returns a view of the four-channel raw buffer.
func (img *Image) Color4Pixmap() (*Pixmap[Color4Pixel], error) {
	if img.ctx == nil {
		return nil, ErrClosed
	}

	state := img.ctx.buffers()
	if !state.color4 {
		return nil, newOSError(syscall.EINVAL)
	}
	return newPixmap(img.ctx.color4Samples(state.cols*state.rows), state.cols, state.rows, img.lease, img), nil
}

// Sizes returns the frame geometry of the opened file.
func (img *Image) Sizes() (Sizes, error) {
	if img.ctx == nil {
		return Sizes{}, ErrClosed
	}
	return img.ctx.sizes(), nil
}

// Make returns the camera manufacturer recorded in the file.
func (img *Image) Make() string {
	if img.ctx == nil {
		return ""
	}
	maker, _ := img.ctx.identity()
	return maker
}

// Model returns the camera model recorded in the file.
func (img *Image) Model() string {
	if img.ctx == nil {
		return ""
	}
	_, model := img.ctx.identity()
	return model
}

// Close releases the engine context. Every Pixmap issued by img becomes stale.
// Calling Close more than once is a no-op.
func (img *Image) Close() error {
	if img.ctx == nil {
		return nil
	}
	img.lease.revoke()
	img.ctx.release()
	img.ctx = nil
	runtime.SetFinalizer(img, nil)
	return nil
}
