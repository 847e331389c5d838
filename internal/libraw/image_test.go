package libraw

import (
	"runtime"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_RejectsEmbeddedNUL(t *testing.T) {
	img, err := Open("photo\x00.nef")
	assert.Nil(t, img)

	var lrErr *Error
	require.ErrorAs(t, err, &lrErr)
	assert.Equal(t, KindOS, lrErr.Kind())
	assert.Equal(t, int(syscall.EINVAL), lrErr.Code())
	assert.Equal(t, osMessage(syscall.EINVAL), lrErr.Error())
}

func TestClosedImage(t *testing.T) {
	img := &Image{lease: &lease{}}

	assert.ErrorIs(t, img.Unpack(), ErrClosed)

	_, err := img.RawPixelType()
	assert.ErrorIs(t, err, ErrClosed)

	_, err = img.RawPixmap()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = img.Color3Pixmap()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = img.Color4Pixmap()
	assert.ErrorIs(t, err, ErrClosed)

	_, err = img.Sizes()
	assert.ErrorIs(t, err, ErrClosed)
	assert.Empty(t, img.Make())
	assert.Empty(t, img.Model())

	assert.NoError(t, img.Close())
	assert.NoError(t, img.Close())
}

func TestPixmap_KeepsImageAlive(t *testing.T) {
	img := &Image{ctx: &engineContext{}, lease: &lease{}}
	runtime.SetFinalizer(img, func(i *Image) { i.Close() })
	pm := newPixmap(rampSamples(6), 3, 2, img.lease, img)

	// Only the view refers to the Image now.
	img = nil
	for i := 0; i < 5; i++ {
		runtime.GC()
	}

	require.NoError(t, pm.Valid())

	px := pm.Pixels()
	count := 0
	for px.Next() {
		count++
	}
	require.NoError(t, px.Err())
	assert.Equal(t, 6, count)

	v, err := pm.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, RawPixel(5), v)
}

func TestBufferState_Layout(t *testing.T) {
	tests := []struct {
		name  string
		state bufferState
		want  PixelType
	}{
		{"raw", bufferState{allocated: true, raw: true}, PixelRaw},
		{"color3", bufferState{allocated: true, color3: true}, PixelColor3},
		{"color4", bufferState{allocated: true, color4: true}, PixelColor4},
		{"raw wins over color", bufferState{allocated: true, raw: true, color4: true}, PixelRaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.pixelType())
			got, err := tt.state.layout()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBufferState_NothingUnpacked(t *testing.T) {
	state := bufferState{}
	assert.Equal(t, PixelNone, state.pixelType())

	_, err := state.layout()
	var lrErr *Error
	require.ErrorAs(t, err, &lrErr)
	assert.Equal(t, int(syscall.EINVAL), lrErr.Code())
}

func TestBufferState_AllocatedWithoutLayoutPanics(t *testing.T) {
	state := bufferState{allocated: true}
	assert.Equal(t, PixelNone, state.pixelType())
	assert.PanicsWithValue(t, "libraw: raw buffer allocated but no pixel layout is set", func() {
		_, _ = state.layout()
	})
}
