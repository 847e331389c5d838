package libraw

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampSamples(n int) []RawPixel {
	s := make([]RawPixel, n)
	for i := range s {
		s[i] = RawPixel(i)
	}
	return s
}

func TestPixels_VisitsEveryOffsetInOrder(t *testing.T) {
	dims := []struct{ cols, rows int }{
		{1, 1}, {1, 7}, {7, 1}, {3, 4}, {16, 9}, {0, 0}, {5, 0},
	}

	for _, d := range dims {
		pm := newPixmap(rampSamples(d.cols*d.rows), d.cols, d.rows, &lease{}, nil)
		require.Equal(t, d.cols*d.rows, pm.Len())

		px := pm.Pixels()
		want := 0
		for px.Next() {
			p := px.Pixel()
			assert.Equal(t, want, p.Index())
			assert.Equal(t, RawPixel(want), p.Value())
			assert.Equal(t, want/d.cols, p.Row())
			assert.Equal(t, want%d.cols, p.Col())
			want++
		}
		require.NoError(t, px.Err())
		assert.Equal(t, d.cols*d.rows, want, "%dx%d", d.cols, d.rows)
	}
}

func TestPixels_RemainingIsExact(t *testing.T) {
	pm := newPixmap(rampSamples(12), 4, 3, &lease{}, nil)
	px := pm.Pixels()

	assert.Equal(t, 12, px.Remaining())
	for i := 11; i >= 0; i-- {
		require.True(t, px.Next())
		assert.Equal(t, i, px.Remaining())
	}
	assert.False(t, px.Next())
	assert.Equal(t, 0, px.Remaining())
}

func TestPixels_RestartsOnEachCall(t *testing.T) {
	pm := newPixmap(rampSamples(6), 3, 2, &lease{}, nil)

	collect := func() []Pixel[RawPixel] {
		var out []Pixel[RawPixel]
		px := pm.Pixels()
		for px.Next() {
			out = append(out, px.Pixel())
		}
		require.NoError(t, px.Err())
		return out
	}

	first := collect()
	second := collect()
	assert.Len(t, first, 6)
	assert.Equal(t, first, second)
}

func TestPixels_MultiChannelValuesAreCopies(t *testing.T) {
	samples := []Color4Pixel{{1, 2, 3, 4}, {5, 6, 7, 8}}
	pm := newPixmap(samples, 2, 1, &lease{}, nil)

	px := pm.Pixels()
	require.True(t, px.Next())
	v := px.Pixel().Value()
	v[0] = 99

	assert.Equal(t, Color4Pixel{1, 2, 3, 4}, samples[0])
	require.True(t, px.Next())
	assert.Equal(t, Color4Pixel{5, 6, 7, 8}, px.Pixel().Value())
	assert.Equal(t, 1, px.Pixel().Col())
}

func TestPixels_StaleAfterUnpack(t *testing.T) {
	l := &lease{}
	pm := newPixmap(rampSamples(4), 2, 2, l, nil)

	px := pm.Pixels()
	require.True(t, px.Next())

	l.advance()

	assert.False(t, px.Next())
	assert.ErrorIs(t, px.Err(), ErrStaleView)
	assert.ErrorIs(t, pm.Valid(), ErrStaleView)

	fresh := pm.Pixels()
	assert.False(t, fresh.Next())
	assert.ErrorIs(t, fresh.Err(), ErrStaleView)
}

func TestPixels_StaleAfterClose(t *testing.T) {
	l := &lease{}
	pm := newPixmap([]Color3Pixel{{1, 2, 3}}, 1, 1, l, nil)
	l.revoke()

	_, err := pm.At(0, 0)
	assert.ErrorIs(t, err, ErrStaleView)
	assert.True(t, errors.Is(err, syscall.EINVAL))
}

func TestPixmap_At(t *testing.T) {
	pm := newPixmap(rampSamples(6), 3, 2, &lease{}, nil)

	v, err := pm.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, RawPixel(5), v)

	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 3}} {
		_, err := pm.At(pos[0], pos[1])
		var lrErr *Error
		require.ErrorAs(t, err, &lrErr)
		assert.Equal(t, KindOS, lrErr.Kind())
		assert.Equal(t, int(syscall.EINVAL), lrErr.Code())
	}
}

func TestNewPixmap_PanicsOnLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		newPixmap(rampSamples(5), 3, 2, &lease{}, nil)
	})
}

func TestNewPixmap(t *testing.T) {
	pm, err := NewPixmap([]Color3Pixel{{1, 2, 3}, {4, 5, 6}}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, pm.Cols())
	assert.Equal(t, 2, pm.Rows())
	assert.NoError(t, pm.Valid())

	_, err = NewPixmap(rampSamples(5), 2, 2)
	assert.ErrorIs(t, err, syscall.EINVAL)

	_, err = NewPixmap(rampSamples(0), -1, 0)
	assert.ErrorIs(t, err, syscall.EINVAL)
}

func TestPixelType(t *testing.T) {
	tests := []struct {
		state    bufferState
		want     PixelType
		channels int
		name     string
	}{
		{bufferState{}, PixelNone, 0, "none"},
		{bufferState{allocated: true, raw: true}, PixelRaw, 1, "raw"},
		{bufferState{allocated: true, color3: true}, PixelColor3, 3, "color3"},
		{bufferState{allocated: true, color4: true}, PixelColor4, 4, "color4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state.pixelType()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.channels, got.Channels())
			assert.Equal(t, tt.name, got.String())
		})
	}
}
