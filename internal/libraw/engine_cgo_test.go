//go:build cgo

package libraw

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nikonD1Fixture = "testdata/RAW_NIKON_D1.NEF"

// openFixture opens and unpacks the Nikon D1 sample, skipping the test when
// the fixture has not been downloaded.
func openFixture(t *testing.T) *Image {
	t.Helper()
	if _, err := os.Stat(nikonD1Fixture); err != nil {
		if os.Getenv("RAW_FIXTURE_REQUIRED") != "" {
			t.Fatalf("fixture %s required but missing: %v", nikonD1Fixture, err)
		}
		t.Skipf("fixture %s not present; see the package doc for where to download it", nikonD1Fixture)
	}

	img, err := Open(nikonD1Fixture)
	require.NoError(t, err)
	t.Cleanup(func() { img.Close() })
	return img
}

func TestOpen_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.nef")

	img, err := Open(path)
	assert.Nil(t, img)

	var lrErr *Error
	require.ErrorAs(t, err, &lrErr)
	assert.Equal(t, KindOS, lrErr.Kind())
	assert.Equal(t, "No such file or directory", lrErr.Error())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOSMessage_PlatformText(t *testing.T) {
	assert.Equal(t, "No such file or directory", osMessage(syscall.ENOENT))
	assert.Equal(t, "Invalid argument", osMessage(syscall.EINVAL))
	assert.Equal(t, "Invalid argument", newOSError(syscall.EINVAL).Error())
}

func TestOpen_NotARawFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("not a raw file\n", 64)), 0o644))

	img, err := Open(path)
	assert.Nil(t, img)

	var lrErr *Error
	require.ErrorAs(t, err, &lrErr)
	assert.Equal(t, KindEngine, lrErr.Kind())
	assert.Equal(t, int(StatusFileUnsupported), lrErr.Code())
}

func TestRawPixelType_BeforeUnpack(t *testing.T) {
	img := openFixture(t)

	_, err := img.RawPixelType()
	var lrErr *Error
	require.ErrorAs(t, err, &lrErr)
	assert.Equal(t, int(syscall.EINVAL), lrErr.Code())

	_, err = img.RawPixmap()
	assert.ErrorIs(t, err, syscall.EINVAL)
}

func TestRawPixmap_Checksum(t *testing.T) {
	img := openFixture(t)
	require.NoError(t, img.Unpack())

	pt, err := img.RawPixelType()
	require.NoError(t, err)
	assert.Equal(t, PixelRaw, pt)

	raw, err := img.RawPixmap()
	require.NoError(t, err)
	assert.Equal(t, raw.Cols()*raw.Rows(), raw.Len())

	var sum uint64
	px := raw.Pixels()
	for px.Next() {
		sum += uint64(px.Pixel().Value())
	}
	require.NoError(t, px.Err())
	assert.Equal(t, uint64(1261062932), sum)
}

func TestColorPixmaps_RejectRawImage(t *testing.T) {
	img := openFixture(t)
	require.NoError(t, img.Unpack())

	c3, err := img.Color3Pixmap()
	assert.Nil(t, c3)
	assert.ErrorIs(t, err, syscall.EINVAL)

	c4, err := img.Color4Pixmap()
	assert.Nil(t, c4)
	assert.ErrorIs(t, err, syscall.EINVAL)
}

func TestPixmap_StaleAfterReunpackAndClose(t *testing.T) {
	img := openFixture(t)
	require.NoError(t, img.Unpack())

	raw, err := img.RawPixmap()
	require.NoError(t, err)
	require.NoError(t, raw.Valid())

	require.NoError(t, img.Unpack())
	assert.ErrorIs(t, raw.Valid(), ErrStaleView)

	again, err := img.RawPixmap()
	require.NoError(t, err)
	require.NoError(t, img.Close())

	px := again.Pixels()
	assert.False(t, px.Next())
	assert.ErrorIs(t, px.Err(), ErrStaleView)
}

func TestImage_Metadata(t *testing.T) {
	img := openFixture(t)

	sizes, err := img.Sizes()
	require.NoError(t, err)
	assert.Positive(t, sizes.RawWidth)
	assert.Positive(t, sizes.RawHeight)
	assert.Equal(t, "Nikon", img.Make())
	assert.Equal(t, "D1", img.Model())
}

func TestCameraList(t *testing.T) {
	first := CameraList()
	second := CameraList()

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, CameraCount(), len(first))
}

func TestLibraryVersion(t *testing.T) {
	v := LibraryVersion()
	assert.True(t, strings.HasPrefix(LibraryVersionString(), v.String()),
		"%q does not start with %q", LibraryVersionString(), v.String())
}
