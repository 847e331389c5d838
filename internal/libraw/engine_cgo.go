//go:build cgo

package libraw

/*
#cgo pkg-config: libraw
#include <stdlib.h>
#include <string.h>
#include <libraw/libraw.h>

// LIBRAW_OPIONS_NO_MEMERR_CALLBACK | LIBRAW_OPIONS_NO_DATAERR_CALLBACK.
// Spelled numerically because newer releases dropped the first constant.
static unsigned int rawgo_init_flags(void) {
	return 1u | (1u << 1);
}

// Copies the platform's description of errnum into buf under either the
// GNU or the XSI strerror_r signature. buf is empty on failure.
static void rawgo_strerror(int errnum, char *buf, size_t len) {
	buf[0] = 0;
#if defined(__GLIBC__) && defined(_GNU_SOURCE)
	char *s = strerror_r(errnum, buf, len);
	if (s != buf) {
		strncpy(buf, s, len - 1);
		buf[len - 1] = 0;
	}
#else
	if (strerror_r(errnum, buf, len) != 0) {
		buf[0] = 0;
	}
#endif
}
*/
import "C"

import (
	"syscall"
	"unsafe"
)

// engineContext owns one libraw_data_t.
type engineContext struct {
	data *C.libraw_data_t
}

func newEngineContext() (*engineContext, error) {
	data := C.libraw_init(C.rawgo_init_flags())
	if data == nil {
		return nil, newOSError(syscall.ENOMEM)
	}
	return &engineContext{data: data}, nil
}

// openFile runs libraw_open_file through cgo's errno-returning call form,
// which zeroes errno right before the call and reads it right after, on the
// same thread. This is the only place the package looks at errno.
func (c *engineContext) openFile(path string) (Status, syscall.Errno) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	status, err := C.libraw_open_file(c.data, cpath)
	errno, _ := err.(syscall.Errno)
	return Status(status), errno
}

func (c *engineContext) unpack() Status {
	return Status(C.libraw_unpack(c.data))
}

func (c *engineContext) buffers() bufferState {
	rd := &c.data.rawdata
	return bufferState{
		allocated: rd.raw_alloc != nil,
		raw:       rd.raw_image != nil,
		color3:    rd.color3_image != nil,
		color4:    rd.color4_image != nil,
		cols:      int(rd.sizes.raw_width),
		rows:      int(rd.sizes.raw_height),
	}
}

func (c *engineContext) rawSamples(n int) []RawPixel {
	return unsafe.Slice((*RawPixel)(unsafe.Pointer(c.data.rawdata.raw_image)), n)
}

func (c *engineContext) color3Samples(n int) []Color3Pixel {
	return unsafe.Slice((*Color3Pixel)(unsafe.Pointer(c.data.rawdata.color3_image)), n)
}

func (c *engineContext) color4Samples(n int) []Color4Pixel {
	return unsafe.Slice((*Color4Pixel)(unsafe.Pointer(c.data.rawdata.color4_image)), n)
}

func (c *engineContext) sizes() Sizes {
	s := &c.data.sizes
	return Sizes{
		RawWidth:   int(s.raw_width),
		RawHeight:  int(s.raw_height),
		Width:      int(s.width),
		Height:     int(s.height),
		TopMargin:  int(s.top_margin),
		LeftMargin: int(s.left_margin),
	}
}

func (c *engineContext) identity() (maker, model string) {
	id := &c.data.idata
	return C.GoString(&id.make[0]), C.GoString(&id.model[0])
}

func (c *engineContext) release() {
	if c.data == nil {
		return
	}
	C.libraw_close(c.data)
	c.data = nil
}

// osMessage returns the C library's text for errno, falling back to Go's
// table if strerror_r fails.
func osMessage(errno syscall.Errno) string {
	var buf [256]C.char
	C.rawgo_strerror(C.int(errno), &buf[0], C.size_t(len(buf)))
	if msg := C.GoString(&buf[0]); msg != "" {
		return msg
	}
	return errno.Error()
}

func engineMessage(status Status) string {
	return C.GoString(C.libraw_strerror(C.int(status)))
}

func engineVersionNumber() uint32 {
	return uint32(C.libraw_versionNumber())
}

func engineVersionString() string {
	return C.GoString(C.libraw_version())
}

func engineCameraCount() int {
	return int(C.libraw_cameraCount())
}

func engineCameraList() []string {
	n := engineCameraCount()
	list := C.libraw_cameraList()
	if list == nil || n <= 0 {
		return nil
	}

	names := make([]string, 0, n)
	for _, p := range unsafe.Slice(list, n) {
		names = append(names, C.GoString(p))
	}
	return names
}
