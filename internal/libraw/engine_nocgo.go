//go:build !cgo

package libraw

import "syscall"

// engineContext is never created without cgo.
type engineContext struct{}

func newEngineContext() (*engineContext, error) {
	return nil, newOSError(syscall.ENOSYS)
}

func (c *engineContext) openFile(string) (Status, syscall.Errno) {
	return StatusUnspecifiedError, syscall.ENOSYS
}

func (c *engineContext) unpack() Status {
	return StatusUnspecifiedError
}

func (c *engineContext) buffers() bufferState {
	return bufferState{}
}

func (c *engineContext) rawSamples(int) []RawPixel {
	return nil
}

func (c *engineContext) color3Samples(int) []Color3Pixel {
	return nil
}

func (c *engineContext) color4Samples(int) []Color4Pixel {
	return nil
}

func (c *engineContext) sizes() Sizes {
	return Sizes{}
}

func (c *engineContext) identity() (string, string) {
	return "", ""
}

func (c *engineContext) release() {}

func osMessage(errno syscall.Errno) string {
	return errno.Error()
}

// engineMessage mirrors libraw_strerror so errors read the same in both builds.
func engineMessage(status Status) string {
	switch status {
	case StatusSuccess:
		return "No error"
	case StatusUnspecifiedError:
		return "Unspecified error"
	case StatusFileUnsupported:
		return "Unsupported file format or not RAW file"
	case StatusRequestForNonexistentImage:
		return "Request for nonexisting image number"
	case StatusOutOfOrderCall:
		return "Out of order call of libraw function"
	case StatusNoThumbnail:
		return "No thumbnail in file"
	case StatusUnsupportedThumbnail:
		return "Unsupported thumbnail format"
	case StatusInputClosed:
		return "No input stream, or input stream closed"
	case StatusNotImplemented:
		return "Decoder not implemented for this data format"
	case StatusRequestForNonexistentThumbnail:
		return "Request for nonexisting thumbnail number"
	case StatusInsufficientMemory:
		return "Unsufficient memory"
	case StatusDataError:
		return "Corrupted data or unexpected EOF"
	case StatusIOError:
		return "Input/output error"
	case StatusCancelledByCallback:
		return "Cancelled by user callback"
	case StatusBadCrop:
		return "Bad crop box"
	case StatusTooBig:
		return "Image too big for processing"
	case StatusMempoolOverflow:
		return "Libraw internal mempool overflowed"
	default:
		return "Unknown error code"
	}
}

func engineVersionNumber() uint32 {
	return 0
}

func engineVersionString() string {
	return "unavailable (built without cgo)"
}

func engineCameraCount() int {
	return 0
}

func engineCameraList() []string {
	return nil
}
