package libraw

import (
	"fmt"
	"syscall"
)

// Kind distinguishes the two sources an Error can come from.
type Kind int

const (
	// KindEngine marks a status code returned by LibRaw itself.
	KindEngine Kind = iota

	// KindOS marks an operating-system error number.
	KindOS
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindEngine:
		return "engine"
	case KindOS:
		return "os"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Status is a LibRaw return code. Zero is success; failures are negative.
type Status int

// LibRaw status codes, mirroring enum LibRaw_errors.
const (
	StatusSuccess                        Status = 0
	StatusUnspecifiedError               Status = -1
	StatusFileUnsupported                Status = -2
	StatusRequestForNonexistentImage     Status = -3
	StatusOutOfOrderCall                 Status = -4
	StatusNoThumbnail                    Status = -5
	StatusUnsupportedThumbnail           Status = -6
	StatusInputClosed                    Status = -7
	StatusNotImplemented                 Status = -8
	StatusRequestForNonexistentThumbnail Status = -9
	StatusInsufficientMemory             Status = -100007
	StatusDataError                      Status = -100008
	StatusIOError                        Status = -100009
	StatusCancelledByCallback            Status = -100010
	StatusBadCrop                        Status = -100011
	StatusTooBig                         Status = -100012
	StatusMempoolOverflow                Status = -100013
)

// Error is the single error type returned by this package.
//
// The message is resolved when the error is built and never looked up again.
type Error struct {
	kind    Kind
	code    int
	message string
}

// Error returns the engine or OS message with no prefix.
func (e *Error) Error() string {
	return e.message
}

// Kind reports whether the failure came from LibRaw or the OS.
func (e *Error) Kind() Kind {
	return e.kind
}

// Code returns the LibRaw status for engine errors or the errno for OS errors.
func (e *Error) Code() int {
	return e.code
}

// Unwrap exposes the syscall.Errno behind an OS error.
func (e *Error) Unwrap() error {
	if e.kind == KindOS {
		return syscall.Errno(e.code)
	}
	return nil
}

// Is matches another *Error with the same kind, code and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.kind == e.kind && t.code == e.code && t.message == e.message
}

var (
	// ErrStaleView is returned when a Pixmap or Pixels cursor is used after its
	// Image was unpacked again or closed.
	ErrStaleView = &Error{
		kind:    KindOS,
		code:    int(syscall.EINVAL),
		message: "pixmap is stale: image was unpacked again or closed",
	}

	// ErrClosed is returned by Image methods called after Close.
	ErrClosed = &Error{
		kind:    KindOS,
		code:    int(syscall.EBADF),
		message: "image is closed",
	}
)

func newEngineError(status Status) *Error {
	return &Error{
		kind:    KindEngine,
		code:    int(status),
		message: engineMessage(status),
	}
}

func newOSError(errno syscall.Errno) *Error {
	return &Error{
		kind:    KindOS,
		code:    int(errno),
		message: osMessage(errno),
	}
}

func newOSErrorf(errno syscall.Errno, format string, args ...any) *Error {
	return &Error{
		kind:    KindOS,
		code:    int(errno),
		message: fmt.Sprintf(format, args...),
	}
}

// attributeIOStatus turns the status of an engine call that may fail on I/O
// into an error. errno must be the value observed immediately after the call,
// with the slot cleared immediately before it. A generic I/O status with a
// zero errno stays an engine error.
func attributeIOStatus(status Status, errno syscall.Errno) error {
	switch {
	case status == StatusSuccess:
		return nil
	case status == StatusIOError && errno != 0:
		return newOSError(errno)
	default:
		return newEngineError(status)
	}
}

// checkStatus converts the status of an engine call that reports all of its
// failures through the return code.
func checkStatus(status Status) error {
	if status == StatusSuccess {
		return nil
	}
	return newEngineError(status)
}
