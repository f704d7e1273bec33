package nvlist

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrNotFound     = errors.New("nvlist: name not found")
	ErrOutOfMemory  = errors.New("nvlist: native allocation failed")
	ErrUnsupported  = errors.New("nvlist: operation not supported by this backend")
	ErrCrossBackend = errors.New("nvlist: lists belong to different backends")

	ErrInvalidArgument = errors.New("nvlist: invalid argument")

	ErrEmptyName = errors.New("nvlist: name must not be empty")
	ErrNullByte  = errors.New("nvlist: string contains an embedded NUL byte")

	ErrBadHeader = errors.New("nvlist: bad header: buffer was not packed by this backend")
	ErrTruncated = errors.New("nvlist: truncated buffer")
	ErrTooLarge  = errors.New("nvlist: frame too large")
)

// ErrCorrupt is returned if a packed buffer is structurally invalid.
type ErrCorrupt struct{ Err string }

func (c ErrCorrupt) Error() string { return "nvlist: corrupt buffer: " + c.Err }

// internal constants used for corrupt
var (
	errBadPairSize   = "bad size for pair"
	errBadStringSize = "bad size for string"
	errBadArraySize  = "bad size for array"
	errBadName       = "bad pair name"
	errBadTag        = "unknown type tag"
	errBadVersion    = "unsupported version"
	errBadVarint     = "bad varint"
	errTrailingData  = "trailing data after last pair"
)

// TypeMismatchError is returned by a typed get when the stored variant
// does not match the requested one.
type TypeMismatchError struct {
	Name      string
	Requested Type
	Actual    Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("nvlist: %q holds %s, requested as %s", e.Name, e.Actual, e.Requested)
}

// NativeError preserves a native error code that has no dedicated
// translation, for diagnostics.
type NativeError struct{ Code int }

func (e NativeError) Error() string { return fmt.Sprintf("nvlist: native error %d", e.Code) }

// Error codes used by the native layers. The values are the originating
// library's (BSD) errno assignments; they are part of the native code
// space, not the host's.
const (
	nvENOENT     = 2
	nvENOMEM     = 12
	nvEINVAL     = 22
	nvEOPNOTSUPP = 45
)

// errnoToErr translates a native integer error code into the typed
// taxonomy. Zero is success. Unknown codes survive as NativeError.
func errnoToErr(code int) error {
	switch code {
	case 0:
		return nil
	case nvENOENT:
		return ErrNotFound
	case nvENOMEM:
		return ErrOutOfMemory
	case nvEOPNOTSUPP:
		return ErrUnsupported
	case nvEINVAL:
		return ErrInvalidArgument
	default:
		return NativeError{Code: code}
	}
}
