// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import "errors"

// ErrKind is the ordered set of latchable reader error kinds.
// Zero value is NoError. Kinds are ordered so that ErrorState.Set only ever
// moves forward; once non-NoError, later Set calls are ignored.
type ErrKind uint8

const (
	NoError ErrKind = iota
	ReadingError
	DataOverflow
	InvalidData
	InvalidPointer
)

func (k ErrKind) String() string {
	switch k {
	case NoError:
		return "no error"
	case ReadingError:
		return "reading error"
	case DataOverflow:
		return "data overflow"
	case InvalidData:
		return "invalid data"
	case InvalidPointer:
		return "invalid pointer"
	default:
		return "unknown error"
	}
}

var (
	// ErrInvalidArgument reports a nil adapter, nil sink, or other misuse a
	// caller could have checked before the call.
	ErrInvalidArgument = errors.New("packwire: invalid argument")

	// ErrTooLong is the panic value when Text, Container, ContainerBytes or
	// WriteMap is asked to write more elements than its nonzero max.
	ErrTooLong = errors.New("packwire: size exceeds limit")

	// ErrFixedBufferOverflow reports a write past the capacity of a
	// non-resizable Sink. This is a programmer error and is only
	// raised in debug builds; see Writer.debugChecks.
	ErrFixedBufferOverflow = errors.New("packwire: write past fixed buffer capacity")

	// ErrNotNullable reports a null pointer written through a non-nullable
	// owner or observer extension.
	ErrNotNullable = errors.New("packwire: nil pointer is not nullable")

	// ErrValueOutOfRange reports a value outside a ValueRange's [min,max] on
	// write; a programmer error. ValueRange.EncodeWire panics with it
	// whatever the Config's check settings.
	ErrValueOutOfRange = errors.New("packwire: value outside configured range")

	// ErrNoSessionSupport names a Sink that cannot report an absolute
	// end-relative offset. No function in this package returns it; the
	// session helpers panic when sessions are disabled in the Config.
	ErrNoSessionSupport = errors.New("packwire: sink does not support sessions")
)

// ErrorState is the monotonic latched error value carried by a Reader.
// Once set to a non-NoError kind, subsequent Set calls are no-ops: the
// first error wins.
type ErrorState struct {
	kind ErrKind
}

// Set latches kind if no error has been latched yet.
func (e *ErrorState) Set(kind ErrKind) {
	if e.kind == NoError {
		e.kind = kind
	}
}

// Kind reports the latched error kind.
func (e *ErrorState) Kind() ErrKind { return e.kind }

// IsError reports whether any error has been latched.
func (e *ErrorState) IsError() bool { return e.kind != NoError }

// Reset clears the latched error. Intended for reusing a Reader across
// independent top-level traversals; never call mid-traversal.
func (e *ErrorState) Reset() { e.kind = NoError }
